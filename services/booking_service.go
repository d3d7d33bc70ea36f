package services

import (
	"context"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"
	"dnu_asset/services/logger"
	"dnu_asset/validator"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService điều khiển vòng đời đặt phòng. Mọi guard kiểm tra xung
// đột chạy chung transaction với lệnh ghi trạng thái: lock phòng FOR
// UPDATE rồi cập nhật có điều kiện theo trạng thái cũ, người thua cuộc
// đua nhận ConflictError chứ không ghi đè.
type BookingService struct {
	db           *gorm.DB
	availability *AvailabilityService
	logger       logger.Logger
}

// BookingServiceOptions tham số khởi tạo BookingService
type BookingServiceOptions struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Logger       logger.Logger
}

// NewBookingService tạo instance mới của BookingService
func NewBookingService(opts BookingServiceOptions) *BookingService {
	return &BookingService{
		db:           opts.DB,
		availability: opts.Availability,
		logger:       opts.Logger,
	}
}

// GetByID lấy đặt phòng theo ID
func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.
		Preload("Room").
		Preload("Organizer").
		Preload("Attendees").
		Preload("EquipmentRequests").
		Preload("EquipmentRequests.Asset").
		First(&booking, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create tạo đặt phòng mới ở trạng thái nháp
func (s *BookingService) Create(ctx context.Context, booking *models.Booking) error {
	var room models.Room
	if err := s.db.First(&room, booking.RoomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrRoomNotFound
		}
		return err
	}
	if err := validator.ValidateBooking(&room, booking); err != nil {
		return err
	}
	if err := validator.ValidateBookingAdvance(&room, booking.StartDatetime, time.Now()); err != nil {
		return err
	}
	if booking.Code == "" {
		booking.Code = NewCode("BK")
	}
	booking.Status = constants.BookingStatusDraft
	return s.db.WithContext(ctx).Create(booking).Error
}

// Submit gửi yêu cầu đặt phòng, chưa kiểm tra xung đột vì trạng thái
// chờ duyệt không chặn lịch của người khác
func (s *BookingService) Submit(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		oldStatus := booking.Status
		if err := models.GetBookingState(oldStatus).Submit(&booking); err != nil {
			return err
		}
		return commitBookingStatus(tx, &booking, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Confirm xác nhận đặt phòng. Kiểm tra lại xung đột ngay trong
// transaction: người xác nhận trước thắng, người sau nhận ConflictError
// kèm danh sách lịch đụng độ.
func (s *BookingService) Confirm(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookingNotFound
			}
			return err
		}

		// Serialize các lượt xác nhận trên cùng một phòng
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, booking.RoomID).Error; err != nil {
			return err
		}

		ok, conflicts, err := s.availability.WithTx(tx).CheckRoom(
			booking.RoomID, booking.StartDatetime, booking.EndDatetime, booking.ID)
		if err != nil {
			return err
		}
		if !ok {
			return &apperrors.ConflictError{Resource: "phòng " + room.Name, Conflicts: conflicts}
		}

		oldStatus := booking.Status
		if err := models.GetBookingState(oldStatus).Confirm(&booking); err != nil {
			return err
		}
		return commitBookingStatus(tx, &booking, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	s.availability.InvalidateRoomCache(ctx, booking.RoomID, booking.StartDatetime, booking.EndDatetime)
	return &booking, nil
}

// CheckIn check-in vào phòng, chỉ trong khoảng [start-15 phút, end]
func (s *BookingService) CheckIn(ctx context.Context, id uint, userID uint, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		oldStatus := booking.Status
		if err := models.GetBookingState(oldStatus).CheckIn(&booking, now, userID); err != nil {
			return err
		}
		return commitBookingStatus(tx, &booking, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CheckOut check-out khỏi phòng
func (s *BookingService) CheckOut(ctx context.Context, id uint, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		oldStatus := booking.Status
		if err := models.GetBookingState(oldStatus).CheckOut(&booking, now); err != nil {
			return err
		}
		return commitBookingStatus(tx, &booking, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	s.availability.InvalidateRoomCache(ctx, booking.RoomID, booking.StartDatetime)
	return &booking, nil
}

// Cancel hủy đặt phòng; không hủy được nữa khi đã hoàn thành
func (s *BookingService) Cancel(ctx context.Context, id uint, reason string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		oldStatus := booking.Status
		if err := models.GetBookingState(oldStatus).Cancel(&booking, reason); err != nil {
			return err
		}
		return commitBookingStatus(tx, &booking, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	s.availability.InvalidateRoomCache(ctx, booking.RoomID, booking.StartDatetime)
	return &booking, nil
}

// Reschedule đổi thời gian hoặc phòng của một đặt phòng. Với đặt phòng
// đã xác nhận trở đi, kiểm tra lại xung đột trước khi ghi; kiểm tra
// thất bại thì từ chối toàn bộ thay đổi, không ghi nửa chừng.
func (s *BookingService) Reschedule(ctx context.Context, id uint, newRoomID uint, newStart, newEnd time.Time) (*models.Booking, error) {
	var booking models.Booking
	var oldRoomID uint
	var oldStart time.Time
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrBookingNotFound
			}
			return err
		}
		if booking.IsTerminal() {
			return &apperrors.StateError{Entity: "đặt phòng", Action: "đổi lịch", Status: booking.Status}
		}
		if newRoomID == 0 {
			newRoomID = booking.RoomID
		}

		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, newRoomID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrRoomNotFound
			}
			return err
		}
		if err := validator.ValidateBookingInterval(&room, newStart, newEnd); err != nil {
			return err
		}

		blocking := booking.Status == constants.BookingStatusConfirmed ||
			booking.Status == constants.BookingStatusInProgress
		if blocking {
			ok, conflicts, err := s.availability.WithTx(tx).CheckRoom(newRoomID, newStart, newEnd, booking.ID)
			if err != nil {
				return err
			}
			if !ok {
				return &apperrors.ConflictError{Resource: "phòng " + room.Name, Conflicts: conflicts}
			}
		}

		oldRoomID = booking.RoomID
		oldStart = booking.StartDatetime
		booking.RoomID = newRoomID
		booking.StartDatetime = newStart
		booking.EndDatetime = newEnd
		result := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Updates(map[string]interface{}{
				"room_id":        newRoomID,
				"start_datetime": newStart,
				"end_datetime":   newEnd,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &apperrors.ConflictError{Resource: "đặt phòng " + booking.Code}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Xóa cache khung giờ trống của cả phòng cũ lẫn phòng mới
	for _, roomID := range rescheduleCacheRooms(oldRoomID, booking.RoomID) {
		s.availability.InvalidateRoomCache(ctx, roomID, oldStart, newStart)
	}
	return &booking, nil
}

// rescheduleCacheRooms các phòng cần xóa cache sau khi dời lịch
func rescheduleCacheRooms(oldRoomID, newRoomID uint) []uint {
	if oldRoomID == newRoomID {
		return []uint{newRoomID}
	}
	return []uint{oldRoomID, newRoomID}
}

// SweepAutoCheckout tự động check-out các cuộc họp đã qua giờ kết thúc.
// Sweep chỉ đẩy các trạng thái đang chặn đi tiếp, không tạo cam kết mới,
// nên chạy song song với request trực tiếp vẫn an toàn.
func (s *BookingService) SweepAutoCheckout(ctx context.Context, now time.Time) (int, error) {
	var bookings []models.Booking
	if err := s.db.
		Where("status = ? AND end_datetime < ?", constants.BookingStatusInProgress, now).
		Find(&bookings).Error; err != nil {
		return 0, err
	}
	count := 0
	for _, b := range bookings {
		if _, err := s.CheckOut(ctx, b.ID, now); err != nil {
			s.logger.Warn("auto checkout đặt phòng %s thất bại: %v", b.Code, err)
			continue
		}
		count++
	}
	return count, nil
}

// UpcomingForReminder các đặt phòng đã xác nhận sắp bắt đầu trong khoảng nhắc nhở
func (s *BookingService) UpcomingForReminder(now time.Time, within time.Duration) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Preload("Organizer").
		Where("status = ? AND start_datetime >= ? AND start_datetime <= ?",
			constants.BookingStatusConfirmed, now, now.Add(within)).
		Find(&bookings).Error
	return bookings, err
}

// commitBookingStatus ghi trạng thái mới với điều kiện trạng thái cũ
// chưa bị ai đổi; RowsAffected = 0 nghĩa là thua cuộc đua ghi.
func commitBookingStatus(tx *gorm.DB, booking *models.Booking, oldStatus int) error {
	result := tx.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, oldStatus).
		Updates(map[string]interface{}{
			"status":              booking.Status,
			"checkin_datetime":    booking.CheckinDatetime,
			"checkout_datetime":   booking.CheckoutDatetime,
			"checkin_by_id":       booking.CheckinByID,
			"cancellation_reason": booking.CancellationReason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperrors.ConflictError{Resource: "đặt phòng " + booking.Code}
	}
	return nil
}
