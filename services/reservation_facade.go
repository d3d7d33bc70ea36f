package services

import (
	"context"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"
	"dnu_asset/services/logger"
	"dnu_asset/services/notification"

	"gorm.io/gorm"
)

// SkippedEquipment thiết bị xin kèm không giữ được chỗ khi xác nhận họp
type SkippedEquipment struct {
	AssetID uint   `json:"assetId"`
	Reason  string `json:"reason"`
}

// ConfirmResult kết quả xác nhận đặt phòng kèm thiết bị
type ConfirmResult struct {
	Booking          *models.Booking    `json:"booking"`
	Lendings         []models.Lending   `json:"lendings"`
	SkippedEquipment []SkippedEquipment `json:"skippedEquipment"`
}

// lendingWorkflow phần vòng đời phiếu mượn mà facade cần khi hiện thực
// hóa thiết bị xin kèm và khi hủy lan truyền
type lendingWorkflow interface {
	Create(ctx context.Context, lending *models.Lending) error
	Request(ctx context.Context, id uint) (*models.Lending, error)
	Cancel(ctx context.Context, id uint) (*models.Lending, error)
}

// ReservationFacade phối hợp đặt phòng với mượn thiết bị kèm theo.
// Đặt phòng là cam kết chính; thiết bị kèm chỉ cố gắng hết mức: thiết
// bị kẹt lịch thì ghi chú bỏ qua chứ không làm hỏng xác nhận phòng.
type ReservationFacade struct {
	db        *gorm.DB
	bookings  *BookingService
	lendings  lendingWorkflow
	publisher notification.MeetingPublisher
	calendar  CalendarSync
	logger    logger.Logger
}

// ReservationFacadeOptions tham số khởi tạo ReservationFacade
type ReservationFacadeOptions struct {
	DB        *gorm.DB
	Bookings  *BookingService
	Lendings  *LendingService
	Publisher notification.MeetingPublisher
	Calendar  CalendarSync
	Logger    logger.Logger
}

// NewReservationFacade tạo instance mới của ReservationFacade
func NewReservationFacade(opts ReservationFacadeOptions) *ReservationFacade {
	return &ReservationFacade{
		db:        opts.DB,
		bookings:  opts.Bookings,
		lendings:  opts.Lendings,
		publisher: opts.Publisher,
		calendar:  opts.Calendar,
		logger:    opts.Logger,
	}
}

// ConfirmBooking xác nhận đặt phòng rồi hiện thực hóa các yêu cầu thiết
// bị thành phiếu mượn tự động, dừng ở bước gửi yêu cầu chờ duyệt.
// Thông báo và lịch ngoài là best-effort, lỗi chỉ ghi log.
func (f *ReservationFacade) ConfirmBooking(ctx context.Context, bookingID uint) (*ConfirmResult, error) {
	booking, err := f.bookings.Confirm(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	booking, err = f.bookings.GetByID(booking.ID)
	if err != nil {
		return nil, err
	}

	// Xác nhận lại không tạo phiếu trùng cho thiết bị đã có phiếu phủ
	var existing []models.Lending
	if err := f.db.Where("booking_id = ?", booking.ID).Find(&existing).Error; err != nil {
		f.logger.Warn("truy vấn phiếu mượn sẵn có của đặt phòng %s thất bại: %v", booking.Code, err)
		existing = nil
	}
	uncovered := make(map[uint]bool)
	for _, assetID := range UncoveredEquipment(booking, existing) {
		uncovered[assetID] = true
	}

	result := &ConfirmResult{Booking: booking}
	for _, req := range booking.EquipmentRequests {
		if !uncovered[req.AssetID] {
			continue
		}
		lending, skipReason := f.materializeEquipment(ctx, booking, req)
		if skipReason != "" {
			result.SkippedEquipment = append(result.SkippedEquipment, SkippedEquipment{
				AssetID: req.AssetID,
				Reason:  skipReason,
			})
			continue
		}
		result.Lendings = append(result.Lendings, *lending)
	}

	if f.calendar != nil {
		ref, err := f.calendar.CreateExternalEvent(booking)
		if err != nil {
			f.logger.Warn("tạo sự kiện lịch ngoài cho đặt phòng %s thất bại: %v", booking.Code, err)
		} else if ref != "" {
			if err := f.db.Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Update("calendar_event_ref", ref).Error; err != nil {
				f.logger.Warn("lưu tham chiếu lịch ngoài cho đặt phòng %s thất bại: %v", booking.Code, err)
			} else {
				booking.CalendarEventRef = ref
			}
		}
	}
	if f.publisher != nil {
		if err := f.publisher.NotifyConfirmed(booking.Code); err != nil {
			f.logger.Warn("gửi thông báo xác nhận đặt phòng %s thất bại: %v", booking.Code, err)
		}
	}
	return result, nil
}

// materializeEquipment tạo phiếu mượn tự động cho một yêu cầu thiết bị
// rồi dừng ở bước gửi yêu cầu: phiếu nằm lại ở Requested hoặc
// PendingApproval chờ người giữ tài sản hay quản lý duyệt theo quy
// trình thường. Chỉ khi tài sản kẹt lịch mới hủy phiếu vừa tạo và trả
// lý do bỏ qua; lỗi khác giữ nguyên phiếu đang chờ.
func (f *ReservationFacade) materializeEquipment(ctx context.Context, booking *models.Booking, req models.EquipmentRequest) (*models.Lending, string) {
	start, end := equipmentWindow(booking, req)
	bookingID := booking.ID
	lending := &models.Lending{
		AssetID:            req.AssetID,
		BorrowerID:         booking.OrganizerID,
		DateBorrow:         start,
		DateExpectedReturn: end,
		Purpose:            constants.PurposeMeeting,
		PurposeNote:        "Thiết bị cho cuộc họp " + booking.Code,
		BookingID:          &bookingID,
		IsAutoCreated:      true,
	}
	if err := f.lendings.Create(ctx, lending); err != nil {
		f.logger.Warn("tạo phiếu mượn thiết bị cho đặt phòng %s thất bại: %v", booking.Code, err)
		return nil, err.Error()
	}
	requested, err := f.lendings.Request(ctx, lending.ID)
	if err != nil {
		if conflict, ok := apperrors.AsConflict(err); ok {
			// Thiết bị kẹt lịch: hủy phiếu nháp vừa tạo, phòng vẫn giữ
			if _, cancelErr := f.lendings.Cancel(ctx, lending.ID); cancelErr != nil {
				f.logger.Warn("hủy phiếu mượn thiết bị dang dở %s thất bại: %v", lending.Code, cancelErr)
			}
			return nil, conflict.Error()
		}
		return nil, err.Error()
	}
	return requested, ""
}

// equipmentWindow khoảng giữ thiết bị, mặc định theo khoảng họp
func equipmentWindow(booking *models.Booking, req models.EquipmentRequest) (time.Time, time.Time) {
	start := booking.StartDatetime
	end := booking.EndDatetime
	if !req.StartDatetime.IsZero() {
		start = req.StartDatetime
	}
	if !req.EndDatetime.IsZero() {
		end = req.EndDatetime
	}
	return start, end
}

// UncoveredEquipment trả về các thiết bị xin kèm chưa có phiếu mượn nào
// phủ hết khoảng xin. Phiếu đã hủy hoặc đã trả không tính là phủ.
func UncoveredEquipment(booking *models.Booking, lendings []models.Lending) []uint {
	var uncovered []uint
	for _, req := range booking.EquipmentRequests {
		start, end := equipmentWindow(booking, req)
		covered := false
		for _, l := range lendings {
			if l.AssetID != req.AssetID ||
				l.Status == constants.LendingStatusCancelled ||
				l.Status == constants.LendingStatusReturned {
				continue
			}
			if !l.DateBorrow.After(start) && !l.DateExpectedReturn.Before(end) {
				covered = true
				break
			}
		}
		if !covered {
			uncovered = append(uncovered, req.AssetID)
		}
	}
	return uncovered
}

// CancelBooking hủy đặt phòng và lan truyền sang các phiếu mượn thiết
// bị tự động còn hủy được. Phiếu đã kích hoạt (thiết bị đã rời kho)
// thì giữ lại, chờ hoàn trả theo quy trình thường.
func (f *ReservationFacade) CancelBooking(ctx context.Context, bookingID uint, reason string) (*models.Booking, error) {
	booking, err := f.bookings.Cancel(ctx, bookingID, reason)
	if err != nil {
		return nil, err
	}

	var autoLendings []models.Lending
	if err := f.db.
		Where("booking_id = ? AND is_auto_created = ?", booking.ID, true).
		Find(&autoLendings).Error; err != nil {
		f.logger.Warn("truy vấn phiếu mượn kèm đặt phòng %s thất bại: %v", booking.Code, err)
		autoLendings = nil
	}
	for _, l := range autoLendings {
		if !l.IsCancellable() {
			f.logger.Warn("phiếu mượn %s đã kích hoạt, không hủy theo đặt phòng được", l.Code)
			continue
		}
		if _, err := f.lendings.Cancel(ctx, l.ID); err != nil {
			f.logger.Warn("hủy phiếu mượn %s theo đặt phòng thất bại: %v", l.Code, err)
		}
	}

	if f.calendar != nil && booking.CalendarEventRef != "" {
		if err := f.calendar.DeleteExternalEvent(booking.CalendarEventRef); err != nil {
			f.logger.Warn("xóa sự kiện lịch ngoài của đặt phòng %s thất bại: %v", booking.Code, err)
		}
	}
	if f.publisher != nil {
		if err := f.publisher.NotifyCancelled(booking.Code, reason); err != nil {
			f.logger.Warn("gửi thông báo hủy đặt phòng %s thất bại: %v", booking.Code, err)
		}
	}
	return booking, nil
}
