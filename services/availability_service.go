package services

import (
	"context"
	"fmt"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"
	"dnu_asset/services/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AvailabilityService trả lời câu hỏi "tài nguyên có trống trong khoảng
// thời gian này không" cho cả phòng họp và tài sản. Đây là nguồn dữ liệu
// duy nhất về trạng thái chặn lịch; các workflow không tự cache kết quả
// qua ranh giới transaction.
type AvailabilityService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger logger.Logger
}

// AvailabilityServiceOptions tham số khởi tạo AvailabilityService
type AvailabilityServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger logger.Logger
}

// NewAvailabilityService tạo instance mới của AvailabilityService
func NewAvailabilityService(opts AvailabilityServiceOptions) *AvailabilityService {
	return &AvailabilityService{
		db:     opts.DB,
		rdb:    opts.Redis,
		logger: opts.Logger,
	}
}

// WithTx trả về bản sao service chạy trên transaction đang mở, để guard
// kiểm tra xung đột nằm chung critical section với lệnh ghi trạng thái.
func (s *AvailabilityService) WithTx(tx *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: tx, rdb: s.rdb, logger: s.logger}
}

// CheckRoom kiểm tra phòng có trống trong [start, end) không.
// Chỉ các đặt phòng Confirmed/InProgress mới chặn lịch; nháp, chờ duyệt,
// đã hủy hay đã xong không khóa phòng của người khác.
func (s *AvailabilityService) CheckRoom(roomID uint, start, end time.Time, excludeID uint) (bool, []apperrors.ConflictRef, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil, apperrors.ErrRoomNotFound
		}
		return false, nil, err
	}
	if room.Status != constants.RoomStatusAvailable || !room.AllowBooking || !room.Active {
		return false, nil, nil
	}

	var bookings []models.Booking
	if err := s.db.
		Where("room_id = ? AND status IN ?", roomID, models.BookingBlockingStatuses()).
		Where("start_datetime < ? AND end_datetime > ?", end, start).
		Find(&bookings).Error; err != nil {
		return false, nil, err
	}

	idx := NewIntervalIndex()
	key := ResourceKey{Kind: ResourceRoom, ID: roomID}
	for _, b := range bookings {
		idx.Add(key, IntervalRecord{ID: b.ID, Code: b.Code, Start: b.StartDatetime, End: b.EndDatetime})
	}
	conflicts := idx.Conflicts(key, start, end, excludeID)
	return len(conflicts) == 0, toConflictRefs(conflicts), nil
}

// CheckAsset kiểm tra tài sản có trống trong [start, end) không.
// Chỉ phiếu mượn Approved/Active chặn lịch; phiếu mới yêu cầu thì chưa,
// nhưng hai phiếu không thể cùng được duyệt (guard lúc duyệt chặn lại).
func (s *AvailabilityService) CheckAsset(assetID uint, start, end time.Time, excludeID uint) (bool, []apperrors.ConflictRef, error) {
	var asset models.Asset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil, apperrors.ErrAssetNotFound
		}
		return false, nil, err
	}
	if asset.Status == constants.AssetStatusMaintenance || asset.Status == constants.AssetStatusRetired || !asset.Active {
		return false, nil, nil
	}

	var lendings []models.Lending
	if err := s.db.
		Where("asset_id = ? AND status IN ?", assetID, models.LendingBlockingStatuses()).
		Where("date_borrow < ? AND date_expected_return > ?", end, start).
		Find(&lendings).Error; err != nil {
		return false, nil, err
	}

	idx := NewIntervalIndex()
	key := ResourceKey{Kind: ResourceAsset, ID: assetID}
	for _, l := range lendings {
		idx.Add(key, IntervalRecord{ID: l.ID, Code: l.Code, Start: l.DateBorrow, End: l.DateExpectedReturn})
	}

	// Thiết bị cố định trong phòng cũng bị giữ trong lúc cuộc họp của
	// phòng đó đang diễn ra: một tài sản không thể ở hai nơi cùng lúc.
	var roomBookings []models.Booking
	if err := s.db.
		Joins("JOIN room_assets ra ON ra.room_id = bookings.room_id").
		Where("ra.asset_id = ?", assetID).
		Where("bookings.status = ?", constants.BookingStatusInProgress).
		Where("bookings.start_datetime < ? AND bookings.end_datetime > ?", end, start).
		Find(&roomBookings).Error; err != nil {
		return false, nil, err
	}
	for _, b := range roomBookings {
		idx.Add(key, IntervalRecord{ID: b.ID, Code: b.Code, Start: b.StartDatetime, End: b.EndDatetime})
	}

	conflicts := idx.Conflicts(key, start, end, excludeID)
	return len(conflicts) == 0, toConflictRefs(conflicts), nil
}

// FreeSlots trả về các khoảng trống đủ dài trong khung giờ làm việc của
// phòng trong một ngày. Kết quả được cache Redis ngắn hạn.
func (s *AvailabilityService) FreeSlots(ctx context.Context, roomID uint, date time.Time, minDuration time.Duration) ([]Interval, error) {
	cacheKey := fmt.Sprintf("free_slots:%d:%s:%d", roomID, date.Format("2006-01-02"), int(minDuration.Minutes()))
	if s.rdb != nil {
		var cached []Interval
		if err := GetFromRedis(ctx, s.rdb, cacheKey, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, err
	}

	windowStart, windowEnd := room.WorkingWindow(date)

	var bookings []models.Booking
	if err := s.db.
		Where("room_id = ? AND status IN ?", roomID, models.BookingBlockingStatuses()).
		Where("start_datetime < ? AND end_datetime > ?", windowEnd, windowStart).
		Order("start_datetime").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	blocking := make([]IntervalRecord, 0, len(bookings))
	for _, b := range bookings {
		blocking = append(blocking, IntervalRecord{ID: b.ID, Code: b.Code, Start: b.StartDatetime, End: b.EndDatetime})
	}
	slots := FreeSlots(windowStart, windowEnd, blocking, minDuration)

	if s.rdb != nil {
		if err := SetToRedis(ctx, s.rdb, cacheKey, slots, 5*time.Minute); err != nil {
			s.logger.Warn("không cache được free slots phòng %d: %v", roomID, err)
		}
	}
	return slots, nil
}

// InvalidateRoomCache xóa cache free slots của một phòng trong một ngày,
// gọi sau mỗi lần đặt phòng chuyển sang/ra khỏi trạng thái chặn lịch.
func (s *AvailabilityService) InvalidateRoomCache(ctx context.Context, roomID uint, days ...time.Time) {
	if s.rdb == nil {
		return
	}
	for _, d := range days {
		pattern := fmt.Sprintf("free_slots:%d:%s:*", roomID, d.Format("2006-01-02"))
		iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				s.logger.Warn("không xóa được cache %s: %v", iter.Val(), err)
			}
		}
	}
}

func toConflictRefs(records []IntervalRecord) []apperrors.ConflictRef {
	if len(records) == 0 {
		return nil
	}
	refs := make([]apperrors.ConflictRef, 0, len(records))
	for _, r := range records {
		refs = append(refs, apperrors.ConflictRef{ID: r.ID, Code: r.Code, Start: r.Start, End: r.End})
	}
	return refs
}
