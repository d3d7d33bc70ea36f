package validator

import (
	"fmt"
	"time"

	apperrors "dnu_asset/errors"
	"dnu_asset/models"
)

// ValidateBooking kiểm tra tính hợp lệ của một đặt phòng so với cấu hình phòng
func ValidateBooking(room *models.Room, b *models.Booking) error {
	if b.Subject == "" {
		return &apperrors.ValidationError{Field: "subject", Message: "chủ đề cuộc họp không được để trống"}
	}
	if b.OrganizerID == 0 {
		return &apperrors.ValidationError{Field: "organizerId", Message: "người tổ chức không được để trống"}
	}
	if err := ValidateBookingInterval(room, b.StartDatetime, b.EndDatetime); err != nil {
		return err
	}
	return ValidateBookingCapacity(room, b.NumAttendees())
}

// ValidateBookingInterval kiểm tra khoảng thời gian đặt phòng
func ValidateBookingInterval(room *models.Room, start, end time.Time) error {
	if !end.After(start) {
		return &apperrors.ValidationError{Field: "endDatetime", Message: "thời gian kết thúc phải sau thời gian bắt đầu"}
	}
	duration := end.Sub(start).Hours()
	if room.MinBookingDuration > 0 && duration < room.MinBookingDuration {
		return &apperrors.ValidationError{
			Field:   "endDatetime",
			Message: fmt.Sprintf("thời lượng tối thiểu cho phòng này là %.1f giờ", room.MinBookingDuration),
		}
	}
	if room.MaxBookingDuration > 0 && duration > room.MaxBookingDuration {
		return &apperrors.ValidationError{
			Field:   "endDatetime",
			Message: fmt.Sprintf("thời lượng tối đa cho phòng này là %.1f giờ", room.MaxBookingDuration),
		}
	}
	return nil
}

// ValidateBookingAdvance kiểm tra đặt trước không quá số ngày cho phép
func ValidateBookingAdvance(room *models.Room, start, now time.Time) error {
	if room.BookingAdvanceDays <= 0 {
		return nil
	}
	limit := now.AddDate(0, 0, room.BookingAdvanceDays)
	if start.After(limit) {
		return &apperrors.ValidationError{
			Field:   "startDatetime",
			Message: fmt.Sprintf("chỉ được đặt trước tối đa %d ngày", room.BookingAdvanceDays),
		}
	}
	return nil
}

// ValidateBookingCapacity kiểm tra sức chứa phòng
func ValidateBookingCapacity(room *models.Room, numAttendees int) error {
	if room.Capacity > 0 && numAttendees > room.Capacity {
		return &apperrors.ValidationError{
			Field:   "attendees",
			Message: fmt.Sprintf("số người tham dự (%d) vượt quá sức chứa của phòng (%d)", numAttendees, room.Capacity),
		}
	}
	return nil
}

// ValidateLending kiểm tra tính hợp lệ của phiếu mượn
func ValidateLending(l *models.Lending) error {
	if l.BorrowerID == 0 {
		return &apperrors.ValidationError{Field: "borrowerId", Message: "người mượn không được để trống"}
	}
	if l.AssetID == 0 {
		return &apperrors.ValidationError{Field: "assetId", Message: "tài sản không được để trống"}
	}
	if !l.DateExpectedReturn.After(l.DateBorrow) {
		return &apperrors.ValidationError{Field: "dateExpectedReturn", Message: "thời gian trả phải sau thời gian mượn"}
	}
	return nil
}
