package models

import (
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
)

// BookingState định nghĩa interface cho các trạng thái đặt phòng.
// Các guard cần truy vấn dữ liệu (kiểm tra xung đột) nằm ở tầng service;
// state machine chỉ giữ luật chuyển trạng thái thuần túy.
type BookingState interface {
	Submit(b *Booking) error
	Confirm(b *Booking) error
	CheckIn(b *Booking, now time.Time, userID uint) error
	CheckOut(b *Booking, now time.Time) error
	Cancel(b *Booking, reason string) error
}

func bookingStateError(action string, status int) error {
	return &apperrors.StateError{Entity: "đặt phòng", Action: action, Status: status}
}

// BookingDraftState trạng thái nháp
type BookingDraftState struct{}

func (s *BookingDraftState) Submit(b *Booking) error {
	b.Status = constants.BookingStatusSubmitted
	return nil
}

func (s *BookingDraftState) Confirm(b *Booking) error {
	return bookingStateError("xác nhận", b.Status)
}

func (s *BookingDraftState) CheckIn(b *Booking, now time.Time, userID uint) error {
	return bookingStateError("check-in", b.Status)
}

func (s *BookingDraftState) CheckOut(b *Booking, now time.Time) error {
	return bookingStateError("check-out", b.Status)
}

func (s *BookingDraftState) Cancel(b *Booking, reason string) error {
	b.Status = constants.BookingStatusCancelled
	b.CancellationReason = reason
	return nil
}

// BookingSubmittedState trạng thái chờ duyệt
type BookingSubmittedState struct{}

func (s *BookingSubmittedState) Submit(b *Booking) error {
	return bookingStateError("gửi duyệt", b.Status)
}

func (s *BookingSubmittedState) Confirm(b *Booking) error {
	b.Status = constants.BookingStatusConfirmed
	return nil
}

func (s *BookingSubmittedState) CheckIn(b *Booking, now time.Time, userID uint) error {
	return bookingStateError("check-in", b.Status)
}

func (s *BookingSubmittedState) CheckOut(b *Booking, now time.Time) error {
	return bookingStateError("check-out", b.Status)
}

func (s *BookingSubmittedState) Cancel(b *Booking, reason string) error {
	b.Status = constants.BookingStatusCancelled
	b.CancellationReason = reason
	return nil
}

// BookingConfirmedState trạng thái đã xác nhận
type BookingConfirmedState struct{}

func (s *BookingConfirmedState) Submit(b *Booking) error {
	return bookingStateError("gửi duyệt", b.Status)
}

func (s *BookingConfirmedState) Confirm(b *Booking) error {
	return bookingStateError("xác nhận", b.Status)
}

func (s *BookingConfirmedState) CheckIn(b *Booking, now time.Time, userID uint) error {
	if !b.CanCheckinAt(now) {
		return bookingStateError("check-in ngoài khung giờ cho phép", b.Status)
	}
	b.Status = constants.BookingStatusInProgress
	b.CheckinDatetime = &now
	b.CheckinByID = &userID
	return nil
}

func (s *BookingConfirmedState) CheckOut(b *Booking, now time.Time) error {
	return bookingStateError("check-out khi chưa check-in", b.Status)
}

func (s *BookingConfirmedState) Cancel(b *Booking, reason string) error {
	b.Status = constants.BookingStatusCancelled
	b.CancellationReason = reason
	return nil
}

// BookingInProgressState trạng thái đang diễn ra
type BookingInProgressState struct{}

func (s *BookingInProgressState) Submit(b *Booking) error {
	return bookingStateError("gửi duyệt", b.Status)
}

func (s *BookingInProgressState) Confirm(b *Booking) error {
	return bookingStateError("xác nhận", b.Status)
}

func (s *BookingInProgressState) CheckIn(b *Booking, now time.Time, userID uint) error {
	return bookingStateError("check-in lần nữa", b.Status)
}

func (s *BookingInProgressState) CheckOut(b *Booking, now time.Time) error {
	b.Status = constants.BookingStatusDone
	b.CheckoutDatetime = &now
	return nil
}

func (s *BookingInProgressState) Cancel(b *Booking, reason string) error {
	b.Status = constants.BookingStatusCancelled
	b.CancellationReason = reason
	return nil
}

// BookingDoneState trạng thái hoàn thành
type BookingDoneState struct{}

func (s *BookingDoneState) Submit(b *Booking) error {
	return bookingStateError("gửi duyệt", b.Status)
}

func (s *BookingDoneState) Confirm(b *Booking) error {
	return bookingStateError("xác nhận", b.Status)
}

func (s *BookingDoneState) CheckIn(b *Booking, now time.Time, userID uint) error {
	return bookingStateError("check-in", b.Status)
}

func (s *BookingDoneState) CheckOut(b *Booking, now time.Time) error {
	return bookingStateError("check-out lần nữa", b.Status)
}

func (s *BookingDoneState) Cancel(b *Booking, reason string) error {
	return bookingStateError("hủy", b.Status)
}

// BookingCancelledState trạng thái đã hủy
type BookingCancelledState struct{}

func (s *BookingCancelledState) Submit(b *Booking) error {
	return bookingStateError("gửi duyệt", b.Status)
}

func (s *BookingCancelledState) Confirm(b *Booking) error {
	return bookingStateError("xác nhận", b.Status)
}

func (s *BookingCancelledState) CheckIn(b *Booking, now time.Time, userID uint) error {
	return bookingStateError("check-in", b.Status)
}

func (s *BookingCancelledState) CheckOut(b *Booking, now time.Time) error {
	return bookingStateError("check-out", b.Status)
}

func (s *BookingCancelledState) Cancel(b *Booking, reason string) error {
	return bookingStateError("hủy lần nữa", b.Status)
}

// GetBookingState trả về state tương ứng với trạng thái đặt phòng
func GetBookingState(status int) BookingState {
	switch status {
	case constants.BookingStatusDraft:
		return &BookingDraftState{}
	case constants.BookingStatusSubmitted:
		return &BookingSubmittedState{}
	case constants.BookingStatusConfirmed:
		return &BookingConfirmedState{}
	case constants.BookingStatusInProgress:
		return &BookingInProgressState{}
	case constants.BookingStatusDone:
		return &BookingDoneState{}
	case constants.BookingStatusCancelled:
		return &BookingCancelledState{}
	default:
		return &BookingDraftState{}
	}
}
