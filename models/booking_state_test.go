package models

import (
	"testing"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(status int) *Booking {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	return &Booking{
		ID:            1,
		Code:          "BK-TEST",
		RoomID:        1,
		StartDatetime: start,
		EndDatetime:   start.Add(time.Hour),
		OrganizerID:   10,
		Status:        status,
	}
}

func TestBookingLifecycleHappyPath(t *testing.T) {
	b := newTestBooking(constants.BookingStatusDraft)

	require.NoError(t, GetBookingState(b.Status).Submit(b))
	assert.Equal(t, constants.BookingStatusSubmitted, b.Status)

	require.NoError(t, GetBookingState(b.Status).Confirm(b))
	assert.Equal(t, constants.BookingStatusConfirmed, b.Status)

	checkinAt := b.StartDatetime.Add(-10 * time.Minute)
	require.NoError(t, GetBookingState(b.Status).CheckIn(b, checkinAt, 10))
	assert.Equal(t, constants.BookingStatusInProgress, b.Status)
	require.NotNil(t, b.CheckinDatetime)
	assert.Equal(t, checkinAt, *b.CheckinDatetime)
	require.NotNil(t, b.CheckinByID)
	assert.Equal(t, uint(10), *b.CheckinByID)

	checkoutAt := b.EndDatetime.Add(-5 * time.Minute)
	require.NoError(t, GetBookingState(b.Status).CheckOut(b, checkoutAt))
	assert.Equal(t, constants.BookingStatusDone, b.Status)
	require.NotNil(t, b.CheckoutDatetime)
}

func TestBookingCheckinWindow(t *testing.T) {
	b := newTestBooking(constants.BookingStatusConfirmed)

	// Sớm hơn 15 phút trước giờ họp thì chưa được vào
	tooEarly := b.StartDatetime.Add(-16 * time.Minute)
	err := GetBookingState(b.Status).CheckIn(b, tooEarly, 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
	assert.Equal(t, constants.BookingStatusConfirmed, b.Status)

	// Đúng mốc 15 phút trước giờ là được
	onEdge := b.StartDatetime.Add(-15 * time.Minute)
	assert.True(t, b.CanCheckinAt(onEdge))

	// Qua giờ kết thúc thì hết hạn check-in
	tooLate := b.EndDatetime.Add(time.Minute)
	assert.False(t, b.CanCheckinAt(tooLate))
}

func TestBookingCheckinOnlyOnce(t *testing.T) {
	b := newTestBooking(constants.BookingStatusConfirmed)
	now := b.StartDatetime
	require.NoError(t, GetBookingState(b.Status).CheckIn(b, now, 10))

	err := GetBookingState(b.Status).CheckIn(b, now.Add(time.Minute), 11)
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
}

func TestBookingCancelRules(t *testing.T) {
	for _, status := range []int{
		constants.BookingStatusDraft,
		constants.BookingStatusSubmitted,
		constants.BookingStatusConfirmed,
		constants.BookingStatusInProgress,
	} {
		b := newTestBooking(status)
		require.NoError(t, GetBookingState(b.Status).Cancel(b, "đổi kế hoạch"))
		assert.Equal(t, constants.BookingStatusCancelled, b.Status)
		assert.Equal(t, "đổi kế hoạch", b.CancellationReason)
	}

	for _, status := range []int{
		constants.BookingStatusDone,
		constants.BookingStatusCancelled,
	} {
		b := newTestBooking(status)
		err := GetBookingState(b.Status).Cancel(b, "muộn rồi")
		require.Error(t, err)
		assert.True(t, apperrors.IsState(err))
	}
}

func TestBookingInvalidTransitions(t *testing.T) {
	b := newTestBooking(constants.BookingStatusDraft)
	assert.Error(t, GetBookingState(b.Status).Confirm(b))
	assert.Error(t, GetBookingState(b.Status).CheckIn(b, b.StartDatetime, 10))
	assert.Error(t, GetBookingState(b.Status).CheckOut(b, b.EndDatetime))

	b = newTestBooking(constants.BookingStatusConfirmed)
	assert.Error(t, GetBookingState(b.Status).CheckOut(b, b.EndDatetime))
}

func TestBookingNumAttendees(t *testing.T) {
	b := newTestBooking(constants.BookingStatusDraft)
	b.Attendees = []User{{ID: 10}, {ID: 11}, {ID: 12}}
	b.ExternalAttendees = 2
	// Người tổ chức (ID 10) đã nằm trong danh sách, không đếm hai lần
	assert.Equal(t, 5, b.NumAttendees())

	b.Attendees = []User{{ID: 11}, {ID: 12}}
	assert.Equal(t, 5, b.NumAttendees())
}

func TestBookingBlockingStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]int{constants.BookingStatusConfirmed, constants.BookingStatusInProgress},
		BookingBlockingStatuses())
}
