package validator

import (
	"testing"
	"time"

	apperrors "dnu_asset/errors"
	"dnu_asset/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom() *models.Room {
	return &models.Room{
		ID:                 1,
		Code:               "A-201",
		Name:               "Phòng họp A201",
		Capacity:           8,
		MinBookingDuration: 0.5,
		MaxBookingDuration: 8,
		BookingAdvanceDays: 30,
	}
}

func testBooking() *models.Booking {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	return &models.Booking{
		Subject:       "Họp tuần",
		RoomID:        1,
		StartDatetime: start,
		EndDatetime:   start.Add(time.Hour),
		OrganizerID:   10,
	}
}

func TestValidateBookingOK(t *testing.T) {
	require.NoError(t, ValidateBooking(testRoom(), testBooking()))
}

func TestValidateBookingRequiredFields(t *testing.T) {
	b := testBooking()
	b.Subject = ""
	err := ValidateBooking(testRoom(), b)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	b = testBooking()
	b.OrganizerID = 0
	assert.Error(t, ValidateBooking(testRoom(), b))
}

func TestValidateBookingInterval(t *testing.T) {
	room := testRoom()
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	// Kết thúc trước hoặc bằng bắt đầu
	assert.Error(t, ValidateBookingInterval(room, start, start))
	assert.Error(t, ValidateBookingInterval(room, start, start.Add(-time.Hour)))

	// Ngắn hơn thời lượng tối thiểu
	err := ValidateBookingInterval(room, start, start.Add(15*time.Minute))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// Dài hơn thời lượng tối đa
	assert.Error(t, ValidateBookingInterval(room, start, start.Add(9*time.Hour)))

	// Đúng biên thì hợp lệ
	assert.NoError(t, ValidateBookingInterval(room, start, start.Add(30*time.Minute)))
	assert.NoError(t, ValidateBookingInterval(room, start, start.Add(8*time.Hour)))
}

func TestValidateBookingAdvance(t *testing.T) {
	room := testRoom()
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateBookingAdvance(room, now.AddDate(0, 0, 29), now))
	assert.Error(t, ValidateBookingAdvance(room, now.AddDate(0, 0, 31), now))

	// Không giới hạn khi cấu hình bằng 0
	room.BookingAdvanceDays = 0
	assert.NoError(t, ValidateBookingAdvance(room, now.AddDate(1, 0, 0), now))
}

func TestValidateBookingCapacity(t *testing.T) {
	room := testRoom()
	assert.NoError(t, ValidateBookingCapacity(room, 8))
	assert.Error(t, ValidateBookingCapacity(room, 9))

	// Phòng chưa khai sức chứa thì không chặn
	room.Capacity = 0
	assert.NoError(t, ValidateBookingCapacity(room, 100))
}

func TestValidateLending(t *testing.T) {
	borrow := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	l := &models.Lending{
		AssetID:            1,
		BorrowerID:         10,
		DateBorrow:         borrow,
		DateExpectedReturn: borrow.Add(24 * time.Hour),
	}
	require.NoError(t, ValidateLending(l))

	l.DateExpectedReturn = l.DateBorrow
	err := ValidateLending(l)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	l.DateExpectedReturn = borrow.Add(24 * time.Hour)
	l.AssetID = 0
	assert.Error(t, ValidateLending(l))
}
