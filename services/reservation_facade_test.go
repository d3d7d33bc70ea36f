package services

import (
	"context"
	"testing"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"
	"dnu_asset/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLendingWorkflow giả lập vòng đời phiếu mượn trong bộ nhớ
type fakeLendingWorkflow struct {
	requestErr error
	loans      map[uint]*models.Lending
	nextID     uint
	cancelled  []uint
}

func newFakeLendingWorkflow() *fakeLendingWorkflow {
	return &fakeLendingWorkflow{loans: map[uint]*models.Lending{}}
}

func (w *fakeLendingWorkflow) Create(ctx context.Context, l *models.Lending) error {
	w.nextID++
	l.ID = w.nextID
	l.Status = constants.LendingStatusDraft
	w.loans[l.ID] = l
	return nil
}

func (w *fakeLendingWorkflow) Request(ctx context.Context, id uint) (*models.Lending, error) {
	if w.requestErr != nil {
		return nil, w.requestErr
	}
	l := w.loans[id]
	l.Status = constants.LendingStatusPendingApproval
	return l, nil
}

func (w *fakeLendingWorkflow) Cancel(ctx context.Context, id uint) (*models.Lending, error) {
	w.cancelled = append(w.cancelled, id)
	l := w.loans[id]
	l.Status = constants.LendingStatusCancelled
	return l, nil
}

func facadeWithLender(w *fakeLendingWorkflow) *ReservationFacade {
	return &ReservationFacade{
		lendings: w,
		logger:   logger.NewDefaultLogger(logger.InfoLevel),
	}
}

func facadeTestBooking() *models.Booking {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	return &models.Booking{
		ID:            1,
		Code:          "BK-F",
		RoomID:        1,
		StartDatetime: start,
		EndDatetime:   start.Add(2 * time.Hour),
		EquipmentRequests: []models.EquipmentRequest{
			{AssetID: 5},
			{AssetID: 6,
				StartDatetime: start.Add(30 * time.Minute),
				EndDatetime:   start.Add(time.Hour)},
		},
	}
}

func TestEquipmentWindowDefaultsToMeeting(t *testing.T) {
	b := facadeTestBooking()

	// Không khai khoảng riêng thì giữ thiết bị theo khoảng họp
	start, end := equipmentWindow(b, b.EquipmentRequests[0])
	assert.Equal(t, b.StartDatetime, start)
	assert.Equal(t, b.EndDatetime, end)

	// Có khai thì theo khoảng khai
	start, end = equipmentWindow(b, b.EquipmentRequests[1])
	assert.Equal(t, b.StartDatetime.Add(30*time.Minute), start)
	assert.Equal(t, b.StartDatetime.Add(time.Hour), end)
}

func TestMaterializeEquipmentStopsAtRequest(t *testing.T) {
	w := newFakeLendingWorkflow()
	f := facadeWithLender(w)
	b := facadeTestBooking()
	b.OrganizerID = 10

	lending, skip := f.materializeEquipment(context.Background(), b, b.EquipmentRequests[0])
	require.NotNil(t, lending)
	assert.Empty(t, skip)

	// Phiếu dừng ở trạng thái chờ duyệt, không bị duyệt hộ và không bị hủy
	assert.Equal(t, constants.LendingStatusPendingApproval, lending.Status)
	assert.True(t, lending.IsAutoCreated)
	require.NotNil(t, lending.BookingID)
	assert.Equal(t, b.ID, *lending.BookingID)
	assert.Equal(t, uint(10), lending.BorrowerID)
	assert.Empty(t, w.cancelled)
}

func TestMaterializeEquipmentConflictCancelsDraft(t *testing.T) {
	w := newFakeLendingWorkflow()
	w.requestErr = &apperrors.ConflictError{Resource: "tài sản máy chiếu"}
	f := facadeWithLender(w)
	b := facadeTestBooking()

	lending, skip := f.materializeEquipment(context.Background(), b, b.EquipmentRequests[0])
	assert.Nil(t, lending)
	assert.NotEmpty(t, skip)

	// Phiếu nháp vừa tạo bị hủy, thiết bị ghi chú bỏ qua
	require.Len(t, w.cancelled, 1)
	assert.Equal(t, constants.LendingStatusCancelled, w.loans[w.cancelled[0]].Status)
}

func TestMaterializeEquipmentOtherErrorKeepsLoan(t *testing.T) {
	w := newFakeLendingWorkflow()
	w.requestErr = &apperrors.ValidationError{Message: "khoảng mượn không hợp lệ"}
	f := facadeWithLender(w)
	b := facadeTestBooking()

	lending, skip := f.materializeEquipment(context.Background(), b, b.EquipmentRequests[0])
	assert.Nil(t, lending)
	assert.NotEmpty(t, skip)

	// Chỉ xung đột lịch mới hủy phiếu; lỗi khác giữ phiếu lại
	assert.Empty(t, w.cancelled)
}

func TestUncoveredEquipment(t *testing.T) {
	b := facadeTestBooking()

	lendings := []models.Lending{
		{AssetID: 5,
			DateBorrow:         b.StartDatetime,
			DateExpectedReturn: b.EndDatetime,
			Status:             constants.LendingStatusApproved},
	}

	// Thiết bị 6 chưa có phiếu nào phủ
	uncovered := UncoveredEquipment(b, lendings)
	require.Len(t, uncovered, 1)
	assert.Equal(t, uint(6), uncovered[0])

	lendings = append(lendings, models.Lending{
		AssetID:            6,
		DateBorrow:         b.StartDatetime,
		DateExpectedReturn: b.EndDatetime,
		Status:             constants.LendingStatusActive,
	})
	assert.Empty(t, UncoveredEquipment(b, lendings))
}

func TestUncoveredEquipmentIgnoresClosed(t *testing.T) {
	b := facadeTestBooking()
	b.EquipmentRequests = b.EquipmentRequests[:1]

	// Phiếu đã hủy hoặc đã trả không giữ chỗ cho thiết bị
	lendings := []models.Lending{
		{AssetID: 5,
			DateBorrow:         b.StartDatetime,
			DateExpectedReturn: b.EndDatetime,
			Status:             constants.LendingStatusCancelled},
		{AssetID: 5,
			DateBorrow:         b.StartDatetime,
			DateExpectedReturn: b.EndDatetime,
			Status:             constants.LendingStatusReturned},
	}
	assert.Len(t, UncoveredEquipment(b, lendings), 1)
}

func TestUncoveredEquipmentPartialWindow(t *testing.T) {
	b := facadeTestBooking()
	b.EquipmentRequests = b.EquipmentRequests[:1]

	// Phiếu chỉ phủ nửa đầu cuộc họp thì chưa tính là đủ
	lendings := []models.Lending{
		{AssetID: 5,
			DateBorrow:         b.StartDatetime,
			DateExpectedReturn: b.StartDatetime.Add(time.Hour),
			Status:             constants.LendingStatusApproved},
	}
	assert.Len(t, UncoveredEquipment(b, lendings), 1)
}
