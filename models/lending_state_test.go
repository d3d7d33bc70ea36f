package models

import (
	"testing"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLending(status int) *Lending {
	borrow := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	return &Lending{
		ID:                 1,
		Code:               "LD-TEST",
		AssetID:            1,
		BorrowerID:         10,
		DateBorrow:         borrow,
		DateExpectedReturn: borrow.Add(48 * time.Hour),
		Status:             status,
	}
}

func TestLendingLifecycleHappyPath(t *testing.T) {
	l := newTestLending(constants.LendingStatusDraft)

	require.NoError(t, GetLendingState(l.Status).Request(l, false))
	assert.Equal(t, constants.LendingStatusRequested, l.Status)

	require.NoError(t, GetLendingState(l.Status).Approve(l, 20))
	assert.Equal(t, constants.LendingStatusApproved, l.Status)
	require.NotNil(t, l.ApprovedByID)
	assert.Equal(t, uint(20), *l.ApprovedByID)

	require.NoError(t, GetLendingState(l.Status).Activate(l))
	assert.Equal(t, constants.LendingStatusActive, l.Status)

	returnAt := l.DateExpectedReturn.Add(-time.Hour)
	require.NoError(t, GetLendingState(l.Status).Return(l, returnAt, 20))
	assert.Equal(t, constants.LendingStatusReturned, l.Status)
	require.NotNil(t, l.DateActualReturn)
	assert.Equal(t, returnAt, *l.DateActualReturn)
	require.NotNil(t, l.ReturnedToID)
	assert.Equal(t, uint(20), *l.ReturnedToID)
}

func TestLendingRequestNeedsApproval(t *testing.T) {
	// Tài sản đang có người giữ: yêu cầu chuyển sang chờ người giữ đồng ý
	l := newTestLending(constants.LendingStatusDraft)
	require.NoError(t, GetLendingState(l.Status).Request(l, true))
	assert.Equal(t, constants.LendingStatusPendingApproval, l.Status)

	// Người giữ đồng ý thì phiếu được duyệt như bình thường
	require.NoError(t, GetLendingState(l.Status).Approve(l, 30))
	assert.Equal(t, constants.LendingStatusApproved, l.Status)
}

func TestLendingActiveCannotCancel(t *testing.T) {
	l := newTestLending(constants.LendingStatusActive)
	err := GetLendingState(l.Status).Cancel(l)
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
	assert.Equal(t, constants.LendingStatusActive, l.Status)
}

func TestLendingCancellableStatuses(t *testing.T) {
	for _, status := range []int{
		constants.LendingStatusDraft,
		constants.LendingStatusRequested,
		constants.LendingStatusPendingApproval,
		constants.LendingStatusApproved,
	} {
		l := newTestLending(status)
		assert.True(t, l.IsCancellable())
		require.NoError(t, GetLendingState(l.Status).Cancel(l))
		assert.Equal(t, constants.LendingStatusCancelled, l.Status)
	}

	for _, status := range []int{
		constants.LendingStatusActive,
		constants.LendingStatusReturned,
		constants.LendingStatusCancelled,
	} {
		l := newTestLending(status)
		assert.False(t, l.IsCancellable())
	}
}

func TestLendingReturnClearsOverdueFlag(t *testing.T) {
	l := newTestLending(constants.LendingStatusActive)
	l.IsOverdue = true
	// Phiếu quá hạn vẫn chặn lịch như đang mượn
	assert.True(t, l.IsBlocking())

	now := l.DateExpectedReturn.Add(24 * time.Hour)
	require.NoError(t, GetLendingState(l.Status).Return(l, now, 20))
	assert.False(t, l.IsOverdue)
	assert.False(t, l.IsBlocking())
}

func TestLendingActivateRequiresApproval(t *testing.T) {
	for _, status := range []int{
		constants.LendingStatusDraft,
		constants.LendingStatusRequested,
		constants.LendingStatusPendingApproval,
	} {
		l := newTestLending(status)
		err := GetLendingState(l.Status).Activate(l)
		require.Error(t, err)
		assert.True(t, apperrors.IsState(err))
	}
}

func TestLendingEnsureHandoverCompleted(t *testing.T) {
	l := newTestLending(constants.LendingStatusApproved)

	// Chưa có biên bản
	err := l.EnsureHandoverCompleted(nil, constants.HandoverTypeLending)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependencyNotReady(err))

	lid := l.ID
	h := &Handover{
		LendingID: &lid,
		AssetID:   l.AssetID,
		Type:      constants.HandoverTypeLending,
		Status:    constants.HandoverStatusSigned,
	}

	// Biên bản đã ký nhưng chưa hoàn thành
	err = l.EnsureHandoverCompleted(h, constants.HandoverTypeLending)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependencyNotReady(err))

	h.Status = constants.HandoverStatusCompleted
	require.NoError(t, l.EnsureHandoverCompleted(h, constants.HandoverTypeLending))

	// Biên bản loại khác không thay thế được
	err = l.EnsureHandoverCompleted(h, constants.HandoverTypeReturn)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependencyNotReady(err))
}
