package services

import (
	"testing"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardLending(status int) *models.Lending {
	return &models.Lending{ID: 7, AssetID: 3, BorrowerID: 10, Status: status}
}

func completedLendingHandover(l *models.Lending) *models.Handover {
	lendingID := l.ID
	return &models.Handover{
		ID:        1,
		AssetID:   l.AssetID,
		LendingID: &lendingID,
		Type:      constants.HandoverTypeLending,
		Status:    constants.HandoverStatusCompleted,
	}
}

func TestApproveGuardRequestedNeedsManager(t *testing.T) {
	l := guardLending(constants.LendingStatusRequested)

	err := approveGuard(l, &models.User{ID: 5, Role: constants.RoleEmployee}, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsPermission(err))

	assert.NoError(t, approveGuard(l, &models.User{ID: 5, Role: constants.RoleAssetManager}, nil, nil))
	assert.NoError(t, approveGuard(l, &models.User{ID: 5, Role: constants.RoleAdmin}, nil, nil))
}

func TestApproveGuardPendingApprovalNeedsCustodian(t *testing.T) {
	l := guardLending(constants.LendingStatusPendingApproval)
	open := &models.Assignment{ID: 2, AssetID: l.AssetID, EmployeeID: 20}
	handover := completedLendingHandover(l)

	// Quản lý thường không thay được người đang giữ tài sản
	err := approveGuard(l, &models.User{ID: 99, Role: constants.RoleAssetManager}, open, handover)
	require.Error(t, err)
	assert.True(t, apperrors.IsPermission(err))

	// Chính người giữ đồng ý thì được
	assert.NoError(t, approveGuard(l, &models.User{ID: 20, Role: constants.RoleEmployee}, open, handover))

	// Admin vượt quyền được
	assert.NoError(t, approveGuard(l, &models.User{ID: 99, Role: constants.RoleAdmin}, open, handover))
}

func TestApproveGuardPendingApprovalNeedsCompletedHandover(t *testing.T) {
	l := guardLending(constants.LendingStatusPendingApproval)
	open := &models.Assignment{ID: 2, AssetID: l.AssetID, EmployeeID: 20}
	custodian := &models.User{ID: 20, Role: constants.RoleEmployee}

	// Chưa có biên bản bàn giao thì chưa được duyệt
	err := approveGuard(l, custodian, open, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependencyNotReady(err))

	// Đã ký nhưng chưa hoàn thành cũng chưa đủ
	signed := completedLendingHandover(l)
	signed.Status = constants.HandoverStatusSigned
	err = approveGuard(l, custodian, open, signed)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependencyNotReady(err))

	// Biên bản loại hoàn trả không thay được biên bản cho mượn
	wrongType := completedLendingHandover(l)
	wrongType.Type = constants.HandoverTypeReturn
	err = approveGuard(l, custodian, open, wrongType)
	require.Error(t, err)
	assert.True(t, apperrors.IsDependencyNotReady(err))

	assert.NoError(t, approveGuard(l, custodian, open, completedLendingHandover(l)))
}
