package services

import (
	"time"

	"dnu_asset/constants"
	"dnu_asset/models"

	"gorm.io/gorm"
)

// CurrentAssignment trả về phiếu gán đang mở của một tài sản, nil nếu
// không ai đang giữ. Đây là cách duy nhất xác định "người đang giữ",
// không đọc từ trường nào trên tài sản.
func CurrentAssignment(db *gorm.DB, assetID uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := db.
		Where("asset_id = ? AND status = ? AND date_to IS NULL", assetID, constants.AssignmentStatusActive).
		First(&assignment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CloseOpenAssignments đóng mọi phiếu gán đang mở của tài sản, trừ excludeID
func CloseOpenAssignments(tx *gorm.DB, assetID uint, date time.Time, excludeID uint) error {
	query := tx.Model(&models.Assignment{}).
		Where("asset_id = ? AND status = ? AND date_to IS NULL", assetID, constants.AssignmentStatusActive)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	return query.Updates(map[string]interface{}{
		"status":  constants.AssignmentStatusReturned,
		"date_to": date,
	}).Error
}

// hasBlockingLending còn phiếu mượn nào đang chiếm tài sản không
func hasBlockingLending(tx *gorm.DB, assetID uint, excludeID uint) (bool, error) {
	var n int64
	query := tx.Model(&models.Lending{}).
		Where("asset_id = ? AND status IN ?", assetID, models.LendingBlockingStatuses())
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
