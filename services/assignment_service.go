package services

import (
	"context"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"
	"dnu_asset/services/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentService quản lý phiếu gán tài sản dài hạn. Phiếu gán chỉ
// chuyển sang đang giữ qua biên bản bàn giao hoàn thành; service này
// lo phần tạo, thu hồi và hủy.
type AssignmentService struct {
	db     *gorm.DB
	logger logger.Logger
}

// AssignmentServiceOptions tham số khởi tạo AssignmentService
type AssignmentServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

// NewAssignmentService tạo instance mới của AssignmentService
func NewAssignmentService(opts AssignmentServiceOptions) *AssignmentService {
	return &AssignmentService{db: opts.DB, logger: opts.Logger}
}

// GetByID lấy phiếu gán theo ID
func (s *AssignmentService) GetByID(id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := s.db.
		Preload("Asset").
		Preload("Employee").
		First(&assignment, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// GetOpenByAsset lấy phiếu gán đang mở của một tài sản, nil nếu không có
func (s *AssignmentService) GetOpenByAsset(assetID uint) (*models.Assignment, error) {
	return CurrentAssignment(s.db, assetID)
}

// ListByEmployee liệt kê phiếu gán của một nhân viên
func (s *AssignmentService) ListByEmployee(employeeID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := s.db.
		Preload("Asset").
		Where("employee_id = ?", employeeID).
		Order("id DESC").
		Find(&assignments).Error
	return assignments, err
}

// Create tạo phiếu gán nháp. Phiếu chỉ có hiệu lực sau khi biên bản
// bàn giao loại gán được hoàn thành.
func (s *AssignmentService) Create(ctx context.Context, assignment *models.Assignment) error {
	var asset models.Asset
	if err := s.db.First(&asset, assignment.AssetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAssetNotFound
		}
		return err
	}
	if !asset.Active || asset.Status == constants.AssetStatusRetired {
		return &apperrors.ValidationError{Field: "assetId", Message: "tài sản đã ngừng sử dụng"}
	}
	var employee models.User
	if err := s.db.First(&employee, assignment.EmployeeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	if assignment.Code == "" {
		assignment.Code = NewCode("AS")
	}
	assignment.Status = constants.AssignmentStatusDraft
	assignment.DateTo = nil
	return s.db.WithContext(ctx).Create(assignment).Error
}

// ReturnAsset thu hồi tài sản từ người đang giữ: đóng phiếu gán, trả
// tài sản về kho. Tài sản còn phiếu mượn đang chiếm thì chưa thu hồi
// được, phải xử lý phiếu mượn trước.
func (s *AssignmentService) ReturnAsset(ctx context.Context, id uint, condition int, notes string, now time.Time) (*models.Assignment, error) {
	var assignment models.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&assignment, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrAssignmentNotFound
			}
			return err
		}
		if !assignment.IsOpen() {
			return &apperrors.StateError{Entity: "phiếu gán", Action: "thu hồi", Status: assignment.Status}
		}

		var asset models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&asset, assignment.AssetID).Error; err != nil {
			return err
		}
		blocking, err := hasBlockingLending(tx, assignment.AssetID, 0)
		if err != nil {
			return err
		}
		if blocking {
			return &apperrors.DependencyNotReadyError{
				Dependency: "lending",
				Message:    "tài sản còn phiếu mượn chưa trả, xử lý phiếu mượn trước khi thu hồi",
			}
		}

		result := tx.Model(&models.Assignment{}).
			Where("id = ? AND status = ? AND date_to IS NULL", assignment.ID, constants.AssignmentStatusActive).
			Updates(map[string]interface{}{
				"status":           constants.AssignmentStatusReturned,
				"date_to":          now,
				"return_condition": condition,
				"return_notes":     notes,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &apperrors.ConflictError{Resource: "phiếu gán " + assignment.Code}
		}
		assignment.Status = constants.AssignmentStatusReturned
		assignment.DateTo = &now
		assignment.ReturnCondition = &condition
		assignment.ReturnNotes = notes

		newAssetStatus := constants.AssetStatusAvailable
		if condition == constants.ConditionDamaged || condition == constants.ConditionBroken {
			newAssetStatus = constants.AssetStatusMaintenance
			reporterID := assignment.EmployeeID
			maintenance := models.AssetMaintenance{
				AssetID:     asset.ID,
				ReporterID:  &reporterID,
				Description: "Tài sản hư hỏng khi thu hồi phiếu gán " + assignment.Code,
				Priority:    models.MaintenancePriorityHigh,
				Status:      constants.MaintenanceStatusPending,
			}
			if err := tx.Create(&maintenance).Error; err != nil {
				return err
			}
		}
		return tx.Model(&asset).Update("status", newAssetStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Cancel hủy phiếu gán còn ở trạng thái nháp, kèm xóa biên bản dang dở
func (s *AssignmentService) Cancel(ctx context.Context, id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&assignment, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrAssignmentNotFound
			}
			return err
		}
		if assignment.Status != constants.AssignmentStatusDraft {
			return &apperrors.StateError{Entity: "phiếu gán", Action: "hủy", Status: assignment.Status}
		}
		result := tx.Model(&models.Assignment{}).
			Where("id = ? AND status = ?", assignment.ID, constants.AssignmentStatusDraft).
			Update("status", constants.AssignmentStatusCancelled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &apperrors.ConflictError{Resource: "phiếu gán " + assignment.Code}
		}
		assignment.Status = constants.AssignmentStatusCancelled
		return tx.Where("assignment_id = ? AND status <> ?", assignment.ID, constants.HandoverStatusCompleted).
			Delete(&models.Handover{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
