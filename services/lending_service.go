package services

import (
	"context"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"
	"dnu_asset/services/logger"
	"dnu_asset/services/notification"
	"dnu_asset/validator"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LendingService điều khiển vòng đời mượn tài sản
type LendingService struct {
	db           *gorm.DB
	availability *AvailabilityService
	directory    DirectoryLookup
	publisher    notification.MeetingPublisher
	logger       logger.Logger
}

// LendingServiceOptions tham số khởi tạo LendingService
type LendingServiceOptions struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Directory    DirectoryLookup
	Publisher    notification.MeetingPublisher
	Logger       logger.Logger
}

// NewLendingService tạo instance mới của LendingService
func NewLendingService(opts LendingServiceOptions) *LendingService {
	return &LendingService{
		db:           opts.DB,
		availability: opts.Availability,
		directory:    opts.Directory,
		publisher:    opts.Publisher,
		logger:       opts.Logger,
	}
}

// GetByID lấy phiếu mượn theo ID
func (s *LendingService) GetByID(id uint) (*models.Lending, error) {
	var lending models.Lending
	err := s.db.
		Preload("Asset").
		Preload("Borrower").
		Preload("ApprovedBy").
		First(&lending, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrLendingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lending, nil
}

// Create tạo phiếu mượn nháp
func (s *LendingService) Create(ctx context.Context, lending *models.Lending) error {
	var asset models.Asset
	if err := s.db.First(&asset, lending.AssetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAssetNotFound
		}
		return err
	}
	if err := validator.ValidateLending(lending); err != nil {
		return err
	}
	if lending.Code == "" {
		lending.Code = NewCode("LD")
	}
	lending.Status = constants.LendingStatusDraft
	return s.db.WithContext(ctx).Create(lending).Error
}

// Request gửi yêu cầu mượn. Khoảng xin mượn được đối chiếu ngay với
// các phiếu đang giữ tài sản; trùng giờ thì từ chối luôn thay vì để
// đến lúc duyệt mới vỡ. Cần duyệt thêm khi tài sản đang được giao cho
// người giữ khác, hoặc người mượn còn phiếu quá hạn chưa trả.
func (s *LendingService) Request(ctx context.Context, id uint) (*models.Lending, error) {
	var lending models.Lending
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lending, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLendingNotFound
			}
			return err
		}

		var asset models.Asset
		if err := tx.First(&asset, lending.AssetID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrAssetNotFound
			}
			return err
		}
		ok, conflicts, err := s.availability.WithTx(tx).CheckAsset(
			lending.AssetID, lending.DateBorrow, lending.DateExpectedReturn, lending.ID)
		if err != nil {
			return err
		}
		if !ok {
			return &apperrors.ConflictError{Resource: "tài sản " + asset.Name, Conflicts: conflicts}
		}

		needsApproval := false
		open, err := CurrentAssignment(tx, lending.AssetID)
		if err != nil {
			return err
		}
		if open != nil && open.EmployeeID != lending.BorrowerID {
			needsApproval = true
		}
		var overdueCount int64
		if err := tx.Model(&models.Lending{}).
			Where("borrower_id = ? AND status = ? AND is_overdue = ? AND id <> ?",
				lending.BorrowerID, constants.LendingStatusActive, true, lending.ID).
			Count(&overdueCount).Error; err != nil {
			return err
		}
		if overdueCount > 0 {
			needsApproval = true
		}

		oldStatus := lending.Status
		if err := models.GetLendingState(oldStatus).Request(&lending, needsApproval); err != nil {
			return err
		}
		return commitLendingStatus(tx, &lending, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	if lending.Status == constants.LendingStatusPendingApproval {
		s.notifyCustodian(ctx, &lending)
	}
	return &lending, nil
}

// Approve duyệt phiếu mượn và đặt giữ tài sản trong khoảng mượn. Kiểm
// tra xung đột chạy chung transaction với lệnh ghi; tài sản đã bị
// phiếu khác giữ trùng giờ thì từ chối kèm danh sách đụng độ.
func (s *LendingService) Approve(ctx context.Context, id uint, approver *models.User) (*models.Lending, error) {
	var lending models.Lending
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lending, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLendingNotFound
			}
			return err
		}

		var asset models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&asset, lending.AssetID).Error; err != nil {
			return err
		}

		var open *models.Assignment
		var handover *models.Handover
		if lending.Status == constants.LendingStatusPendingApproval {
			var err error
			open, err = CurrentAssignment(tx, lending.AssetID)
			if err != nil {
				return err
			}
			handover, err = latestHandoverFor(tx, lending.ID, constants.HandoverTypeLending)
			if err != nil {
				return err
			}
		}
		if err := approveGuard(&lending, approver, open, handover); err != nil {
			return err
		}

		ok, conflicts, err := s.availability.WithTx(tx).CheckAsset(
			lending.AssetID, lending.DateBorrow, lending.DateExpectedReturn, lending.ID)
		if err != nil {
			return err
		}
		if !ok {
			return &apperrors.ConflictError{Resource: "tài sản " + asset.Name, Conflicts: conflicts}
		}

		oldStatus := lending.Status
		if err := models.GetLendingState(oldStatus).Approve(&lending, approver.ID); err != nil {
			return err
		}
		return commitLendingStatus(tx, &lending, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	return &lending, nil
}

// Activate kích hoạt phiếu mượn khi tài sản thực sự rời kho. Bắt buộc
// biên bản bàn giao loại cho mượn đã đủ chữ ký và hoàn tất.
func (s *LendingService) Activate(ctx context.Context, id uint) (*models.Lending, error) {
	var lending models.Lending
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lending, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLendingNotFound
			}
			return err
		}

		handover, err := latestHandoverFor(tx, lending.ID, constants.HandoverTypeLending)
		if err != nil {
			return err
		}
		if err := lending.EnsureHandoverCompleted(handover, constants.HandoverTypeLending); err != nil {
			return err
		}

		oldStatus := lending.Status
		if err := models.GetLendingState(oldStatus).Activate(&lending); err != nil {
			return err
		}
		return commitLendingStatus(tx, &lending, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	return &lending, nil
}

// Return trả tài sản. Bắt buộc biên bản hoàn trả đã hoàn tất; tình
// trạng hỏng thì mở phiếu bảo trì và đưa tài sản vào trạng thái bảo
// trì thay vì trả về sẵn sàng.
func (s *LendingService) Return(ctx context.Context, id uint, returnedToID uint, condition int, now time.Time) (*models.Lending, error) {
	var lending models.Lending
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lending, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLendingNotFound
			}
			return err
		}

		var asset models.Asset
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&asset, lending.AssetID).Error; err != nil {
			return err
		}

		handover, err := latestHandoverFor(tx, lending.ID, constants.HandoverTypeReturn)
		if err != nil {
			return err
		}
		if err := lending.EnsureHandoverCompleted(handover, constants.HandoverTypeReturn); err != nil {
			return err
		}

		oldStatus := lending.Status
		if err := models.GetLendingState(oldStatus).Return(&lending, now, returnedToID); err != nil {
			return err
		}
		lending.ReturnCondition = &condition
		if err := commitLendingStatus(tx, &lending, oldStatus); err != nil {
			return err
		}

		return s.releaseAsset(tx, &asset, &lending, condition)
	})
	if err != nil {
		return nil, err
	}
	return &lending, nil
}

// releaseAsset trả tài sản về trạng thái phù hợp sau khi mượn xong
func (s *LendingService) releaseAsset(tx *gorm.DB, asset *models.Asset, lending *models.Lending, condition int) error {
	if condition == constants.ConditionDamaged || condition == constants.ConditionBroken {
		reporterID := lending.BorrowerID
		maintenance := models.AssetMaintenance{
			AssetID:     asset.ID,
			ReporterID:  &reporterID,
			Description: "Tài sản hư hỏng khi hoàn trả phiếu mượn " + lending.Code,
			Priority:    models.MaintenancePriorityHigh,
			Status:      constants.MaintenanceStatusPending,
		}
		if err := tx.Create(&maintenance).Error; err != nil {
			return err
		}
		return tx.Model(asset).Update("status", constants.AssetStatusMaintenance).Error
	}

	// Tài sản còn bản ghi giao mở thì quay về người được giao, không về kho
	open, err := CurrentAssignment(tx, asset.ID)
	if err != nil {
		return err
	}
	if open != nil {
		return tx.Model(asset).Update("status", constants.AssetStatusAssigned).Error
	}
	return tx.Model(asset).Update("status", constants.AssetStatusAvailable).Error
}

// Cancel hủy phiếu mượn; phiếu đã kích hoạt thì không hủy được
func (s *LendingService) Cancel(ctx context.Context, id uint) (*models.Lending, error) {
	var lending models.Lending
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lending, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLendingNotFound
			}
			return err
		}
		oldStatus := lending.Status
		if err := models.GetLendingState(oldStatus).Cancel(&lending); err != nil {
			return err
		}
		if err := commitLendingStatus(tx, &lending, oldStatus); err != nil {
			return err
		}

		// Biên bản bàn giao chưa hoàn tất của phiếu bị hủy thì xóa luôn
		return tx.Where("lending_id = ? AND status <> ?", lending.ID, constants.HandoverStatusCompleted).
			Delete(&models.Handover{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &lending, nil
}

// SweepOverdue đánh dấu quá hạn các phiếu đang mượn đã qua ngày hẹn
// trả. Chỉ bật cờ, phiếu vẫn giữ tài sản như bình thường.
func (s *LendingService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	var lendings []models.Lending
	if err := s.db.
		Preload("Asset").
		Preload("Borrower").
		Where("status = ? AND is_overdue = ? AND date_expected_return < ?",
			constants.LendingStatusActive, false, now).
		Find(&lendings).Error; err != nil {
		return 0, err
	}
	count := 0
	for _, l := range lendings {
		result := s.db.Model(&models.Lending{}).
			Where("id = ? AND status = ? AND is_overdue = ?", l.ID, constants.LendingStatusActive, false).
			Update("is_overdue", true)
		if result.Error != nil {
			s.logger.Warn("đánh dấu quá hạn phiếu %s thất bại: %v", l.Code, result.Error)
			continue
		}
		if result.RowsAffected == 0 {
			continue
		}
		count++
		if s.publisher != nil {
			if err := s.publisher.NotifyOverdue(l.Code, l.Borrower.Email); err != nil {
				s.logger.Warn("gửi thông báo quá hạn phiếu %s thất bại: %v", l.Code, err)
			}
		}
	}
	return count, nil
}

// approveGuard kiểm tra quyền duyệt theo trạng thái phiếu. Phiếu chờ
// duyệt vì tài sản đang có người giữ: chính người giữ đó phải đồng ý
// (hoặc admin), và biên bản bàn giao cho mượn phải hoàn tất trước khi
// phiếu được chuyển sang đã duyệt.
func approveGuard(lending *models.Lending, approver *models.User, open *models.Assignment, handover *models.Handover) error {
	switch lending.Status {
	case constants.LendingStatusRequested:
		if approver.Role < constants.RoleAssetManager {
			return &apperrors.PermissionError{Message: "Chỉ quản lý tài sản mới được duyệt phiếu mượn"}
		}
	case constants.LendingStatusPendingApproval:
		if open != nil && open.EmployeeID != approver.ID && approver.Role < constants.RoleAdmin {
			return &apperrors.PermissionError{Message: "Chỉ người đang giữ tài sản mới được đồng ý cho mượn"}
		}
		if err := lending.EnsureHandoverCompleted(handover, constants.HandoverTypeLending); err != nil {
			return err
		}
	}
	return nil
}

// AwaitingApproval các phiếu mượn còn chờ duyệt mà ngày mượn đã cận kề
func (s *LendingService) AwaitingApproval(now time.Time, within time.Duration) ([]models.Lending, error) {
	var lendings []models.Lending
	err := s.db.
		Preload("Asset").
		Preload("Borrower").
		Where("status IN ? AND date_borrow < ?",
			[]int{constants.LendingStatusRequested, constants.LendingStatusPendingApproval},
			now.Add(within)).
		Order("date_borrow ASC").
		Find(&lendings).Error
	if err != nil {
		return nil, err
	}
	return lendings, nil
}

// notifyCustodian báo cho người đang giữ tài sản có yêu cầu mượn chờ duyệt
func (s *LendingService) notifyCustodian(ctx context.Context, lending *models.Lending) {
	if s.publisher == nil {
		return
	}
	parties := []string{"người đang giữ tài sản"}
	if s.directory != nil {
		if open, err := CurrentAssignment(s.db, lending.AssetID); err == nil && open != nil {
			if identity, err := s.directory.ResolveIdentity(open.EmployeeID); err == nil {
				parties = []string{identity.Email}
			}
		}
	}
	if err := s.publisher.NotifySignatureRequired(lending.Code, parties); err != nil {
		s.logger.Warn("gửi thông báo chờ duyệt phiếu %s thất bại: %v", lending.Code, err)
	}
}

// latestHandoverFor tìm biên bản bàn giao mới nhất của phiếu mượn theo loại
func latestHandoverFor(tx *gorm.DB, lendingID uint, handoverType int) (*models.Handover, error) {
	var handover models.Handover
	err := tx.Where("lending_id = ? AND type = ?", lendingID, handoverType).
		Order("id DESC").
		First(&handover).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &handover, nil
}

// commitLendingStatus ghi trạng thái mới với điều kiện trạng thái cũ chưa đổi
func commitLendingStatus(tx *gorm.DB, lending *models.Lending, oldStatus int) error {
	result := tx.Model(&models.Lending{}).
		Where("id = ? AND status = ?", lending.ID, oldStatus).
		Updates(map[string]interface{}{
			"status":             lending.Status,
			"is_overdue":         lending.IsOverdue,
			"date_actual_return": lending.DateActualReturn,
			"return_condition":   lending.ReturnCondition,
			"approved_by_id":     lending.ApprovedByID,
			"returned_to_id":     lending.ReturnedToID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperrors.ConflictError{Resource: "phiếu mượn " + lending.Code}
	}
	return nil
}
