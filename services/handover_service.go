package services

import (
	"context"
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
	"dnu_asset/models"
	"dnu_asset/services/logger"
	"dnu_asset/services/notification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HandoverService điều khiển biên bản bàn giao. Quyền giữ tài sản chỉ
// đổi khi biên bản được hoàn thành, và hiệu ứng lên bản ghi giao diễn
// ra trong cùng transaction với lệnh chuyển trạng thái biên bản.
type HandoverService struct {
	db        *gorm.DB
	publisher notification.MeetingPublisher
	logger    logger.Logger
}

// HandoverServiceOptions tham số khởi tạo HandoverService
type HandoverServiceOptions struct {
	DB        *gorm.DB
	Publisher notification.MeetingPublisher
	Logger    logger.Logger
}

// NewHandoverService tạo instance mới của HandoverService
func NewHandoverService(opts HandoverServiceOptions) *HandoverService {
	return &HandoverService{
		db:        opts.DB,
		publisher: opts.Publisher,
		logger:    opts.Logger,
	}
}

// GetByID lấy biên bản theo ID
func (s *HandoverService) GetByID(id uint) (*models.Handover, error) {
	var handover models.Handover
	err := s.db.
		Preload("Asset").
		Preload("Receiver").
		Preload("Deliverer").
		First(&handover, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrHandoverNotFound
	}
	if err != nil {
		return nil, err
	}
	return &handover, nil
}

// CreateForLending lập biên bản cho phiếu mượn: loại cho mượn khi giao
// tài sản đi, loại hoàn trả khi nhận lại. Bên giao mặc định là người
// đang giữ tài sản nếu có.
func (s *HandoverService) CreateForLending(ctx context.Context, lendingID uint, handoverType int, condition int, accessories string) (*models.Handover, error) {
	if handoverType != constants.HandoverTypeLending && handoverType != constants.HandoverTypeReturn {
		return nil, &apperrors.ValidationError{Field: "type", Message: "loại biên bản không hợp lệ cho phiếu mượn"}
	}

	var handover *models.Handover
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lending models.Lending
		if err := tx.First(&lending, lendingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrLendingNotFound
			}
			return err
		}

		var receiverID uint
		var delivererID *uint
		open, err := CurrentAssignment(tx, lending.AssetID)
		if err != nil {
			return err
		}
		switch handoverType {
		case constants.HandoverTypeLending:
			receiverID = lending.BorrowerID
			if open != nil {
				id := open.EmployeeID
				delivererID = &id
			} else if lending.ApprovedByID != nil {
				delivererID = lending.ApprovedByID
			}
		case constants.HandoverTypeReturn:
			// Trả về cho người đang giữ, không có thì về người đã duyệt
			if open != nil {
				receiverID = open.EmployeeID
			} else if lending.ApprovedByID != nil {
				receiverID = *lending.ApprovedByID
			} else {
				return &apperrors.ValidationError{Field: "receiver", Message: "không xác định được bên nhận lại tài sản"}
			}
		}

		lid := lending.ID
		handover = &models.Handover{
			Code:               NewCode("HO"),
			Type:               handoverType,
			LendingID:          &lid,
			AssetID:            lending.AssetID,
			ReceiverID:         receiverID,
			DelivererID:        delivererID,
			HandoverDate:       time.Now(),
			ExpectedReturnDate: &lending.DateExpectedReturn,
			ConditionHandover:  condition,
			Accessories:        accessories,
			Status:             constants.HandoverStatusDraft,
		}
		return tx.Create(handover).Error
	})
	if err != nil {
		return nil, err
	}
	return handover, nil
}

// CreateForAssignment lập biên bản loại gán cho một phiếu gán nháp
func (s *HandoverService) CreateForAssignment(ctx context.Context, assignmentID uint, condition int, accessories string) (*models.Handover, error) {
	var handover *models.Handover
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment models.Assignment
		if err := tx.First(&assignment, assignmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrAssignmentNotFound
			}
			return err
		}
		if assignment.Status != constants.AssignmentStatusDraft {
			return &apperrors.StateError{Entity: "phiếu gán", Action: "lập biên bản", Status: assignment.Status}
		}

		var delivererID *uint
		open, err := CurrentAssignment(tx, assignment.AssetID)
		if err != nil {
			return err
		}
		if open != nil {
			id := open.EmployeeID
			delivererID = &id
		}

		aid := assignment.ID
		handover = &models.Handover{
			Code:              NewCode("HO"),
			Type:              constants.HandoverTypeAssignment,
			AssignmentID:      &aid,
			AssetID:           assignment.AssetID,
			ReceiverID:        assignment.EmployeeID,
			DelivererID:       delivererID,
			HandoverDate:      time.Now(),
			ConditionHandover: condition,
			Accessories:       accessories,
			Status:            constants.HandoverStatusDraft,
		}
		return tx.Create(handover).Error
	})
	if err != nil {
		return nil, err
	}
	return handover, nil
}

// SendForSignature chuyển biên bản sang chờ ký và báo các bên liên quan
func (s *HandoverService) SendForSignature(ctx context.Context, id uint) (*models.Handover, error) {
	var handover models.Handover
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&handover, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrHandoverNotFound
			}
			return err
		}
		if handover.Type != constants.HandoverTypeReturn && handover.DelivererID == nil {
			return &apperrors.ValidationError{Field: "delivererId", Message: "biên bản loại này cần có bên giao"}
		}
		oldStatus := handover.Status
		if err := models.GetHandoverState(oldStatus).SendForSignature(&handover); err != nil {
			return err
		}
		return commitHandoverStatus(tx, &handover, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		if err := s.publisher.NotifySignatureRequired(handover.Code, handover.RequiredSigners()); err != nil {
			s.logger.Warn("gửi thông báo chờ ký biên bản %s thất bại: %v", handover.Code, err)
		}
	}
	return &handover, nil
}

// Sign ghi nhận chữ ký của một bên. Người ký phải đúng danh tính bên
// đó trên biên bản; chữ ký đã ghi thì bất biến.
func (s *HandoverService) Sign(ctx context.Context, id uint, userID uint, party string, signature []byte, now time.Time) (*models.Handover, error) {
	var handover models.Handover
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&handover, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrHandoverNotFound
			}
			return err
		}

		switch party {
		case models.SignerReceiver:
			if handover.ReceiverID != userID {
				return &apperrors.PermissionError{Message: "Chỉ bên nhận mới được ký mục bên nhận"}
			}
		case models.SignerDeliverer:
			if handover.DelivererID == nil || *handover.DelivererID != userID {
				return &apperrors.PermissionError{Message: "Chỉ bên giao mới được ký mục bên giao"}
			}
		default:
			return &apperrors.ValidationError{Field: "party", Message: "bên ký không hợp lệ"}
		}

		oldStatus := handover.Status
		if err := models.GetHandoverState(oldStatus).Sign(&handover, party, signature, now); err != nil {
			return err
		}
		return commitHandoverSignature(tx, &handover, oldStatus)
	})
	if err != nil {
		return nil, err
	}
	return &handover, nil
}

// Complete hoàn thành biên bản và áp hiệu ứng quyền giữ tài sản trong
// cùng transaction. Gọi lại trên biên bản đã hoàn thành là no-op.
func (s *HandoverService) Complete(ctx context.Context, id uint, now time.Time) (*models.Handover, error) {
	var handover models.Handover
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&handover, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrHandoverNotFound
			}
			return err
		}
		oldStatus := handover.Status
		if oldStatus == constants.HandoverStatusCompleted {
			return nil
		}
		if err := models.GetHandoverState(oldStatus).Complete(&handover); err != nil {
			return err
		}
		if err := commitHandoverStatus(tx, &handover, oldStatus); err != nil {
			return err
		}
		return s.applyCustodyEffects(tx, &handover, now)
	})
	if err != nil {
		return nil, err
	}
	return &handover, nil
}

// applyCustodyEffects hiệu ứng của biên bản hoàn thành lên bản ghi giao.
// Loại cho mượn không đổi quyền giữ: người mượn chỉ tạm giữ, phiếu gán
// mở vẫn thuộc người cũ.
func (s *HandoverService) applyCustodyEffects(tx *gorm.DB, handover *models.Handover, now time.Time) error {
	switch handover.Type {
	case constants.HandoverTypeAssignment:
		if handover.AssignmentID == nil {
			return &apperrors.ValidationError{Field: "assignmentId", Message: "biên bản gán thiếu phiếu gán"}
		}
		if err := CloseOpenAssignments(tx, handover.AssetID, now, *handover.AssignmentID); err != nil {
			return err
		}
		result := tx.Model(&models.Assignment{}).
			Where("id = ? AND status = ?", *handover.AssignmentID, constants.AssignmentStatusDraft).
			Updates(map[string]interface{}{
				"status":    constants.AssignmentStatusActive,
				"date_from": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &apperrors.ConflictError{Resource: "phiếu gán"}
		}
		return tx.Model(&models.Asset{}).
			Where("id = ?", handover.AssetID).
			Update("status", constants.AssetStatusAssigned).Error

	case constants.HandoverTypeReturn:
		// Tài sản về tay bên nhận: người giữ cũ được đóng phiếu gán,
		// nếu bên nhận khác người giữ cũ thì mở phiếu gán mới cho họ
		open, err := CurrentAssignment(tx, handover.AssetID)
		if err != nil {
			return err
		}
		if open == nil || open.EmployeeID == handover.ReceiverID {
			return nil
		}
		if err := CloseOpenAssignments(tx, handover.AssetID, now, 0); err != nil {
			return err
		}
		next := models.Assignment{
			Code:       NewCode("AS"),
			AssetID:    handover.AssetID,
			EmployeeID: handover.ReceiverID,
			DateFrom:   now,
			Status:     constants.AssignmentStatusActive,
			Notes:      "Nhận lại từ biên bản " + handover.Code,
		}
		return tx.Create(&next).Error
	}
	return nil
}

// Cancel hủy biên bản chưa hoàn thành. Hủy là xóa hẳn bản ghi: chữ ký
// đã ghi không sửa được, muốn làm lại thì lập biên bản mới.
func (s *HandoverService) Cancel(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var handover models.Handover
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&handover, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrHandoverNotFound
			}
			return err
		}
		if handover.Status == constants.HandoverStatusCompleted {
			return &apperrors.StateError{Entity: "biên bản bàn giao", Action: "hủy", Status: handover.Status}
		}
		return tx.Delete(&handover).Error
	})
}

// commitHandoverStatus ghi trạng thái mới với điều kiện trạng thái cũ chưa đổi
func commitHandoverStatus(tx *gorm.DB, handover *models.Handover, oldStatus int) error {
	result := tx.Model(&models.Handover{}).
		Where("id = ? AND status = ?", handover.ID, oldStatus).
		Update("status", handover.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperrors.ConflictError{Resource: "biên bản " + handover.Code}
	}
	return nil
}

// commitHandoverSignature ghi chữ ký kèm trạng thái, vẫn guard theo trạng thái cũ
func commitHandoverSignature(tx *gorm.DB, handover *models.Handover, oldStatus int) error {
	result := tx.Model(&models.Handover{}).
		Where("id = ? AND status = ?", handover.ID, oldStatus).
		Updates(map[string]interface{}{
			"status":                   handover.Status,
			"receiver_signature":       handover.ReceiverSignature,
			"receiver_signature_date":  handover.ReceiverSignatureDate,
			"deliverer_signature":      handover.DelivererSignature,
			"deliverer_signature_date": handover.DelivererSignatureDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperrors.ConflictError{Resource: "biên bản " + handover.Code}
	}
	return nil
}
