package models

import (
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
)

type Lending struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Code    string `json:"code" gorm:"uniqueIndex;not null"` // Mã phiếu mượn
	AssetID uint   `json:"assetId" gorm:"index"`
	Asset   Asset  `json:"asset" gorm:"foreignKey:AssetID"`

	BorrowerID uint `json:"borrowerId" gorm:"index"`
	Borrower   User `json:"borrower" gorm:"foreignKey:BorrowerID"`

	// Khoảng thời gian mượn nửa mở [DateBorrow, DateExpectedReturn)
	DateBorrow         time.Time  `json:"dateBorrow" gorm:"index"`
	DateExpectedReturn time.Time  `json:"dateExpectedReturn" gorm:"index"`
	DateActualReturn   *time.Time `json:"dateActualReturn"`

	Purpose     int    `json:"purpose" gorm:"default:0"`
	PurposeNote string `json:"purposeNote"`
	Location    string `json:"location"`

	// Đặt phòng sinh ra phiếu mượn này (nếu có)
	BookingID     *uint    `json:"bookingId" gorm:"index"`
	Booking       *Booking `json:"-" gorm:"foreignKey:BookingID"`
	IsAutoCreated bool     `json:"isAutoCreated" gorm:"default:false"`

	Status    int  `json:"status" gorm:"default:0;index"`
	IsOverdue bool `json:"isOverdue" gorm:"default:false"`

	ReturnCondition *int   `json:"returnCondition"`
	ReturnNotes     string `json:"returnNotes"`
	ApprovedByID    *uint  `json:"approvedById"`
	ApprovedBy      *User  `json:"approvedBy" gorm:"foreignKey:ApprovedByID"`
	ReturnedToID    *uint  `json:"returnedToId"`

	Notes     string    `json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// DurationHours thời gian mượn tính theo giờ
func (l *Lending) DurationHours() float64 {
	end := l.DateExpectedReturn
	if l.DateActualReturn != nil {
		end = *l.DateActualReturn
	}
	return end.Sub(l.DateBorrow).Hours()
}

// IsBlocking phiếu mượn có đang chiếm tài sản không.
// Phiếu quá hạn vẫn chặn như đang mượn.
func (l *Lending) IsBlocking() bool {
	return l.Status == constants.LendingStatusApproved || l.Status == constants.LendingStatusActive
}

// IsCancellable còn hủy được không (trước khi giao tài sản)
func (l *Lending) IsCancellable() bool {
	switch l.Status {
	case constants.LendingStatusDraft,
		constants.LendingStatusRequested,
		constants.LendingStatusPendingApproval,
		constants.LendingStatusApproved:
		return true
	}
	return false
}

// LendingBlockingStatuses các trạng thái chặn lịch của phiếu mượn
func LendingBlockingStatuses() []int {
	return []int{constants.LendingStatusApproved, constants.LendingStatusActive}
}

// EnsureHandoverCompleted kiểm tra biên bản bàn giao đã hoàn thành và liên kết đúng
// với phiếu mượn này chưa. Dùng làm guard cho Activate/Return.
func (l *Lending) EnsureHandoverCompleted(h *Handover, handoverType int) error {
	if h == nil {
		return &apperrors.DependencyNotReadyError{
			Dependency: "handover",
			Message:    "chưa có biên bản bàn giao cho phiếu mượn này",
		}
	}
	if h.LendingID == nil || *h.LendingID != l.ID || h.AssetID != l.AssetID || h.Type != handoverType {
		return &apperrors.DependencyNotReadyError{
			Dependency: "handover",
			Message:    "biên bản bàn giao không liên kết đúng phiếu mượn/tài sản",
		}
	}
	if h.Status != constants.HandoverStatusCompleted {
		return &apperrors.DependencyNotReadyError{
			Dependency: "handover",
			Message:    "biên bản bàn giao chưa hoàn thành",
		}
	}
	return nil
}
