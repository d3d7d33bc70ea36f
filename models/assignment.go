package models

import (
	"time"

	"dnu_asset/constants"
)

// Assignment phiếu gán tài sản dài hạn: ai đang giữ tài sản.
// Mỗi tài sản chỉ có tối đa một phiếu gán đang mở (DateTo chưa đặt);
// đây là nguồn dữ liệu duy nhất cho "người đang giữ", không lưu
// trường assigned_to riêng trên tài sản.
type Assignment struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Code    string `json:"code" gorm:"uniqueIndex;not null"` // Mã gán
	AssetID uint   `json:"assetId" gorm:"index"`
	Asset   Asset  `json:"asset" gorm:"foreignKey:AssetID"`

	EmployeeID uint `json:"employeeId" gorm:"index"`
	Employee   User `json:"employee" gorm:"foreignKey:EmployeeID"`

	DateFrom time.Time  `json:"dateFrom"`
	DateTo   *time.Time `json:"dateTo"` // nil = đang mở

	Status int `json:"status" gorm:"default:0;index"`

	Notes           string `json:"notes"`
	ReturnCondition *int   `json:"returnCondition"`
	ReturnNotes     string `json:"returnNotes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsOpen phiếu gán còn hiệu lực không
func (a *Assignment) IsOpen() bool {
	return a.Status == constants.AssignmentStatusActive && a.DateTo == nil
}
