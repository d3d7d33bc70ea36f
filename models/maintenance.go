package models

import "time"

// Mức ưu tiên yêu cầu bảo trì
const (
	MaintenancePriorityNormal = 0
	MaintenancePriorityHigh   = 1
)

// AssetMaintenance yêu cầu bảo trì, được tạo tự động khi nhận trả
// tài sản trong tình trạng hư hỏng
type AssetMaintenance struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	AssetID     uint   `json:"assetId" gorm:"index"`
	Asset       Asset  `json:"asset" gorm:"foreignKey:AssetID"`
	ReporterID  *uint  `json:"reporterId"`
	Reporter    *User  `json:"reporter" gorm:"foreignKey:ReporterID"`
	Description string `json:"description"`
	Priority    int    `json:"priority" gorm:"default:0"`
	Status      int    `json:"status" gorm:"default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
