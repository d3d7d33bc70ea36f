package models

import (
	"fmt"
	"time"

	"dnu_asset/constants"
)

type AssetCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Asset struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Code         string         `json:"code" gorm:"uniqueIndex;not null"`
	Name         string         `json:"name"`
	CategoryID   *uint          `json:"categoryId"`
	Category     *AssetCategory `json:"category" gorm:"foreignKey:CategoryID"`
	SerialNumber string         `json:"serialNumber"`
	Condition    int            `json:"condition" gorm:"default:1"`
	Status       int            `json:"status" gorm:"default:1"`
	Description  string         `json:"description"`
	Active       bool           `json:"active" gorm:"default:true"`

	// Tài sản không bao giờ bị xóa, chỉ ngừng sử dụng,
	// vì các phiếu mượn/đặt phòng lịch sử vẫn phải truy vết được.
	Assignments []Assignment `json:"-" gorm:"foreignKey:AssetID"`
	Lendings    []Lending    `json:"-" gorm:"foreignKey:AssetID"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (a *Asset) ValidateStatus() error {
	if a.Status < constants.AssetStatusAvailable || a.Status > constants.AssetStatusRetired {
		return fmt.Errorf("invalid status: %d", a.Status)
	}
	return nil
}
