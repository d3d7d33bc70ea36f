package models

import "time"

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Password    string    `json:"-"`
	PhoneNumber string    `json:"phoneNumber"`
	Department  string    `json:"department"`
	ManagerID   *uint     `json:"managerId"`
	Manager     *User     `json:"-" gorm:"foreignKey:ManagerID"`
	Role        int       `json:"role" gorm:"default:0"`
	Status      int       `json:"status" gorm:"default:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
