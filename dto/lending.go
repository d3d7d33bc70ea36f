package dto

import "time"

// CreateLendingRequest là DTO cho request tạo phiếu mượn
type CreateLendingRequest struct {
	AssetID     uint      `json:"assetId" binding:"required"`
	DateBorrow  time.Time `json:"dateBorrow" binding:"required"`
	DateReturn  time.Time `json:"dateReturn" binding:"required"`
	Purpose     int       `json:"purpose"`
	PurposeNote string    `json:"purposeNote"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
}

// ReturnLendingRequest là DTO cho request trả tài sản
type ReturnLendingRequest struct {
	Condition int    `json:"condition" binding:"min=0,max=5"`
	Notes     string `json:"notes"`
}

// LendingResponse là DTO cho response của phiếu mượn
type LendingResponse struct {
	ID                 uint       `json:"id"`
	Code               string     `json:"code"`
	AssetID            uint       `json:"assetId"`
	AssetName          string     `json:"assetName"`
	BorrowerID         uint       `json:"borrowerId"`
	BorrowerName       string     `json:"borrowerName"`
	DateBorrow         time.Time  `json:"dateBorrow"`
	DateExpectedReturn time.Time  `json:"dateExpectedReturn"`
	DateActualReturn   *time.Time `json:"dateActualReturn"`
	Status             int        `json:"status"`
	IsOverdue          bool       `json:"isOverdue"`
	IsAutoCreated      bool       `json:"isAutoCreated"`
	BookingID          *uint      `json:"bookingId"`
}
