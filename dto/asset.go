package dto

// CreateAssetRequest là DTO cho request tạo tài sản
type CreateAssetRequest struct {
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	CategoryID   *uint  `json:"categoryId"`
	SerialNumber string `json:"serialNumber"`
	Condition    int    `json:"condition" binding:"min=0,max=5"`
	Description  string `json:"description"`
}

// AssetResponse là DTO cho response của tài sản
type AssetResponse struct {
	ID           uint   `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
	Condition    int    `json:"condition"`
	Status       int    `json:"status"`
	CustodianID  *uint  `json:"custodianId"`  // Từ phiếu gán đang mở
	CustodianName string `json:"custodianName,omitempty"`
}
