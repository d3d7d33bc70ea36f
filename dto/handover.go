package dto

import "time"

// CreateLendingHandoverRequest là DTO cho request lập biên bản cho phiếu mượn
type CreateLendingHandoverRequest struct {
	LendingID   uint   `json:"lendingId" binding:"required"`
	Type        int    `json:"type"` // cho mượn hoặc hoàn trả
	Condition   int    `json:"condition" binding:"min=0,max=5"`
	Accessories string `json:"accessories"`
}

// CreateAssignmentHandoverRequest là DTO cho request lập biên bản cho phiếu gán
type CreateAssignmentHandoverRequest struct {
	AssignmentID uint   `json:"assignmentId" binding:"required"`
	Condition    int    `json:"condition" binding:"min=0,max=5"`
	Accessories  string `json:"accessories"`
}

// SignHandoverRequest là DTO cho request ký biên bản
type SignHandoverRequest struct {
	Party     string `json:"party" binding:"required"` // receiver | deliverer
	Signature string `json:"signature" binding:"required"` // base64
}

// HandoverResponse là DTO cho response của biên bản bàn giao
type HandoverResponse struct {
	ID                 uint       `json:"id"`
	Code               string     `json:"code"`
	Type               int        `json:"type"`
	AssetID            uint       `json:"assetId"`
	AssetName          string     `json:"assetName"`
	ReceiverID         uint       `json:"receiverId"`
	ReceiverName       string     `json:"receiverName"`
	DelivererID        *uint      `json:"delivererId"`
	DelivererName      string     `json:"delivererName,omitempty"`
	HandoverDate       time.Time  `json:"handoverDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
	ConditionHandover  int        `json:"conditionHandover"`
	Accessories        string     `json:"accessories"`
	ReceiverSigned     bool       `json:"receiverSigned"`
	DelivererSigned    bool       `json:"delivererSigned"`
	Status             int        `json:"status"`
}

// CreateAssignmentRequest là DTO cho request tạo phiếu gán
type CreateAssignmentRequest struct {
	AssetID    uint   `json:"assetId" binding:"required"`
	EmployeeID uint   `json:"employeeId" binding:"required"`
	Notes      string `json:"notes"`
}

// ReturnAssignmentRequest là DTO cho request thu hồi tài sản
type ReturnAssignmentRequest struct {
	Condition int    `json:"condition" binding:"min=0,max=5"`
	Notes     string `json:"notes"`
}
