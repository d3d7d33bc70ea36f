package models

import (
	"time"

	"dnu_asset/constants"
)

// Các bên ký trên biên bản bàn giao
const (
	SignerReceiver  = "receiver"
	SignerDeliverer = "deliverer"
)

// Handover biên bản bàn giao tài sản. Mọi thay đổi quyền giữ tài sản
// đều phải đi qua một biên bản đã ký và hoàn thành.
type Handover struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"uniqueIndex;not null"` // Số biên bản
	Type int    `json:"type" gorm:"default:1"`

	// Biên bản tham chiếu đúng một trong hai: phiếu mượn hoặc phiếu gán
	LendingID    *uint       `json:"lendingId" gorm:"index"`
	Lending      *Lending    `json:"-" gorm:"foreignKey:LendingID"`
	AssignmentID *uint       `json:"assignmentId" gorm:"index"`
	Assignment   *Assignment `json:"-" gorm:"foreignKey:AssignmentID"`

	AssetID uint  `json:"assetId" gorm:"index"`
	Asset   Asset `json:"asset" gorm:"foreignKey:AssetID"`

	ReceiverID  uint  `json:"receiverId"`
	Receiver    User  `json:"receiver" gorm:"foreignKey:ReceiverID"`
	DelivererID *uint `json:"delivererId"`
	Deliverer   *User `json:"deliverer" gorm:"foreignKey:DelivererID"`

	HandoverDate       time.Time  `json:"handoverDate"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate"` // Chỉ áp dụng cho mượn

	ConditionHandover int  `json:"conditionHandover" gorm:"default:1"`
	ConditionReturn   *int `json:"conditionReturn"`

	Accessories string `json:"accessories"` // Sạc, dây cáp, chuột...
	Notes       string `json:"notes"`

	// Chữ ký điện tử: đã ký thì không sửa được, chỉ hủy cả biên bản
	ReceiverSignature      []byte     `json:"-"`
	ReceiverSignatureDate  *time.Time `json:"receiverSignatureDate"`
	DelivererSignature     []byte     `json:"-"`
	DelivererSignatureDate *time.Time `json:"delivererSignatureDate"`

	Status    int       `json:"status" gorm:"default:0;index"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// RequiredSigners các bên bắt buộc phải ký theo loại biên bản.
// Biên bản trả chỉ cần người trả ký; gán và mượn cần đủ hai bên.
func (h *Handover) RequiredSigners() []string {
	if h.Type == constants.HandoverTypeReturn {
		return []string{SignerReceiver}
	}
	return []string{SignerReceiver, SignerDeliverer}
}

// SignedBy bên này đã ký chưa
func (h *Handover) SignedBy(party string) bool {
	switch party {
	case SignerReceiver:
		return h.ReceiverSignatureDate != nil
	case SignerDeliverer:
		return h.DelivererSignatureDate != nil
	}
	return false
}

// SignaturesComplete đã đủ chữ ký theo loại biên bản chưa
func (h *Handover) SignaturesComplete() bool {
	for _, party := range h.RequiredSigners() {
		if !h.SignedBy(party) {
			return false
		}
	}
	return true
}
