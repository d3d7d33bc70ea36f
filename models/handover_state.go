package models

import (
	"time"

	"dnu_asset/constants"
	apperrors "dnu_asset/errors"
)

// HandoverState định nghĩa interface cho các trạng thái biên bản bàn giao.
// Hủy biên bản là thao tác xóa bản ghi (ở tầng service), không phải một
// trạng thái lưu lại, nên không xuất hiện ở đây.
type HandoverState interface {
	SendForSignature(h *Handover) error
	Sign(h *Handover, party string, signature []byte, now time.Time) error
	Complete(h *Handover) error
}

func handoverStateError(action string, status int) error {
	return &apperrors.StateError{Entity: "biên bản bàn giao", Action: action, Status: status}
}

// signHandover ghi nhận chữ ký một bên; đã ký rồi thì không ghi đè được
func signHandover(h *Handover, party string, signature []byte, now time.Time) error {
	if h.SignedBy(party) {
		return handoverStateError("ký lại bên "+party, h.Status)
	}
	required := false
	for _, p := range h.RequiredSigners() {
		if p == party {
			required = true
			break
		}
	}
	if !required {
		return &apperrors.ValidationError{Field: "party", Message: "bên này không phải bên ký của biên bản"}
	}
	switch party {
	case SignerReceiver:
		h.ReceiverSignature = signature
		h.ReceiverSignatureDate = &now
	case SignerDeliverer:
		h.DelivererSignature = signature
		h.DelivererSignatureDate = &now
	}
	if h.SignaturesComplete() {
		h.Status = constants.HandoverStatusSigned
	}
	return nil
}

// HandoverDraftState trạng thái nháp
type HandoverDraftState struct{}

func (s *HandoverDraftState) SendForSignature(h *Handover) error {
	h.Status = constants.HandoverStatusPendingSignature
	return nil
}

func (s *HandoverDraftState) Sign(h *Handover, party string, signature []byte, now time.Time) error {
	return handoverStateError("ký khi chưa gửi ký", h.Status)
}

func (s *HandoverDraftState) Complete(h *Handover) error {
	return handoverStateError("hoàn thành", h.Status)
}

// HandoverPendingSignatureState trạng thái chờ ký
type HandoverPendingSignatureState struct{}

func (s *HandoverPendingSignatureState) SendForSignature(h *Handover) error {
	return handoverStateError("gửi ký lần nữa", h.Status)
}

func (s *HandoverPendingSignatureState) Sign(h *Handover, party string, signature []byte, now time.Time) error {
	return signHandover(h, party, signature, now)
}

func (s *HandoverPendingSignatureState) Complete(h *Handover) error {
	return handoverStateError("hoàn thành khi chưa đủ chữ ký", h.Status)
}

// HandoverSignedState trạng thái đã ký đủ
type HandoverSignedState struct{}

func (s *HandoverSignedState) SendForSignature(h *Handover) error {
	return handoverStateError("gửi ký lần nữa", h.Status)
}

func (s *HandoverSignedState) Sign(h *Handover, party string, signature []byte, now time.Time) error {
	return handoverStateError("ký khi đã đủ chữ ký", h.Status)
}

func (s *HandoverSignedState) Complete(h *Handover) error {
	h.Status = constants.HandoverStatusCompleted
	return nil
}

// HandoverCompletedState trạng thái hoàn thành
type HandoverCompletedState struct{}

func (s *HandoverCompletedState) SendForSignature(h *Handover) error {
	return handoverStateError("gửi ký", h.Status)
}

func (s *HandoverCompletedState) Sign(h *Handover, party string, signature []byte, now time.Time) error {
	return handoverStateError("ký", h.Status)
}

// Complete trên biên bản đã hoàn thành là no-op, không phải lỗi
func (s *HandoverCompletedState) Complete(h *Handover) error {
	return nil
}

// GetHandoverState trả về state tương ứng với trạng thái biên bản
func GetHandoverState(status int) HandoverState {
	switch status {
	case constants.HandoverStatusDraft:
		return &HandoverDraftState{}
	case constants.HandoverStatusPendingSignature:
		return &HandoverPendingSignatureState{}
	case constants.HandoverStatusSigned:
		return &HandoverSignedState{}
	case constants.HandoverStatusCompleted:
		return &HandoverCompletedState{}
	default:
		return &HandoverDraftState{}
	}
}
