package controllers

import (
	"encoding/base64"
	"time"

	"dnu_asset/dto"
	"dnu_asset/models"
	"dnu_asset/response"

	"github.com/gin-gonic/gin"
)

func toHandoverResponse(h *models.Handover) dto.HandoverResponse {
	out := dto.HandoverResponse{
		ID:                 h.ID,
		Code:               h.Code,
		Type:               h.Type,
		AssetID:            h.AssetID,
		AssetName:          h.Asset.Name,
		ReceiverID:         h.ReceiverID,
		ReceiverName:       h.Receiver.Name,
		DelivererID:        h.DelivererID,
		HandoverDate:       h.HandoverDate,
		ExpectedReturnDate: h.ExpectedReturnDate,
		ConditionHandover:  h.ConditionHandover,
		Accessories:        h.Accessories,
		ReceiverSigned:     h.SignedBy(models.SignerReceiver),
		DelivererSigned:    h.SignedBy(models.SignerDeliverer),
		Status:             h.Status,
	}
	if h.Deliverer != nil {
		out.DelivererName = h.Deliverer.Name
	}
	return out
}

// CreateLendingHandover lập biên bản bàn giao cho phiếu mượn
func CreateLendingHandover(c *gin.Context) {
	var req dto.CreateLendingHandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	handover, err := handoverService.CreateForLending(c.Request.Context(), req.LendingID, req.Type, req.Condition, req.Accessories)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, handover)
}

// CreateAssignmentHandover lập biên bản bàn giao cho phiếu gán
func CreateAssignmentHandover(c *gin.Context) {
	var req dto.CreateAssignmentHandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	handover, err := handoverService.CreateForAssignment(c.Request.Context(), req.AssignmentID, req.Condition, req.Accessories)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, handover)
}

// GetHandover lấy chi tiết biên bản
func GetHandover(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	handover, err := handoverService.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, toHandoverResponse(handover))
}

// SendHandoverForSignature gửi biên bản cho các bên ký
func SendHandoverForSignature(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	handover, err := handoverService.SendForSignature(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, toHandoverResponse(handover))
}

// SignHandover ký biên bản với tư cách một bên
func SignHandover(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.SignHandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	signature, err := base64.StdEncoding.DecodeString(req.Signature)
	if err != nil {
		response.ValidationError(c, "Chữ ký không hợp lệ")
		return
	}

	handover, err := handoverService.Sign(c.Request.Context(), id, userID, req.Party, signature, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, toHandoverResponse(handover))
}

// CompleteHandover hoàn thành biên bản và áp hiệu ứng quyền giữ tài sản
func CompleteHandover(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	handover, err := handoverService.Complete(c.Request.Context(), id, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, toHandoverResponse(handover))
}

// CancelHandover hủy biên bản chưa hoàn thành (xóa hẳn bản ghi)
func CancelHandover(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := handoverService.Cancel(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, nil)
}
