package controllers

import (
	"errors"
	"strconv"
	"time"

	"dnu_asset/config"
	"dnu_asset/dto"
	"dnu_asset/models"
	"dnu_asset/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func toLendingResponse(l *models.Lending) dto.LendingResponse {
	return dto.LendingResponse{
		ID:                 l.ID,
		Code:               l.Code,
		AssetID:            l.AssetID,
		AssetName:          l.Asset.Name,
		BorrowerID:         l.BorrowerID,
		BorrowerName:       l.Borrower.Name,
		DateBorrow:         l.DateBorrow,
		DateExpectedReturn: l.DateExpectedReturn,
		DateActualReturn:   l.DateActualReturn,
		Status:             l.Status,
		IsOverdue:          l.IsOverdue,
		IsAutoCreated:      l.IsAutoCreated,
		BookingID:          l.BookingID,
	}
}

// CreateLending tạo phiếu mượn nháp cho người đang đăng nhập
func CreateLending(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateLendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	lending := models.Lending{
		AssetID:            req.AssetID,
		BorrowerID:         userID,
		DateBorrow:         req.DateBorrow,
		DateExpectedReturn: req.DateReturn,
		Purpose:            req.Purpose,
		PurposeNote:        req.PurposeNote,
		Location:           req.Location,
		Notes:              req.Notes,
	}
	if err := lendingService.Create(c.Request.Context(), &lending); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, lending)
}

// GetLendings liệt kê phiếu mượn
func GetLendings(c *gin.Context) {
	userID, userRole, ok := currentUser(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tx := config.DB.Model(&models.Lending{}).Preload("Asset").Preload("Borrower")
	if userRole == 0 {
		tx = tx.Where("borrower_id = ?", userID)
	}
	if statusStr := c.Query("status"); statusStr != "" {
		if status, err := strconv.Atoi(statusStr); err == nil {
			tx = tx.Where("status = ?", status)
		}
	}
	if c.Query("overdue") == "true" {
		tx = tx.Where("is_overdue = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}
	var lendings []models.Lending
	if err := tx.Offset((page - 1) * limit).Limit(limit).Order("date_borrow DESC").Find(&lendings).Error; err != nil {
		response.ServerError(c)
		return
	}

	out := make([]dto.LendingResponse, 0, len(lendings))
	for i := range lendings {
		out = append(out, toLendingResponse(&lendings[i]))
	}
	response.SuccessWithPagination(c, out, page, limit, int(total))
}

// GetLending lấy chi tiết phiếu mượn
func GetLending(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	lending, err := lendingService.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, lending)
}

// RequestLending gửi yêu cầu mượn
func RequestLending(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	lending, err := lendingService.Request(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, lending)
}

// ApproveLending duyệt phiếu mượn
func ApproveLending(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var approver models.User
	if err := config.DB.First(&approver, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Unauthorized(c)
			return
		}
		response.ServerError(c)
		return
	}

	lending, err := lendingService.Approve(c.Request.Context(), id, &approver)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, lending)
}

// ActivateLending kích hoạt phiếu mượn sau khi biên bản hoàn tất
func ActivateLending(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	lending, err := lendingService.Activate(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, lending)
}

// ReturnLending trả tài sản
func ReturnLending(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ReturnLendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	lending, err := lendingService.Return(c.Request.Context(), id, userID, req.Condition, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, lending)
}

// CancelLending hủy phiếu mượn
func CancelLending(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	lending, err := lendingService.Cancel(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, lending)
}
