package controllers

import (
	"time"

	"dnu_asset/dto"
	"dnu_asset/models"
	"dnu_asset/response"

	"github.com/gin-gonic/gin"
)

// CreateAssignment tạo phiếu gán tài sản dài hạn
func CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	assignment := models.Assignment{
		AssetID:    req.AssetID,
		EmployeeID: req.EmployeeID,
		Notes:      req.Notes,
	}
	if err := assignmentService.Create(c.Request.Context(), &assignment); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, assignment)
}

// GetAssignment lấy chi tiết phiếu gán
func GetAssignment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	assignment, err := assignmentService.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, assignment)
}

// GetMyAssignments liệt kê phiếu gán của người đang đăng nhập
func GetMyAssignments(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	assignments, err := assignmentService.ListByEmployee(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, assignments)
}

// ReturnAssignment thu hồi tài sản từ người đang giữ
func ReturnAssignment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ReturnAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	assignment, err := assignmentService.ReturnAsset(c.Request.Context(), id, req.Condition, req.Notes, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, assignment)
}

// CancelAssignment hủy phiếu gán nháp
func CancelAssignment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	assignment, err := assignmentService.Cancel(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, assignment)
}
