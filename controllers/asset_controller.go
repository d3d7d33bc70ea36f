package controllers

import (
	"errors"
	"strconv"

	"dnu_asset/config"
	"dnu_asset/constants"
	"dnu_asset/dto"
	"dnu_asset/models"
	"dnu_asset/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func toAssetResponse(asset models.Asset, custodian *models.Assignment) dto.AssetResponse {
	out := dto.AssetResponse{
		ID:           asset.ID,
		Code:         asset.Code,
		Name:         asset.Name,
		SerialNumber: asset.SerialNumber,
		Condition:    asset.Condition,
		Status:       asset.Status,
	}
	if custodian != nil {
		id := custodian.EmployeeID
		out.CustodianID = &id
		out.CustodianName = custodian.Employee.Name
	}
	return out
}

// CreateAsset tạo tài sản mới
func CreateAsset(c *gin.Context) {
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	asset := models.Asset{
		Code:         req.Code,
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		SerialNumber: req.SerialNumber,
		Condition:    req.Condition,
		Status:       constants.AssetStatusAvailable,
		Description:  req.Description,
		Active:       true,
	}
	if err := config.DB.Create(&asset).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, asset)
}

// GetAssets liệt kê tài sản, lọc được theo trạng thái và danh mục
func GetAssets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tx := config.DB.Model(&models.Asset{}).Where("active = ?", true)
	if statusStr := c.Query("status"); statusStr != "" {
		if status, err := strconv.Atoi(statusStr); err == nil {
			tx = tx.Where("status = ?", status)
		}
	}
	if catStr := c.Query("categoryId"); catStr != "" {
		if catID, err := strconv.Atoi(catStr); err == nil {
			tx = tx.Where("category_id = ?", catID)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}
	var assets []models.Asset
	if err := tx.Preload("Category").Offset((page - 1) * limit).Limit(limit).Order("code").Find(&assets).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithPagination(c, assets, page, limit, int(total))
}

// GetAsset lấy chi tiết tài sản kèm người đang giữ
func GetAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var asset models.Asset
	if err := config.DB.Preload("Category").First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	custodian, err := assignmentService.GetOpenByAsset(asset.ID)
	if err != nil {
		response.ServerError(c)
		return
	}
	if custodian != nil {
		if err := config.DB.Preload("Employee").First(custodian, custodian.ID).Error; err != nil {
			response.ServerError(c)
			return
		}
	}
	response.Success(c, toAssetResponse(asset, custodian))
}

// GetAssetMaintenances danh sách yêu cầu bảo trì của một tài sản
func GetAssetMaintenances(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var requests []models.AssetMaintenance
	if err := config.DB.
		Preload("Reporter").
		Where("asset_id = ?", id).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, requests)
}

// CheckAssetAvailability kiểm tra tài sản có rảnh trong một khoảng không
func CheckAssetAvailability(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	start, err := parseRFC3339(c.Query("start"))
	if err != nil {
		response.ValidationError(c, "Thời gian bắt đầu không hợp lệ")
		return
	}
	end, err := parseRFC3339(c.Query("end"))
	if err != nil {
		response.ValidationError(c, "Thời gian kết thúc không hợp lệ")
		return
	}

	free, conflicts, err := availability.CheckAsset(id, start, end, 0)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, gin.H{
		"available": free,
		"conflicts": conflicts,
	})
}

// RetireAsset ngừng sử dụng tài sản. Không xóa bản ghi để giữ truy vết
// các phiếu lịch sử; tài sản đang có người giữ thì phải thu hồi trước.
func RetireAsset(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var asset models.Asset
	if err := config.DB.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	custodian, err := assignmentService.GetOpenByAsset(asset.ID)
	if err != nil {
		response.ServerError(c)
		return
	}
	if custodian != nil {
		response.UnprocessableEntity(c, "Tài sản đang có người giữ, thu hồi trước khi ngừng sử dụng")
		return
	}

	if err := config.DB.Model(&asset).Updates(map[string]interface{}{
		"status": constants.AssetStatusRetired,
		"active": false,
	}).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, asset)
}
