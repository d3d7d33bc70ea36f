package controllers

import (
	"errors"
	"strconv"
	"time"

	"dnu_asset/config"
	"dnu_asset/constants"
	"dnu_asset/dto"
	"dnu_asset/models"
	"dnu_asset/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateRoom tạo phòng họp mới
func CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	room := models.Room{
		Code:               req.Code,
		Name:               req.Name,
		Capacity:           req.Capacity,
		Location:           req.Location,
		Floor:              req.Floor,
		Building:           req.Building,
		HasProjector:       req.HasProjector,
		HasTV:              req.HasTV,
		HasWhiteboard:      req.HasWhiteboard,
		HasVideoConference: req.HasVideoConference,
		HasAirConditioning: req.HasAirConditioning,
		HasWifi:            req.HasWifi,
		Status:             constants.RoomStatusAvailable,
		AllowBooking:       true,
		BookingAdvanceDays: req.BookingAdvanceDays,
		MinBookingDuration: req.MinBookingDuration,
		MaxBookingDuration: req.MaxBookingDuration,
		WorkStartHour:      req.WorkStartHour,
		WorkEndHour:        req.WorkEndHour,
		ResponsibleID:      req.ResponsibleID,
		Description:        req.Description,
		Active:             true,
	}
	if err := config.DB.Create(&room).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, room)
}

// GetRooms liệt kê phòng họp, lọc được theo sức chứa và toà nhà
func GetRooms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	tx := config.DB.Model(&models.Room{}).Where("active = ?", true)
	if building := c.Query("building"); building != "" {
		tx = tx.Where("building = ?", building)
	}
	if capStr := c.Query("capacity"); capStr != "" {
		if minCap, err := strconv.Atoi(capStr); err == nil {
			tx = tx.Where("capacity >= ?", minCap)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}
	var rooms []models.Room
	if err := tx.Offset((page - 1) * limit).Limit(limit).Order("code").Find(&rooms).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.SuccessWithPagination(c, rooms, page, limit, int(total))
}

// GetRoom lấy chi tiết một phòng kèm thiết bị cố định
func GetRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var room models.Room
	if err := config.DB.Preload("Equipment").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	response.Success(c, room)
}

// UpdateRoomStatus đổi trạng thái phòng (bảo trì, đóng cửa...)
func UpdateRoomStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}
	room.Status = req.Status
	if err := room.ValidateStatus(); err != nil {
		response.ValidationError(c, "Trạng thái phòng không hợp lệ")
		return
	}
	if err := config.DB.Model(&room).Update("status", req.Status).Error; err != nil {
		response.ServerError(c)
		return
	}
	availability.InvalidateRoomCache(c.Request.Context(), room.ID, time.Now())
	response.Success(c, room)
}

// GetFreeSlots tra cứu các khoảng trống của phòng trong một ngày
func GetFreeSlots(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.FreeSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	date, err := time.Parse("02/01/2006", req.Date)
	if err != nil {
		response.ValidationError(c, "Ngày không hợp lệ, định dạng dd/mm/yyyy")
		return
	}

	slots, err := availability.FreeSlots(c.Request.Context(), id, date,
		time.Duration(req.MinDuration)*time.Minute)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	out := make([]dto.FreeSlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.FreeSlotResponse{Start: s.Start, End: s.End})
	}
	response.Success(c, out)
}

// SuggestRooms gợi ý phòng thay thế còn trống
func SuggestRooms(c *gin.Context) {
	var req dto.SuggestRoomRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		response.ValidationError(c, "Thời gian bắt đầu không hợp lệ")
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		response.ValidationError(c, "Thời gian kết thúc không hợp lệ")
		return
	}

	suggestions, err := roomSuggest.Suggest(req.RoomID, start, end, req.Attendees, req.Query, req.Limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, suggestions)
}
