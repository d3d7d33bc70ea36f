package controllers

import (
	"strconv"
	"time"

	"dnu_asset/config"
	"dnu_asset/dto"
	"dnu_asset/models"
	"dnu_asset/response"

	"github.com/gin-gonic/gin"
)

func toBookingResponse(b *models.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:               b.ID,
		Code:             b.Code,
		Subject:          b.Subject,
		RoomID:           b.RoomID,
		RoomName:         b.Room.Name,
		Start:            b.StartDatetime,
		End:              b.EndDatetime,
		OrganizerID:      b.OrganizerID,
		OrganizerName:    b.Organizer.Name,
		NumAttendees:     b.NumAttendees(),
		Status:           b.Status,
		CheckinDatetime:  b.CheckinDatetime,
		CheckoutDatetime: b.CheckoutDatetime,
		CalendarEventRef: b.CalendarEventRef,
	}
}

// CreateBooking tạo đặt phòng nháp cho người đang đăng nhập
func CreateBooking(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	booking := models.Booking{
		Subject:           req.Subject,
		RoomID:            req.RoomID,
		StartDatetime:     req.Start,
		EndDatetime:       req.End,
		OrganizerID:       userID,
		ExternalAttendees: req.ExternalAttendees,
		Description:       req.Description,
	}
	if len(req.AttendeeIDs) > 0 {
		var attendees []models.User
		if err := config.DB.Where("id IN ?", req.AttendeeIDs).Find(&attendees).Error; err != nil {
			response.ServerError(c)
			return
		}
		booking.Attendees = attendees
	}
	for _, eq := range req.Equipment {
		er := models.EquipmentRequest{AssetID: eq.AssetID, Note: eq.Note}
		if eq.Start != nil {
			er.StartDatetime = *eq.Start
		}
		if eq.End != nil {
			er.EndDatetime = *eq.End
		}
		booking.EquipmentRequests = append(booking.EquipmentRequests, er)
	}

	if err := bookingService.Create(c.Request.Context(), &booking); err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, toBookingResponse(&booking))
}

// GetBookings liệt kê đặt phòng, lọc theo phòng hoặc người tổ chức
func GetBookings(c *gin.Context) {
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

	tx := config.DB.Model(&models.Booking{}).Preload("Room").Preload("Organizer")
	// Nhân viên thường chỉ thấy đặt phòng của mình
	if userRole == 0 {
		tx = tx.Where("organizer_id = ?", userID)
	}
	if roomStr := c.Query("roomId"); roomStr != "" {
		if roomID, err := strconv.Atoi(roomStr); err == nil {
			tx = tx.Where("room_id = ?", roomID)
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		if status, err := strconv.Atoi(statusStr); err == nil {
			tx = tx.Where("status = ?", status)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}
	var bookings []models.Booking
	if err := tx.Offset((page - 1) * limit).Limit(limit).Order("start_datetime DESC").Find(&bookings).Error; err != nil {
		response.ServerError(c)
		return
	}

	out := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	response.SuccessWithPagination(c, out, page, limit, int(total))
}

// GetBooking lấy chi tiết đặt phòng
func GetBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := bookingService.GetByID(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, booking)
}

// SubmitBooking gửi yêu cầu đặt phòng
func SubmitBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := bookingService.Submit(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, booking)
}

// ConfirmBooking xác nhận đặt phòng kèm hiện thực hóa thiết bị xin kèm
func ConfirmBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	result, err := reservation.ConfirmBooking(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, result)
}

// CheckinBooking check-in vào phòng họp
func CheckinBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	booking, err := bookingService.CheckIn(c.Request.Context(), id, userID, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, booking)
}

// CheckoutBooking check-out khỏi phòng họp
func CheckoutBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := bookingService.CheckOut(c.Request.Context(), id, time.Now())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, booking)
}

// RescheduleBooking đổi lịch hoặc đổi phòng
func RescheduleBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	booking, err := bookingService.Reschedule(c.Request.Context(), id, req.RoomID, req.Start, req.End)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, booking)
}

// CancelBooking hủy đặt phòng kèm lan truyền sang phiếu mượn thiết bị
func CancelBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	booking, err := reservation.CancelBooking(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, booking)
}
