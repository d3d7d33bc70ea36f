package controllers

import (
	"errors"
	"strconv"
	"time"

	apperrors "dnu_asset/errors"
	"dnu_asset/response"
	"dnu_asset/services"

	"github.com/gin-gonic/gin"
)

// Các service dùng chung cho controllers, được gắn khi khởi động app
var (
	bookingService    *services.BookingService
	lendingService    *services.LendingService
	handoverService   *services.HandoverService
	assignmentService *services.AssignmentService
	availability      *services.AvailabilityService
	roomSuggest       *services.RoomSuggestService
	reservation       *services.ReservationFacade
)

// ControllerOptions các service cần cho tầng controller
type ControllerOptions struct {
	Bookings     *services.BookingService
	Lendings     *services.LendingService
	Handovers    *services.HandoverService
	Assignments  *services.AssignmentService
	Availability *services.AvailabilityService
	RoomSuggest  *services.RoomSuggestService
	Reservation  *services.ReservationFacade
}

// InitControllers gắn các service cho controllers
func InitControllers(opts ControllerOptions) {
	bookingService = opts.Bookings
	lendingService = opts.Lendings
	handoverService = opts.Handovers
	assignmentService = opts.Assignments
	availability = opts.Availability
	roomSuggest = opts.RoomSuggest
	reservation = opts.Reservation
}

// currentUser lấy userID và role đã được middleware gắn vào context
func currentUser(c *gin.Context) (uint, int, bool) {
	userID, ok := c.Get("userID")
	if !ok {
		response.Unauthorized(c)
		return 0, 0, false
	}
	userRole, ok := c.Get("userRole")
	if !ok {
		response.Unauthorized(c)
		return 0, 0, false
	}
	return userID.(uint), userRole.(int), true
}

// paramID đọc path param :id
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

// parseRFC3339 đọc thời gian từ query param
func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// notFoundErrors các lỗi không tìm thấy bản ghi
var notFoundErrors = []error{
	apperrors.ErrUserNotFound,
	apperrors.ErrRoomNotFound,
	apperrors.ErrAssetNotFound,
	apperrors.ErrBookingNotFound,
	apperrors.ErrLendingNotFound,
	apperrors.ErrHandoverNotFound,
	apperrors.ErrAssignmentNotFound,
}

// respondDomainError ánh xạ lỗi nghiệp vụ sang mã HTTP tương ứng
func respondDomainError(c *gin.Context, err error) {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			response.NotFound(c)
			return
		}
	}
	if conflict, ok := apperrors.AsConflict(err); ok {
		response.Conflict(c, conflict.Error(), conflict.Conflicts)
		return
	}
	if apperrors.IsState(err) {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if apperrors.IsDependencyNotReady(err) {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if apperrors.IsPermission(err) {
		response.Forbidden(c, err.Error())
		return
	}
	if apperrors.IsValidation(err) {
		response.ValidationError(c, err.Error())
		return
	}
	if appErr, ok := err.(*apperrors.AppError); ok {
		if appErr.Code == apperrors.ErrCodeDBNotFound {
			response.NotFound(c)
			return
		}
		response.Error(c, 0, appErr.Message)
		return
	}
	response.ServerError(c)
}
