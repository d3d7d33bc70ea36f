package routes

import (
	"dnu_asset/constants"
	"dnu_asset/controllers"
	middlewares "dnu_asset/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", controllers.Register)
	v1.POST("/auth/login", controllers.Login)

	manager := middlewares.AuthMiddleware(constants.RoleAssetManager, constants.RoleAdmin)
	anyUser := middlewares.AuthMiddleware()

	v1.GET("/rooms", anyUser, controllers.GetRooms)
	v1.POST("/rooms", manager, controllers.CreateRoom)
	v1.GET("/rooms/:id", anyUser, controllers.GetRoom)
	v1.PUT("/rooms/:id/status", manager, controllers.UpdateRoomStatus)
	v1.GET("/rooms/:id/freeSlots", anyUser, controllers.GetFreeSlots)
	v1.GET("/roomSuggest", anyUser, controllers.SuggestRooms)

	v1.GET("/assets", anyUser, controllers.GetAssets)
	v1.POST("/assets", manager, controllers.CreateAsset)
	v1.GET("/assets/:id", anyUser, controllers.GetAsset)
	v1.GET("/assets/:id/availability", anyUser, controllers.CheckAssetAvailability)
	v1.GET("/assets/:id/maintenances", manager, controllers.GetAssetMaintenances)
	v1.PUT("/assets/:id/retire", manager, controllers.RetireAsset)

	v1.GET("/bookings", anyUser, controllers.GetBookings)
	v1.POST("/bookings", anyUser, controllers.CreateBooking)
	v1.GET("/bookings/:id", anyUser, controllers.GetBooking)
	v1.PUT("/bookings/:id/submit", anyUser, controllers.SubmitBooking)
	v1.PUT("/bookings/:id/confirm", manager, controllers.ConfirmBooking)
	v1.PUT("/bookings/:id/checkin", anyUser, controllers.CheckinBooking)
	v1.PUT("/bookings/:id/checkout", anyUser, controllers.CheckoutBooking)
	v1.PUT("/bookings/:id/reschedule", anyUser, controllers.RescheduleBooking)
	v1.PUT("/bookings/:id/cancel", anyUser, controllers.CancelBooking)

	v1.GET("/lendings", anyUser, controllers.GetLendings)
	v1.POST("/lendings", anyUser, controllers.CreateLending)
	v1.GET("/lendings/:id", anyUser, controllers.GetLending)
	v1.PUT("/lendings/:id/request", anyUser, controllers.RequestLending)
	v1.PUT("/lendings/:id/approve", anyUser, controllers.ApproveLending)
	v1.PUT("/lendings/:id/activate", manager, controllers.ActivateLending)
	v1.PUT("/lendings/:id/return", manager, controllers.ReturnLending)
	v1.PUT("/lendings/:id/cancel", anyUser, controllers.CancelLending)

	v1.POST("/handovers/lending", manager, controllers.CreateLendingHandover)
	v1.POST("/handovers/assignment", manager, controllers.CreateAssignmentHandover)
	v1.GET("/handovers/:id", anyUser, controllers.GetHandover)
	v1.PUT("/handovers/:id/send", manager, controllers.SendHandoverForSignature)
	v1.PUT("/handovers/:id/sign", anyUser, controllers.SignHandover)
	v1.PUT("/handovers/:id/complete", manager, controllers.CompleteHandover)
	v1.DELETE("/handovers/:id", manager, controllers.CancelHandover)

	v1.POST("/assignments", manager, controllers.CreateAssignment)
	v1.GET("/assignments/my", anyUser, controllers.GetMyAssignments)
	v1.GET("/assignments/:id", anyUser, controllers.GetAssignment)
	v1.PUT("/assignments/:id/return", manager, controllers.ReturnAssignment)
	v1.PUT("/assignments/:id/cancel", manager, controllers.CancelAssignment)
}
