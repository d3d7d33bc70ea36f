package dto

import "time"

// EquipmentRequestInput thiết bị xin kèm khi đặt phòng
type EquipmentRequestInput struct {
	AssetID uint       `json:"assetId" binding:"required"`
	Start   *time.Time `json:"start"`
	End     *time.Time `json:"end"`
	Note    string     `json:"note"`
}

// CreateBookingRequest là DTO cho request tạo đặt phòng
type CreateBookingRequest struct {
	Subject           string                  `json:"subject" binding:"required"`
	RoomID            uint                    `json:"roomId" binding:"required"`
	Start             time.Time               `json:"start" binding:"required"`
	End               time.Time               `json:"end" binding:"required"`
	AttendeeIDs       []uint                  `json:"attendeeIds"`
	ExternalAttendees int                     `json:"externalAttendees"`
	Equipment         []EquipmentRequestInput `json:"equipment"`
	Description       string                  `json:"description"`
}

// RescheduleBookingRequest là DTO cho request đổi lịch
type RescheduleBookingRequest struct {
	RoomID uint      `json:"roomId"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// CancelBookingRequest là DTO cho request hủy đặt phòng
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// BookingResponse là DTO cho response của đặt phòng
type BookingResponse struct {
	ID               uint       `json:"id"`
	Code             string     `json:"code"`
	Subject          string     `json:"subject"`
	RoomID           uint       `json:"roomId"`
	RoomName         string     `json:"roomName"`
	Start            time.Time  `json:"start"`
	End              time.Time  `json:"end"`
	OrganizerID      uint       `json:"organizerId"`
	OrganizerName    string     `json:"organizerName"`
	NumAttendees     int        `json:"numAttendees"`
	Status           int        `json:"status"`
	CheckinDatetime  *time.Time `json:"checkinDatetime"`
	CheckoutDatetime *time.Time `json:"checkoutDatetime"`
	CalendarEventRef string     `json:"calendarEventRef,omitempty"`
}
