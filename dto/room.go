package dto

import "time"

// CreateRoomRequest là DTO cho request tạo phòng họp
type CreateRoomRequest struct {
	Code               string  `json:"code" binding:"required"`
	Name               string  `json:"name" binding:"required"`
	Capacity           int     `json:"capacity" binding:"required,min=1"`
	Location           string  `json:"location"`
	Floor              string  `json:"floor"`
	Building           string  `json:"building"`
	HasProjector       bool    `json:"hasProjector"`
	HasTV              bool    `json:"hasTv"`
	HasWhiteboard      bool    `json:"hasWhiteboard"`
	HasVideoConference bool    `json:"hasVideoConference"`
	HasAirConditioning bool    `json:"hasAirConditioning"`
	HasWifi            bool    `json:"hasWifi"`
	BookingAdvanceDays int     `json:"bookingAdvanceDays"`
	MinBookingDuration float64 `json:"minBookingDuration"`
	MaxBookingDuration float64 `json:"maxBookingDuration"`
	WorkStartHour      int     `json:"workStartHour"`
	WorkEndHour        int     `json:"workEndHour"`
	ResponsibleID      *uint   `json:"responsibleId"`
	Description        string  `json:"description"`
}

// UpdateRoomStatusRequest là DTO cho request đổi trạng thái phòng
type UpdateRoomStatusRequest struct {
	Status int `json:"status" binding:"required"`
}

// FreeSlotsRequest là DTO cho request tra cứu khoảng trống của phòng
type FreeSlotsRequest struct {
	Date        string `form:"date" binding:"required"` // 02/01/2006
	MinDuration int    `form:"minDuration"`             // phút
}

// FreeSlotResponse một khoảng trống trong ngày
type FreeSlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SuggestRoomRequest là DTO cho request gợi ý phòng thay thế
type SuggestRoomRequest struct {
	RoomID    uint   `form:"roomId"`
	Start     string `form:"start" binding:"required"` // RFC3339
	End       string `form:"end" binding:"required"`
	Attendees int    `form:"attendees"`
	Query     string `form:"query"`
	Limit     int    `form:"limit"`
}
