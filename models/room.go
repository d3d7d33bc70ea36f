package models

import (
	"fmt"
	"time"

	"dnu_asset/constants"
)

type Room struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Code     string `json:"code" gorm:"uniqueIndex;not null"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Location string `json:"location"` // Ví dụ: Tầng 2, Toà A
	Floor    string `json:"floor"`
	Building string `json:"building"`

	// Trang thiết bị cố định trong phòng
	Equipment []Asset `json:"equipment" gorm:"many2many:room_assets;"`

	// Tiện nghi
	HasProjector       bool `json:"hasProjector"`
	HasTV              bool `json:"hasTv"`
	HasWhiteboard      bool `json:"hasWhiteboard"`
	HasVideoConference bool `json:"hasVideoConference"`
	HasAirConditioning bool `json:"hasAirConditioning"`
	HasWifi            bool `json:"hasWifi"`

	Status       int  `json:"status" gorm:"default:1"`
	AllowBooking bool `json:"allowBooking" gorm:"default:true"`

	// Cấu hình đặt phòng
	BookingAdvanceDays int     `json:"bookingAdvanceDays" gorm:"default:30"`
	MinBookingDuration float64 `json:"minBookingDuration" gorm:"default:0.5"` // giờ
	MaxBookingDuration float64 `json:"maxBookingDuration" gorm:"default:8"`   // giờ
	WorkStartHour      int     `json:"workStartHour" gorm:"default:8"`
	WorkEndHour        int     `json:"workEndHour" gorm:"default:18"`

	ResponsibleID *uint  `json:"responsibleId"`
	Responsible   *User  `json:"responsible" gorm:"foreignKey:ResponsibleID"`
	Description   string `json:"description"`
	Active        bool   `json:"active" gorm:"default:true"`

	Bookings  []Booking `json:"-" gorm:"foreignKey:RoomID"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Room) ValidateStatus() error {
	if r.Status < constants.RoomStatusAvailable || r.Status > constants.RoomStatusClosed {
		return fmt.Errorf("invalid status: %d", r.Status)
	}
	return nil
}

// WorkingWindow trả về khung giờ làm việc của phòng trong một ngày
func (r *Room) WorkingWindow(date time.Time) (time.Time, time.Time) {
	startHour := r.WorkStartHour
	endHour := r.WorkEndHour
	if startHour == 0 && endHour == 0 {
		startHour = constants.DefaultWorkStartHour
		endHour = constants.DefaultWorkEndHour
	}
	y, m, d := date.Date()
	start := time.Date(y, m, d, startHour, 0, 0, 0, date.Location())
	end := time.Date(y, m, d, endHour, 0, 0, 0, date.Location())
	return start, end
}
