package models

import (
	"time"

	"dnu_asset/constants"
)

type Booking struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Code    string `json:"code" gorm:"uniqueIndex;not null"` // Mã đặt phòng
	Subject string `json:"subject"`                          // Chủ đề cuộc họp
	RoomID  uint   `json:"roomId" gorm:"index"`
	Room    Room   `json:"room" gorm:"foreignKey:RoomID"`

	// Khoảng thời gian nửa mở [start, end)
	StartDatetime time.Time `json:"startDatetime" gorm:"index"`
	EndDatetime   time.Time `json:"endDatetime" gorm:"index"`

	OrganizerID       uint   `json:"organizerId"`
	Organizer         User   `json:"organizer" gorm:"foreignKey:OrganizerID"`
	Attendees         []User `json:"attendees" gorm:"many2many:booking_attendees;"`
	ExternalAttendees int    `json:"externalAttendees"`

	EquipmentRequests []EquipmentRequest `json:"equipmentRequests" gorm:"foreignKey:BookingID"`

	Status int `json:"status" gorm:"default:0;index"`

	CheckinDatetime  *time.Time `json:"checkinDatetime"`
	CheckoutDatetime *time.Time `json:"checkoutDatetime"`
	CheckinByID      *uint      `json:"checkinById"`

	Description        string `json:"description"`
	Notes              string `json:"notes"`
	CancellationReason string `json:"cancellationReason"`

	// Tham chiếu sự kiện lịch bên ngoài (Google Calendar)
	CalendarEventRef string `json:"calendarEventRef"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// EquipmentRequest yêu cầu thiết bị đi kèm một lượt đặt phòng
type EquipmentRequest struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	BookingID     uint      `json:"bookingId" gorm:"index"`
	AssetID       uint      `json:"assetId" gorm:"index"`
	Asset         Asset     `json:"asset" gorm:"foreignKey:AssetID"`
	StartDatetime time.Time `json:"startDatetime"`
	EndDatetime   time.Time `json:"endDatetime"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Duration thời lượng cuộc họp tính theo giờ
func (b *Booking) Duration() float64 {
	return b.EndDatetime.Sub(b.StartDatetime).Hours()
}

// NumAttendees tổng số người tham dự, tính cả người tổ chức và khách ngoài
func (b *Booking) NumAttendees() int {
	n := len(b.Attendees)
	hasOrganizer := false
	for _, a := range b.Attendees {
		if a.ID == b.OrganizerID {
			hasOrganizer = true
			break
		}
	}
	if !hasOrganizer {
		n++
	}
	return n + b.ExternalAttendees
}

// IsTerminal đặt phòng đã kết thúc vòng đời chưa
func (b *Booking) IsTerminal() bool {
	return b.Status == constants.BookingStatusDone || b.Status == constants.BookingStatusCancelled
}

// CanCheckinAt chỉ được check-in trong khoảng [start-15 phút, end] và chưa check-in lần nào
func (b *Booking) CanCheckinAt(now time.Time) bool {
	if b.Status != constants.BookingStatusConfirmed || b.CheckinDatetime != nil {
		return false
	}
	earliest := b.StartDatetime.Add(-time.Duration(constants.CheckinEarlyMinutes) * time.Minute)
	return !now.Before(earliest) && !now.After(b.EndDatetime)
}

// BookingBlockingStatuses các trạng thái chặn lịch của đặt phòng
func BookingBlockingStatuses() []int {
	return []int{constants.BookingStatusConfirmed, constants.BookingStatusInProgress}
}
