package services

import (
	"context"
	"os"

	"dnu_asset/models"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarSync cổng đồng bộ lịch ngoài. Chỉ được gọi sau khi đặt phòng
// đã Confirmed/Cancelled; lỗi đồng bộ chỉ log cảnh báo, không bao giờ
// chặn chuyển trạng thái.
type CalendarSync interface {
	CreateExternalEvent(booking *models.Booking) (string, error)
	DeleteExternalEvent(externalRef string) error
}

// GoogleCalendarSync đồng bộ với Google Calendar
type GoogleCalendarSync struct {
	service    *calendar.Service
	calendarID string
}

// NewGoogleCalendarSync khởi tạo client Google Calendar từ file credentials
func NewGoogleCalendarSync(ctx context.Context) (*GoogleCalendarSync, error) {
	credFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	srv, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credFile),
		option.WithScopes(calendar.CalendarEventsScope),
	)
	if err != nil {
		return nil, err
	}
	calendarID := os.Getenv("GOOGLE_CALENDAR_ID")
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendarSync{service: srv, calendarID: calendarID}, nil
}

func (g *GoogleCalendarSync) CreateExternalEvent(booking *models.Booking) (string, error) {
	event := &calendar.Event{
		Summary:     booking.Code + " - " + booking.Subject,
		Location:    booking.Room.Name,
		Description: booking.Description,
		Start: &calendar.EventDateTime{
			DateTime: booking.StartDatetime.Format("2006-01-02T15:04:05-07:00"),
		},
		End: &calendar.EventDateTime{
			DateTime: booking.EndDatetime.Format("2006-01-02T15:04:05-07:00"),
		},
	}
	created, err := g.service.Events.Insert(g.calendarID, event).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (g *GoogleCalendarSync) DeleteExternalEvent(externalRef string) error {
	return g.service.Events.Delete(g.calendarID, externalRef).Do()
}

// NoopCalendarSync dùng khi không cấu hình Google Calendar
type NoopCalendarSync struct{}

func (NoopCalendarSync) CreateExternalEvent(booking *models.Booking) (string, error) {
	return "", nil
}

func (NoopCalendarSync) DeleteExternalEvent(externalRef string) error {
	return nil
}
