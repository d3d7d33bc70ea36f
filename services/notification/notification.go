package notification

import (
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"os"

	"github.com/olahol/melody"
)

// MeetingPublisher cổng phát thông báo cho các workflow. Fire-and-forget:
// lỗi gửi thông báo không được làm hỏng chuyển trạng thái đã commit,
// người gọi chỉ log cảnh báo.
type MeetingPublisher interface {
	NotifySignatureRequired(handoverCode string, parties []string) error
	NotifyConfirmed(bookingCode string) error
	NotifyCancelled(bookingCode string, reason string) error
	NotifyOverdue(lendingCode string, borrowerEmail string) error
}

// MelodyPublisher phát thông báo realtime qua websocket
type MelodyPublisher struct {
	m *melody.Melody
}

// NewMelodyPublisher tạo instance mới của MelodyPublisher
func NewMelodyPublisher(m *melody.Melody) *MelodyPublisher {
	return &MelodyPublisher{m: m}
}

func (p *MelodyPublisher) broadcast(event string, payload map[string]interface{}) error {
	if p.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload["event"] = event
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.m.Broadcast(b)
}

func (p *MelodyPublisher) NotifySignatureRequired(handoverCode string, parties []string) error {
	return p.broadcast("handover.signature_required", map[string]interface{}{
		"handover": handoverCode,
		"parties":  parties,
	})
}

func (p *MelodyPublisher) NotifyConfirmed(bookingCode string) error {
	return p.broadcast("booking.confirmed", map[string]interface{}{
		"booking": bookingCode,
	})
}

func (p *MelodyPublisher) NotifyCancelled(bookingCode string, reason string) error {
	return p.broadcast("booking.cancelled", map[string]interface{}{
		"booking": bookingCode,
		"reason":  reason,
	})
}

func (p *MelodyPublisher) NotifyOverdue(lendingCode string, borrowerEmail string) error {
	return p.broadcast("lending.overdue", map[string]interface{}{
		"lending": lendingCode,
	})
}

// EmailPublisher gửi thông báo qua SMTP
type EmailPublisher struct {
	from     string
	password string
	host     string
	port     string
}

// NewEmailPublisher đọc cấu hình SMTP từ biến môi trường
func NewEmailPublisher() *EmailPublisher {
	return &EmailPublisher{
		from:     os.Getenv("SMTP_FROM"),
		password: os.Getenv("SMTP_PASSWORD"),
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
	}
}

func (p *EmailPublisher) send(to, subject, body string) error {
	if p.host == "" || p.from == "" {
		return fmt.Errorf("smtp chưa được cấu hình")
	}
	msg := []byte("Subject: " + subject + "\r\n\r\n" + body)
	auth := smtp.PlainAuth("", p.from, p.password, p.host)
	return smtp.SendMail(p.host+":"+p.port, auth, p.from, []string{to}, msg)
}

func (p *EmailPublisher) NotifySignatureRequired(handoverCode string, parties []string) error {
	admin := os.Getenv("ASSET_ADMIN_EMAIL")
	if admin == "" {
		return nil
	}
	return p.send(admin,
		"Biên bản "+handoverCode+" đang chờ ký",
		fmt.Sprintf("Biên bản bàn giao %s cần chữ ký của: %v", handoverCode, parties))
}

func (p *EmailPublisher) NotifyConfirmed(bookingCode string) error {
	admin := os.Getenv("ASSET_ADMIN_EMAIL")
	if admin == "" {
		return nil
	}
	return p.send(admin,
		"Đặt phòng "+bookingCode+" đã được xác nhận",
		"Đặt phòng "+bookingCode+" đã được xác nhận.")
}

func (p *EmailPublisher) NotifyCancelled(bookingCode string, reason string) error {
	admin := os.Getenv("ASSET_ADMIN_EMAIL")
	if admin == "" {
		return nil
	}
	return p.send(admin,
		"Đặt phòng "+bookingCode+" đã bị hủy",
		"Lý do: "+reason)
}

func (p *EmailPublisher) NotifyOverdue(lendingCode string, borrowerEmail string) error {
	if borrowerEmail == "" {
		return nil
	}
	return p.send(borrowerEmail,
		"Phiếu mượn "+lendingCode+" đã quá hạn",
		"Phiếu mượn "+lendingCode+" đã quá hạn trả. Vui lòng trả tài sản sớm nhất có thể.")
}

// CompositePublisher gửi qua nhiều kênh, gom lỗi lại nhưng vẫn thử hết các kênh
type CompositePublisher struct {
	publishers []MeetingPublisher
}

// NewCompositePublisher tạo instance mới của CompositePublisher
func NewCompositePublisher(publishers ...MeetingPublisher) *CompositePublisher {
	return &CompositePublisher{publishers: publishers}
}

func (p *CompositePublisher) each(fn func(MeetingPublisher) error) error {
	var firstErr error
	for _, pub := range p.publishers {
		if err := fn(pub); err != nil {
			log.Printf("publisher error: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (p *CompositePublisher) NotifySignatureRequired(handoverCode string, parties []string) error {
	return p.each(func(pub MeetingPublisher) error {
		return pub.NotifySignatureRequired(handoverCode, parties)
	})
}

func (p *CompositePublisher) NotifyConfirmed(bookingCode string) error {
	return p.each(func(pub MeetingPublisher) error {
		return pub.NotifyConfirmed(bookingCode)
	})
}

func (p *CompositePublisher) NotifyCancelled(bookingCode string, reason string) error {
	return p.each(func(pub MeetingPublisher) error {
		return pub.NotifyCancelled(bookingCode, reason)
	})
}

func (p *CompositePublisher) NotifyOverdue(lendingCode string, borrowerEmail string) error {
	return p.each(func(pub MeetingPublisher) error {
		return pub.NotifyOverdue(lendingCode, borrowerEmail)
	})
}
