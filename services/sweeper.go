package services

import (
	"context"
	"time"

	"dnu_asset/services/logger"
	"dnu_asset/services/notification"
)

// ReservationSweeper gom các tác vụ quét định kỳ cho cron: đánh dấu
// phiếu mượn quá hạn, tự động check-out, nhắc lịch họp sắp bắt đầu
type ReservationSweeper struct {
	bookings  *BookingService
	lendings  *LendingService
	publisher notification.MeetingPublisher
	logger    logger.Logger
}

// ReservationSweeperOptions tham số khởi tạo ReservationSweeper
type ReservationSweeperOptions struct {
	Bookings  *BookingService
	Lendings  *LendingService
	Publisher notification.MeetingPublisher
	Logger    logger.Logger
}

// NewReservationSweeper tạo instance mới của ReservationSweeper
func NewReservationSweeper(opts ReservationSweeperOptions) *ReservationSweeper {
	return &ReservationSweeper{
		bookings:  opts.Bookings,
		lendings:  opts.Lendings,
		publisher: opts.Publisher,
		logger:    opts.Logger,
	}
}

func (s *ReservationSweeper) SweepOverdueLoans(ctx context.Context, now time.Time) (int, error) {
	return s.lendings.SweepOverdue(ctx, now)
}

func (s *ReservationSweeper) SweepAutoCheckout(ctx context.Context, now time.Time) (int, error) {
	return s.bookings.SweepAutoCheckout(ctx, now)
}

// SweepApprovalReminders nhắc lại các phiếu mượn còn chờ duyệt mà ngày
// mượn đã trong vòng 24 giờ tới
func (s *ReservationSweeper) SweepApprovalReminders(ctx context.Context, now time.Time) (int, error) {
	lendings, err := s.lendings.AwaitingApproval(now, 24*time.Hour)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range lendings {
		if s.publisher == nil {
			break
		}
		parties := []string{"người duyệt phiếu mượn"}
		if err := s.publisher.NotifySignatureRequired(l.Code, parties); err != nil {
			s.logger.Warn("gửi nhắc duyệt phiếu %s thất bại: %v", l.Code, err)
			continue
		}
		count++
	}
	return count, nil
}

// SendBookingReminders nhắc các cuộc họp bắt đầu trong 30 phút tới
func (s *ReservationSweeper) SendBookingReminders(ctx context.Context, now time.Time) (int, error) {
	bookings, err := s.bookings.UpcomingForReminder(now, 30*time.Minute)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, b := range bookings {
		if s.publisher == nil {
			break
		}
		if err := s.publisher.NotifyConfirmed(b.Code); err != nil {
			s.logger.Warn("gửi nhắc lịch họp %s thất bại: %v", b.Code, err)
			continue
		}
		count++
	}
	return count, nil
}
