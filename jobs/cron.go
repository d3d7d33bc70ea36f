package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ReservationSweeper định nghĩa interface cho các tác vụ quét định kỳ
// trên đặt phòng và phiếu mượn
type ReservationSweeper interface {
	SweepOverdueLoans(ctx context.Context, now time.Time) (int, error)
	SweepAutoCheckout(ctx context.Context, now time.Time) (int, error)
	SweepApprovalReminders(ctx context.Context, now time.Time) (int, error)
	SendBookingReminders(ctx context.Context, now time.Time) (int, error)
}

var reservationSweeper ReservationSweeper

// SetReservationSweeper thiết lập implementation cho ReservationSweeper
func SetReservationSweeper(sweeper ReservationSweeper) {
	reservationSweeper = sweeper
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Quét phiếu mượn quá hạn mỗi giờ
	_, err := c.AddFunc("0 * * * *", func() {
		if reservationSweeper == nil {
			log.Printf("Lỗi: ReservationSweeper chưa được thiết lập")
			return
		}
		now := time.Now()
		n, err := reservationSweeper.SweepOverdueLoans(context.Background(), now)
		if err != nil {
			log.Printf("Lỗi khi quét phiếu mượn quá hạn: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Đã đánh dấu %d phiếu mượn quá hạn lúc: %v", n, now)
		}
	})
	if err != nil {
		return err
	}

	// Tự động check-out các cuộc họp đã qua giờ, mỗi 10 phút
	_, err = c.AddFunc("*/10 * * * *", func() {
		if reservationSweeper == nil {
			return
		}
		now := time.Now()
		n, err := reservationSweeper.SweepAutoCheckout(context.Background(), now)
		if err != nil {
			log.Printf("Lỗi khi tự động check-out: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Đã tự động check-out %d đặt phòng lúc: %v", n, now)
		}
	})
	if err != nil {
		return err
	}

	// Nhắc người duyệt các phiếu mượn còn treo, mỗi 6 giờ
	_, err = c.AddFunc("0 */6 * * *", func() {
		if reservationSweeper == nil {
			return
		}
		if _, err := reservationSweeper.SweepApprovalReminders(context.Background(), time.Now()); err != nil {
			log.Printf("Lỗi khi gửi nhắc duyệt phiếu mượn: %v", err)
		}
	})
	if err != nil {
		return err
	}

	// Nhắc lịch họp sắp bắt đầu, mỗi 15 phút
	_, err = c.AddFunc("*/15 * * * *", func() {
		if reservationSweeper == nil {
			return
		}
		if _, err := reservationSweeper.SendBookingReminders(context.Background(), time.Now()); err != nil {
			log.Printf("Lỗi khi gửi nhắc lịch họp: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
