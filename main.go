package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"dnu_asset/config"
	"dnu_asset/controllers"
	"dnu_asset/jobs"
	"dnu_asset/routes"
	"dnu_asset/services"
	"dnu_asset/services/logger"
	"dnu_asset/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := config.MigrateDB(); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)

	publisher := notification.NewCompositePublisher(
		notification.NewMelodyPublisher(m),
		notification.NewEmailPublisher(),
	)

	var calendar services.CalendarSync = services.NoopCalendarSync{}
	if config.GetEnv("GOOGLE_CREDENTIALS_FILE") != "" {
		gcal, err := services.NewGoogleCalendarSync(context.Background())
		if err != nil {
			log.Printf("Warning: không khởi tạo được Google Calendar, bỏ qua đồng bộ lịch: %v", err)
		} else {
			calendar = gcal
		}
	}

	availabilityService := services.NewAvailabilityService(services.AvailabilityServiceOptions{
		DB:     config.DB,
		Redis:  config.RedisClient,
		Logger: appLogger,
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		DB:           config.DB,
		Availability: availabilityService,
		Logger:       appLogger,
	})
	lendingService := services.NewLendingService(services.LendingServiceOptions{
		DB:           config.DB,
		Availability: availabilityService,
		Directory:    services.NewGormDirectory(config.DB),
		Publisher:    publisher,
		Logger:       appLogger,
	})
	handoverService := services.NewHandoverService(services.HandoverServiceOptions{
		DB:        config.DB,
		Publisher: publisher,
		Logger:    appLogger,
	})
	assignmentService := services.NewAssignmentService(services.AssignmentServiceOptions{
		DB:     config.DB,
		Logger: appLogger,
	})
	roomSuggestService := services.NewRoomSuggestService(services.RoomSuggestServiceOptions{
		DB:           config.DB,
		Availability: availabilityService,
		Logger:       appLogger,
	})
	reservationFacade := services.NewReservationFacade(services.ReservationFacadeOptions{
		DB:        config.DB,
		Bookings:  bookingService,
		Lendings:  lendingService,
		Publisher: publisher,
		Calendar:  calendar,
		Logger:    appLogger,
	})

	sweeper := services.NewReservationSweeper(services.ReservationSweeperOptions{
		Bookings:  bookingService,
		Lendings:  lendingService,
		Publisher: publisher,
		Logger:    appLogger,
	})
	jobs.SetReservationSweeper(sweeper)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	controllers.InitControllers(controllers.ControllerOptions{
		Bookings:     bookingService,
		Lendings:     lendingService,
		Handovers:    handoverService,
		Assignments:  assignmentService,
		Availability: availabilityService,
		RoomSuggest:  roomSuggestService,
		Reservation:  reservationFacade,
	})
	routes.SetupRoutes(router)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
