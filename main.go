package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepo "medibook/database/repository/appointment"
	patientRepo "medibook/database/repository/patient"
	providerRepo "medibook/database/repository/provider"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/availability"
	"medibook/services/notification"
	"medibook/services/patient"
	"medibook/services/payment"
	"medibook/services/provider"
	"medibook/services/scheduling"
	"medibook/services/storage"
	"medibook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	storageService, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	patRepo := patientRepo.NewMongoPatientRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	for name, ensure := range map[string]func() error{
		"providers":    provRepo.EnsureIndexes,
		"patients":     patRepo.EnsureIndexes,
		"appointments": apptRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// Notification queue: producer here, worker in cron.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()
	notifier := notification.NewQueueNotificationService(queueClient)
	cron.InitNotificationWorker(&notification.PushSender{Patients: patRepo})

	// Services.
	engine := &scheduling.DefaultSchedulingEngine{
		Providers:      provRepo,
		Appointments:   apptRepo,
		Notifier:       notifier,
		CommissionRate: config.AppConfig.CommissionRate,
		Slots: scheduling.SlotOptions{
			HorizonDays:     config.AppConfig.BookingHorizonDays,
			IntervalMinutes: config.AppConfig.SlotIntervalMinutes,
		},
	}
	availabilityService := &availability.DefaultAvailabilityService{Repo: provRepo}
	providerService := &provider.DefaultProviderService{Repo: provRepo, Cache: utils.GetCacheClient()}
	patientService := &patient.DefaultPatientService{Repo: patRepo}
	paymentService := &payment.StripePaymentService{Appointments: apptRepo, Logger: logger}

	// HTTP surface.
	handlerBundle := &handlers.HandlerBundle{
		ProviderRepo: provRepo,
		PatientRepo:  patRepo,
		Auth:         handlers.NewAuthHandler(patientService, providerService),
		Provider:     handlers.NewProviderHandler(providerService, availabilityService, storageService),
		Patient:      handlers.NewPatientHandler(patientService),
		Booking:      handlers.NewBookingHandler(engine, apptRepo),
		Dashboard:    handlers.NewDashboardHandler(engine, apptRepo, provRepo, patRepo),
		Payment:      handlers.NewPaymentHandler(paymentService),
	}

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}
	logger.Info("Server exited")
}
