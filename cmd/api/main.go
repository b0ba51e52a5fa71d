package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/physiocare/physiocare-api/internal/config"
	"github.com/physiocare/physiocare-api/internal/email"
	analyticsHandler "github.com/physiocare/physiocare-api/internal/handler/analytics"
	authHandler "github.com/physiocare/physiocare-api/internal/handler/auth"
	billingHandler "github.com/physiocare/physiocare-api/internal/handler/billing"
	bookingHandler "github.com/physiocare/physiocare-api/internal/handler/booking"
	catalogHandler "github.com/physiocare/physiocare-api/internal/handler/catalog"
	contentHandler "github.com/physiocare/physiocare-api/internal/handler/content"
	feedbackHandler "github.com/physiocare/physiocare-api/internal/handler/feedback"
	healthHandler "github.com/physiocare/physiocare-api/internal/handler/health"
	notificationHandler "github.com/physiocare/physiocare-api/internal/handler/notification"
	scheduleHandler "github.com/physiocare/physiocare-api/internal/handler/schedule"
	subscriptionHandler "github.com/physiocare/physiocare-api/internal/handler/subscription"
	supportHandler "github.com/physiocare/physiocare-api/internal/handler/support"
	treatmentHandler "github.com/physiocare/physiocare-api/internal/handler/treatment"
	userHandler "github.com/physiocare/physiocare-api/internal/handler/user"
	"github.com/physiocare/physiocare-api/internal/middleware"
	"github.com/physiocare/physiocare-api/internal/repository/postgres"
	"github.com/physiocare/physiocare-api/internal/router"
	analyticsService "github.com/physiocare/physiocare-api/internal/service/analytics"
	authService "github.com/physiocare/physiocare-api/internal/service/auth"
	billingService "github.com/physiocare/physiocare-api/internal/service/billing"
	bookingService "github.com/physiocare/physiocare-api/internal/service/booking"
	catalogService "github.com/physiocare/physiocare-api/internal/service/catalog"
	contentService "github.com/physiocare/physiocare-api/internal/service/content"
	feedbackService "github.com/physiocare/physiocare-api/internal/service/feedback"
	notificationService "github.com/physiocare/physiocare-api/internal/service/notification"
	scheduleService "github.com/physiocare/physiocare-api/internal/service/schedule"
	subscriptionService "github.com/physiocare/physiocare-api/internal/service/subscription"
	supportService "github.com/physiocare/physiocare-api/internal/service/support"
	treatmentService "github.com/physiocare/physiocare-api/internal/service/treatment"
	userService "github.com/physiocare/physiocare-api/internal/service/user"
	"github.com/physiocare/physiocare-api/internal/worker"
	"github.com/physiocare/physiocare-api/pkg/auth"
	"github.com/physiocare/physiocare-api/pkg/gateway/razorpay"
	"github.com/physiocare/physiocare-api/pkg/logger"
	"github.com/physiocare/physiocare-api/pkg/messaging/redis"
	"github.com/physiocare/physiocare-api/pkg/metrics"
	"github.com/physiocare/physiocare-api/pkg/security"
)

func main() {
	// Best effort; production deployments set real environment variables.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{URL: cfg.Redis.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	m := metrics.NewMetrics("physiocare", "api")

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(0)
	emailSvc := email.NewSMTPService(cfg.SMTP)
	paymentGateway := razorpay.NewClient(razorpay.Config{
		KeyID:     cfg.Gateway.KeyID,
		KeySecret: cfg.Gateway.KeySecret,
		Timeout:   cfg.Gateway.Timeout,
	})

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	treatmentRepo := postgres.NewTreatmentRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	couponRepo := postgres.NewCouponRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	supportRepo := postgres.NewSupportRepository(db)
	contentRepo := postgres.NewContentRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	// Services
	authSvc := authService.NewService(userRepo, jwtSvc, hasher, emailSvc, appLogger)
	userSvc := userService.NewService(userRepo)
	catalogSvc := catalogService.NewService(catalogRepo)
	scheduleSvc := scheduleService.NewService(scheduleRepo)
	notificationSvc := notificationService.NewService(notificationRepo, broker, m, appLogger)
	bookingSvc := bookingService.NewService(appointmentRepo, scheduleRepo, catalogRepo, userRepo, notificationSvc, m, appLogger)
	treatmentSvc := treatmentService.NewService(treatmentRepo, appointmentRepo, catalogRepo, appLogger)
	feedbackSvc := feedbackService.NewService(feedbackRepo, appointmentRepo)
	billingSvc := billingService.NewService(paymentRepo, couponRepo, appointmentRepo, paymentGateway, m, appLogger)
	subscriptionSvc := subscriptionService.NewService(subscriptionRepo, billingSvc)
	supportSvc := supportService.NewService(supportRepo, userRepo)
	contentSvc := contentService.NewService(contentRepo)
	analyticsSvc := analyticsService.NewService(analyticsRepo, userRepo)

	authMW := middleware.NewAuthMiddleware(jwtSvc)

	// Handlers
	authH := authHandler.NewHandler(authSvc)
	healthH := healthHandler.NewHandler(db)
	billingH := billingHandler.NewHandler(billingSvc, authMW)

	r := router.NewRouter(
		cfg,
		authMW,
		m,
		authH,
		billingH,
		healthH,
		userHandler.NewHandler(userSvc, authMW),
		catalogHandler.NewHandler(catalogSvc, authMW),
		scheduleHandler.NewHandler(scheduleSvc, authMW),
		bookingHandler.NewHandler(bookingSvc, authMW),
		treatmentHandler.NewHandler(treatmentSvc, authMW),
		feedbackHandler.NewHandler(feedbackSvc, authMW),
		subscriptionHandler.NewHandler(subscriptionSvc, authMW),
		notificationHandler.NewHandler(notificationSvc, authMW),
		supportHandler.NewHandler(supportSvc, authMW),
		contentHandler.NewHandler(contentSvc, authMW),
		analyticsHandler.NewHandler(analyticsSvc, authMW),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := worker.NewReminderDispatcher(supportRepo, catalogRepo, userRepo, emailSvc, m, appLogger, cfg.Reminders.PollInterval)
	go dispatcher.Run(workerCtx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
