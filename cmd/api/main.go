package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/herahealth/portal-api/internal/config"
	"github.com/herahealth/portal-api/internal/email"
	"github.com/herahealth/portal-api/internal/handler"
	appointmentHandler "github.com/herahealth/portal-api/internal/handler/appointment"
	assistantHandler "github.com/herahealth/portal-api/internal/handler/assistant"
	authHandler "github.com/herahealth/portal-api/internal/handler/auth"
	cycleHandler "github.com/herahealth/portal-api/internal/handler/cycle"
	notificationHandler "github.com/herahealth/portal-api/internal/handler/notification"
	prescriptionHandler "github.com/herahealth/portal-api/internal/handler/prescription"
	profileHandler "github.com/herahealth/portal-api/internal/handler/profile"
	recordHandler "github.com/herahealth/portal-api/internal/handler/record"
	"github.com/herahealth/portal-api/internal/middleware"
	"github.com/herahealth/portal-api/internal/model"
	"github.com/herahealth/portal-api/internal/repository/postgres"
	"github.com/herahealth/portal-api/internal/router"
	appointmentService "github.com/herahealth/portal-api/internal/service/appointment"
	assistantService "github.com/herahealth/portal-api/internal/service/assistant"
	authService "github.com/herahealth/portal-api/internal/service/auth"
	cycleService "github.com/herahealth/portal-api/internal/service/cycle"
	notificationService "github.com/herahealth/portal-api/internal/service/notification"
	prescriptionService "github.com/herahealth/portal-api/internal/service/prescription"
	profileService "github.com/herahealth/portal-api/internal/service/profile"
	recordService "github.com/herahealth/portal-api/internal/service/record"
	"github.com/herahealth/portal-api/pkg/auth"
	"github.com/herahealth/portal-api/pkg/logger"
	"github.com/herahealth/portal-api/pkg/messaging/redis"
	"github.com/herahealth/portal-api/pkg/metrics"
	"github.com/herahealth/portal-api/pkg/security"
	"github.com/herahealth/portal-api/pkg/worker"
)

const migrationsDir = "migrations"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	model.RegisterValidations()

	db, err := postgres.NewDB(cfg.Database.ToPostgresConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	healthRecordRepo := postgres.NewHealthRecordRepository(db)
	periodLogRepo := postgres.NewPeriodLogRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)

	appMetrics := metrics.NewMetrics("portal", "api")

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryMinutes) * time.Minute,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	emailSvc := email.NewService(cfg.SMTP.ToEmailConfig())

	notifSvc := notificationService.NewService(notificationRepo, outboxRepo, profileRepo, emailSvc)
	authSvc := authService.NewService(profileRepo, tokenRepo, jwtSvc, hasher)
	profileSvc := profileService.NewService(profileRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, profileRepo, notifSvc, appMetrics,
		appointmentService.Config{PaymentDelay: cfg.Payment.ProcessingDelay})
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, appointmentRepo, notifSvc)
	recordSvc := recordService.NewService(healthRecordRepo)
	cycleSvc := cycleService.NewService(periodLogRepo, notifSvc)
	assistantSvc := assistantService.NewService(assistantService.Config{
		ReplyDelay: cfg.Assistant.ReplyDelay,
		Reply:      cfg.Assistant.Reply,
	})

	authMiddleware := middleware.NewAuthMiddleware(authSvc, profileSvc)

	// Handlers
	handlers := router.Handlers{
		Health:       handler.NewHandler(db),
		Auth:         authHandler.NewHandler(authSvc),
		Profile:      profileHandler.NewHandler(profileSvc, appointmentSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Prescription: prescriptionHandler.NewHandler(prescriptionSvc),
		Record:       recordHandler.NewHandler(recordSvc),
		Cycle:        cycleHandler.NewHandler(cycleSvc),
		Notification: notificationHandler.NewHandler(notifSvc),
		Assistant:    assistantHandler.NewHandler(assistantSvc),
	}

	r := router.NewRouter(authMiddleware, handlers, router.Config{
		RateLimit:  rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:  cfg.RateLimit.Burst,
		Timeout:    cfg.Server.RequestTimeout,
		CORSConfig: middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Outbox pipeline
	broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, cfg.Outbox.ToWorkerConfig(), appLogger, appMetrics)
	go outboxProcessor.Start(workerCtx)

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
