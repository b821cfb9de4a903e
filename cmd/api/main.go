package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clinicsync/records-api/internal/config"
	"github.com/clinicsync/records-api/internal/handler"
	authHandler "github.com/clinicsync/records-api/internal/handler/auth"
	consultationHandler "github.com/clinicsync/records-api/internal/handler/consultation"
	dashboardHandler "github.com/clinicsync/records-api/internal/handler/dashboard"
	followupHandler "github.com/clinicsync/records-api/internal/handler/followup"
	patientHandler "github.com/clinicsync/records-api/internal/handler/patient"
	"github.com/clinicsync/records-api/internal/middleware"
	"github.com/clinicsync/records-api/internal/repository/postgres"
	"github.com/clinicsync/records-api/internal/router"
	authService "github.com/clinicsync/records-api/internal/service/auth"
	consultationService "github.com/clinicsync/records-api/internal/service/consultation"
	dashboardService "github.com/clinicsync/records-api/internal/service/dashboard"
	followupService "github.com/clinicsync/records-api/internal/service/followup"
	patientService "github.com/clinicsync/records-api/internal/service/patient"
	pkgauth "github.com/clinicsync/records-api/pkg/auth"
	"github.com/clinicsync/records-api/pkg/logger"
	"github.com/clinicsync/records-api/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)
	followUpRepo := postgres.NewFollowUpRepository(db)

	// Initialize services
	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(doctorRepo, hasher, jwtSvc)
	patientSvc := patientService.NewService(patientRepo, consultationRepo, followUpRepo, doctorRepo, appLogger)
	consultationSvc := consultationService.NewService(consultationRepo, patientRepo)
	followUpSvc := followupService.NewService(followUpRepo, consultationRepo)
	dashboardSvc := dashboardService.NewService(patientRepo, consultationRepo, followUpRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Initialize handlers
	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	consultationH := consultationHandler.NewHandler(consultationSvc)
	followupH := followupHandler.NewHandler(followUpSvc)
	dashboardH := dashboardHandler.NewHandler(dashboardSvc)

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		authH,
		patientH,
		consultationH,
		followupH,
		dashboardH,
		h,
		router.Config{
			RateLimitRPS:   cfg.Server.RateLimitRPS,
			RateLimitBurst: cfg.Server.RateLimitBurst,
		},
	)
	r.Setup()

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	// Start server
	go func() {
		appLogger.Info(fmt.Sprintf("listening on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
