package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resortbook/config"
	"resortbook/jobs"
	"resortbook/models"
	"resortbook/routes"
	"resortbook/services"
	"resortbook/services/logger"
	"resortbook/services/notification"
	"resortbook/validator"
)

// @title Resort Booking API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

// run starts the server and blocks until it is told to stop. Startup
// failures are returned after the deferred cleanup, including the log file.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var appLogger logger.Logger = logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogDir != "" {
		fileLogger, closer, err := logger.NewFileLogger(logger.ParseLevel(cfg.LogLevel), cfg.LogDir)
		if err != nil {
			return fmt.Errorf("failed to open log dir: %w", err)
		}
		defer closer.Close()
		appLogger = fileLogger
	}

	fail := func(msg string, err error) error {
		appLogger.Error("%s: %v", msg, err)
		return fmt.Errorf("%s: %w", msg, err)
	}

	if err := validator.Register(); err != nil {
		return fail("Failed to register validators", err)
	}

	router, m, c, err := config.InitApp(cfg, appLogger)
	if err != nil {
		return fail("Failed to initialize app", err)
	}
	defer func() {
		if sqlDB, err := config.DB.DB(); err == nil {
			sqlDB.Close()
		}
		config.RedisClient.Close()
	}()

	if err := models.AutoMigrate(config.DB); err != nil {
		return fail("Failed to migrate tables", err)
	}

	notifier := notification.NewMelodyService(m)
	cache := services.NewAvailabilityCache(services.NewRedisCache(config.RedisClient))
	tokens := services.NewTokenService(cfg.Auth.SecretKey, cfg.Auth.TokenTTL, services.NewRedisRevocationStore(config.RedisClient))

	var images services.ImageStore
	if config.Cloudinary != nil {
		images = services.NewCloudinaryImageStore(config.Cloudinary, cfg.Cloudinary.Folder)
	}

	authService := services.NewAuthService(services.AuthServiceOptions{
		DB:     config.DB,
		Logger: appLogger,
		Tokens: tokens,
	})
	accommodationService := services.NewAccommodationService(services.AccommodationServiceOptions{
		DB:      config.DB,
		Logger:  appLogger,
		Images:  images,
		Cache:   cache,
		Retries: cfg.InventoryRetries,
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		DB:       config.DB,
		Logger:   appLogger,
		Notifier: notifier,
		Cache:    cache,
		Retries:  cfg.InventoryRetries,
	})
	userService := services.NewUserService(services.UserServiceOptions{
		DB:       config.DB,
		Logger:   appLogger,
		Notifier: notifier,
		Cache:    cache,
		Retries:  cfg.InventoryRetries,
	})

	if cfg.Auth.AdminEmail != "" {
		if err := authService.SeedAdmin(context.Background(), cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			return fail("Failed to seed admin", err)
		}
	}

	auditor := services.NewInventoryAuditor(accommodationService, notifier, appLogger)
	if err := jobs.InitCronJobs(c, auditor, cfg.AuditSchedule, appLogger); err != nil {
		return fail("Failed to initialize cron jobs", err)
	}
	defer func() { <-c.Stop().Done() }()

	routes.SetupRoutes(router, routes.Dependencies{
		Auth:           authService,
		Users:          userService,
		Accommodations: accommodationService,
		Bookings:       bookingService,
		Melody:         m,
		Logger:         appLogger,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fail("Failed to start server", err)
	case <-quit:
	}
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := m.Close(); err != nil {
		appLogger.Warn("Closing websocket hub: %v", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown: %v", err)
	}
	return nil
}
