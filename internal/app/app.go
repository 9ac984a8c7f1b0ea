package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fstr_backend/database"
	"fstr_backend/internal/config"
	"fstr_backend/internal/email"
	"fstr_backend/internal/handlers"
	"fstr_backend/internal/logger"
	"fstr_backend/internal/metrics"
	"fstr_backend/internal/middleware"
	"fstr_backend/internal/repositories"
	"fstr_backend/internal/routes"
	"fstr_backend/internal/services"
	"fstr_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run поднимает HTTP-сервер и ждет отмены ctx (SIGINT/SIGTERM), затем мягко останавливается
func Run(ctx context.Context, cfg *config.Config) error {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           SetupRouter(cfg, db, InitializeServices(cfg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server startup error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// SetupRouter собирает gin.Engine: middleware, хендлеры, служебные маршруты
func SetupRouter(cfg *config.Config, db *gorm.DB, container *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(container)

	ginRouter := initializeGinRouter(cfg, db, container.Metrics)
	routes.RegisterRoutes(ginRouter, appHandlers, container.Metrics, cfg.Server.BasePath)

	return ginRouter
}

// InitializeServices создает сервисы; используется и сервером, и CLI-командами модерации
func InitializeServices(cfg *config.Config) *services.ServiceContainer {
	emailService := newEmailProvider(cfg)
	notifier := email.NewModerationNotifier(emailService, cfg.Moderation.NotifyEmails)
	appMetrics := metrics.New()

	perevalRepo := repositories.NewPerevalRepository()
	submitterRepo := repositories.NewSubmitterRepository()

	return &services.ServiceContainer{
		PerevalService: services.NewPerevalService(perevalRepo, submitterRepo, notifier, appMetrics),
		EmailService:   emailService,
		Metrics:        appMetrics,
	}
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Info("Moderator notifications disabled, using noop email provider")
		return email.NewNoopProvider()
	}

	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		logger.Error("Failed to load email templates, notifications disabled", "error", err)
		return email.NewNoopProvider()
	}

	provider := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, templates)
	if err := provider.Validate(); err != nil {
		logger.Warn("Invalid SMTP configuration, notifications disabled", "error", err)
		return email.NewNoopProvider()
	}

	logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost, "recipients", len(cfg.Moderation.NotifyEmails))
	return provider
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		PerevalHandler: handlers.NewPerevalHandler(baseHandler, container.PerevalService, container.Metrics),
		HealthHandler:  handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(middleware.MethodNotAllowedHandler())
	router.NoRoute(middleware.NotFoundHandler())

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.DBMiddleware(db, cfg.Database.QueryTimeout))
	return router
}
