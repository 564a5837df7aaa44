package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lifetrack/internal/app"
	"lifetrack/internal/config"
	"lifetrack/internal/database"
	"lifetrack/internal/logger"
	"lifetrack/internal/middleware"
	"lifetrack/internal/validator"
)

// @title           LifeTrack API
// @version         1.0
// @description     LifeTrack tracks income, expenses, savings goals and habits, with streaks, a dashboard and category suggestions.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration first so the logger honours LOG_LEVEL.
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()

	if err := run(appConfig); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(appConfig *config.Config) error {
	log := logger.Get()

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	// Database
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Services and routes
	suggester := app.NewClassifier(appConfig, logger.Named("classifier"))
	svc := app.NewServices(dbManager.DB(), suggester)
	router := app.NewRouter(svc, app.RouterOptions{
		Limiter: middleware.NewIPRateLimiter(appConfig.RateLimitRPS, appConfig.RateLimitBurst),
		Swagger: !appConfig.IsProduction(),
	})

	server := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      app.CORS(appConfig.CORSAllowedOrigins, router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting LifeTrack backend server on port %s", appConfig.Port)
		if !appConfig.IsProduction() {
			log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		}
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-sigChan:
		log.Infow("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server shutdown complete")
	return nil
}
