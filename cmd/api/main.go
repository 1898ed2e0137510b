package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/glycemic-assist/backend/config"
	"github.com/pageza/glycemic-assist/backend/internal/api"
	"github.com/pageza/glycemic-assist/backend/internal/database"
	"github.com/pageza/glycemic-assist/backend/internal/logger"
	"github.com/pageza/glycemic-assist/backend/internal/middleware"
	"github.com/pageza/glycemic-assist/backend/internal/router"
	"github.com/pageza/glycemic-assist/backend/internal/server"
	"github.com/pageza/glycemic-assist/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Environment, cfg.LogLevel)

	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Environment != config.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	gormDB, err := db.Gorm()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gorm")
	}
	if err := database.RunMigrations(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// The generative service is optional; without it every estimate and tip falls back
	var llm service.TextCompleter
	llmService, err := service.NewLLMService(service.LLMConfig{
		APIKey:  cfg.LLMAPIKey,
		APIURL:  cfg.LLMAPIURL,
		Model:   cfg.LLMModel,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		log.Warn().Err(err).Msg("generative service disabled, using fallback estimates and tips")
	} else {
		llm = llmService
	}

	opts := router.Options{
		MealHandler:    api.NewMealHandler(service.NewMealService(service.NewFoodDatasetService(gormDB), llm)),
		HealthHandler:  api.NewHealthHandler(db),
		AllowedOrigins: cfg.AllowedOrigins,
	}

	if cfg.RateLimit > 0 && (cfg.RedisHost != "" || cfg.RedisURL != "") {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			// Continue without rate limiting if Redis is not available
			log.Warn().Err(err).Msg("failed to connect to Redis, rate limiting disabled")
		} else {
			defer redisClient.Close()
			opts.Limiter = middleware.NewMealRateLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow)
		}
	}

	if cfg.JWTSecret != "" {
		opts.Tokens = service.NewTokenService(cfg.JWTSecret, 24*time.Hour)
		log.Info().Msg("service token authentication enabled")
	}

	// Create and start server
	srv := server.New(cfg, router.SetupRouter(opts))

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("received signal")
	}

	// Gracefully shutdown the server
	log.Info().Msg("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
