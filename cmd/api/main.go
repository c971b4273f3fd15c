package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/pageza/mealbook/backend/config"
	"github.com/pageza/mealbook/backend/internal/api"
	"github.com/pageza/mealbook/backend/internal/database"
	"github.com/pageza/mealbook/backend/internal/logger"
	"github.com/pageza/mealbook/backend/internal/middleware"
	"github.com/pageza/mealbook/backend/internal/server"
	"github.com/pageza/mealbook/backend/internal/service"
	"github.com/pageza/mealbook/backend/internal/store"
	"github.com/pageza/mealbook/backend/migrations"
)

func main() {
	logger.New("mealbook-api", os.Getenv("MEALBOOK_LOG_LEVEL"), os.Getenv("MEALBOOK_LOG_PRETTY") == "true")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.New("mealbook-api", cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.RunMigrations(db, migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	st := store.NewGormStore(db)

	// Continue without rate limiting if Redis is not available
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, upload rate limiting disabled")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 client")
	}

	srv := server.New(cfg, api.Dependencies{
		Recipes:       service.NewRecipeService(st),
		MealLogs:      service.NewMealLogService(st),
		Stats:         service.NewStatsService(st),
		Images:        service.NewImageService(s3Config),
		Store:         st,
		UploadLimiter: middleware.NewUploadRateLimiter(redisClient, cfg.UploadRateLimit, cfg.UploadRateWindow),
	})

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
		return
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Received signal")
	}

	log.Info().Msg("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
