// @title        Sports Club Portal API
// @version      1.0
// @description  Accounts, sport registrations, sports and events for the university sports club.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sportsclub/portal/internal/api"
	"github.com/sportsclub/portal/internal/core/ports"
	"github.com/sportsclub/portal/internal/core/service"
	mongodb "github.com/sportsclub/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/sportsclub/portal/internal/infrastructure/db/redis"
	"github.com/sportsclub/portal/internal/infrastructure/http/handlers"
	"github.com/sportsclub/portal/internal/pkg/config"
	"github.com/sportsclub/portal/pkg/logger"
	"github.com/sportsclub/portal/pkg/password"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "sportsclub-portal",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	registrationRepo := mongodb.NewRegistrationRepository(db)
	historyRepo := mongodb.NewRegistrationHistoryRepository(db)
	sportRepo := mongodb.NewSportRepository(db)
	eventRepo := mongodb.NewEventRepository(db)

	if err := mongodb.EnsureIndexes(ctx, userRepo, registrationRepo, historyRepo, sportRepo, eventRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Services ---
	hasher := password.NewBcrypt(cfg.Auth.BcryptCost)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)

	authService := service.NewAuthService(userRepo, hasher, tokens, limiter, log)
	userService := service.NewUserService(userRepo, hasher, log)
	registrationService := service.NewRegistrationService(registrationRepo, historyRepo, userRepo, sportRepo, log)
	sportService := service.NewSportService(sportRepo, log)
	eventService := service.NewEventService(eventRepo, sportRepo, log)

	created, err := authService.EnsureAdmin(ctx, ports.BootstrapConfig{
		Enabled:  cfg.Bootstrap.Enabled,
		FullName: cfg.Bootstrap.FullName,
		Email:    cfg.Bootstrap.Email,
		Password: cfg.Bootstrap.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin")
	}
	if created {
		log.Info().Msg("bootstrap admin account created")
	}

	e := api.NewRouter(api.Dependencies{
		Auth:          authService,
		Users:         userService,
		Registrations: registrationService,
		Sports:        sportService,
		Events:        eventService,
		Tokens:        tokens,
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}
	log.Info().Msg("server exited gracefully")
}
