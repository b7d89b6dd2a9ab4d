package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/EmirBoz/resume-app/internal/api"
	"github.com/EmirBoz/resume-app/internal/auth"
	"github.com/EmirBoz/resume-app/internal/config"
	"github.com/EmirBoz/resume-app/internal/database"
	"github.com/EmirBoz/resume-app/internal/graph"
	"github.com/EmirBoz/resume-app/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("api bootstrapping",
		slog.String("db_host", cfg.Database.Host),
		slog.Int("db_port", cfg.Database.Port),
		slog.String("db_name", cfg.Database.Name),
		slog.String("env", cfg.App.Env),
	)

	dbManager := database.NewManager(cfg.Database)
	if err := dbManager.Connect(); err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer dbManager.Close()

	if err := dbManager.AutoMigrate(); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	logger.Info("database ready")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer redisClient.Close()

	authService, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	authenticator := auth.NewAuthenticator(
		dbManager,
		authService,
		redisClient,
		logger,
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPassword,
		cfg.Auth.LoginRateLimitPerHour,
		cfg.Auth.LoginLockThreshold,
		cfg.Auth.LoginLockTTL(),
	)

	notifier := store.NewRedisNotifier(redisClient, logger)
	documentStore := store.New(dbManager, logger, notifier)

	resolver := graph.NewResolver(documentStore, authenticator, logger)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("build graphql schema: %v", err)
	}

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, &schema, authenticator, authService, redisClient, logger, cfg.API.WsOrigins())

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
