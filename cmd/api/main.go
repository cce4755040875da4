package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/config"
	"github.com/pageza/allerfree/backend/internal/api"
	"github.com/pageza/allerfree/backend/internal/database"
	"github.com/pageza/allerfree/backend/internal/logging"
	"github.com/pageza/allerfree/backend/internal/middleware"
	"github.com/pageza/allerfree/backend/internal/router"
	"github.com/pageza/allerfree/backend/internal/server"
	"github.com/pageza/allerfree/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	s3cfg, err := config.NewS3Config(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	authService, err := service.NewAuthService(cfg.Auth, logger)
	if err != nil {
		return err
	}

	recipeService := service.NewRecipeService(db, logger)
	storageService := service.NewStorageService(s3cfg.Client, cfg.Storage, logger)

	handler := router.SetupRouter(router.Deps{
		DB:       db,
		Logger:   logger,
		Recipes:  recipeService,
		Profiles: service.NewProfileService(db, logger),
		Auth:     authService,
		Storage:  storageService,
		Drafts:   service.NewDraftService(redisClient, recipeService, storageService, logger),
		Home:     service.NewHomeService(recipeService, logger),
		Limits: api.RateLimits{
			Creation:     middleware.NewRecipeCreationRateLimiter(redisClient, logger),
			Modification: middleware.NewRecipeModificationRateLimiter(redisClient, logger),
			Submission:   middleware.NewDraftSubmissionRateLimiter(redisClient, logger),
		},
		CORSOrigins:  cfg.CORSAllowedOrigins,
		SecureCookie: cfg.Env == config.Production,
	})

	return server.New(cfg.Addr(), handler, logger).Run(ctx)
}
