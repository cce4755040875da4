package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/config"
	"github.com/pageza/allerfree/backend/internal/database"
	"github.com/pageza/allerfree/backend/internal/logging"
	"github.com/pageza/allerfree/backend/internal/seed"
	"github.com/pageza/allerfree/backend/internal/service"
)

func main() {
	file := flag.String("file", "seed/recipes.yaml", "YAML fixture of users and recipes")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	fixture, err := seed.Load(*file)
	if err != nil {
		logger.Fatal("failed to load fixture", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	res, err := seed.Apply(context.Background(), db, service.NewRecipeService(db, logger), fixture, logger)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	logger.Info("seeding complete",
		zap.Int("users", res.Users),
		zap.Int("recipes", res.Recipes),
		zap.Int("skipped", res.Skipped))
}
