package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/config"
	"github.com/pageza/allerfree/backend/internal/database"
	"github.com/pageza/allerfree/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the SQL migration files")
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

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if *rollback {
		name, err := database.RollbackLast(db, *dir, logger)
		if err != nil {
			logger.Fatal("rollback failed", zap.Error(err))
		}
		logger.Info("successfully rolled back migration", zap.String("name", name))
		return
	}

	if err := database.RunMigrations(db, *dir, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("all migrations applied successfully")
}
