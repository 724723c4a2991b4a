package main

import (
	"context"
	"os"

	"github.com/23121005-sketch/D-arlet/config"
	"github.com/23121005-sketch/D-arlet/internal/migrate"
	"github.com/23121005-sketch/D-arlet/pkg/database"
	"github.com/23121005-sketch/D-arlet/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()
	cfg := config.Load(log)

	db := database.ConnectDBForMigration(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	if err := migrate.MigrateDB(context.Background(), db, log, migrate.DefaultMigrateOptions()); err != nil {
		log.Fatal("migración fallida", zap.Error(err))
	}
	log.Info("migración completada")
}
