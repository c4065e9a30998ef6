package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/habidex/HabiDex_Go/internal/bootstrap"
	"github.com/habidex/HabiDex_Go/internal/config"
	"github.com/habidex/HabiDex_Go/internal/database"
)

// Seeds the card catalog into the database from the JSON configs. Safe to run
// repeatedly: every row is upserted.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := bootstrap.SyncCatalog(context.Background(), dbPool); err != nil {
		slog.Error("Catalog sync failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Seed complete")
}
