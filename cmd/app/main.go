package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/habidex/HabiDex_Go/internal/bootstrap"
	"github.com/habidex/HabiDex_Go/internal/cards"
	"github.com/habidex/HabiDex_Go/internal/config"
	"github.com/habidex/HabiDex_Go/internal/database"
	"github.com/habidex/HabiDex_Go/internal/game"
	"github.com/habidex/HabiDex_Go/internal/pity"
	"github.com/habidex/HabiDex_Go/internal/random"
	"github.com/habidex/HabiDex_Go/internal/server"
	"github.com/habidex/HabiDex_Go/internal/spawn"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		slog.Warn(warning)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.SyncCatalog(ctx, dbPool); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	rnd := random.Default()

	pityService := pity.NewService(repos.Pity, rnd)
	cardsService := cards.NewService(repos.Catalog, rnd)
	spawnService := spawn.NewService(repos.Catalog, repos.Spawn, rnd)
	gameService := game.NewService(
		repos.Session,
		repos.Catalog,
		repos.Pity,
		repos.Collection,
		pityService,
		cardsService,
		spawnService,
	)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, gameService, pityService, repos.Catalog)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{Server: srv})

	return nil
}
