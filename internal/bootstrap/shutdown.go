package bootstrap

import (
	"context"
	"log/slog"

	"github.com/habidex/HabiDex_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
}

// GracefulShutdown performs graceful shutdown of all application components.
// The HTTP server stops accepting new requests and in-flight requests are
// given until the context deadline to complete. Errors during shutdown are
// logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
