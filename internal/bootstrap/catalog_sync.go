package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habidex/HabiDex_Go/internal/catalog"
	"github.com/habidex/HabiDex_Go/internal/config"
	"github.com/habidex/HabiDex_Go/internal/database/postgres"
	"github.com/habidex/HabiDex_Go/internal/validation"
)

// SyncCatalog loads, validates, and syncs the card catalog configuration to
// the database. It handles the complete lifecycle: schema check → load JSON
// → validate cross-references → sync to DB → log results.
func SyncCatalog(ctx context.Context, dbPool *pgxpool.Pool) error {
	slog.Info(LogMsgSyncingCatalog)

	schemaValidator := validation.NewSchemaValidator()
	schemaPairs := [][2]string{
		{config.ConfigPathPokedex, config.SchemaPathPokedex},
		{config.ConfigPathCards, config.SchemaPathCards},
		{config.ConfigPathBiomes, config.SchemaPathBiomes},
	}
	for _, pair := range schemaPairs {
		if err := schemaValidator.ValidateFile(pair[0], pair[1]); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
		}
	}

	loader := catalog.NewLoader(
		config.ConfigPathPokedex,
		config.ConfigPathCards,
		config.ConfigPathBiomes,
	)

	if err := loader.Load(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	if err := loader.Validate(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	if err := loader.SyncToDatabase(ctx, postgres.NewCatalogRepository(dbPool)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	return nil
}
