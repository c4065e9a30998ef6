package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

type spawnRepository struct {
	db *pgxpool.Pool
}

// NewSpawnRepository creates a new PostgreSQL spawn-table repository
func NewSpawnRepository(db *pgxpool.Pool) repository.Spawn {
	return &spawnRepository{db: db}
}

func (r *spawnRepository) GetSpawnEntries(ctx context.Context, biomeID string) ([]domain.SpawnEntry, error) {
	query := `
		SELECT biome_id, dex_number, time_of_day, weight
		FROM spawn_entries
		WHERE biome_id = $1
		ORDER BY dex_number, time_of_day
	`
	rows, err := r.db.Query(ctx, query, biomeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []domain.SpawnEntry
	for rows.Next() {
		var e domain.SpawnEntry
		if err := rows.Scan(&e.BiomeID, &e.PokemonID, &e.TimeOfDay, &e.Weight); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
