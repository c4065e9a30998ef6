package repository

import (
	"context"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// Spawn defines the interface for spawn-table access. Entries come back in
// stable (pokemon, time-of-day) order so weighted draws are reproducible
// under a seeded source.
type Spawn interface {
	GetSpawnEntries(ctx context.Context, biomeID string) ([]domain.SpawnEntry, error)
}
