// Package spawn picks the answer Pokémon for a new game from a biome's
// spawn table, honoring time-of-day restrictions with a biome-wide
// fallback so no playable biome ever comes up empty.
package spawn

import (
	"context"
	"fmt"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/logger"
	"github.com/habidex/HabiDex_Go/internal/metrics"
	"github.com/habidex/HabiDex_Go/internal/random"
)

// CatalogRepository defines the catalog reads the selector needs.
type CatalogRepository interface {
	GetBiomeByID(ctx context.Context, biomeID string) (*domain.Biome, error)
	GetPokemonByID(ctx context.Context, dexNumber int) (*domain.Pokemon, error)
	GetPokemonIDsWithCards(ctx context.Context) ([]int, error)
}

// SpawnRepository defines the spawn-table reads the selector needs.
type SpawnRepository interface {
	GetSpawnEntries(ctx context.Context, biomeID string) ([]domain.SpawnEntry, error)
}

// Service defines the spawn selection interface.
type Service interface {
	// SelectAnswer picks a Pokémon for one game in the given biome at the
	// given time of day.
	SelectAnswer(ctx context.Context, biomeID string, timeOfDay domain.TimeOfDay) (*domain.Pokemon, error)
}

type service struct {
	catalog CatalogRepository
	spawns  SpawnRepository
	rnd     random.Source
}

// NewService creates a new spawn selection service.
func NewService(catalog CatalogRepository, spawns SpawnRepository, rnd random.Source) Service {
	return &service{catalog: catalog, spawns: spawns, rnd: rnd}
}

func (s *service) SelectAnswer(ctx context.Context, biomeID string, timeOfDay domain.TimeOfDay) (*domain.Pokemon, error) {
	if _, err := s.catalog.GetBiomeByID(ctx, biomeID); err != nil {
		return nil, fmt.Errorf("select answer: %w", err)
	}

	entries, err := s.spawns.GetSpawnEntries(ctx, biomeID)
	if err != nil {
		return nil, fmt.Errorf("spawn table lookup: %w", err)
	}

	withCards, err := s.pokemonIDsWithCards(ctx)
	if err != nil {
		return nil, err
	}

	pool := filterEntries(entries, withCards, timeOfDay)
	if len(pool) == 0 {
		// Nothing spawns at this time of day (a nocturnal biome queried at
		// noon). Widen to the whole biome rather than failing the game.
		logger.FromContext(ctx).Info("Spawn pool empty for time of day, using biome-wide fallback",
			"biome_id", biomeID, "time_of_day", timeOfDay)
		metrics.SpawnFallbacks.WithLabelValues(biomeID).Inc()
		pool = filterEntries(entries, withCards, "")
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: biome %s", domain.ErrPoolExhausted, biomeID)
	}

	chosen := pickWeightedEntry(pool, s.rnd)
	answer, err := s.catalog.GetPokemonByID(ctx, chosen.PokemonID)
	if err != nil {
		return nil, fmt.Errorf("resolve spawn: %w", err)
	}
	return answer, nil
}

func (s *service) pokemonIDsWithCards(ctx context.Context) (map[int]bool, error) {
	ids, err := s.catalog.GetPokemonIDsWithCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("card coverage lookup: %w", err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// filterEntries keeps entries for Pokémon that have cards and that spawn at
// timeOfDay ("both" always qualifies). An empty timeOfDay disables the
// time filter for the biome-wide fallback.
func filterEntries(entries []domain.SpawnEntry, withCards map[int]bool, timeOfDay domain.TimeOfDay) []domain.SpawnEntry {
	var out []domain.SpawnEntry
	for _, e := range entries {
		if !withCards[e.PokemonID] {
			continue
		}
		if timeOfDay != "" && e.TimeOfDay != timeOfDay && e.TimeOfDay != domain.TimeOfDayBoth {
			continue
		}
		out = append(out, e)
	}
	return out
}

// pickWeightedEntry draws one entry by spawn weight, treating zero or
// negative weights as 1.
func pickWeightedEntry(pool []domain.SpawnEntry, rnd random.Source) domain.SpawnEntry {
	if len(pool) == 1 {
		return pool[0]
	}

	total := 0.0
	for _, e := range pool {
		total += entryWeight(e)
	}

	remainder := rnd.Float64() * total
	for _, e := range pool {
		remainder -= entryWeight(e)
		if remainder <= 0 {
			return e
		}
	}
	return pool[len(pool)-1]
}

func entryWeight(e domain.SpawnEntry) float64 {
	if e.Weight <= 0 {
		return 1
	}
	return float64(e.Weight)
}
