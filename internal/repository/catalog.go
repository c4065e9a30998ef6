package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// Catalog defines the interface for read access to the immutable reference
// data: Pokémon, cards and biomes. The catalog is read-only during gameplay.
type Catalog interface {
	GetPokemonByID(ctx context.Context, dexNumber int) (*domain.Pokemon, error)
	GetPokemonByName(ctx context.Context, name string) (*domain.Pokemon, error)
	ListPokemon(ctx context.Context) ([]domain.Pokemon, error)

	// GetPokemonIDsWithCards returns the dex numbers of every Pokémon that
	// has at least one card. Spawn selection restricts pools to these.
	GetPokemonIDsWithCards(ctx context.Context) ([]int, error)

	GetCardByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	GetCardsByPokemon(ctx context.Context, dexNumber int) ([]domain.Card, error)
	GetCardsByPokemonAndTiers(ctx context.Context, dexNumber int, tiers []int) ([]domain.Card, error)
	GetCardsByTier(ctx context.Context, tier int) ([]domain.Card, error)
	GetCeilingCardsByTier(ctx context.Context, tier int) ([]domain.Card, error)
	ListCards(ctx context.Context) ([]domain.Card, error)

	GetBiomeByID(ctx context.Context, biomeID string) (*domain.Biome, error)
	ListBiomes(ctx context.Context) ([]domain.Biome, error)
}

// CatalogWriter defines the interface for seed-time catalog sync. Gameplay
// code never writes through it.
type CatalogWriter interface {
	UpsertPokemon(ctx context.Context, p *domain.Pokemon) error
	UpsertCard(ctx context.Context, c *domain.Card) error
	UpsertBiome(ctx context.Context, b *domain.Biome) error
	UpsertSpawnEntry(ctx context.Context, e *domain.SpawnEntry) error
}
