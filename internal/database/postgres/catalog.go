package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// CatalogRepository implements catalog reads and seed-time writes for
// PostgreSQL. It backs both repository.Catalog and repository.CatalogWriter.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const pokemonColumns = `dex_number, name, type1, type2, evolution_stage, fully_evolved, color, generation, image_url`

func scanPokemon(row pgx.Row) (*domain.Pokemon, error) {
	var p domain.Pokemon
	err := row.Scan(&p.ID, &p.Name, &p.Type1, &p.Type2, &p.EvolutionStage,
		&p.FullyEvolved, &p.Color, &p.Generation, &p.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPokemonNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	return &p, nil
}

func (r *CatalogRepository) GetPokemonByID(ctx context.Context, dexNumber int) (*domain.Pokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM pokemon WHERE dex_number = $1`
	return scanPokemon(r.db.QueryRow(ctx, query, dexNumber))
}

func (r *CatalogRepository) GetPokemonByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM pokemon WHERE lower(name) = lower($1)`
	return scanPokemon(r.db.QueryRow(ctx, query, name))
}

func (r *CatalogRepository) ListPokemon(ctx context.Context) ([]domain.Pokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM pokemon ORDER BY dex_number`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []domain.Pokemon
	for rows.Next() {
		p, err := scanPokemon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) GetPokemonIDsWithCards(ctx context.Context) ([]int, error) {
	query := `SELECT DISTINCT dex_number FROM cards ORDER BY dex_number`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const cardColumns = `card_id, external_id, dex_number, rarity, tier, is_floor, is_ceiling, weight, small_image_url, large_image_url`

func scanCard(row pgx.Row) (*domain.Card, error) {
	var c domain.Card
	err := row.Scan(&c.ID, &c.ExternalID, &c.PokemonID, &c.Rarity, &c.Tier,
		&c.IsFloor, &c.IsCeiling, &c.Weight, &c.SmallImageURL, &c.LargeImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	return &c, nil
}

func (r *CatalogRepository) queryCards(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) GetCardByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE card_id = $1`
	return scanCard(r.db.QueryRow(ctx, query, id))
}

func (r *CatalogRepository) GetCardsByPokemon(ctx context.Context, dexNumber int) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE dex_number = $1 ORDER BY tier, external_id`
	return r.queryCards(ctx, query, dexNumber)
}

func (r *CatalogRepository) GetCardsByPokemonAndTiers(ctx context.Context, dexNumber int, tiers []int) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE dex_number = $1 AND tier = ANY($2) ORDER BY tier, external_id`
	return r.queryCards(ctx, query, dexNumber, tiers)
}

func (r *CatalogRepository) GetCardsByTier(ctx context.Context, tier int) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE tier = $1 ORDER BY external_id`
	return r.queryCards(ctx, query, tier)
}

func (r *CatalogRepository) GetCeilingCardsByTier(ctx context.Context, tier int) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE tier = $1 AND is_ceiling ORDER BY external_id`
	return r.queryCards(ctx, query, tier)
}

func (r *CatalogRepository) ListCards(ctx context.Context) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY dex_number, tier, external_id`
	return r.queryCards(ctx, query)
}

func (r *CatalogRepository) GetBiomeByID(ctx context.Context, biomeID string) (*domain.Biome, error) {
	query := `SELECT biome_id, name, description FROM biomes WHERE biome_id = $1`
	var b domain.Biome
	err := r.db.QueryRow(ctx, query, biomeID).Scan(&b.ID, &b.Name, &b.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBiomeNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	return &b, nil
}

func (r *CatalogRepository) ListBiomes(ctx context.Context) ([]domain.Biome, error) {
	query := `SELECT biome_id, name, description FROM biomes ORDER BY biome_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []domain.Biome
	for rows.Next() {
		var b domain.Biome
		if err := rows.Scan(&b.ID, &b.Name, &b.Description); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ---- Seed-time writes ----

func (r *CatalogRepository) UpsertPokemon(ctx context.Context, p *domain.Pokemon) error {
	query := `
		INSERT INTO pokemon (dex_number, name, type1, type2, evolution_stage, fully_evolved, color, generation, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (dex_number) DO UPDATE SET
			name = EXCLUDED.name,
			type1 = EXCLUDED.type1,
			type2 = EXCLUDED.type2,
			evolution_stage = EXCLUDED.evolution_stage,
			fully_evolved = EXCLUDED.fully_evolved,
			color = EXCLUDED.color,
			generation = EXCLUDED.generation,
			image_url = EXCLUDED.image_url
	`
	_, err := r.db.Exec(ctx, query, p.ID, p.Name, p.Type1, p.Type2,
		p.EvolutionStage, p.FullyEvolved, p.Color, p.Generation, p.ImageURL)
	if err != nil {
		return fmt.Errorf("%w: upsert pokemon %d: %w", domain.ErrDatabaseError, p.ID, err)
	}
	return nil
}

func (r *CatalogRepository) UpsertCard(ctx context.Context, c *domain.Card) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	query := `
		INSERT INTO cards (card_id, external_id, dex_number, rarity, tier, is_floor, is_ceiling, weight, small_image_url, large_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (external_id, tier) DO UPDATE SET
			dex_number = EXCLUDED.dex_number,
			rarity = EXCLUDED.rarity,
			is_floor = EXCLUDED.is_floor,
			is_ceiling = EXCLUDED.is_ceiling,
			weight = EXCLUDED.weight,
			small_image_url = EXCLUDED.small_image_url,
			large_image_url = EXCLUDED.large_image_url
	`
	_, err := r.db.Exec(ctx, query, c.ID, c.ExternalID, c.PokemonID, c.Rarity,
		c.Tier, c.IsFloor, c.IsCeiling, c.Weight, c.SmallImageURL, c.LargeImageURL)
	if err != nil {
		return fmt.Errorf("%w: upsert card %s tier %d: %w", domain.ErrDatabaseError, c.ExternalID, c.Tier, err)
	}
	return nil
}

func (r *CatalogRepository) UpsertBiome(ctx context.Context, b *domain.Biome) error {
	query := `
		INSERT INTO biomes (biome_id, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (biome_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description
	`
	if _, err := r.db.Exec(ctx, query, b.ID, b.Name, b.Description); err != nil {
		return fmt.Errorf("%w: upsert biome %s: %w", domain.ErrDatabaseError, b.ID, err)
	}
	return nil
}

func (r *CatalogRepository) UpsertSpawnEntry(ctx context.Context, e *domain.SpawnEntry) error {
	query := `
		INSERT INTO spawn_entries (biome_id, dex_number, time_of_day, weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (biome_id, dex_number, time_of_day) DO UPDATE SET
			weight = EXCLUDED.weight
	`
	if _, err := r.db.Exec(ctx, query, e.BiomeID, e.PokemonID, e.TimeOfDay, e.Weight); err != nil {
		return fmt.Errorf("%w: upsert spawn %s/%d: %w", domain.ErrDatabaseError, e.BiomeID, e.PokemonID, err)
	}
	return nil
}
