// Package catalog loads the Pokémon, card and biome definitions from the
// configs directory, validates them as one set, and syncs them into the
// database. The seeder is the only writer; gameplay treats the catalog as
// immutable.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/logger"
	"github.com/habidex/HabiDex_Go/internal/rarity"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

// PokemonDef is one pokedex.json entry.
type PokemonDef struct {
	DexNumber      int    `json:"dex_number"`
	Name           string `json:"name"`
	Type1          string `json:"type1"`
	Type2          string `json:"type2,omitempty"`
	EvolutionStage int    `json:"evolution_stage"`
	FullyEvolved   bool   `json:"fully_evolved"`
	Color          string `json:"color"`
	Generation     int    `json:"generation"`
	ImageURL       string `json:"image_url,omitempty"`
}

// CardDef is one cards.json entry. A def without pinned tiers fans out into
// one row per tier its rarity is eligible for.
type CardDef struct {
	ExternalID    string `json:"external_id"`
	DexNumber     int    `json:"dex_number"`
	Rarity        string `json:"rarity"`
	Tiers         []int  `json:"tiers,omitempty"`
	SmallImageURL string `json:"small_image_url,omitempty"`
	LargeImageURL string `json:"large_image_url,omitempty"`
}

// SpawnDef is one inline spawn entry of a biome.
type SpawnDef struct {
	DexNumber int    `json:"dex_number"`
	TimeOfDay string `json:"time_of_day"`
	Weight    int    `json:"weight"`
}

// BiomeDef is one biomes.json entry with its spawn table inline.
type BiomeDef struct {
	ID          string     `json:"biome_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Spawns      []SpawnDef `json:"spawns"`
}

// Loader reads and validates the three catalog files.
type Loader struct {
	pokedexPath string
	cardsPath   string
	biomesPath  string

	pokemon []PokemonDef
	cards   []CardDef
	biomes  []BiomeDef
}

// NewLoader creates a loader over the given file paths.
func NewLoader(pokedexPath, cardsPath, biomesPath string) *Loader {
	return &Loader{
		pokedexPath: pokedexPath,
		cardsPath:   cardsPath,
		biomesPath:  biomesPath,
	}
}

// Load reads all three files into memory. It does not validate.
func (l *Loader) Load() error {
	if err := readJSONFile(l.pokedexPath, &l.pokemon); err != nil {
		return fmt.Errorf("load pokedex: %w", err)
	}
	if err := readJSONFile(l.cardsPath, &l.cards); err != nil {
		return fmt.Errorf("load cards: %w", err)
	}
	if err := readJSONFile(l.biomesPath, &l.biomes); err != nil {
		return fmt.Errorf("load biomes: %w", err)
	}
	return nil
}

// Validate cross-checks the loaded set: unique keys, known rarities, tiers
// within each rarity's eligible range, spawn entries referencing known
// Pokémon, and at least one card for every spawnable Pokémon.
func (l *Loader) Validate() error {
	dexSeen := make(map[int]bool, len(l.pokemon))
	nameSeen := make(map[string]bool, len(l.pokemon))
	for _, p := range l.pokemon {
		if p.DexNumber <= 0 {
			return fmt.Errorf("pokemon %q: dex number must be positive", p.Name)
		}
		if p.Name == "" || p.Type1 == "" || p.Color == "" {
			return fmt.Errorf("pokemon %d: name, type1 and color are required", p.DexNumber)
		}
		if dexSeen[p.DexNumber] {
			return fmt.Errorf("duplicate dex number %d", p.DexNumber)
		}
		if nameSeen[p.Name] {
			return fmt.Errorf("duplicate pokemon name %q", p.Name)
		}
		dexSeen[p.DexNumber] = true
		nameSeen[p.Name] = true
	}

	cardKeySeen := make(map[string]bool, len(l.cards))
	cardsByDex := make(map[int]int, len(l.pokemon))
	for _, c := range l.cards {
		if c.ExternalID == "" {
			return fmt.Errorf("card for dex %d: external_id is required", c.DexNumber)
		}
		if !dexSeen[c.DexNumber] {
			return fmt.Errorf("card %s: unknown dex number %d", c.ExternalID, c.DexNumber)
		}
		eligible, err := rarity.TiersForRarity(domain.Rarity(c.Rarity))
		if err != nil {
			return fmt.Errorf("card %s: %w", c.ExternalID, err)
		}
		tiers := c.Tiers
		if len(tiers) == 0 {
			tiers = eligible
		}
		for _, tier := range tiers {
			if !containsInt(eligible, tier) {
				return fmt.Errorf("card %s: tier %d is not eligible for rarity %s", c.ExternalID, tier, c.Rarity)
			}
			key := fmt.Sprintf("%s/%d", c.ExternalID, tier)
			if cardKeySeen[key] {
				return fmt.Errorf("duplicate card row %s", key)
			}
			cardKeySeen[key] = true
		}
		cardsByDex[c.DexNumber]++
	}

	biomeSeen := make(map[string]bool, len(l.biomes))
	for _, b := range l.biomes {
		if b.ID == "" || b.Name == "" {
			return fmt.Errorf("biome %q: id and name are required", b.ID)
		}
		if biomeSeen[b.ID] {
			return fmt.Errorf("duplicate biome %q", b.ID)
		}
		biomeSeen[b.ID] = true

		spawnSeen := make(map[string]bool, len(b.Spawns))
		for _, s := range b.Spawns {
			if !dexSeen[s.DexNumber] {
				return fmt.Errorf("biome %s: spawn references unknown dex number %d", b.ID, s.DexNumber)
			}
			tod := domain.TimeOfDay(s.TimeOfDay)
			if tod != domain.TimeOfDayDay && tod != domain.TimeOfDayNight && tod != domain.TimeOfDayBoth {
				return fmt.Errorf("biome %s: spawn %d has invalid time_of_day %q", b.ID, s.DexNumber, s.TimeOfDay)
			}
			if s.Weight <= 0 {
				return fmt.Errorf("biome %s: spawn %d must have positive weight", b.ID, s.DexNumber)
			}
			key := fmt.Sprintf("%d/%s", s.DexNumber, s.TimeOfDay)
			if spawnSeen[key] {
				return fmt.Errorf("biome %s: duplicate spawn entry %s", b.ID, key)
			}
			spawnSeen[key] = true

			// A spawnable Pokémon with no cards would poison the guaranteed
			// card chain at play time. Fail the sync instead.
			if cardsByDex[s.DexNumber] == 0 {
				return fmt.Errorf("biome %s: spawnable pokemon %d has no cards", b.ID, s.DexNumber)
			}
		}
	}

	return nil
}

// SyncToDatabase upserts the validated set. Pokémon first, then biomes and
// spawns, then the card fan-out.
func (l *Loader) SyncToDatabase(ctx context.Context, w repository.CatalogWriter) error {
	log := logger.FromContext(ctx)

	for i := range l.pokemon {
		p := l.pokemon[i]
		if err := w.UpsertPokemon(ctx, &domain.Pokemon{
			ID:             p.DexNumber,
			Name:           p.Name,
			Type1:          p.Type1,
			Type2:          p.Type2,
			EvolutionStage: p.EvolutionStage,
			FullyEvolved:   p.FullyEvolved,
			Color:          p.Color,
			Generation:     p.Generation,
			ImageURL:       p.ImageURL,
		}); err != nil {
			return err
		}
	}

	for _, b := range l.biomes {
		if err := w.UpsertBiome(ctx, &domain.Biome{ID: b.ID, Name: b.Name, Description: b.Description}); err != nil {
			return err
		}
		for _, s := range b.Spawns {
			if err := w.UpsertSpawnEntry(ctx, &domain.SpawnEntry{
				BiomeID:   b.ID,
				PokemonID: s.DexNumber,
				TimeOfDay: domain.TimeOfDay(s.TimeOfDay),
				Weight:    s.Weight,
			}); err != nil {
				return err
			}
		}
	}

	cardRows := 0
	for _, def := range l.cards {
		rows, err := expandCard(def)
		if err != nil {
			return err
		}
		for i := range rows {
			if err := w.UpsertCard(ctx, &rows[i]); err != nil {
				return err
			}
		}
		cardRows += len(rows)
	}

	log.Info("Catalog synced",
		"pokemon", len(l.pokemon), "biomes", len(l.biomes),
		"card_defs", len(l.cards), "card_rows", cardRows)
	return nil
}

// expandCard fans one card def out into one row per tier, deriving the
// floor/ceiling flags and the drop weight from the rarity table.
func expandCard(def CardDef) ([]domain.Card, error) {
	r := domain.Rarity(def.Rarity)

	weight, err := rarity.Weight(r)
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", def.ExternalID, err)
	}

	tiers := def.Tiers
	if len(tiers) == 0 {
		tiers, err = rarity.TiersForRarity(r)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", def.ExternalID, err)
		}
	}

	rows := make([]domain.Card, 0, len(tiers))
	for _, tier := range tiers {
		rows = append(rows, domain.Card{
			ExternalID:    def.ExternalID,
			PokemonID:     def.DexNumber,
			Rarity:        r,
			Tier:          tier,
			IsFloor:       rarity.IsFloorCard(r, tier),
			IsCeiling:     rarity.IsCeilingCard(r, tier),
			Weight:        weight,
			SmallImageURL: def.SmallImageURL,
			LargeImageURL: def.LargeImageURL,
		})
	}
	return rows, nil
}

func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func containsInt(list []int, v int) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
