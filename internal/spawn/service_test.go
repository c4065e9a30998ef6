package spawn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/random"
)

type fakeCatalog struct {
	biomes    map[string]*domain.Biome
	pokemon   map[int]*domain.Pokemon
	withCards []int
}

func (f *fakeCatalog) GetBiomeByID(ctx context.Context, biomeID string) (*domain.Biome, error) {
	if b, ok := f.biomes[biomeID]; ok {
		return b, nil
	}
	return nil, domain.ErrBiomeNotFound
}

func (f *fakeCatalog) GetPokemonByID(ctx context.Context, dexNumber int) (*domain.Pokemon, error) {
	if p, ok := f.pokemon[dexNumber]; ok {
		return p, nil
	}
	return nil, domain.ErrPokemonNotFound
}

func (f *fakeCatalog) GetPokemonIDsWithCards(ctx context.Context) ([]int, error) {
	return f.withCards, nil
}

type fakeSpawns struct {
	entries map[string][]domain.SpawnEntry
}

func (f *fakeSpawns) GetSpawnEntries(ctx context.Context, biomeID string) ([]domain.SpawnEntry, error) {
	return f.entries[biomeID], nil
}

func entry(biomeID string, pokemonID int, tod domain.TimeOfDay, weight int) domain.SpawnEntry {
	return domain.SpawnEntry{BiomeID: biomeID, PokemonID: pokemonID, TimeOfDay: tod, Weight: weight}
}

func newFixture() (*fakeCatalog, *fakeSpawns) {
	catalog := &fakeCatalog{
		biomes: map[string]*domain.Biome{
			"forest":   {ID: "forest", Name: "Forest"},
			"cemetery": {ID: "cemetery", Name: "Cemetery"},
		},
		pokemon: map[int]*domain.Pokemon{
			25: {ID: 25, Name: "Pikachu"},
			92: {ID: 92, Name: "Gastly"},
			43: {ID: 43, Name: "Oddish"},
		},
		withCards: []int{25, 92, 43},
	}
	spawns := &fakeSpawns{entries: map[string][]domain.SpawnEntry{
		"forest": {
			entry("forest", 25, domain.TimeOfDayBoth, 50),
			entry("forest", 43, domain.TimeOfDayDay, 30),
			entry("forest", 92, domain.TimeOfDayNight, 20),
		},
		"cemetery": {
			entry("cemetery", 92, domain.TimeOfDayNight, 100),
		},
	}}
	return catalog, spawns
}

func TestSelectAnswerRespectsTimeOfDay(t *testing.T) {
	catalog, spawns := newFixture()
	svc := NewService(catalog, spawns, random.NewSeeded(1))

	// Night in the forest excludes the day-only Oddish.
	seen := map[int]bool{}
	for i := 0; i < 50; i++ {
		answer, err := svc.SelectAnswer(context.Background(), "forest", domain.TimeOfDayNight)
		require.NoError(t, err)
		seen[answer.ID] = true
		assert.NotEqual(t, 43, answer.ID)
	}
	assert.True(t, seen[25] || seen[92])
}

func TestSelectAnswerBothEntriesAlwaysEligible(t *testing.T) {
	catalog, spawns := newFixture()
	svc := NewService(catalog, spawns, random.NewSeeded(2))

	for _, tod := range []domain.TimeOfDay{domain.TimeOfDayDay, domain.TimeOfDayNight} {
		seen := map[int]bool{}
		for i := 0; i < 100; i++ {
			answer, err := svc.SelectAnswer(context.Background(), "forest", tod)
			require.NoError(t, err)
			seen[answer.ID] = true
		}
		assert.True(t, seen[25], "both-times Pikachu should appear at %s", tod)
	}
}

// A night-only biome queried during the day still produces an answer via the
// biome-wide fallback instead of an empty-pool error.
func TestSelectAnswerCemeteryDaytimeFallback(t *testing.T) {
	catalog, spawns := newFixture()
	svc := NewService(catalog, spawns, random.NewSeeded(3))

	answer, err := svc.SelectAnswer(context.Background(), "cemetery", domain.TimeOfDayDay)

	require.NoError(t, err)
	assert.Equal(t, 92, answer.ID)
}

func TestSelectAnswerExcludesPokemonWithoutCards(t *testing.T) {
	catalog, spawns := newFixture()
	catalog.withCards = []int{25, 43} // Gastly has no cards
	svc := NewService(catalog, spawns, random.NewSeeded(4))

	for i := 0; i < 50; i++ {
		answer, err := svc.SelectAnswer(context.Background(), "forest", domain.TimeOfDayNight)
		require.NoError(t, err)
		assert.NotEqual(t, 92, answer.ID)
	}
}

func TestSelectAnswerFailsWhenBiomeHasNoPlayableSpawns(t *testing.T) {
	catalog, spawns := newFixture()
	catalog.withCards = []int{25, 43} // cemetery's only spawn has no cards
	svc := NewService(catalog, spawns, random.NewSeeded(5))

	_, err := svc.SelectAnswer(context.Background(), "cemetery", domain.TimeOfDayNight)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPoolExhausted)
}

func TestSelectAnswerUnknownBiome(t *testing.T) {
	catalog, spawns := newFixture()
	svc := NewService(catalog, spawns, random.NewSeeded(6))

	_, err := svc.SelectAnswer(context.Background(), "volcano", domain.TimeOfDayDay)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBiomeNotFound)
}

func TestSelectAnswerWeightsInfluenceDraw(t *testing.T) {
	catalog, spawns := newFixture()
	spawns.entries["forest"] = []domain.SpawnEntry{
		entry("forest", 25, domain.TimeOfDayBoth, 90),
		entry("forest", 43, domain.TimeOfDayBoth, 10),
	}
	svc := NewService(catalog, spawns, random.NewSeeded(7))

	counts := map[int]int{}
	const draws = 2000
	for i := 0; i < draws; i++ {
		answer, err := svc.SelectAnswer(context.Background(), "forest", domain.TimeOfDayDay)
		require.NoError(t, err)
		counts[answer.ID]++
	}

	assert.InDelta(t, 0.9, float64(counts[25])/draws, 0.05)
}
