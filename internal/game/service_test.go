package game

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habidex/HabiDex_Go/internal/cards"
	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/pity"
	"github.com/habidex/HabiDex_Go/internal/random"
	"github.com/habidex/HabiDex_Go/internal/repository"
	"github.com/habidex/HabiDex_Go/internal/spawn"
)

// ----------------------------------------------------------------------------
// In-memory fakes
// ----------------------------------------------------------------------------

type memCatalog struct {
	pokemon map[int]domain.Pokemon
	cards   []domain.Card
	biomes  map[string]domain.Biome
}

func (m *memCatalog) GetPokemonByID(ctx context.Context, dexNumber int) (*domain.Pokemon, error) {
	if p, ok := m.pokemon[dexNumber]; ok {
		return &p, nil
	}
	return nil, domain.ErrPokemonNotFound
}

func (m *memCatalog) GetPokemonByName(ctx context.Context, name string) (*domain.Pokemon, error) {
	for _, p := range m.pokemon {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, domain.ErrPokemonNotFound
}

func (m *memCatalog) ListPokemon(ctx context.Context) ([]domain.Pokemon, error) {
	var out []domain.Pokemon
	for _, p := range m.pokemon {
		out = append(out, p)
	}
	return out, nil
}

func (m *memCatalog) GetPokemonIDsWithCards(ctx context.Context) ([]int, error) {
	seen := map[int]bool{}
	var ids []int
	for _, c := range m.cards {
		if !seen[c.PokemonID] {
			seen[c.PokemonID] = true
			ids = append(ids, c.PokemonID)
		}
	}
	return ids, nil
}

func (m *memCatalog) GetCardByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	for i := range m.cards {
		if m.cards[i].ID == id {
			card := m.cards[i]
			return &card, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (m *memCatalog) GetCardsByPokemon(ctx context.Context, dexNumber int) ([]domain.Card, error) {
	var out []domain.Card
	for _, c := range m.cards {
		if c.PokemonID == dexNumber {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCatalog) GetCardsByPokemonAndTiers(ctx context.Context, dexNumber int, tiers []int) ([]domain.Card, error) {
	tierSet := map[int]bool{}
	for _, t := range tiers {
		tierSet[t] = true
	}
	var out []domain.Card
	for _, c := range m.cards {
		if c.PokemonID == dexNumber && tierSet[c.Tier] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCatalog) GetCardsByTier(ctx context.Context, tier int) ([]domain.Card, error) {
	var out []domain.Card
	for _, c := range m.cards {
		if c.Tier == tier {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCatalog) GetCeilingCardsByTier(ctx context.Context, tier int) ([]domain.Card, error) {
	var out []domain.Card
	for _, c := range m.cards {
		if c.Tier == tier && c.IsCeiling {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCatalog) ListCards(ctx context.Context) ([]domain.Card, error) {
	return m.cards, nil
}

func (m *memCatalog) GetBiomeByID(ctx context.Context, biomeID string) (*domain.Biome, error) {
	if b, ok := m.biomes[biomeID]; ok {
		return &b, nil
	}
	return nil, domain.ErrBiomeNotFound
}

func (m *memCatalog) ListBiomes(ctx context.Context) ([]domain.Biome, error) {
	var out []domain.Biome
	for _, b := range m.biomes {
		out = append(out, b)
	}
	return out, nil
}

type memSessions struct {
	byID map[uuid.UUID]domain.GameSession
}

func (m *memSessions) CreateSession(ctx context.Context, session *domain.GameSession) error {
	m.byID[session.ID] = *session
	return nil
}

func (m *memSessions) GetSessionByID(ctx context.Context, id uuid.UUID) (*domain.GameSession, error) {
	if s, ok := m.byID[id]; ok {
		copied := s
		return &copied, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *memSessions) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	if _, ok := m.byID[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	m.byID[session.ID] = *session
	return nil
}

func (m *memSessions) ListSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.GameSession, error) {
	var out []domain.GameSession
	for _, s := range m.byID {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memStore struct {
	pityStates map[string]domain.PityState
	collection []domain.CollectionEntry
	sessions   *memSessions
}

type memPityRepo struct {
	store *memStore
}

func (m *memPityRepo) GetPityState(ctx context.Context, userID string) (*domain.PityState, error) {
	if s, ok := m.store.pityStates[userID]; ok {
		copied := s
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memPityRepo) UpsertPityState(ctx context.Context, state *domain.PityState) error {
	m.store.pityStates[state.UserID] = *state
	return nil
}

func (m *memPityRepo) BeginTx(ctx context.Context) (repository.Tx, error) {
	return &memTx{store: m.store}, nil
}

// memTx buffers writes and applies them on Commit.
type memTx struct {
	store *memStore
	ops   []func()
	done  bool
}

func (t *memTx) UpsertPityState(ctx context.Context, state *domain.PityState) error {
	s := *state
	t.ops = append(t.ops, func() { t.store.pityStates[s.UserID] = s })
	return nil
}

func (t *memTx) AddCollectionEntry(ctx context.Context, entry *domain.CollectionEntry) error {
	e := *entry
	t.ops = append(t.ops, func() { t.store.collection = append(t.store.collection, e) })
	return nil
}

func (t *memTx) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	s := *session
	t.ops = append(t.ops, func() { t.store.sessions.byID[s.ID] = s })
	return nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	for _, op := range t.ops {
		op()
	}
	t.done = true
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	return nil
}

type memCollection struct {
	store *memStore
}

func (m *memCollection) AddCollectionEntry(ctx context.Context, entry *domain.CollectionEntry) error {
	m.store.collection = append(m.store.collection, *entry)
	return nil
}

func (m *memCollection) ListCollectionByUser(ctx context.Context, userID string) ([]domain.CollectionEntry, error) {
	var out []domain.CollectionEntry
	for _, e := range m.store.collection {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ----------------------------------------------------------------------------
// Fixture
// ----------------------------------------------------------------------------

type fixture struct {
	svc     Service
	catalog *memCatalog
	store   *memStore
}

func tierCard(pokemonID, tier int, r domain.Rarity, ceiling bool) domain.Card {
	return domain.Card{
		ID:        uuid.New(),
		PokemonID: pokemonID,
		Rarity:    r,
		Tier:      tier,
		Weight:    50,
		IsCeiling: ceiling,
	}
}

func newFixture(seed uint64) *fixture {
	catalog := &memCatalog{
		pokemon: map[int]domain.Pokemon{
			25: {ID: 25, Name: "Pikachu", Type1: "electric", EvolutionStage: 2, Color: "yellow", Generation: 1},
			4:  {ID: 4, Name: "Charmander", Type1: "fire", EvolutionStage: 1, Color: "red", Generation: 1},
			1:  {ID: 1, Name: "Bulbasaur", Type1: "grass", Type2: "poison", EvolutionStage: 1, Color: "green", Generation: 1},
			7:  {ID: 7, Name: "Squirtle", Type1: "water", EvolutionStage: 1, Color: "blue", Generation: 1},
		},
		biomes: map[string]domain.Biome{
			"forest": {ID: "forest", Name: "Forest"},
		},
	}
	for dex := range catalog.pokemon {
		for tier := 1; tier <= 6; tier++ {
			catalog.cards = append(catalog.cards, tierCard(dex, tier, domain.RarityRare, false))
		}
		catalog.cards = append(catalog.cards, tierCard(dex, 2, domain.RarityHyperRare, true))
	}

	store := &memStore{pityStates: map[string]domain.PityState{}}
	sessions := &memSessions{byID: map[uuid.UUID]domain.GameSession{}}
	store.sessions = sessions

	pityRepo := &memPityRepo{store: store}
	rnd := random.NewSeeded(seed)

	// Only Pikachu spawns, keeping the answer deterministic.
	spawnSvc := spawn.NewService(catalog, staticSpawns{}, rnd)
	pitySvc := pity.NewService(pityRepo, rnd)
	cardsSvc := cards.NewService(catalog, rnd)

	svc := NewService(sessions, catalog, pityRepo, &memCollection{store: store}, pitySvc, cardsSvc, spawnSvc)
	return &fixture{svc: svc, catalog: catalog, store: store}
}

type staticSpawns struct{}

func (staticSpawns) GetSpawnEntries(ctx context.Context, biomeID string) ([]domain.SpawnEntry, error) {
	return []domain.SpawnEntry{
		{BiomeID: biomeID, PokemonID: 25, TimeOfDay: domain.TimeOfDayBoth, Weight: 100},
	}, nil
}

// ----------------------------------------------------------------------------
// Tests
// ----------------------------------------------------------------------------

func TestStartSessionValidatesTimeOfDay(t *testing.T) {
	f := newFixture(1)

	_, err := f.svc.StartSession(context.Background(), "ash", "forest", domain.TimeOfDay("dusk"))
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)

	_, err = f.svc.StartSession(context.Background(), "ash", "forest", domain.TimeOfDayBoth)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
}

func TestStartSessionUnknownBiome(t *testing.T) {
	f := newFixture(1)
	_, err := f.svc.StartSession(context.Background(), "ash", "volcano", domain.TimeOfDayDay)
	assert.ErrorIs(t, err, domain.ErrBiomeNotFound)
}

func TestFullWinningPlay(t *testing.T) {
	f := newFixture(7)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)
	assert.Equal(t, 25, session.AnswerPokemonID)

	// Wrong guess first.
	res, err := f.svc.SubmitGuess(ctx, session.ID, 4)
	require.NoError(t, err)
	assert.False(t, res.Terminal)
	assert.Equal(t, 1, res.GuessesUsed)
	assert.Equal(t, domain.VerdictWrong, res.Feedback.Type1)
	assert.Nil(t, res.Answer)

	// Correct on the second attempt: tier 2.
	res, err = f.svc.SubmitGuess(ctx, session.ID, 25)
	require.NoError(t, err)
	assert.True(t, res.Terminal)
	assert.True(t, res.Won)
	assert.Equal(t, 2, res.Tier)
	require.NotNil(t, res.Answer)
	assert.Equal(t, "Pikachu", res.Answer.Name)

	// Reward: three cards, index 0 belongs to the answer.
	reward, err := f.svc.CompleteAndReward(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, reward.Cards, cards.OfferSize)
	assert.Equal(t, 25, reward.Cards[0].PokemonID)

	// Offer generation must not touch pity state.
	_, exists := f.store.pityStates["ash"]
	assert.False(t, exists, "pity transition applied at offer time")

	// Capture commits pity, collection and session atomically.
	capture, err := f.svc.CaptureCard(ctx, session.ID, reward.Cards[0].ID)
	require.NoError(t, err)
	assert.Equal(t, reward.Cards[0].ID, capture.Card.ID)
	assert.Equal(t, 1, capture.PityState.TotalGames)

	entries, err := f.svc.ListCollection(ctx, "ash")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, reward.Cards[0].ID, entries[0].CardID)

	stored, err := f.svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CapturedCardID)
	assert.Equal(t, reward.Cards[0].ID, *stored.CapturedCardID)
}

func TestLossAfterSixGuessesIsTierSix(t *testing.T) {
	f := newFixture(3)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayNight)
	require.NoError(t, err)

	var res *GuessResult
	for i := 0; i < domain.MaxGuesses; i++ {
		res, err = f.svc.SubmitGuess(ctx, session.ID, 4)
		require.NoError(t, err)
	}

	assert.True(t, res.Terminal)
	assert.False(t, res.Won)
	assert.Equal(t, 6, res.Tier)

	// No seventh guess.
	_, err = f.svc.SubmitGuess(ctx, session.ID, 25)
	assert.ErrorIs(t, err, domain.ErrSessionCompleted)
}

func TestSubmitGuessByNameIsCaseInsensitive(t *testing.T) {
	f := newFixture(5)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)

	res, err := f.svc.SubmitGuessByName(ctx, session.ID, "  pikachu ")
	require.NoError(t, err)
	assert.True(t, res.Won)

	// Cached resolution still works.
	session2, err := f.svc.StartSession(ctx, "misty", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)
	res, err = f.svc.SubmitGuessByName(ctx, session2.ID, "PIKACHU")
	require.NoError(t, err)
	assert.True(t, res.Won)
}

func TestSubmitGuessUnknownPokemon(t *testing.T) {
	f := newFixture(5)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)

	_, err = f.svc.SubmitGuess(ctx, session.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)

	_, err = f.svc.SubmitGuessByName(ctx, session.ID, "MissingNo")
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)
}

func TestCompleteAndRewardRequiresTerminalSession(t *testing.T) {
	f := newFixture(5)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)

	_, err = f.svc.CompleteAndReward(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotTerminal)
}

func TestCompleteAndRewardIsIdempotent(t *testing.T) {
	f := newFixture(11)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)
	_, err = f.svc.SubmitGuess(ctx, session.ID, 25)
	require.NoError(t, err)

	first, err := f.svc.CompleteAndReward(ctx, session.ID)
	require.NoError(t, err)
	second, err := f.svc.CompleteAndReward(ctx, session.ID)
	require.NoError(t, err)

	require.Len(t, second.Cards, cards.OfferSize)
	for i := range first.Cards {
		assert.Equal(t, first.Cards[i].ID, second.Cards[i].ID)
	}
}

func TestCompleteAndRewardReplaysPersistedModifiers(t *testing.T) {
	f := newFixture(11)
	ctx := context.Background()

	// A soft drought so the first offer carries a nonzero boost.
	f.store.pityStates["ash"] = domain.PityState{
		UserID:              "ash",
		GamesWithoutCeiling: 5,
		HardPityCounter:     5,
		TotalGames:          5,
	}

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)
	_, err = f.svc.SubmitGuess(ctx, session.ID, 25)
	require.NoError(t, err)

	first, err := f.svc.CompleteAndReward(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.3, first.PityApplied.CeilingWeightMultiplier)

	stored := f.store.sessions.byID[session.ID]
	require.NotNil(t, stored.PityApplied)
	assert.Equal(t, first.PityApplied, *stored.PityApplied)

	// Worsen the live pity state; the replay must still report the
	// modifiers the stored offer was generated under.
	f.store.pityStates["ash"] = domain.PityState{
		UserID:              "ash",
		GamesWithoutCeiling: 8,
		HardPityCounter:     8,
		TotalGames:          8,
	}

	second, err := f.svc.CompleteAndReward(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, first.PityApplied, second.PityApplied)
}

func TestCaptureCardValidations(t *testing.T) {
	f := newFixture(13)
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)

	// Not terminal yet.
	_, err = f.svc.CaptureCard(ctx, session.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotTerminal)

	_, err = f.svc.SubmitGuess(ctx, session.ID, 25)
	require.NoError(t, err)
	reward, err := f.svc.CompleteAndReward(ctx, session.ID)
	require.NoError(t, err)

	// Card outside the offer.
	_, err = f.svc.CaptureCard(ctx, session.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCardNotOffered)

	_, err = f.svc.CaptureCard(ctx, session.ID, reward.Cards[1].ID)
	require.NoError(t, err)

	// Only one capture per session.
	_, err = f.svc.CaptureCard(ctx, session.ID, reward.Cards[2].ID)
	assert.ErrorIs(t, err, domain.ErrRewardAlreadyClaimed)
}

func TestCapturingCeilingCardRelievesPity(t *testing.T) {
	f := newFixture(17)
	ctx := context.Background()

	// Seed a drought so relief is observable.
	f.store.pityStates["ash"] = domain.PityState{
		UserID:              "ash",
		GamesWithoutCeiling: 6,
		HardPityCounter:     6,
		TotalGames:          6,
	}

	session, err := f.svc.StartSession(ctx, "ash", "forest", domain.TimeOfDayDay)
	require.NoError(t, err)
	_, err = f.svc.SubmitGuess(ctx, session.ID, 4)
	require.NoError(t, err)
	_, err = f.svc.SubmitGuess(ctx, session.ID, 25) // tier 2
	require.NoError(t, err)

	reward, err := f.svc.CompleteAndReward(ctx, session.ID)
	require.NoError(t, err)

	var ceilingID, floorID uuid.UUID
	for _, c := range reward.Cards {
		if c.IsCeiling {
			ceilingID = c.ID
		} else {
			floorID = c.ID
		}
	}

	if ceilingID == (uuid.UUID{}) {
		// The draw offered no ceiling card this time; capturing a normal
		// card must deepen the drought instead.
		capture, err := f.svc.CaptureCard(ctx, session.ID, floorID)
		require.NoError(t, err)
		assert.Equal(t, 7, capture.PityState.GamesWithoutCeiling)
		return
	}

	capture, err := f.svc.CaptureCard(ctx, session.ID, ceilingID)
	require.NoError(t, err)
	assert.Zero(t, capture.PityState.GamesWithoutCeiling)
	assert.Zero(t, capture.PityState.HardPityCounter)
	require.NotNil(t, capture.PityState.LastCeilingPull)
}
