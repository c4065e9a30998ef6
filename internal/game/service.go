// Package game orchestrates a full play: session start, guesses, the reward
// offer and the final card capture. It owns session state transitions and
// delegates the mechanics to the spawn, feedback, cards and pity packages.
package game

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/habidex/HabiDex_Go/internal/cards"
	"github.com/habidex/HabiDex_Go/internal/concurrency"
	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/feedback"
	"github.com/habidex/HabiDex_Go/internal/logger"
	"github.com/habidex/HabiDex_Go/internal/metrics"
	"github.com/habidex/HabiDex_Go/internal/pity"
	"github.com/habidex/HabiDex_Go/internal/rarity"
	"github.com/habidex/HabiDex_Go/internal/repository"
	"github.com/habidex/HabiDex_Go/internal/spawn"
)

// GuessResult is the outcome of one submitted guess. Answer is only
// populated once the session is terminal.
type GuessResult struct {
	Feedback    domain.Feedback `json:"feedback"`
	GuessesUsed int             `json:"guesses_used"`
	Terminal    bool            `json:"terminal"`
	Won         bool            `json:"won"`
	Tier        int             `json:"tier,omitempty"`
	Answer      *domain.Pokemon `json:"answer,omitempty"`
}

// RewardResult is the three-card offer for a terminal session. Cards[0] is
// always a card of the answer Pokémon.
type RewardResult struct {
	Cards       []domain.Card        `json:"cards"`
	PityApplied domain.PityModifiers `json:"pity_applied"`
}

// CaptureResult reports the captured card and the pity state after the
// capture transaction committed.
type CaptureResult struct {
	Card      domain.Card      `json:"card"`
	PityState domain.PityState `json:"pity_state"`
}

// Service defines the game orchestration interface.
type Service interface {
	StartSession(ctx context.Context, userID, biomeID string, timeOfDay domain.TimeOfDay) (*domain.GameSession, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.GameSession, error)
	SubmitGuess(ctx context.Context, sessionID uuid.UUID, dexNumber int) (*GuessResult, error)
	SubmitGuessByName(ctx context.Context, sessionID uuid.UUID, name string) (*GuessResult, error)
	CompleteAndReward(ctx context.Context, sessionID uuid.UUID) (*RewardResult, error)
	CaptureCard(ctx context.Context, sessionID, cardID uuid.UUID) (*CaptureResult, error)
	ListCollection(ctx context.Context, userID string) ([]domain.CollectionEntry, error)
}

type service struct {
	sessions   repository.Session
	catalog    repository.Catalog
	pityRepo   repository.Pity
	collection repository.Collection
	pitySvc    pity.Service
	cardsSvc   cards.Service
	spawnSvc   spawn.Service
	names      *nameResolver
	locks      *concurrency.LockManager
}

// NewService creates a new game service.
func NewService(
	sessions repository.Session,
	catalog repository.Catalog,
	pityRepo repository.Pity,
	collection repository.Collection,
	pitySvc pity.Service,
	cardsSvc cards.Service,
	spawnSvc spawn.Service,
) Service {
	return &service{
		sessions:   sessions,
		catalog:    catalog,
		pityRepo:   pityRepo,
		collection: collection,
		pitySvc:    pitySvc,
		cardsSvc:   cardsSvc,
		spawnSvc:   spawnSvc,
		names:      newNameResolver(catalog),
		locks:      concurrency.NewLockManager(),
	}
}

func (s *service) StartSession(ctx context.Context, userID, biomeID string, timeOfDay domain.TimeOfDay) (*domain.GameSession, error) {
	if !timeOfDay.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimeOfDay, timeOfDay)
	}

	answer, err := s.spawnSvc.SelectAnswer(ctx, biomeID, timeOfDay)
	if err != nil {
		return nil, err
	}

	session := &domain.GameSession{
		ID:              uuid.New(),
		UserID:          userID,
		BiomeID:         biomeID,
		TimeOfDay:       timeOfDay,
		AnswerPokemonID: answer.ID,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	metrics.SessionsStarted.WithLabelValues(biomeID).Inc()
	logger.FromContext(ctx).Info("Session started",
		"session_id", session.ID, "user_id", userID, "biome_id", biomeID, "time_of_day", timeOfDay)

	return session, nil
}

func (s *service) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.GameSession, error) {
	return s.sessions.GetSessionByID(ctx, sessionID)
}

func (s *service) SubmitGuessByName(ctx context.Context, sessionID uuid.UUID, name string) (*GuessResult, error) {
	guessed, err := s.names.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.SubmitGuess(ctx, sessionID, guessed.ID)
}

// SubmitGuess serializes per session so two concurrent guesses cannot both
// read the same state and clobber each other's append.
func (s *service) SubmitGuess(ctx context.Context, sessionID uuid.UUID, dexNumber int) (*GuessResult, error) {
	var result *GuessResult
	err := s.locks.WithLock(sessionID.String(), func() error {
		var err error
		result, err = s.submitGuessLocked(ctx, sessionID, dexNumber)
		return err
	})
	return result, err
}

func (s *service) submitGuessLocked(ctx context.Context, sessionID uuid.UUID, dexNumber int) (*GuessResult, error) {
	session, err := s.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Terminal() {
		return nil, domain.ErrSessionCompleted
	}

	guessed, err := s.catalog.GetPokemonByID(ctx, dexNumber)
	if err != nil {
		return nil, err
	}
	answer, err := s.catalog.GetPokemonByID(ctx, session.AnswerPokemonID)
	if err != nil {
		return nil, fmt.Errorf("resolve answer: %w", err)
	}

	fb := feedback.Compare(guessed, answer)
	won := feedback.IsWin(guessed, answer)

	session.Guesses = append(session.Guesses, domain.Guess{
		PokemonID: guessed.ID,
		Feedback:  fb,
		GuessedAt: time.Now().UTC(),
	})
	session.GuessesUsed++

	result := &GuessResult{
		Feedback:    fb,
		GuessesUsed: session.GuessesUsed,
		Won:         won,
	}

	if won || session.GuessesUsed >= domain.MaxGuesses {
		now := time.Now().UTC()
		session.Completed = true
		session.Won = won
		session.CompletedAt = &now
		session.Tier = rarity.TierForGuessCount(session.GuessesUsed)

		result.Terminal = true
		result.Tier = session.Tier
		result.Answer = answer

		metrics.SessionsCompleted.WithLabelValues(
			strconv.Itoa(session.Tier), strconv.FormatBool(won)).Inc()
	}

	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	metrics.GuessesSubmitted.Inc()
	return result, nil
}

// CompleteAndReward generates the three-card offer for a terminal session.
// It reads pity state but never writes it; the transition belongs to
// CaptureCard. Calling it again for the same session returns the already
// persisted offer and the modifiers it was generated under.
func (s *service) CompleteAndReward(ctx context.Context, sessionID uuid.UUID) (*RewardResult, error) {
	var result *RewardResult
	err := s.locks.WithLock(sessionID.String(), func() error {
		var err error
		result, err = s.completeAndRewardLocked(ctx, sessionID)
		return err
	})
	return result, err
}

func (s *service) completeAndRewardLocked(ctx context.Context, sessionID uuid.UUID) (*RewardResult, error) {
	session, err := s.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Terminal() {
		return nil, domain.ErrSessionNotTerminal
	}

	if len(session.OfferedCardIDs) > 0 {
		offers, err := s.resolveCards(ctx, session.OfferedCardIDs)
		if err != nil {
			return nil, err
		}
		var mods domain.PityModifiers
		if session.PityApplied != nil {
			mods = *session.PityApplied
		}
		return &RewardResult{Cards: offers, PityApplied: mods}, nil
	}

	mods, err := s.pitySvc.Modifiers(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	offers, err := s.cardsSvc.GenerateOffers(ctx, session.Tier, session.AnswerPokemonID, mods)
	if err != nil {
		return nil, err
	}

	session.OfferedCardIDs = make([]uuid.UUID, len(offers))
	for i, c := range offers {
		session.OfferedCardIDs[i] = c.ID
	}
	session.PityApplied = &mods
	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("persist offer: %w", err)
	}

	metrics.OffersGenerated.WithLabelValues(strconv.Itoa(session.Tier)).Inc()
	if mods.GuaranteeCeiling {
		metrics.PityHardTriggers.Inc()
	}
	if mods.TierBoost {
		metrics.TierBoosts.Inc()
	}

	return &RewardResult{Cards: offers, PityApplied: mods}, nil
}

// CaptureCard commits the user's pick from the offer. The pity transition
// and the collection insert ride one transaction: pity relief is keyed to
// the captured card, not the offered set.
func (s *service) CaptureCard(ctx context.Context, sessionID, cardID uuid.UUID) (*CaptureResult, error) {
	var result *CaptureResult
	err := s.locks.WithLock(sessionID.String(), func() error {
		var err error
		result, err = s.captureCardLocked(ctx, sessionID, cardID)
		return err
	})
	return result, err
}

func (s *service) captureCardLocked(ctx context.Context, sessionID, cardID uuid.UUID) (*CaptureResult, error) {
	session, err := s.sessions.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Terminal() {
		return nil, domain.ErrSessionNotTerminal
	}
	if session.CapturedCardID != nil {
		return nil, domain.ErrRewardAlreadyClaimed
	}
	if !session.WasOffered(cardID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCardNotOffered, cardID)
	}

	card, err := s.catalog.GetCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	state, err := s.pitySvc.GetState(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	next := pity.ApplyOutcome(*state, pity.Outcome{
		Tier:            session.Tier,
		CeilingCaptured: card.IsCeiling,
		Now:             now,
	})
	session.CapturedCardID = &cardID

	tx, err := s.pityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin capture tx: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.UpsertPityState(ctx, &next); err != nil {
		return nil, fmt.Errorf("persist pity state: %w", err)
	}
	if err := tx.AddCollectionEntry(ctx, &domain.CollectionEntry{
		UserID:     session.UserID,
		CardID:     cardID,
		SessionID:  session.ID,
		CapturedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("persist collection entry: %w", err)
	}
	if err := tx.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit capture tx: %w", err)
	}

	metrics.CardsCaptured.WithLabelValues(string(card.Rarity)).Inc()
	logger.FromContext(ctx).Info("Card captured",
		"session_id", session.ID, "user_id", session.UserID,
		"card_id", cardID, "rarity", card.Rarity, "ceiling", card.IsCeiling)

	return &CaptureResult{Card: *card, PityState: next}, nil
}

func (s *service) ListCollection(ctx context.Context, userID string) ([]domain.CollectionEntry, error) {
	return s.collection.ListCollectionByUser(ctx, userID)
}

func (s *service) resolveCards(ctx context.Context, ids []uuid.UUID) ([]domain.Card, error) {
	out := make([]domain.Card, 0, len(ids))
	for _, id := range ids {
		c, err := s.catalog.GetCardByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve offered card %s: %w", id, err)
		}
		out = append(out, *c)
	}
	return out, nil
}
