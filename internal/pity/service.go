package pity

import (
	"context"
	"errors"
	"fmt"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/logger"
	"github.com/habidex/HabiDex_Go/internal/random"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

// Service defines the interface for pity-state operations.
type Service interface {
	// GetState returns the user's pity state, a fresh zero state for users
	// with no recorded games.
	GetState(ctx context.Context, userID string) (*domain.PityState, error)

	// Modifiers computes the current modifiers from the user's state. Safe
	// to call repeatedly; it never writes.
	Modifiers(ctx context.Context, userID string) (domain.PityModifiers, error)

	// RecordOutcome applies one completed game to the user's state and
	// persists the result. The capture flow bypasses this and applies
	// ApplyOutcome inside its transaction instead.
	RecordOutcome(ctx context.Context, userID string, outcome Outcome) (*domain.PityState, error)

	// Reset zeroes the four pity counters and the last ceiling pull while
	// leaving the lifetime game count untouched.
	Reset(ctx context.Context, userID string) (*domain.PityState, error)
}

type service struct {
	repo repository.Pity
	rnd  random.Source
}

// NewService creates a new pity service.
func NewService(repo repository.Pity, rnd random.Source) Service {
	return &service{repo: repo, rnd: rnd}
}

func (s *service) GetState(ctx context.Context, userID string) (*domain.PityState, error) {
	state, err := s.repo.GetPityState(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NewPityState(userID), nil
		}
		return nil, fmt.Errorf("get pity state: %w", err)
	}
	return state, nil
}

func (s *service) Modifiers(ctx context.Context, userID string) (domain.PityModifiers, error) {
	state, err := s.GetState(ctx, userID)
	if err != nil {
		return domain.PityModifiers{}, err
	}

	mods := ComputeModifiers(state, s.rnd)
	if mods.GuaranteeCeiling || mods.TierBoost || mods.CeilingWeightMultiplier > 1.0 {
		logger.FromContext(ctx).Debug("Pity modifiers active",
			"user_id", userID,
			"multiplier", mods.CeilingWeightMultiplier,
			"guarantee_ceiling", mods.GuaranteeCeiling,
			"tier_boost", mods.TierBoost)
	}
	return mods, nil
}

func (s *service) RecordOutcome(ctx context.Context, userID string, outcome Outcome) (*domain.PityState, error) {
	state, err := s.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := ApplyOutcome(*state, outcome)
	if err := s.repo.UpsertPityState(ctx, &next); err != nil {
		return nil, fmt.Errorf("persist pity state: %w", err)
	}
	return &next, nil
}

func (s *service) Reset(ctx context.Context, userID string) (*domain.PityState, error) {
	state, err := s.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	state.ConsecutiveTier6 = 0
	state.ConsecutiveTier5 = 0
	state.GamesWithoutCeiling = 0
	state.HardPityCounter = 0
	state.LastCeilingPull = nil

	if err := s.repo.UpsertPityState(ctx, state); err != nil {
		return nil, fmt.Errorf("persist pity state: %w", err)
	}

	logger.FromContext(ctx).Info("Pity state reset", "user_id", userID)
	return state, nil
}
