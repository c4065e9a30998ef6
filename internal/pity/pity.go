// Package pity implements the bad-luck protection state machine. The
// transition and modifier computation are pure functions over PityState so
// they can be tested without a database; the service wraps them with
// persistence.
package pity

import (
	"time"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/random"
)

// Thresholds and multipliers for the soft and hard pity mechanics. The
// streak multipliers key off consecutive worst-tier games, the drought
// multipliers off games since the last ceiling capture. Hard pity overrides
// everything once the counter reaches its threshold.
const (
	HardPityThreshold = 10

	Tier6StreakSoft       = 2
	Tier6StreakStrong     = 3
	Tier6SoftMultiplier   = 1.5
	Tier6StrongMultiplier = 2.5

	DroughtSoft             = 5
	DroughtStrong           = 7
	DroughtSoftMultiplier   = 1.3
	DroughtStrongMultiplier = 2.0

	TierBoostChance = 0.20
)

// Outcome describes one completed game from the pity tracker's point of
// view. CeilingCaptured is keyed to the capture step, not the offer: a
// ceiling card that was offered but not taken does not relieve pity.
type Outcome struct {
	Tier            int
	CeilingCaptured bool
	Now             time.Time
}

// ApplyOutcome returns the successor state for one completed game. The
// input state is not mutated; callers persist the returned value.
func ApplyOutcome(s domain.PityState, o Outcome) domain.PityState {
	next := s

	switch {
	case o.Tier == 6:
		next.ConsecutiveTier6++
		next.ConsecutiveTier5 = 0
	case o.Tier == 5:
		next.ConsecutiveTier5++
		next.ConsecutiveTier6 = 0
	default:
		next.ConsecutiveTier6 = 0
		next.ConsecutiveTier5 = 0
	}

	next.HardPityCounter++
	if o.CeilingCaptured {
		next.GamesWithoutCeiling = 0
		next.HardPityCounter = 0
		pulled := o.Now
		next.LastCeilingPull = &pulled
	} else {
		next.GamesWithoutCeiling++
	}

	next.TotalGames++
	next.UpdatedAt = o.Now
	return next
}

// ComputeModifiers derives the current pity modifiers from state. It is
// read-only and idempotent aside from the tier-boost coin flip, which
// consumes one draw from rnd.
func ComputeModifiers(s *domain.PityState, rnd random.Source) domain.PityModifiers {
	if s.HardPityCounter >= HardPityThreshold {
		return domain.PityModifiers{
			CeilingWeightMultiplier: 1.0,
			GuaranteeCeiling:        true,
		}
	}

	mods := domain.PityModifiers{CeilingWeightMultiplier: 1.0}

	switch {
	case s.ConsecutiveTier6 >= Tier6StreakStrong:
		mods.CeilingWeightMultiplier = Tier6StrongMultiplier
		if rnd.Float64() < TierBoostChance {
			mods.TierBoost = true
		}
	case s.ConsecutiveTier6 == Tier6StreakSoft:
		mods.CeilingWeightMultiplier = Tier6SoftMultiplier
	}

	switch {
	case s.GamesWithoutCeiling >= DroughtStrong:
		mods.CeilingWeightMultiplier = max(mods.CeilingWeightMultiplier, DroughtStrongMultiplier)
	case s.GamesWithoutCeiling >= DroughtSoft:
		mods.CeilingWeightMultiplier = max(mods.CeilingWeightMultiplier, DroughtSoftMultiplier)
	}

	return mods
}
