package pity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// fixedSource returns scripted Float64 values for deterministic coin flips.
type fixedSource struct {
	vals []float64
	i    int
}

func (f *fixedSource) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func (f *fixedSource) IntN(n int) int { return 0 }

func TestApplyOutcomeStreaks(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		start     domain.PityState
		outcome   Outcome
		wantTier6 int
		wantTier5 int
	}{
		{
			name:      "tier 6 extends tier6 streak and clears tier5",
			start:     domain.PityState{ConsecutiveTier6: 1, ConsecutiveTier5: 2},
			outcome:   Outcome{Tier: 6, Now: now},
			wantTier6: 2,
			wantTier5: 0,
		},
		{
			name:      "tier 5 extends tier5 streak and clears tier6",
			start:     domain.PityState{ConsecutiveTier6: 3},
			outcome:   Outcome{Tier: 5, Now: now},
			wantTier6: 0,
			wantTier5: 1,
		},
		{
			name:      "tier 4 clears both streaks",
			start:     domain.PityState{ConsecutiveTier6: 2, ConsecutiveTier5: 1},
			outcome:   Outcome{Tier: 4, Now: now},
			wantTier6: 0,
			wantTier5: 0,
		},
		{
			name:      "tier 1 clears both streaks",
			start:     domain.PityState{ConsecutiveTier6: 5},
			outcome:   Outcome{Tier: 1, Now: now},
			wantTier6: 0,
			wantTier5: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := ApplyOutcome(tt.start, tt.outcome)
			assert.Equal(t, tt.wantTier6, next.ConsecutiveTier6)
			assert.Equal(t, tt.wantTier5, next.ConsecutiveTier5)
			assert.Equal(t, tt.start.TotalGames+1, next.TotalGames)
		})
	}
}

func TestApplyOutcomeStreakExclusivity(t *testing.T) {
	// At most one of the two streak counters is ever nonzero, regardless of
	// the tier sequence played.
	state := domain.PityState{UserID: "user1"}
	for _, tier := range []int{6, 6, 5, 6, 5, 5, 3, 6, 1, 5} {
		state = ApplyOutcome(state, Outcome{Tier: tier, Now: time.Now()})
		assert.False(t, state.ConsecutiveTier6 > 0 && state.ConsecutiveTier5 > 0,
			"both streaks nonzero after tier %d: %+v", tier, state)
	}
}

func TestApplyOutcomeCeilingCapture(t *testing.T) {
	now := time.Now()
	state := domain.PityState{
		GamesWithoutCeiling: 8,
		HardPityCounter:     9,
		TotalGames:          20,
	}

	next := ApplyOutcome(state, Outcome{Tier: 2, CeilingCaptured: true, Now: now})

	assert.Equal(t, 0, next.GamesWithoutCeiling)
	assert.Equal(t, 0, next.HardPityCounter)
	require.NotNil(t, next.LastCeilingPull)
	assert.Equal(t, now, *next.LastCeilingPull)
	assert.Equal(t, 21, next.TotalGames)
}

func TestApplyOutcomeNoCeilingIncrementsCounters(t *testing.T) {
	state := domain.PityState{GamesWithoutCeiling: 3, HardPityCounter: 3}

	next := ApplyOutcome(state, Outcome{Tier: 4, CeilingCaptured: false, Now: time.Now()})

	assert.Equal(t, 4, next.GamesWithoutCeiling)
	assert.Equal(t, 4, next.HardPityCounter)
	assert.Nil(t, next.LastCeilingPull)
}

// A ceiling card that was offered but not captured gives no pity relief.
// Relief is tied to acquisition, and this scenario pins that choice down.
func TestDeclinedCeilingOfferDoesNotResetPity(t *testing.T) {
	state := domain.PityState{GamesWithoutCeiling: 6, HardPityCounter: 6}

	// The offer contained a ceiling card, but the user captured a different
	// one, so the outcome reports CeilingCaptured false.
	next := ApplyOutcome(state, Outcome{Tier: 2, CeilingCaptured: false, Now: time.Now()})

	assert.Equal(t, 7, next.GamesWithoutCeiling)
	assert.Equal(t, 7, next.HardPityCounter)
	assert.Nil(t, next.LastCeilingPull)
}

func TestApplyOutcomeDoesNotMutateInput(t *testing.T) {
	state := domain.PityState{ConsecutiveTier6: 1, TotalGames: 5}
	_ = ApplyOutcome(state, Outcome{Tier: 6, Now: time.Now()})
	assert.Equal(t, 1, state.ConsecutiveTier6)
	assert.Equal(t, 5, state.TotalGames)
}

func TestComputeModifiersHardPityOverridesEverything(t *testing.T) {
	state := &domain.PityState{
		HardPityCounter:     HardPityThreshold,
		ConsecutiveTier6:    4,
		GamesWithoutCeiling: 12,
	}

	mods := ComputeModifiers(state, &fixedSource{vals: []float64{0.0}})

	assert.True(t, mods.GuaranteeCeiling)
	assert.False(t, mods.TierBoost)
	assert.InDelta(t, 1.0, mods.CeilingWeightMultiplier, 1e-9)
}

func TestComputeModifiersStreakMultipliers(t *testing.T) {
	tests := []struct {
		name     string
		tier6    int
		wantMult float64
	}{
		{"no streak", 0, 1.0},
		{"single tier6 game", 1, 1.0},
		{"two in a row", 2, Tier6SoftMultiplier},
		{"three in a row", 3, Tier6StrongMultiplier},
		{"long streak holds strong multiplier", 6, Tier6StrongMultiplier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &domain.PityState{ConsecutiveTier6: tt.tier6}
			// Flip never fires with a draw of 0.99.
			mods := ComputeModifiers(state, &fixedSource{vals: []float64{0.99}})
			assert.InDelta(t, tt.wantMult, mods.CeilingWeightMultiplier, 1e-9)
			assert.False(t, mods.GuaranteeCeiling)
		})
	}
}

func TestComputeModifiersTierBoostFlip(t *testing.T) {
	state := &domain.PityState{ConsecutiveTier6: 3}

	mods := ComputeModifiers(state, &fixedSource{vals: []float64{0.19}})
	assert.True(t, mods.TierBoost)

	mods = ComputeModifiers(state, &fixedSource{vals: []float64{0.20}})
	assert.False(t, mods.TierBoost)

	// The flip only applies at the strong streak threshold.
	mods = ComputeModifiers(&domain.PityState{ConsecutiveTier6: 2}, &fixedSource{vals: []float64{0.0}})
	assert.False(t, mods.TierBoost)
}

func TestComputeModifiersDrought(t *testing.T) {
	tests := []struct {
		name     string
		drought  int
		wantMult float64
	}{
		{"below soft threshold", 4, 1.0},
		{"soft drought", 5, DroughtSoftMultiplier},
		{"strong drought", 7, DroughtStrongMultiplier},
		{"deep drought", 9, DroughtStrongMultiplier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &domain.PityState{GamesWithoutCeiling: tt.drought}
			mods := ComputeModifiers(state, &fixedSource{vals: []float64{0.99}})
			assert.InDelta(t, tt.wantMult, mods.CeilingWeightMultiplier, 1e-9)
		})
	}
}

func TestComputeModifiersTakesMaxOfStreakAndDrought(t *testing.T) {
	// Strong streak (2.5) beats strong drought (2.0).
	state := &domain.PityState{ConsecutiveTier6: 3, GamesWithoutCeiling: 8}
	mods := ComputeModifiers(state, &fixedSource{vals: []float64{0.99}})
	assert.InDelta(t, Tier6StrongMultiplier, mods.CeilingWeightMultiplier, 1e-9)

	// Strong drought (2.0) beats soft streak (1.5).
	state = &domain.PityState{ConsecutiveTier6: 2, GamesWithoutCeiling: 7}
	mods = ComputeModifiers(state, &fixedSource{vals: []float64{0.99}})
	assert.InDelta(t, DroughtStrongMultiplier, mods.CeilingWeightMultiplier, 1e-9)
}

func TestComputeModifiersIsReadOnly(t *testing.T) {
	state := &domain.PityState{ConsecutiveTier6: 3, GamesWithoutCeiling: 6, HardPityCounter: 4}
	before := *state

	for i := 0; i < 5; i++ {
		_ = ComputeModifiers(state, &fixedSource{vals: []float64{0.5}})
	}

	assert.Equal(t, before, *state)
}
