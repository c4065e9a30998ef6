package rarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

func TestTableCoversAllTiers(t *testing.T) {
	for tier := MinTier; tier <= MaxTier; tier++ {
		rarities, err := RaritiesForTier(tier)
		require.NoError(t, err)
		assert.NotEmpty(t, rarities, "tier %d has no eligible rarities", tier)
	}
}

func TestTableRangesAreContiguousAndOrdered(t *testing.T) {
	for _, info := range All() {
		assert.GreaterOrEqual(t, info.MinEligibleTier, MinTier, "%s", info.Rarity)
		assert.LessOrEqual(t, info.MaxEligibleTier, MaxTier, "%s", info.Rarity)
		assert.LessOrEqual(t, info.MinEligibleTier, info.MaxEligibleTier, "%s", info.Rarity)
		assert.Positive(t, info.Weight, "%s", info.Rarity)
	}
}

func TestTiersForRarity(t *testing.T) {
	tests := []struct {
		name   string
		rarity domain.Rarity
		want   []int
	}{
		{"common sits in the worst two tiers", domain.RarityCommon, []int{5, 6}},
		{"rare spans tiers 3 through 6", domain.RarityRare, []int{3, 4, 5, 6}},
		{"illustration rare spans tiers 1 through 4", domain.RarityIllustration, []int{1, 2, 3, 4}},
		{"crown rare is tier 1 only", domain.RarityCrownRare, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TiersForRarity(tt.rarity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTiersForRarityUnknown(t *testing.T) {
	_, err := TiersForRarity(domain.Rarity("Mythic"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownRarity)
}

func TestRaritiesForTierOrdering(t *testing.T) {
	rarities, err := RaritiesForTier(5)
	require.NoError(t, err)
	assert.Equal(t, []domain.Rarity{
		domain.RarityCommon,
		domain.RarityUncommon,
		domain.RarityRare,
		domain.RarityDoubleRare,
	}, rarities)
}

func TestRaritiesForTierOutOfRange(t *testing.T) {
	for _, tier := range []int{0, 7, -1} {
		_, err := RaritiesForTier(tier)
		assert.ErrorIs(t, err, domain.ErrInvalidTier, "tier %d", tier)
	}
}

func TestFloorAndCeilingCards(t *testing.T) {
	tests := []struct {
		name        string
		rarity      domain.Rarity
		tier        int
		wantFloor   bool
		wantCeiling bool
	}{
		{"common is the tier 6 floor", domain.RarityCommon, 6, true, false},
		{"rare is the tier 6 ceiling", domain.RarityRare, 6, false, true},
		{"double rare is the tier 5 ceiling", domain.RarityDoubleRare, 5, false, true},
		{"crown rare is the tier 1 ceiling", domain.RarityCrownRare, 1, false, true},
		{"illustration rare is the tier 1 floor", domain.RarityIllustration, 1, true, false},
		{"uncommon is mid-pool at tier 6", domain.RarityUncommon, 6, false, false},
		{"ineligible pair is neither", domain.RarityCrownRare, 6, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFloor, IsFloorCard(tt.rarity, tt.tier))
			assert.Equal(t, tt.wantCeiling, IsCeilingCard(tt.rarity, tt.tier))
		})
	}
}

func TestWeightsDecreaseWithRarity(t *testing.T) {
	all := All()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i].Weight, all[i-1].Weight,
			"%s should be rarer than %s", all[i].Rarity, all[i-1].Rarity)
	}
}

func TestAssignTierPicksBestEligible(t *testing.T) {
	tier, err := AssignTier(domain.RarityShinyRare)
	require.NoError(t, err)
	assert.Equal(t, 1, tier)

	tier, err = AssignTier(domain.RarityCommon)
	require.NoError(t, err)
	assert.Equal(t, 5, tier)
}

func TestTierForGuessCount(t *testing.T) {
	tests := []struct {
		guesses int
		want    int
	}{
		{1, 1},
		{3, 3},
		{6, 6},
		{0, 1},
		{9, 6},
		{-2, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForGuessCount(tt.guesses), "guesses=%d", tt.guesses)
	}
}
