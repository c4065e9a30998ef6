// Package rarity holds the static mapping between the 12 canonical card
// rarities, the 1-6 performance tiers they are eligible for, and their base
// drop weights. Everything here is a pure lookup; there is no state.
package rarity

import (
	"fmt"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// MinTier and MaxTier bound the performance brackets. Tier 1 is best
// (solved in one guess), tier 6 is worst (all six guesses spent).
const (
	MinTier = 1
	MaxTier = 6
)

// Info is one row of the rarity table. Eligible tiers are the contiguous
// range [MinEligibleTier, MaxEligibleTier]. Higher rarity carries a lower
// base drop weight.
type Info struct {
	Rarity          domain.Rarity
	MinEligibleTier int
	MaxEligibleTier int
	Weight          int
}

// table lists all rarities in canonical order, most common first. The order
// is load-bearing: the floor card of a tier is the first eligible rarity in
// this list, the ceiling card is the last.
var table = []Info{
	{domain.RarityCommon, 5, 6, 100},
	{domain.RarityUncommon, 4, 6, 80},
	{domain.RarityRare, 3, 6, 60},
	{domain.RarityDoubleRare, 3, 5, 40},
	{domain.RarityAceSpecRare, 2, 4, 30},
	{domain.RarityUltraRare, 2, 4, 25},
	{domain.RarityIllustration, 1, 4, 18},
	{domain.RarityShinyRare, 1, 3, 12},
	{domain.RaritySpecialIllust, 1, 3, 8},
	{domain.RarityShinyUltraRare, 1, 2, 5},
	{domain.RarityHyperRare, 1, 2, 3},
	{domain.RarityCrownRare, 1, 1, 2},
}

var infoByRarity = func() map[domain.Rarity]Info {
	m := make(map[domain.Rarity]Info, len(table))
	for _, info := range table {
		m[info.Rarity] = info
	}
	return m
}()

// All returns the full table in canonical order.
func All() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

// Lookup returns the table row for a rarity.
func Lookup(r domain.Rarity) (Info, error) {
	info, ok := infoByRarity[r]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", domain.ErrUnknownRarity, r)
	}
	return info, nil
}

// TiersForRarity returns the eligible tiers for a rarity, best tier first.
func TiersForRarity(r domain.Rarity) ([]int, error) {
	info, err := Lookup(r)
	if err != nil {
		return nil, err
	}
	tiers := make([]int, 0, info.MaxEligibleTier-info.MinEligibleTier+1)
	for t := info.MinEligibleTier; t <= info.MaxEligibleTier; t++ {
		tiers = append(tiers, t)
	}
	return tiers, nil
}

// RaritiesForTier returns the rarities eligible for a tier, most common
// first. Every tier has at least one eligible rarity by construction.
func RaritiesForTier(tier int) ([]domain.Rarity, error) {
	if tier < MinTier || tier > MaxTier {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidTier, tier)
	}
	var out []domain.Rarity
	for _, info := range table {
		if tier >= info.MinEligibleTier && tier <= info.MaxEligibleTier {
			out = append(out, info.Rarity)
		}
	}
	return out, nil
}

// AssignTier returns the canonical tier for a freshly-seeded card that is
// not pinned to explicit tiers: the numerically lowest (= best) eligible
// tier for its rarity.
func AssignTier(r domain.Rarity) (int, error) {
	info, err := Lookup(r)
	if err != nil {
		return 0, err
	}
	return info.MinEligibleTier, nil
}

// Weight returns the base drop weight for a rarity.
func Weight(r domain.Rarity) (int, error) {
	info, err := Lookup(r)
	if err != nil {
		return 0, err
	}
	return info.Weight, nil
}

// IsFloorCard reports whether rarity r is the most common rarity eligible
// for the given tier. Unknown rarities and ineligible pairs are never floor.
func IsFloorCard(r domain.Rarity, tier int) bool {
	rarities, err := RaritiesForTier(tier)
	if err != nil || len(rarities) == 0 {
		return false
	}
	return rarities[0] == r
}

// IsCeilingCard reports whether rarity r is the rarest rarity eligible for
// the given tier. Ceiling cards are what the pity mechanics target.
func IsCeilingCard(r domain.Rarity, tier int) bool {
	rarities, err := RaritiesForTier(tier)
	if err != nil || len(rarities) == 0 {
		return false
	}
	return rarities[len(rarities)-1] == r
}
