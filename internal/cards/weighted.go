package cards

import (
	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/random"
)

// effectiveWeight returns a card's draw weight after the pity multiplier.
// Zero or negative configured weights count as 1 so a bad catalog row can
// never wedge a draw.
func effectiveWeight(c domain.Card, ceilingMultiplier float64) float64 {
	w := float64(c.Weight)
	if w <= 0 {
		w = 1
	}
	if c.IsCeiling && ceilingMultiplier > 1.0 {
		w *= ceilingMultiplier
	}
	return w
}

// pickWeighted draws one card from candidates: a uniform value in
// [0, totalWeight) walks the list in order and the first card whose weight
// exhausts the remainder wins. Single-item lists short-circuit.
func pickWeighted(candidates []domain.Card, ceilingMultiplier float64, rnd random.Source) domain.Card {
	if len(candidates) == 1 {
		return candidates[0]
	}

	total := 0.0
	for _, c := range candidates {
		total += effectiveWeight(c, ceilingMultiplier)
	}

	remainder := rnd.Float64() * total
	for _, c := range candidates {
		remainder -= effectiveWeight(c, ceilingMultiplier)
		if remainder <= 0 {
			return c
		}
	}

	// Float accumulation can leave a sliver; the last card takes it.
	return candidates[len(candidates)-1]
}
