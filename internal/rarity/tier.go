package rarity

// TierForGuessCount maps the number of guesses a player consumed to a
// reward tier. Identity for in-range values, clamped to [MinTier, MaxTier]
// otherwise: solving in one guess is tier 1 (best), spending all six (or
// anything beyond) is tier 6.
func TierForGuessCount(n int) int {
	return ClampTier(n)
}

// ClampTier clamps an arbitrary tier value into [MinTier, MaxTier].
func ClampTier(t int) int {
	if t < MinTier {
		return MinTier
	}
	if t > MaxTier {
		return MaxTier
	}
	return t
}
