package domain

import "time"

// PityState tracks one user's streaks of poor outcomes. It is created lazily
// with all counters zero and mutated exactly once per captured card.
//
// Invariant: at most one of ConsecutiveTier6/ConsecutiveTier5 is nonzero.
type PityState struct {
	UserID              string     `json:"user_id" db:"user_id"`
	ConsecutiveTier6    int        `json:"consecutive_tier6" db:"consecutive_tier6"`
	ConsecutiveTier5    int        `json:"consecutive_tier5" db:"consecutive_tier5"`
	GamesWithoutCeiling int        `json:"games_without_ceiling" db:"games_without_ceiling"`
	HardPityCounter     int        `json:"hard_pity_counter" db:"hard_pity_counter"`
	TotalGames          int        `json:"total_games" db:"total_games"`
	LastCeilingPull     *time.Time `json:"last_ceiling_pull,omitempty" db:"last_ceiling_pull"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// NewPityState returns a zeroed state for a user that has never played.
func NewPityState(userID string) *PityState {
	return &PityState{UserID: userID}
}

// PityModifiers is the read-only output of the pity computation, consumed by
// the card selector. The tier-boost flag is a coin flip, so the modifiers an
// offer was generated under are persisted with the session rather than
// recomputed on later reads.
type PityModifiers struct {
	CeilingWeightMultiplier float64 `json:"ceiling_weight_multiplier"`
	GuaranteeCeiling        bool    `json:"guarantee_ceiling"`
	TierBoost               bool    `json:"tier_boost"`
}
