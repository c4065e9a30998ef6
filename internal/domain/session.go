package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxGuesses is the hard cap on guesses per session. Reaching it without an
// identity match ends the game as a loss at tier 6.
const MaxGuesses = 6

// Verdict is the per-attribute outcome of comparing a guess to the answer.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPartial Verdict = "partial"
	VerdictWrong   Verdict = "wrong"
	VerdictNA      Verdict = "na" // only the secondary-type slot can be n/a
)

// Feedback holds the six independent per-attribute verdicts for one guess.
type Feedback struct {
	Type1          Verdict `json:"type1"`
	Type2          Verdict `json:"type2"`
	EvolutionStage Verdict `json:"evolution_stage"`
	FullyEvolved   Verdict `json:"fully_evolved"`
	Color          Verdict `json:"color"`
	Generation     Verdict `json:"generation"`
}

// Guess is one submitted Pokémon plus its computed feedback.
type Guess struct {
	PokemonID int       `json:"dex_number" db:"dex_number"`
	Feedback  Feedback  `json:"feedback" db:"feedback"`
	GuessedAt time.Time `json:"guessed_at" db:"guessed_at"`
}

// GameSession is one play of the daily guessing game. It becomes terminal
// once Completed is true; no further guesses are accepted after that.
type GameSession struct {
	ID              uuid.UUID   `json:"session_id" db:"session_id"`
	UserID          string      `json:"user_id" db:"user_id"`
	BiomeID         string      `json:"biome_id" db:"biome_id"`
	TimeOfDay       TimeOfDay   `json:"time_of_day" db:"time_of_day"`
	AnswerPokemonID int         `json:"-" db:"answer_dex_number"` // withheld from clients until terminal
	Guesses         []Guess     `json:"guesses" db:"guesses"`
	Completed       bool        `json:"completed" db:"completed"`
	Won             bool        `json:"won" db:"won"`
	GuessesUsed     int         `json:"guesses_used" db:"guesses_used"`
	Tier            int         `json:"tier,omitempty" db:"tier"`
	OfferedCardIDs  []uuid.UUID `json:"offered_card_ids,omitempty" db:"offered_card_ids"` // index 0 is the guaranteed card
	// PityApplied records the modifiers the offer was generated under, so
	// re-reading the offer reports them instead of re-rolling the tier boost.
	PityApplied    *PityModifiers `json:"pity_applied,omitempty" db:"pity_applied"`
	CapturedCardID *uuid.UUID     `json:"captured_card_id,omitempty" db:"captured_card_id"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty" db:"completed_at"`
}

// Terminal reports whether the session accepts further guesses.
func (s *GameSession) Terminal() bool {
	return s.Completed
}

// WasOffered reports whether cardID is among the session's offered cards.
func (s *GameSession) WasOffered(cardID uuid.UUID) bool {
	for _, id := range s.OfferedCardIDs {
		if id == cardID {
			return true
		}
	}
	return false
}
