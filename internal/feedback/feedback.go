// Package feedback implements the per-attribute comparison of a guessed
// Pokémon against the session's answer. All functions are pure; session
// bookkeeping lives in the game service.
package feedback

import "github.com/habidex/HabiDex_Go/internal/domain"

// Compare produces the six independent verdicts for one guess. The two type
// slots use position-aware set comparison; the remaining four attributes are
// strict equality.
func Compare(guess, answer *domain.Pokemon) domain.Feedback {
	return domain.Feedback{
		Type1:          compareTypeSlot(guess.Type1, answer.Type1, answer.Type2, false),
		Type2:          compareTypeSlot(guess.Type2, answer.Type2, answer.Type1, true),
		EvolutionStage: equality(guess.EvolutionStage == answer.EvolutionStage),
		FullyEvolved:   equality(guess.FullyEvolved == answer.FullyEvolved),
		Color:          equality(guess.Color == answer.Color),
		Generation:     equality(guess.Generation == answer.Generation),
	}
}

// IsWin reports whether the guess ends the game. Only identity counts: two
// distinct Pokémon sharing all six compared attributes is still not a win.
func IsWin(guess, answer *domain.Pokemon) bool {
	return guess.ID == answer.ID
}

// compareTypeSlot evaluates one type slot. answerOther is the answer's other
// slot, used for the partial (right type, wrong position) verdict. Only the
// secondary slot can yield n/a, and only when the answer is mono-typed.
func compareTypeSlot(guessType, answerType, answerOther string, secondary bool) domain.Verdict {
	if secondary && answerType == "" {
		return domain.VerdictNA
	}
	if secondary && guessType == "" {
		return domain.VerdictWrong
	}
	if guessType == answerType {
		return domain.VerdictCorrect
	}
	if answerOther != "" && guessType == answerOther {
		return domain.VerdictPartial
	}
	return domain.VerdictWrong
}

func equality(match bool) domain.Verdict {
	if match {
		return domain.VerdictCorrect
	}
	return domain.VerdictWrong
}
