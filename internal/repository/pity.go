package repository

import (
	"context"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// Pity defines the interface for pity-state persistence. GetPityState
// returns domain.ErrUserNotFound for users with no recorded games yet;
// callers start from a zero state in that case.
type Pity interface {
	GetPityState(ctx context.Context, userID string) (*domain.PityState, error)
	UpsertPityState(ctx context.Context, state *domain.PityState) error

	BeginTx(ctx context.Context) (Tx, error)
}
