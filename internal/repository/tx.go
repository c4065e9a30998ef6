package repository

import (
	"context"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// Tx defines the interface for transactional operations. Capture wraps the
// pity transition, the collection insert and the session update in one
// transaction so a mid-operation failure cannot apply the pity change
// without recording the card (or vice versa).
type Tx interface {
	UpsertPityState(ctx context.Context, state *domain.PityState) error
	AddCollectionEntry(ctx context.Context, entry *domain.CollectionEntry) error
	UpdateSession(ctx context.Context, session *domain.GameSession) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
