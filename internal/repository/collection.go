package repository

import (
	"context"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// Collection defines the interface for the per-user captured-card log.
type Collection interface {
	AddCollectionEntry(ctx context.Context, entry *domain.CollectionEntry) error
	ListCollectionByUser(ctx context.Context, userID string) ([]domain.CollectionEntry, error)
}
