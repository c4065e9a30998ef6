package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

type collectionRepository struct {
	db *pgxpool.Pool
}

// NewCollectionRepository creates a new PostgreSQL collection repository
func NewCollectionRepository(db *pgxpool.Pool) repository.Collection {
	return &collectionRepository{db: db}
}

const insertCollectionQuery = `
	INSERT INTO collection_entries (user_id, card_id, session_id, captured_at)
	VALUES ($1, $2, $3, $4)
`

func (r *collectionRepository) AddCollectionEntry(ctx context.Context, entry *domain.CollectionEntry) error {
	_, err := r.db.Exec(ctx, insertCollectionQuery,
		entry.UserID, entry.CardID, entry.SessionID, entry.CapturedAt)
	if err != nil {
		return fmt.Errorf("%w: insert collection entry: %w", domain.ErrDatabaseError, err)
	}
	return nil
}

func (r *collectionRepository) ListCollectionByUser(ctx context.Context, userID string) ([]domain.CollectionEntry, error) {
	query := `
		SELECT user_id, card_id, session_id, captured_at
		FROM collection_entries
		WHERE user_id = $1
		ORDER BY captured_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []domain.CollectionEntry
	for rows.Next() {
		var e domain.CollectionEntry
		if err := rows.Scan(&e.UserID, &e.CardID, &e.SessionID, &e.CapturedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
