package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habidex/HabiDex_Go/internal/database"
	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

type pityRepository struct {
	db *pgxpool.Pool
}

// NewPityRepository creates a new PostgreSQL pity-state repository
func NewPityRepository(db *pgxpool.Pool) repository.Pity {
	return &pityRepository{db: db}
}

const pityColumns = `user_id, consecutive_tier6, consecutive_tier5, games_without_ceiling, hard_pity_counter, total_games, last_ceiling_pull, updated_at`

func scanPityState(row pgx.Row) (*domain.PityState, error) {
	var s domain.PityState
	err := row.Scan(&s.UserID, &s.ConsecutiveTier6, &s.ConsecutiveTier5,
		&s.GamesWithoutCeiling, &s.HardPityCounter, &s.TotalGames,
		&s.LastCeilingPull, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	return &s, nil
}

func (r *pityRepository) GetPityState(ctx context.Context, userID string) (*domain.PityState, error) {
	query := `SELECT ` + pityColumns + ` FROM pity_states WHERE user_id = $1`
	return scanPityState(r.db.QueryRow(ctx, query, userID))
}

const upsertPityQuery = `
	INSERT INTO pity_states (user_id, consecutive_tier6, consecutive_tier5, games_without_ceiling, hard_pity_counter, total_games, last_ceiling_pull, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	ON CONFLICT (user_id) DO UPDATE SET
		consecutive_tier6 = EXCLUDED.consecutive_tier6,
		consecutive_tier5 = EXCLUDED.consecutive_tier5,
		games_without_ceiling = EXCLUDED.games_without_ceiling,
		hard_pity_counter = EXCLUDED.hard_pity_counter,
		total_games = EXCLUDED.total_games,
		last_ceiling_pull = EXCLUDED.last_ceiling_pull,
		updated_at = now()
`

func (r *pityRepository) UpsertPityState(ctx context.Context, state *domain.PityState) error {
	_, err := r.db.Exec(ctx, upsertPityQuery, state.UserID, state.ConsecutiveTier6,
		state.ConsecutiveTier5, state.GamesWithoutCeiling, state.HardPityCounter,
		state.TotalGames, state.LastCeilingPull)
	if err != nil {
		return fmt.Errorf("%w: upsert pity state: %w", domain.ErrDatabaseError, err)
	}
	return nil
}

func (r *pityRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToBeginTransaction, err)
	}
	return &captureTx{tx: tx}, nil
}

// captureTx implements repository.Tx over one pgx transaction.
type captureTx struct {
	tx pgx.Tx
}

func (t *captureTx) UpsertPityState(ctx context.Context, state *domain.PityState) error {
	_, err := t.tx.Exec(ctx, upsertPityQuery, state.UserID, state.ConsecutiveTier6,
		state.ConsecutiveTier5, state.GamesWithoutCeiling, state.HardPityCounter,
		state.TotalGames, state.LastCeilingPull)
	if err != nil {
		return fmt.Errorf("%w: upsert pity state: %w", domain.ErrDatabaseError, err)
	}
	return nil
}

func (t *captureTx) AddCollectionEntry(ctx context.Context, entry *domain.CollectionEntry) error {
	_, err := t.tx.Exec(ctx, insertCollectionQuery,
		entry.UserID, entry.CardID, entry.SessionID, entry.CapturedAt)
	if err != nil {
		return fmt.Errorf("%w: insert collection entry: %w", domain.ErrDatabaseError, err)
	}
	return nil
}

func (t *captureTx) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	return updateSession(ctx, t.tx, session)
}

func (t *captureTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *captureTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return errors.New(domain.ErrMsgTxClosed)
		}
		return err
	}
	return nil
}
