package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

type sessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL game-session repository
func NewSessionRepository(db *pgxpool.Pool) repository.Session {
	return &sessionRepository{db: db}
}

const sessionColumns = `session_id, user_id, biome_id, time_of_day, answer_dex_number, guesses, completed, won, guesses_used, tier, offered_card_ids, pity_applied, captured_card_id, created_at, completed_at`

func (r *sessionRepository) CreateSession(ctx context.Context, session *domain.GameSession) error {
	guesses, err := json.Marshal(session.Guesses)
	if err != nil {
		return fmt.Errorf("marshal guesses: %w", err)
	}
	pityApplied, err := marshalPityApplied(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO game_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = r.db.Exec(ctx, query,
		session.ID, session.UserID, session.BiomeID, session.TimeOfDay,
		session.AnswerPokemonID, guesses, session.Completed, session.Won,
		session.GuessesUsed, session.Tier, session.OfferedCardIDs, pityApplied,
		session.CapturedCardID, session.CreatedAt, session.CompletedAt)
	if err != nil {
		return fmt.Errorf("%w: insert session: %w", domain.ErrDatabaseError, err)
	}
	return nil
}

// marshalPityApplied keeps the column NULL until an offer has been generated.
func marshalPityApplied(session *domain.GameSession) ([]byte, error) {
	if session.PityApplied == nil {
		return nil, nil
	}
	data, err := json.Marshal(session.PityApplied)
	if err != nil {
		return nil, fmt.Errorf("marshal pity applied: %w", err)
	}
	return data, nil
}

type pgxExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func updateSession(ctx context.Context, exec pgxExecutor, session *domain.GameSession) error {
	guesses, err := json.Marshal(session.Guesses)
	if err != nil {
		return fmt.Errorf("marshal guesses: %w", err)
	}

	pityApplied, err := marshalPityApplied(session)
	if err != nil {
		return err
	}

	query := `
		UPDATE game_sessions SET
			guesses = $2,
			completed = $3,
			won = $4,
			guesses_used = $5,
			tier = $6,
			offered_card_ids = $7,
			pity_applied = $8,
			captured_card_id = $9,
			completed_at = $10
		WHERE session_id = $1
	`
	tag, err := exec.Exec(ctx, query,
		session.ID, guesses, session.Completed, session.Won, session.GuessesUsed,
		session.Tier, session.OfferedCardIDs, pityApplied, session.CapturedCardID,
		session.CompletedAt)
	if err != nil {
		return fmt.Errorf("%w: update session: %w", domain.ErrDatabaseError, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) UpdateSession(ctx context.Context, session *domain.GameSession) error {
	return updateSession(ctx, r.db, session)
}

func scanSession(row pgx.Row) (*domain.GameSession, error) {
	var s domain.GameSession
	var guesses, pityApplied []byte
	err := row.Scan(&s.ID, &s.UserID, &s.BiomeID, &s.TimeOfDay, &s.AnswerPokemonID,
		&guesses, &s.Completed, &s.Won, &s.GuessesUsed, &s.Tier,
		&s.OfferedCardIDs, &pityApplied, &s.CapturedCardID, &s.CreatedAt, &s.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	if len(guesses) > 0 {
		if err := json.Unmarshal(guesses, &s.Guesses); err != nil {
			return nil, fmt.Errorf("unmarshal guesses: %w", err)
		}
	}
	if len(pityApplied) > 0 {
		if err := json.Unmarshal(pityApplied, &s.PityApplied); err != nil {
			return nil, fmt.Errorf("unmarshal pity applied: %w", err)
		}
	}
	return &s, nil
}

func (r *sessionRepository) GetSessionByID(ctx context.Context, id uuid.UUID) (*domain.GameSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM game_sessions WHERE session_id = $1`
	return scanSession(r.db.QueryRow(ctx, query, id))
}

func (r *sessionRepository) ListSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.GameSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM game_sessions WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []domain.GameSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
