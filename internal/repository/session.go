package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// Session defines the interface for game session persistence.
type Session interface {
	CreateSession(ctx context.Context, session *domain.GameSession) error
	GetSessionByID(ctx context.Context, id uuid.UUID) (*domain.GameSession, error)
	UpdateSession(ctx context.Context, session *domain.GameSession) error
	ListSessionsByUser(ctx context.Context, userID string, limit int) ([]domain.GameSession, error)
}
