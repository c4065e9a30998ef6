package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habidex/HabiDex_Go/internal/database/postgres"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Catalog    repository.Catalog
	Spawn      repository.Spawn
	Pity       repository.Pity
	Session    repository.Session
	Collection repository.Collection
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Catalog:    postgres.NewCatalogRepository(dbPool),
		Spawn:      postgres.NewSpawnRepository(dbPool),
		Pity:       postgres.NewPityRepository(dbPool),
		Session:    postgres.NewSessionRepository(dbPool),
		Collection: postgres.NewCollectionRepository(dbPool),
	}
}
