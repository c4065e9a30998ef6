package game

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

const (
	nameCacheSize = 512
	nameCacheTTL  = 10 * time.Minute
)

// nameResolver maps user-typed Pokémon names to catalog records. Lookups
// are case-insensitive and cached, since guess traffic hits the same few
// hundred names over and over.
type nameResolver struct {
	catalog repository.Catalog
	cache   *expirable.LRU[string, int]
	caser   cases.Caser
}

func newNameResolver(catalog repository.Catalog) *nameResolver {
	return &nameResolver{
		catalog: catalog,
		cache:   expirable.NewLRU[string, int](nameCacheSize, nil, nameCacheTTL),
		caser:   cases.Title(language.English),
	}
}

// Resolve finds the Pokémon for a guessed name, trying the typed form first
// and then a title-cased normalization ("pikachu" matches "Pikachu").
func (r *nameResolver) Resolve(ctx context.Context, name string) (*domain.Pokemon, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, domain.ErrInvalidInput
	}

	key := strings.ToLower(trimmed)
	if dexNumber, ok := r.cache.Get(key); ok {
		return r.catalog.GetPokemonByID(ctx, dexNumber)
	}

	p, err := r.catalog.GetPokemonByName(ctx, trimmed)
	if err != nil {
		p, err = r.catalog.GetPokemonByName(ctx, r.caser.String(key))
	}
	if err != nil {
		return nil, err
	}

	r.cache.Add(key, p.ID)
	return p, nil
}
