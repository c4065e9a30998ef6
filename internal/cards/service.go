// Package cards implements reward offer generation: one guaranteed card for
// the answer Pokémon plus two weighted-random cards, all at the tier earned
// by the finished game, with pity modifiers folded into the draw.
package cards

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/logger"
	"github.com/habidex/HabiDex_Go/internal/random"
	"github.com/habidex/HabiDex_Go/internal/rarity"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

// OfferSize is the number of cards in every reward offer. Index 0 is always
// the guaranteed card for the answer Pokémon.
const OfferSize = 3

// Service defines the card selection interface.
type Service interface {
	// GenerateOffers returns exactly OfferSize cards for a finished game.
	// Distinctness is best effort: an exhausted catalog may duplicate the
	// guaranteed card rather than fail.
	GenerateOffers(ctx context.Context, tier, guaranteedPokemonID int, mods domain.PityModifiers) ([]domain.Card, error)
}

type service struct {
	repo repository.Catalog
	rnd  random.Source
}

// NewService creates a new card selection service.
func NewService(repo repository.Catalog, rnd random.Source) Service {
	return &service{repo: repo, rnd: rnd}
}

func (s *service) GenerateOffers(ctx context.Context, tier, guaranteedPokemonID int, mods domain.PityModifiers) ([]domain.Card, error) {
	log := logger.FromContext(ctx)

	effectiveTier := rarity.ClampTier(tier)
	if mods.TierBoost {
		effectiveTier = rarity.ClampTier(effectiveTier - 1)
		log.Info("Tier boost applied", "tier", tier, "effective_tier", effectiveTier)
	}

	guaranteed, err := s.selectGuaranteed(ctx, guaranteedPokemonID, effectiveTier)
	if err != nil {
		return nil, err
	}

	offers := make([]domain.Card, 0, OfferSize)
	offers = append(offers, guaranteed)
	exclude := map[uuid.UUID]bool{guaranteed.ID: true}

	for len(offers) < OfferSize {
		card, err := s.selectRandom(ctx, effectiveTier, mods, exclude)
		if err != nil {
			// Last resort: any card in the catalog, then duplication of the
			// guaranteed card. Degrades rarity guarantees but preserves the
			// three-card contract.
			card, err = s.selectAnyCard(ctx, exclude)
			if err != nil {
				log.Warn("Catalog exhausted, duplicating guaranteed card",
					"tier", effectiveTier, "pokemon_id", guaranteedPokemonID)
				card = guaranteed
			}
		}
		offers = append(offers, card)
		exclude[card.ID] = true
	}

	return offers, nil
}

// selectGuaranteed picks a card for the answer Pokémon via a layered
// fallback: exact effective tier, then adjacent tiers, then any tier. Each
// step only runs when the prior one found nothing.
func (s *service) selectGuaranteed(ctx context.Context, pokemonID, effectiveTier int) (domain.Card, error) {
	candidates, err := s.repo.GetCardsByPokemonAndTiers(ctx, pokemonID, []int{effectiveTier})
	if err != nil {
		return domain.Card{}, fmt.Errorf("guaranteed card lookup: %w", err)
	}

	if len(candidates) == 0 {
		adjacent := adjacentTiers(effectiveTier)
		candidates, err = s.repo.GetCardsByPokemonAndTiers(ctx, pokemonID, adjacent)
		if err != nil {
			return domain.Card{}, fmt.Errorf("guaranteed card lookup: %w", err)
		}
	}

	if len(candidates) == 0 {
		candidates, err = s.repo.GetCardsByPokemon(ctx, pokemonID)
		if err != nil {
			return domain.Card{}, fmt.Errorf("guaranteed card lookup: %w", err)
		}
	}

	if len(candidates) == 0 {
		// Every playable Pokémon must have at least one card; reaching this
		// point means the catalog is broken, not that the draw was unlucky.
		return domain.Card{}, fmt.Errorf("%w: pokemon %d", domain.ErrDataIntegrity, pokemonID)
	}

	return pickWeighted(candidates, 1.0, s.rnd), nil
}

// selectRandom picks one non-guaranteed card at the effective tier. Under
// hard pity it first restricts the pool to ceiling cards.
func (s *service) selectRandom(ctx context.Context, effectiveTier int, mods domain.PityModifiers, exclude map[uuid.UUID]bool) (domain.Card, error) {
	if mods.GuaranteeCeiling {
		pool, err := s.repo.GetCeilingCardsByTier(ctx, effectiveTier)
		if err != nil {
			return domain.Card{}, fmt.Errorf("ceiling pool lookup: %w", err)
		}
		if pool = withoutExcluded(pool, exclude); len(pool) > 0 {
			return pickWeighted(pool, mods.CeilingWeightMultiplier, s.rnd), nil
		}
		// Fall through to the full tier pool when every ceiling card is
		// already taken.
	}

	pool, err := s.repo.GetCardsByTier(ctx, effectiveTier)
	if err != nil {
		return domain.Card{}, fmt.Errorf("tier pool lookup: %w", err)
	}
	if pool = withoutExcluded(pool, exclude); len(pool) == 0 {
		return domain.Card{}, fmt.Errorf("%w: tier %d", domain.ErrPoolExhausted, effectiveTier)
	}

	return pickWeighted(pool, mods.CeilingWeightMultiplier, s.rnd), nil
}

func (s *service) selectAnyCard(ctx context.Context, exclude map[uuid.UUID]bool) (domain.Card, error) {
	pool, err := s.repo.ListCards(ctx)
	if err != nil {
		return domain.Card{}, fmt.Errorf("catalog lookup: %w", err)
	}
	if pool = withoutExcluded(pool, exclude); len(pool) == 0 {
		return domain.Card{}, domain.ErrPoolExhausted
	}
	return pickWeighted(pool, 1.0, s.rnd), nil
}

// adjacentTiers returns the tiers one step either side of t, clamped to the
// valid range and deduplicated at the edges.
func adjacentTiers(t int) []int {
	var tiers []int
	if t-1 >= rarity.MinTier {
		tiers = append(tiers, t-1)
	}
	if t+1 <= rarity.MaxTier {
		tiers = append(tiers, t+1)
	}
	return tiers
}

func withoutExcluded(pool []domain.Card, exclude map[uuid.UUID]bool) []domain.Card {
	out := pool[:0:0]
	for _, c := range pool {
		if !exclude[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
