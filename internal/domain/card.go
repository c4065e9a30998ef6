package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rarity is one of the 12 canonical card rarity names.
// The full table, tier eligibility and drop weights live in internal/rarity.
type Rarity string

const (
	RarityCommon          Rarity = "Common"
	RarityUncommon        Rarity = "Uncommon"
	RarityRare            Rarity = "Rare"
	RarityDoubleRare      Rarity = "Double Rare"
	RarityAceSpecRare     Rarity = "ACE SPEC Rare"
	RarityUltraRare       Rarity = "Ultra Rare"
	RarityIllustration    Rarity = "Illustration Rare"
	RarityShinyRare       Rarity = "Shiny Rare"
	RaritySpecialIllust   Rarity = "Special Illustration Rare"
	RarityShinyUltraRare  Rarity = "Shiny Ultra Rare"
	RarityHyperRare       Rarity = "Hyper Rare"
	RarityCrownRare       Rarity = "Crown Rare"
)

// Card is a collectible tied to exactly one Pokémon. A physical card fans out
// into one row per eligible tier, so (ExternalID, Tier) is unique while
// ExternalID alone is not. Rows are created at seed time and are immutable
// during gameplay.
type Card struct {
	ID            uuid.UUID `json:"card_id" db:"card_id"`
	ExternalID    string    `json:"external_id" db:"external_id"`
	PokemonID     int       `json:"dex_number" db:"dex_number"`
	Rarity        Rarity    `json:"rarity" db:"rarity"`
	Tier          int       `json:"tier" db:"tier"`
	IsFloor       bool      `json:"is_floor" db:"is_floor"`
	IsCeiling     bool      `json:"is_ceiling" db:"is_ceiling"`
	Weight        int       `json:"weight" db:"weight"`
	SmallImageURL string    `json:"small_image_url" db:"small_image_url"`
	LargeImageURL string    `json:"large_image_url" db:"large_image_url"`
}

// CollectionEntry records one captured card in a user's collection.
type CollectionEntry struct {
	UserID     string    `json:"user_id" db:"user_id"`
	CardID     uuid.UUID `json:"card_id" db:"card_id"`
	SessionID  uuid.UUID `json:"session_id" db:"session_id"`
	CapturedAt time.Time `json:"captured_at" db:"captured_at"`
}
