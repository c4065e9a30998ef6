package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Catalog errors
	ErrMsgPokemonNotFound = "pokemon not found"
	ErrMsgBiomeNotFound   = "biome not found"
	ErrMsgCardNotFound    = "card not found"

	// Selection errors
	ErrMsgDataIntegrity = "no cards exist for required pokemon"
	ErrMsgPoolExhausted = "no eligible candidates in pool"

	// Session errors
	ErrMsgSessionNotFound      = "session not found"
	ErrMsgSessionCompleted     = "session already completed"
	ErrMsgSessionNotTerminal   = "session is not terminal"
	ErrMsgRewardAlreadyClaimed = "reward already claimed"
	ErrMsgCardNotOffered       = "card was not offered for this session"

	// Validation errors
	ErrMsgInvalidTimeOfDay = "invalid time of day"
	ErrMsgInvalidTier      = "tier out of range"
	ErrMsgUnknownRarity    = "unknown rarity"
	ErrMsgInvalidInput     = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Catalog errors
	ErrPokemonNotFound = errors.New(ErrMsgPokemonNotFound)
	ErrBiomeNotFound   = errors.New(ErrMsgBiomeNotFound)
	ErrCardNotFound    = errors.New(ErrMsgCardNotFound)

	// Selection errors. DataIntegrity means even the last fallback found no
	// card for a required Pokémon; PoolExhausted means a tier or biome has
	// zero eligible items. Both are fatal to the requested operation and
	// recoverable only by catalog correction.
	ErrDataIntegrity = errors.New(ErrMsgDataIntegrity)
	ErrPoolExhausted = errors.New(ErrMsgPoolExhausted)

	// Session errors
	ErrSessionNotFound      = errors.New(ErrMsgSessionNotFound)
	ErrSessionCompleted     = errors.New(ErrMsgSessionCompleted)
	ErrSessionNotTerminal   = errors.New(ErrMsgSessionNotTerminal)
	ErrRewardAlreadyClaimed = errors.New(ErrMsgRewardAlreadyClaimed)
	ErrCardNotOffered       = errors.New(ErrMsgCardNotOffered)

	// Validation errors
	ErrInvalidTimeOfDay = errors.New(ErrMsgInvalidTimeOfDay)
	ErrInvalidTier      = errors.New(ErrMsgInvalidTier)
	ErrUnknownRarity    = errors.New(ErrMsgUnknownRarity)
	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
