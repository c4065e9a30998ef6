package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidSessionID  = "Invalid session ID"
	ErrMsgInvalidCardID     = "Invalid card ID"

	// Game operation error messages
	ErrMsgStartSessionFailed  = "Failed to start session"
	ErrMsgSubmitGuessFailed   = "Failed to submit guess"
	ErrMsgGetSessionFailed    = "Failed to retrieve session"
	ErrMsgRewardFailed        = "Failed to generate reward offer"
	ErrMsgCaptureFailed       = "Failed to capture card"
	ErrMsgGetCollectionFailed = "Failed to retrieve collection"
	ErrMsgGetBiomesFailed     = "Failed to retrieve biomes"
	ErrMsgGetPityFailed       = "Failed to retrieve pity state"
	ErrMsgResetPityFailed     = "Failed to reset pity state"
)

// Success messages for API responses
const (
	MsgPityResetSuccess = "Pity state reset successfully"
)
