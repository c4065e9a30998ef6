package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Game metric names
const (
	MetricNameSessionsStarted   = "game_sessions_started_total"
	MetricNameSessionsCompleted = "game_sessions_completed_total"
	MetricNameGuessesSubmitted  = "game_guesses_submitted_total"
	MetricNameCardsCaptured     = "cards_captured_total"
	MetricNameOffersGenerated   = "card_offers_generated_total"
	MetricNamePityHardTriggers  = "pity_hard_triggers_total"
	MetricNameTierBoosts        = "pity_tier_boosts_total"
	MetricNameSpawnFallbacks    = "spawn_biome_fallbacks_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Game metric help text
const (
	HelpTextSessionsStarted   = "Total number of game sessions started"
	HelpTextSessionsCompleted = "Total number of game sessions completed"
	HelpTextGuessesSubmitted  = "Total number of guesses submitted"
	HelpTextCardsCaptured     = "Total number of cards captured"
	HelpTextOffersGenerated   = "Total number of reward offers generated"
	HelpTextPityHardTriggers  = "Total number of offers generated under hard pity"
	HelpTextTierBoosts        = "Total number of tier boosts applied"
	HelpTextSpawnFallbacks    = "Total number of biome-wide spawn fallbacks taken"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelBiome  = "biome"
	LabelTier   = "tier"
	LabelWon    = "won"
	LabelRarity = "rarity"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
