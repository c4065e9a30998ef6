package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Game Metrics
var (
	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
		[]string{LabelBiome},
	)

	SessionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsCompleted,
			Help: HelpTextSessionsCompleted,
		},
		[]string{LabelTier, LabelWon},
	)

	GuessesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGuessesSubmitted,
			Help: HelpTextGuessesSubmitted,
		},
	)

	CardsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsCaptured,
			Help: HelpTextCardsCaptured,
		},
		[]string{LabelRarity},
	)

	OffersGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOffersGenerated,
			Help: HelpTextOffersGenerated,
		},
		[]string{LabelTier},
	)

	PityHardTriggers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePityHardTriggers,
			Help: HelpTextPityHardTriggers,
		},
	)

	TierBoosts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTierBoosts,
			Help: HelpTextTierBoosts,
		},
	)

	SpawnFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpawnFallbacks,
			Help: HelpTextSpawnFallbacks,
		},
		[]string{LabelBiome},
	)
)
