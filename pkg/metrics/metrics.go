// Package metrics defines the Prometheus collectors exposed on the debug
// server's metrics endpoint. All collectors are registered on the default
// registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets is a common set of latency histogram buckets in seconds
// shared by all upstream-call histograms.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// UpdatesReceived counts Telegram updates by message kind
	// (command, text, photo, document, other).
	UpdatesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "essaybot_updates_received_total",
		Help: "Telegram updates received, by message kind.",
	}, []string{"kind"})

	// UpdatesRejected counts updates dropped by the user allowlist.
	UpdatesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "essaybot_updates_rejected_total",
		Help: "Telegram updates dropped because the sender is not allowlisted.",
	})

	// Publishes counts publish attempts by kind (essay, document, image) and
	// outcome (ok, error).
	Publishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "essaybot_publishes_total",
		Help: "Publish attempts, by kind and outcome.",
	}, []string{"kind", "outcome"})

	// GitHubRequestDuration observes GitHub API call latency by operation.
	GitHubRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "essaybot_github_request_duration_seconds",
		Help:    "GitHub API request latency, by operation.",
		Buckets: DefaultBuckets,
	}, []string{"operation"})

	// TelegramRequestDuration observes Telegram Bot API call latency by method.
	TelegramRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "essaybot_telegram_request_duration_seconds",
		Help:    "Telegram Bot API request latency, by method.",
		Buckets: DefaultBuckets,
	}, []string{"method"})
)
