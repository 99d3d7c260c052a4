// Package metrics exposes Prometheus instrumentation for billable actions,
// plan synchronization and token resets.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "creatorhub"

var (
	// BillableRequests counts gateway outcomes by feature.
	BillableRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Billable requests by feature and outcome.",
	}, []string{"feature", "outcome"})

	TokensDebited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "tokens_debited_total",
		Help:      "Tokens deducted from balances by feature.",
	}, []string{"feature"})

	TokensRefunded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "tokens_refunded_total",
		Help:      "Tokens returned after provider failures by feature.",
	}, []string{"feature"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "upstream_duration_seconds",
		Help:      "Generation provider latency by feature.",
		Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
	}, []string{"feature"})

	// SyncOutcomes counts plan synchronizations: unchanged, changed,
	// no_customer, provider_unavailable, error.
	SyncOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "billing",
		Name:      "sync_total",
		Help:      "Plan synchronizations by outcome.",
	}, []string{"outcome"})

	PlanChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "billing",
		Name:      "plan_changes_total",
		Help:      "Plan transitions applied by synchronization.",
	}, []string{"from", "to"})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "billing",
		Name:      "webhook_events_total",
		Help:      "Billing webhook deliveries by event type and outcome.",
	}, []string{"event_type", "outcome"})

	TokenResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "monthly_resets_total",
		Help:      "Accounts whose balance was reset at a billing cycle boundary.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
