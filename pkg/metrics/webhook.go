package metrics

import "github.com/prometheus/client_golang/prometheus"

// Webhook outcomes used as label values.
const (
	WebhookOutcomeProcessed = "processed"
	WebhookOutcomeDuplicate = "duplicate"
	WebhookOutcomeIgnored   = "ignored"
	WebhookOutcomeRejected  = "rejected"
	WebhookOutcomeFailed    = "failed"
	// WebhookOutcomeSkipped marks verified events dropped on purpose, such
	// as subscriptions carrying no user_id metadata.
	WebhookOutcomeSkipped = "skipped"
)

// WebhookEventsTotal counts received Stripe webhook events by type and outcome.
var WebhookEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "sealog",
		Subsystem: "webhook",
		Name:      "events_total",
		Help:      "Total number of Stripe webhook events received",
	},
	[]string{"event_type", "outcome"},
)

func init() {
	Registry.MustRegister(WebhookEventsTotal)
}
