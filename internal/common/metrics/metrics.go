// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LeadsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_leads_received_total",
			Help: "Total number of lead records received",
		},
		[]string{"source"},
	)

	LeadsDuplicate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_leads_duplicate_total",
			Help: "Total number of leads discarded as duplicates",
		},
	)

	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_documents_generated_total",
			Help: "Total number of ADF documents generated",
		},
		[]string{"dialect"},
	)

	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_emails_sent_total",
			Help: "Total number of import emails delivered",
		},
		[]string{"provider"},
	)

	EmailsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_emails_failed_total",
			Help: "Total number of import email deliveries that failed",
		},
		[]string{"provider"},
	)

	WebhookDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "relay_webhook_duration_seconds",
			Help: "Duration of webhook request handling in seconds",
		},
		[]string{"status"},
	)
)
