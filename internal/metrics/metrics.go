package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentbot_registrations_total",
		Help: "Total number of customers successfully registered.",
	})

	RentalsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentbot_rentals_created_total",
		Help: "Total number of rentals successfully created.",
	})

	RentalsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentbot_rentals_completed_total",
		Help: "Total number of rentals successfully returned.",
	})

	ReportsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentbot_reports_generated_total",
		Help: "Total number of report requests served.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentbot_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentbot_rate_limited_total",
		Help: "Total number of chat events rejected by the rate limiter.",
	})

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentbot_outbox_published_total",
		Help: "Total number of outbox tasks delivered to Kafka.",
	})

	OutboxFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentbot_outbox_failures_total",
		Help: "Total number of failed outbox delivery attempts.",
	})

	UpdatesAuditedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentbot_updates_audited_total",
		Help: "Total number of Telegram updates handled, by outcome.",
	},
		[]string{"outcome"},
	)

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rentbot_active_sessions",
		Help: "Current number of conversations with wizard state.",
	})
)
