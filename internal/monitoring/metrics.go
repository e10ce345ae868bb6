package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_transactions_created_total",
			Help: "Transactions created, by initial status",
		},
		[]string{"status"},
	)

	transactionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_transaction_transitions_total",
			Help: "Transaction status transitions, by target status",
		},
		[]string{"to_status"},
	)

	notificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_notification_failures_total",
			Help: "Notification dispatches that failed and were swallowed",
		},
		[]string{"kind"},
	)

	mediaCompensations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_media_compensating_deletes_total",
			Help: "Uploads removed after a failed database write",
		},
	)
)

func TransactionCreated(status string) {
	transactionsCreated.WithLabelValues(status).Inc()
}

func TransactionTransition(toStatus string) {
	transactionTransitions.WithLabelValues(toStatus).Inc()
}

func NotificationFailure(kind string) {
	notificationFailures.WithLabelValues(kind).Inc()
}

func MediaCompensation() {
	mediaCompensations.Inc()
}
