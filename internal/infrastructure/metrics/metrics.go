package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger metrics. Registered once at init via promauto; handlers and use
// cases increment them directly.
var (
	MovementsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankcore_movements_created_total",
			Help: "Total number of movements recorded, by type",
		},
		[]string{"type"},
	)

	MovementsRevised = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bankcore_movements_revised_total",
			Help: "Total number of movements rewritten in place",
		},
	)

	MovementsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bankcore_movements_rejected_total",
			Help: "Total number of rejected movement requests, by reason",
		},
		[]string{"reason"},
	)

	MovementAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bankcore_movement_amount",
			Help:    "Movement magnitudes",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		},
	)

	AccountsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bankcore_accounts_created_total",
			Help: "Total number of accounts opened",
		},
	)

	ClientsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bankcore_clients_created_total",
			Help: "Total number of clients registered",
		},
	)

	StatementsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bankcore_statements_generated_total",
			Help: "Total number of statements generated",
		},
	)
)
