package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteSyncTotal counts remote mirror attempts by entity, operation and outcome.
	RemoteSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathlab_remote_sync_total",
		Help: "Remote backend writes by entity, operation and outcome.",
	}, []string{"entity", "op", "outcome"})

	// BookingsTotal counts confirmed wizard runs.
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathlab_bookings_total",
		Help: "Booking confirmations by outcome.",
	}, []string{"outcome"})

	// RecommendationsTotal counts AI recommendation calls by outcome.
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathlab_ai_recommendations_total",
		Help: "AI recommendation requests by outcome.",
	}, []string{"outcome"})
)
