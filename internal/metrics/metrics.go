package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	OutcomeDropped  = "dropped"
)

var (
	slotTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_transitions_total",
			Help: "Slot state machine operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	slotLockWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slot_lock_wait_seconds",
			Help:    "Time spent acquiring the slot row lock",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"operation"},
	)

	slotsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slots_generated_total",
			Help: "Slots created by catalog generation",
		},
	)

	holdsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "holds_expired_total",
			Help: "Held slots returned to available by the reaper",
		},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_notifications_total",
			Help: "Booking confirmation notifications by outcome",
		},
		[]string{"outcome"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "availability_cache_lookups_total",
			Help: "Availability cache lookups by result",
		},
		[]string{"result"},
	)
)

func ObserveTransition(operation, outcome string) {
	slotTransitions.WithLabelValues(operation, outcome).Inc()
}

func ObserveLockWait(operation string, d time.Duration) {
	slotLockWait.WithLabelValues(operation).Observe(d.Seconds())
}

func AddSlotsGenerated(n int) {
	slotsGenerated.Add(float64(n))
}

func AddHoldsExpired(n int) {
	holdsExpired.Add(float64(n))
}

func ObserveNotification(outcome string) {
	notifications.WithLabelValues(outcome).Inc()
}

func ObserveCache(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}
