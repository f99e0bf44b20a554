// Package metrics exposes Prometheus instrumentation for the booking flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devevent_events_created_total",
		Help: "Total number of events created.",
	})

	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devevent_bookings_created_total",
		Help: "Total number of bookings created.",
	})

	bookingsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devevent_bookings_rejected_total",
		Help: "Total number of booking attempts rejected before write.",
	}, []string{"reason"})
)

// Rejection reasons for RecordBookingRejected.
const (
	ReasonValidation   = "validation"
	ReasonMissingEvent = "missing_event"
)

// RecordEventCreated increments the created-events counter.
func RecordEventCreated() {
	eventsCreated.Inc()
}

// RecordBookingCreated increments the created-bookings counter.
func RecordBookingCreated() {
	bookingsCreated.Inc()
}

// RecordBookingRejected increments the rejected-bookings counter for reason.
func RecordBookingRejected(reason string) {
	bookingsRejected.WithLabelValues(reason).Inc()
}
