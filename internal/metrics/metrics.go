package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentify",
			Name:      "bookings_created_total",
			Help:      "Count of bookings accepted.",
		},
	)

	bookingConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentify",
			Name:      "bookings_conflict_total",
			Help:      "Count of booking requests rejected because the dates overlap or the listing was locked.",
		},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentify",
			Name:      "auth_logins_total",
			Help:      "Count of login attempts by result.",
		},
		[]string{"result"},
	)

	registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentify",
			Name:      "registrations_total",
			Help:      "Count of users registered.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflict, logins, registrations)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingConflict() {
	bookingConflict.Inc()
}

// IncLogin records a login attempt; result is one of success, unknown_user, bad_password.
func IncLogin(result string) {
	logins.WithLabelValues(result).Inc()
}

func IncRegistration() {
	registrations.Inc()
}
