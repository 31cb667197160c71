package booking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campvibe_bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	bookingsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campvibe_bookings_rejected_total",
			Help: "Total number of bookings rejected at write time by reason",
		},
		[]string{"reason"},
	)

	availabilityLookupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campvibe_availability_lookups_total",
			Help: "Total number of daily availability lookups",
		},
	)
)
