package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	customersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toe_customers_created_total",
			Help: "Total number of customers registered",
		},
	)

	// result is "received" or "failed"
	contactSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toe_contact_submissions_total",
			Help: "Total number of contact form submissions by outcome",
		},
		[]string{"result"},
	)
)
