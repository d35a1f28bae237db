package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func measure(m prometheus.Observer) func() {
	start := time.Now()
	return func() {
		dt := time.Since(start)
		m.Observe(dt.Seconds())
	}
}

var (
	cntRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tiger_requests",
		Help: "The total number of hash requests",
	}, []string{"algo"})
	cntBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tiger_bytes",
		Help: "The total number of hashed bytes",
	}, []string{"algo"})
	cntErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tiger_errors",
		Help: "The total number of failed hash requests",
	})

	durHash = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "tiger_hash_seconds",
		Help: "The time to hash a request body",
	}, []string{"algo"})
)
