package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wmannis/lexifer/internal/soundsys"
)

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	attempts prometheus.Counter
	rejected prometheus.Counter
	words    prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lexifer_generation_requests_total",
			Help: "Generation requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lexifer_candidates_total",
			Help: "Candidate words drawn from the rules.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lexifer_candidates_rejected_total",
			Help: "Candidate words rejected by filters.",
		}),
		words: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lexifer_words_generated_total",
			Help: "Unique words returned by generation.",
		}),
	}
	m.registry.MustRegister(m.requests, m.attempts, m.rejected, m.words)
	return m
}

// observe records the difference between two stats snapshots
func (m *metrics) observe(endpoint string, now, before soundsys.Stats, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.attempts.Add(float64(now.Attempts - before.Attempts))
	m.rejected.Add(float64(now.Rejected - before.Rejected))
	m.words.Add(float64(now.Words - before.Words))
}
