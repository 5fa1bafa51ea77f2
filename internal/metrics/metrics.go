package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Transitions counts lifecycle transition attempts by operation and outcome.
type Transitions struct {
	total *prometheus.CounterVec
}

func NewTransitions(reg prometheus.Registerer) *Transitions {
	t := &Transitions{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carelink",
			Subsystem: "coordination",
			Name:      "transitions_total",
			Help:      "Lifecycle transition attempts by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(t.total)
	return t
}

// Observe records one transition attempt. A nil error counts as ok,
// everything else as rejected (all failures are precondition refusals).
func (t *Transitions) Observe(operation string, err error) {
	if t == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	t.total.WithLabelValues(operation, outcome).Inc()
}

// HTTP counts served requests and observes handler latency.
type HTTP struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	h := &HTTP{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carelink",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "carelink",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP handler latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(h.requests, h.latency)
	return h
}

func (h *HTTP) Observe(method, route, status string, seconds float64) {
	if h == nil {
		return
	}
	h.requests.WithLabelValues(method, route, status).Inc()
	h.latency.WithLabelValues(method, route).Observe(seconds)
}
