package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Outcome labels for thunk settlements.
const (
	OutcomeFulfilled = "fulfilled"
	OutcomeRejected  = "rejected"
)

// Metrics holds all Prometheus metrics for the client
type Metrics struct {
	registry *prometheus.Registry

	// Store metrics
	ActionsTotal *prometheus.CounterVec
	ThunksTotal  *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the metrics on a private registry so that several instances
// (one per test) never collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogfront_actions_total",
				Help: "Total number of actions dispatched to the store",
			},
			[]string{"action"},
		),
		ThunksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogfront_thunks_total",
				Help: "Total number of settled async actions",
			},
			[]string{"op", "outcome"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blogfront_http_request_duration_seconds",
				Help:    "API request latency in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "status"},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAction counts one dispatched action.
func (m *Metrics) ObserveAction(actionType string) {
	m.ActionsTotal.WithLabelValues(actionType).Inc()
}

// ObserveThunk counts one settled lifecycle.
func (m *Metrics) ObserveThunk(op string, err error) {
	outcome := OutcomeFulfilled
	if err != nil {
		outcome = OutcomeRejected
	}
	m.ThunksTotal.WithLabelValues(op, outcome).Inc()
}

// ObserveHTTP records one completed request. It matches the HTTP client's
// response observer signature.
func (m *Metrics) ObserveHTTP(method string, status int, elapsed time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// WriteText dumps every metric in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
