package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Metrics holds the collectors shared by the seedbed components.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Operations    *prometheus.CounterVec
	ArtifactBytes *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// Passing nil uses a fresh private registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seedbed_operations_total",
				Help: "Total number of persistence and scaffolding operations by outcome",
			},
			[]string{"component", "op", "outcome"},
		),
		ArtifactBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seedbed_artifact_bytes",
				Help:    "Size of artifacts written or read",
				Buckets: prometheus.ExponentialBuckets(256, 4, 10),
			},
			[]string{"op"},
		),
	}
	for _, c := range []prometheus.Collector{m.Operations, m.ArtifactBytes} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Observe records the outcome of one operation.
func (m *Metrics) Observe(component, op, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(component, op, outcome).Inc()
}

// ObserveResult records OutcomeOK when err is nil and OutcomeError otherwise.
func (m *Metrics) ObserveResult(component, op string, err error) {
	if err != nil {
		m.Observe(component, op, OutcomeError)
		return
	}
	m.Observe(component, op, OutcomeOK)
}

// ObserveBytes records the size of an artifact payload.
func (m *Metrics) ObserveBytes(op string, n int) {
	if m == nil {
		return
	}
	m.ArtifactBytes.WithLabelValues(op).Observe(float64(n))
}

// WriteTextfile writes every series gathered from g to path in the text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
