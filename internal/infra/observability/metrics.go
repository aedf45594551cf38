package observability

import (
	"errors"
	"time"

	"course-enrollment/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "enrollment"

// SettlementMetrics exports settlement outcomes to Prometheus. A nil receiver
// is a no-op.
type SettlementMetrics struct {
	duration     *prometheus.HistogramVec
	stepFailures *prometheus.CounterVec
	reconciled   *prometheus.CounterVec
}

func NewSettlementMetrics(reg prometheus.Registerer) (*SettlementMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &SettlementMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_duration_seconds",
			Help:      "Latency of settlement requests by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		stepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_step_failures_total",
			Help:      "Failed settlement steps and the recovery policy applied.",
		}, []string{"step", "policy"}),
		reconciled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_reconciled_total",
			Help:      "Stale settlements handled by the reconciler by outcome.",
		}, []string{"outcome"}),
	}

	var err error
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.stepFailures, err = register(reg, m.stepFailures); err != nil {
		return nil, err
	}
	if m.reconciled, err = register(reg, m.reconciled); err != nil {
		return nil, err
	}
	return m, nil
}

// register returns the collector already registered under the same
// descriptor, so constructing the metrics twice against one registry works.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *SettlementMetrics) ObserveSettlement(outcome shared.SettlementOutcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}

func (m *SettlementMetrics) IncStepFailure(step, policy string) {
	if m == nil {
		return
	}
	m.stepFailures.WithLabelValues(step, policy).Inc()
}

func (m *SettlementMetrics) IncReconciled(outcome shared.SettlementOutcome) {
	if m == nil {
		return
	}
	m.reconciled.WithLabelValues(string(outcome)).Inc()
}

var _ shared.SettlementMetrics = (*SettlementMetrics)(nil)
