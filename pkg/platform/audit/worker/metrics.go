package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks outbox relay throughput and broker health.
type Metrics struct {
	Relayed      prometheus.Counter
	Failures     prometheus.Counter
	Paused       prometheus.Counter
	BreakerState prometheus.Gauge
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Relayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "hubrwa_outbox_relayed_events_total",
			Help: "Ledger events published from the outbox",
		}),
		Failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "hubrwa_outbox_relay_failures_total",
			Help: "Relay attempts that failed to publish a batch",
		}),
		Paused: factory.NewCounter(prometheus.CounterOpts{
			Name: "hubrwa_outbox_relay_paused_total",
			Help: "Relay ticks skipped because the circuit breaker was open",
		}),
		BreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hubrwa_outbox_relay_breaker_open",
			Help: "1 while the relay circuit breaker is open",
		}),
	}
}

func (m *Metrics) addRelayed(n int) {
	if m == nil || n == 0 {
		return
	}
	m.Relayed.Add(float64(n))
}

func (m *Metrics) incFailure() {
	if m == nil {
		return
	}
	m.Failures.Inc()
}

func (m *Metrics) incPaused() {
	if m == nil {
		return
	}
	m.Paused.Inc()
}

func (m *Metrics) setOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerState.Set(1)
		return
	}
	m.BreakerState.Set(0)
}
