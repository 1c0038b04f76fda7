package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks settlement volume and milestone releases.
type Metrics struct {
	Investments       *prometheus.CounterVec
	InvestedLamports  prometheus.Counter
	PlatformFees      prometheus.Counter
	MilestonesReached *prometheus.CounterVec
	ReleasedLamports  prometheus.Counter
	OperationDuration *prometheus.HistogramVec
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Investments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hubrwa_investments_total",
			Help: "Investment attempts by outcome (settled or the error code that aborted them)",
		}, []string{"outcome"}),
		InvestedLamports: f.NewCounter(prometheus.CounterOpts{
			Name: "hubrwa_invested_lamports_total",
			Help: "Gross lamports settled into investment vaults",
		}),
		PlatformFees: f.NewCounter(prometheus.CounterOpts{
			Name: "hubrwa_platform_fees_lamports_total",
			Help: "Lamports paid to the platform treasury",
		}),
		MilestonesReached: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hubrwa_milestones_reached_total",
			Help: "Vault milestone advances by milestone",
		}, []string{"milestone"}),
		ReleasedLamports: f.NewCounter(prometheus.CounterOpts{
			Name: "hubrwa_escrow_released_lamports_total",
			Help: "Escrowed lamports released to sellers",
		}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hubrwa_settlement_operation_duration_seconds",
			Help:    "Duration of settlement operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementInvestment(outcome string) {
	if m == nil {
		return
	}
	m.Investments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddSettled(gross, platformFee uint64) {
	if m == nil {
		return
	}
	m.InvestedLamports.Add(float64(gross))
	m.PlatformFees.Add(float64(platformFee))
}

func (m *Metrics) IncrementMilestone(milestone uint8, released uint64) {
	if m == nil {
		return
	}
	m.MilestonesReached.WithLabelValues(strconv.Itoa(int(milestone))).Inc()
	m.ReleasedLamports.Add(float64(released))
}

// ObserveOperation records the duration of operation since start.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
