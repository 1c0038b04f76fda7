package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks credential lifecycle outcomes and the verify read path.
type Metrics struct {
	CredentialsIssued    prometheus.Counter
	CredentialsRevoked   *prometheus.CounterVec
	CredentialsRefreshed prometheus.Counter
	Verifications        *prometheus.CounterVec
	CacheLookups         *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
}

// New creates a new Metrics instance with all credential metrics registered.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics on reg. Tests pass a fresh registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CredentialsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "hubrwa_credentials_issued_total",
			Help: "Total number of credentials issued",
		}),
		CredentialsRevoked: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hubrwa_credentials_revoked_total",
			Help: "Total number of credentials revoked, by caller role",
		}, []string{"caller_role"}),
		CredentialsRefreshed: f.NewCounter(prometheus.CounterOpts{
			Name: "hubrwa_credentials_refreshed_total",
			Help: "Total number of credentials refreshed",
		}),
		Verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hubrwa_credential_verifications_total",
			Help: "Credential verifications by outcome (valid, expired, not_active, not_found)",
		}, []string{"outcome"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hubrwa_credential_cache_lookups_total",
			Help: "Credential cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hubrwa_credential_operation_duration_seconds",
			Help:    "Duration of credential operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementIssued() {
	if m == nil {
		return
	}
	m.CredentialsIssued.Inc()
}

func (m *Metrics) IncrementRevoked(callerRole string) {
	if m == nil {
		return
	}
	m.CredentialsRevoked.WithLabelValues(callerRole).Inc()
}

func (m *Metrics) IncrementRefreshed() {
	if m == nil {
		return
	}
	m.CredentialsRefreshed.Inc()
}

func (m *Metrics) IncrementVerification(outcome string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveOperation records the duration of operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
