// Package service implements the credential registry: network and issuer
// administration and the credential lifecycle (issue, verify, revoke, refresh).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hubrwa/internal/credential/metrics"
	"hubrwa/internal/credential/models"
	"hubrwa/internal/ledger"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"
	"hubrwa/pkg/platform/sentinel"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// RecordCache caches committed credential records for the read path.
// Get returns sentinel.ErrNotFound on a miss. Set must keep the cached record
// when it already holds the same or a later Revision.
type RecordCache interface {
	Get(ctx context.Context, holder domain.Address) (*models.Record, error)
	Set(ctx context.Context, record *models.Record) error
	Invalidate(ctx context.Context, holder domain.Address) error
}

// Service runs every credential operation as one ledger instruction.
type Service struct {
	ledger  ledger.Ledger
	cache   RecordCache
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	loads   singleflight.Group
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCache enables read-through caching of credential records.
func WithCache(cache RecordCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// New constructs a Service.
func New(l ledger.Ledger, opts ...Option) *Service {
	s := &Service{
		ledger: l,
		logger: slog.Default(),
		tracer: otel.Tracer("hubrwa/credential"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	ctx, span := s.tracer.Start(ctx, "credential."+op, trace.WithAttributes(attrs...))
	return ctx, span, time.Now()
}

func (s *Service) endSpan(span trace.Span, op string, start time.Time, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
	s.metrics.ObserveOperation(op, start)
}

// translate maps ledger facts and model invariants to coded domain errors.
func translate(err error, subject string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, subject+" not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.Wrap(err, dErrors.CodeConflict, subject+" already exists")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.Wrap(err, dErrors.CodeInternal, subject+" account holds unexpected data")
	case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
		return dErrors.Wrap(err, dErrors.CodeValidation, dErrors.UserMessage(err))
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("failed to process %s", subject))
}

func emit(ctx context.Context, tx ledger.Tx, action audit.Action, subject domain.Address, payload any) error {
	event, err := audit.NewEvent(action, subject.String(), "", payload)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build event")
	}
	return tx.Emit(ctx, event)
}

// storeCommitted writes a freshly committed record through to the cache. A
// load already in flight for the holder may have read the previous revision,
// so later readers must not join it.
func (s *Service) storeCommitted(ctx context.Context, record *models.Record) {
	if s.cache == nil {
		return
	}
	holder := record.Holder
	s.loads.Forget(holder.String())
	err := s.cache.Set(ctx, record)
	if err == nil {
		return
	}
	s.logger.WarnContext(ctx, "failed to cache committed credential",
		"holder", holder.String(),
		"error", err,
	)
	if err := s.cache.Invalidate(ctx, holder); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate cached credential",
			"holder", holder.String(),
			"error", err,
		)
	}
}

func loadNetwork(ctx context.Context, r ledger.Reader) (*models.Network, error) {
	addr, _ := models.NetworkAddress()
	var network models.Network
	if err := r.Get(ctx, addr, models.KindNetwork, &network); err != nil {
		return nil, translate(err, "network")
	}
	return &network, nil
}

func loadIssuer(ctx context.Context, r ledger.Reader, authority domain.Address) (*models.Issuer, error) {
	addr, _ := models.IssuerAddress(authority)
	var issuer models.Issuer
	if err := r.Get(ctx, addr, models.KindIssuer, &issuer); err != nil {
		return nil, translate(err, "issuer")
	}
	return &issuer, nil
}

func loadRecord(ctx context.Context, r ledger.Reader, holder domain.Address) (*models.Record, error) {
	addr, _ := models.CredentialAddress(holder)
	var record models.Record
	if err := r.Get(ctx, addr, models.KindCredential, &record); err != nil {
		return nil, translate(err, "credential")
	}
	return &record, nil
}
