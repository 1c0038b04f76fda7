// Package service settles investments into tokenized properties and
// administers the property and vault accounts they settle against.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	credmodels "hubrwa/internal/credential/models"
	"hubrwa/internal/ledger"
	"hubrwa/internal/settlement/metrics"
	"hubrwa/internal/settlement/models"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	audit "hubrwa/pkg/platform/audit"
	"hubrwa/pkg/platform/sentinel"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CredentialVerifier checks an investor's credential inside the running
// instruction so the check and the settlement see the same state.
type CredentialVerifier interface {
	VerifyIn(ctx context.Context, r ledger.Reader, holder domain.Address) (*credmodels.Record, error)
}

// Service executes settlement instructions on the ledger.
type Service struct {
	ledger   ledger.Ledger
	verifier CredentialVerifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
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

// New constructs a Service. Every investment is gated on verifier.
func New(l ledger.Ledger, verifier CredentialVerifier, opts ...Option) *Service {
	s := &Service{
		ledger:   l,
		verifier: verifier,
		logger:   slog.Default(),
		tracer:   otel.Tracer("hubrwa/settlement"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	ctx, span := s.tracer.Start(ctx, "settlement."+op, trace.WithAttributes(attrs...))
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

func loadProperty(ctx context.Context, r ledger.Reader, mint domain.Address) (*models.Property, error) {
	addr, _ := models.PropertyAddress(mint)
	var p models.Property
	if err := r.Get(ctx, addr, models.KindProperty, &p); err != nil {
		return nil, translate(err, "property")
	}
	return &p, nil
}

func loadVault(ctx context.Context, r ledger.Reader, mint domain.Address) (*models.InvestmentVault, error) {
	addr, _ := models.VaultAddress(mint)
	var v models.InvestmentVault
	if err := r.Get(ctx, addr, models.KindVault, &v); err != nil {
		return nil, translate(err, "investment vault")
	}
	return &v, nil
}
