package service

import (
	"context"
	"errors"
	"time"

	"hubrwa/internal/credential/models"
	"hubrwa/internal/ledger"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	"hubrwa/pkg/platform/sentinel"
	"hubrwa/pkg/requestcontext"

	"go.opentelemetry.io/otel/attribute"
)

// Verify checks the holder's credential against the request clock. It never
// writes: a lapsed record keeps its stored Active status and fails with
// CodeExpired; a Revoked or Suspended record fails with CodeInvalidState.
func (s *Service) Verify(ctx context.Context, holder domain.Address) (record *models.Record, err error) {
	ctx, span, start := s.startSpan(ctx, "verify", attribute.String("holder", holder.String()))
	defer func() { s.endSpan(span, "verify", start, err) }()

	now := requestcontext.Now(ctx)
	record, err = s.GetCredential(ctx, holder)
	if err != nil {
		s.metrics.IncrementVerification(verificationOutcome(err))
		return nil, err
	}
	if err := record.CheckValid(now); err != nil {
		s.metrics.IncrementVerification(verificationOutcome(err))
		return nil, err
	}
	s.metrics.IncrementVerification("valid")
	return record, nil
}

// VerifyIn checks the holder's credential inside a running instruction, using
// the instruction's clock and uncached committed state.
func (s *Service) VerifyIn(ctx context.Context, r ledger.Reader, holder domain.Address) (*models.Record, error) {
	record, err := loadRecord(ctx, r, holder)
	if err != nil {
		s.metrics.IncrementVerification(verificationOutcome(err))
		return nil, err
	}
	if err := record.CheckValid(r.Now()); err != nil {
		s.metrics.IncrementVerification(verificationOutcome(err))
		return nil, err
	}
	s.metrics.IncrementVerification("valid")
	return record, nil
}

// GetCredential returns the holder's committed record. With a cache
// configured, misses are loaded once per holder across concurrent callers.
func (s *Service) GetCredential(ctx context.Context, holder domain.Address) (*models.Record, error) {
	defer s.metrics.ObserveOperation("get_credential", time.Now())

	if s.cache != nil {
		record, err := s.cache.Get(ctx, holder)
		switch {
		case err == nil:
			s.metrics.IncrementCacheLookup("hit")
			return record, nil
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.IncrementCacheLookup("miss")
		default:
			s.metrics.IncrementCacheLookup("error")
			s.logger.WarnContext(ctx, "credential cache read failed", "holder", holder.String(), "error", err)
		}
	}

	v, err, _ := s.loads.Do(holder.String(), func() (any, error) {
		var record *models.Record
		err := ledger.View(ctx, s.ledger, func(ctx context.Context, r ledger.Reader) error {
			var err error
			record, err = loadRecord(ctx, r, holder)
			return err
		})
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, record); err != nil {
				s.logger.WarnContext(ctx, "credential cache write failed", "holder", holder.String(), "error", err)
			}
		}
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	record := *v.(*models.Record)
	return &record, nil
}

func verificationOutcome(err error) string {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeExpired:
		return "expired"
	case dErrors.CodeInvalidState:
		return "not_active"
	case dErrors.CodeNotFound:
		return "not_found"
	default:
		return "error"
	}
}
