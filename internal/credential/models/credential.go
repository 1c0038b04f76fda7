package models

import (
	"fmt"
	"time"

	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
)

// Record is the single credential a holder may carry.
//
// Invariants:
//   - ExpiresAt is zero (never expires) or after the clock reading at issue/refresh
//   - Revoked is terminal
//   - Status never records time-based expiry; callers re-derive validity with IsValid
//   - Revision increases on every committed change; Version is the schema version
type Record struct {
	Holder           domain.Address   `json:"holder"`
	Issuer           domain.Address   `json:"issuer"`
	Type             CredentialType   `json:"credential_type"`
	Status           CredentialStatus `json:"status"`
	IssuedAt         time.Time        `json:"issued_at"`
	ExpiresAt        time.Time        `json:"expires_at"`
	LastVerifiedAt   time.Time        `json:"last_verified_at"`
	MetadataURI      string           `json:"metadata_uri"`
	RevocationReason string           `json:"revocation_reason"`
	Version          uint32           `json:"version"`
	Revision         uint64           `json:"revision"`
	Bump             uint8            `json:"bump"`
}

// ValidateExpiry accepts the zero time or any instant strictly after now.
func ValidateExpiry(expiresAt, now time.Time) error {
	if expiresAt.IsZero() || expiresAt.After(now) {
		return nil
	}
	return dErrors.New(dErrors.CodeInvariantViolation, "expiry must be zero or in the future")
}

// NewRecord builds an Active record issued at now.
func NewRecord(holder, issuer domain.Address, t CredentialType, expiresAt time.Time, metadataURI string, now time.Time) (*Record, error) {
	if !t.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("invalid credential type %q", t))
	}
	if len(metadataURI) > MaxURILength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("metadata uri exceeds %d characters", MaxURILength))
	}
	if err := ValidateExpiry(expiresAt, now); err != nil {
		return nil, err
	}
	_, bump := CredentialAddress(holder)
	return &Record{
		Holder:         holder,
		Issuer:         issuer,
		Type:           t,
		Status:         CredentialStatusActive,
		IssuedAt:       now,
		ExpiresAt:      expiresAt,
		LastVerifiedAt: now,
		MetadataURI:    metadataURI,
		Version:        1,
		Revision:       1,
		Bump:           bump,
	}, nil
}

// NeverExpires reports whether the record was issued without an expiry.
func (r *Record) NeverExpires() bool {
	return r.ExpiresAt.IsZero()
}

// IsExpired reports time-based lapse, independent of the stored status.
func (r *Record) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

// IsValid is the validity predicate: stored status Active and not lapsed.
func (r *Record) IsValid(now time.Time) bool {
	return r.Status == CredentialStatusActive && !r.IsExpired(now)
}

// CheckValid explains why IsValid is false.
func (r *Record) CheckValid(now time.Time) error {
	if r.Status != CredentialStatusActive {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("credential is not active (status %s)", r.Status))
	}
	if r.IsExpired(now) {
		return dErrors.New(dErrors.CodeExpired, "credential has expired")
	}
	return nil
}

// CanRevoke allows revocation only from Active.
func (r *Record) CanRevoke(reason string) error {
	if len(reason) > MaxReasonLength {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("revocation reason exceeds %d characters", MaxReasonLength))
	}
	if r.Status != CredentialStatusActive {
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("credential is not active (status %s)", r.Status))
	}
	return nil
}

// ApplyRevocation moves the record to the terminal Revoked status.
func (r *Record) ApplyRevocation(reason string) {
	r.Status = CredentialStatusRevoked
	r.RevocationReason = reason
	r.Revision++
}

// CanRefresh allows the issuing authority to extend an Active or Expired record.
func (r *Record) CanRefresh(authority domain.Address, newExpiry, now time.Time) error {
	if r.Issuer != authority {
		return dErrors.New(dErrors.CodeForbidden, "only the issuing authority can refresh this credential")
	}
	switch r.Status {
	case CredentialStatusActive, CredentialStatusExpired:
	case CredentialStatusRevoked:
		return dErrors.New(dErrors.CodeInvalidState, "credential has been revoked")
	default:
		return dErrors.New(dErrors.CodeInvalidState,
			fmt.Sprintf("credential cannot be refreshed from status %s", r.Status))
	}
	return ValidateExpiry(newExpiry, now)
}

// ApplyRefresh resets the record to Active with a new expiry.
func (r *Record) ApplyRefresh(newExpiry, now time.Time) {
	r.Status = CredentialStatusActive
	r.ExpiresAt = newExpiry
	r.LastVerifiedAt = now
	r.Revision++
}
