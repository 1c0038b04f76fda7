package models

import (
	"fmt"
	"time"

	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	"hubrwa/pkg/platform/checked"
)

// Issuer is an entity the network admin authorized to manage credentials.
type Issuer struct {
	Authority          domain.Address `json:"authority"`
	Name               string         `json:"name"`
	URI                string         `json:"uri"`
	CredentialsIssued  uint64         `json:"credentials_issued"`
	ActiveCredentials  uint64         `json:"active_credentials"`
	RevokedCredentials uint64         `json:"revoked_credentials"`
	IsActive           bool           `json:"is_active"`
	CanIssueKYC        bool           `json:"can_issue_kyc"`
	CanIssueAccredited bool           `json:"can_issue_accredited"`
	RegisteredAt       time.Time      `json:"registered_at"`
	Bump               uint8          `json:"bump"`
}

// NewIssuer registers an active issuer holding both capabilities.
func NewIssuer(authority domain.Address, name, uri string, now time.Time) (*Issuer, error) {
	if len(name) > MaxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("issuer name exceeds %d characters", MaxNameLength))
	}
	if len(uri) > MaxURILength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("issuer uri exceeds %d characters", MaxURILength))
	}
	_, bump := IssuerAddress(authority)
	return &Issuer{
		Authority:          authority,
		Name:               name,
		URI:                uri,
		IsActive:           true,
		CanIssueKYC:        true,
		CanIssueAccredited: true,
		RegisteredAt:       now,
		Bump:               bump,
	}, nil
}

// CanAct rejects operations by a deactivated issuer.
func (i *Issuer) CanAct() error {
	if !i.IsActive {
		return dErrors.New(dErrors.CodeForbidden, "issuer is not active")
	}
	return nil
}

// CanIssue checks the issuer is active and holds the capability for t.
func (i *Issuer) CanIssue(t CredentialType) error {
	if err := i.CanAct(); err != nil {
		return err
	}
	if t.IsAccreditation() && !i.CanIssueAccredited {
		return dErrors.New(dErrors.CodeForbidden,
			fmt.Sprintf("issuer is not authorized to issue %s credentials", t))
	}
	if !t.IsAccreditation() && !i.CanIssueKYC {
		return dErrors.New(dErrors.CodeForbidden,
			fmt.Sprintf("issuer is not authorized to issue %s credentials", t))
	}
	return nil
}

func (i *Issuer) ApplyCredentialIssued() error {
	issued, err := checked.Add(i.CredentialsIssued, 1)
	if err != nil {
		return err
	}
	active, err := checked.Add(i.ActiveCredentials, 1)
	if err != nil {
		return err
	}
	i.CredentialsIssued = issued
	i.ActiveCredentials = active
	return nil
}

func (i *Issuer) ApplyCredentialRevoked() error {
	revoked, err := checked.Add(i.RevokedCredentials, 1)
	if err != nil {
		return err
	}
	if i.ActiveCredentials > 0 {
		i.ActiveCredentials--
	}
	i.RevokedCredentials = revoked
	return nil
}

// ApplyActive toggles the issuer's authorization.
func (i *Issuer) ApplyActive(active bool) {
	i.IsActive = active
}
