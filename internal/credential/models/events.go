package models

import (
	"time"

	"hubrwa/pkg/domain"
)

// Event payloads emitted through the ledger.

type NetworkInitializedPayload struct {
	Admin       domain.Address `json:"admin"`
	Name        string         `json:"name"`
	FeeLamports uint64         `json:"fee_lamports"`
}

type StatusChangedPayload struct {
	Address  domain.Address `json:"address"`
	IsActive bool           `json:"is_active"`
}

type IssuerRegisteredPayload struct {
	Authority domain.Address `json:"authority"`
	Name      string         `json:"name"`
	URI       string         `json:"uri"`
}

type CredentialIssuedPayload struct {
	Holder    domain.Address `json:"holder"`
	Issuer    domain.Address `json:"issuer"`
	Type      CredentialType `json:"credential_type"`
	ExpiresAt time.Time      `json:"expires_at"`
}

type CredentialRevokedPayload struct {
	Holder     domain.Address `json:"holder"`
	RevokedBy  domain.Address `json:"revoked_by"`
	CallerRole string         `json:"caller_role"`
	Reason     string         `json:"reason"`
}

type CredentialRefreshedPayload struct {
	Holder    domain.Address `json:"holder"`
	Issuer    domain.Address `json:"issuer"`
	ExpiresAt time.Time      `json:"expires_at"`
}
