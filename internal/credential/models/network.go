package models

import (
	"fmt"
	"time"

	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	"hubrwa/pkg/platform/checked"
)

// Network is the registry singleton: admin identity and aggregate counters.
//
// ActiveCredentials is an upper bound. Records that lapse by time are still
// counted until they are revoked.
type Network struct {
	Admin                  domain.Address `json:"admin"`
	Name                   string         `json:"name"`
	FeeLamports            uint64         `json:"fee_lamports"`
	TotalCredentialsIssued uint64         `json:"total_credentials_issued"`
	ActiveCredentials      uint64         `json:"active_credentials"`
	TotalIssuers           uint64         `json:"total_issuers"`
	IsActive               bool           `json:"is_active"`
	CreatedAt              time.Time      `json:"created_at"`
	Bump                   uint8          `json:"bump"`
}

// NewNetwork builds an active network with zeroed counters.
func NewNetwork(admin domain.Address, name string, feeLamports uint64, now time.Time) (*Network, error) {
	if len(name) > MaxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("network name exceeds %d characters", MaxNameLength))
	}
	_, bump := NetworkAddress()
	return &Network{
		Admin:       admin,
		Name:        name,
		FeeLamports: feeLamports,
		IsActive:    true,
		CreatedAt:   now,
		Bump:        bump,
	}, nil
}

func (n *Network) IsAdmin(addr domain.Address) bool {
	return n.Admin == addr
}

// CanAccept rejects work while the network is inactive.
func (n *Network) CanAccept() error {
	if !n.IsActive {
		return dErrors.New(dErrors.CodeForbidden, "network is not active")
	}
	return nil
}

// ApplyIssuerRegistered counts a newly registered issuer.
func (n *Network) ApplyIssuerRegistered() error {
	total, err := checked.Add(n.TotalIssuers, 1)
	if err != nil {
		return err
	}
	n.TotalIssuers = total
	return nil
}

// ApplyCredentialIssued counts a new active credential.
func (n *Network) ApplyCredentialIssued() error {
	total, err := checked.Add(n.TotalCredentialsIssued, 1)
	if err != nil {
		return err
	}
	active, err := checked.Add(n.ActiveCredentials, 1)
	if err != nil {
		return err
	}
	n.TotalCredentialsIssued = total
	n.ActiveCredentials = active
	return nil
}

// ApplyCredentialRevoked removes a credential from the active count.
func (n *Network) ApplyCredentialRevoked() {
	if n.ActiveCredentials > 0 {
		n.ActiveCredentials--
	}
}

// ApplyActive toggles whether the network accepts new work.
func (n *Network) ApplyActive(active bool) {
	n.IsActive = active
}
