package models

import (
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
)

// Caller is the role a revocation is authorized under. The variant decides
// which counters the revocation touches: only IssuerCaller updates the
// issuer's own counters.
type Caller interface {
	Address() domain.Address
	Role() string
	isCaller()
}

// IssuerCaller is the authority that issued the record.
type IssuerCaller struct {
	Authority domain.Address
}

func (c IssuerCaller) Address() domain.Address { return c.Authority }
func (IssuerCaller) Role() string { return "issuer" }
func (IssuerCaller) isCaller() {}

// AdminCaller is the network admin acting on someone else's record.
type AdminCaller struct {
	Admin domain.Address
}

func (c AdminCaller) Address() domain.Address { return c.Admin }
func (AdminCaller) Role() string { return "admin" }
func (AdminCaller) isCaller() {}

// ResolveRevoker classifies caller against the record and network. A caller
// that is both the issuing authority and the admin resolves to IssuerCaller.
func ResolveRevoker(caller domain.Address, record *Record, network *Network) (Caller, error) {
	switch {
	case record.Issuer == caller:
		return IssuerCaller{Authority: caller}, nil
	case network.IsAdmin(caller):
		return AdminCaller{Admin: caller}, nil
	default:
		return nil, dErrors.New(dErrors.CodeForbidden,
			"only the issuing authority or the network admin can revoke this credential")
	}
}
