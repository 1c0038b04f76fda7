package models

import (
	"hubrwa/internal/ledger"
	"hubrwa/pkg/domain"
)

// Account kinds stored on the ledger.
const (
	KindNetwork    ledger.Kind = "credential_network"
	KindIssuer     ledger.Kind = "credential_issuer"
	KindCredential ledger.Kind = "user_credential"
)

var (
	seedNetwork    = []byte("credential_network")
	seedIssuer     = []byte("issuer")
	seedCredential = []byte("credential")
)

// NetworkAddress is the singleton network account.
func NetworkAddress() (domain.Address, uint8) {
	return domain.Derive(seedNetwork)
}

// IssuerAddress is the issuer account controlled by authority.
func IssuerAddress(authority domain.Address) (domain.Address, uint8) {
	return domain.Derive(seedIssuer, authority[:])
}

// CredentialAddress is the single credential slot of holder.
func CredentialAddress(holder domain.Address) (domain.Address, uint8) {
	return domain.Derive(seedCredential, holder[:])
}
