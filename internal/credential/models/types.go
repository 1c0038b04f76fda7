package models

import (
	"fmt"

	dErrors "hubrwa/pkg/domain-errors"
)

// CredentialType is the compliance attestation a record carries.
type CredentialType string

const (
	CredentialTypeKYCBasic           CredentialType = "kyc_basic"
	CredentialTypeKYCFull            CredentialType = "kyc_full"
	CredentialTypeAccreditedInvestor CredentialType = "accredited_investor"
	CredentialTypeQualifiedPurchaser CredentialType = "qualified_purchaser"
	CredentialTypeBrazilianCPF       CredentialType = "brazilian_cpf"
	CredentialTypeBrazilianCNPJ      CredentialType = "brazilian_cnpj"
)

// credentialTypeCodes is the numeric wire order used by wallets.
var credentialTypeCodes = []CredentialType{
	CredentialTypeKYCBasic,
	CredentialTypeKYCFull,
	CredentialTypeAccreditedInvestor,
	CredentialTypeQualifiedPurchaser,
	CredentialTypeBrazilianCPF,
	CredentialTypeBrazilianCNPJ,
}

func (t CredentialType) IsValid() bool {
	for _, known := range credentialTypeCodes {
		if t == known {
			return true
		}
	}
	return false
}

// IsAccreditation reports whether issuing t needs the accredited capability.
// Every other type is a KYC attestation.
func (t CredentialType) IsAccreditation() bool {
	return t == CredentialTypeAccreditedInvestor || t == CredentialTypeQualifiedPurchaser
}

// ParseCredentialType accepts the type name.
func ParseCredentialType(s string) (CredentialType, error) {
	t := CredentialType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid credential type %q", s))
	}
	return t, nil
}

// CredentialTypeFromCode maps the numeric wire form (0..5) to a type.
func CredentialTypeFromCode(code uint8) (CredentialType, error) {
	if int(code) >= len(credentialTypeCodes) {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid credential type code %d", code))
	}
	return credentialTypeCodes[code], nil
}

// CredentialStatus is the stored lifecycle status. Time-based expiry is never
// written here; see Record.IsValid.
type CredentialStatus string

const (
	CredentialStatusActive  CredentialStatus = "active"
	CredentialStatusExpired CredentialStatus = "expired"
	CredentialStatusRevoked CredentialStatus = "revoked"
	// CredentialStatusSuspended is reserved; no operation sets or clears it.
	CredentialStatusSuspended CredentialStatus = "suspended"
)

func (s CredentialStatus) IsValid() bool {
	switch s {
	case CredentialStatusActive, CredentialStatusExpired, CredentialStatusRevoked, CredentialStatusSuspended:
		return true
	}
	return false
}

func (s CredentialStatus) String() string {
	return string(s)
}

// Field limits.
const (
	MaxNameLength   = 64
	MaxURILength    = 200
	MaxReasonLength = 200
)
