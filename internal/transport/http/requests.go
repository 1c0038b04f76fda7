package httptransport

import (
	"encoding/json"
	"time"

	credmodels "hubrwa/internal/credential/models"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
)

// unixTime converts a unix-seconds expiry; 0 means never.
func unixTime(secs int64) (time.Time, error) {
	if secs < 0 {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "expires_at must not be negative")
	}
	if secs == 0 {
		return time.Time{}, nil
	}
	return time.Unix(secs, 0).UTC(), nil
}

type initializeNetworkRequest struct {
	Name        string `json:"name"`
	FeeLamports uint64 `json:"fee_lamports"`
}

type statusRequest struct {
	IsActive *bool `json:"is_active"`
}

func (r statusRequest) active() (bool, error) {
	if r.IsActive == nil {
		return false, dErrors.New(dErrors.CodeInvalidInput, "is_active is required")
	}
	return *r.IsActive, nil
}

type registerIssuerRequest struct {
	Authority domain.Address `json:"authority"`
	Name      string         `json:"name"`
	URI       string         `json:"uri"`
}

// issueCredentialRequest accepts credential_type either as its name or as the
// numeric code 0..5.
type issueCredentialRequest struct {
	Holder         domain.Address  `json:"holder"`
	CredentialType json.RawMessage `json:"credential_type"`
	ExpiresAt      int64           `json:"expires_at"`
	MetadataURI    string          `json:"metadata_uri"`
}

func (r issueCredentialRequest) parse() (credmodels.CredentialType, time.Time, error) {
	if r.Holder.IsZero() {
		return "", time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "holder is required")
	}
	t, err := parseCredentialType(r.CredentialType)
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt, err := unixTime(r.ExpiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return t, expiresAt, nil
}

func parseCredentialType(raw json.RawMessage) (credmodels.CredentialType, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "credential_type is required")
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return credmodels.ParseCredentialType(name)
	}
	var code uint8
	if err := json.Unmarshal(raw, &code); err != nil {
		return "", dErrors.New(dErrors.CodeValidation, "credential_type must be a type name or a code from 0 to 5")
	}
	return credmodels.CredentialTypeFromCode(code)
}

type revokeCredentialRequest struct {
	Reason string `json:"reason"`
}

type refreshCredentialRequest struct {
	ExpiresAt int64 `json:"expires_at"`
}

type initializePropertyRequest struct {
	Mint        domain.Address `json:"mint"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	TotalSupply uint64         `json:"total_supply"`
}

type initializeVaultRequest struct {
	Seller domain.Address `json:"seller"`
}

type investRequest struct {
	Amount         uint64          `json:"amount"`
	ExpectedTokens uint64          `json:"expected_tokens"`
	Treasury       *domain.Address `json:"treasury,omitempty"`
	Seller         *domain.Address `json:"seller,omitempty"`
}

type fundRequest struct {
	Address  domain.Address `json:"address"`
	Lamports uint64         `json:"lamports"`
}
