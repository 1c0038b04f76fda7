package models

import (
	"fmt"
	"time"

	"hubrwa/internal/settlement/milestone"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	"hubrwa/pkg/platform/checked"
)

const (
	MaxPropertyNameLength   = 50
	MaxPropertySymbolLength = 10
)

// Property is the token-supply state of one tokenized property.
type Property struct {
	Authority         domain.Address `json:"authority"`
	Mint              domain.Address `json:"mint"`
	Name              string         `json:"name"`
	Symbol            string         `json:"symbol"`
	TotalSupply       uint64         `json:"total_supply"`
	CirculatingSupply uint64         `json:"circulating_supply"`
	IsActive          bool           `json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	Bump              uint8          `json:"bump"`
}

// NewProperty builds an active property with nothing minted.
func NewProperty(authority, mint domain.Address, name, symbol string, totalSupply uint64, now time.Time) (*Property, error) {
	if name == "" || len(name) > MaxPropertyNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("property name must be 1 to %d characters", MaxPropertyNameLength))
	}
	if symbol == "" || len(symbol) > MaxPropertySymbolLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("property symbol must be 1 to %d characters", MaxPropertySymbolLength))
	}
	if totalSupply == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "total supply must be positive")
	}
	_, bump := PropertyAddress(mint)
	return &Property{
		Authority:   authority,
		Mint:        mint,
		Name:        name,
		Symbol:      symbol,
		TotalSupply: totalSupply,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
		Bump:        bump,
	}, nil
}

func (p *Property) IsAuthority(addr domain.Address) bool {
	return p.Authority == addr
}

// CanInvest rejects investments into an inactive property.
func (p *Property) CanInvest() error {
	if !p.IsActive {
		return dErrors.New(dErrors.CodeInvalidState, "property is not active")
	}
	return nil
}

// CanMint enforces circulating + tokens <= total.
func (p *Property) CanMint(tokens uint64) error {
	next, err := checked.Add(p.CirculatingSupply, tokens)
	if err != nil {
		return err
	}
	if next > p.TotalSupply {
		return dErrors.New(dErrors.CodeSupplyExceeded,
			fmt.Sprintf("minting %d tokens exceeds remaining supply %d", tokens, p.TotalSupply-p.CirculatingSupply))
	}
	return nil
}

// ApplyMint records tokens entering circulation. Call CanMint first.
func (p *Property) ApplyMint(tokens uint64, now time.Time) error {
	if err := p.CanMint(tokens); err != nil {
		return err
	}
	p.CirculatingSupply += tokens
	p.UpdatedAt = now
	return nil
}

// CirculationBPS is the sold share of the supply in basis points.
func (p *Property) CirculationBPS() (uint64, error) {
	return milestone.CirculationBPS(p.CirculatingSupply, p.TotalSupply)
}

func (p *Property) ApplyActive(active bool, now time.Time) {
	p.IsActive = active
	p.UpdatedAt = now
}
