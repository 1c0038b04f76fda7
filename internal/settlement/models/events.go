package models

import (
	"time"

	"hubrwa/internal/settlement/milestone"
	"hubrwa/pkg/domain"
)

// Event payloads emitted through the ledger.

type PropertyInitializedPayload struct {
	Authority   domain.Address `json:"authority"`
	Mint        domain.Address `json:"mint"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	TotalSupply uint64         `json:"total_supply"`
}

type PropertyStatusChangedPayload struct {
	Mint     domain.Address `json:"mint"`
	IsActive bool           `json:"is_active"`
}

type VaultInitializedPayload struct {
	PropertyMint domain.Address `json:"property_mint"`
	Seller       domain.Address `json:"seller"`
	Timestamp    time.Time      `json:"timestamp"`
}

type InvestmentCompletedPayload struct {
	PropertyMint   domain.Address `json:"property_mint"`
	Investor       domain.Address `json:"investor"`
	GrossAmount    uint64         `json:"gross_amount"`
	TokensReceived uint64         `json:"tokens_received"`
	PlatformFee    uint64         `json:"platform_fee"`
	ReserveAmount  uint64         `json:"reserve_amount"`
	EscrowAmount   uint64         `json:"escrow_amount"`
	Dust           uint64         `json:"dust"`
	Timestamp      time.Time      `json:"timestamp"`
}

type MilestoneReachedPayload struct {
	PropertyMint   domain.Address      `json:"property_mint"`
	Seller         domain.Address      `json:"seller"`
	Milestone      milestone.Milestone `json:"milestone"`
	CirculationBPS uint64              `json:"circulation_bps"`
	Released       uint64              `json:"released"`
	EscrowBalance  uint64              `json:"escrow_balance"`
	Timestamp      time.Time           `json:"timestamp"`
}
