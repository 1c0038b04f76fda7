package models

import (
	"time"

	"hubrwa/internal/settlement/feesplit"
	"hubrwa/internal/settlement/milestone"
	"hubrwa/pkg/domain"
	dErrors "hubrwa/pkg/domain-errors"
	"hubrwa/pkg/platform/checked"
)

// InvestmentVault accounts for the capital raised by one property.
//
// ReserveBalance and EscrowBalance only grow on investment; EscrowBalance
// shrinks only by a milestone release, which moves the same amount into
// TotalReleasedToSeller. CurrentMilestone never decreases.
type InvestmentVault struct {
	PropertyMint          domain.Address      `json:"property_mint"`
	Seller                domain.Address      `json:"seller"`
	TotalInvested         uint64              `json:"total_invested"`
	TotalPlatformFees     uint64              `json:"total_platform_fees"`
	ReserveBalance        uint64              `json:"reserve_balance"`
	EscrowBalance         uint64              `json:"escrow_balance"`
	TotalReleasedToSeller uint64              `json:"total_released_to_seller"`
	CurrentMilestone      milestone.Milestone `json:"current_milestone"`
	IsInitialized         bool                `json:"is_initialized"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
	Bump                  uint8               `json:"bump"`
}

func NewInvestmentVault(mint, seller domain.Address, now time.Time) *InvestmentVault {
	_, bump := VaultAddress(mint)
	return &InvestmentVault{
		PropertyMint:  mint,
		Seller:        seller,
		IsInitialized: true,
		CreatedAt:     now,
		UpdatedAt:     now,
		Bump:          bump,
	}
}

// CanReceive checks the vault belongs to seller and is ready for capital.
func (v *InvestmentVault) CanReceive(seller domain.Address) error {
	if !v.IsInitialized {
		return dErrors.New(dErrors.CodeInvalidState, "investment vault is not initialized")
	}
	if v.Seller != seller {
		return dErrors.New(dErrors.CodeForbidden, "seller does not match investment vault")
	}
	return nil
}

// ApplyInvestment adds one split to the running totals. The vault is left
// untouched when any total would overflow.
func (v *InvestmentVault) ApplyInvestment(s feesplit.Split, now time.Time) error {
	invested, err := checked.Add(v.TotalInvested, s.Gross)
	if err != nil {
		return err
	}
	fees, err := checked.Add(v.TotalPlatformFees, s.PlatformFee)
	if err != nil {
		return err
	}
	reserve, err := checked.Add(v.ReserveBalance, s.Reserve)
	if err != nil {
		return err
	}
	escrow, err := checked.Add(v.EscrowBalance, s.Escrow)
	if err != nil {
		return err
	}
	v.TotalInvested = invested
	v.TotalPlatformFees = fees
	v.ReserveBalance = reserve
	v.EscrowBalance = escrow
	v.UpdatedAt = now
	return nil
}

// ApplyMilestone advances the marker and moves Release out of escrow.
func (v *InvestmentVault) ApplyMilestone(o milestone.Outcome, now time.Time) error {
	if o.Milestone < v.CurrentMilestone || o.Milestone > milestone.Final {
		return dErrors.New(dErrors.CodeInvariantViolation, "milestone cannot move backwards")
	}
	escrow, err := checked.Sub(v.EscrowBalance, o.Release)
	if err != nil {
		return err
	}
	released, err := checked.Add(v.TotalReleasedToSeller, o.Release)
	if err != nil {
		return err
	}
	v.EscrowBalance = escrow
	v.TotalReleasedToSeller = released
	v.CurrentMilestone = o.Milestone
	v.UpdatedAt = now
	return nil
}

// TotalValueLocked is escrow plus reserve, saturating.
func (v *InvestmentVault) TotalValueLocked() uint64 {
	return checked.SaturatingAdd(v.EscrowBalance, v.ReserveBalance)
}
