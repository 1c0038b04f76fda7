// Package feesplit partitions a gross investment into platform fee, reserve
// and seller escrow using fixed basis-point rates.
package feesplit

import (
	"hubrwa/pkg/platform/checked"
)

// Rates in basis points. They sum to BPSDivisor.
const (
	PlatformFeeBPS  uint64 = 250
	ReserveFeeBPS   uint64 = 750
	SellerEscrowBPS uint64 = 9000
	BPSDivisor      uint64 = 10_000
)

// Split is one partition of a gross amount. Each part is floor-divided
// independently, so the parts can fall short of Gross by up to 2 units;
// that shortfall is reported as Dust and is never moved.
type Split struct {
	Gross       uint64 `json:"gross"`
	PlatformFee uint64 `json:"platform_fee"`
	Reserve     uint64 `json:"reserve"`
	Escrow      uint64 `json:"escrow"`
	Dust        uint64 `json:"dust"`
}

// Distributed is the amount that actually leaves the payer.
func (s Split) Distributed() uint64 {
	return s.PlatformFee + s.Reserve + s.Escrow
}

// Calculate splits amount. A rate multiplication that overflows uint64 is an
// overflow error, never a wrapped value.
func Calculate(amount uint64) (Split, error) {
	platform, err := checked.MulDiv(amount, PlatformFeeBPS, BPSDivisor)
	if err != nil {
		return Split{}, err
	}
	reserve, err := checked.MulDiv(amount, ReserveFeeBPS, BPSDivisor)
	if err != nil {
		return Split{}, err
	}
	escrow, err := checked.MulDiv(amount, SellerEscrowBPS, BPSDivisor)
	if err != nil {
		return Split{}, err
	}
	s := Split{
		Gross:       amount,
		PlatformFee: platform,
		Reserve:     reserve,
		Escrow:      escrow,
	}
	s.Dust = amount - s.Distributed()
	return s, nil
}
