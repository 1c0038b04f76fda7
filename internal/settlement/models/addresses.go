package models

import (
	"hubrwa/internal/ledger"
	"hubrwa/pkg/domain"
)

// Account kinds stored on the ledger.
const (
	KindProperty ledger.Kind = "property_state"
	KindVault    ledger.Kind = "investment_vault"
)

// PlatformTreasury receives every platform fee.
var PlatformTreasury = domain.MustParseAddress("AMuiRHoJLS2zhpRtUqVJUpYi4xEGbZcmMsJpqVT9uCJw")

var (
	seedProperty    = []byte("property")
	seedVault       = []byte("investment_vault")
	seedReserveFund = []byte("reserve_fund")
)

// PropertyAddress is the state account of the property token mint.
func PropertyAddress(mint domain.Address) (domain.Address, uint8) {
	return domain.Derive(seedProperty, mint[:])
}

// VaultAddress holds the vault state and the escrowed lamports of mint.
func VaultAddress(mint domain.Address) (domain.Address, uint8) {
	return domain.Derive(seedVault, mint[:])
}

// ReserveFundAddress collects the reserve share of every investment in mint.
func ReserveFundAddress(mint domain.Address) (domain.Address, uint8) {
	return domain.Derive(seedReserveFund, mint[:])
}
