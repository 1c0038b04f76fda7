// Package checked implements the ledger's integer arithmetic. Overflow is never
// wrapped: every operation that can exceed uint64 returns a CodeOverflow error so
// the surrounding instruction aborts.
package checked

import (
	"math"

	"github.com/holiman/uint256"

	dErrors "hubrwa/pkg/domain-errors"
)

// Add returns a+b or an overflow error.
func Add(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, dErrors.New(dErrors.CodeOverflow, "addition overflows uint64")
	}
	return a + b, nil
}

// Sub returns a-b or an overflow error when b > a.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, dErrors.New(dErrors.CodeOverflow, "subtraction underflows uint64")
	}
	return a - b, nil
}

// SaturatingAdd returns a+b clamped to MaxUint64. Only for derived read-side totals.
func SaturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// MulDiv returns floor(amount*numerator/denominator). The intermediate product
// must fit in uint64; a product that does not is an overflow, matching the
// ledger's 64-bit checked multiplication.
func MulDiv(amount, numerator, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, dErrors.New(dErrors.CodeOverflow, "division by zero")
	}
	product := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(numerator))
	if !product.IsUint64() {
		return 0, dErrors.New(dErrors.CodeOverflow, "multiplication overflows uint64")
	}
	return product.Uint64() / denominator, nil
}

// Ratio returns floor(part*scale/whole) computed in 256-bit precision, so large
// supplies never overflow the intermediate product.
func Ratio(part, whole, scale uint64) (uint64, error) {
	if whole == 0 {
		return 0, dErrors.New(dErrors.CodeOverflow, "ratio with zero denominator")
	}
	r := new(uint256.Int).Mul(uint256.NewInt(part), uint256.NewInt(scale))
	r.Div(r, uint256.NewInt(whole))
	if !r.IsUint64() {
		return 0, dErrors.New(dErrors.CodeOverflow, "ratio overflows uint64")
	}
	return r.Uint64(), nil
}
