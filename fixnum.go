package wheelbook

import "github.com/shopspring/decimal"

// MulDivRound returns value*mul/div rounded half away from zero.
//
// It is the single rounding primitive of the package: lot proration,
// quantity parsing and currency conversion all go through it, so rounding
// stays deterministic and symmetric around zero. The intermediate product is
// computed exactly, it cannot overflow int64.
//
// A zero divisor is a precondition violation and panics.
func MulDivRound(value, mul, div int64) int64 {
	if div == 0 {
		panic("wheelbook: MulDivRound division by zero")
	}
	product := decimal.NewFromInt(value).Mul(decimal.NewFromInt(mul))
	// DivRound rounds half away from zero on the midpoint, preserving sign.
	return product.DivRound(decimal.NewFromInt(div), 0).IntPart()
}
