package wheelbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// QuantityScale is the number of fractional digits a Quantity carries.
// A Quantity of 1 share is 10^10 units.
const QuantityScale = 10

// QuantityUnit is the number of units in a whole share or contract.
const QuantityUnit int64 = 10_000_000_000

// Quantity is a signed share or contract count scaled by 10^10, which keeps
// fractional share arithmetic exact without floating point.
type Quantity struct {
	units int64
}

// Q returns the Quantity of a whole number of shares.
func Q(shares int64) Quantity { return Quantity{units: shares * QuantityUnit} }

// QuantityFromUnits returns a Quantity from a raw scaled unit count.
func QuantityFromUnits(units int64) Quantity { return Quantity{units: units} }

// ParseQuantity parses a decimal quantity string: an optional sign, an
// integer part, and any number of fractional digits. Digits beyond the 10th
// fractional place are rounded half-up on the magnitude.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("empty quantity")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	// Round is half away from zero, which is half-up on the magnitude.
	scaled := d.Shift(QuantityScale).Round(0)
	if !scaled.BigInt().IsInt64() {
		return Quantity{}, fmt.Errorf("quantity %q out of range", s)
	}
	return Quantity{units: scaled.IntPart()}, nil
}

// MustQuantity is like ParseQuantity but panics on error.
func MustQuantity(s string) Quantity {
	q, err := ParseQuantity(s)
	if err != nil {
		panic(err.Error())
	}
	return q
}

// Units returns the raw scaled unit count.
func (q Quantity) Units() int64 { return q.units }

func (q Quantity) IsZero() bool     { return q.units == 0 }
func (q Quantity) IsNegative() bool { return q.units < 0 }
func (q Quantity) IsPositive() bool { return q.units > 0 }

func (q Quantity) Neg() Quantity { return Quantity{units: -q.units} }

// Abs returns the magnitude of the quantity.
func (q Quantity) Abs() Quantity {
	if q.units < 0 {
		return Quantity{units: -q.units}
	}
	return q
}

func (q Quantity) Add(p Quantity) Quantity { return Quantity{units: q.units + p.units} }
func (q Quantity) Sub(p Quantity) Quantity { return Quantity{units: q.units - p.units} }

func (q Quantity) LessThan(p Quantity) bool    { return q.units < p.units }
func (q Quantity) GreaterThan(p Quantity) bool { return q.units > p.units }
func (q Quantity) Equal(p Quantity) bool       { return q.units == p.units }

// Min returns the smaller of q and p.
func (q Quantity) Min(p Quantity) Quantity {
	if p.units < q.units {
		return p
	}
	return q
}

func (q Quantity) String() string {
	return decimal.New(q.units, -QuantityScale).String()
}

// MarshalJSON encodes the quantity as a decimal string, the same shape
// broker feeds use.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + q.String() + `"`), nil
}
