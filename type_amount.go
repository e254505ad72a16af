package wheelbook

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
)

// Amount is a monetary value: an integer count of currency minor units
// (e.g. cents) plus an ISO-4217 style currency code. Money is never
// represented as floating point.
type Amount struct {
	value int64
	cur   string
}

// A returns the Amount of value minor units of the given currency.
func A(value int64, currency string) Amount {
	return Amount{value: value, cur: currency}
}

// MinorUnits returns the raw minor unit count.
func (a Amount) MinorUnits() int64 { return a.value }

// Currency returns the amount's currency code.
func (a Amount) Currency() string { return a.cur }

func (a Amount) IsZero() bool     { return a.value == 0 }
func (a Amount) IsNegative() bool { return a.value < 0 }
func (a Amount) IsPositive() bool { return a.value > 0 }

func (a Amount) Neg() Amount { return Amount{value: -a.value, cur: a.cur} }

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	if a.value < 0 {
		return Amount{value: -a.value, cur: a.cur}
	}
	return a
}

// binary operators.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value + b.value, cur: cur(a, b)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value - b.value, cur: cur(a, b)} }

// makes the "" currency totally weak.
func cur(a, b Amount) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// String formats the amount with its currency's symbol and fraction rules.
func (a Amount) String() string {
	return money.New(a.value, a.cur).Display()
}

// SignedString returns the string representation of the amount with a sign.
// 0 is represented as "-".
func (a Amount) SignedString() string {
	if a.value == 0 {
		return "-"
	}
	if a.value > 0 {
		return "+" + a.String()
	}
	return a.String()
}

// ValidateCurrency reports whether code is a known 3-letter currency code.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("invalid currency code %q: want 3 letters", code)
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Amount.
func (a Amount) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", a.value)
	w.Optional("currency", a.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Amount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.value = aux.Amount
	a.cur = aux.Currency
	return nil
}
