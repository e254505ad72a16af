package wheelbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Right is the option right of a contract.
type Right string

const (
	RightPut  Right = "put"
	RightCall Right = "call"
)

// Instrument references a plain stock or fund position.
type Instrument struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency,omitempty"`
}

// OptionContract references an option position by its underlying.
type OptionContract struct {
	Underlying string `json:"underlying"`
	Right      Right  `json:"right,omitempty"`
	Multiplier int64  `json:"multiplier,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// BrokerTransaction is one raw transaction as reported upstream. Fields are
// heterogeneous on purpose: providers disagree about where quantity, price
// and symbol live, so any of them may instead be found in Raw, an opaque
// payload probed with a fixed list of field aliases.
//
// Instrument and Option are mutually exclusive.
type BrokerTransaction struct {
	ID         string          `json:"id"`
	ExecutedAt time.Time       `json:"executedAt"`
	Type       string          `json:"type"`
	Quantity   string          `json:"quantity,omitempty"` // decimal string, empty when absent
	Price      *Amount         `json:"price,omitempty"`
	Gross      *Amount         `json:"gross,omitempty"`
	Fees       *Amount         `json:"fees,omitempty"`
	Instrument *Instrument     `json:"instrument,omitempty"`
	Option     *OptionContract `json:"option,omitempty"`
	Raw        map[string]any  `json:"raw,omitempty"`
}

// Validate checks the structural invariants of a raw transaction.
func (t *BrokerTransaction) Validate() error {
	if t.ID == "" {
		return errors.New("transaction id is missing")
	}
	if t.ExecutedAt.IsZero() {
		return fmt.Errorf("transaction %s: executedAt is missing", t.ID)
	}
	if t.Instrument != nil && t.Option != nil {
		return fmt.Errorf("transaction %s: instrument and option references are mutually exclusive", t.ID)
	}
	return nil
}

// PositionSnapshot is a broker-reported point-in-time valuation of a
// position, independent of the transaction ledger.
type PositionSnapshot struct {
	Instrument  Instrument `json:"instrument"`
	AsOf        time.Time  `json:"asOf"`
	MarketValue *Amount    `json:"marketValue,omitempty"`
	Unrealized  *Amount    `json:"unrealized,omitempty"`
}

// Validate checks the structural invariants of a snapshot.
func (s *PositionSnapshot) Validate() error {
	if s.Instrument.Symbol == "" {
		return errors.New("snapshot instrument symbol is missing")
	}
	if s.AsOf.IsZero() {
		return fmt.Errorf("snapshot %s: asOf is missing", s.Instrument.Symbol)
	}
	return nil
}

// rawLookup probes the raw payload for the first field alias that resolves.
// Paths are jsonpath expressions relative to the payload root, so nested
// shapes like fx.rate work the same as flat fields.
func rawLookup(raw map[string]any, names ...string) (any, bool) {
	if raw == nil {
		return nil, false
	}
	for _, name := range names {
		v, err := jsonpath.Get("$."+name, map[string]any(raw))
		if err != nil {
			continue
		}
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer, so unwrap single-element lists.
		if list, ok := v.([]any); ok {
			if len(list) != 1 {
				continue
			}
			v = list[0]
		}
		if v == nil {
			continue
		}
		return v, true
	}
	return nil, false
}

// rawString probes the raw payload for the first alias holding a non-empty string.
func rawString(raw map[string]any, names ...string) (string, bool) {
	v, ok := rawLookup(raw, names...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// rawNumber probes the raw payload for the first alias holding a number.
// JSON numbers decode as float64; numeric strings are accepted too.
func rawNumber(raw map[string]any, names ...string) (float64, bool) {
	v, ok := rawLookup(raw, names...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(n, "%g", &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// fxOverrides extracts a per-transaction exchange rate override from the raw
// payload: either a nested {fx: {fromCurrency, toCurrency, rate}} object or
// flattened fxFromCurrency/fxToCurrency/fxRate fields. The override applies
// to the stated pair and to the stated source against the base currency, at
// RateScale.
func (t *BrokerTransaction) fxOverrides(baseCurrency string) map[string]int64 {
	from, okFrom := rawString(t.Raw, "fx.fromCurrency", "fxFromCurrency", "fx_from_currency")
	to, okTo := rawString(t.Raw, "fx.toCurrency", "fxToCurrency", "fx_to_currency")
	rate, okRate := rawNumber(t.Raw, "fx.rate", "fxRate", "fx_rate")
	if !okFrom || !okTo || !okRate || rate <= 0 {
		return nil
	}
	scaled := scaleRate(rate)
	overrides := map[string]int64{from + to: scaled}
	if baseCurrency != "" && to != baseCurrency {
		overrides[from+baseCurrency] = scaled
	}
	return overrides
}
