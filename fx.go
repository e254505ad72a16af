package wheelbook

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RateScale is the fixed scaling factor of exchange rates: a rate of 1.5 is
// stored as 1_500_000_000.
const RateScale int64 = 1_000_000_000

// RateSource supplies exchange rates to the converter. The caller is
// responsible for backing it with configuration, a database, or a live feed;
// the core never performs its own lookups beyond this interface.
//
// Rate returns the scaled rate converting one unit of from into to, valued
// at asOf, or ok=false when no rate is known for that pair.
type RateSource interface {
	Rate(from, to string, asOf time.Time) (rate int64, ok bool)
}

// RateSourceFunc adapts a plain function into a RateSource.
type RateSourceFunc func(from, to string, asOf time.Time) (int64, bool)

func (f RateSourceFunc) Rate(from, to string, asOf time.Time) (int64, bool) {
	return f(from, to, asOf)
}

// Rates is a static RateSource backed by a map of currency pairs, keyed by
// the concatenated pair ("EURUSD") with rates at RateScale. It ignores the
// valuation timestamp.
type Rates map[string]int64

// NewRates builds a Rates source from a map of pair keys to float rates, as
// loaded from a rates configuration file. A malformed pair key or a
// non-positive rate is a configuration error and fails fast.
func NewRates(pairs map[string]float64) (Rates, error) {
	r := make(Rates, len(pairs))
	for pair, rate := range pairs {
		if len(pair) != 6 {
			return nil, fmt.Errorf("malformed rate pair %q: want 6-letter pair like EURUSD", pair)
		}
		from, to := pair[:3], pair[3:]
		if err := ValidateCurrency(from); err != nil {
			return nil, fmt.Errorf("malformed rate pair %q: %w", pair, err)
		}
		if err := ValidateCurrency(to); err != nil {
			return nil, fmt.Errorf("malformed rate pair %q: %w", pair, err)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("malformed rate for pair %q: %v is not positive", pair, rate)
		}
		r[pair] = scaleRate(rate)
	}
	return r, nil
}

func (r Rates) Rate(from, to string, _ time.Time) (int64, bool) {
	rate, ok := r[from+to]
	return rate, ok
}

// scaleRate converts a float rate to the RateScale fixed-point form.
func scaleRate(rate float64) int64 {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(RateScale)).Round(0).IntPart()
}

// Converter converts minor-unit amounts between currencies using a
// RateSource, with inversion fallback and per-transaction overrides.
type Converter struct {
	source RateSource
	// overrides take precedence over the source, keyed by pair. They are
	// scoped to a single transaction by the aggregator.
	overrides map[string]int64
}

// NewConverter returns a Converter over the given rate source. A nil source
// behaves as an empty one.
func NewConverter(source RateSource) *Converter {
	return &Converter{source: source}
}

// setOverrides replaces the per-transaction override set.
func (c *Converter) setOverrides(overrides map[string]int64) {
	c.overrides = overrides
}

func (c *Converter) lookup(from, to string, asOf time.Time) (int64, bool) {
	if rate, ok := c.overrides[from+to]; ok {
		return rate, true
	}
	if c.source == nil {
		return 0, false
	}
	return c.source.Rate(from, to, asOf)
}

// Convert converts amount minor units from one currency to another, valued
// at asOf. Same-currency conversion is always the identity. When only the
// inverse pair is known, the rate is derived as RateScale²/inverse with
// exact integer arithmetic. ok is false when no rate can be found; the
// caller decides whether that is a hard anomaly.
func (c *Converter) Convert(amount int64, from, to string, asOf time.Time) (converted int64, ok bool) {
	if from == to {
		return amount, true
	}
	if rate, found := c.lookup(from, to, asOf); found {
		return MulDivRound(amount, rate, RateScale), true
	}
	if inverse, found := c.lookup(to, from, asOf); found && inverse != 0 {
		rate := MulDivRound(RateScale, RateScale, inverse)
		return MulDivRound(amount, rate, RateScale), true
	}
	return 0, false
}
