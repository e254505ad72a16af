package wheelbook

import "github.com/shopspring/decimal"

// symbolAliases is the fixed, ordered list of raw-payload field names probed
// when a transaction carries no explicit instrument or option reference.
var symbolAliases = []string{
	"symbol",
	"ticker",
	"underlyingSymbol",
	"underlying_symbol",
	"occUnderlyingSymbol",
	"instrumentSymbol",
}

// ResolveSymbol returns the symbol a transaction settles against: the
// explicit instrument or option reference first, then the raw-payload
// aliases in a fixed order. A transaction with no resolvable symbol is
// skipped entirely from aggregation.
func (t *BrokerTransaction) ResolveSymbol() (string, bool) {
	if t.Instrument != nil && t.Instrument.Symbol != "" {
		return t.Instrument.Symbol, true
	}
	if t.Option != nil && t.Option.Underlying != "" {
		return t.Option.Underlying, true
	}
	return rawString(t.Raw, symbolAliases...)
}

// grossCurrency resolves the currency of the gross amount: explicit amount
// or price currency first, then instrument, then option contract, then a
// raw-payload currency field, then the base currency.
func (t *BrokerTransaction) grossCurrency(base string) string {
	if t.Gross != nil && t.Gross.Currency() != "" {
		return t.Gross.Currency()
	}
	if t.Price != nil && t.Price.Currency() != "" {
		return t.Price.Currency()
	}
	if t.Instrument != nil && t.Instrument.Currency != "" {
		return t.Instrument.Currency
	}
	if t.Option != nil && t.Option.Currency != "" {
		return t.Option.Currency
	}
	if cur, ok := rawString(t.Raw, "currency"); ok {
		return cur
	}
	return base
}

// feeCurrency resolves the currency of the fee amount, defaulting to the
// gross currency when the fee carries none of its own.
func (t *BrokerTransaction) feeCurrency(base string) string {
	if t.Fees != nil && t.Fees.Currency() != "" {
		return t.Fees.Currency()
	}
	return t.grossCurrency(base)
}

// resolveQuantity parses the transaction quantity from the explicit field or
// the raw payload. ok is false when absent or unparseable.
func (t *BrokerTransaction) resolveQuantity() (Quantity, bool) {
	if t.Quantity != "" {
		q, err := ParseQuantity(t.Quantity)
		return q, err == nil
	}
	if s, ok := rawString(t.Raw, "quantity"); ok {
		q, err := ParseQuantity(s)
		return q, err == nil
	}
	if f, ok := rawNumber(t.Raw, "quantity"); ok {
		q, err := ParseQuantity(decimal.NewFromFloat(f).String())
		return q, err == nil
	}
	return Quantity{}, false
}

// resolveGross resolves the gross minor-unit amount: the explicit field
// first, then price × |quantity| with exact scaled arithmetic, then a
// raw-payload numeric fallback truncated and made non-negative. ok is false
// when no source yields an amount.
func (t *BrokerTransaction) resolveGross(quantity Quantity, haveQuantity bool) (int64, bool) {
	if t.Gross != nil {
		return abs64(t.Gross.MinorUnits()), true
	}
	if t.Price != nil && haveQuantity && !quantity.IsZero() {
		return abs64(MulDivRound(t.Price.MinorUnits(), quantity.Abs().Units(), QuantityUnit)), true
	}
	if f, ok := rawNumber(t.Raw, "grossAmountMinor", "gross_amount_minor"); ok {
		return abs64(int64(f)), true
	}
	return 0, false
}

// resolveFees resolves the fee minor-unit amount: the explicit field first,
// then a raw-payload numeric fallback truncated and made non-negative. ok is
// false when the transaction carries no fee.
func (t *BrokerTransaction) resolveFees() (int64, bool) {
	if t.Fees != nil {
		return abs64(t.Fees.MinorUnits()), true
	}
	if f, ok := rawNumber(t.Raw, "feesAmountMinor", "fees_amount_minor"); ok {
		return abs64(int64(f)), true
	}
	return 0, false
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
