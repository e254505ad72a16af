package wheelbook

// lot is one open position slice of a symbol, in base-currency minor units.
// A positive quantity is a long lot and cost is the amount paid; a negative
// quantity is a short lot and cost is the proceeds received. Quantity and
// cost shrink in lock-step as the lot is consumed.
type lot struct {
	quantity Quantity
	cost     int64
}

// book is the FIFO queue of open lots for a single symbol. The ledger is
// intentionally single-currency: it receives amounts already converted to
// the base currency, conversion happens one level up in the aggregator.
type book struct {
	lots []lot
}

// applyBuy matches a non-negative quantity bought for cost minor units
// against open short lots head-first, covering them in FIFO order, and
// opens a new long lot with any leftover. It returns the realized P&L
// delta.
func (b *book) applyBuy(quantity Quantity, cost int64) (realized int64) {
	remaining := quantity
	remainingCost := cost

	for len(b.lots) > 0 && b.lots[0].quantity.IsNegative() && remaining.IsPositive() {
		head := &b.lots[0]
		short := head.quantity.Neg()
		covered := remaining.Min(short)

		// Prorate against the lot's and the incoming order's *remaining*
		// quantity at the time of matching, never the original size, so
		// partial fills accumulate no drift.
		proceedsPortion := MulDivRound(head.cost, covered.Units(), short.Units())
		costPortion := MulDivRound(remainingCost, covered.Units(), remaining.Units())

		realized += proceedsPortion - costPortion

		head.quantity = head.quantity.Add(covered)
		head.cost -= proceedsPortion
		remaining = remaining.Sub(covered)
		remainingCost -= costPortion

		if head.quantity.IsZero() {
			b.lots = b.lots[1:]
		}
	}

	if remaining.IsPositive() {
		b.lots = append(b.lots, lot{quantity: remaining, cost: remainingCost})
	}
	return realized
}

// applySell is the mirror of applyBuy: it matches a non-negative quantity
// sold for proceeds minor units against open long lots head-first, and opens
// a new short lot with any leftover. It returns the realized P&L delta.
func (b *book) applySell(quantity Quantity, proceeds int64) (realized int64) {
	remaining := quantity
	remainingProceeds := proceeds

	for len(b.lots) > 0 && b.lots[0].quantity.IsPositive() && remaining.IsPositive() {
		head := &b.lots[0]
		matched := remaining.Min(head.quantity)

		costPortion := MulDivRound(head.cost, matched.Units(), head.quantity.Units())
		proceedsPortion := MulDivRound(remainingProceeds, matched.Units(), remaining.Units())

		realized += proceedsPortion - costPortion

		head.quantity = head.quantity.Sub(matched)
		head.cost -= costPortion
		remaining = remaining.Sub(matched)
		remainingProceeds -= proceedsPortion

		if head.quantity.IsZero() {
			b.lots = b.lots[1:]
		}
	}

	if remaining.IsPositive() {
		b.lots = append(b.lots, lot{quantity: remaining.Neg(), cost: remainingProceeds})
	}
	return realized
}
