package wheelbook

import (
	"fmt"
	"sort"
	"time"

	"github.com/mhamel/wheelbook/date"
)

// Accumulator holds per-symbol running totals, all in base-currency minor
// units. Unrealized and MarketValue come from broker snapshots, never from
// the ledger.
type Accumulator struct {
	Realized       int64
	Unrealized     int64
	MarketValue    int64
	OptionPremiums int64
	Dividends      int64
	Fees           int64
}

// NetPnl is realized + unrealized + optionPremiums + dividends − fees.
func (a Accumulator) NetPnl() int64 {
	return a.Realized + a.Unrealized + a.OptionPremiums + a.Dividends - a.Fees
}

// TotalRow is the end-of-pass accumulator of one symbol.
type TotalRow struct {
	Symbol string
	Accumulator
	NetPnl int64
}

// MarshalJSON implements the json.Marshaler interface for TotalRow.
func (r TotalRow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", r.Symbol)
	appendAccumulator(&w, r.Accumulator)
	w.Append("netPnl", r.NetPnl)
	return w.MarshalJSON()
}

// DailyRow is one (symbol, day) of the cumulative time series. Realized,
// option premiums, dividends and fees are running sums up to and including
// Day; market value and unrealized are the value as of that day's snapshots
// only.
type DailyRow struct {
	Symbol string
	Day    date.Date
	Accumulator
	NetPnl int64
}

// MarshalJSON implements the json.Marshaler interface for DailyRow.
func (r DailyRow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", r.Symbol)
	w.Append("date", r.Day)
	appendAccumulator(&w, r.Accumulator)
	w.Append("netPnl", r.NetPnl)
	return w.MarshalJSON()
}

func appendAccumulator(w *jsonObjectWriter, a Accumulator) {
	w.Append("realized", a.Realized)
	w.Append("unrealized", a.Unrealized)
	w.Append("marketValue", a.MarketValue)
	w.Append("optionPremiums", a.OptionPremiums)
	w.Append("dividends", a.Dividends)
	w.Append("fees", a.Fees)
}

// Report is the result of one P&L computation pass.
type Report struct {
	UserID       string
	BaseCurrency string
	AsOf         time.Time
	Totals       []TotalRow
	Daily        []DailyRow
	// Anomalies lists, as machine-readable kind:symbol[:transactionId]
	// tags, every datum that had to be excluded from the totals. A
	// non-empty list does not fail the computation; callers must inspect
	// it to learn what the totals do not include.
	Anomalies []string
}

// MarshalJSON implements the json.Marshaler interface for Report.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("userId", r.UserID)
	w.Append("baseCurrency", r.BaseCurrency)
	w.Append("asOf", r.AsOf.UTC().Format(time.RFC3339))
	w.Append("totals", r.Totals)
	w.Append("daily", r.Daily)
	w.Append("anomalies", r.Anomalies)
	return w.MarshalJSON()
}

// ComputeTickerPnl replays transactions and position snapshots into
// per-symbol totals and a per-symbol-per-day cumulative series, everything
// converted to baseCurrency minor units.
//
// Transactions are processed in (executedAt, id) ascending order regardless
// of input order, so the computation is a pure, deterministic function of
// its inputs. Bad per-transaction data never aborts the pass: the offending
// transaction is skipped and an anomaly tag is recorded. Only precondition
// violations (an invalid base currency) return an error.
func ComputeTickerPnl(userID, baseCurrency string, asOf time.Time, txs []BrokerTransaction, snapshots []PositionSnapshot, rates RateSource) (*Report, error) {
	if err := ValidateCurrency(baseCurrency); err != nil {
		return nil, fmt.Errorf("invalid base currency: %w", err)
	}

	conv := NewConverter(rates)

	sorted := make([]BrokerTransaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ExecutedAt.Equal(sorted[j].ExecutedAt) {
			return sorted[i].ExecutedAt.Before(sorted[j].ExecutedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	totals := make(map[string]*Accumulator)
	daily := make(map[string]map[date.Date]*Accumulator)
	books := make(map[string]*book)
	anomalies := make([]string, 0)

	total := func(symbol string) *Accumulator {
		acc, ok := totals[symbol]
		if !ok {
			acc = &Accumulator{}
			totals[symbol] = acc
		}
		return acc
	}
	bucket := func(symbol string, day date.Date) *Accumulator {
		days, ok := daily[symbol]
		if !ok {
			days = make(map[date.Date]*Accumulator)
			daily[symbol] = days
		}
		acc, ok := days[day]
		if !ok {
			acc = &Accumulator{}
			days[day] = acc
		}
		return acc
	}
	anomaly := func(kind, symbol, txID string) {
		tag := kind + ":" + symbol
		if txID != "" {
			tag += ":" + txID
		}
		anomalies = append(anomalies, tag)
	}

	for i := range sorted {
		tx := &sorted[i]
		symbol, ok := tx.ResolveSymbol()
		if !ok {
			// Expected noise in heterogeneous feeds, not an anomaly.
			continue
		}
		// A resolved symbol gets a totals row even when every one of its
		// transactions is later excluded: a zero row plus anomaly tags
		// tells the caller the symbol was seen but not counted.
		total(symbol)

		conv.setOverrides(tx.fxOverrides(baseCurrency))
		day := date.FromTime(tx.ExecutedAt)
		grossCur := tx.grossCurrency(baseCurrency)
		quantity, haveQuantity := tx.resolveQuantity()
		gross, haveGross := tx.resolveGross(quantity, haveQuantity)
		kind := Classify(tx.Type, tx.Option)

		// Fees apply whenever present, regardless of kind.
		if fee, haveFee := tx.resolveFees(); haveFee {
			feeCur := tx.feeCurrency(baseCurrency)
			if converted, okConv := conv.Convert(fee, feeCur, baseCurrency, tx.ExecutedAt); okConv {
				total(symbol).Fees += converted
				bucket(symbol, day).Fees += converted
			} else {
				anomaly("fee_fx_missing", symbol, tx.ID)
			}
		} else if kind == KindFee && haveGross {
			// A fee transaction without a fee amount charges its gross.
			if converted, okConv := conv.Convert(gross, grossCur, baseCurrency, tx.ExecutedAt); okConv {
				total(symbol).Fees += converted
				bucket(symbol, day).Fees += converted
			} else {
				anomaly("fee_fx_missing", symbol, tx.ID)
			}
		}

		switch kind {
		case KindDividend:
			if !haveGross {
				continue
			}
			converted, okConv := conv.Convert(gross, grossCur, baseCurrency, tx.ExecutedAt)
			if !okConv {
				anomaly("dividend_fx_missing", symbol, tx.ID)
				continue
			}
			total(symbol).Dividends += converted
			bucket(symbol, day).Dividends += converted

		case KindOptionBuy, KindOptionSell:
			if !haveGross {
				continue
			}
			converted, okConv := conv.Convert(gross, grossCur, baseCurrency, tx.ExecutedAt)
			if !okConv {
				anomaly("gross_fx_missing", symbol, tx.ID)
				continue
			}
			if kind == KindOptionSell {
				total(symbol).OptionPremiums += converted
				bucket(symbol, day).OptionPremiums += converted
			} else {
				total(symbol).OptionPremiums -= converted
				bucket(symbol, day).OptionPremiums -= converted
			}

		case KindStockBuy, KindStockSell:
			if !haveQuantity || quantity.IsZero() {
				anomaly("quantity_missing", symbol, tx.ID)
				continue
			}
			if !haveGross {
				anomaly("gross_missing", symbol, tx.ID)
				continue
			}
			converted, okConv := conv.Convert(gross, grossCur, baseCurrency, tx.ExecutedAt)
			if !okConv {
				anomaly("gross_fx_missing", symbol, tx.ID)
				continue
			}
			bk, okBook := books[symbol]
			if !okBook {
				bk = &book{}
				books[symbol] = bk
			}
			var realized int64
			if kind == KindStockBuy {
				realized = bk.applyBuy(quantity.Abs(), converted)
			} else {
				realized = bk.applySell(quantity.Abs(), converted)
			}
			total(symbol).Realized += realized
			bucket(symbol, day).Realized += realized

		default:
			// KindFee was handled above; KindUnknown is silently excluded.
		}
	}
	conv.setOverrides(nil)

	for i := range snapshots {
		snap := &snapshots[i]
		symbol := snap.Instrument.Symbol
		if symbol == "" {
			continue
		}
		day := date.FromTime(snap.AsOf)
		if snap.MarketValue != nil {
			value, okConv := conv.Convert(snap.MarketValue.MinorUnits(), snapshotCurrency(snap.MarketValue, snap, baseCurrency), baseCurrency, snap.AsOf)
			if okConv {
				total(symbol).MarketValue += value
				bucket(symbol, day).MarketValue += value
			} else {
				anomaly("market_value_fx_missing", symbol, "")
			}
		}
		if snap.Unrealized != nil {
			value, okConv := conv.Convert(snap.Unrealized.MinorUnits(), snapshotCurrency(snap.Unrealized, snap, baseCurrency), baseCurrency, snap.AsOf)
			if okConv {
				total(symbol).Unrealized += value
				bucket(symbol, day).Unrealized += value
			} else {
				anomaly("unrealized_fx_missing", symbol, "")
			}
		}
	}

	report := &Report{
		UserID:       userID,
		BaseCurrency: baseCurrency,
		AsOf:         asOf,
		Totals:       make([]TotalRow, 0, len(totals)),
		Daily:        make([]DailyRow, 0),
		Anomalies:    anomalies,
	}

	symbols := make([]string, 0, len(totals))
	for symbol := range totals {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		acc := *totals[symbol]
		report.Totals = append(report.Totals, TotalRow{Symbol: symbol, Accumulator: acc, NetPnl: acc.NetPnl()})
	}

	dailySymbols := make([]string, 0, len(daily))
	for symbol := range daily {
		dailySymbols = append(dailySymbols, symbol)
	}
	sort.Strings(dailySymbols)
	for _, symbol := range dailySymbols {
		days := make([]date.Date, 0, len(daily[symbol]))
		for day := range daily[symbol] {
			days = append(days, day)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		// Flows accumulate across days; valuation is per-day only.
		var cum Accumulator
		for _, day := range days {
			delta := daily[symbol][day]
			cum.Realized += delta.Realized
			cum.OptionPremiums += delta.OptionPremiums
			cum.Dividends += delta.Dividends
			cum.Fees += delta.Fees
			row := DailyRow{
				Symbol: symbol,
				Day:    day,
				Accumulator: Accumulator{
					Realized:       cum.Realized,
					Unrealized:     delta.Unrealized,
					MarketValue:    delta.MarketValue,
					OptionPremiums: cum.OptionPremiums,
					Dividends:      cum.Dividends,
					Fees:           cum.Fees,
				},
			}
			row.NetPnl = row.Accumulator.NetPnl()
			report.Daily = append(report.Daily, row)
		}
	}

	return report, nil
}

// snapshotCurrency resolves a snapshot amount's currency: the amount's own,
// then the instrument's, then the base currency.
func snapshotCurrency(a *Amount, snap *PositionSnapshot, base string) string {
	if a.Currency() != "" {
		return a.Currency()
	}
	if snap.Instrument.Currency != "" {
		return snap.Instrument.Currency
	}
	return base
}
