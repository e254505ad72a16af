// Package renderer turns computed reports into markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/mhamel/wheelbook"
)

// money formats a minor-unit amount in the report's base currency.
func money(value int64, currency string) string {
	return wheelbook.A(value, currency).String()
}

func signed(value int64, currency string) string {
	return wheelbook.A(value, currency).SignedString()
}

// ReportMarkdown renders a profit and loss report as a markdown document:
// a per-symbol totals table, optionally the daily rows, and the anomaly
// list when the computation was degraded.
func ReportMarkdown(r *wheelbook.Report, withDaily bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("P&L Report (%s)", r.BaseCurrency))
	doc.PlainText(fmt.Sprintf("As of %s", r.AsOf.UTC().Format(time.RFC3339)))

	if len(r.Totals) > 0 {
		doc.H2("Totals by Symbol")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{
				"Symbol",
				"Realized",
				"Unrealized",
				"Premiums",
				"Dividends",
				"Fees",
				md.Bold("Net P&L"),
			},
		}
		for _, row := range r.Totals {
			table.Rows = append(table.Rows, []string{
				row.Symbol,
				signed(row.Realized, r.BaseCurrency),
				signed(row.Unrealized, r.BaseCurrency),
				signed(row.OptionPremiums, r.BaseCurrency),
				signed(row.Dividends, r.BaseCurrency),
				money(row.Fees, r.BaseCurrency),
				md.Bold(signed(row.NetPnl, r.BaseCurrency)),
			})
		}
		doc.Table(table)
	}

	if withDaily && len(r.Daily) > 0 {
		doc.H2("Daily Breakdown")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{
				"Symbol",
				"Date",
				"Realized",
				"Market Value",
				"Net P&L",
			},
		}
		for _, row := range r.Daily {
			table.Rows = append(table.Rows, []string{
				row.Symbol,
				row.Day.String(),
				signed(row.Realized, r.BaseCurrency),
				money(row.MarketValue, r.BaseCurrency),
				signed(row.NetPnl, r.BaseCurrency),
			})
		}
		doc.Table(table)
	}

	if len(r.Anomalies) > 0 {
		doc.H2("Anomalies")
		doc.PlainText("The figures above are degraded by the following issues:")
		doc.BulletList(r.Anomalies...)
	}

	return doc.String()
}

// CyclesMarkdown renders detected wheel cycles, one section per cycle.
func CyclesMarkdown(cycles []wheelbook.WheelCycle) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Wheel Cycles")
	if len(cycles) == 0 {
		doc.PlainText("No wheel cycles detected.")
		return doc.String()
	}

	for i, cycle := range cycles {
		doc.H2(fmt.Sprintf("Cycle %d: %s (%s)", i+1, cycle.Symbol, cycle.Status))
		span := fmt.Sprintf("Opened %s", cycle.OpenedAt.UTC().Format("2006-01-02"))
		if !cycle.ClosedAt.IsZero() {
			span += fmt.Sprintf(", closed %s", cycle.ClosedAt.UTC().Format("2006-01-02"))
		}
		doc.PlainText(span)

		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
			},
			Header: []string{"Leg", "Date", "Transaction"},
		}
		for _, leg := range cycle.Legs {
			table.Rows = append(table.Rows, []string{
				string(leg.Kind),
				leg.OccurredAt.UTC().Format("2006-01-02"),
				leg.TransactionID,
			})
		}
		doc.Table(table)
	}

	return doc.String()
}
