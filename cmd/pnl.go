package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mhamel/wheelbook"
	"github.com/mhamel/wheelbook/renderer"
)

type pnlCmd struct {
	transactionsFile string
	snapshotsFile    string
	userID           string
	asOf             string
	format           string
	daily            bool
}

func (*pnlCmd) Name() string { return "pnl" }
func (*pnlCmd) Synopsis() string {
	return "computes per-symbol profit and loss from a transaction export"
}
func (*pnlCmd) Usage() string {
	return `wbk pnl [-t <transactions>] [-s <snapshots>] [-asof <date>] [-f json|md]

  Reads a JSONL transaction export (stdin by default), converts every figure
  into the base currency, and prints per-symbol realized gains, option
  premiums, dividends, fees and, when snapshots are given, unrealized gains
  and market value.

Usage Examples:
# Report over an export file with snapshots, as markdown.
$ wbk -rates rates.json pnl -t transactions.jsonl -s positions.jsonl -f md

# Pipe an export through, machine-readable.
$ broker-export | wbk pnl

`
}

func (p *pnlCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.transactionsFile, "t", "", "Transactions file (JSONL). Reads stdin by default.")
	f.StringVar(&p.snapshotsFile, "s", "", "Position snapshots file (JSONL). Optional.")
	f.StringVar(&p.userID, "user", "", "User id to stamp on the report. Optional.")
	f.StringVar(&p.asOf, "asof", "", "Valuation timestamp (RFC 3339 or YYYY-MM-DD). Defaults to now.")
	f.StringVar(&p.format, "f", "json", "Output format: json or md.")
	f.BoolVar(&p.daily, "daily", false, "Include the daily breakdown in markdown output.")
}

func (p *pnlCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := loadTransactions(p.transactionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	snapshots, err := loadSnapshots(p.snapshotsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshots: %v\n", err)
		return subcommands.ExitFailure
	}
	rates, err := loadRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	asOf, err := parseAsOf(p.asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := wheelbook.ComputeTickerPnl(p.userID, *baseCurrency, asOf, txs, snapshots, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}

	switch p.format {
	case "json":
		if err := wheelbook.EncodeReport(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	case "md":
		printMarkdown(renderer.ReportMarkdown(report, p.daily))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q: want json or md\n", p.format)
		return subcommands.ExitFailure
	}

	if len(report.Anomalies) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d anomalies; totals are degraded (see the anomalies list).\n", len(report.Anomalies))
	}
	return subcommands.ExitSuccess
}
