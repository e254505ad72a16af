package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/mhamel/wheelbook"
)

const assistModel = "gemini-2.5-flash"

const assistSystemPrompt = `You are an assistant for a retail options trader
running the wheel strategy. You are given a per-symbol P&L report as JSON:
realized and unrealized gains, option premiums, dividends and fees, all in
minor units of the report's base currency, plus a list of anomaly tags for
data that could not be included. Comment on the report: where the income
comes from, which symbols drag, and what the anomalies mean for trust in
the totals. Answer in markdown, concise.`

// assistCmd sends a computed P&L report to Gemini and prints its
// commentary. It needs GEMINI_API_KEY (or Vertex credentials) in the
// environment, as picked up by the genai client.
type assistCmd struct {
	transactionsFile string
	snapshotsFile    string
	asOf             string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "asks the AI assistant to comment on the P&L report" }
func (*assistCmd) Usage() string {
	return `wbk assist [-t <transactions>] [-s <snapshots>] [question...]

  Computes the P&L report and asks the AI assistant to comment on it.
  Extra arguments are passed along as a question about the report.

Usage Examples:
$ wbk assist -t transactions.jsonl which symbol should I stop wheeling?

`
}

func (a *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.transactionsFile, "t", "", "Transactions file (JSONL). Reads stdin by default.")
	f.StringVar(&a.snapshotsFile, "s", "", "Position snapshots file (JSONL). Optional.")
	f.StringVar(&a.asOf, "asof", "", "Valuation timestamp (RFC 3339 or YYYY-MM-DD). Defaults to now.")
}

func (a *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := loadTransactions(a.transactionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	snapshots, err := loadSnapshots(a.snapshotsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshots: %v\n", err)
		return subcommands.ExitFailure
	}
	rates, err := loadRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading rates: %v\n", err)
		return subcommands.ExitFailure
	}
	asOf, err := parseAsOf(a.asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := wheelbook.ComputeTickerPnl("", *baseCurrency, asOf, txs, snapshots, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	prompt := assistSystemPrompt + "\n\nReport:\n" + string(reportJSON)
	if f.NArg() > 0 {
		prompt += "\n\nQuestion: " + strings.Join(f.Args(), " ")
	}

	result, err := client.Models.GenerateContent(ctx, assistModel, genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error from the assistant:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(result.Text())

	return subcommands.ExitSuccess
}
