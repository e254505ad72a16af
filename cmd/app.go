// Package cmd implements the CLI application to compute P&L reports and
// detect wheel cycles from broker transaction exports.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/mhamel/wheelbook"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&pnlCmd{}, "reports")
	c.Register(&wheelCmd{}, "reports")
	c.Register(&classifyCmd{}, "reports")

	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var baseCurrency = flag.String("base", "USD", "Base currency of the reports (ISO 4217 code)")
var ratesFile = flag.String("rates", "", "Path to a JSON exchange rates file ({\"EURUSD\": 1.0834, ...})")

// openInput opens the named file, or stdin for "" and "-".
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// loadTransactions reads a JSONL transaction export from the given path or stdin.
func loadTransactions(path string) ([]wheelbook.BrokerTransaction, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return wheelbook.DecodeTransactions(in)
}

// loadSnapshots reads a JSONL snapshot export. An empty path means no snapshots.
func loadSnapshots(path string) ([]wheelbook.PositionSnapshot, error) {
	if path == "" {
		return nil, nil
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return wheelbook.DecodeSnapshots(in)
}

// loadRates reads the -rates file into a static rate source. With no file
// configured, only same-currency transactions and per-transaction overrides
// can convert.
func loadRates() (wheelbook.Rates, error) {
	if *ratesFile == "" {
		return nil, nil
	}
	in, err := os.Open(*ratesFile)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return wheelbook.DecodeRates(in)
}

// parseAsOf parses the -asof flag, defaulting to now.
func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -asof %q: want RFC 3339 or YYYY-MM-DD", value)
	}
	return t, nil
}
