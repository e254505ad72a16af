package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"

	"github.com/mhamel/wheelbook"
	"github.com/mhamel/wheelbook/renderer"
)

type wheelCmd struct {
	transactionsFile string
	symbol           string
	format           string
}

func (*wheelCmd) Name() string { return "wheel" }
func (*wheelCmd) Synopsis() string {
	return "detects wheel option cycles in a transaction export"
}
func (*wheelCmd) Usage() string {
	return `wbk wheel [-t <transactions>] [-symbol <symbol>] [-f json|md]

  Reads a JSONL transaction export (stdin by default) and partitions each
  symbol's history into wheel cycles: sold put, assignment, covered calls,
  called away. With -symbol only that symbol is scanned; otherwise every
  symbol found in the export is.

Usage Examples:
# All cycles on AAPL, one JSON line per cycle.
$ wbk wheel -t transactions.jsonl -symbol AAPL

`
}

func (w *wheelCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&w.transactionsFile, "t", "", "Transactions file (JSONL). Reads stdin by default.")
	f.StringVar(&w.symbol, "symbol", "", "Only detect cycles for this symbol.")
	f.StringVar(&w.format, "f", "json", "Output format: json or md.")
}

func (w *wheelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := loadTransactions(w.transactionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	bySymbol := make(map[string][]wheelbook.BrokerTransaction)
	for _, tx := range txs {
		symbol, ok := tx.ResolveSymbol()
		if !ok {
			continue
		}
		if w.symbol != "" && symbol != w.symbol {
			continue
		}
		bySymbol[symbol] = append(bySymbol[symbol], tx)
	}

	symbols := make([]string, 0, len(bySymbol))
	for symbol := range bySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var cycles []wheelbook.WheelCycle
	for _, symbol := range symbols {
		cycles = append(cycles, wheelbook.DetectWheelCycles(symbol, bySymbol[symbol])...)
	}

	switch w.format {
	case "json":
		if err := wheelbook.EncodeCycles(os.Stdout, cycles); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	case "md":
		printMarkdown(renderer.CyclesMarkdown(cycles))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q: want json or md\n", w.format)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
