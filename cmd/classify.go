package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/mhamel/wheelbook"
)

// classifyCmd shows how each transaction's free-text type label maps onto
// the two classification taxonomies. It exists to debug broker exports
// whose labels do not classify the way the user expects.
type classifyCmd struct {
	transactionsFile string
}

func (*classifyCmd) Name() string { return "classify" }
func (*classifyCmd) Synopsis() string {
	return "shows how each transaction classifies, for export debugging"
}
func (*classifyCmd) Usage() string {
	return `wbk classify [-t <transactions>]

  Reads a JSONL transaction export (stdin by default) and prints, per
  transaction, the resolved symbol, the P&L kind and the wheel leg kind.
  Transactions printed as "unknown" or "-" are ignored by pnl and wheel.

`
}

func (c *classifyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.transactionsFile, "t", "", "Transactions file (JSONL). Reads stdin by default.")
}

func (c *classifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := loadTransactions(c.transactionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYMBOL\tTYPE\tKIND\tWHEEL")
	for _, tx := range txs {
		symbol, ok := tx.ResolveSymbol()
		if !ok {
			symbol = "-"
		}
		kind := wheelbook.Classify(tx.Type, tx.Option)
		wheelLeg := "-"
		if leg, ok := wheelbook.ClassifyWheel(tx.Type, tx.Option); ok {
			wheelLeg = string(leg)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", tx.ID, symbol, tx.Type, kind, wheelLeg)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
