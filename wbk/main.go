package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/mhamel/wheelbook/cmd"
)

// completion describes the command tree for shell completion. It exits the
// process when invoked by the shell's completion hook.
func completion(name string) {
	files := predict.Files("*.jsonl")
	inputFlags := map[string]complete.Predictor{
		"t": files,
		"s": files,
		"f": predict.Set{"json", "md"},
	}
	root := &complete.Command{
		Flags: map[string]complete.Predictor{
			"base":  predict.Set{"USD", "EUR", "GBP", "CHF", "CAD", "JPY"},
			"rates": predict.Files("*.json"),
		},
		Sub: map[string]*complete.Command{
			"pnl":      {Flags: inputFlags},
			"wheel":    {Flags: inputFlags},
			"classify": {Flags: inputFlags},
			"assist":   {Flags: inputFlags},
			"topic":    {},
		},
	}
	root.Complete(name)
}

func main() {
	name := path.Base(os.Args[0])
	completion(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
