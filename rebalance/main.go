package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rebalance/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: only active when invoked by the shell's completion
	// hooks (see the posener/complete install instructions), a no-op
	// otherwise.
	completion := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"resolve": {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"report":  {},
			"scope":   {Args: predict.Something},
			"check":   {Flags: map[string]complete.Predictor{"strict": predict.Nothing}},
			"query":   {Args: predict.Something},
			"topic":   {Args: predict.Something},
			"assist":  {Args: predict.Something},
		},
	}
	completion.Complete("rebalance")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "documentation")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
