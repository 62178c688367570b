package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"github.com/google/subcommands"
)

// resolveCmd holds the flags for the 'resolve' subcommand.
type resolveCmd struct {
	json bool
}

func (*resolveCmd) Name() string { return "resolve" }
func (*resolveCmd) Synopsis() string {
	return "resolve the hierarchical policy into a flat per-ticker allocation"
}
func (*resolveCmd) Usage() string {
	return `rebalance resolve [-json]

  Resolves the target_asset_alloc hierarchy against the positions CSV and
  displays the absolute target percentage of every ticker, together with
  the leaf groups.
`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the resolution as JSON instead of markdown.")
}

func (c *resolveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, meta, err := loadInputs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	res, err := rebalance.Resolve(cfg.Policy, meta)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := rebalance.EncodeResolution(os.Stdout, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.AllocationMarkdown(res))
	return subcommands.ExitSuccess
}
