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

type reportCmd struct{}

func (*reportCmd) Name() string { return "report" }
func (*reportCmd) Synopsis() string {
	return "display the current allocation against the target, per target and per ticker"
}
func (*reportCmd) Usage() string {
	return `rebalance report

  Displays one summary table per policy target (parent targets first) with
  the current and the target allocation of each category, followed by the
  per-ticker table and the largest discrepancy. Amounts come from the
  positions CSV; nothing is fetched.
`
}

func (*reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, positions, meta, err := loadInputs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	res, err := rebalance.Resolve(cfg.Policy, meta)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	review := rebalance.NewReview(res, meta, positions, cfg.Cash)
	printMarkdown(renderer.ReviewMarkdown(review))
	return subcommands.ExitSuccess
}
