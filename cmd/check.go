package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

type checkCmd struct {
	strict bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the policy against the positions" }
func (*checkCmd) Usage() string {
	return `rebalance check [-strict]

  Dry-runs the resolution and reports configuration problems: percentage
  sums off 100, categories with no matching tickers, tickers with no
  allocation entry, unresolvable constraints, double subdivisions.

  It also scans the metadata for attribute values reused across columns.
  Such collisions make scope lookups ambiguous (the first column wins);
  they are warnings by default and failures with -strict.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Fail on attribute value collisions instead of warning.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, meta, err := loadInputs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess

	if _, err := rebalance.Resolve(cfg.Policy, meta); err != nil {
		var cerr *rebalance.ConfigError
		if errors.As(err, &cerr) {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", cerr)
		} else {
			// an InternalError here is a bug in the resolver, not in the
			// configuration; say so explicitly
			fmt.Fprintf(os.Stderr, "resolver defect (please report): %v\n", err)
		}
		status = subcommands.ExitFailure
	}

	collisions := meta.CheckValueCollisions()
	for _, col := range collisions {
		fmt.Fprintf(os.Stderr, "warning: value %q belongs to both %q and %q; scope lookups resolve it to %q\n",
			col.Value, col.Kept, col.Shadow, col.Kept)
	}
	if c.strict && len(collisions) > 0 {
		status = subcommands.ExitFailure
	}

	if status == subcommands.ExitSuccess {
		fmt.Println("ok")
	}
	return status
}
