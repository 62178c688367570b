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

type scopeCmd struct {
	quiet bool
}

func (*scopeCmd) Name() string     { return "scope" }
func (*scopeCmd) Synopsis() string { return "list the tickers matching a list of filter values" }
func (*scopeCmd) Usage() string {
	return `rebalance scope [-q] <value>...

  Lists the tickers whose metadata matches every given attribute value,
  e.g. 'rebalance scope equity US'. Values are matched against whatever
  attribute they belong to; unknown values are ignored. This is the same
  lookup the report uses to find the tickers a policy target governs.
`
}

func (c *scopeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "Print one bare ticker per line, for scripting.")
}

func (c *scopeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, _, meta, err := loadInputs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tickers := rebalance.Scope(f.Args(), meta)
	if c.quiet {
		for _, ticker := range tickers {
			fmt.Println(ticker)
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.ScopeMarkdown(f.Args(), tickers))
	return subcommands.ExitSuccess
}
