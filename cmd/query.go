package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "run a JSONPath query over the resolution" }
func (*queryCmd) Usage() string {
	return `rebalance query <jsonpath>

  Resolves the policy, then evaluates a JSONPath expression over the JSON
  form of the result. Useful for scripting, e.g.:

    rebalance query '$.flat.VTI'
    rebalance query '$.targets[0].name'
    rebalance query '$.groups[*]'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "query expects exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}

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

	// jsonpath evaluates over generic JSON values, so round-trip the
	// resolution through its JSON form.
	raw, err := json.Marshal(res)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	jval, err := jsonpath.Get(f.Arg(0), jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error evaluating %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jval); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
