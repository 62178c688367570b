// Package cmd implements the CLI application to rebalance a portfolio.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/rebalance"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&resolveCmd{}, "allocation")
	c.Register(&reportCmd{}, "allocation")
	c.Register(&scopeCmd{}, "allocation")
	c.Register(&checkCmd{}, "allocation")
	c.Register(&queryCmd{}, "allocation")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "rebalance.yaml", "Path to the YAML configuration file")

// loadInputs loads the configuration, then the positions CSV it points to.
func loadInputs() (*rebalance.Config, []rebalance.Position, *rebalance.Metadata, error) {
	cfg, err := rebalance.LoadConfig(*configFile)
	if err != nil {
		return nil, nil, nil, err
	}
	positions, meta, err := rebalance.LoadPositions(cfg.PositionsCSV)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, positions, meta, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer is unavailable (e.g. a dumb terminal).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
