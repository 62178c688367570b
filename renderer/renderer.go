// Package renderer turns resolution and review data into markdown for the
// terminal.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/rebalance"
)

// AllocationMarkdown renders the flat allocation and the leaf groups.
func AllocationMarkdown(res *rebalance.Resolution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Target Allocation\n\n")
	fmt.Fprintln(&b, "| Ticker | Target |")
	fmt.Fprintln(&b, "|:---|---:|")
	for ticker, pct := range res.Flat.All() {
		fmt.Fprintf(&b, "| %s | %s |\n", ticker, pct)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", res.Flat.Total())

	fmt.Fprintf(&b, "\n## Leaf Groups\n\n")
	fmt.Fprintln(&b, "Tickers in the same group split their leaf's share equally.")
	fmt.Fprintln(&b)
	for i, group := range res.Groups {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.Join(group, ", "))
	}
	return b.String()
}

// ReviewMarkdown renders the full report: one summary table per target,
// shallowest-first, then the per-ticker table.
func ReviewMarkdown(rv *rebalance.Review) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Rebalance Report\n\n")

	if rv.MixedCurrency {
		fmt.Fprintln(&b, "> Positions are quoted in more than one currency; amounts are not converted and mixed totals carry no currency.")
		fmt.Fprintln(&b)
	}

	for _, target := range rv.Targets {
		fmt.Fprintf(&b, "## %s - Constraint: [%s]\n\n", target.Name, strings.Join(target.Constraint, ", "))
		fmt.Fprintln(&b, "| Category | Amount | Current | Target |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|")
		for _, c := range target.Categories {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Category, c.Amount, c.Current, c.Target)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "## Positions\n\n")
	fmt.Fprintln(&b, "| Ticker | Quantity | Price | Amount | Current | Target | Drift |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, row := range rv.Tickers {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			row.Ticker,
			row.Quantity,
			row.Price,
			row.Amount,
			row.Current,
			row.Target,
			row.Drift().SignedString(),
		)
	}

	fmt.Fprintf(&b, "\nLargest discrepancy between the current and the target asset allocation is %s.\n", rv.MaxDrift)

	if len(rv.Cash) > 0 {
		fmt.Fprintf(&b, "\n## Cash on hand\n\n")
		for _, cash := range rv.Cash {
			fmt.Fprintf(&b, "- %s\n", cash)
		}
	}
	return b.String()
}

// ScopeMarkdown renders a scope query result.
func ScopeMarkdown(filterValues, tickers []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Scope [%s]\n\n", strings.Join(filterValues, ", "))
	if len(tickers) == 0 {
		fmt.Fprintln(&b, "No tickers match this scope.")
		return b.String()
	}
	for _, ticker := range tickers {
		fmt.Fprintf(&b, "- %s\n", ticker)
	}
	return b.String()
}
