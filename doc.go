// Package rebalance turns a hierarchical target asset-allocation policy
// into a flat mapping from ticker to absolute percentage of portfolio value.
//
// A policy is a list of named targets. Each target names a node of the
// allocation tree through a constraint (a path of attribute values followed
// by a grouping attribute) and declares how that node's value splits across
// the categories of the grouping attribute. Resolving a policy against the
// per-ticker metadata read from a broker CSV yields:
//   - the flat allocation (ticker -> absolute percentage, summing to 100),
//   - the targets reordered shallowest-first for reporting,
//   - the leaf groups, lists of tickers that share one leaf and are
//     interchangeable for proportional-share purposes.
//
// The resolver validates the policy strictly: every declared category must
// match at least one ticker and every observed category must be declared.
// The scope query (Scope) is the opposite: a best-effort lookup used by
// reporting to recover which tickers a target governs, long after the
// resolution tree has been discarded.
//
// This package serves as the foundational logic for the `rebalance`
// command-line tool. It performs no I/O and keeps no state: loading the
// YAML configuration and the positions CSV is the boundary's job
// (LoadConfig, ReadPositions), and everything downstream is a pure
// function over those inputs.
package rebalance
