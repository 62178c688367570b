package rebalance

import (
	"fmt"
	"iter"
	"slices"
)

// sumTolerance is how far a percentage sum may drift from 100 before it is
// rejected. It applies both to each target's declared weights and to the
// final flat allocation total.
const sumTolerance = 0.01

// CategoryWeight is one declared percentage within a target.
type CategoryWeight struct {
	Category string
	Weight   Percent
}

// Target is one named entry of the allocation policy. Its constraint is a
// path of attribute values leading to a node of the allocation tree,
// terminated by the attribute whose categories subdivide that node. Weights
// keep their declaration order.
type Target struct {
	Name       string
	Constraint []string
	Weights    []CategoryWeight
}

// FilterValues returns the constraint without its final element: the path
// selecting the tree node this target subdivides.
func (t Target) FilterValues() []string { return t.Constraint[:len(t.Constraint)-1] }

// GroupingAttribute returns the constraint's final element: the attribute
// whose categories split the node.
func (t Target) GroupingAttribute() string { return t.Constraint[len(t.Constraint)-1] }

// Weight returns the declared percentage for a category.
func (t Target) Weight(category string) (Percent, bool) {
	for _, w := range t.Weights {
		if w.Category == category {
			return w.Weight, true
		}
	}
	return 0, false
}

func (t Target) weightSum() Percent {
	var sum Percent
	for _, w := range t.Weights {
		sum += w.Weight
	}
	return sum
}

// Policy is the list of targets in declaration order.
type Policy []Target

// FlatAllocation maps tickers to absolute percentages of portfolio value.
// Iteration order is the order in which tickers were first assigned a
// share, which only depends on the policy and the metadata order.
type FlatAllocation struct {
	tickers []string
	pct     map[string]Percent
}

func newFlatAllocation() *FlatAllocation {
	return &FlatAllocation{pct: make(map[string]Percent)}
}

func (f *FlatAllocation) add(ticker string, share Percent) {
	if _, ok := f.pct[ticker]; !ok {
		f.tickers = append(f.tickers, ticker)
	}
	// a ticker lives in exactly one leaf, but accumulating keeps a ticker
	// reachable through several leaves from being silently dropped
	f.pct[ticker] += share
}

// Get returns the ticker's absolute percentage (0 for unknown tickers).
func (f *FlatAllocation) Get(ticker string) Percent { return f.pct[ticker] }

// Tickers returns the tickers in assignment order.
func (f *FlatAllocation) Tickers() []string { return f.tickers }

func (f *FlatAllocation) Len() int { return len(f.tickers) }

// Total returns the sum of all shares. On a successful resolution it is
// 100 within the tolerance.
func (f *FlatAllocation) Total() Percent {
	var sum Percent
	for _, t := range f.tickers {
		sum += f.pct[t]
	}
	return sum
}

// All iterates over (ticker, percentage) pairs in assignment order.
func (f *FlatAllocation) All() iter.Seq2[string, Percent] {
	return func(yield func(string, Percent) bool) {
		for _, t := range f.tickers {
			if !yield(t, f.pct[t]) {
				return
			}
		}
	}
}

// Resolution is the outcome of resolving a policy against the metadata.
// The allocation tree itself is not part of it: it is discarded once
// flattened, and scope queries re-derive node membership from the metadata.
type Resolution struct {
	Flat    *FlatAllocation
	Targets Policy     // shallowest-first, ties in declaration order
	Groups  [][]string // leaf groups, depth-first
}

// A tree node is either a leaf still open for subdivision or a branch
// already split by one target. Keeping the two as distinct types makes
// "already subdivided" a type check instead of a nil check.
type node interface {
	leaves(visit func(*leaf))
}

type leaf struct {
	tickers  []string
	absolute Percent
}

func (l *leaf) leaves(visit func(*leaf)) { visit(l) }

type branch struct {
	attribute string
	absolute  Percent
	order     []string
	children  map[string]node
}

func (b *branch) leaves(visit func(*leaf)) {
	for _, key := range b.order {
		b.children[key].leaves(visit)
	}
}

// Resolve converts the hierarchical policy into a flat per-ticker
// allocation. It returns the flat allocation, the targets reordered
// shallowest-first (reporting renders parent sections before children), and
// the leaf groups.
//
// Resolve is pure and deterministic: identical inputs give identically
// ordered outputs. Configuration faults come back as *ConfigError; a final
// total that does not sum back to 100 comes back as *InternalError because
// it can only be a resolver defect.
func Resolve(policy Policy, meta *Metadata) (*Resolution, error) {
	if len(policy) == 0 {
		return nil, &ConfigError{Reason: "empty policy"}
	}

	// Shallow targets carve the tree before deep ones, whatever the
	// declaration order; among equal depths the declaration order stands.
	targets := slices.Clone(policy)
	slices.SortStableFunc(targets, func(a, b Target) int {
		return len(a.Constraint) - len(b.Constraint)
	})

	var root node = &leaf{tickers: meta.Tickers(), absolute: 100}

	for _, t := range targets {
		if len(t.Constraint) == 0 {
			return nil, &ConfigError{Target: t.Name, Reason: "missing constraint"}
		}
		if len(t.Weights) == 0 {
			return nil, &ConfigError{Target: t.Name, Reason: "no allocation entries"}
		}
		if sum := t.weightSum(); float64((sum - 100).Abs()) > sumTolerance {
			return nil, &ConfigError{Target: t.Name, Reason: fmt.Sprintf("allocations sum to %.2f, not 100", float64(sum))}
		}

		// Navigate to the node this target subdivides, remembering how to
		// replace it in its parent.
		cur, set := root, func(n node) { root = n }
		for _, key := range t.FilterValues() {
			b, ok := cur.(*branch)
			if !ok {
				return nil, &ConfigError{Target: t.Name, Reason: fmt.Sprintf("cannot navigate to %q: node is a leaf", key)}
			}
			child, ok := b.children[key]
			if !ok {
				return nil, &ConfigError{Target: t.Name, Reason: fmt.Sprintf("child %q not found, available: %v", key, b.order)}
			}
			cur, set = child, func(n node) { b.children[key] = n }
		}
		lf, ok := cur.(*leaf)
		if !ok {
			return nil, &ConfigError{Target: t.Name, Reason: fmt.Sprintf("node at %v is already subdivided", t.FilterValues())}
		}

		part := partitionBy(lf.tickers, meta, t.GroupingAttribute())

		// Declared weights and the observed partition must be in exact
		// bijection: fabricating or dropping a category would misstate the
		// user's intent.
		for _, w := range t.Weights {
			if _, ok := part.members[w.Category]; !ok {
				return nil, &ConfigError{Target: t.Name, Reason: fmt.Sprintf("allocation key %q has no matching tickers in attribute %q", w.Category, t.GroupingAttribute())}
			}
		}
		for _, category := range part.order {
			if _, ok := t.Weight(category); !ok {
				return nil, &ConfigError{Target: t.Name, Reason: fmt.Sprintf("tickers with %s=%q exist but have no allocation entry", t.GroupingAttribute(), category)}
			}
		}

		nb := &branch{
			attribute: t.GroupingAttribute(),
			absolute:  lf.absolute,
			children:  make(map[string]node, len(t.Weights)),
		}
		for _, w := range t.Weights {
			nb.order = append(nb.order, w.Category)
			nb.children[w.Category] = &leaf{
				tickers:  part.members[w.Category],
				absolute: lf.absolute * w.Weight / 100,
			}
		}
		set(nb)
	}

	flat := newFlatAllocation()
	var groups [][]string
	root.leaves(func(lf *leaf) {
		if len(lf.tickers) == 0 {
			// a category whose tickers were all filtered out upstream;
			// tolerated, it just allocates nothing
			return
		}
		groups = append(groups, lf.tickers)
		share := lf.absolute / Percent(len(lf.tickers))
		for _, ticker := range lf.tickers {
			flat.add(ticker, share)
		}
	})

	if total := flat.Total(); float64((total - 100).Abs()) > sumTolerance {
		return nil, &InternalError{Reason: fmt.Sprintf("resolved allocations sum to %.4f%%, expected 100%%", float64(total))}
	}

	return &Resolution{Flat: flat, Targets: targets, Groups: groups}, nil
}

// partition is the split of a node's tickers by one attribute. Category
// order is first-appearance order among the tickers.
type partition struct {
	order   []string
	members map[string][]string
}

// partitionBy groups tickers by their value under attribute. Tickers that
// do not define the attribute land in the "" bucket.
func partitionBy(tickers []string, meta *Metadata, attribute string) partition {
	p := partition{members: make(map[string][]string)}
	for _, ticker := range tickers {
		value := meta.Value(ticker, attribute)
		if _, ok := p.members[value]; !ok {
			p.order = append(p.order, value)
		}
		p.members[value] = append(p.members[value], ticker)
	}
	return p
}
