package rebalance

import "slices"

// Metadata holds the per-ticker attributes read from the positions file.
//
// Both the ticker order and the attribute order are the insertion order from
// the source (row order and column order of the CSV). Every computation that
// scans the metadata iterates in that order, so resolving twice from the
// same inputs gives identically ordered results.
type Metadata struct {
	attributes []string
	tickers    []string
	rows       map[string]map[string]string
}

// NewMetadata returns an empty metadata store over the given attributes.
// Values set for attributes not listed here are dropped.
func NewMetadata(attributes ...string) *Metadata {
	return &Metadata{
		attributes: slices.Clone(attributes),
		rows:       make(map[string]map[string]string),
	}
}

// Add records the attribute values for a ticker. Adding the same ticker
// twice overwrites the previous values but keeps its original position.
func (m *Metadata) Add(ticker string, values map[string]string) {
	if _, ok := m.rows[ticker]; !ok {
		m.tickers = append(m.tickers, ticker)
	}
	row := make(map[string]string, len(m.attributes))
	for _, attr := range m.attributes {
		if v, ok := values[attr]; ok {
			row[attr] = v
		}
	}
	m.rows[ticker] = row
}

func (m *Metadata) Has(ticker string) bool {
	_, ok := m.rows[ticker]
	return ok
}

// Tickers returns the tickers in insertion order. The caller must not
// modify the returned slice.
func (m *Metadata) Tickers() []string { return m.tickers }

// Attributes returns the attribute names in source column order.
func (m *Metadata) Attributes() []string { return m.attributes }

// Value returns the ticker's value for an attribute, or "" when the ticker
// does not define it.
func (m *Metadata) Value(ticker, attribute string) string {
	return m.rows[ticker][attribute]
}

func (m *Metadata) Len() int { return len(m.tickers) }

// ValueCollision reports an attribute value that appears under two
// different attributes. The reverse lookup used by Scope keeps the first
// attribute only, so a collision silently shadows the second one.
type ValueCollision struct {
	Value  string
	Kept   string // attribute the reverse lookup resolves the value to
	Shadow string // attribute whose use of the value is shadowed
}

// CheckValueCollisions scans the metadata for values reused across
// attributes. The resolver and the scope query both tolerate collisions
// (first attribute wins); this check exists for the `check` command so the
// ambiguity can be reported loudly instead.
func (m *Metadata) CheckValueCollisions() []ValueCollision {
	var collisions []ValueCollision
	firstSeen := make(map[string]string) // value -> attribute
	reported := make(map[[2]string]bool) // (value, attribute) pairs already reported
	for _, ticker := range m.tickers {
		for _, attr := range m.attributes {
			v := m.rows[ticker][attr]
			if v == "" {
				continue
			}
			kept, ok := firstSeen[v]
			if !ok {
				firstSeen[v] = attr
				continue
			}
			if kept != attr && !reported[[2]string{v, attr}] {
				reported[[2]string{v, attr}] = true
				collisions = append(collisions, ValueCollision{Value: v, Kept: kept, Shadow: attr})
			}
		}
	}
	return collisions
}
