package rebalance

// ReverseIndex maps an attribute value back to the attribute carrying it.
//
// The index is built by scanning tickers in metadata order and attributes in
// column order; the first attribute seen for a value wins. This is only
// unambiguous when attribute values are unique across attributes, a
// precondition on the metadata universe that Metadata.CheckValueCollisions
// can verify. Empty values are never indexed.
type ReverseIndex map[string]string

// NewReverseIndex inverts the metadata from value to attribute name.
func NewReverseIndex(meta *Metadata) ReverseIndex {
	idx := make(ReverseIndex)
	for _, ticker := range meta.Tickers() {
		for _, attr := range meta.Attributes() {
			v := meta.Value(ticker, attr)
			if v == "" {
				continue
			}
			if _, ok := idx[v]; !ok {
				idx[v] = attr
			}
		}
	}
	return idx
}

// Attribute returns the attribute a value belongs to.
func (idx ReverseIndex) Attribute(value string) (string, bool) {
	attr, ok := idx[value]
	return attr, ok
}

// Scope returns the tickers matching every filter value of a target's path,
// in metadata order. It recovers a tree node's membership from the flat
// metadata alone: the resolution tree is gone by the time reports need it,
// and the filter values do not say which attribute they constrain, so each
// one is translated through the reverse index first.
//
// Scope is a best-effort reporting query and has no failure modes: filter
// values with no reverse-index entry are dropped, and an empty result just
// means no ticker is in scope.
func Scope(filterValues []string, meta *Metadata) []string {
	idx := NewReverseIndex(meta)

	type condition struct{ attribute, value string }
	var conditions []condition
	for _, v := range filterValues {
		if attr, ok := idx[v]; ok {
			conditions = append(conditions, condition{attr, v})
		}
	}

	var scoped []string
	for _, ticker := range meta.Tickers() {
		matches := true
		for _, c := range conditions {
			if meta.Value(ticker, c.attribute) != c.value {
				matches = false
				break
			}
		}
		if matches {
			scoped = append(scoped, ticker)
		}
	}
	return scoped
}
