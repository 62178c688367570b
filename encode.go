package rebalance

import (
	"encoding/json"
	"io"
)

// JSON shapes for the resolution. The flat allocation is an object (JSON
// object keys marshal in sorted order, so the output is stable); targets
// and groups are arrays to keep their computed order.

type jsonWeight struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
}

type jsonTarget struct {
	Name        string       `json:"name"`
	Constraint  []string     `json:"constraint"`
	Allocations []jsonWeight `json:"allocations"`
}

type jsonResolution struct {
	Flat    map[string]float64 `json:"flat"`
	Targets []jsonTarget       `json:"targets"`
	Groups  [][]string         `json:"groups"`
}

// MarshalJSON encodes the resolution with a stable layout, suitable for
// scripting (see the query command).
func (r *Resolution) MarshalJSON() ([]byte, error) {
	out := jsonResolution{
		Flat:   make(map[string]float64, r.Flat.Len()),
		Groups: r.Groups,
	}
	for ticker, pct := range r.Flat.All() {
		out.Flat[ticker] = float64(pct)
	}
	for _, t := range r.Targets {
		jt := jsonTarget{Name: t.Name, Constraint: t.Constraint}
		for _, w := range t.Weights {
			jt.Allocations = append(jt.Allocations, jsonWeight{Category: w.Category, Percent: float64(w.Weight)})
		}
		out.Targets = append(out.Targets, jt)
	}
	return json.Marshal(out)
}

// EncodeResolution writes the resolution as indented JSON.
func EncodeResolution(w io.Writer, r *Resolution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
