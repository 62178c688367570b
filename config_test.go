package rebalance

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleConfig = `
positions_csv: positions.csv
cash_amounts: [1200.50, 300]
cash_currency: [USD, EUR]
target_asset_alloc:
  by_region:
    Constraint: [equity, region]
    US: 60
    EU: 40
  by_class:
    Constraint: [class]
    equity: 70
    bond: 30
`

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	if c.PositionsCSV != "positions.csv" {
		t.Errorf("PositionsCSV = %q", c.PositionsCSV)
	}

	// declaration order survives, both for targets and for weights
	want := Policy{
		{
			Name:       "by_region",
			Constraint: []string{"equity", "region"},
			Weights:    []CategoryWeight{{"US", 60}, {"EU", 40}},
		},
		{
			Name:       "by_class",
			Constraint: []string{"class"},
			Weights:    []CategoryWeight{{"equity", 70}, {"bond", 30}},
		},
	}
	if diff := cmp.Diff(want, c.Policy); diff != "" {
		t.Errorf("Policy mismatch (-want +got):\n%s", diff)
	}

	wantCash := []Money{M(1200.50, "USD"), M(300, "EUR")}
	for i, m := range wantCash {
		if !c.Cash[i].Equal(m) {
			t.Errorf("Cash[%d] = %v, want %v", i, c.Cash[i], m)
		}
	}
}

func TestParseConfig_CSVPathAliases(t *testing.T) {
	for _, key := range []string{"positions_csv", "csv_path", "positions_path"} {
		doc := key + ": holdings.csv\ntarget_asset_alloc:\n  t:\n    Constraint: [class]\n    equity: 100\n"
		c, err := ParseConfig(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("ParseConfig(%s) error = %v", key, err)
		}
		if c.PositionsCSV != "holdings.csv" {
			t.Errorf("key %s: PositionsCSV = %q", key, c.PositionsCSV)
		}
	}
}

func TestParseConfig_LegacyCashKey(t *testing.T) {
	doc := "positions_csv: p.csv\nchash_amounts: [10]\ncash_currency: [USD]\n"
	c, err := ParseConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if len(c.Cash) != 1 || !c.Cash[0].Equal(M(10, "USD")) {
		t.Errorf("Cash = %v", c.Cash)
	}
}

func TestParseConfig_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		fragment string
	}{
		{"scalar top level", "just a string", "mapping"},
		{"missing csv path", "target_asset_alloc:\n  t:\n    Constraint: [class]\n    equity: 100\n", "CSV path"},
		{"empty policy mapping", "positions_csv: p.csv\ntarget_asset_alloc: {}\n", "non-empty mapping"},
		{"policy not a mapping", "positions_csv: p.csv\ntarget_asset_alloc: [1, 2]\n", "non-empty mapping"},
		{"target not a mapping", "positions_csv: p.csv\ntarget_asset_alloc:\n  t: 12\n", "must be a mapping"},
		{"constraint not a list", "positions_csv: p.csv\ntarget_asset_alloc:\n  t:\n    Constraint: class\n    equity: 100\n", "Constraint"},
		{"allocation not a number", "positions_csv: p.csv\ntarget_asset_alloc:\n  t:\n    Constraint: [class]\n    equity: lots\n", "must be a number"},
		{"cash without currency", "positions_csv: p.csv\ncash_amounts: [10]\n", "cash_currency"},
		{"cash length mismatch", "positions_csv: p.csv\ncash_amounts: [10]\ncash_currency: [USD, EUR]\n", "same length"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tc.doc))
			if err == nil {
				t.Fatal("ParseConfig() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.fragment) {
				t.Errorf("error %q does not mention %q", err, tc.fragment)
			}
		})
	}
}
