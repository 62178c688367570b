package rebalance

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadPositions(t *testing.T) {
	csv := "\ufeffSymbol, Quantity ,Last Price,Currency,class,region\n" +
		"VTI,\"1,200.5\",$245.30,USD,equity,US\n" +
		"VXUS,80,61.10,USD,equity,EU\n" +
		"SPAXX**,12.01,1.00,USD,,\n" +
		"BND,40,,USD,bond,US\n" +
		",,,,,\n" +
		"\"The data and information in this spreadsheet…\",,,,,\n"

	positions, meta, err := ReadPositions(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadPositions() error = %v", err)
	}

	if len(positions) != 3 {
		t.Fatalf("len(positions) = %d, want 3 (sweep symbol skipped, disclaimer rows ignored)", len(positions))
	}

	vti := positions[0]
	if vti.Ticker != "VTI" || !vti.Quantity.Equal(Q(1200.5)) {
		t.Errorf("positions[0] = %+v", vti)
	}
	if !vti.Price.Equal(M(245.30, "USD")) {
		t.Errorf("VTI price = %v, want $245.30", vti.Price)
	}
	if !vti.Amount().Equal(M(1200.5*245.30, "USD")) {
		t.Errorf("VTI amount = %v", vti.Amount())
	}

	// BND has a blank price cell: the position survives with a zero price
	if bnd := positions[2]; !bnd.Price.IsZero() {
		t.Errorf("BND price = %v, want zero", bnd.Price)
	}

	if diff := cmp.Diff([]string{"class", "region"}, meta.Attributes()); diff != "" {
		t.Errorf("Attributes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"VTI", "VXUS", "BND"}, meta.Tickers()); diff != "" {
		t.Errorf("Tickers mismatch (-want +got):\n%s", diff)
	}
	if got := meta.Value("VXUS", "region"); got != "EU" {
		t.Errorf("Value(VXUS, region) = %q, want EU", got)
	}
}

func TestReadPositions_NoPriceColumns(t *testing.T) {
	csv := "Symbol,Quantity,class\nVTI,10,equity\n"
	positions, _, err := ReadPositions(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadPositions() error = %v", err)
	}
	if !positions[0].Price.IsZero() {
		t.Errorf("Price = %v, want zero", positions[0].Price)
	}
}

func TestReadPositions_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		fragment string
	}{
		{"missing symbol column", "Ticker,Quantity\nVTI,10\n", `"Symbol"`},
		{"missing quantity column", "Symbol,class\nVTI,equity\n", `"Quantity"`},
		{"bad quantity", "Symbol,Quantity\nVTI,ten\n", "invalid quantity"},
		{"bad price", "Symbol,Quantity,Price\nVTI,10,n/a\n", "invalid price"},
		{"no rows", "Symbol,Quantity\n", "no tickers"},
		{"only blank symbols", "Symbol,Quantity\n,10\n", "no tickers"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ReadPositions(strings.NewReader(tc.csv))
			if err == nil {
				t.Fatal("ReadPositions() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.fragment) {
				t.Errorf("error %q does not mention %q", err, tc.fragment)
			}
		})
	}
}
