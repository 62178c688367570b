package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/rebalance"
)

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()
	csv := "Symbol,Quantity,Last Price,class,region\n" +
		"VTI,120,$245.30,equity,US\n" +
		"BND,40,72.80,bond,US\n"
	if err := os.WriteFile(filepath.Join(dir, "positions.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	config := "positions_csv: positions.csv\n" +
		"target_asset_alloc:\n" +
		"  by_class:\n" +
		"    Constraint: [class]\n" +
		"    equity: 70\n" +
		"    bond: 30\n"
	configPath := filepath.Join(dir, "rebalance.yaml")
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	old := *configFile
	*configFile = configPath
	defer func() { *configFile = old }()

	cfg, positions, meta, err := loadInputs()
	if err != nil {
		t.Fatalf("loadInputs() error = %v", err)
	}

	// the relative CSV path resolves against the config directory
	if cfg.PositionsCSV != filepath.Join(dir, "positions.csv") {
		t.Errorf("PositionsCSV = %q", cfg.PositionsCSV)
	}
	if len(positions) != 2 || positions[0].Ticker != "VTI" {
		t.Errorf("positions = %+v", positions)
	}
	if got := meta.Value("BND", "class"); got != "bond" {
		t.Errorf("Value(BND, class) = %q", got)
	}

	// the loaded inputs resolve end to end
	res, err := rebalance.Resolve(cfg.Policy, meta)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := res.Flat.Get("VTI"); !got.Equal(70) {
		t.Errorf("Flat.Get(VTI) = %v, want 70", got)
	}
}

func TestLoadInputs_MissingConfig(t *testing.T) {
	old := *configFile
	*configFile = filepath.Join(t.TempDir(), "absent.yaml")
	defer func() { *configFile = old }()

	if _, _, _, err := loadInputs(); err == nil {
		t.Error("loadInputs() should fail on a missing config file")
	}
}
