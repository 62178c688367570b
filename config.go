package rebalance

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// The positions file can be declared under any of these keys, checked in
// this order.
var csvPathKeys = []string{"positions_csv", "csv_path", "positions_path"}

// Config is the parsed YAML configuration: where the positions CSV lives,
// the allocation policy, and optionally the cash on hand.
type Config struct {
	PositionsCSV string
	Policy       Policy
	Cash         []Money
}

// LoadConfig reads and parses the YAML configuration file. A relative
// positions path is resolved against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config file %q: %w", path, err)
	}
	defer f.Close()

	c, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if !filepath.IsAbs(c.PositionsCSV) {
		c.PositionsCSV = filepath.Join(filepath.Dir(path), c.PositionsCSV)
	}
	return c, nil
}

// ParseConfig parses the YAML configuration. It decodes through yaml.Node
// so that the declaration order of targets and of their category weights
// survives: that order drives reporting and tie-breaks in the resolver.
//
// ParseConfig is the type-checking boundary: a config that is not a
// non-empty mapping, a policy entry with the wrong shape, or a half-declared
// cash section never reaches the resolver.
func ParseConfig(r io.Reader) (*Config, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	top := &doc
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, fmt.Errorf("config must contain a mapping at the top level")
		}
		top = top.Content[0]
	}
	if top.Kind != yaml.MappingNode || len(top.Content) == 0 {
		return nil, fmt.Errorf("config must contain a non-empty mapping at the top level")
	}

	c := &Config{}
	var cashAmounts []float64
	var cashCurrencies []string
	haveAmounts, haveCurrencies := false, false
	csvValues := make(map[string]string)

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		switch key.Value {
		case "positions_csv", "csv_path", "positions_path":
			var s string
			if err := value.Decode(&s); err != nil {
				return nil, fmt.Errorf("%s: %w", key.Value, err)
			}
			csvValues[key.Value] = s
		case "target_asset_alloc":
			policy, err := parsePolicy(value)
			if err != nil {
				return nil, err
			}
			c.Policy = policy
		case "cash_amounts", "chash_amounts": // chash_amounts is a legacy key
			if err := value.Decode(&cashAmounts); err != nil {
				return nil, fmt.Errorf("%s must be a list of numbers: %w", key.Value, err)
			}
			haveAmounts = true
		case "cash_currency":
			if err := value.Decode(&cashCurrencies); err != nil {
				return nil, fmt.Errorf("cash_currency must be a list of currency codes: %w", err)
			}
			haveCurrencies = true
		}
	}

	for _, k := range csvPathKeys {
		if v := csvValues[k]; v != "" {
			c.PositionsCSV = v
			break
		}
	}
	if c.PositionsCSV == "" {
		return nil, fmt.Errorf("config must define a CSV path under one of: positions_csv, csv_path, positions_path")
	}

	if haveAmounts != haveCurrencies {
		return nil, fmt.Errorf("both cash_amounts and cash_currency must be provided")
	}
	if haveAmounts {
		if len(cashAmounts) != len(cashCurrencies) {
			return nil, fmt.Errorf("cash_amounts and cash_currency must have the same length")
		}
		for i, amount := range cashAmounts {
			c.Cash = append(c.Cash, M(amount, cashCurrencies[i]))
		}
	}

	return c, nil
}

// parsePolicy decodes the target_asset_alloc mapping, preserving target and
// weight declaration order.
func parsePolicy(n *yaml.Node) (Policy, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) == 0 {
		return nil, fmt.Errorf("target_asset_alloc must be a non-empty mapping")
	}
	var policy Policy
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, body := n.Content[i].Value, n.Content[i+1]
		if body.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("target %q must be a mapping", name)
		}
		t := Target{Name: name}
		for j := 0; j+1 < len(body.Content); j += 2 {
			key, value := body.Content[j], body.Content[j+1]
			if key.Value == "Constraint" {
				if err := value.Decode(&t.Constraint); err != nil {
					return nil, fmt.Errorf("target %q: Constraint must be a list of attribute values: %w", name, err)
				}
				continue
			}
			var pct float64
			if err := value.Decode(&pct); err != nil {
				return nil, fmt.Errorf("target %q: allocation %q must be a number: %w", name, key.Value, err)
			}
			t.Weights = append(t.Weights, CategoryWeight{Category: key.Value, Weight: Percent(pct)})
		}
		policy = append(policy, t)
	}
	return policy, nil
}
