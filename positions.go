package rebalance

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Position is one holding from the broker CSV: the ticker, how many units
// are held, and the unit price when the export carries one. Prices are
// taken as-is from the file, never fetched.
type Position struct {
	Ticker   string
	Quantity Quantity
	Price    Money // zero when the export has no price column
}

// Amount returns the position's market value in the price's currency.
func (p Position) Amount() Money { return p.Price.Mul(p.Quantity) }

// Columns with a special meaning in the positions CSV. Every other column
// is treated as a metadata attribute.
const (
	colSymbol    = "Symbol"
	colQuantity  = "Quantity"
	colPrice     = "Price"
	colLastPrice = "Last Price"
	colCurrency  = "Currency"
)

// LoadPositions reads the positions CSV file.
func LoadPositions(path string) ([]Position, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open positions file %q: %w", path, err)
	}
	defer f.Close()

	positions, meta, err := ReadPositions(f)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid positions file %q: %w", path, err)
	}
	return positions, meta, nil
}

// ReadPositions parses a broker-exported positions CSV. The required
// columns are Symbol and Quantity; "Price" (or "Last Price") and "Currency"
// are used when present; all remaining columns become metadata attributes
// in column order. Broker export quirks are handled here: a UTF-8 BOM,
// padded header names, thousands separators in quantities, trailing
// disclaimer rows after the first blank Symbol, and sweep pseudo-symbols
// ending in "**" (e.g. Fidelity's SPAXX**).
func ReadPositions(r io.Reader) ([]Position, *Metadata, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("no headers found: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	symbolCol, ok := columns[colSymbol]
	if !ok {
		return nil, nil, fmt.Errorf("missing %q column", colSymbol)
	}
	quantityCol, ok := columns[colQuantity]
	if !ok {
		return nil, nil, fmt.Errorf("missing %q column", colQuantity)
	}
	priceCol, hasPrice := columns[colPrice]
	if !hasPrice {
		priceCol, hasPrice = columns[colLastPrice]
	}
	currencyCol, hasCurrency := columns[colCurrency]

	var attributes []string
	for _, name := range header {
		switch name {
		case colSymbol, colQuantity, colPrice, colLastPrice, colCurrency, "":
			continue
		}
		attributes = append(attributes, name)
	}

	meta := NewMetadata(attributes...)
	var positions []Position
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		symbol := strings.TrimSpace(field(record, symbolCol))
		if symbol == "" {
			// broker exports append disclaimer rows after the holdings
			break
		}
		if strings.HasSuffix(symbol, "**") {
			continue
		}

		quantity, err := ParseQuantity(field(record, quantityCol))
		if err != nil {
			return nil, nil, fmt.Errorf("ticker %q: invalid quantity %q", symbol, field(record, quantityCol))
		}

		p := Position{Ticker: symbol, Quantity: quantity}
		if hasPrice {
			if raw := strings.TrimSpace(field(record, priceCol)); raw != "" {
				currency := "USD"
				if hasCurrency {
					if c := strings.TrimSpace(field(record, currencyCol)); c != "" {
						currency = c
					}
				}
				price, err := parsePrice(raw, currency)
				if err != nil {
					return nil, nil, fmt.Errorf("ticker %q: invalid price %q", symbol, raw)
				}
				p.Price = price
			}
		}
		positions = append(positions, p)

		values := make(map[string]string, len(attributes))
		for _, attr := range attributes {
			values[attr] = strings.TrimSpace(field(record, columns[attr]))
		}
		meta.Add(symbol, values)
	}

	if len(positions) == 0 {
		return nil, nil, fmt.Errorf("no tickers found")
	}
	return positions, meta, nil
}

// parsePrice parses a broker-formatted price ("$1,234.56").
func parsePrice(s, currency string) (Money, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(s, "$"))
	q, err := ParseQuantity(cleaned)
	if err != nil {
		return Money{}, err
	}
	return M(q.value, currency), nil
}

// field reads a record column, tolerating short rows.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
