package rebalance

// This file joins a resolution with the position values from the CSV to
// produce the report data: how the portfolio currently sits versus where
// the policy wants it. Amounts stay in their quoted currency; converting
// them is out of scope, so a mixed-currency universe is only flagged.

// TickerReview is one row of the per-ticker report table.
type TickerReview struct {
	Ticker   string
	Quantity Quantity
	Price    Money
	Amount   Money
	Current  Percent // share of total portfolio value
	Target   Percent // absolute share from the resolved policy
}

// Drift returns how far the current allocation sits from the target.
func (t TickerReview) Drift() Percent { return t.Current - t.Target }

// CategoryReview is one row of a target's summary table. Current is
// normalised within the target's scope so it compares directly with the
// declared weight.
type CategoryReview struct {
	Category string
	Amount   Money
	Current  Percent
	Target   Percent
}

// TargetReview is the per-target section of the report.
type TargetReview struct {
	Name       string
	Constraint []string
	Categories []CategoryReview
}

// Review is the full report data, targets shallowest-first then one row per
// ticker.
type Review struct {
	Targets       []TargetReview
	Tickers       []TickerReview
	MaxDrift      Percent // largest absolute per-ticker drift
	MixedCurrency bool    // positions are quoted in more than one currency
	Cash          []Money
}

// NewReview compares the current portfolio against a resolution. Per-target
// scopes are recomputed with Scope rather than taken from the resolver: the
// allocation tree is discarded after flattening, and reporting re-derives
// node membership from the metadata alone.
func NewReview(res *Resolution, meta *Metadata, positions []Position, cash []Money) *Review {
	byTicker := make(map[string]Position, len(positions))
	currencies := make(map[string]bool)
	total := 0.0
	for _, p := range positions {
		byTicker[p.Ticker] = p
		total += p.Amount().AsFloat()
		if c := p.Price.Currency(); c != "" {
			currencies[c] = true
		}
	}

	current := make(map[string]Percent, len(positions))
	if total != 0 {
		for _, p := range positions {
			current[p.Ticker] = Percent(p.Amount().AsFloat() / total * 100)
		}
	}

	rv := &Review{MixedCurrency: len(currencies) > 1, Cash: cash}

	for _, t := range res.Targets {
		scoped := Scope(t.FilterValues(), meta)

		var scopeCurrent Percent
		for _, ticker := range scoped {
			scopeCurrent += current[ticker]
		}

		tr := TargetReview{Name: t.Name, Constraint: t.Constraint}
		for _, w := range t.Weights {
			var members []string
			for _, ticker := range scoped {
				if meta.Value(ticker, t.GroupingAttribute()) == w.Category {
					members = append(members, ticker)
				}
			}

			var amount Money
			var catCurrent Percent
			for _, ticker := range members {
				amount = addWeak(amount, byTicker[ticker].Amount())
				catCurrent += current[ticker]
			}
			relative := Percent(0)
			if scopeCurrent != 0 {
				relative = catCurrent / scopeCurrent * 100
			}
			tr.Categories = append(tr.Categories, CategoryReview{
				Category: w.Category,
				Amount:   amount,
				Current:  relative,
				Target:   w.Weight,
			})
		}
		rv.Targets = append(rv.Targets, tr)
	}

	for ticker, target := range res.Flat.All() {
		p := byTicker[ticker]
		row := TickerReview{
			Ticker:   ticker,
			Quantity: p.Quantity,
			Price:    p.Price,
			Amount:   p.Amount(),
			Current:  current[ticker],
			Target:   target,
		}
		rv.Tickers = append(rv.Tickers, row)
		if drift := row.Drift().Abs(); drift > rv.MaxDrift {
			rv.MaxDrift = drift
		}
	}

	return rv
}

// addWeak adds two amounts, losing the currency label instead of panicking
// when they are quoted in different currencies.
func addWeak(a, b Money) Money {
	if a.cur != "" && b.cur != "" && a.cur != b.cur {
		return Money{value: a.value.Add(b.value)}
	}
	return a.Add(b)
}
