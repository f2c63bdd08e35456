package tradebook

import (
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// HoldingEntry is the detailed view of one position in a holding report.
type HoldingEntry struct {
	Company     string
	Account     string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	Cost        decimal.Decimal     // Quantity × AverageCost
	LastClose   decimal.NullDecimal // valuation-date close, when known
	Unrealized  decimal.NullDecimal // (LastClose − AverageCost) × Quantity, when close known
	Realized    decimal.Decimal
	Total       decimal.Decimal     // Realized plus Unrealized when defined
	Return      decimal.NullDecimal // Total over Cost, when Cost is non-zero
	TradeCount  int
}

// HoldingTotals aggregates one account class of a holding report. Cost and
// Unrealized cover open positions; Realized covers every position, closed
// ones included.
type HoldingTotals struct {
	Cost       decimal.Decimal
	Unrealized decimal.Decimal
	Realized   decimal.Decimal
	Total      decimal.Decimal
	Return     decimal.NullDecimal
}

// HoldingReport is the portfolio view on a valuation date: open positions,
// fully closed ones, and per-class totals.
type HoldingReport struct {
	Date    string
	Current []HoldingEntry // Quantity > 0, by cost descending then company
	Closed  []HoldingEntry // closed out, by realized P&L descending then company
	ISA     HoldingTotals
	General HoldingTotals
	All     HoldingTotals
}

// BuildHoldingReport derives the holding view from an engine result.
func BuildHoldingReport(r *LedgerResult, valuationDate string) *HoldingReport {
	report := &HoldingReport{Date: valuationDate}

	for _, p := range r.Positions {
		if p.Company == "" {
			continue
		}
		e := HoldingEntry{
			Company:     p.Company,
			Account:     p.Account,
			Quantity:    p.Quantity,
			AverageCost: p.AverageCost,
			Cost:        p.Quantity.Mul(p.AverageCost),
			LastClose:   p.LastClose,
			Realized:    p.RealizedCum,
			TradeCount:  p.TradeCount,
		}
		if p.LastClose.Valid {
			e.Unrealized = decimal.NullDecimal{
				Decimal: p.LastClose.Decimal.Sub(p.AverageCost).Mul(p.Quantity),
				Valid:   true,
			}
		}
		e.Total = e.Realized
		if e.Unrealized.Valid {
			e.Total = e.Total.Add(e.Unrealized.Decimal)
		}
		if !e.Cost.IsZero() {
			e.Return = decimal.NullDecimal{Decimal: e.Total.Div(e.Cost), Valid: true}
		}

		switch {
		case p.Quantity.IsPositive():
			report.Current = append(report.Current, e)
		case p.TradeCount > 0:
			report.Closed = append(report.Closed, e)
		}

		addTotals := func(t *HoldingTotals) {
			t.Realized = t.Realized.Add(e.Realized)
			if p.Quantity.IsPositive() {
				t.Cost = t.Cost.Add(e.Cost)
				if e.Unrealized.Valid {
					t.Unrealized = t.Unrealized.Add(e.Unrealized.Decimal)
				}
			}
		}
		addTotals(&report.All)
		switch p.Account {
		case AccountISA:
			addTotals(&report.ISA)
		case AccountGeneral:
			addTotals(&report.General)
		}
	}

	for _, t := range []*HoldingTotals{&report.ISA, &report.General, &report.All} {
		t.Total = t.Realized.Add(t.Unrealized)
		if !t.Cost.IsZero() {
			t.Return = decimal.NullDecimal{Decimal: t.Total.Div(t.Cost), Valid: true}
		}
	}

	slices.SortFunc(report.Current, func(a, b HoldingEntry) int {
		if c := b.Cost.Cmp(a.Cost); c != 0 {
			return c
		}
		return strings.Compare(a.Company, b.Company)
	})
	slices.SortFunc(report.Closed, func(a, b HoldingEntry) int {
		if c := b.Realized.Cmp(a.Realized); c != 0 {
			return c
		}
		return strings.Compare(a.Company, b.Company)
	})

	return report
}

// ScopeAll is the holding scope covering every account.
const ScopeAll = "ALL"

// Scoped returns a view of the report whose Current and Closed tables are
// restricted to one account label. ScopeAll (or "") returns the report
// unchanged. Totals always cover every class, like the report header cards.
func (h *HoldingReport) Scoped(account string) *HoldingReport {
	if account == "" || account == ScopeAll {
		return h
	}
	scoped := *h
	scoped.Current = scopeEntries(h.Current, account)
	scoped.Closed = scopeEntries(h.Closed, account)
	return &scoped
}

func scopeEntries(entries []HoldingEntry, account string) []HoldingEntry {
	var out []HoldingEntry
	for _, e := range entries {
		if e.Account == account {
			out = append(out, e)
		}
	}
	return out
}

// Companies returns the distinct company names present in the trade log or
// in the result's positions, sorted. This is the candidate list handed to
// the fuzzy resolver for bulk price input.
func Companies(trades []TradeRecord, r *LedgerResult) []string {
	seen := make(map[string]bool)
	if r != nil {
		for _, p := range r.Positions {
			if name := strings.TrimSpace(p.Company); name != "" {
				seen[name] = true
			}
		}
	}
	for _, t := range trades {
		if name := strings.TrimSpace(t.Company); name != "" {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
