// Package renderer turns tradebook reports into markdown strings.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/etnz/tradebook"
)

// Amounts are displayed in KRW, whole-unit currency with no minor fraction.
const displayCurrency = money.KRW

// Won formats a decimal amount as KRW.
func Won(d decimal.Decimal) string {
	return money.New(d.Round(0).IntPart(), displayCurrency).Display()
}

// WonOr formats a nullable amount, with "-" for unknown values.
func WonOr(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return Won(d.Decimal)
}

// Pct formats a nullable ratio as a percentage, with "-" for unknown values.
func Pct(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	v, _ := d.Decimal.Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return fmt.Sprintf("%.2f%%", v)
}

// Qty formats a quantity without trailing noise.
func Qty(d decimal.Decimal) string { return d.String() }

// HoldingMarkdown renders a holding report: open positions, closed ones, and
// the per-class totals.
func HoldingMarkdown(h *tradebook.HoldingReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings on %s\n\n", h.Date)

	fmt.Fprintln(&b, "## Open positions")
	fmt.Fprintln(&b)
	holdingTable(&b, h.Current, "Enter trades to see open positions here.")

	fmt.Fprintln(&b, "## Closed positions")
	fmt.Fprintln(&b)
	holdingTable(&b, h.Closed, "Fully sold positions show up here.")

	fmt.Fprintln(&b, "## Totals")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Scope | Cost | Unrealized | Realized | Total | Return |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	totalsRow(&b, "ALL", h.All)
	totalsRow(&b, tradebook.AccountISA, h.ISA)
	totalsRow(&b, tradebook.AccountGeneral, h.General)
	return b.String()
}

func holdingTable(b *strings.Builder, entries []tradebook.HoldingEntry, emptyMsg string) {
	if len(entries) == 0 {
		fmt.Fprintf(b, "%s\n\n", emptyMsg)
		return
	}
	fmt.Fprintln(b, "| Company | Account | Qty | Avg Cost | Cost | Close | Unrealized | Realized | Total | Return |")
	fmt.Fprintln(b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, e := range entries {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			e.Company,
			e.Account,
			Qty(e.Quantity),
			Won(e.AverageCost),
			Won(e.Cost),
			WonOr(e.LastClose),
			WonOr(e.Unrealized),
			Won(e.Realized),
			Won(e.Total),
			Pct(e.Return),
		)
	}
	fmt.Fprintln(b)
}

func totalsRow(b *strings.Builder, scope string, t tradebook.HoldingTotals) {
	fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
		scope, Won(t.Cost), Won(t.Unrealized), Won(t.Realized), Won(t.Total), Pct(t.Return))
}

// ClosesMarkdown renders the recorded close-price table, one section per
// date in ascending order. Prices are shown as entered, unparsable ones
// included, so the listing doubles as a way to spot bad rows.
func ClosesMarkdown(cp tradebook.ClosePrices) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Closing prices\n\n")
	dates := cp.Dates()
	if len(dates) == 0 {
		fmt.Fprintln(&b, "No closing prices recorded yet.")
		return b.String()
	}
	for _, d := range dates {
		companies := make([]string, 0, len(cp[d]))
		for name := range cp[d] {
			companies = append(companies, name)
		}
		sort.Strings(companies)
		fmt.Fprintf(&b, "## %s\n\n", d)
		fmt.Fprintln(&b, "| Company | Close |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, name := range companies {
			fmt.Fprintf(&b, "| %s | %s |\n", name, cp[d][name])
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}

// MonthlyMarkdown renders the monthly performance series.
func MonthlyMarkdown(months []tradebook.MonthlySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Monthly performance\n\n")
	if len(months) == 0 {
		fmt.Fprintln(&b, "No dated trades yet.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Month | Valuation | ISA Invested | ISA P&L | ISA ROI | GEN Invested | GEN P&L | GEN ROI | ALL Invested | ALL P&L | ALL ROI | ISA Cum | GEN Cum | ALL Cum |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, m := range months {
		valuation := m.ValuationDate
		if valuation == "" {
			valuation = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			m.Month,
			valuation,
			Won(m.ISA.Invested), Won(m.ISA.Pnl), Pct(m.ISA.Roi),
			Won(m.General.Invested), Won(m.General.Pnl), Pct(m.General.Roi),
			Won(m.All.Invested), Won(m.All.Pnl), Pct(m.All.Roi),
			Pct(m.ISA.CumRoi), Pct(m.General.CumRoi), Pct(m.All.CumRoi),
		)
	}
	return b.String()
}
