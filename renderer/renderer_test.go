package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/etnz/tradebook"
)

func TestHoldingMarkdown(t *testing.T) {
	trades := []tradebook.TradeRecord{
		{Date: "2024-01-05", Company: "삼성전자", Account: "ISA", Side: "BUY", Price: "10", Qty: "100"},
		{Date: "2024-01-06", Company: "LG화학", Account: "일반", Side: "BUY", Price: "100", Qty: "10"},
	}
	closes := tradebook.ClosePrices{"2024-01-31": {"삼성전자": "12"}}
	result := tradebook.ComputeLedger(trades, "2024-01-31", tradebook.NoCutoff, closes)
	report := tradebook.BuildHoldingReport(result, "2024-01-31")

	md := HoldingMarkdown(report)
	for _, want := range []string{"# Holdings on 2024-01-31", "삼성전자", "LG화학", "| ALL |", "| ISA |"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	// LG화학 has no close: its unrealized renders as a placeholder, not a zero.
	if !strings.Contains(md, "| - |") {
		t.Errorf("markdown should carry '-' placeholders for unknown values:\n%s", md)
	}
}

func TestMonthlyMarkdown(t *testing.T) {
	trades := []tradebook.TradeRecord{
		{Date: "2024-01-05", Company: "삼성전자", Account: "ISA", Side: "BUY", Price: "10", Qty: "100"},
		{Date: "2024-02-01", Company: "삼성전자", Account: "ISA", Side: "SELL", Price: "30", Qty: "50"},
	}
	closes := tradebook.ClosePrices{"2024-01-31": {"삼성전자": "12"}}
	months := tradebook.ComputeMonthlySummary(trades, closes)

	md := MonthlyMarkdown(months)
	for _, want := range []string{"2024-01", "2024-02", "20.00%"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	if md := MonthlyMarkdown(nil); !strings.Contains(md, "No dated trades") {
		t.Errorf("empty series should say so:\n%s", md)
	}
}

func TestClosesMarkdown(t *testing.T) {
	cp := tradebook.ClosePrices{
		"2024-02-05": {"삼성전자": "72000"},
		"2024-01-10": {"LG화학": "380000", "삼성전자": "70000"},
		"2024-01-31": {},
	}
	md := ClosesMarkdown(cp)
	for _, want := range []string{"## 2024-01-10", "## 2024-02-05", "| LG화학 | 380000 |", "| 삼성전자 | 72000 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	// Ascending date order, and empty days left out.
	if strings.Index(md, "2024-01-10") > strings.Index(md, "2024-02-05") {
		t.Errorf("dates out of order:\n%s", md)
	}
	if strings.Contains(md, "2024-01-31") {
		t.Errorf("empty day should not be listed:\n%s", md)
	}

	if md := ClosesMarkdown(nil); !strings.Contains(md, "No closing prices") {
		t.Errorf("empty table should say so:\n%s", md)
	}
}

func TestFormatters(t *testing.T) {
	if got := Pct(decimal.NullDecimal{}); got != "-" {
		t.Errorf("Pct(unknown) = %q, want -", got)
	}
	ratio := decimal.NullDecimal{Decimal: decimal.NewFromFloat(0.1234), Valid: true}
	if got := Pct(ratio); got != "12.34%" {
		t.Errorf("Pct(0.1234) = %q", got)
	}
	if got := WonOr(decimal.NullDecimal{}); got != "-" {
		t.Errorf("WonOr(unknown) = %q, want -", got)
	}
	if got := Won(decimal.NewFromInt(0)); got == "" {
		t.Error("Won(0) should render something")
	}
}
