package tradebook

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ClosePrices is the table of historical closing prices, keyed by as-of date
// then company name. Values are kept as entered; anything that does not parse
// as a number is treated as absent when read.
//
// The table has its own lifecycle: it is owned and mutated by the caller
// (manual entry, bulk paste, file load) and only ever read by the engine.
type ClosePrices map[string]map[string]string

// Price returns the close price recorded for a company on a date, or an
// invalid value when the entry is missing or unparsable.
func (cp ClosePrices) Price(date, company string) decimal.NullDecimal {
	return parseNumber(cp[date][company])
}

// Set records the close price of a company on a date, replacing any previous
// entry for that pair.
func (cp ClosePrices) Set(date, company, raw string) {
	day, ok := cp[date]
	if !ok {
		day = make(map[string]string)
		cp[date] = day
	}
	if old, exists := day[company]; exists && old != raw {
		log.Printf("%v: update %v close from %s with %s", date, company, old, raw)
	}
	day[company] = raw
}

// Unset removes the entry for a company on a date. Removing the last entry
// of a date drops the date itself, so MonthEnd no longer sees it.
func (cp ClosePrices) Unset(date, company string) {
	day, ok := cp[date]
	if !ok {
		return
	}
	delete(day, company)
	if len(day) == 0 {
		delete(cp, date)
	}
}

// MonthEnd returns the latest date within the YYYY-MM month that carries at
// least one recorded price, or "" when the month has none. Close prices are
// sparse manual input, so month-end valuation uses the last snapshot
// available rather than requiring one per day.
func (cp ClosePrices) MonthEnd(ym string) string {
	if ym == "" {
		return ""
	}
	end := ""
	for date, day := range cp {
		if !strings.HasPrefix(date, ym) || len(day) == 0 {
			continue
		}
		if date > end {
			end = date
		}
	}
	return end
}

// Dates returns every date carrying at least one price, ascending.
func (cp ClosePrices) Dates() []string {
	dates := make([]string, 0, len(cp))
	for date, day := range cp {
		if len(day) > 0 {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

var (
	bulkFieldSep = regexp.MustCompile(`\t|,|\s{2,}`)
	bulkLineForm = regexp.MustCompile(`^(.*?)[\s,]+([0-9][0-9,]*)$`)
)

// ApplyBulk parses pasted "company, price" lines and records each price under
// the given date. Fields split on tabs, commas, or runs of two or more
// spaces; the last field is the price (thousands separators allowed), the
// rest is the company name, reconciled against candidates with
// [ResolveCompany]. Lines that fit neither form are skipped. Returns the
// number of entries recorded.
func (cp ClosePrices) ApplyBulk(date, text string, candidates []string) int {
	applied := 0
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var company, priceRaw string
		parts := splitBulkFields(line)
		if len(parts) >= 2 {
			priceRaw = parts[len(parts)-1]
			company = strings.TrimSpace(strings.Join(parts[:len(parts)-1], " "))
		} else if m := bulkLineForm.FindStringSubmatch(line); m != nil {
			company = strings.TrimSpace(m[1])
			priceRaw = m[2]
		} else {
			continue
		}

		price := parseNumber(strings.ReplaceAll(priceRaw, ",", ""))
		company = ResolveCompany(company, candidates)
		if company == "" || !price.Valid {
			continue
		}
		cp.Set(date, company, price.Decimal.String())
		applied++
	}
	return applied
}

func splitBulkFields(line string) []string {
	var fields []string
	for _, f := range bulkFieldSep.Split(line, -1) {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
