package tradebook

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ClassSummary holds one month's figures for one account class.
type ClassSummary struct {
	Invested decimal.Decimal // sum of buy amounts in the month
	Realized decimal.Decimal // realized P&L of the month's sells
	// Unrealized is the month-end paper P&L of open positions. Invalid when
	// the month has no close-price snapshot: a missing valuation is not a
	// zero gain.
	Unrealized decimal.NullDecimal
	// Pnl is Realized plus Unrealized when the latter is defined.
	Pnl decimal.Decimal
	// Roi is Pnl over Invested. Invalid without a valuation or when nothing
	// was invested in the month.
	Roi decimal.NullDecimal
	// CumRoi is cumulative P&L over cumulative invested capital up to and
	// including this month, carrying forward only defined components.
	CumRoi decimal.NullDecimal
}

// MonthlySummary is the performance entry for one calendar month that
// contains at least one dated trade, split by account class. All spans every
// account, including free-form "other" labels.
type MonthlySummary struct {
	Month         string // YYYY-MM
	ValuationDate string // close-table date used for unrealized P&L, "" when none
	ISA           ClassSummary
	General       ClassSummary
	All           ClassSummary
}

// ComputeMonthlySummary builds the monthly performance series, ascending by
// month. Realized P&L and invested capital come from a single full-history
// replay; unrealized P&L comes from a point-in-time replay at each month's
// valuation date, the latest close-table date within the month. The
// cumulative ROI series is a strictly sequential fold over months.
func ComputeMonthlySummary(trades []TradeRecord, closes ClosePrices) []MonthlySummary {
	type classAcc struct {
		invested   decimal.Decimal
		realized   decimal.Decimal
		unrealized decimal.Decimal
	}
	type monthAcc struct{ isa, gen, all classAcc }
	type cumAcc struct{ invested, pnl decimal.Decimal }

	months := make(map[string]*monthAcc)
	monthOf := func(ym string) *monthAcc {
		m, ok := months[ym]
		if !ok {
			m = &monthAcc{}
			months[ym] = m
		}
		return m
	}

	// Per-trade realized figures are tied to the trade itself, so one
	// replay without cutoff covers every month.
	full := ComputeLedger(trades, Today(), NoCutoff, closes)

	for i, t := range trades {
		ym := YearMonth(strings.TrimSpace(t.Date))
		if ym == "" {
			continue
		}
		m := monthOf(ym)
		account := NormalizeAccount(t.Account)
		side := NormalizeSide(t.Side)
		price := parseNumber(t.Price)
		qty := parseNumber(t.Qty)

		if side == SideBuy && price.Valid && qty.Valid {
			amt := price.Decimal.Mul(qty.Decimal)
			m.all.invested = m.all.invested.Add(amt)
			switch account {
			case AccountISA:
				m.isa.invested = m.isa.invested.Add(amt)
			case AccountGeneral:
				m.gen.invested = m.gen.invested.Add(amt)
			}
		}

		realized := full.PerTrade[i].Realized
		m.all.realized = m.all.realized.Add(realized)
		switch account {
		case AccountISA:
			m.isa.realized = m.isa.realized.Add(realized)
		case AccountGeneral:
			m.gen.realized = m.gen.realized.Add(realized)
		}
	}

	yms := make([]string, 0, len(months))
	for ym := range months {
		yms = append(yms, ym)
	}
	sort.Strings(yms)

	var cumISA, cumGen, cumAll cumAcc
	out := make([]MonthlySummary, 0, len(yms))
	for _, ym := range yms {
		m := months[ym]
		entry := MonthlySummary{Month: ym, ValuationDate: closes.MonthEnd(ym)}

		if entry.ValuationDate != "" {
			led := ComputeLedger(trades, entry.ValuationDate, entry.ValuationDate, closes)
			for _, p := range led.Positions {
				if !p.Quantity.IsPositive() || !p.LastClose.Valid {
					continue
				}
				unreal := p.LastClose.Decimal.Sub(p.AverageCost).Mul(p.Quantity)
				m.all.unrealized = m.all.unrealized.Add(unreal)
				switch p.Account {
				case AccountISA:
					m.isa.unrealized = m.isa.unrealized.Add(unreal)
				case AccountGeneral:
					m.gen.unrealized = m.gen.unrealized.Add(unreal)
				}
			}
		}

		finish := func(acc classAcc, cum *cumAcc) ClassSummary {
			s := ClassSummary{Invested: acc.invested, Realized: acc.realized}
			s.Pnl = acc.realized
			if entry.ValuationDate != "" {
				s.Unrealized = decimal.NullDecimal{Decimal: acc.unrealized, Valid: true}
				s.Pnl = s.Pnl.Add(acc.unrealized)
				if acc.invested.IsPositive() {
					s.Roi = decimal.NullDecimal{Decimal: s.Pnl.Div(acc.invested), Valid: true}
				}
			}
			cum.invested = cum.invested.Add(acc.invested)
			cum.pnl = cum.pnl.Add(s.Pnl)
			if cum.invested.IsPositive() {
				s.CumRoi = decimal.NullDecimal{Decimal: cum.pnl.Div(cum.invested), Valid: true}
			}
			return s
		}
		entry.ISA = finish(m.isa, &cumISA)
		entry.General = finish(m.gen, &cumGen)
		entry.All = finish(m.all, &cumAll)

		out = append(out, entry)
	}
	return out
}
