package tradebook

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// NoCutoff is the sentinel cutoff date that replays the whole trade log.
const NoCutoff = ""

// PositionKey identifies a position: one company held in one account.
// Structural equality on the key is what groups trades together, so the
// company is trimmed and the account normalized before keying.
type PositionKey struct {
	Company string
	Account string
}

// Position is the running state of one (company, account) holding during a
// replay. Positions are built fresh on every engine call and never outlive
// the LedgerResult that carries them.
type Position struct {
	Company     string
	Account     string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal // quantity-weighted buy price; sticky once quantity returns to zero
	RealizedCum decimal.Decimal
	TradeCount  int                 // trades that touched this key, distinguishes "closed out" from "never traded"
	LastClose   decimal.NullDecimal // close price on the valuation date, when known
}

// TradeResult holds the figures derived for a single trade record.
type TradeResult struct {
	// Amount is the signed cash flow of the trade (positive for buys,
	// negative for sells). Invalid when price or quantity did not parse.
	Amount decimal.NullDecimal
	// Realized is the P&L locked in by this trade. Zero for buys and for
	// trades with unparsable numbers.
	Realized decimal.Decimal
	// RealizedCum is the position's cumulative realized P&L right after
	// this trade, in replay order.
	RealizedCum decimal.Decimal
}

// MonthRealized aggregates realized P&L for one calendar month, split by
// account class. All covers every account; ISA and General only their own.
type MonthRealized struct {
	ISA     decimal.Decimal
	General decimal.Decimal
	All     decimal.Decimal
}

// LedgerResult is the output of one engine invocation.
type LedgerResult struct {
	// PerTrade maps the original index of each replayed trade to its
	// derived figures. Trades beyond the cutoff have no entry.
	PerTrade map[int]TradeResult
	// Positions is the final state of every (company, account) pair seen.
	Positions map[PositionKey]*Position
	// MonthRealized maps YYYY-MM to realized totals per account class.
	MonthRealized map[string]*MonthRealized
}

// ComputeLedger replays the trade log in chronological order and returns the
// derived per-trade figures, the final position map, and per-month realized
// totals. It is a pure function of its inputs: the log and the close table
// are read-only, nothing is kept between calls, and identical inputs yield
// identical results.
//
// Ordering is total and stable: trades sort by their trimmed date string
// (lexicographic, so the empty date sorts first) and, within a date, by
// their position in the log. Trades dated strictly after cutoffDate are
// skipped; pass NoCutoff to replay everything.
//
// Malformed data never aborts a replay. A trade whose price or quantity does
// not parse gets a null amount, contributes nothing to average cost or
// realized P&L, and the replay moves on. A sell beyond the held quantity is
// clipped to the holding; the excess simply has no accounting effect.
//
// Open positions are valued with closes[valuationDate]; companies without a
// parsable close price keep a null LastClose.
func ComputeLedger(trades []TradeRecord, valuationDate, cutoffDate string, closes ClosePrices) *LedgerResult {
	type entry struct {
		idx  int
		date string
	}
	order := make([]entry, 0, len(trades))
	for i, t := range trades {
		order = append(order, entry{idx: i, date: strings.TrimSpace(t.Date)})
	}
	slices.SortStableFunc(order, func(a, b entry) int {
		return strings.Compare(a.date, b.date)
	})

	result := &LedgerResult{
		PerTrade:      make(map[int]TradeResult, len(trades)),
		Positions:     make(map[PositionKey]*Position),
		MonthRealized: make(map[string]*MonthRealized),
	}

	position := func(key PositionKey) *Position {
		p, ok := result.Positions[key]
		if !ok {
			p = &Position{Company: key.Company, Account: key.Account}
			result.Positions[key] = p
		}
		return p
	}

	for _, it := range order {
		t := trades[it.idx]
		date := it.date
		if cutoffDate != NoCutoff && date != "" && date > cutoffDate {
			continue
		}

		company := strings.TrimSpace(t.Company)
		account := NormalizeAccount(t.Account)
		side := NormalizeSide(t.Side)
		price := parseNumber(t.Price)
		qty := parseNumber(t.Qty)

		p := position(PositionKey{Company: company, Account: account})
		if company != "" {
			p.TradeCount++
		}

		var amount decimal.NullDecimal
		var realized decimal.Decimal
		if price.Valid && qty.Valid {
			amount.Valid = true
			amount.Decimal = price.Decimal.Mul(qty.Decimal)
			if side == SideSell {
				amount.Decimal = amount.Decimal.Neg()
			}

			switch side {
			case SideBuy:
				newQty := p.Quantity.Add(qty.Decimal)
				if newQty.IsPositive() {
					cost := p.AverageCost.Mul(p.Quantity).Add(price.Decimal.Mul(qty.Decimal))
					p.AverageCost = cost.Div(newQty)
				}
				p.Quantity = newQty
			case SideSell:
				sellable := decimal.Min(qty.Decimal, p.Quantity)
				realized = price.Decimal.Sub(p.AverageCost).Mul(sellable)
				p.RealizedCum = p.RealizedCum.Add(realized)
				p.Quantity = p.Quantity.Sub(sellable)
			}
		}

		if ym := YearMonth(date); ym != "" {
			mr, ok := result.MonthRealized[ym]
			if !ok {
				mr = &MonthRealized{}
				result.MonthRealized[ym] = mr
			}
			mr.All = mr.All.Add(realized)
			switch account {
			case AccountISA:
				mr.ISA = mr.ISA.Add(realized)
			case AccountGeneral:
				mr.General = mr.General.Add(realized)
			}
		}

		result.PerTrade[it.idx] = TradeResult{
			Amount:      amount,
			Realized:    realized,
			RealizedCum: p.RealizedCum,
		}
	}

	for _, p := range result.Positions {
		p.LastClose = closes.Price(valuationDate, p.Company)
	}

	return result
}

// parseNumber parses a free-text numeric field. Empty or unparsable input is
// "unknown", a first-class value distinct from zero.
func parseNumber(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
