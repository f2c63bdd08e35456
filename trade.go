package tradebook

import "strings"

// Canonical account labels. Any other label is kept verbatim as a
// first-class "other" account.
const (
	AccountISA     = "ISA"
	AccountGeneral = "GENERAL"
)

// Canonical trade sides.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// TradeRecord is one row of the trade log, exactly as entered. All fields are
// free text: dates may be empty or malformed, numbers may be missing. The
// engine normalizes and parses on replay; the record itself is never fixed up
// in place, so a round trip through persistence preserves the user's input.
//
// The position of a record in the log is semantically significant: it is the
// tie-break for trades sharing a date.
type TradeRecord struct {
	Date    string `json:"date"`    // calendar date in YYYY-MM-DD form, may be empty
	Company string `json:"company"` // free-text company name
	Account string `json:"account"` // ISA, GENERAL (or 일반/general), or any other label
	Side    string `json:"side"`    // BUY/SELL (or 매수/매도)
	Price   string `json:"price"`   // unit price, may be empty or unparsable
	Qty     string `json:"qty"`     // quantity, may be empty or unparsable
}

// NormalizeAccount maps a raw account label onto its canonical value.
// "일반" and "general" (any case) mean the general account; "ISA" passes
// through; anything else is trimmed and returned verbatim.
func NormalizeAccount(raw string) string {
	s := strings.TrimSpace(raw)
	if s == AccountISA {
		return AccountISA
	}
	if s == "일반" || strings.EqualFold(s, "general") {
		return AccountGeneral
	}
	return s
}

// NormalizeSide maps a raw side token onto BUY or SELL. Localized tokens are
// recognized; anything else is trimmed, uppercased and returned as is.
func NormalizeSide(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == SideBuy || s == "매수" {
		return SideBuy
	}
	if s == SideSell || s == "매도" {
		return SideSell
	}
	return s
}
