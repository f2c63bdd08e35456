package tradebook

import (
	"testing"

	"github.com/shopspring/decimal"
)

// buy and sell are helpers to build trade records from constants.
func buy(date, company, account, price, qty string) TradeRecord {
	return TradeRecord{Date: date, Company: company, Account: account, Side: SideBuy, Price: price, Qty: qty}
}

func sell(date, company, account, price, qty string) TradeRecord {
	return TradeRecord{Date: date, Company: company, Account: account, Side: SideSell, Price: price, Qty: qty}
}

// dec parses a decimal constant for expectations.
func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal constant %q: %v", s, err)
	}
	return d
}

// wantDecimal fails the test when got differs from the expected constant.
func wantDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(t, want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
