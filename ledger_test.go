package tradebook

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestComputeLedger_AverageCost(t *testing.T) {
	trades := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		buy("2024-01-10", "삼성전자", "ISA", "20", "100"),
		sell("2024-02-01", "삼성전자", "ISA", "30", "150"),
	}

	result := ComputeLedger(trades, "2024-02-01", "2024-02-01", nil)

	p := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
	if p == nil {
		t.Fatal("position not found")
	}
	wantDecimal(t, "AverageCost", p.AverageCost, "15")
	wantDecimal(t, "Quantity", p.Quantity, "50")
	wantDecimal(t, "RealizedCum", p.RealizedCum, "2250")
	if p.TradeCount != 3 {
		t.Errorf("TradeCount = %d, want 3", p.TradeCount)
	}

	sellResult := result.PerTrade[2]
	wantDecimal(t, "sell Realized", sellResult.Realized, "2250")
	wantDecimal(t, "sell RealizedCum", sellResult.RealizedCum, "2250")
	if !sellResult.Amount.Valid {
		t.Fatal("sell Amount should be defined")
	}
	wantDecimal(t, "sell Amount", sellResult.Amount.Decimal, "-4500")

	buyResult := result.PerTrade[0]
	wantDecimal(t, "buy Realized", buyResult.Realized, "0")
	if !buyResult.Amount.Valid {
		t.Fatal("buy Amount should be defined")
	}
	wantDecimal(t, "buy Amount", buyResult.Amount.Decimal, "1000")
}

func TestComputeLedger_WeightedAverageOfBuys(t *testing.T) {
	// After only buys, the average cost is the quantity-weighted mean.
	trades := []TradeRecord{
		buy("2024-01-01", "현대차", "일반", "100", "1"),
		buy("2024-01-02", "현대차", "일반", "200", "3"),
		buy("2024-01-03", "현대차", "일반", "50", "4"),
	}
	result := ComputeLedger(trades, "2024-01-31", NoCutoff, nil)
	p := result.Positions[PositionKey{Company: "현대차", Account: AccountGeneral}]
	// (100×1 + 200×3 + 50×4) / 8 = 900/8
	wantDecimal(t, "AverageCost", p.AverageCost, "112.5")
	wantDecimal(t, "Quantity", p.Quantity, "8")
}

func TestComputeLedger_OversellClipped(t *testing.T) {
	t.Run("sell with no prior buy", func(t *testing.T) {
		trades := []TradeRecord{sell("2024-01-05", "삼성전자", "ISA", "10", "100")}
		result := ComputeLedger(trades, "2024-01-05", NoCutoff, nil)
		p := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
		wantDecimal(t, "Quantity", p.Quantity, "0")
		wantDecimal(t, "RealizedCum", p.RealizedCum, "0")
		wantDecimal(t, "Realized", result.PerTrade[0].Realized, "0")
	})

	t.Run("sell beyond holding realizes only the held amount", func(t *testing.T) {
		trades := []TradeRecord{
			buy("2024-01-05", "삼성전자", "ISA", "10", "50"),
			sell("2024-01-10", "삼성전자", "ISA", "30", "80"),
		}
		result := ComputeLedger(trades, "2024-01-10", NoCutoff, nil)
		p := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
		wantDecimal(t, "Quantity", p.Quantity, "0")
		// (30-10) × 50, not × 80
		wantDecimal(t, "RealizedCum", p.RealizedCum, "1000")
		// average cost is sticky after closing out
		wantDecimal(t, "AverageCost", p.AverageCost, "10")
	})
}

func TestComputeLedger_RealizedConservation(t *testing.T) {
	// A position fully closed by sells realizes exactly sells minus buys.
	trades := []TradeRecord{
		buy("2024-01-01", "LG화학", "ISA", "11", "7"),
		buy("2024-01-08", "LG화학", "ISA", "19", "13"),
		sell("2024-01-15", "LG화학", "ISA", "23", "5"),
		sell("2024-01-22", "LG화학", "ISA", "17", "15"),
	}
	result := ComputeLedger(trades, "2024-01-31", NoCutoff, nil)
	p := result.Positions[PositionKey{Company: "LG화학", Account: AccountISA}]
	wantDecimal(t, "Quantity", p.Quantity, "0")

	buys := dec(t, "11").Mul(dec(t, "7")).Add(dec(t, "19").Mul(dec(t, "13")))
	sells := dec(t, "23").Mul(dec(t, "5")).Add(dec(t, "17").Mul(dec(t, "15")))
	if !p.RealizedCum.Equal(sells.Sub(buys)) {
		t.Errorf("RealizedCum = %s, want %s", p.RealizedCum, sells.Sub(buys))
	}
}

func TestComputeLedger_InputOrderIndependence(t *testing.T) {
	trades := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		buy("2024-01-10", "삼성전자", "ISA", "20", "100"),
		sell("2024-02-01", "삼성전자", "ISA", "30", "150"),
		buy("2024-01-07", "LG화학", "일반", "500", "10"),
		sell("2024-03-01", "LG화학", "일반", "550", "4"),
	}
	want := ComputeLedger(trades, "2024-03-31", NoCutoff, nil).Positions

	rng := rand.New(rand.NewSource(42))
	for range 10 {
		shuffled := make([]TradeRecord, len(trades))
		copy(shuffled, trades)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := ComputeLedger(shuffled, "2024-03-31", NoCutoff, nil).Positions
		if len(got) != len(want) {
			t.Fatalf("position count = %d, want %d", len(got), len(want))
		}
		for key, wp := range want {
			gp := got[key]
			if gp == nil {
				t.Fatalf("missing position %v", key)
			}
			if !gp.Quantity.Equal(wp.Quantity) || !gp.AverageCost.Equal(wp.AverageCost) || !gp.RealizedCum.Equal(wp.RealizedCum) {
				t.Errorf("position %v diverged under permutation: got %+v want %+v", key, gp, wp)
			}
		}
	}
}

func TestComputeLedger_SameDateTieBrokenByIndex(t *testing.T) {
	// Same date: the record earlier in the log replays first.
	forward := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		sell("2024-01-05", "삼성전자", "ISA", "20", "50"),
	}
	result := ComputeLedger(forward, "2024-01-05", NoCutoff, nil)
	p := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
	wantDecimal(t, "forward Quantity", p.Quantity, "50")
	wantDecimal(t, "forward RealizedCum", p.RealizedCum, "500")

	// Swapped, the sell replays first against an empty position and clips to zero.
	swapped := []TradeRecord{forward[1], forward[0]}
	result = ComputeLedger(swapped, "2024-01-05", NoCutoff, nil)
	p = result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
	wantDecimal(t, "swapped Quantity", p.Quantity, "100")
	wantDecimal(t, "swapped RealizedCum", p.RealizedCum, "0")
}

func TestComputeLedger_EmptyDateSortsFirst(t *testing.T) {
	// The undated buy replays before the dated sell, so the sell has
	// holdings to realize against.
	trades := []TradeRecord{
		sell("2024-01-10", "삼성전자", "ISA", "20", "100"),
		buy("", "삼성전자", "ISA", "10", "100"),
	}
	result := ComputeLedger(trades, "2024-01-10", NoCutoff, nil)
	p := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
	wantDecimal(t, "Quantity", p.Quantity, "0")
	wantDecimal(t, "RealizedCum", p.RealizedCum, "1000")
}

func TestComputeLedger_UndatedTradesSurviveCutoff(t *testing.T) {
	trades := []TradeRecord{
		buy("", "삼성전자", "ISA", "10", "100"),
		buy("2024-06-01", "삼성전자", "ISA", "20", "100"),
	}
	result := ComputeLedger(trades, "2024-01-01", "2024-01-01", nil)
	p := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
	// Only the undated buy is inside the cutoff.
	wantDecimal(t, "Quantity", p.Quantity, "100")
	if _, ok := result.PerTrade[1]; ok {
		t.Error("trade beyond the cutoff should have no result entry")
	}
}

func TestComputeLedger_CutoffEquivalence(t *testing.T) {
	trades := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		sell("2024-02-01", "삼성전자", "ISA", "30", "50"),
		buy("2024-03-01", "삼성전자", "ISA", "40", "10"),
	}
	const cutoff = "2024-02-15"

	withCutoff := ComputeLedger(trades, cutoff, cutoff, nil)

	var filtered []TradeRecord
	for _, tr := range trades {
		if tr.Date <= cutoff {
			filtered = append(filtered, tr)
		}
	}
	withFilter := ComputeLedger(filtered, cutoff, cutoff, nil)

	key := PositionKey{Company: "삼성전자", Account: AccountISA}
	a, b := withCutoff.Positions[key], withFilter.Positions[key]
	if !a.Quantity.Equal(b.Quantity) || !a.AverageCost.Equal(b.AverageCost) || !a.RealizedCum.Equal(b.RealizedCum) {
		t.Errorf("cutoff replay %+v != filtered replay %+v", a, b)
	}
}

func TestComputeLedger_UnknownNumbersDegrade(t *testing.T) {
	trades := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		buy("2024-01-06", "삼성전자", "ISA", "", "100"),     // missing price
		sell("2024-01-07", "삼성전자", "ISA", "abc", "50"),  // unparsable price
		sell("2024-01-08", "삼성전자", "ISA", "30", "50"),
	}
	result := ComputeLedger(trades, "2024-01-31", NoCutoff, nil)

	if result.PerTrade[1].Amount.Valid {
		t.Error("missing price should yield an unknown amount")
	}
	if result.PerTrade[2].Amount.Valid {
		t.Error("unparsable price should yield an unknown amount")
	}
	wantDecimal(t, "invalid sell Realized", result.PerTrade[2].Realized, "0")

	p := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
	// Only the first buy and the last sell count.
	wantDecimal(t, "Quantity", p.Quantity, "50")
	wantDecimal(t, "AverageCost", p.AverageCost, "10")
	wantDecimal(t, "RealizedCum", p.RealizedCum, "1000")
	if p.TradeCount != 4 {
		t.Errorf("TradeCount = %d, want 4 (invalid trades still touch the key)", p.TradeCount)
	}
}

func TestComputeLedger_MonthRealized(t *testing.T) {
	trades := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		sell("2024-02-01", "삼성전자", "ISA", "30", "50"),   // realized 1000 in ISA
		buy("2024-01-07", "LG화학", "일반", "100", "10"),
		sell("2024-02-10", "LG화학", "일반", "150", "10"),   // realized 500 in GENERAL
		buy("2024-02-11", "현대차", "pension", "50", "10"),
		sell("2024-02-12", "현대차", "pension", "70", "10"), // realized 200, other account
		sell("2024", "현대차", "pension", "70", "10"),       // short date, no month bucket
	}
	result := ComputeLedger(trades, "2024-02-28", NoCutoff, nil)

	jan := result.MonthRealized["2024-01"]
	if jan == nil {
		t.Fatal("missing 2024-01 bucket")
	}
	wantDecimal(t, "jan All", jan.All, "0")

	feb := result.MonthRealized["2024-02"]
	if feb == nil {
		t.Fatal("missing 2024-02 bucket")
	}
	wantDecimal(t, "feb ISA", feb.ISA, "1000")
	wantDecimal(t, "feb General", feb.General, "500")
	// ALL includes the other-account trade as well.
	wantDecimal(t, "feb All", feb.All, "1700")

	if _, ok := result.MonthRealized["2024"]; ok {
		t.Error("short date must not create a month bucket")
	}
	if len(result.MonthRealized) != 2 {
		t.Errorf("month buckets = %d, want 2", len(result.MonthRealized))
	}
}

func TestComputeLedger_LastClose(t *testing.T) {
	trades := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		buy("2024-01-05", "LG화학", "ISA", "100", "10"),
		buy("2024-01-05", "현대차", "ISA", "50", "10"),
	}
	closes := ClosePrices{
		"2024-01-31": {"삼성전자": "12.5", "LG화학": "n/a"},
	}
	result := ComputeLedger(trades, "2024-01-31", NoCutoff, closes)

	samsung := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
	if !samsung.LastClose.Valid {
		t.Fatal("삼성전자 close should be defined")
	}
	wantDecimal(t, "삼성전자 LastClose", samsung.LastClose.Decimal, "12.5")

	lg := result.Positions[PositionKey{Company: "LG화학", Account: AccountISA}]
	if lg.LastClose.Valid {
		t.Error("unparsable close must stay unknown")
	}
	hyundai := result.Positions[PositionKey{Company: "현대차", Account: AccountISA}]
	if hyundai.LastClose.Valid {
		t.Error("absent close must stay unknown")
	}
}

func TestComputeLedger_Idempotence(t *testing.T) {
	trades := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		sell("2024-02-01", "삼성전자", "ISA", "30", "150"),
		buy("", "LG화학", "일반", "", "10"),
	}
	closes := ClosePrices{"2024-02-01": {"삼성전자": "31"}}

	first := ComputeLedger(trades, "2024-02-01", "2024-02-01", closes)
	second := ComputeLedger(trades, "2024-02-01", "2024-02-01", closes)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical results")
	}
}

func TestComputeLedger_AccountsKeepPositionsApart(t *testing.T) {
	// The same company in two accounts is two positions.
	trades := []TradeRecord{
		buy("2024-01-05", "삼성전자", "ISA", "10", "100"),
		buy("2024-01-05", "삼성전자", "일반", "20", "100"),
		sell("2024-01-10", "삼성전자", "ISA", "30", "100"),
	}
	result := ComputeLedger(trades, "2024-01-10", NoCutoff, nil)

	isa := result.Positions[PositionKey{Company: "삼성전자", Account: AccountISA}]
	wantDecimal(t, "ISA Quantity", isa.Quantity, "0")
	wantDecimal(t, "ISA RealizedCum", isa.RealizedCum, "2000")

	gen := result.Positions[PositionKey{Company: "삼성전자", Account: AccountGeneral}]
	wantDecimal(t, "GENERAL Quantity", gen.Quantity, "100")
	wantDecimal(t, "GENERAL RealizedCum", gen.RealizedCum, "0")
}

func TestComputeLedger_DoesNotMutateInputs(t *testing.T) {
	trades := []TradeRecord{
		buy(" 2024-01-05 ", " 삼성전자 ", " 일반 ", "10", "100"),
	}
	closes := ClosePrices{"2024-01-05": {"삼성전자": "11"}}
	before := make([]TradeRecord, len(trades))
	copy(before, trades)

	ComputeLedger(trades, "2024-01-05", NoCutoff, closes)

	if !reflect.DeepEqual(trades, before) {
		t.Error("trade log was mutated")
	}
	if _, ok := closes["2024-01-05"]["삼성전자"]; !ok || len(closes) != 1 {
		t.Error("close table was mutated")
	}
}
