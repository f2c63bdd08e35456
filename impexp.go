package tradebook

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSV import/export of the trade log, for spreadsheets and hand editing.
// Columns: date,company,account,side,price,qty. Values travel verbatim, the
// engine normalizes on replay.

var csvHeader = []string{"date", "company", "account", "side", "price", "qty"}

// ExportCSV writes the trade log to w with a header row.
func ExportCSV(w io.Writer, trades []TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	for i, t := range trades {
		rec := []string{t.Date, t.Company, t.Account, t.Side, t.Price, t.Qty}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("cannot write trade %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads trades from r. A leading header row is detected and
// skipped; short rows are padded with empty fields rather than rejected.
func ImportCSV(r io.Reader) ([]TradeRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse csv: %w", err)
	}

	var trades []TradeRecord
	for i, rec := range records {
		if i == 0 && isCSVHeader(rec) {
			continue
		}
		for len(rec) < len(csvHeader) {
			rec = append(rec, "")
		}
		trades = append(trades, TradeRecord{
			Date:    rec[0],
			Company: rec[1],
			Account: rec[2],
			Side:    rec[3],
			Price:   rec[4],
			Qty:     rec[5],
		})
	}
	return trades, nil
}

func isCSVHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(rec[0]), csvHeader[0])
}
