package tradebook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// This file handles the on-disk formats. Both stay human readable and easy
// to diff: the trade log is JSONL, one trade per line, in insertion order
// (the order is semantically significant, it breaks date ties on replay);
// the close table is a single indented JSON document.

// EncodeTrades writes the trade log to w as JSONL, preserving order and the
// raw field values exactly as entered.
func EncodeTrades(w io.Writer, trades []TradeRecord) error {
	enc := json.NewEncoder(w)
	for i, t := range trades {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("cannot encode trade %d: %w", i, err)
		}
	}
	return nil
}

// DecodeTrades reads a JSONL trade log from r. Blank lines are skipped; a
// line that is not a JSON trade object is an error naming the line.
func DecodeTrades(r io.Reader) ([]TradeRecord, error) {
	var trades []TradeRecord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var t TradeRecord
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("cannot parse trade line %q: %w", string(line), err)
		}
		trades = append(trades, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read trade log: %w", err)
	}
	return trades, nil
}

// EncodeClosePrices writes the close-price table to w as indented JSON.
func EncodeClosePrices(w io.Writer, cp ClosePrices) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cp); err != nil {
		return fmt.Errorf("cannot encode close prices: %w", err)
	}
	return nil
}

// DecodeClosePrices reads a close-price table from r. An empty stream yields
// an empty, usable table.
func DecodeClosePrices(r io.Reader) (ClosePrices, error) {
	cp := make(ClosePrices)
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cp); err != nil && err != io.EOF {
		return nil, fmt.Errorf("cannot parse close prices: %w", err)
	}
	return cp, nil
}
