package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tradebook"
)

type pasteCmd struct {
	date string
}

func (*pasteCmd) Name() string     { return "paste" }
func (*pasteCmd) Synopsis() string { return "bulk-record closing prices from pasted text" }
func (*pasteCmd) Usage() string {
	return `tb paste [-d <date>]

  Reads "company, price" lines from stdin and records each closing price
  under the given date. Company names are fuzzy-matched against the names
  already present in the trade log, so "삼성 전자" lands on "삼성전자"; an
  unmatched name is recorded as a new company.

Usage Examples:
$ pbpaste | tb paste -d 2024-02-29

`
}

func (c *pasteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", tradebook.Today(), "As-of date (YYYY-MM-DD)")
}

func (c *pasteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := LoadTrades()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	closes, err := LoadCloses()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read stdin: %v\n", err)
		return subcommands.ExitFailure
	}

	result := tradebook.ComputeLedger(trades, c.date, c.date, closes)
	candidates := tradebook.Companies(trades, result)
	applied := closes.ApplyBulk(c.date, string(text), candidates)

	if err := SaveCloses(closes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %d close prices for %s\n", applied, c.date)
	return subcommands.ExitSuccess
}
