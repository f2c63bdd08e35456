package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/tradebook"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrite the trade log in canonical form and report suspicious records"
}
func (*fmtCmd) Usage() string {
	return `tb fmt

  Reads the whole trade log and writes it back in canonical JSONL form.
  Records are never reordered or altered (insertion order breaks date ties in
  the ledger), but records with malformed dates or unparsable numbers are
  reported so they can be fixed by hand.

`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := LoadTrades()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for i, t := range trades {
		if t.Date != "" {
			if _, err := time.Parse(tradebook.DateFormat, t.Date); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: trade %d has a malformed date %q\n", i, t.Date)
			}
		}
		if side := tradebook.NormalizeSide(t.Side); side != tradebook.SideBuy && side != tradebook.SideSell {
			fmt.Fprintf(os.Stderr, "Warning: trade %d has an unknown side %q\n", i, t.Side)
		}
	}
	if err := SaveTrades(trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Formatted %d trades\n", len(trades))
	return subcommands.ExitSuccess
}
