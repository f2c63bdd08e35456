package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/renderer"
)

type holdingCmd struct {
	date  string
	scope string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display open and closed positions with P&L" }
func (*holdingCmd) Usage() string {
	return `tb holding [-d <date>] [-scope ISA|GENERAL|ALL]

  Replays the trade log and displays every position: quantity, average cost,
  realized and unrealized P&L, and return, valued with the close prices
  recorded for the given date. With -scope, the position tables are limited
  to one account; the totals always cover everything.

`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", tradebook.Today(), "Valuation date (YYYY-MM-DD)")
	f.StringVar(&c.scope, "scope", tradebook.ScopeAll, "Restrict position tables to one account (ISA, GENERAL or ALL)")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	scope := strings.ToUpper(strings.TrimSpace(c.scope))
	switch scope {
	case tradebook.ScopeAll, tradebook.AccountISA, tradebook.AccountGeneral:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown scope %q (want ISA, GENERAL or ALL)\n", c.scope)
		return subcommands.ExitUsageError
	}
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
	result := tradebook.ComputeLedger(trades, c.date, c.date, closes)
	report := tradebook.BuildHoldingReport(result, c.date)
	report = report.Scoped(scope)
	printMarkdown(renderer.HoldingMarkdown(report))
	return subcommands.ExitSuccess
}
