package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tradebook"
	"github.com/etnz/tradebook/renderer"
)

type monthlyCmd struct{}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the monthly performance series" }
func (*monthlyCmd) Usage() string {
	return `tb monthly

  Displays invested capital, P&L and ROI (simple and cumulative) for every
  month containing trades, per account class. Months without any close price
  snapshot show no unrealized P&L and no ROI rather than zero.

`
}

func (*monthlyCmd) SetFlags(*flag.FlagSet) {}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	months := tradebook.ComputeMonthlySummary(trades, closes)
	printMarkdown(renderer.MonthlyMarkdown(months))
	return subcommands.ExitSuccess
}
