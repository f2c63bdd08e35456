package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tradebook"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the trade log as CSV on stdout" }
func (*exportCmd) Usage() string {
	return `tb export > trades.csv

  Writes the trade log to stdout as CSV (date,company,account,side,price,qty),
  preserving insertion order and raw field values.

`
}

func (*exportCmd) SetFlags(*flag.FlagSet) {}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	trades, err := LoadTrades()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := tradebook.ExportCSV(os.Stdout, trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	replace bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from CSV on stdin" }
func (*importCmd) Usage() string {
	return `tb import [-replace] < trades.csv

  Appends trades read from stdin to the log, or replaces the whole log with
  -replace. The CSV header row is optional; short rows are padded.

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.replace, "replace", false, "Replace the trade log instead of appending")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	imported, err := tradebook.ImportCSV(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	trades := imported
	if !c.replace {
		existing, err := LoadTrades()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		trades = append(existing, imported...)
	}
	if err := SaveTrades(trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d trades (%d total)\n", len(imported), len(trades))
	return subcommands.ExitSuccess
}
