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

type closeCmd struct {
	date string
	rm   bool
	list bool
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "record a closing price for a company" }
func (*closeCmd) Usage() string {
	return `tb close [-d <date>] [-rm] <company> [<price>]
tb close -list

  Records the closing price of a company on a date, or removes it with -rm.
  The company name is taken as given; use "tb paste" for fuzzy-matched bulk
  input. With -list, displays every recorded date and its prices instead.

Usage Examples:
# Record the 2024-02-29 close of 삼성전자.
$ tb close -d 2024-02-29 삼성전자 74300
# Review everything recorded so far.
$ tb close -list

`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", tradebook.Today(), "As-of date (YYYY-MM-DD)")
	f.BoolVar(&c.rm, "rm", false, "Remove the entry instead of setting it")
	f.BoolVar(&c.list, "list", false, "Display the recorded close-price table")
}

func (c *closeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if !c.list && (len(args) == 0 || (!c.rm && len(args) < 2)) {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	closes, err := LoadCloses()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.list {
		printMarkdown(renderer.ClosesMarkdown(closes))
		return subcommands.ExitSuccess
	}
	company := args[0]
	if c.rm {
		closes.Unset(c.date, company)
	} else {
		closes.Set(c.date, company, args[1])
	}
	if err := SaveCloses(closes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
