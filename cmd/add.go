package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/tradebook"
)

type addCmd struct {
	date    string
	company string
	account string
	side    string
	price   string
	qty     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a trade to the log" }
func (*addCmd) Usage() string {
	return `tb add -c <company> [-d <date>] [-a <account>] [-s BUY|SELL] [-p <price>] [-q <qty>]

  Appends one trade record to the log. Fields are stored as given: price and
  quantity may be left empty and filled in later, the ledger treats them as
  unknown until they parse.

Usage Examples:
# Buy 100 shares of 삼성전자 at 10 in the ISA account.
$ tb add -d 2024-01-05 -c 삼성전자 -a ISA -s BUY -p 10 -q 100

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", tradebook.Today(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.company, "c", "", "Company name")
	f.StringVar(&c.account, "a", tradebook.AccountGeneral, "Account label (ISA, GENERAL, or any other)")
	f.StringVar(&c.side, "s", tradebook.SideBuy, "Trade side (BUY or SELL)")
	f.StringVar(&c.price, "p", "", "Unit price")
	f.StringVar(&c.qty, "q", "", "Quantity")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.company == "" {
		fmt.Fprintln(os.Stderr, "Error: -c <company> is required")
		return subcommands.ExitUsageError
	}
	trades, err := LoadTrades()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	trades = append(trades, tradebook.TradeRecord{
		Date:    c.date,
		Company: c.company,
		Account: c.account,
		Side:    c.side,
		Price:   c.price,
		Qty:     c.qty,
	})
	if err := SaveTrades(trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded trade %d: %s %s %s\n", len(trades)-1, c.side, c.qty, c.company)
	return subcommands.ExitSuccess
}
