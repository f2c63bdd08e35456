// Package cmd implements the subcommands of the tb command-line tool.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"

	"github.com/etnz/tradebook"
)

// Register registers all tb subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "trades")
	c.Register(&importCmd{}, "trades")
	c.Register(&exportCmd{}, "trades")
	c.Register(&fmtCmd{}, "trades")

	c.Register(&closeCmd{}, "prices")
	c.Register(&pasteCmd{}, "prices")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")
}

var (
	ledgerPath = flag.String("ledger", "", "Path to the trade log file (JSONL), overrides the config file")
	closesPath = flag.String("closes", "", "Path to the close-price table file (JSON), overrides the config file")
)

const configFile = ".tradebook.yaml"

// config holds the optional per-directory settings file.
type config struct {
	Ledger string `yaml:"ledger"`
	Closes string `yaml:"closes"`
}

// paths resolves the data file locations: flags win over .tradebook.yaml,
// which wins over the defaults.
func paths() (ledger, closes string, err error) {
	cfg := config{Ledger: "trades.jsonl", Closes: "closes.json"}
	raw, err := os.ReadFile(configFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// no config file, defaults apply
	case err != nil:
		return "", "", fmt.Errorf("cannot read %s: %w", configFile, err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return "", "", fmt.Errorf("cannot parse %s: %w", configFile, err)
		}
	}
	ledger, closes = cfg.Ledger, cfg.Closes
	if *ledgerPath != "" {
		ledger = *ledgerPath
	}
	if *closesPath != "" {
		closes = *closesPath
	}
	return ledger, closes, nil
}

// LoadTrades reads the trade log, returning an empty log when the file does
// not exist yet.
func LoadTrades() ([]tradebook.TradeRecord, error) {
	path, _, err := paths()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open trade log: %w", err)
	}
	defer f.Close()
	return tradebook.DecodeTrades(f)
}

// SaveTrades writes the trade log back, preserving insertion order.
func SaveTrades(trades []tradebook.TradeRecord) error {
	path, _, err := paths()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write trade log: %w", err)
	}
	defer f.Close()
	return tradebook.EncodeTrades(f, trades)
}

// LoadCloses reads the close-price table, returning an empty table when the
// file does not exist yet.
func LoadCloses() (tradebook.ClosePrices, error) {
	_, path, err := paths()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(tradebook.ClosePrices), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open close prices: %w", err)
	}
	defer f.Close()
	return tradebook.DecodeClosePrices(f)
}

// SaveCloses writes the close-price table back.
func SaveCloses(cp tradebook.ClosePrices) error {
	_, path, err := paths()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write close prices: %w", err)
	}
	defer f.Close()
	return tradebook.EncodeClosePrices(f, cp)
}
