// Package cmd implements the CLI application to manage a B3 wallet.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/carteira-cli/carteira"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&tickerCmd{}, "reports")

	c.Register(&loginCmd{}, "investidor10")
	c.Register(&syncCmd{}, "investidor10")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "carteira.jsonl", "Path to the ledger file containing trade events (JSONL format)")

// LoadEnv loads credentials from a .env file when one exists next to the
// ledger. Missing files are fine, anything else is worth a warning.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, could not load .env: %v", err)
	}
}

// DecodeWallet loads the ledger file and builds the wallet from it.
func DecodeWallet() (*carteira.Wallet, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, using an empty wallet instead")
		return carteira.FromEvents(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	events, err := carteira.DecodeEvents(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger file %q: %w", *ledgerFile, err)
	}
	return carteira.FromEvents(events...), nil
}

// AppendEvents appends events to the ledger file, creating it if needed.
func AppendEvents(events ...carteira.Event) error {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	if err := carteira.EncodeEvents(f, events...); err != nil {
		return fmt.Errorf("cannot write to ledger file %q: %w", *ledgerFile, err)
	}
	return nil
}
