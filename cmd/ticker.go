package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/carteira-cli/carteira/renderer"
	"github.com/google/subcommands"
)

type tickerCmd struct{}

func (*tickerCmd) Name() string     { return "ticker" }
func (*tickerCmd) Synopsis() string { return "display the full event log of one ticker" }
func (*tickerCmd) Usage() string {
	return `carteira ticker <code>

  Displays every recorded event for the given ticker code, its average price
  and its net position. Works for liquidated tickers too; the code match is
  exact and case-sensitive.
`
}

func (c *tickerCmd) SetFlags(f *flag.FlagSet) {}

func (c *tickerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one ticker code.")
		return subcommands.ExitUsageError
	}
	code := f.Arg(0)

	wallet, err := DecodeWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	view := wallet.Lookup(code)
	if view == nil {
		fmt.Fprintf(os.Stderr, "Error: no event recorded for %q.\n", code)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Ticker(*view))
	return subcommands.ExitSuccess
}
