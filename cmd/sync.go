package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/carteira-cli/carteira"
	"github.com/carteira-cli/carteira/investidor10"
	"github.com/carteira-cli/carteira/renderer"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "push the trades of every held ticker to investidor10" }
func (*syncCmd) Usage() string {
	return `carteira sync

  Replicates every trade of every currently held ticker into your
  investidor10 wallet. Liquidated tickers are skipped. The remote API is not
  idempotent: re-running a sync duplicates the trades that already succeeded.

  Requires a stored session (see 'carteira login') and the I10_WALLET_ID
  environment variable (a .env file works too).
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := DecodeWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	LoadEnv()
	client, err := investidor10.NewClientFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating investidor10 client: %v\n", err)
		return subcommands.ExitFailure
	}

	var events []carteira.Event
	for ticker := range wallet.Holdings() {
		for e := range ticker.Events() {
			events = append(events, e)
		}
	}
	if len(events) == 0 {
		fmt.Println("No held ticker, nothing to sync.")
		return subcommands.ExitSuccess
	}

	bar := progressbar.Default(int64(len(events)), "syncing trades")
	var failed []carteira.Event
	for _, e := range events {
		if err := client.AddTrade(ctx, e); err != nil {
			fmt.Fprintf(os.Stderr, "\n%s: %v\n", renderer.Event(e), err)
			failed = append(failed, e)
		}
		bar.Add(1)
	}

	fmt.Printf("Pushed %d trades, %d failed.\n", len(events)-len(failed), len(failed))
	if len(failed) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
