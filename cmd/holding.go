package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"

	"github.com/carteira-cli/carteira/investidor10"
	"github.com/carteira-cli/carteira/renderer"
	"github.com/google/subcommands"
)

type holdingCmd struct {
	quotes bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the currently held tickers" }
func (*holdingCmd) Usage() string {
	return `carteira holding [-q]

  Displays every ticker with a positive net position, its quantity and its
  average acquisition price. With -q, fetches the latest quotes from
  investidor10 and shows market values.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quotes, "q", false, "fetch latest quotes and show market values")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := DecodeWallet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading wallet: %v\n", err)
		return subcommands.ExitFailure
	}

	var client *investidor10.Client
	if c.quotes {
		LoadEnv()
		client, err = investidor10.NewClientFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating investidor10 client: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	var rows []renderer.Holding
	for ticker := range wallet.Holdings() {
		pos := ticker.Position() // never nil for a held ticker

		last := math.NaN()
		if client != nil {
			last, err = client.Latest(ctx, ticker.Code())
			if err != nil {
				log.Printf("could not fetch quote for %s: %v", ticker.Code(), err)
			}
		}

		rows = append(rows, renderer.Holding{
			Code:         pos.Code,
			Amount:       pos.Amount,
			AveragePrice: pos.AveragePrice,
			LastPrice:    last,
		})
	}

	// Holdings iterate in map order; sort for a stable report.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })

	printMarkdown(renderer.Holdings(rows))
	return subcommands.ExitSuccess
}
