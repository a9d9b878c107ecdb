package renderer

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/carteira-cli/carteira"
)

func day() carteira.Date { return carteira.NewDate(2025, time.March, 14) }

func TestHoldings_WithoutQuotes(t *testing.T) {
	md := Holdings([]Holding{
		{Code: "PETR4", Amount: 900, AveragePrice: carteira.R(15.22), LastPrice: math.NaN()},
	})

	for _, want := range []string{"# Holdings", "| PETR4 | 900 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("Holdings() missing %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Market Value") {
		t.Errorf("Holdings() has quote columns without quotes:\n%s", md)
	}
}

func TestHoldings_WithQuotes(t *testing.T) {
	md := Holdings([]Holding{
		{Code: "PETR4", Amount: 100, AveragePrice: carteira.R(15), LastPrice: 38.5},
		{Code: "BBAS3", Amount: 50, AveragePrice: carteira.R(20), LastPrice: math.NaN()},
	})

	if !strings.Contains(md, "| PETR4 | 100 | R$15,00 | 38.50 | 3850.00 |") {
		t.Errorf("Holdings() missing market value row in:\n%s", md)
	}
	// A row without a quote renders dashes, not zeros.
	if !strings.Contains(md, "| BBAS3 | 50 | R$20,00 | - | - |") {
		t.Errorf("Holdings() missing dashed row in:\n%s", md)
	}
}

func TestHoldings_Empty(t *testing.T) {
	if md := Holdings(nil); !strings.Contains(md, "No instrument is currently held.") {
		t.Errorf("Holdings(nil) =\n%s", md)
	}
}

func TestEvent(t *testing.T) {
	buy := carteira.NewBuy("PETR4", carteira.NewTransactionInfo(day(), 200, carteira.R(14)))
	if got := Event(buy); got != "Bought 200 PETR4 at R$14,00 on 2025-03-14" {
		t.Errorf("Event(buy) = %q", got)
	}
	sell := carteira.NewSell("PETR4", carteira.NewTransactionInfo(day(), 50, carteira.R(15)))
	if got := Event(sell); got != "Sold 50 PETR4 at R$15,00 on 2025-03-14" {
		t.Errorf("Event(sell) = %q", got)
	}
}

func TestTicker(t *testing.T) {
	view := carteira.NewTicker("BBAS3", []carteira.Event{
		carteira.NewBuy("BBAS3", carteira.NewTransactionInfo(day(), 100, carteira.R(20))),
		carteira.NewBuy("BBAS3", carteira.NewTransactionInfo(day(), 100, carteira.R(25))),
		carteira.NewSell("BBAS3", carteira.NewTransactionInfo(day(), 50, carteira.R(20))),
	})

	md := Ticker(view)
	for _, want := range []string{
		"# BBAS3",
		"| 2025-03-14 | Buy | 100 | R$20,00 |",
		"| 2025-03-14 | Sell | 50 | R$20,00 |",
		"Average price: R$22,50",
		"Net position: 150 shares",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Ticker() missing %q in:\n%s", want, md)
		}
	}
}

func TestTicker_SoldOut(t *testing.T) {
	view := carteira.NewTicker("VALE3", []carteira.Event{
		carteira.NewSell("VALE3", carteira.NewTransactionInfo(day(), 100, carteira.R(60))),
	})

	md := Ticker(view)
	if !strings.Contains(md, "Average price: undefined (no buys)") {
		t.Errorf("Ticker() missing undefined average in:\n%s", md)
	}
	if !strings.Contains(md, "Net position: none (sold out)") {
		t.Errorf("Ticker() missing empty position in:\n%s", md)
	}
}
