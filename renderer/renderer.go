// Package renderer turns wallet data into markdown. It performs no I/O and
// fetches nothing; callers assemble the data and decide where the markdown
// goes.
package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/carteira-cli/carteira"
)

// Holding is one row of the holdings report. LastPrice is optional: NaN means
// no quote was fetched and the market value columns are omitted.
type Holding struct {
	Code         string
	Amount       int64
	AveragePrice carteira.Money
	LastPrice    float64
}

// HasQuote reports whether a last price is available for this row.
func (h Holding) HasQuote() bool { return !math.IsNaN(h.LastPrice) }

// Holdings renders the held instruments as a markdown table. Quote columns
// appear only when at least one row carries a quote.
func Holdings(rows []Holding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")

	if len(rows) == 0 {
		fmt.Fprintf(&b, "No instrument is currently held.\n")
		return b.String()
	}

	withQuotes := false
	for _, row := range rows {
		if row.HasQuote() {
			withQuotes = true
			break
		}
	}

	if withQuotes {
		fmt.Fprintf(&b, "| Code | Quantity | Avg Price | Last | Market Value |\n")
		fmt.Fprintf(&b, "|---|--:|--:|--:|--:|\n")
	} else {
		fmt.Fprintf(&b, "| Code | Quantity | Avg Price |\n")
		fmt.Fprintf(&b, "|---|--:|--:|\n")
	}

	for _, row := range rows {
		if !withQuotes {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", row.Code, row.Amount, row.AveragePrice)
			continue
		}
		if row.HasQuote() {
			fmt.Fprintf(&b, "| %s | %d | %s | %.2f | %.2f |\n",
				row.Code, row.Amount, row.AveragePrice, row.LastPrice, float64(row.Amount)*row.LastPrice)
		} else {
			fmt.Fprintf(&b, "| %s | %d | %s | - | - |\n", row.Code, row.Amount, row.AveragePrice)
		}
	}
	return b.String()
}

// Event renders an event to a one-line string.
func Event(e carteira.Event) string {
	tx := e.Transaction()
	switch e.(type) {
	case carteira.Buy:
		return fmt.Sprintf("Bought %d %s at %s on %s", tx.Amount(), e.Code(), tx.Price(), tx.Date())
	case carteira.Sell:
		return fmt.Sprintf("Sold %d %s at %s on %s", tx.Amount(), e.Code(), tx.Price(), tx.Date())
	default:
		return fmt.Sprintf("%s %s", e.What(), e.Code())
	}
}

// Ticker renders the detail view of one instrument: its full event log and
// the derived summary. It works for liquidated instruments too, where the
// position line says so instead of showing numbers.
func Ticker(t carteira.Ticker) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Code())

	fmt.Fprintf(&b, "| Date | Side | Quantity | Price |\n")
	fmt.Fprintf(&b, "|---|---|--:|--:|\n")
	for e := range t.Events() {
		tx := e.Transaction()
		side := "Buy"
		if _, isSell := e.(carteira.Sell); isSell {
			side = "Sell"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", tx.Date(), side, tx.Amount(), tx.Price())
	}
	fmt.Fprintf(&b, "\n")

	if avg, ok := t.AveragePrice(); ok {
		fmt.Fprintf(&b, "Average price: %s\n\n", avg)
	} else {
		fmt.Fprintf(&b, "Average price: undefined (no buys)\n\n")
	}

	if pos := t.Position(); pos != nil {
		fmt.Fprintf(&b, "Net position: %d shares\n", pos.Amount)
	} else {
		fmt.Fprintf(&b, "Net position: none (sold out)\n")
	}
	return b.String()
}
