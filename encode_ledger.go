package carteira

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// this file handles the persistent ledger format: one JSON object per line,
// human readable, trivially appendable and mergeable.

// eventCmd is a specialized struct to decode the fields shared by both event
// variants from a ledger line.
type eventCmd struct {
	Date     Date            `json:"date"`
	Code     string          `json:"code"`
	Amount   int64           `json:"amount"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

func (c eventCmd) transaction() TransactionInfo {
	cur := c.Currency
	if cur == "" {
		cur = BRL
	}
	return NewTransactionInfo(c.Date, c.Amount, M(c.Price, cur))
}

// DecodeEvents decodes events from a stream of JSONL data. Each line is a
// single event object discriminated by its "command" property. Empty lines
// are skipped.
func DecodeEvents(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command EventType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var cmd eventCmd
		if err := json.Unmarshal(lineBytes, &cmd); err != nil {
			return nil, fmt.Errorf("could not decode event line %q: %w", string(lineBytes), err)
		}

		switch identifier.Command {
		case EventBuy:
			events = append(events, NewBuy(cmd.Code, cmd.transaction()))
		case EventSell:
			events = append(events, NewSell(cmd.Code, cmd.transaction()))
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", identifier.Command, string(lineBytes))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return events, nil
}

// EncodeEvents writes events to w in the JSONL ledger format, one event per
// line, preserving the given order.
func EncodeEvents(w io.Writer, events ...Event) error {
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("could not encode %s event for %s: %w", e.What(), e.Code(), err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
	}
	return nil
}
