package carteira

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ImportB3 reads a CSV export of B3 trades and converts each record into an
// Event. The expected record shape is
//
//	date,code,action,amount,price
//
// where date is "02/01/2006 15:04:05", action is "B" (buy) or "S" (sell),
// amount is an integer share count and price a unit price. There is no header
// line. Prices accept both the dot and the Brazilian comma decimal separator.
//
// Malformed records are reported as errors with their record number; nothing
// is silently skipped. The wallet itself never validates, so this is the
// last line of defense against bad input.
func ImportB3(r io.Reader) ([]Event, error) {
	rdr := csv.NewReader(r)
	rdr.FieldsPerRecord = -1 // tolerate trailing columns some brokers add
	rdr.TrimLeadingSpace = true

	var events []Event
	for n := 1; ; n++ {
		record, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		if len(record) < 5 {
			return nil, fmt.Errorf("record %d: want at least 5 fields, got %d", n, len(record))
		}

		e, err := parseB3Record(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func parseB3Record(record []string) (Event, error) {
	day, err := ParseDate(record[0])
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(record[1])
	if code == "" {
		return nil, fmt.Errorf("empty instrument code")
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(record[3]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", record[3], err)
	}

	// B3 spreadsheets often use the comma decimal separator.
	priceStr := strings.ReplaceAll(strings.TrimSpace(record[4]), ",", ".")
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", record[4], err)
	}

	tx := NewTransactionInfo(day, amount, M(price, BRL))
	switch action := strings.TrimSpace(record[2]); action {
	case "B":
		return NewBuy(code, tx), nil
	case "S":
		return NewSell(code, tx), nil
	default:
		return nil, fmt.Errorf("unknown action %q, want \"B\" or \"S\"", action)
	}
}
