package carteira

import "iter"

// Wallet groups trade events by instrument code. It is built once from a
// finite event sequence and is immutable afterwards: every query is a
// read-only projection, so concurrent readers never need coordination.
type Wallet struct {
	events map[string][]Event
}

// FromEvents partitions events by instrument code in a single linear pass.
// Within each code the append order of the input is preserved exactly.
//
// No deduplication and no validation happens here: zero or negative amounts
// and prices pass through untouched. Cleaning up malformed records is the
// importer's job, not the wallet's.
func FromEvents(events ...Event) *Wallet {
	m := make(map[string][]Event)
	for _, e := range events {
		m[e.Code()] = append(m[e.Code()], e)
	}
	return &Wallet{events: m}
}

// Lookup returns the view over one instrument's events, or nil when the
// wallet has no event at all for that code. The match is exact and
// case-sensitive, and the held-only filter does NOT apply: a fully sold
// ticker is still found here.
func (w *Wallet) Lookup(code string) *Ticker {
	events, ok := w.events[code]
	if !ok {
		return nil
	}
	return &Ticker{code: code, events: events}
}

// Holdings iterates over the instruments currently held, i.e. those whose net
// position is strictly positive. Iteration order follows the underlying map
// and is unspecified. The sequence is side-effect free and can be obtained
// again at any time since the wallet never changes.
func (w *Wallet) Holdings() iter.Seq[Ticker] {
	return func(yield func(Ticker) bool) {
		for code, events := range w.events {
			t := Ticker{code: code, events: events}
			if t.Position() == nil {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Codes iterates over all instrument codes known to the wallet, held or not,
// in unspecified order.
func (w *Wallet) Codes() iter.Seq[string] {
	return func(yield func(string) bool) {
		for code := range w.events {
			if !yield(code) {
				return
			}
		}
	}
}

// Ticker is a read-only view over one instrument's event sequence. It borrows
// the wallet's storage and must not outlive it; it never mutates it.
type Ticker struct {
	code   string
	events []Event
}

// NewTicker builds a standalone view from a code and its events. Mostly
// useful in tests; regular callers get views from Wallet.Lookup and
// Wallet.Holdings.
func NewTicker(code string, events []Event) Ticker {
	return Ticker{code: code, events: events}
}

// Code returns the instrument code of this view.
func (t Ticker) Code() string { return t.code }

// Events iterates over the instrument's events in the order they were
// recorded. Callers that need to replicate individual trades (rather than the
// net position) range over this.
func (t Ticker) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, e := range t.events {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of events recorded for this instrument.
func (t Ticker) Len() int { return len(t.events) }

// AveragePrice computes the quantity-weighted mean purchase price over Buy
// events only. Sell events are excluded from both numerator and denominator,
// so the average reflects cumulative historical buy cost, not remaining-lot
// cost; a sale never moves it. This mirrors how B3 brokers report "preço
// médio" and is a policy choice, not lot accounting.
//
// When the instrument has no Buy event the average is undefined and ok is
// false. Decimal arithmetic has no NaN to propagate, so the undefined case is
// an explicit sentinel rather than a division by zero.
func (t Ticker) AveragePrice() (avg Money, ok bool) {
	var amount int64
	var cost Money
	for _, e := range t.events {
		if _, isBuy := e.(Buy); !isBuy {
			continue
		}
		tx := e.Transaction()
		amount += tx.Amount()
		cost = cost.Add(tx.Price().Mul(tx.Amount()))
	}
	if amount == 0 {
		return Money{}, false
	}
	return cost.DivInt(amount), true
}

// Position represents a currently held instrument: its code, the signed net
// share count, and the average acquisition price.
type Position struct {
	Code         string
	Amount       int64
	AveragePrice Money
}

// Position folds the event sequence into the net share count (buys minus
// sells) and returns the resulting position, or nil when the net count is
// zero or negative. An oversold instrument collapses to nil exactly like a
// fully exited one; the arithmetic is allowed to go negative but the result
// is never reported as an error.
func (t Ticker) Position() *Position {
	var amount int64
	for _, e := range t.events {
		switch v := e.(type) {
		case Buy:
			amount += v.Transaction().Amount()
		case Sell:
			amount -= v.Transaction().Amount()
		}
	}
	if amount < 1 {
		return nil
	}
	// A positive net position implies at least one buy, so the average is
	// always defined here.
	avg, _ := t.AveragePrice()
	return &Position{Code: t.code, Amount: amount, AveragePrice: avg}
}
