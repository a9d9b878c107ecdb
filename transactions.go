package carteira

// EventType is a typed string for identifying event variants.
type EventType string

// Event types used to discriminate persisted events.
const (
	EventBuy  EventType = "buy"
	EventSell EventType = "sell"
)

// TransactionInfo is the immutable record of a single trade execution: when
// it happened, how many shares, and at what unit price. It carries no
// direction and no instrument on its own; those belong to the Event wrapping
// it.
type TransactionInfo struct {
	date   Date
	amount int64
	price  Money
}

// NewTransactionInfo creates a trade record. The amount is a share count and
// the price is the unit price paid or received.
func NewTransactionInfo(date Date, amount int64, price Money) TransactionInfo {
	return TransactionInfo{date: date, amount: amount, price: price}
}

// Date returns the execution date.
func (t TransactionInfo) Date() Date { return t.date }

// Amount returns the number of shares.
func (t TransactionInfo) Amount() int64 { return t.amount }

// Price returns the unit price.
func (t TransactionInfo) Price() Money { return t.price }

// Event tags a TransactionInfo with the instrument it concerns. The direction
// of the trade is the event's concrete type, Buy or Sell, so a transaction's
// meaning is only defined in combination with its wrapper; a type switch over
// an Event is the Go spelling of matching a two-variant sum type.
//
// Instrument codes are opaque and case-sensitive, no normalization is applied
// anywhere.
type Event interface {
	What() EventType                  // What returns the event variant ("buy" or "sell").
	Code() string                     // Code returns the instrument code (e.g. "PETR4").
	Transaction() TransactionInfo     // Transaction returns the underlying trade record.
	Equal(Event) bool
}

// Buy is the purchase variant of Event.
type Buy struct {
	code string
	tx   TransactionInfo
}

// NewBuy creates a Buy event for the given instrument code.
func NewBuy(code string, tx TransactionInfo) Buy {
	return Buy{code: code, tx: tx}
}

func (e Buy) What() EventType              { return EventBuy }
func (e Buy) Code() string                 { return e.code }
func (e Buy) Transaction() TransactionInfo { return e.tx }

func (e Buy) Equal(other Event) bool {
	o, ok := other.(Buy)
	return ok && e.code == o.code && e.tx.date == o.tx.date &&
		e.tx.amount == o.tx.amount && e.tx.price.Equal(o.tx.price)
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (e Buy) MarshalJSON() ([]byte, error) { return marshalEvent(e) }

// Sell is the disposal variant of Event.
type Sell struct {
	code string
	tx   TransactionInfo
}

// NewSell creates a Sell event for the given instrument code.
func NewSell(code string, tx TransactionInfo) Sell {
	return Sell{code: code, tx: tx}
}

func (e Sell) What() EventType              { return EventSell }
func (e Sell) Code() string                 { return e.code }
func (e Sell) Transaction() TransactionInfo { return e.tx }

func (e Sell) Equal(other Event) bool {
	o, ok := other.(Sell)
	return ok && e.code == o.code && e.tx.date == o.tx.date &&
		e.tx.amount == o.tx.amount && e.tx.price.Equal(o.tx.price)
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (e Sell) MarshalJSON() ([]byte, error) { return marshalEvent(e) }

func marshalEvent(e Event) ([]byte, error) {
	tx := e.Transaction()
	var w jsonObjectWriter
	w.Append("command", e.What())
	w.Append("date", tx.Date())
	w.Append("code", e.Code())
	w.Append("amount", tx.Amount())
	w.Append("price", tx.Price().Decimal())
	w.Optional("currency", tx.Price().Currency())
	return w.MarshalJSON()
}
