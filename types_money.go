package carteira

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// BRL is the default currency for B3 trades.
const BRL = "BRL"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M is a convenient factory for Money values.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// R is a shorthand for BRL amounts, the only currency B3 trades settle in.
func R[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return M(value, BRL)
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// currency returns the money's currency metadata.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, formatted with
// the currency's own conventions (for BRL: "R$1.234,56").
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Decimal() decimal.Decimal { return m.value }

// Mul multiplies the amount by a share count.
func (m Money) Mul(n int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(n)), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// DivInt divides the amount by an integer quantity. The caller must ensure n
// is not zero, decimal division by zero panics.
func (m Money) DivInt(n int64) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(n)), cur: m.cur}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// InexactFloat64 returns the nearest float64, for tolerance-based comparisons
// and display only. Calculations stay in decimal.
func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }
