package carteira

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// B3DatetimeFormat is the timestamp format used in B3 brokerage notes and
// their CSV exports (day first, as everything else in Brazil).
const B3DatetimeFormat = "02/01/2006 15:04:05"

// B3DateFormat is the day-only variant used when posting trades.
const B3DateFormat = "02/01/2006"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String format the date in date RFC3339
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted according
// to the layout defined by the argument. See the documentation for [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// ParseDate parses a Date from a string. It accepts the ISO format (leniently,
// "2025-7-1" works) and the B3 formats with and without a time of day.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	for _, format := range []string{readDateFormat, B3DatetimeFormat, B3DateFormat} {
		if on, err := time.Parse(format, str); err == nil {
			return NewDate(on.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q or %q", str, readDateFormat, B3DatetimeFormat)
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	// Keep this parsing strict, as it's for data files.
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*j = NewDate(on.Date())
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
