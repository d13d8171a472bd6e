// Package date provides a calendar date with day granularity.
package date

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const readFormat = "2006-1-2" // accepts single-digit month/day

// Format is the ISO-8601 layout used when writing dates.
const Format = "2006-01-02"

// Date is a calendar day without time or location.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date, so New(2025, 2, 30) is 2025-03-02.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Date { return New(t.Date()) }

// Today returns the current date in loc. A nil loc means time.Local.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.time() }

// Accessors and comparisons.

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Add(days int) Date  { return New(d.y, d.m, d.d+days) }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// DaysSince returns the number of whole days from x to d (negative when d is before x).
func (d Date) DaysSince(x Date) int {
	return int((d.time().Unix() - x.time().Unix()) / 86400)
}

// DaysInMonth returns the number of days of d's month.
func (d Date) DaysInMonth() int {
	return time.Date(d.y, d.m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date { return Date{d.y, d.m, 1} }

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date { return Date{d.y, d.m, d.DaysInMonth()} }

func (d Date) String() string { return d.time().Format(Format) }

// Parse parses a date such as "2025-01-06" or "2025-1-6".
func Parse(s string) (Date, error) {
	t, err := time.Parse(readFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", s, Format, err)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Value implements driver.Valuer; dates are written as "YYYY-MM-DD".
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = New(v.Date())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case nil:
		*d = Date{}
		return nil
	}
	return fmt.Errorf("date: cannot scan %T", src)
}

func (d *Date) scanString(s string) error {
	if len(s) > len(Format) {
		s = s[:len(Format)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var (
	_ json.Marshaler   = (*Date)(nil)
	_ json.Unmarshaler = (*Date)(nil)
	_ driver.Valuer    = Date{}
)
