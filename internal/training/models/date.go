package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the canonical calendar-date serialization used as the grid join key.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day and no zone. The zero value is
// the unset date.
type Date struct {
	d civil.Date
}

// NewDate normalises out-of-range components the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date{d: civil.DateOf(t)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{d: d}, nil
}

func (d Date) Year() int          { return d.d.Year }
func (d Date) Month() time.Month  { return d.d.Month }
func (d Date) Day() int           { return d.d.Day }
func (d Date) IsZero() bool       { return d.d.IsZero() }
func (d Date) Before(o Date) bool { return d.d.Before(o.d) }
func (d Date) After(o Date) bool  { return d.d.After(o.d) }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.d.In(time.UTC)
}

// AddDays moves the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{d: d.d.AddDays(n)}
}

// DaysBetween returns the signed number of whole days from `from` to `to`.
func DaysBetween(from, to Date) int {
	return to.d.DaysSince(from.d)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.d.String()
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value writes the date as YYYY-MM-DD; the unset date is NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.d.Value()
}

// Scan accepts DATE columns as time.Time, string or []byte. NULL is the unset date.
func (d *Date) Scan(v any) error {
	if v == nil {
		*d = Date{}
		return nil
	}
	return d.d.Scan(v)
}
