package model

import (
	"fmt"
	"time"
)

// DateLayout is the canonical on-disk date format.
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when parsing user or imported input.
var dateLayouts = []string{
	DateLayout,
	"02.01.2006",
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	time.RFC3339,
}

// Date is a civil date with no time-of-day component. The zero value is
// the zero time and reports IsZero.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in local time.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// DateOf truncates a time to its date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a date in any of the accepted layouts.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.AddDate(0, 0, n))
}

// MonthStart returns the first day of d's month.
func (d Date) MonthStart() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// SameDay reports whether two dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	return d.Year() == other.Year() && d.YearDay() == other.YearDay()
}

// InRange reports whether d falls in the half-open range [since, until).
// A zero bound is treated as unbounded on that side.
func (d Date) InRange(since, until Date) bool {
	if !since.IsZero() && d.Before(since.Time) {
		return false
	}
	if !until.IsZero() && !d.Before(until.Time) {
		return false
	}
	return true
}

// MarshalCSV renders the canonical layout for gocsv.
func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

// UnmarshalCSV parses a CSV cell for gocsv.
func (d *Date) UnmarshalCSV(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
