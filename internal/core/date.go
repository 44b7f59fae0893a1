package core

import (
	"encoding/json"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Date is a calendar day. A Date decoded from storage keeps its raw text so
// that values which do not parse can still be shown and grouped.
type Date struct {
	time.Time
	raw string
}

// Month is a calendar month formatted as YYYY-MM. Lexicographic order is
// chronological order.
type Month string

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{raw: s}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Validate rejects a date that never parsed. Day and month ranges are
// already enforced by ParseDate.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// String returns the ISO form, or the raw stored text when it did not parse.
func (d Date) String() string {
	if d.IsZero() {
		return d.raw
	}
	return d.Format(dateLayout)
}

// MonthKey truncates the date to its month.
func (d Date) MonthKey() Month {
	s := d.String()
	if len(s) < len(monthLayout) {
		return Month(s)
	}
	return Month(s[:len(monthLayout)])
}

// AddMonths moves the date n calendar months, keeping the day of month when
// it exists and clamping to the last day otherwise (Jan 31 + 1 = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	if d.IsZero() {
		return d
	}
	first := time.Date(d.Year(), d.Time.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := d.Day()
	if day > last {
		day = last
	}
	return NewDate(first.Year(), int(first.Month()), day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any JSON string; unparseable dates keep their text.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, _ := ParseDate(s)
	*d = parsed
	return nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month(t.Format(monthLayout))
}

// ParseMonth validates a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", ErrInvalidMonth
	}
	return Month(s), nil
}

// Time returns the first day of the month, or false if m does not parse.
func (m Month) Time() (time.Time, bool) {
	t, err := time.Parse(monthLayout, string(m))
	return t, err == nil
}

func (m Month) String() string {
	return string(m)
}
