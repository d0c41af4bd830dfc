package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of calendar dates
const DateLayout = "2006-01-02"

// Date represents a calendar date with no time-of-day or zone. Reservation
// ranges are compared on Dates so that stored timestamps in different
// offsets never shift a booking by a day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalizing overflow (e.g. April 31 -> May 1)
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar date in loc
func Today(now time.Time, loc *time.Location) Date {
	return DateOf(now.In(loc))
}

// ParseDate converts a yyyy-mm-dd string or an RFC3339 timestamp into a Date.
// Timestamps are first converted to loc so that "today" follows the business
// time zone rather than the offset the value was stored with.
func ParseDate(value string, loc *time.Location) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	if len(value) == len(DateLayout) {
		t, err := time.Parse(DateLayout, value)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %v", value, err)
		}
		return DateOf(t), nil
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date format %q, expected yyyy-mm-dd", value)
	}
	if loc != nil {
		t = t.In(loc)
	}
	return DateOf(t), nil
}

// StartOfDay collapses a date-like string to local midnight in loc
func StartOfDay(value string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(value, loc)
	if err != nil {
		return time.Time{}, err
	}
	return d.Midnight(loc), nil
}

// Midnight returns the first instant of the date in loc
func (d Date) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare returns -1, 0 or +1
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

// AddDays returns the date n days later (or earlier for negative n)
func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to o
func (d Date) DaysUntil(o Date) int {
	return int(o.utc().Sub(d.utc()).Hours() / 24)
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// MarshalJSON encodes the date as "yyyy-mm-dd"
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts only "yyyy-mm-dd"
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseCivil(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// parseCivil reads the plain yyyy-mm-dd form. Timestamps are refused: their
// calendar day depends on a location, so callers holding one go through
// ParseDate with the business location instead.
func parseCivil(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return DateOf(t), nil
}

// Scan implements sql.Scanner for DATE and TIMESTAMP columns
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into utils.Date", src)
	}
}

func (d *Date) scanString(s string) error {
	parsed, err := parseCivil(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year int, month time.Month) int {
	if month == time.February {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	if month == time.April || month == time.June || month == time.September || month == time.November {
		return 30
	}

	return 31
}

// ParseMonth parses "yyyy-mm" into the first day of that month
func ParseMonth(value string) (Date, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid month %q, expected yyyy-mm", value)
	}
	return DateOf(t), nil
}
