package model

import (
	"fmt"
	"time"
)

// DayKeyLayout is the backend's calendar-day key format ("Sun Oct 20 2024").
// The backend matches assignment dates against this string byte-for-byte, so
// it must be reproduced exactly; a mismatch yields empty result sets rather
// than errors.
const DayKeyLayout = "Mon Jan 02 2006"

// ISODayLayout is the format accepted on the command line.
const ISODayLayout = "2006-01-02"

// DayKey identifies a calendar day with no time component. All comparisons
// are by day, never by timestamp.
type DayKey struct {
	t time.Time
}

// NewDayKey truncates t to its calendar day.
func NewDayKey(t time.Time) DayKey {
	return DayKey{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDayKey parses a backend-format day string ("Sun Oct 20 2024").
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.ParseInLocation(DayKeyLayout, s, time.UTC)
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid day key %q: %w", s, err)
	}
	return NewDayKey(t), nil
}

// ParseISODay parses an ISO date ("2024-10-20").
func ParseISODay(s string) (DayKey, error) {
	t, err := time.ParseInLocation(ISODayLayout, s, time.UTC)
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return NewDayKey(t), nil
}

// String returns the backend wire form of the day.
func (d DayKey) String() string {
	return d.t.Format(DayKeyLayout)
}

// ISO returns the ISO form of the day.
func (d DayKey) ISO() string {
	return d.t.Format(ISODayLayout)
}

// Prev returns the previous calendar day.
func (d DayKey) Prev() DayKey {
	return NewDayKey(d.t.AddDate(0, 0, -1))
}

// Next returns the following calendar day.
func (d DayKey) Next() DayKey {
	return NewDayKey(d.t.AddDate(0, 0, 1))
}

// Time returns midnight UTC of the day.
func (d DayKey) Time() time.Time {
	return d.t
}

// Equal reports whether two keys name the same calendar day.
func (d DayKey) Equal(o DayKey) bool {
	return d.t.Equal(o.t)
}

// IsZero reports whether the key is uninitialized.
func (d DayKey) IsZero() bool {
	return d.t.IsZero()
}
