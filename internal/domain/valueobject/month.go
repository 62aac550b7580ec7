// Package valueobject defines immutable value types shared across the domain.
package valueobject

import (
	"fmt"
	"time"
)

const (
	// MonthLayout is the persisted form of a calendar month.
	MonthLayout = "2006-01"
	// DayLayout is the persisted form of a calendar day.
	DayLayout = "2006-01-02"
)

// Month is a calendar month. Months are compared by their year and month
// components, never by string prefix.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month of t as seen in t's own location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// String returns the YYYY-MM form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Start returns the first instant of the month in loc.
func (m Month) Start(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC))
}

// Before reports whether m is strictly earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether t, viewed in loc, falls inside the month.
func (m Month) Contains(t time.Time, loc *time.Location) bool {
	return MonthOf(t.In(loc)) == m
}

// DayKey formats t as a YYYY-MM-DD calendar day in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// DaysRemaining returns how many days are left in t's month after t's day.
func DaysRemaining(t time.Time) int {
	return MonthOf(t).Days() - t.Day()
}
