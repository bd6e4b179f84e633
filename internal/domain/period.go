package domain

import (
	"fmt"
	"time"
)

// A calendar month used as the "current" reporting period.
// Callers always supply it; nothing in the engine assumes a fixed month.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the month containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, ErrInvalidInput)
	}
	return PeriodOf(t), nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// PreviousMonth returns the calendar month before p.
func (p Period) PreviousMonth() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// YearAgo returns the same month one year earlier.
func (p Period) YearAgo() Period {
	return Period{Year: p.Year - 1, Month: p.Month}
}

// Contains reports whether the ISO date falls in p. Unparseable dates
// belong to no period.
func (p Period) Contains(date string) bool {
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	return t.Year() == p.Year && t.Month() == p.Month
}

// ValidateDatePrefix accepts the date prefixes used to select report
// periods: "2006", "2006-01" or "2006-01-02".
func ValidateDatePrefix(s string) error {
	layouts := map[int]string{4: "2006", 7: "2006-01", 10: DateLayout}
	layout, ok := layouts[len(s)]
	if !ok {
		return fmt.Errorf("date prefix %q: %w", s, ErrInvalidInput)
	}
	if _, err := time.Parse(layout, s); err != nil {
		return fmt.Errorf("date prefix %q: %w", s, ErrInvalidInput)
	}
	return nil
}
