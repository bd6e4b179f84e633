package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO calendar date format used by every date field.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidInput marks a record that is missing a required field or
	// carries an out-of-shape value. It is reported at the boundary and
	// never recovered inside the engine.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFlightNotFound is returned when a flight leg identity is unknown.
	ErrFlightNotFound = errors.New("flight not found")
)

// A duration recorded as an (hours, minutes) pair, the way the log book
// records it.
type HoursMinutes struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Values computed by the engine and attached to a leg on every run.
// They are not authoritative inputs and are never persisted.
type FlightTotals struct {
	TotalHours      int `json:"total_hours"`
	TotalCycles     int `json:"total_cycles"`
	TotalFWIHours   int `json:"total_fwi_hours"`
	TotalFWIMinutes int `json:"total_fwi_minutes"`
	MonthHours      int `json:"month_hours"`
	MonthCycles     int `json:"month_cycles"`
}

// Represents one recorded flight segment for a single aircraft.
//
// Ser orders legs flown by the same fleet on the same day. It is assigned at
// entry time and is not unique across aircraft.
type FlightLeg struct {
	ID           string
	Ser          int
	Date         string
	Registration string
	From         string
	To           string
	Flight       HoursMinutes
	Landing      HoursMinutes
	FWI          HoursMinutes
	Cycles       int
	TLBNumber    string
	PilotID      string
	CoPilotID    string
	Derived      FlightTotals
}

// Route returns the "FROM-TO" station pair used for route statistics.
func (f FlightLeg) Route() string {
	return f.From + "-" + f.To
}

// Namespace for IDs derived from a leg's log-book position.
var flightIDNamespace = uuid.MustParse("6f1d1c6e-4c1b-4b8e-9a57-2f0e7b3c9d10")

// StableID derives an ID from registration, date and serial, so loading
// the same log-book rows twice replaces legs instead of duplicating them.
func (f FlightLeg) StableID() string {
	key := strings.ToUpper(strings.TrimSpace(f.Registration)) + "|" + strings.TrimSpace(f.Date) + "|" + strconv.Itoa(f.Ser)
	return uuid.NewSHA1(flightIDNamespace, []byte(key)).String()
}

// Validate reports whether the leg carries every required field in shape.
// Derived fields are ignored.
func (f FlightLeg) Validate() error {
	if strings.TrimSpace(f.Registration) == "" {
		return fmt.Errorf("validate flight: registration is required: %w", ErrInvalidInput)
	}
	if strings.TrimSpace(f.From) == "" || strings.TrimSpace(f.To) == "" {
		return fmt.Errorf("validate flight %s: origin and destination are required: %w", f.Registration, ErrInvalidInput)
	}
	if _, err := ParseDate(f.Date); err != nil {
		return fmt.Errorf("validate flight %s: date %q: %w", f.Registration, f.Date, ErrInvalidInput)
	}
	durations := []struct {
		name string
		d    HoursMinutes
	}{
		{"flight", f.Flight},
		{"landing", f.Landing},
		{"fwi", f.FWI},
	}
	for _, dur := range durations {
		if dur.d.Hours < 0 || dur.d.Minutes < 0 || dur.d.Minutes >= 60 {
			return fmt.Errorf("validate flight %s: %s time %d:%02d out of range: %w", f.Registration, dur.name, dur.d.Hours, dur.d.Minutes, ErrInvalidInput)
		}
	}
	if f.Cycles < 1 {
		return fmt.Errorf("validate flight %s: cycles must be at least 1, got %d: %w", f.Registration, f.Cycles, ErrInvalidInput)
	}
	return nil
}

// ValidateFlights validates every leg and returns the first failure.
func ValidateFlights(flights []FlightLeg) error {
	for i, f := range flights {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("flight #%d: %w", i+1, err)
		}
	}
	return nil
}

// ParseDate parses an ISO calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
