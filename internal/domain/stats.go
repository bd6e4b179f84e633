package domain

import (
	"maps"
	"slices"
)

// Whole-hour totals for one month, the odometer-style figure attached to
// each leg.
type PeriodTotals struct {
	Flights int
	Hours   int
	Cycles  int
}

// Fractional totals over any subset of flights.
type PeriodSummary struct {
	Flights int     `json:"flights"`
	Hours   float64 `json:"hours"`
	Cycles  int     `json:"cycles"`
}

// Fleet-wide summary.
type FlightStats struct {
	TotalFlights     int           `json:"total_flights"`
	TotalFlightHours float64       `json:"total_flight_hours"`
	TotalCycles      int           `json:"total_cycles"`
	AvgFlightTime    float64       `json:"avg_flight_time"`
	MostUsedRoute    string        `json:"most_used_route"`
	CurrentPeriod    PeriodSummary `json:"current_period"`
}

// Prior-period figures and the percent change of the current period
// against them.
type PeriodChange struct {
	Hours        float64 `json:"hours"`
	Cycles       int     `json:"cycles"`
	Change       float64 `json:"change"`
	CyclesChange float64 `json:"cycles_change"`
}

type Comparison struct {
	PreviousMonth PeriodChange `json:"previous_month"`
	PreviousYear  PeriodChange `json:"previous_year"`
}

// Derived statistics for one registration. Only produced for aircraft
// that have at least one flight.
type AircraftStats struct {
	Registration     string        `json:"registration"`
	TotalFlights     int           `json:"total_flights"`
	TotalFlightHours float64       `json:"total_flight_hours"`
	TotalCycles      int           `json:"total_cycles"`
	AvgFlightTime    float64       `json:"avg_flight_time"`
	LastFlight       string        `json:"last_flight"`
	MostUsedRoute    string        `json:"most_used_route"`
	CurrentPeriod    PeriodSummary `json:"current_period"`
	UtilizationRate  float64       `json:"utilization_rate"`
	Comparison       Comparison    `json:"comparison"`
}

// Individual scoring terms behind a recommendation.
type ScoreBreakdown struct {
	Efficiency   float64 `json:"efficiency"`
	Utilization  float64 `json:"utilization"`
	Maintenance  float64 `json:"maintenance"`
	Route        float64 `json:"route"`
	IssuePenalty float64 `json:"issue_penalty"`
}

// Total returns the unrounded sum of all terms.
func (b ScoreBreakdown) Total() float64 {
	return b.Efficiency + b.Utilization + b.Maintenance + b.Route - b.IssuePenalty
}

type RecommendationResult struct {
	Registration      string         `json:"registration"`
	Score             float64        `json:"score"`
	Rank              string         `json:"rank"`
	Reasons           []string       `json:"reasons"`
	UtilizationRate   float64        `json:"utilization_rate"`
	MaintenanceStatus string         `json:"maintenance_status"`
	Availability      bool           `json:"availability"`
	Breakdown         ScoreBreakdown `json:"breakdown"`
}

// The full refreshed engine output for one reporting period.
type Snapshot struct {
	Period        Period
	Flights       []FlightLeg
	Fleet         FlightStats
	Aircraft      map[string]AircraftStats
	Registrations []string
}

// Clone returns a copy that shares no slices or maps with s.
func (s Snapshot) Clone() Snapshot {
	s.Flights = slices.Clone(s.Flights)
	s.Aircraft = maps.Clone(s.Aircraft)
	s.Registrations = slices.Clone(s.Registrations)
	return s
}
