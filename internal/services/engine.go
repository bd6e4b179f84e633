package services

import "fleet-ops-service/internal/domain"

// BuildSnapshot runs the whole engine over flights: cumulative totals,
// fleet statistics and per-aircraft statistics for period p.
//
// Every call recomputes from scratch; the result depends only on its
// arguments.
func BuildSnapshot(flights []domain.FlightLeg, p domain.Period, utilizationDays int) domain.Snapshot {
	processed := ProcessFlights(flights)
	return domain.Snapshot{
		Period:        p,
		Flights:       processed,
		Fleet:         FleetStats(processed, p),
		Aircraft:      AircraftStatistics(processed, p, utilizationDays),
		Registrations: Registrations(processed),
	}
}
