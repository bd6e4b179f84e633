package services

import (
	"fleet-ops-service/internal/domain"
	"slices"
	"strings"
)

// NoRoute is reported as the most-used route of an empty flight set.
const NoRoute = "N/A"

// MonthlyStats counts the flights in the given calendar year/month and sums
// their cycles and their flight time in whole hours (floored).
func MonthlyStats(flights []domain.FlightLeg, year, month int) domain.PeriodTotals {
	var out domain.PeriodTotals
	minutes := 0
	for _, f := range flights {
		t, err := domain.ParseDate(f.Date)
		if err != nil || t.Year() != year || int(t.Month()) != month {
			continue
		}
		out.Flights++
		out.Cycles += f.Cycles
		minutes += ToMinutes(f.Flight.Hours, f.Flight.Minutes)
	}
	out.Hours, _ = FromMinutes(minutes)
	return out
}

// SummarizeFlights sums count, fractional hours and cycles over flights.
func SummarizeFlights(flights []domain.FlightLeg) domain.PeriodSummary {
	return domain.PeriodSummary{
		Flights: len(flights),
		Hours:   Round2(totalHours(flights)),
		Cycles:  totalCycles(flights),
	}
}

// FleetStats computes the fleet-wide summary. Hours are fractional here,
// unlike the whole-hour cumulative totals attached to each leg.
func FleetStats(flights []domain.FlightLeg, period domain.Period) domain.FlightStats {
	hours := totalHours(flights)
	return domain.FlightStats{
		TotalFlights:     len(flights),
		TotalFlightHours: Round2(hours),
		TotalCycles:      totalCycles(flights),
		AvgFlightTime:    Round2(average(hours, len(flights))),
		MostUsedRoute:    MostUsedRoute(flights),
		CurrentPeriod:    SummarizeFlights(InPeriod(flights, period)),
	}
}

// UtilizationRate returns fractional flight hours per day over a window of
// the given length. The window length is the caller's; calendar month
// lengths are not consulted.
func UtilizationRate(flights []domain.FlightLeg, days int) float64 {
	if days <= 0 {
		return 0
	}
	return totalHours(flights) / float64(days)
}

// PercentChange returns (current-previous)/previous*100, or 0 when there is
// no previous value.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// MostUsedRoute returns the route flown most often. Ties go to the route
// encountered first in flights; an empty set yields NoRoute.
func MostUsedRoute(flights []domain.FlightLeg) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, f := range flights {
		r := f.Route()
		if _, ok := counts[r]; !ok {
			order = append(order, r)
		}
		counts[r]++
	}

	best, bestCount := NoRoute, 0
	for _, r := range order {
		if counts[r] > bestCount {
			best, bestCount = r, counts[r]
		}
	}
	return best
}

// InPeriod returns the flights dated inside p, in input order.
func InPeriod(flights []domain.FlightLeg, p domain.Period) []domain.FlightLeg {
	out := make([]domain.FlightLeg, 0)
	for _, f := range flights {
		if p.Contains(f.Date) {
			out = append(out, f)
		}
	}
	return out
}

// FlightsInPeriod filters by date prefix: "2025", "2025-06" or
// "2025-06-01". An empty prefix matches everything.
func FlightsInPeriod(flights []domain.FlightLeg, prefix string) []domain.FlightLeg {
	out := make([]domain.FlightLeg, 0)
	for _, f := range flights {
		if strings.HasPrefix(f.Date, prefix) {
			out = append(out, f)
		}
	}
	return out
}

// Registrations returns the distinct registrations in flights, sorted.
func Registrations(flights []domain.FlightLeg) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, f := range flights {
		if _, ok := seen[f.Registration]; ok {
			continue
		}
		seen[f.Registration] = struct{}{}
		out = append(out, f.Registration)
	}
	slices.Sort(out)
	return out
}

// AircraftStatistics derives per-aircraft statistics for every registration
// that has at least one flight. The current period is p; the comparison
// blocks look at the month before p and the same month a year earlier.
func AircraftStatistics(flights []domain.FlightLeg, p domain.Period, utilizationDays int) map[string]domain.AircraftStats {
	byRegistration := make(map[string][]domain.FlightLeg)
	for _, f := range flights {
		byRegistration[f.Registration] = append(byRegistration[f.Registration], f)
	}

	out := make(map[string]domain.AircraftStats, len(byRegistration))
	for reg, legs := range byRegistration {
		out[reg] = aircraftStats(reg, legs, p, utilizationDays)
	}
	return out
}

func aircraftStats(reg string, legs []domain.FlightLeg, p domain.Period, utilizationDays int) domain.AircraftStats {
	hours := totalHours(legs)
	current := InPeriod(legs, p)
	currentHours := totalHours(current)
	currentCycles := totalCycles(current)

	lastFlight := ""
	for _, f := range legs {
		if f.Date > lastFlight {
			lastFlight = f.Date
		}
	}

	return domain.AircraftStats{
		Registration:     reg,
		TotalFlights:     len(legs),
		TotalFlightHours: Round2(hours),
		TotalCycles:      totalCycles(legs),
		AvgFlightTime:    Round2(average(hours, len(legs))),
		LastFlight:       lastFlight,
		MostUsedRoute:    MostUsedRoute(legs),
		CurrentPeriod:    SummarizeFlights(current),
		UtilizationRate:  Round2(UtilizationRate(current, utilizationDays)),
		Comparison: domain.Comparison{
			PreviousMonth: periodChange(InPeriod(legs, p.PreviousMonth()), currentHours, currentCycles),
			PreviousYear:  periodChange(InPeriod(legs, p.YearAgo()), currentHours, currentCycles),
		},
	}
}

func periodChange(previous []domain.FlightLeg, currentHours float64, currentCycles int) domain.PeriodChange {
	prevHours := totalHours(previous)
	prevCycles := totalCycles(previous)
	return domain.PeriodChange{
		Hours:        Round2(prevHours),
		Cycles:       prevCycles,
		Change:       Round2(PercentChange(currentHours, prevHours)),
		CyclesChange: Round2(PercentChange(float64(currentCycles), float64(prevCycles))),
	}
}

func totalHours(flights []domain.FlightLeg) float64 {
	sum := 0.0
	for _, f := range flights {
		sum += fractionalHours(f.Flight.Hours, f.Flight.Minutes)
	}
	return sum
}

func totalCycles(flights []domain.FlightLeg) int {
	sum := 0
	for _, f := range flights {
		sum += f.Cycles
	}
	return sum
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
