package services

import (
	"fleet-ops-service/internal/domain"
	"slices"
	"strings"
)

type accumulator struct {
	minutes    int
	cycles     int
	fwiHours   int
	fwiMinutes int
}

// SortFlights returns a copy of flights in canonical processing order:
// date ascending, then serial number ascending.
func SortFlights(flights []domain.FlightLeg) []domain.FlightLeg {
	sorted := slices.Clone(flights)
	// Serial, not insertion order, breaks same-day ties. Stable so equal
	// (date, ser) pairs keep their input order.
	slices.SortStableFunc(sorted, func(a, b domain.FlightLeg) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return a.Ser - b.Ser
	})
	return sorted
}

// ProcessFlights walks the flights in canonical order and attaches running
// totals per registration to a copy of every leg.
//
// The input slice is not modified. The result is in canonical order; a
// caller that needs another order must re-sort it.
func ProcessFlights(flights []domain.FlightLeg) []domain.FlightLeg {
	sorted := SortFlights(flights)

	byRegistration := make(map[string][]domain.FlightLeg)
	for _, f := range sorted {
		byRegistration[f.Registration] = append(byRegistration[f.Registration], f)
	}

	totals := make(map[string]*accumulator)
	months := make(map[string]domain.PeriodTotals)
	out := make([]domain.FlightLeg, 0, len(sorted))

	for _, f := range sorted {
		acc, ok := totals[f.Registration]
		if !ok {
			acc = &accumulator{}
			totals[f.Registration] = acc
		}

		acc.minutes += ToMinutes(f.Flight.Hours, f.Flight.Minutes)
		acc.cycles += f.Cycles
		acc.fwiMinutes += ToMinutes(f.FWI.Hours, f.FWI.Minutes)

		// Carry every whole hour so fwiMinutes stays within [0, 59].
		if acc.fwiMinutes >= 60 {
			carry, rest := FromMinutes(acc.fwiMinutes)
			acc.fwiHours += carry
			acc.fwiMinutes = rest
		}

		monthKey := f.Registration + "|" + f.Date[:min(len(f.Date), 7)]
		month, seen := months[monthKey]
		if !seen {
			month = monthlyStatsFor(byRegistration[f.Registration], f.Date)
			months[monthKey] = month
		}
		totalHours, _ := FromMinutes(acc.minutes)

		f.Derived = domain.FlightTotals{
			TotalHours:      totalHours,
			TotalCycles:     acc.cycles,
			TotalFWIHours:   acc.fwiHours,
			TotalFWIMinutes: acc.fwiMinutes,
			MonthHours:      month.Hours,
			MonthCycles:     month.Cycles,
		}
		out = append(out, f)
	}

	return out
}

func monthlyStatsFor(flights []domain.FlightLeg, date string) domain.PeriodTotals {
	t, err := domain.ParseDate(date)
	if err != nil {
		return domain.PeriodTotals{}
	}
	return MonthlyStats(flights, t.Year(), int(t.Month()))
}
