package services

import (
	"fleet-ops-service/internal/domain"
	"slices"
	"strings"
)

// One metric measured over two periods.
type MetricComparison struct {
	Name     string  `json:"name"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

type PeriodComparison struct {
	Current      string             `json:"current"`
	Previous     string             `json:"previous"`
	Registration string             `json:"registration"`
	Metrics      []MetricComparison `json:"metrics"`
}

// ComparePeriods compares flights, hours, cycles and average flight time
// between two date-prefix periods. An empty registration or "all" covers
// the whole fleet.
func ComparePeriods(flights []domain.FlightLeg, current, previous, registration string) PeriodComparison {
	if strings.EqualFold(registration, "all") {
		registration = ""
	}
	if registration != "" {
		scoped := make([]domain.FlightLeg, 0)
		for _, f := range flights {
			if f.Registration == registration {
				scoped = append(scoped, f)
			}
		}
		flights = scoped
	}

	cur := FlightsInPeriod(flights, current)
	prev := FlightsInPeriod(flights, previous)

	curHours, prevHours := totalHours(cur), totalHours(prev)
	curAvg, prevAvg := average(curHours, len(cur)), average(prevHours, len(prev))

	metric := func(name string, c, p float64) MetricComparison {
		return MetricComparison{
			Name:     name,
			Current:  Round2(c),
			Previous: Round2(p),
			Change:   Round2(PercentChange(c, p)),
		}
	}

	return PeriodComparison{
		Current:      current,
		Previous:     previous,
		Registration: registration,
		Metrics: []MetricComparison{
			metric("flights", float64(len(cur)), float64(len(prev))),
			metric("hours", curHours, prevHours),
			metric("cycles", float64(totalCycles(cur)), float64(totalCycles(prev))),
			metric("avg_flight_time", curAvg, prevAvg),
		},
	}
}

type EfficiencyRank struct {
	Registration    string                `json:"registration"`
	Efficiency      float64               `json:"efficiency"`
	UtilizationRate float64               `json:"utilization_rate"`
	Status          domain.AircraftStatus `json:"status"`
}

type FleetSummary struct {
	Period              string           `json:"period"`
	TotalFlights        int              `json:"total_flights"`
	TotalHours          float64          `json:"total_hours"`
	TotalCycles         int              `json:"total_cycles"`
	AvgUtilization      float64          `json:"avg_utilization"`
	OperationalAircraft int              `json:"operational_aircraft"`
	MaintenanceAircraft int              `json:"maintenance_aircraft"`
	Ranking             []EfficiencyRank `json:"ranking"`
}

// SummarizeFleet totals current-period figures across aircraft, counts
// profiles by status and ranks flown aircraft by efficiency.
func SummarizeFleet(p domain.Period, stats []domain.AircraftStats, profiles domain.ProfileLookup) FleetSummary {
	out := FleetSummary{Period: p.String(), Ranking: make([]EfficiencyRank, 0, len(stats))}

	utilization := 0.0
	for _, s := range stats {
		out.TotalFlights += s.CurrentPeriod.Flights
		out.TotalHours += s.CurrentPeriod.Hours
		out.TotalCycles += s.CurrentPeriod.Cycles
		utilization += s.UtilizationRate

		rank := EfficiencyRank{Registration: s.Registration, UtilizationRate: s.UtilizationRate}
		if prof, ok := profiles[s.Registration]; ok {
			rank.Efficiency = prof.Efficiency
			rank.Status = prof.Status
		}
		out.Ranking = append(out.Ranking, rank)
	}
	out.TotalHours = Round2(out.TotalHours)
	out.AvgUtilization = Round2(average(utilization, len(stats)))

	for _, prof := range profiles {
		switch prof.Status {
		case domain.StatusOperational:
			out.OperationalAircraft++
		case domain.StatusMaintenance:
			out.MaintenanceAircraft++
		}
	}

	slices.SortStableFunc(out.Ranking, func(a, b EfficiencyRank) int {
		switch {
		case a.Efficiency > b.Efficiency:
			return -1
		case a.Efficiency < b.Efficiency:
			return 1
		}
		return 0
	})
	return out
}
