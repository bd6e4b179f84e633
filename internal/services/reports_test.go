package services

import (
	"fleet-ops-service/internal/domain"
	"testing"
	"time"
)

func TestComparePeriods(t *testing.T) {
	flights := []domain.FlightLeg{
		leg("a", 1, "2025-05-01", "SME", 2, 0),
		leg("b", 2, "2025-06-01", "SME", 3, 0),
		leg("c", 3, "2025-06-02", "SME", 1, 0),
		leg("d", 4, "2025-06-03", "SMD", 4, 0),
	}

	cmp := ComparePeriods(flights, "2025-06", "2025-05", "SME")
	if cmp.Registration != "SME" || len(cmp.Metrics) != 4 {
		t.Fatalf("unexpected comparison header: %+v", cmp)
	}

	want := map[string]MetricComparison{
		"flights":         {Name: "flights", Current: 2, Previous: 1, Change: 100},
		"hours":           {Name: "hours", Current: 4, Previous: 2, Change: 100},
		"cycles":          {Name: "cycles", Current: 2, Previous: 1, Change: 100},
		"avg_flight_time": {Name: "avg_flight_time", Current: 2, Previous: 2, Change: 0},
	}
	for _, m := range cmp.Metrics {
		if m != want[m.Name] {
			t.Fatalf("metric %s: want %+v, got %+v", m.Name, want[m.Name], m)
		}
	}
}

func TestComparePeriodsWholeFleet(t *testing.T) {
	flights := []domain.FlightLeg{
		leg("a", 1, "2025-06-01", "SME", 1, 0),
		leg("b", 2, "2025-06-02", "SMD", 1, 0),
	}

	cmp := ComparePeriods(flights, "2025-06", "2025-05", "all")
	if cmp.Registration != "" {
		t.Fatalf("expected fleet-wide comparison, got registration %q", cmp.Registration)
	}
	if cmp.Metrics[0].Current != 2 || cmp.Metrics[0].Change != 0 {
		t.Fatalf("expected 2 current flights and zero change with no prior data, got %+v", cmp.Metrics[0])
	}
}

func TestSummarizeFleet(t *testing.T) {
	p := domain.Period{Year: 2025, Month: time.June}
	stats := []domain.AircraftStats{
		{Registration: "SMA", UtilizationRate: 0.2, CurrentPeriod: domain.PeriodSummary{Flights: 2, Hours: 3.5, Cycles: 2}},
		{Registration: "SMB", UtilizationRate: 0.4, CurrentPeriod: domain.PeriodSummary{Flights: 1, Hours: 1.25, Cycles: 1}},
	}
	maintenance := operational("SMC", 99, "")
	maintenance.Status = domain.StatusMaintenance
	profiles := domain.NewProfileLookup([]domain.AircraftProfile{
		operational("SMA", 85, ""),
		operational("SMB", 92, ""),
		maintenance,
	})

	sum := SummarizeFleet(p, stats, profiles)

	if sum.Period != "2025-06" {
		t.Fatalf("expected period 2025-06, got %q", sum.Period)
	}
	if sum.TotalFlights != 3 || sum.TotalCycles != 3 || sum.TotalHours != 4.75 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if sum.AvgUtilization != 0.3 {
		t.Fatalf("expected average utilization 0.3, got %v", sum.AvgUtilization)
	}
	if sum.OperationalAircraft != 2 || sum.MaintenanceAircraft != 1 {
		t.Fatalf("unexpected status counts: %d operational, %d maintenance", sum.OperationalAircraft, sum.MaintenanceAircraft)
	}
	if len(sum.Ranking) != 2 || sum.Ranking[0].Registration != "SMB" {
		t.Fatalf("expected SMB ranked first by efficiency, got %+v", sum.Ranking)
	}
}
