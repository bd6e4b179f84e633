package services

import (
	"fleet-ops-service/internal/domain"
	"fmt"
	"math"
	"slices"
	"time"
)

const (
	efficiencyWeight  = 40.0
	utilizationWeight = 30.0
	routeBonus        = 10.0
	issuePenalty      = 5.0

	// Reason thresholds. They only select advisory text, never points.
	highEfficiency     = 90.0
	lowUtilizationRate = 7.0
)

type RecommendRequest struct {
	// Route in "FROM-TO" form. Empty means any route.
	Route string
	// Reference instant for maintenance headroom.
	Now time.Time
	// Keep only the top Limit results when > 0.
	Limit int
}

// RecommendAircraft scores operational aircraft for a new assignment and
// returns them best first.
//
// Only aircraft with a profile whose status is operational are candidates.
// Aircraft without a profile are left out rather than scored. Ties keep the
// order of stats.
func RecommendAircraft(
	stats []domain.AircraftStats,
	profiles domain.ProfileLookup,
	req RecommendRequest,
) []domain.RecommendationResult {
	type candidate struct {
		stats   domain.AircraftStats
		profile domain.AircraftProfile
	}

	candidates := make([]candidate, 0, len(stats))
	for _, s := range stats {
		p, ok := profiles[s.Registration]
		if !ok || p.Status != domain.StatusOperational {
			continue
		}
		candidates = append(candidates, candidate{stats: s, profile: p})
	}

	maxUtilization := 0.0
	for _, c := range candidates {
		maxUtilization = math.Max(maxUtilization, c.stats.UtilizationRate)
	}

	results := make([]domain.RecommendationResult, 0, len(candidates))
	for _, c := range candidates {
		var b domain.ScoreBreakdown
		reasons := []string{}

		b.Efficiency = EfficiencyScore(c.profile.Efficiency)
		if c.profile.Efficiency >= highEfficiency {
			reasons = append(reasons, "High efficiency rating (90%+)")
		}

		b.Utilization = UtilizationScore(c.stats.UtilizationRate, maxUtilization)
		if c.stats.UtilizationRate < lowUtilizationRate {
			reasons = append(reasons, "Low current utilization - available for more flights")
		}

		days, known := DaysUntil(c.profile.NextMaintenanceDate, req.Now)
		maintenanceStatus := "maintenance date unknown"
		if known {
			b.Maintenance = MaintenanceScore(days)
			maintenanceStatus = fmt.Sprintf("%d days until maintenance", days)
			switch {
			case days > 30:
				reasons = append(reasons, "Maintenance not due for 30+ days")
			case days > 14:
				reasons = append(reasons, "Maintenance not due for 2+ weeks")
			}
		}

		if req.Route != "" && c.stats.MostUsedRoute == req.Route {
			b.Route = routeBonus
			reasons = append(reasons, fmt.Sprintf("Experienced on %s route", req.Route))
		}

		issues := c.profile.OpenIssues()
		b.IssuePenalty = issuePenalty * float64(issues)
		if issues == 0 {
			reasons = append(reasons, "No active maintenance issues")
		}

		results = append(results, domain.RecommendationResult{
			Registration:      c.stats.Registration,
			Score:             roundHalfUp(b.Total()),
			Reasons:           reasons,
			UtilizationRate:   c.stats.UtilizationRate,
			MaintenanceStatus: maintenanceStatus,
			Availability:      c.profile.Status == domain.StatusOperational,
			Breakdown:         b,
		})
	}

	slices.SortStableFunc(results, func(a, b domain.RecommendationResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}
	for i := range results {
		results[i].Rank = RankLabel(i)
	}
	return results
}

// EfficiencyScore maps a 0-100 efficiency rating onto 0-40 points.
func EfficiencyScore(efficiency float64) float64 {
	return efficiency / 100 * efficiencyWeight
}

// UtilizationScore awards up to 30 points to aircraft flying less than the
// busiest candidate. No points are awarded when nothing has flown.
func UtilizationScore(rate, maxRate float64) float64 {
	if maxRate == 0 {
		return 0
	}
	return (maxRate - rate) / maxRate * utilizationWeight
}

// MaintenanceScore awards points for days of headroom before scheduled
// maintenance. Thresholds are strict.
func MaintenanceScore(days int) float64 {
	switch {
	case days > 30:
		return 20
	case days > 14:
		return 15
	case days > 7:
		return 10
	}
	return 0
}

// DaysUntil returns the whole days from now until the ISO date, rounded up.
// ok is false when the date cannot be parsed.
func DaysUntil(date string, now time.Time) (days int, ok bool) {
	t, err := domain.ParseDate(date)
	if err != nil {
		return 0, false
	}
	return int(math.Ceil(t.Sub(now).Hours() / 24)), true
}

// RankLabel names a position in the ranked list.
func RankLabel(i int) string {
	switch i {
	case 0:
		return "best choice"
	case 1:
		return "good option"
	case 2:
		return "alternative"
	}
	return "available"
}

// SortedStats lists stats by registration, the order RecommendAircraft
// uses to break ties.
func SortedStats(stats map[string]domain.AircraftStats) []domain.AircraftStats {
	regs := make([]string, 0, len(stats))
	for reg := range stats {
		regs = append(regs, reg)
	}
	slices.Sort(regs)

	out := make([]domain.AircraftStats, 0, len(regs))
	for _, reg := range regs {
		out = append(out, stats[reg])
	}
	return out
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
