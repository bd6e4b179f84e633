package dto

import (
	"fleet-ops-service/internal/domain"
	"slices"
	"strings"
)

// Full engine output returned by every flight mutation.
type SnapshotResponse struct {
	Period        string                 `json:"period"`
	Flights       []FlightResponse       `json:"flights"`
	Stats         domain.FlightStats     `json:"stats"`
	Aircraft      []domain.AircraftStats `json:"aircraft"`
	Registrations []string               `json:"registrations"`
}

type MutationResponse struct {
	ID       string           `json:"id"`
	Snapshot SnapshotResponse `json:"snapshot"`
}

type ListAircraftResponse struct {
	Aircraft []domain.AircraftProfile `json:"aircraft"`
}

type ListAircraftStatsResponse struct {
	Period   string                 `json:"period"`
	Aircraft []domain.AircraftStats `json:"aircraft"`
}

type ListRecommendationsResponse struct {
	Period          string                        `json:"period"`
	Route           string                        `json:"route"`
	Recommendations []domain.RecommendationResult `json:"recommendations"`
}

func NewSnapshotResponse(s domain.Snapshot) SnapshotResponse {
	res := SnapshotResponse{
		Period:        s.Period.String(),
		Flights:       make([]FlightResponse, 0, len(s.Flights)),
		Stats:         s.Fleet,
		Aircraft:      AircraftStatsList(s.Aircraft),
		Registrations: s.Registrations,
	}
	if res.Registrations == nil {
		res.Registrations = []string{}
	}
	for _, f := range s.Flights {
		res.Flights = append(res.Flights, NewFlightResponse(f))
	}
	return res
}

// AircraftStatsList flattens per-aircraft stats in registration order.
func AircraftStatsList(stats map[string]domain.AircraftStats) []domain.AircraftStats {
	out := make([]domain.AircraftStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b domain.AircraftStats) int {
		return strings.Compare(a.Registration, b.Registration)
	})
	return out
}
