package handlers

import (
	"context"
	"fleet-ops-service/internal/domain"
	"fleet-ops-service/internal/services"
)

// FleetAPI is the slice of services.FleetService the HTTP layer needs.
type FleetAPI interface {
	CurrentPeriod() domain.Period
	Snapshot(ctx context.Context, p domain.Period) (*domain.Snapshot, error)
	AddFlight(ctx context.Context, leg domain.FlightLeg, p domain.Period) (*services.MutationResult, error)
	UpdateFlight(ctx context.Context, id string, leg domain.FlightLeg, p domain.Period) (*services.MutationResult, error)
	RemoveFlight(ctx context.Context, id string, p domain.Period) (*services.MutationResult, error)
	ImportFlights(ctx context.Context, legs []domain.FlightLeg, p domain.Period) (*domain.Snapshot, error)
	Aircraft(ctx context.Context) ([]domain.AircraftProfile, error)
	Recommend(ctx context.Context, p domain.Period, route string, limit int) ([]domain.RecommendationResult, error)
	Compare(ctx context.Context, current, previous, registration string) (*services.PeriodComparison, error)
	FleetSummary(ctx context.Context, p domain.Period) (*services.FleetSummary, error)
}
