package ports

import (
	"context"
	"fleet-ops-service/internal/domain"
)

// Port: a boundary for storing and retrieving flight legs.
// Derived totals are never stored; they are recomputed on every read.
type FlightRepository interface {
	// Retrieve every recorded flight leg, in no particular order.
	ListFlights(ctx context.Context) ([]domain.FlightLeg, error)
	// Insert or replace a leg by ID.
	SaveFlight(ctx context.Context, leg domain.FlightLeg) error
	// Insert or replace many legs in one transaction.
	SaveFlights(ctx context.Context, legs []domain.FlightLeg) error
	// Remove a leg by ID. Returns domain.ErrFlightNotFound when absent.
	DeleteFlight(ctx context.Context, id string) error
	// Report whether a leg with this ID exists.
	FlightExists(ctx context.Context, id string) (bool, error)
}
