package ports

import (
	"context"
	"fleet-ops-service/internal/domain"
)

// Port: read access to aircraft reference data (profiles and open issues).
type AircraftRepository interface {
	ListAircraft(ctx context.Context) ([]domain.AircraftProfile, error)
}
