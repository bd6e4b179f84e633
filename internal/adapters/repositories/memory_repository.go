package repositories

import (
	"context"
	"fleet-ops-service/internal/domain"
	"fmt"
	"slices"
	"sync"
)

// In-memory FlightRepository. Safe for concurrent use; keeps insertion
// order so listings are reproducible.
type MemoryFlightRepository struct {
	mu      sync.RWMutex
	order   []string
	flights map[string]domain.FlightLeg
}

func NewMemoryFlightRepository(seed ...domain.FlightLeg) *MemoryFlightRepository {
	r := &MemoryFlightRepository{flights: make(map[string]domain.FlightLeg)}
	for _, f := range seed {
		r.put(f)
	}
	return r
}

func (r *MemoryFlightRepository) put(f domain.FlightLeg) {
	if _, ok := r.flights[f.ID]; !ok {
		r.order = append(r.order, f.ID)
	}
	r.flights[f.ID] = f
}

func (r *MemoryFlightRepository) ListFlights(ctx context.Context) ([]domain.FlightLeg, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FlightLeg, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.flights[id])
	}
	return out, nil
}

func (r *MemoryFlightRepository) SaveFlight(ctx context.Context, leg domain.FlightLeg) error {
	return r.SaveFlights(ctx, []domain.FlightLeg{leg})
}

func (r *MemoryFlightRepository) SaveFlights(ctx context.Context, legs []domain.FlightLeg) error {
	for _, f := range legs {
		if f.ID == "" {
			return fmt.Errorf("save flights: flight id must not be empty")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range legs {
		r.put(f)
	}
	return nil
}

func (r *MemoryFlightRepository) DeleteFlight(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.flights[id]; !ok {
		return fmt.Errorf("delete flight id=%s: %w", id, domain.ErrFlightNotFound)
	}
	delete(r.flights, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemoryFlightRepository) FlightExists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.flights[id]
	return ok, nil
}

// In-memory AircraftRepository over a fixed reference set.
type MemoryAircraftRepository struct {
	mu       sync.RWMutex
	profiles []domain.AircraftProfile
}

func NewMemoryAircraftRepository(profiles ...domain.AircraftProfile) *MemoryAircraftRepository {
	return &MemoryAircraftRepository{profiles: slices.Clone(profiles)}
}

func (r *MemoryAircraftRepository) ListAircraft(ctx context.Context) ([]domain.AircraftProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.profiles), nil
}

// SaveAircraft replaces profiles with matching registrations and appends
// the rest.
func (r *MemoryAircraftRepository) SaveAircraft(ctx context.Context, profiles []domain.AircraftProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range profiles {
		i := slices.IndexFunc(r.profiles, func(q domain.AircraftProfile) bool { return q.Registration == p.Registration })
		if i >= 0 {
			r.profiles[i] = p
			continue
		}
		r.profiles = append(r.profiles, p)
	}
	return nil
}
