package services

import (
	"context"
	"encoding/json"
	"errors"
	"fleet-ops-service/internal/domain"
	"fleet-ops-service/internal/platform/obs"
	"fleet-ops-service/internal/ports"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const defaultUtilizationDays = 30

type FleetServiceOptions struct {
	// Window length used for utilization rates. Defaults to 30.
	UtilizationDays int
	// Lifetime of cached snapshots. Zero disables caching.
	CacheTTL time.Duration
	// Source of "now" for maintenance headroom. Defaults to time.Now.
	Clock func() time.Time
}

// FleetService owns the flight collection on behalf of callers and re-runs
// the engine after every mutation.
//
// Each mutation returns the full refreshed snapshot. Snapshots are cached
// under a fingerprint of the flight list, so a stale entry is never served
// after the flights change.
type FleetService struct {
	flights  ports.FlightRepository
	aircraft ports.AircraftRepository
	cache    ports.SnapshotCache
	opts     FleetServiceOptions

	// Collapses concurrent builds of the same snapshot.
	group singleflight.Group
}

// Result of a mutation: the ID of the affected leg and the refreshed output.
type MutationResult struct {
	ID       string
	Snapshot domain.Snapshot
}

func NewFleetService(
	flights ports.FlightRepository,
	aircraft ports.AircraftRepository,
	cache ports.SnapshotCache,
	opts FleetServiceOptions,
) (*FleetService, error) {
	if flights == nil {
		return nil, errors.New("fleet service: flight repository is nil")
	}
	if aircraft == nil {
		return nil, errors.New("fleet service: aircraft repository is nil")
	}
	if opts.UtilizationDays <= 0 {
		opts.UtilizationDays = defaultUtilizationDays
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &FleetService{
		flights:  flights,
		aircraft: aircraft,
		cache:    cache,
		opts:     opts,
	}, nil
}

// CurrentPeriod returns the month containing the service clock's now.
func (s *FleetService) CurrentPeriod() domain.Period {
	return domain.PeriodOf(s.opts.Clock())
}

// Snapshot returns the engine output for period p over all stored flights.
func (s *FleetService) Snapshot(ctx context.Context, p domain.Period) (_ *domain.Snapshot, err error) {
	defer obs.Time(ctx, "fleet.Snapshot")(&err)

	flights, err := s.flights.ListFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list flights: %w", err)
	}
	if err := domain.ValidateFlights(flights); err != nil {
		return nil, fmt.Errorf("snapshot: stored flights: %w", err)
	}

	key, err := s.snapshotKey(flights, p)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.buildCached(ctx, key, flights, p)
	})
	if err != nil {
		return nil, err
	}

	snap := v.(domain.Snapshot)
	return &snap, nil
}

func (s *FleetService) buildCached(ctx context.Context, key string, flights []domain.FlightLeg, p domain.Period) (domain.Snapshot, error) {
	if s.cacheEnabled() {
		snap, ok, err := s.cache.GetSnapshot(ctx, key)
		if err != nil {
			log.Printf("snapshot cache get failed: key=%s err=%v", key, err)
		} else if ok {
			return snap, nil
		}
	}

	snap := BuildSnapshot(flights, p, s.opts.UtilizationDays)

	if s.cacheEnabled() {
		if err := s.cache.PutSnapshot(ctx, key, snap, s.opts.CacheTTL); err != nil {
			log.Printf("snapshot cache put failed: key=%s err=%v", key, err)
		}
	}
	return snap, nil
}

func (s *FleetService) cacheEnabled() bool {
	return s.cache != nil && s.opts.CacheTTL > 0
}

// snapshotKey fingerprints everything a snapshot depends on.
func (s *FleetService) snapshotKey(flights []domain.FlightLeg, p domain.Period) (string, error) {
	data, err := json.Marshal(SortFlights(flights))
	if err != nil {
		return "", fmt.Errorf("fingerprint flights: %w", err)
	}
	return fmt.Sprintf("snapshot:%s:%d:%016x", p, s.opts.UtilizationDays, xxhash.Sum64(data)), nil
}

// AddFlight records a new leg and returns the refreshed snapshot.
// A leg without an ID is given a fresh UUID.
func (s *FleetService) AddFlight(ctx context.Context, leg domain.FlightLeg, p domain.Period) (*MutationResult, error) {
	leg = normalizeLeg(leg)
	if err := leg.Validate(); err != nil {
		return nil, fmt.Errorf("add flight: %w", err)
	}
	if leg.ID == "" {
		leg.ID = uuid.NewString()
	}

	if err := s.flights.SaveFlight(ctx, leg); err != nil {
		return nil, fmt.Errorf("add flight %s: %w", leg.ID, err)
	}
	return s.refreshed(ctx, leg.ID, p)
}

// UpdateFlight replaces the leg with the given ID wholesale.
func (s *FleetService) UpdateFlight(ctx context.Context, id string, leg domain.FlightLeg, p domain.Period) (*MutationResult, error) {
	leg = normalizeLeg(leg)
	leg.ID = id
	if err := leg.Validate(); err != nil {
		return nil, fmt.Errorf("update flight %s: %w", id, err)
	}

	exists, err := s.flights.FlightExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update flight %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("update flight %s: %w", id, domain.ErrFlightNotFound)
	}

	if err := s.flights.SaveFlight(ctx, leg); err != nil {
		return nil, fmt.Errorf("update flight %s: %w", id, err)
	}
	return s.refreshed(ctx, id, p)
}

// RemoveFlight deletes the leg with the given ID.
func (s *FleetService) RemoveFlight(ctx context.Context, id string, p domain.Period) (*MutationResult, error) {
	if err := s.flights.DeleteFlight(ctx, id); err != nil {
		return nil, fmt.Errorf("remove flight %s: %w", id, err)
	}
	return s.refreshed(ctx, id, p)
}

// ImportFlights adds many legs at once and recomputes a single time.
// Nothing is stored when any leg is invalid.
func (s *FleetService) ImportFlights(ctx context.Context, legs []domain.FlightLeg, p domain.Period) (*domain.Snapshot, error) {
	prepared := make([]domain.FlightLeg, 0, len(legs))
	for _, leg := range legs {
		leg = normalizeLeg(leg)
		if leg.ID == "" {
			leg.ID = leg.StableID()
		}
		prepared = append(prepared, leg)
	}
	if err := domain.ValidateFlights(prepared); err != nil {
		return nil, fmt.Errorf("import flights: %w", err)
	}

	if err := s.flights.SaveFlights(ctx, prepared); err != nil {
		return nil, fmt.Errorf("import flights: %w", err)
	}
	log.Printf("imported flights count=%d", len(prepared))

	return s.Snapshot(ctx, p)
}

func (s *FleetService) refreshed(ctx context.Context, id string, p domain.Period) (*MutationResult, error) {
	snap, err := s.Snapshot(ctx, p)
	if err != nil {
		return nil, err
	}
	return &MutationResult{ID: id, Snapshot: *snap}, nil
}

// Aircraft returns the aircraft reference data.
func (s *FleetService) Aircraft(ctx context.Context) ([]domain.AircraftProfile, error) {
	profiles, err := s.aircraft.ListAircraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("list aircraft: %w", err)
	}
	return profiles, nil
}

// Recommend ranks operational aircraft for a new flight on route.
func (s *FleetService) Recommend(ctx context.Context, p domain.Period, route string, limit int) ([]domain.RecommendationResult, error) {
	snap, err := s.Snapshot(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	profiles, err := s.Aircraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	return RecommendAircraft(SortedStats(snap.Aircraft), domain.NewProfileLookup(profiles), RecommendRequest{
		Route: strings.ToUpper(strings.TrimSpace(route)),
		Now:   s.opts.Clock(),
		Limit: limit,
	}), nil
}

// Compare contrasts two date-prefix periods for the fleet or one aircraft.
func (s *FleetService) Compare(ctx context.Context, current, previous, registration string) (*PeriodComparison, error) {
	for _, prefix := range []string{current, previous} {
		if err := domain.ValidateDatePrefix(prefix); err != nil {
			return nil, fmt.Errorf("compare periods: %w", err)
		}
	}

	flights, err := s.flights.ListFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("compare periods: list flights: %w", err)
	}
	cmp := ComparePeriods(flights, current, previous, strings.ToUpper(registration))
	return &cmp, nil
}

// FleetSummary aggregates period figures across the fleet.
func (s *FleetService) FleetSummary(ctx context.Context, p domain.Period) (*FleetSummary, error) {
	snap, err := s.Snapshot(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("fleet summary: %w", err)
	}
	profiles, err := s.Aircraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("fleet summary: %w", err)
	}

	sum := SummarizeFleet(p, SortedStats(snap.Aircraft), domain.NewProfileLookup(profiles))
	return &sum, nil
}

// normalizeLeg trims identifiers and upper-cases codes. Derived totals are
// dropped since they are never inputs.
func normalizeLeg(leg domain.FlightLeg) domain.FlightLeg {
	leg.ID = strings.TrimSpace(leg.ID)
	leg.Date = strings.TrimSpace(leg.Date)
	leg.Registration = strings.ToUpper(strings.TrimSpace(leg.Registration))
	leg.From = strings.ToUpper(strings.TrimSpace(leg.From))
	leg.To = strings.ToUpper(strings.TrimSpace(leg.To))
	leg.TLBNumber = strings.TrimSpace(leg.TLBNumber)
	leg.Derived = domain.FlightTotals{}
	return leg
}
