package services

import (
	"context"
	"errors"
	"fleet-ops-service/internal/adapters/repositories"
	"fleet-ops-service/internal/domain"
	"fleet-ops-service/internal/ports"
	"sync"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

type countingCache struct {
	mu      sync.Mutex
	entries map[string]domain.Snapshot
	gets    int
	hits    int
	puts    int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: map[string]domain.Snapshot{}}
}

func (c *countingCache) GetSnapshot(ctx context.Context, key string) (domain.Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	snap, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return snap, ok, nil
}

func (c *countingCache) PutSnapshot(ctx context.Context, key string, snap domain.Snapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[key] = snap
	return nil
}

func newTestService(t *testing.T, cache *countingCache, flights ...domain.FlightLeg) *FleetService {
	t.Helper()

	aircraft := repositories.NewMemoryAircraftRepository(
		operational("SME", 95, "2025-08-01"),
		operational("SMD", 80, "2025-06-20"),
	)
	opts := FleetServiceOptions{Clock: func() time.Time { return fixedNow }}
	var snapshots ports.SnapshotCache
	if cache != nil {
		snapshots = cache
		opts.CacheTTL = time.Minute
	}

	svc, err := NewFleetService(repositories.NewMemoryFlightRepository(flights...), aircraft, snapshots, opts)
	if err != nil {
		t.Fatalf("NewFleetService: %v", err)
	}
	return svc
}

func TestNewFleetServiceRequiresRepositories(t *testing.T) {
	_, err := NewFleetService(nil, repositories.NewMemoryAircraftRepository(), nil, FleetServiceOptions{})
	if err == nil {
		t.Fatal("expected error for nil flight repository")
	}
}

func TestFleetServiceAddFlight(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	p := svc.CurrentPeriod()

	if p != (domain.Period{Year: 2025, Month: time.June}) {
		t.Fatalf("expected current period 2025-06, got %s", p)
	}

	first := leg("", 1, "2025-06-01", " sme ", 2, 30)
	res, err := svc.AddFlight(ctx, first, p)
	if err != nil {
		t.Fatalf("AddFlight: %v", err)
	}
	if res.ID == "" {
		t.Fatal("expected generated flight id")
	}
	if len(res.Snapshot.Flights) != 1 || res.Snapshot.Flights[0].Registration != "SME" {
		t.Fatalf("expected normalized SME flight in snapshot, got %+v", res.Snapshot.Flights)
	}

	res, err = svc.AddFlight(ctx, leg("", 2, "2025-06-02", "SME", 1, 45), p)
	if err != nil {
		t.Fatalf("AddFlight: %v", err)
	}
	last := res.Snapshot.Flights[len(res.Snapshot.Flights)-1]
	if last.Derived.TotalHours != 4 || last.Derived.TotalCycles != 2 {
		t.Fatalf("expected refreshed totals 4h/2c, got %+v", last.Derived)
	}
	if res.Snapshot.Aircraft["SME"].CurrentPeriod.Flights != 2 {
		t.Fatalf("expected 2 current-period flights, got %+v", res.Snapshot.Aircraft["SME"])
	}
}

func TestFleetServiceRejectsInvalidFlight(t *testing.T) {
	svc := newTestService(t, nil)

	bad := leg("", 1, "2025-06-01", "SME", 1, 75)
	_, err := svc.AddFlight(context.Background(), bad, svc.CurrentPeriod())
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	snap, err := svc.Snapshot(context.Background(), svc.CurrentPeriod())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Flights) != 0 {
		t.Fatalf("invalid flight must not be stored, got %d flights", len(snap.Flights))
	}
}

func TestFleetServiceUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil, leg("f1", 1, "2025-06-01", "SME", 1, 0))
	p := svc.CurrentPeriod()

	updated := leg("", 1, "2025-06-01", "SME", 3, 0)
	res, err := svc.UpdateFlight(ctx, "f1", updated, p)
	if err != nil {
		t.Fatalf("UpdateFlight: %v", err)
	}
	if res.ID != "f1" || res.Snapshot.Flights[0].Derived.TotalHours != 3 {
		t.Fatalf("expected replaced flight with 3h total, got %+v", res)
	}

	if _, err := svc.UpdateFlight(ctx, "missing", updated, p); !errors.Is(err, domain.ErrFlightNotFound) {
		t.Fatalf("expected ErrFlightNotFound on update, got %v", err)
	}

	res, err = svc.RemoveFlight(ctx, "f1", p)
	if err != nil {
		t.Fatalf("RemoveFlight: %v", err)
	}
	if len(res.Snapshot.Flights) != 0 {
		t.Fatalf("expected empty snapshot after removal, got %d flights", len(res.Snapshot.Flights))
	}
	if res.Snapshot.Fleet.MostUsedRoute != NoRoute {
		t.Fatalf("expected %q for empty fleet, got %q", NoRoute, res.Snapshot.Fleet.MostUsedRoute)
	}

	if _, err := svc.RemoveFlight(ctx, "f1", p); !errors.Is(err, domain.ErrFlightNotFound) {
		t.Fatalf("expected ErrFlightNotFound on remove, got %v", err)
	}
}

func TestFleetServiceImportIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	p := svc.CurrentPeriod()

	legs := []domain.FlightLeg{
		leg("", 1, "2025-06-01", "SME", 1, 0),
		leg("", 2, "2025-06-02", "", 1, 0),
	}
	if _, err := svc.ImportFlights(ctx, legs, p); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	snap, _ := svc.Snapshot(ctx, p)
	if len(snap.Flights) != 0 {
		t.Fatalf("expected nothing stored after failed import, got %d", len(snap.Flights))
	}

	legs[1].Registration = "SMD"
	snap, err := svc.ImportFlights(ctx, legs, p)
	if err != nil {
		t.Fatalf("ImportFlights: %v", err)
	}
	if len(snap.Flights) != 2 || len(snap.Registrations) != 2 {
		t.Fatalf("expected 2 flights across 2 aircraft, got %+v", snap)
	}
}

func TestFleetServiceReimportReplacesLegs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil)
	p := svc.CurrentPeriod()

	legs := []domain.FlightLeg{
		leg("", 1, "2025-06-01", "SME", 1, 0),
		leg("", 2, "2025-06-02", "SME", 2, 0),
	}
	for range 2 {
		if _, err := svc.ImportFlights(ctx, legs, p); err != nil {
			t.Fatalf("ImportFlights: %v", err)
		}
	}

	snap, err := svc.Snapshot(ctx, p)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Flights) != 2 {
		t.Fatalf("expected re-import to keep 2 flights, got %d", len(snap.Flights))
	}
	if got := snap.Flights[1].Derived.TotalHours; got != 3 {
		t.Fatalf("expected cumulative 3 hours, got %d", got)
	}
	if snap.Flights[0].ID != legs[0].StableID() {
		t.Fatalf("expected derived id %s, got %s", legs[0].StableID(), snap.Flights[0].ID)
	}
}

func TestFleetServiceSnapshotCache(t *testing.T) {
	ctx := context.Background()
	cache := newCountingCache()
	svc := newTestService(t, cache, leg("f1", 1, "2025-06-01", "SME", 1, 0))
	p := svc.CurrentPeriod()

	for range 3 {
		if _, err := svc.Snapshot(ctx, p); err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
	}
	if cache.puts != 1 || cache.hits != 2 {
		t.Fatalf("expected 1 put and 2 hits, got puts=%d hits=%d", cache.puts, cache.hits)
	}

	// A mutation changes the fingerprint, so the next snapshot is rebuilt.
	res, err := svc.AddFlight(ctx, leg("f2", 2, "2025-06-02", "SME", 1, 0), p)
	if err != nil {
		t.Fatalf("AddFlight: %v", err)
	}
	if cache.puts != 2 {
		t.Fatalf("expected a fresh snapshot after mutation, puts=%d", cache.puts)
	}
	if len(res.Snapshot.Flights) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(res.Snapshot.Flights))
	}
}

func TestFleetServiceRecommend(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil,
		leg("a", 1, "2025-06-01", "SME", 2, 0),
		leg("b", 2, "2025-06-02", "SMD", 4, 0),
		leg("c", 3, "2025-06-03", "SMX", 1, 0),
	)

	results, err := svc.Recommend(ctx, svc.CurrentPeriod(), " cai-hrg ", 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected only profiled operational aircraft, got %d results", len(results))
	}
	if results[0].Registration != "SME" || results[0].Rank != "best choice" {
		t.Fatalf("expected SME as best choice, got %+v", results[0])
	}
	if results[0].Breakdown.Route != 10 {
		t.Fatalf("expected route bonus for SME, got %+v", results[0].Breakdown)
	}
}

func TestFleetServiceReports(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil,
		leg("a", 1, "2025-05-01", "SME", 2, 0),
		leg("b", 2, "2025-06-01", "SME", 3, 0),
	)

	cmp, err := svc.Compare(ctx, "2025-06", "2025-05", "sme")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp.Registration != "SME" || cmp.Metrics[1].Change != 50 {
		t.Fatalf("expected 50%% hour growth for SME, got %+v", cmp)
	}

	sum, err := svc.FleetSummary(ctx, svc.CurrentPeriod())
	if err != nil {
		t.Fatalf("FleetSummary: %v", err)
	}
	if sum.TotalFlights != 1 || sum.OperationalAircraft != 2 {
		t.Fatalf("unexpected fleet summary: %+v", sum)
	}
}
