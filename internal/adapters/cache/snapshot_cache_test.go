package cache

import (
	"context"
	"fleet-ops-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Period: domain.Period{Year: 2025, Month: time.June},
		Flights: []domain.FlightLeg{{
			ID: "a", Ser: 1, Date: "2025-06-01", Registration: "SME", From: "CAI", To: "HRG",
			Flight: domain.HoursMinutes{Hours: 1, Minutes: 30}, Cycles: 1,
			Derived: domain.FlightTotals{TotalHours: 1, TotalCycles: 1, MonthHours: 1, MonthCycles: 1},
		}},
		Fleet: domain.FlightStats{TotalFlights: 1, TotalFlightHours: 1.5, TotalCycles: 1, MostUsedRoute: "CAI-HRG"},
		Aircraft: map[string]domain.AircraftStats{
			"SME": {Registration: "SME", TotalFlights: 1, TotalFlightHours: 1.5, UtilizationRate: 0.05},
		},
		Registrations: []string{"SME"},
	}
}

func TestRedisSnapshotCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisSnapshotCache(client)
	ctx := context.Background()

	_, ok, err := c.GetSnapshot(ctx, "snapshot:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleSnapshot()
	require.NoError(t, c.PutSnapshot(ctx, "snapshot:k", want, time.Minute))

	got, ok, err := c.GetSnapshot(ctx, "snapshot:k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.GetSnapshot(ctx, "snapshot:k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSnapshotCacheCorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, mr.Set("snapshot:bad", "not json"))

	_, ok, err := NewRedisSnapshotCache(client).GetSnapshot(context.Background(), "snapshot:bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := DialRedis(context.Background(), addr)
	require.NoError(t, err)
	_ = client.Close()

	// Addr is unusable once the server is closed.
	mr.Close()
	_, err = DialRedis(context.Background(), addr)
	assert.Error(t, err)
}

func TestMemorySnapshotCacheExpiry(t *testing.T) {
	c := NewMemorySnapshotCache()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.PutSnapshot(ctx, "k", sampleSnapshot(), time.Minute))

	_, ok, _ := c.GetSnapshot(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = c.GetSnapshot(ctx, "k")
	assert.False(t, ok)
}

func TestMemorySnapshotCacheCopiesEntries(t *testing.T) {
	c := NewMemorySnapshotCache()
	ctx := context.Background()

	snap := sampleSnapshot()
	require.NoError(t, c.PutSnapshot(ctx, "k", snap, time.Minute))
	snap.Flights[0].ID = "changed"

	got, ok, err := c.GetSnapshot(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", got.Flights[0].ID)

	got.Flights[0].ID = "mutated"
	got.Aircraft["SMX"] = domain.AircraftStats{Registration: "SMX"}
	got.Registrations[0] = "SMX"

	again, _, _ := c.GetSnapshot(ctx, "k")
	assert.Equal(t, sampleSnapshot(), again)
}
