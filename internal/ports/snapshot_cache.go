package ports

import (
	"context"
	"fleet-ops-service/internal/domain"
	"time"
)

// Optional store for computed snapshots. A miss is reported as ok=false,
// not as an error.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, key string) (snap domain.Snapshot, ok bool, err error)
	PutSnapshot(ctx context.Context, key string, snap domain.Snapshot, ttl time.Duration) error
}
