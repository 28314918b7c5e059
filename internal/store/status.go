package store

import (
	"context"
	"time"

	"github.com/vmunix/grabarr/internal/library"
)

// Bounds for the next-sync interval. Whatever the instance configures, the
// recorded next sync stays inside this window.
const (
	MinSyncInterval = 15 * time.Minute
	MaxSyncInterval = 60 * time.Minute
)

// SyncStatus records when a managed type last completed a cycle and when
// the next one is due.
type SyncStatus struct {
	LastSyncTime time.Time `json:"last_sync_time"`
	NextSyncTime time.Time `json:"next_sync_time"`
}

func statusKey(typ library.ManagedType) string {
	return "sync_status:" + string(typ)
}

// ClampInterval bounds a configured sync interval to [15m, 60m].
func ClampInterval(d time.Duration) time.Duration {
	if d < MinSyncInterval {
		return MinSyncInterval
	}
	if d > MaxSyncInterval {
		return MaxSyncInterval
	}
	return d
}

// SaveSyncStatus writes the last/next sync record for an instance and type.
func (s *Store) SaveSyncStatus(ctx context.Context, instance string, typ library.ManagedType, interval time.Duration) error {
	now := time.Now()
	status := SyncStatus{
		LastSyncTime: now,
		NextSyncTime: now.Add(ClampInterval(interval)),
	}
	return s.Save(ctx, statusKey(typ), instance, status)
}

// SyncStatusFor reads the last recorded sync status for an instance and
// type. Returns ok=false when none has been written yet.
func (s *Store) SyncStatusFor(ctx context.Context, instance string, typ library.ManagedType) (SyncStatus, bool, error) {
	var status SyncStatus
	ok, err := s.GetJSON(ctx, statusKey(typ), instance, &status)
	return status, ok, err
}
