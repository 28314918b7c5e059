package store

import (
	"context"
	"time"

	"github.com/vmunix/grabarr/internal/library"
)

// ProcessedTTL is how long a considered release GUID suppresses
// re-evaluation.
const ProcessedTTL = 24 * time.Hour

// processedRecord is the persisted shape: GUID to RFC3339 timestamp.
type processedRecord struct {
	Entries map[string]string `json:"entries"`
}

// ProcessedStore remembers which release GUIDs were already considered for
// an instance, per managed type. Expired entries are dropped lazily on
// read, never proactively swept.
type ProcessedStore struct {
	store *Store
}

// NewProcessedStore creates a processed-GUID store over the blob store.
func NewProcessedStore(s *Store) *ProcessedStore {
	return &ProcessedStore{store: s}
}

func processedKey(typ library.ManagedType) string {
	return "processed:" + string(typ)
}

// Active returns the set of GUIDs still inside the TTL window, plus the
// surviving GUID-to-timestamp map so the caller can merge new entries into
// it before calling Record.
func (p *ProcessedStore) Active(ctx context.Context, instance string, typ library.ManagedType) (map[string]struct{}, map[string]time.Time, error) {
	var rec processedRecord
	ok, err := p.store.GetJSON(ctx, processedKey(typ), instance, &rec)
	if err != nil {
		return nil, nil, err
	}

	active := make(map[string]struct{})
	entries := make(map[string]time.Time)
	if !ok {
		return active, entries, nil
	}

	cutoff := time.Now().Add(-ProcessedTTL)
	for guid, stamp := range rec.Entries {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil || ts.Before(cutoff) {
			continue
		}
		active[guid] = struct{}{}
		entries[guid] = ts
	}
	return active, entries, nil
}

// Record overwrites the persisted map with the given entries. Callers merge
// newly considered GUIDs into the map returned by Active, so anything
// outside the TTL window falls away on the next read.
func (p *ProcessedStore) Record(ctx context.Context, instance string, typ library.ManagedType, entries map[string]time.Time) error {
	rec := processedRecord{Entries: make(map[string]string, len(entries))}
	for guid, ts := range entries {
		rec.Entries[guid] = ts.Format(time.RFC3339)
	}
	return p.store.Save(ctx, processedKey(typ), instance, rec)
}
