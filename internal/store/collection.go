package store

import (
	"context"

	"github.com/vmunix/grabarr/internal/library"
)

// CollectionStore reads the managed collection snapshot from the blob
// store. The collection itself is maintained by whatever surface the user
// manages their library with; the engine only ever reads it.
type CollectionStore struct {
	store *Store
}

// NewCollectionStore creates a collection reader over the blob store.
func NewCollectionStore(s *Store) *CollectionStore {
	return &CollectionStore{store: s}
}

func collectionKey(typ library.ManagedType) string {
	return "collection:" + string(typ)
}

// Entries returns the instance's collection entries for a managed type.
// An instance with no stored collection yields an empty snapshot, not an
// error. Implements the engine's CollectionSource contract.
func (c *CollectionStore) Entries(ctx context.Context, instance string, typ library.ManagedType) ([]library.Entry, error) {
	var entries []library.Entry
	if _, err := c.store.GetJSON(ctx, collectionKey(typ), instance, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveEntries replaces the stored collection snapshot. Used by tests and
// by whatever imports a library into the store.
func (c *CollectionStore) SaveEntries(ctx context.Context, instance string, typ library.ManagedType, entries []library.Entry) error {
	return c.store.Save(ctx, collectionKey(typ), instance, entries)
}
