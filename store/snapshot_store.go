package store

import (
	"sync"
	"time"

	"github.com/talentbridge/dashboard-gateway/model"
)

// Snapshot is one fully fetched, normalized collection along with when it
// was fetched. Listings are served from snapshots; the upstream API is only
// hit again on an explicit refresh.
type Snapshot struct {
	Records   []model.Record
	FetchedAt time.Time
}

// SnapshotStore holds the latest snapshot per collection name. It is safe
// for concurrent use by HTTP handlers.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewSnapshotStore creates an empty snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snapshots: make(map[string]Snapshot)}
}

// Put replaces the snapshot for a collection.
func (s *SnapshotStore) Put(collection string, records []model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[collection] = Snapshot{Records: records, FetchedAt: time.Now()}
}

// Get returns the stored snapshot for a collection, if one exists. The
// returned record slice must be treated as read-only; the processing stages
// copy before sorting and never mutate records.
func (s *SnapshotStore) Get(collection string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[collection]
	return snapshot, ok
}

// Delete removes the snapshot for a collection.
func (s *SnapshotStore) Delete(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, collection)
}
