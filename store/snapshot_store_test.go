package store

import (
	"sync"
	"testing"

	"github.com/talentbridge/dashboard-gateway/model"
)

func TestSnapshotStore_PutGetDelete(t *testing.T) {
	s := NewSnapshotStore()

	if _, ok := s.Get("companies"); ok {
		t.Error("Get() on an empty store reported a snapshot")
	}

	records := []model.Record{{"id": "c1", "name": "TechNova"}}
	s.Put("companies", records)

	snapshot, ok := s.Get("companies")
	if !ok {
		t.Fatal("Get() after Put() found no snapshot")
	}
	if len(snapshot.Records) != 1 {
		t.Errorf("snapshot holds %d records, want 1", len(snapshot.Records))
	}
	if snapshot.FetchedAt.IsZero() {
		t.Error("FetchedAt was not stamped")
	}

	s.Put("companies", nil)
	snapshot, _ = s.Get("companies")
	if len(snapshot.Records) != 0 {
		t.Error("Put() did not replace the previous snapshot")
	}

	s.Delete("companies")
	if _, ok := s.Get("companies"); ok {
		t.Error("Get() after Delete() still reported a snapshot")
	}
}

func TestSnapshotStore_ConcurrentAccess(t *testing.T) {
	s := NewSnapshotStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Put("companies", []model.Record{{"id": "c1"}})
		}()
		go func() {
			defer wg.Done()
			s.Get("companies")
		}()
	}
	wg.Wait()
}
