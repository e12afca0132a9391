// Package dashboard wires the platform client, normalizer, snapshot store,
// and the pure listing stages into the service the HTTP API serves.
package dashboard

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/internal/aggregate"
	apperrors "github.com/talentbridge/dashboard-gateway/internal/errors"
	"github.com/talentbridge/dashboard-gateway/internal/listing"
	"github.com/talentbridge/dashboard-gateway/internal/normalize"
	"github.com/talentbridge/dashboard-gateway/internal/query"
	"github.com/talentbridge/dashboard-gateway/model"
	"github.com/talentbridge/dashboard-gateway/services"
	"github.com/talentbridge/dashboard-gateway/store"
)

// Service implements services.CollectionProvider. It owns one snapshot per
// collection and recomputes listings from the snapshot on every request; the
// upstream API is only contacted on explicit refresh.
type Service struct {
	fetcher     services.Fetcher
	collections map[string]*config.CollectionSettings
	snapshots   *store.SnapshotStore
}

// NewService creates a dashboard service over the given fetcher and
// collection registry.
func NewService(fetcher services.Fetcher, collections map[string]*config.CollectionSettings) *Service {
	return &Service{
		fetcher:     fetcher,
		collections: collections,
		snapshots:   store.NewSnapshotStore(),
	}
}

// Settings returns the listing configuration for a collection.
func (s *Service) Settings(collection string) (*config.CollectionSettings, error) {
	settings, ok := s.collections[collection]
	if !ok {
		return nil, apperrors.NewCollectionNotFoundError(collection)
	}
	return settings, nil
}

// Refresh fetches the entire collection from the platform API, normalizes
// it, and replaces the stored snapshot. The snapshot is replaced even when
// nothing usable came back, so listings degrade to an empty set instead of
// serving stale data; the empty conditions are still reported to the caller
// as their distinct non-fatal errors.
func (s *Service) Refresh(ctx context.Context, token, collection string) (int, error) {
	if collection == config.CollectionStudents {
		return s.RefreshEnrollment(ctx, token)
	}

	settings, err := s.Settings(collection)
	if err != nil {
		return 0, err
	}

	raw, err := s.fetcher.FetchCollection(ctx, token, settings)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoData) {
			// Malformed or empty upstream payload: replace the snapshot so
			// listings show the empty set, and report the condition.
			s.snapshots.Put(collection, []model.Record{})
		}
		return 0, err
	}

	normalized := normalize.Normalize(raw, settings)
	s.snapshots.Put(collection, normalized)
	log.Printf("Refreshed collection '%s': %d usable of %d raw records", collection, len(normalized), len(raw))

	if len(normalized) == 0 && len(raw) > 0 {
		return 0, apperrors.NewNoUsableRecordsError(collection, len(raw))
	}
	return len(normalized), nil
}

// List serves one page of a collection snapshot under the given query
// state. The page number is clamped against the filtered set size here, in
// one place, so every screen gets the same stale-page behavior.
func (s *Service) List(collection string, state services.QueryState) (services.ListResult, error) {
	startTime := time.Now()

	settings, err := s.Settings(collection)
	if err != nil {
		return services.ListResult{}, err
	}

	snapshot, ok := s.snapshots.Get(collection)
	if !ok {
		return services.ListResult{}, apperrors.NewSnapshotMissingError(collection)
	}

	state = s.normalizeState(state, settings)
	filtered := query.Apply(snapshot.Records, state.Search, state.Filters, settings)
	state = state.ClampPage(len(filtered))
	page := listing.SortAndPage(filtered, state.Sort, settings.SecondarySortField, state.Page, state.PageSize)

	return services.ListResult{
		Records:    page.Records,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Took:       time.Since(startTime).Milliseconds(),
		QueryId:    uuid.New().String(),
	}, nil
}

// RefreshEnrollment re-fetches the sessions and classrooms collections,
// rebuilds the enrolled-students aggregate, and stores all three snapshots.
// Returns the number of aggregated students.
func (s *Service) RefreshEnrollment(ctx context.Context, token string) (int, error) {
	sessions, classrooms, err := s.fetcher.FetchEnrollmentSources(ctx, token)
	if err != nil {
		return 0, err
	}

	sessionSettings, err := s.Settings(config.CollectionSessions)
	if err != nil {
		return 0, err
	}
	classroomSettings, err := s.Settings(config.CollectionClassrooms)
	if err != nil {
		return 0, err
	}

	normalizedSessions := normalize.Normalize(sessions, sessionSettings)
	normalizedClassrooms := normalize.Normalize(classrooms, classroomSettings)
	s.snapshots.Put(config.CollectionSessions, normalizedSessions)
	s.snapshots.Put(config.CollectionClassrooms, normalizedClassrooms)

	stats := aggregate.Aggregate(normalizedSessions, normalizedClassrooms, aggregate.StudentKey)
	aggregate.Finalize(stats)
	students := aggregate.Records(stats)
	s.snapshots.Put(config.CollectionStudents, students)
	log.Printf("Rebuilt enrollment aggregate: %d students from %d sessions and %d classrooms",
		len(students), len(normalizedSessions), len(normalizedClassrooms))

	if len(students) == 0 && len(sessions)+len(classrooms) > 0 {
		return 0, apperrors.NewNoUsableRecordsError(config.CollectionStudents, len(sessions)+len(classrooms))
	}
	return len(students), nil
}

// EnrolledStudents serves a page of the enrolled-students aggregate.
func (s *Service) EnrolledStudents(state services.QueryState) (services.ListResult, error) {
	return s.List(config.CollectionStudents, state)
}

// normalizeState fills unset query-state fields from the collection settings
// and caps the page size.
func (s *Service) normalizeState(state services.QueryState, settings *config.CollectionSettings) services.QueryState {
	if state.Sort.Field == "" {
		state.Sort.Field = settings.DefaultSortField
	}
	if state.Sort.Order != config.OrderAsc && state.Sort.Order != config.OrderDesc {
		state.Sort.Order = config.OrderAsc
	}
	if state.PageSize <= 0 {
		state.PageSize = settings.DefaultPageSize
	}
	if state.PageSize > settings.MaxPageSize {
		state.PageSize = settings.MaxPageSize
	}
	if state.Page < 1 {
		state.Page = 1
	}
	if state.Filters == nil {
		state.Filters = map[string]string{}
	}
	return state
}
