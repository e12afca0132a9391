package services

import (
	"context"

	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/model"
)

// FilterAll is the "no constraint" sentinel for categorical filters. A filter
// set to this value matches every record and is skipped entirely.
const FilterAll = "all"

// SortKey identifies the field a listing is ordered by and the direction.
// Order is config.OrderAsc or config.OrderDesc.
type SortKey struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// ListResult is one page of a processed collection listing, along with the
// pagination metadata the dashboard renders (total count, total pages,
// current page).
type ListResult struct {
	Records    []model.Record `json:"records"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Took       int64          `json:"took"`     // milliseconds
	QueryId    string         `json:"query_id"` // unique UUID for this listing query
}

// Lister serves processed pages of a fetched collection snapshot.
type Lister interface {
	List(collection string, state QueryState) (ListResult, error)
}

// Refresher re-fetches a collection from the platform API, normalizes it, and
// replaces the stored snapshot. Returns the number of usable records kept.
type Refresher interface {
	Refresh(ctx context.Context, token, collection string) (int, error)
}

// EnrollmentProvider serves the enrolled-students aggregate built from the
// sessions and classrooms snapshots.
type EnrollmentProvider interface {
	RefreshEnrollment(ctx context.Context, token string) (int, error)
	EnrolledStudents(state QueryState) (ListResult, error)
}

// CollectionProvider combines the listing surfaces the HTTP API depends on.
type CollectionProvider interface {
	Lister
	Refresher
	EnrollmentProvider
	Settings(collection string) (*config.CollectionSettings, error)
}

// Fetcher retrieves whole collections from the upstream platform API. The
// token is the caller's opaque bearer token; implementations must fail with
// the authentication-required condition before any network call when it is
// empty.
type Fetcher interface {
	FetchCollection(ctx context.Context, token string, settings *config.CollectionSettings) ([]model.Record, error)
	FetchEnrollmentSources(ctx context.Context, token string) (sessions, classrooms []model.Record, err error)
}
