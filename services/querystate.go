package services

import (
	"github.com/talentbridge/dashboard-gateway/config"
)

// QueryState is the immutable listing state a dashboard screen holds: the
// free-text search term, the categorical filters, the active sort key, and
// the page window. The presentation layer owns one QueryState per screen and
// derives a new value on every user action; the processing stages are pure
// functions of (records, QueryState).
type QueryState struct {
	Search   string            `json:"search"`
	Filters  map[string]string `json:"filters"`
	Sort     SortKey           `json:"sort"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// NewQueryState returns the initial state for a collection: empty search, no
// filters, the collection's default sort ascending, page 1.
func NewQueryState(settings *config.CollectionSettings) QueryState {
	return QueryState{
		Filters:  map[string]string{},
		Sort:     SortKey{Field: settings.DefaultSortField, Order: config.OrderAsc},
		Page:     1,
		PageSize: settings.DefaultPageSize,
	}
}

// WithSearch returns a copy with the new search term. The page resets to 1:
// a changed term changes the filtered set, so the old page window is stale.
func (s QueryState) WithSearch(term string) QueryState {
	next := s.clone()
	next.Search = term
	next.Page = 1
	return next
}

// WithFilter returns a copy with the filter for field set to value. Setting
// FilterAll removes the constraint. The page resets to 1 for the same reason
// as WithSearch.
func (s QueryState) WithFilter(field, value string) QueryState {
	next := s.clone()
	if value == FilterAll {
		delete(next.Filters, field)
	} else {
		next.Filters[field] = value
	}
	next.Page = 1
	return next
}

// WithSort returns a copy sorted by field. Selecting the already-active field
// flips the direction; selecting a different field switches to it ascending.
func (s QueryState) WithSort(field string) QueryState {
	next := s.clone()
	if s.Sort.Field == field {
		if s.Sort.Order == config.OrderAsc {
			next.Sort.Order = config.OrderDesc
		} else {
			next.Sort.Order = config.OrderAsc
		}
	} else {
		next.Sort = SortKey{Field: field, Order: config.OrderAsc}
	}
	next.Page = 1
	return next
}

// WithPage returns a copy on the given page. Values below 1 snap to 1.
func (s QueryState) WithPage(page int) QueryState {
	next := s.clone()
	if page < 1 {
		page = 1
	}
	next.Page = page
	return next
}

// ClampPage returns a copy whose page is clamped into [1, max(1, totalPages)]
// for the given filtered-set size. Every caller that changes the filtered set
// goes through this one helper instead of re-implementing the clamp.
func (s QueryState) ClampPage(total int) QueryState {
	next := s.clone()
	totalPages := TotalPages(total, s.PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if next.Page < 1 {
		next.Page = 1
	}
	if next.Page > totalPages {
		next.Page = totalPages
	}
	return next
}

// TotalPages computes ceil(total / pageSize), with 0 pages for an empty set
// and 0 for a non-positive page size.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// clone copies the state including its filter map so derived values never
// share mutable storage with their source.
func (s QueryState) clone() QueryState {
	next := s
	next.Filters = make(map[string]string, len(s.Filters))
	for k, v := range s.Filters {
		next.Filters[k] = v
	}
	return next
}
