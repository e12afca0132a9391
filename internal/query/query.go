// Package query applies the free-text search term and categorical filters of
// a listing to a normalized record set.
package query

import (
	"log"
	"strconv"
	"strings"

	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/model"
	"github.com/talentbridge/dashboard-gateway/services"
)

// Apply returns the records matching the search term and every filter.
//
// The term is matched case-insensitively as a plain substring (never a regex
// or fuzzy match) against the collection's searchable fields, OR-combined:
// one matching field keeps the record. An empty term matches everything.
//
// Filters are AND-combined. The services.FilterAll sentinel (and an empty
// value) mean "no constraint" and are skipped; any other value must equal
// the record's field exactly, case-sensitively. Filters on fields not
// configured as filterable are ignored with a warning, matching how unknown
// filters behave upstream.
//
// Apply is pure: the input slice and its records are never mutated, and
// re-applying it to its own output returns the same set.
func Apply(records []model.Record, search string, filters map[string]string, settings *config.CollectionSettings) []model.Record {
	term := strings.ToLower(strings.TrimSpace(search))

	filterable := make(map[string]struct{}, len(settings.FilterableFields))
	for _, field := range settings.FilterableFields {
		filterable[field] = struct{}{}
	}

	matched := make([]model.Record, 0, len(records))
	for _, record := range records {
		if !matchesSearch(record, term, settings.SearchableFields) {
			continue
		}
		if !matchesFilters(record, filters, filterable, settings.Name) {
			continue
		}
		matched = append(matched, record)
	}
	return matched
}

// matchesSearch checks the term against each searchable field, OR-combined.
func matchesSearch(record model.Record, term string, searchableFields []string) bool {
	if term == "" {
		return true
	}
	for _, field := range searchableFields {
		if value, ok := record.GetString(field); ok {
			if strings.Contains(strings.ToLower(value), term) {
				return true
			}
		}
	}
	return false
}

// matchesFilters checks every active filter, AND-combined.
func matchesFilters(record model.Record, filters map[string]string, filterable map[string]struct{}, collection string) bool {
	for field, want := range filters {
		if want == "" || want == services.FilterAll {
			continue
		}
		if _, isFilterable := filterable[field]; !isFilterable {
			log.Printf("Warning: Field '%s' is not configured as filterable for collection '%s'. Skipping filter.", field, collection)
			continue
		}

		value, exists := record[field]
		if !exists {
			return false
		}
		if !matchesValue(value, want) {
			return false
		}
	}
	return true
}

// matchesValue compares a record field against a filter value. Categorical
// codes are strings compared exactly; boolean flags accept "true"/"false";
// numeric codes are compared on their decimal rendering.
func matchesValue(value interface{}, want string) bool {
	switch v := value.(type) {
	case string:
		return v == want
	case bool:
		flag, err := strconv.ParseBool(want)
		return err == nil && v == flag
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64) == want
	case int:
		return strconv.Itoa(v) == want
	}
	return false
}
