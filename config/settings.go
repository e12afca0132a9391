// Package config provides configuration structures for the dashboard gateway.
// It defines per-collection listing settings: which fields are searched,
// which can be filtered on, how records are sorted, and paging limits.
package config

import (
	"strings"
)

// Sort order values accepted by CollectionSettings and query parameters.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// CollectionSettings contains all listing configuration for one dashboard
// collection (companies, job applications, enrolled students, ...).
//
// SearchableFields are matched with a case-insensitive substring test and
// combined with OR: a record matches when the term appears in any of them.
// FilterableFields are matched exactly (case-sensitive categorical codes)
// and combined with AND. RequiredFields define the minimal shape a raw
// record must have to survive normalization.
type CollectionSettings struct {
	Name string `json:"name"` // Unique collection name, also the route segment

	// Path is the upstream API path the full collection is fetched from.
	// Empty for derived collections that are built in-process (the
	// enrolled-students aggregate).
	Path string `json:"path,omitempty"`

	// RecordsKey is the plural key the nested upstream envelope stores the
	// record array under (e.g. "companies" in data.data.companies).
	RecordsKey string `json:"records_key,omitempty"`

	SearchableFields []string `json:"searchable_fields"`
	FilterableFields []string `json:"filterable_fields"`

	// RequiredFields must be present as non-empty strings for a raw record
	// to be kept by the normalizer. The id field is always required.
	RequiredFields []string `json:"required_fields"`

	// BoolFields are coerced to booleans during normalization, defaulting
	// to false when absent or of the wrong type.
	BoolFields []string `json:"bool_fields,omitempty"`

	// DefaultSortField orders listings when the caller does not pick a sort
	// key. SecondarySortField breaks ties so output order is deterministic;
	// it is always compared ascending.
	DefaultSortField   string `json:"default_sort_field"`
	SecondarySortField string `json:"secondary_sort_field"`

	DefaultPageSize int `json:"default_page_size"`
	MaxPageSize     int `json:"max_page_size"`
}

// Validate checks the settings for basic consistency and returns a list of
// human-readable problems, empty when the settings are usable.
func (settings *CollectionSettings) Validate() []string {
	var problems []string

	if strings.TrimSpace(settings.Name) == "" {
		problems = append(problems, "Collection name cannot be empty")
	}

	problems = append(problems, checkDuplicates("searchable_fields", settings.SearchableFields)...)
	problems = append(problems, checkDuplicates("filterable_fields", settings.FilterableFields)...)
	problems = append(problems, checkDuplicates("required_fields", settings.RequiredFields)...)
	problems = append(problems, checkDuplicates("bool_fields", settings.BoolFields)...)

	allFields := make([]string, 0)
	allFields = append(allFields, settings.SearchableFields...)
	allFields = append(allFields, settings.FilterableFields...)
	allFields = append(allFields, settings.RequiredFields...)
	allFields = append(allFields, settings.BoolFields...)
	if settings.DefaultSortField != "" {
		allFields = append(allFields, settings.DefaultSortField)
	}
	if settings.SecondarySortField != "" {
		allFields = append(allFields, settings.SecondarySortField)
	}
	for _, field := range allFields {
		if strings.TrimSpace(field) == "" {
			problems = append(problems, "Field name cannot be empty or whitespace-only")
		}
	}

	if settings.DefaultPageSize < 0 {
		problems = append(problems, "default_page_size cannot be negative")
	}
	if settings.MaxPageSize < 0 {
		problems = append(problems, "max_page_size cannot be negative")
	}

	return problems
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, fields []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, field := range fields {
		if seen[field] {
			errors = append(errors, "Duplicate field '"+field+"' found in "+fieldName)
		}
		seen[field] = true
	}

	return errors
}

// ApplyDefaults applies default values to the collection settings.
func (settings *CollectionSettings) ApplyDefaults() {
	if settings.DefaultPageSize == 0 {
		settings.DefaultPageSize = 10
	}
	if settings.MaxPageSize == 0 {
		settings.MaxPageSize = 100
	}

	// Page size cap never below the default.
	if settings.MaxPageSize < settings.DefaultPageSize {
		settings.MaxPageSize = settings.DefaultPageSize
	}

	if settings.DefaultSortField == "" {
		settings.DefaultSortField = "name"
	}
	if settings.SecondarySortField == "" {
		settings.SecondarySortField = "name"
	}

	// Initialize empty slices if nil to prevent nil pointer issues
	if settings.SearchableFields == nil {
		settings.SearchableFields = []string{}
	}
	if settings.FilterableFields == nil {
		settings.FilterableFields = []string{}
	}
	if settings.RequiredFields == nil {
		settings.RequiredFields = []string{}
	}
	if settings.BoolFields == nil {
		settings.BoolFields = []string{}
	}
}
