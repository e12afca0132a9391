package config

// Built-in collection names.
const (
	CollectionCompanies    = "companies"
	CollectionApplications = "applications"
	CollectionSessions     = "sessions"
	CollectionClassrooms   = "classrooms"
	CollectionStudents     = "enrolled-students"
)

// DefaultCollections returns the listing configuration for the dashboard's
// built-in collections, with defaults applied. Sessions and classrooms are
// fetched for the enrolled-students aggregation and are also listable on
// their own; enrolled-students is derived in-process and has no upstream
// path.
func DefaultCollections() map[string]*CollectionSettings {
	collections := []*CollectionSettings{
		{
			Name:               CollectionCompanies,
			Path:               "/api/companies",
			RecordsKey:         "companies",
			SearchableFields:   []string{"name"},
			FilterableFields:   []string{"type"},
			RequiredFields:     []string{"name", "type"},
			BoolFields:         []string{"isActive", "isVerified"},
			DefaultSortField:   "name",
			SecondarySortField: "name",
		},
		{
			Name:               CollectionApplications,
			Path:               "/api/applications",
			RecordsKey:         "applications",
			SearchableFields:   []string{"name", "company"},
			FilterableFields:   []string{"status"},
			RequiredFields:     []string{"name", "status"},
			DefaultSortField:   "appliedAt",
			SecondarySortField: "name",
		},
		{
			Name:               CollectionSessions,
			Path:               "/api/sessions",
			RecordsKey:         "sessions",
			SearchableFields:   []string{"studentName", "course"},
			FilterableFields:   []string{"status"},
			RequiredFields:     []string{"studentId", "status"},
			DefaultSortField:   "scheduledAt",
			SecondarySortField: "studentName",
		},
		{
			Name:               CollectionClassrooms,
			Path:               "/api/classrooms",
			RecordsKey:         "classrooms",
			SearchableFields:   []string{"studentName", "course"},
			FilterableFields:   []string{"status"},
			RequiredFields:     []string{"studentId", "status"},
			DefaultSortField:   "scheduledAt",
			SecondarySortField: "studentName",
		},
		{
			Name:               CollectionStudents,
			SearchableFields:   []string{"name", "email"},
			FilterableFields:   []string{"role"},
			RequiredFields:     []string{"name"},
			DefaultSortField:   "name",
			SecondarySortField: "name",
		},
	}

	registry := make(map[string]*CollectionSettings, len(collections))
	for _, settings := range collections {
		settings.ApplyDefaults()
		registry[settings.Name] = settings
	}
	return registry
}
