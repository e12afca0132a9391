// Package testing provides fixtures and helpers for testing the dashboard
// gateway.
package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/model"
	"github.com/talentbridge/dashboard-gateway/services"
)

// CompanySettings returns listing settings matching the built-in companies
// collection, with defaults applied.
func CompanySettings() *config.CollectionSettings {
	settings := &config.CollectionSettings{
		Name:               config.CollectionCompanies,
		Path:               "/api/companies",
		RecordsKey:         "companies",
		SearchableFields:   []string{"name"},
		FilterableFields:   []string{"type"},
		RequiredFields:     []string{"name", "type"},
		BoolFields:         []string{"isActive", "isVerified"},
		DefaultSortField:   "name",
		SecondarySortField: "name",
	}
	settings.ApplyDefaults()
	return settings
}

// Companies builds a deterministic company record set. Names cycle through
// tech and non-tech variants so search tests have known match counts.
func Companies(count int) []model.Record {
	types := []string{"team_tech_professional", "agency", "startup"}
	names := []string{"TechNova", "Brightside", "CoreTech Labs", "Harborview", "TECHGRID"}

	records := make([]model.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, model.Record{
			"id":       fmtID("company", i),
			"name":     names[i%len(names)] + " " + letterSuffix(i),
			"type":     types[i%len(types)],
			"isActive": i%2 == 0,
			"staff":    float64(5 + i),
		})
	}
	return records
}

// Session builds one attendance-session source record.
func Session(studentID, studentName, status, course string, rating float64) model.Record {
	record := model.Record{
		"id":          "sess-" + studentID + "-" + course + "-" + status,
		"studentId":   studentID,
		"studentName": studentName,
		"status":      status,
		"course":      course,
	}
	if rating > 0 {
		record["rating"] = rating
	}
	return record
}

// AssertPageWindows checks that the concatenated pages of a listing equal
// the full sorted set with no gaps or overlaps.
func AssertPageWindows(t *testing.T, pages [][]model.Record, wantTotal int) {
	t.Helper()

	seen := make(map[string]bool)
	flattened := 0
	for _, page := range pages {
		for _, record := range page {
			id, ok := record.GetID()
			require.True(t, ok, "every paged record should have an id")
			assert.False(t, seen[id], "record %s appears in more than one page", id)
			seen[id] = true
			flattened++
		}
	}
	assert.Equal(t, wantTotal, flattened, "concatenated pages should cover the full set")
}

// AssertSameRecordOrder checks two record slices hold the same ids in the
// same order.
func AssertSameRecordOrder(t *testing.T, want, got []model.Record) {
	t.Helper()

	require.Equal(t, len(want), len(got), "record counts should match")
	for i := range want {
		wantID, _ := want[i].GetID()
		gotID, _ := got[i].GetID()
		assert.Equal(t, wantID, gotID, "record order differs at index %d", i)
	}
}

// DefaultState returns the initial query state for the given settings.
func DefaultState(settings *config.CollectionSettings) services.QueryState {
	return services.NewQueryState(settings)
}

func fmtID(prefix string, i int) string {
	const digits = "0123456789"
	if i < 10 {
		return prefix + "-0" + string(digits[i])
	}
	return prefix + "-" + string(digits[i/10]) + string(digits[i%10])
}

func letterSuffix(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return string(letters[i%len(letters)])
}
