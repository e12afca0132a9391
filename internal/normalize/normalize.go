// Package normalize turns raw upstream record arrays into the clean working
// set the query, sort, and aggregation stages operate on.
package normalize

import (
	"strings"

	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/model"
)

// Normalize validates and coerces raw records against the collection's
// minimal shape. Records missing a usable id or any required field are
// silently dropped; configured boolean flags are coerced to real booleans,
// defaulting to false. The input slice and its records are never mutated,
// and the operation is idempotent: normalizing an already-normalized set
// returns an equal set.
func Normalize(raw []model.Record, settings *config.CollectionSettings) []model.Record {
	normalized := make([]model.Record, 0, len(raw))

	for _, record := range raw {
		if record == nil {
			continue
		}
		if _, ok := record.GetID(); !ok {
			continue
		}
		if !hasRequiredFields(record, settings.RequiredFields) {
			continue
		}

		cleaned := record.Clone()
		for _, field := range settings.BoolFields {
			flag, _ := cleaned.GetBool(field)
			cleaned[field] = flag
		}
		normalized = append(normalized, cleaned)
	}

	return normalized
}

// hasRequiredFields reports whether every required field is present as a
// non-blank string.
func hasRequiredFields(record model.Record, required []string) bool {
	for _, field := range required {
		value, ok := record.GetString(field)
		if !ok || strings.TrimSpace(value) == "" {
			return false
		}
	}
	return true
}
