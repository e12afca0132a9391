// Package listing orders a filtered record set and slices it into the page
// window the dashboard renders.
package listing

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/model"
	"github.com/talentbridge/dashboard-gateway/services"
)

// PageResult is one fully computed page window plus its pagination metadata.
type PageResult struct {
	Records    []model.Record
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// SortAndPage sorts the entire record set by the sort key, breaks ties on
// the secondary field ascending, then slices out the requested page.
//
// The whole set is always sorted before slicing: Total and TotalPages must
// describe the full filtered set, not just the visible page, so there is no
// top-k shortcut. Comparison is typed per field value: strings use
// locale-aware collation, numbers compare numerically, booleans order true
// above false. The secondary tie-break makes the order total, so sorting is
// deterministic regardless of input order and stable across re-sorts.
//
// The input slice is not mutated. An out-of-range page yields an empty
// record slice with intact metadata; clamping the page number is the
// caller's responsibility (services.QueryState.ClampPage).
func SortAndPage(records []model.Record, key services.SortKey, secondaryField string, page, pageSize int) PageResult {
	sorted := make([]model.Record, len(records))
	copy(sorted, records)

	collator := collate.New(language.English, collate.Loose)
	sort.SliceStable(sorted, func(i, j int) bool {
		if cmp := compareField(collator, sorted[i], sorted[j], key.Field); cmp != 0 {
			if key.Order == config.OrderDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		// Secondary key is always ascending so equal primaries still have
		// one deterministic order.
		return compareField(collator, sorted[i], sorted[j], secondaryField) < 0
	})

	total := len(sorted)
	totalPages := services.TotalPages(total, pageSize)

	var window []model.Record
	startIndex := (page - 1) * pageSize
	endIndex := startIndex + pageSize
	if page >= 1 && pageSize > 0 && startIndex < total {
		if endIndex > total {
			endIndex = total
		}
		window = sorted[startIndex:endIndex]
	} else {
		window = []model.Record{}
	}

	return PageResult{
		Records:    window,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

// compareField compares one field of two records, returning <0, 0, or >0 in
// the ascending sense. Records missing the field sort after records that
// have it.
func compareField(collator *collate.Collator, a, b model.Record, field string) int {
	valA, okA := a[field]
	valB, okB := b[field]

	if !okA && !okB {
		return 0
	}
	if !okA {
		return 1
	}
	if !okB {
		return -1
	}

	// Numeric before string: JSON numbers always decode to float64, and
	// counters from the aggregator arrive as ints.
	if numA, isNumA := toFloat(valA); isNumA {
		if numB, isNumB := toFloat(valB); isNumB {
			switch {
			case numA < numB:
				return -1
			case numA > numB:
				return 1
			default:
				return 0
			}
		}
	}

	if strA, isStrA := valA.(string); isStrA {
		if strB, isStrB := valB.(string); isStrB {
			return collator.CompareString(strA, strB)
		}
	}

	if boolA, isBoolA := valA.(bool); isBoolA {
		if boolB, isBoolB := valB.(bool); isBoolB {
			switch {
			case boolA == boolB:
				return 0
			case boolB: // true sorts above false
				return -1
			default:
				return 1
			}
		}
	}

	// Mismatched or unsupported types compare equal and fall through to the
	// secondary key.
	return 0
}

func toFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
