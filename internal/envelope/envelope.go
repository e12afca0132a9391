// Package envelope extracts record arrays from the platform API's response
// envelopes. The upstream wraps collection payloads in one of a small set of
// known shapes; rather than optional-chaining through them, each shape is
// tried explicitly and anything unrecognized is reported as a no-data
// condition instead of an exception.
package envelope

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/talentbridge/dashboard-gateway/internal/errors"
	"github.com/talentbridge/dashboard-gateway/model"
)

// Payload is the result of parsing an upstream envelope: the extracted raw
// records and the server-reported total when the envelope carried one
// (falling back to the array length).
type Payload struct {
	Records []model.Record
	Total   int
}

// Parse decodes body and extracts the record array for a collection.
// recordsKey is the plural key the nested shape stores the array under
// (e.g. "companies"). Known shapes, tried in order:
//
//  1. {"data": {"data": {"<recordsKey>": [...], "total": n}}}
//  2. {"success": true, "data": [...]}
//  3. {"data": [...]}
//
// A shape that decodes but carries no array (error envelope, success=false,
// unknown structure) yields a no-data error, never a panic or a decode
// exception past this boundary.
func Parse(body []byte, collection, recordsKey string) (Payload, error) {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Payload{}, apperrors.NewNoDataError(collection, "response is not valid JSON")
	}
	return Extract(decoded, collection, recordsKey)
}

// Extract walks an already-decoded payload. Split from Parse so callers that
// decode the body themselves (or build payloads in tests) can reuse the
// shape handling.
func Extract(decoded interface{}, collection, recordsKey string) (Payload, error) {
	envelope, ok := decoded.(map[string]interface{})
	if !ok {
		// A bare top-level array is accepted as the degenerate shape.
		if records, arrOK := asRecords(decoded); arrOK {
			return Payload{Records: records, Total: len(records)}, nil
		}
		return Payload{}, apperrors.NewNoDataError(collection, "response is not an object or array")
	}

	if success, exists := envelope["success"]; exists {
		if flag, isBool := success.(bool); isBool && !flag {
			return Payload{}, apperrors.NewNoDataError(collection, upstreamMessage(envelope))
		}
	}

	data, exists := envelope["data"]
	if !exists {
		return Payload{}, apperrors.NewNoDataError(collection, "response has no data field")
	}

	// Shape 2/3: data is the record array itself.
	if records, arrOK := asRecords(data); arrOK {
		return Payload{Records: records, Total: len(records)}, nil
	}

	// Shape 1: data.data.<recordsKey> with a sibling total.
	outer, isMap := data.(map[string]interface{})
	if !isMap {
		return Payload{}, apperrors.NewNoDataError(collection, "data field is neither an array nor an object")
	}
	inner, isMap := outer["data"].(map[string]interface{})
	if !isMap {
		// Some endpoints skip the second data level and key the array directly.
		inner = outer
	}

	records, arrOK := asRecords(inner[recordsKey])
	if !arrOK {
		return Payload{}, apperrors.NewNoDataError(collection, fmt.Sprintf("no '%s' array in response", recordsKey))
	}

	total := len(records)
	if reported, numOK := toInt(inner["total"]); numOK && reported >= 0 {
		total = reported
	}
	return Payload{Records: records, Total: total}, nil
}

// asRecords converts a decoded JSON array into records, skipping elements
// that are not objects.
func asRecords(value interface{}) ([]model.Record, bool) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, false
	}
	records := make([]model.Record, 0, len(items))
	for _, item := range items {
		if fields, isMap := item.(map[string]interface{}); isMap {
			records = append(records, model.Record(fields))
		}
	}
	return records, true
}

// upstreamMessage pulls a human-readable message out of an error envelope,
// falling back to a generic string.
func upstreamMessage(envelope map[string]interface{}) string {
	for _, key := range []string{"message", "error"} {
		if msg, ok := envelope[key].(string); ok && msg != "" {
			return msg
		}
	}
	return "upstream reported failure"
}

func toInt(value interface{}) (int, bool) {
	switch n := value.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}
