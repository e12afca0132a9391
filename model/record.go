package model

// Record is a flexible map representing one entity fetched from the platform
// API (a company, a job application, an attendance session, a classroom).
// The id field is the only field required for record identity; everything else
// is accessed by string key and depends on the collection configuration.
// Example: rec["name"], rec["type"], rec["isActive"]
type Record map[string]interface{}

// GetID returns the record id if it's stored under the "id" key as a
// non-empty string.
func (r Record) GetID() (string, bool) {
	if id, ok := r["id"]; ok {
		if str, sok := id.(string); sok {
			if str != "" {
				return str, true
			}
		}
	}
	return "", false
}

// GetString returns the value under key if it's a string.
func (r Record) GetString(key string) (string, bool) {
	if v, ok := r[key]; ok {
		if str, sok := v.(string); sok {
			return str, true
		}
	}
	return "", false
}

// GetBool returns the value under key if it's a bool.
func (r Record) GetBool(key string) (bool, bool) {
	if v, ok := r[key]; ok {
		if b, bok := v.(bool); bok {
			return b, true
		}
	}
	return false, false
}

// GetFloat returns the value under key coerced to float64 when the value is
// any numeric type (JSON decoding yields float64, but records built in tests
// or from upstream counters may carry ints).
func (r Record) GetFloat(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
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

// Clone returns a shallow copy of the record. Nested values are shared; the
// processing stages never mutate nested values, so a shallow copy is enough
// to keep the originals untouched.
func (r Record) Clone() Record {
	cloned := make(Record, len(r))
	for k, v := range r {
		cloned[k] = v
	}
	return cloned
}
