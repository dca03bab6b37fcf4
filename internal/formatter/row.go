package formatter

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is a loosely-typed record fed into the projection. A key that is
// missing means "not loaded"; a key present with nil means a NULL value.
// The distinction matters: relations and computed columns are only
// emitted when their data was actually fetched.
type Row map[string]interface{}

func (r Row) Has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r Row) Get(key string) interface{} {
	return r[key]
}

// ToBool is the permissive boolean coercion used on raw row values:
// accepts bools, numbers and the usual string spellings; anything else
// reads as false.
func ToBool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	case []byte:
		return ToBool(string(b))
	}
	return false
}

// ToInt truncates numeric values and parses numeric strings; non-numeric
// input collapses to the fallback.
func ToInt(v interface{}, fallback int) int {
	if n, ok := ToIntOrNil(v); ok {
		return n
	}
	return fallback
}

func ToIntOrNil(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(f), true
		}
	case []byte:
		return ToIntOrNil(string(n))
	}
	return 0, false
}

func ToFloat(v interface{}, fallback float64) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	case int:
		return float64(f)
	case int64:
		return float64(f)
	case string:
		if out, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil {
			return out
		}
	case []byte:
		return ToFloat(string(f), fallback)
	}
	return fallback
}

// NullableString maps empty strings to nil so optional text columns
// serialize as null rather than "".
func NullableString(v interface{}) interface{} {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		if s == "" {
			return nil
		}
		return s
	case []byte:
		return NullableString(string(s))
	}
	return v
}

// ToStringList normalizes a JSON-array column: already-decoded slices
// pass through, raw JSON text is parsed, and anything that is not an
// array becomes an empty list.
func ToStringList(v interface{}) []string {
	switch arr := v.(type) {
	case nil:
		return []string{}
	case []string:
		if arr == nil {
			return []string{}
		}
		return arr
	case []interface{}:
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return parseJSONList(arr)
	case []byte:
		return parseJSONList(string(arr))
	}
	return []string{}
}

func parseJSONList(raw string) []string {
	var decoded []interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(decoded))
	for _, item := range decoded {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// isoTime renders timestamps as RFC3339 strings, passing through strings
// and mapping everything unparseable to nil.
func isoTime(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(time.RFC3339)
	case string:
		if t == "" {
			return nil
		}
		return t
	}
	return nil
}

// roundedFloat keeps avg_rating style decimals at two places and guards
// against NaN leaking into JSON.
func roundedFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
