package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Raw is an untyped model payload object. Getters take alternate spellings of a field in
// priority order. Any non-object value behaves as an empty object.
type Raw map[string]any

func asRaw(v any) Raw {
	if m, ok := v.(map[string]any); ok {
		return Raw(m)
	}
	return Raw{}
}

// first returns the first key whose value is present and non-null.
func (r Raw) first(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the first value that is a string, or "".
func (r Raw) String(keys ...string) string {
	s, _ := r.LookupString(keys...)
	return s
}

func (r Raw) LookupString(keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := r[k].(string); ok {
			return s, true
		}
	}
	return "", false
}

// Number coerces the first non-null value. Numeric strings parse; everything else is 0.
func (r Raw) Number(keys ...string) float64 {
	v, ok := r.first(keys...)
	if !ok {
		return 0
	}
	f, ok := toNumber(v)
	if !ok {
		return 0
	}
	return f
}

// OptionalNumber is Number that reports absence (or an unparseable value) as nil.
func (r Raw) OptionalNumber(keys ...string) *float64 {
	v, ok := r.first(keys...)
	if !ok {
		return nil
	}
	f, ok := toNumber(v)
	if !ok {
		return nil
	}
	return &f
}

// Slice returns the first non-null value when it is an array.
func (r Raw) Slice(keys ...string) []any {
	v, ok := r.first(keys...)
	if !ok {
		return nil
	}
	arr, _ := v.([]any)
	return arr
}

// Strings returns the first non-null array with scalar elements rendered as strings.
// Never nil.
func (r Raw) Strings(keys ...string) []string {
	arr := r.Slice(keys...)
	out := make([]string, 0, len(arr))
	for _, x := range arr {
		switch t := x.(type) {
		case nil, map[string]any, []any:
			continue
		case string:
			out = append(out, t)
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}

// Object returns the first non-null value when it is an object.
func (r Raw) Object(keys ...string) Raw {
	v, ok := r.first(keys...)
	if !ok {
		return Raw{}
	}
	return asRaw(v)
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case bool:
		if t {
			f = 1
		}
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
