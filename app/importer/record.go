package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Record is one decoded import object. Any key may be absent.
type Record map[string]any

// ErrMalformedRecord marks an article record that lacks a required key or
// carries a value of the wrong type.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError describes which record and key made an import call abort.
type RecordError struct {
	Index  int
	Key    string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s %q", e.Index, e.Reason, e.Key)
}

func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

func (r Record) has(key string) bool {
	_, ok := r[key]
	return ok
}

// str returns the string stored under key. A nil value yields "".
func (r Record) str(key string) (string, error) {
	switch v := r[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("field %q: expected string, got %T", key, v)
	}
}

// label returns the value under key when it is a non-empty string.
func (r Record) label(key string) (string, bool) {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (r Record) boolean(key string) (bool, error) {
	switch v := r[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("field %q: expected boolean, got %T", key, v)
	}
}

func (r Record) integer(key string) (int, error) {
	switch v := r[key].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return fitInt(key, v)
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("field %q: expected integer, got %v", key, v)
		}
		// float64(math.MaxInt) rounds up to a power of two, so the upper bound is exclusive.
		if v < float64(math.MinInt) || v >= float64(math.MaxInt) {
			return 0, fmt.Errorf("field %q: integer out of range: %v", key, v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", key, err)
		}
		return fitInt(key, n)
	default:
		return 0, fmt.Errorf("field %q: expected integer, got %T", key, v)
	}
}

func fitInt(key string, v int64) (int, error) {
	if v < math.MinInt || v > math.MaxInt {
		return 0, fmt.Errorf("field %q: integer out of range: %d", key, v)
	}
	return int(v), nil
}

// rawJSON re-encodes an arbitrary decoded value for an opaque JSON column.
func (r Record) rawJSON(key string) (json.RawMessage, error) {
	v := r[key]
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(normalize(v))
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return data, nil
}

func (r Record) stringList(key string) ([]string, error) {
	switch v := r[key].(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("field %q: expected list of strings, found %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q: expected list of strings, got %T", key, v)
	}
}

// normalize converts map[any]any values produced by some YAML decoders into
// JSON-encodable map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalize(val)
		}
		return m
	case Record:
		return normalize(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// toText renders a scalar the way an operator typed it: 8.5 stays "8.5",
// 12 stays "12".
func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
