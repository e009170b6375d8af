package document

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Document wraps a mapping of string keys to nested values.
// The zero value is an empty document.
type Document struct {
	data map[string]any
}

// New creates a Document from m. Nested values are normalized so that every
// mapping is a map[string]any and every sequence is a []any.
func New(m map[string]any) Document {
	if m == nil {
		return Document{data: map[string]any{}}
	}
	return Document{data: Normalize(m).(map[string]any)}
}

// Len returns the number of top-level keys.
func (d Document) Len() int {
	return len(d.data)
}

// IsEmpty reports whether the document has no keys.
func (d Document) IsEmpty() bool {
	return len(d.data) == 0
}

// Keys returns the top-level keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a shallow copy of the underlying mapping.
func (d Document) Map() map[string]any {
	out := make(map[string]any, len(d.data))
	for k, v := range d.data {
		out[k] = v
	}
	return out
}

// Get returns the value stored under a top-level key.
func (d Document) Get(key string) (any, bool) {
	v, ok := d.data[key]
	return v, ok
}

// Has reports whether a dotted path resolves to a value.
func (d Document) Has(path string) bool {
	_, ok := d.Lookup(path)
	return ok
}

// Lookup resolves a dotted path such as "model.params.epochs" through nested mappings.
// A key containing dots is still reachable when it exists verbatim at the current level.
func (d Document) Lookup(path string) (any, bool) {
	if v, ok := d.data[path]; ok {
		return v, true
	}
	var current any = d.data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Sub returns the nested mapping at path as a Document.
// It returns an empty document when path is missing or is not a mapping.
func (d Document) Sub(path string) Document {
	v, ok := d.Lookup(path)
	if !ok {
		return Document{data: map[string]any{}}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return Document{data: map[string]any{}}
	}
	return Document{data: m}
}

// String returns the string at path.
func (d Document) String(path string) (string, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int returns the integer at path. Floats without a fractional part are accepted.
func (d Document) Int(path string) (int, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// Float returns the number at path as a float64.
func (d Document) Float(path string) (float64, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// Bool returns the boolean at path.
func (d Document) Bool(path string) (bool, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Slice returns the sequence at path.
func (d Document) Slice(path string) ([]any, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// Strings returns the sequence at path when every element is a string.
func (d Document) Strings(path string) ([]string, bool) {
	items, ok := d.Slice(path)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Decode copies the document into target, which must be a pointer to a struct or map.
// Struct fields are matched through `mapstructure` tags, falling back to the field name.
func (d Document) Decode(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(d.data); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// MarshalJSON encodes the document as a JSON object.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.data == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.data)
}

// MarshalYAML encodes the document as a YAML mapping.
func (d Document) MarshalYAML() (any, error) {
	if d.data == nil {
		return map[string]any{}, nil
	}
	return d.data, nil
}
