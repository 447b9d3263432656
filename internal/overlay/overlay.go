// Package overlay fills gaps in loosely-typed JSON values from a canonical
// default value without discarding anything already present.
package overlay

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Fill returns value with every map key that is missing (or null) filled
// from the same key of defaults, recursing into nested maps. Present keys
// win, including explicit empty strings, false and zero. Slices and scalars
// are taken whole from whichever side supplies them; they are never merged
// element-wise. Neither argument is modified.
func Fill(value, defaults any) any {
	if value == nil {
		return Clone(defaults)
	}

	strong, ok := value.(map[string]any)
	if !ok {
		return Clone(value)
	}
	weak, ok := defaults.(map[string]any)
	if !ok {
		return Clone(value)
	}

	result := make(map[string]any, len(strong)+len(weak))
	for key, weakValue := range weak {
		result[key] = Fill(strong[key], weakValue)
	}
	for key, strongValue := range strong {
		if _, done := result[key]; done {
			continue
		}
		result[key] = Clone(strongValue)
	}
	return result
}

// FillEach applies Fill to every map element of items, taking each element's
// defaults from template. Non-map elements are kept as they are.
func FillEach(items []any, template func(item map[string]any) map[string]any) []any {
	if items == nil {
		return nil
	}
	out := make([]any, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			out[i] = Clone(item)
			continue
		}
		out[i] = Fill(m, template(m))
	}
	return out
}

// Clone deep-copies a JSON-shaped value
func Clone(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Clone(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Clone(item)
		}
		return out
	default:
		return v
	}
}

// ToMap converts a JSON-encodable value into its generic map form
func ToMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode value as object: %w", err)
	}
	return m, nil
}

// Decode converts a generic JSON value into dst
func Decode(value any, dst any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	return nil
}

// Conform returns a copy of value with every part that would not decode
// into the type of prototype removed: mistyped object keys are deleted and
// mistyped list elements dropped, so that Fill can supply defaults for
// exactly those parts. Keys the type does not declare are kept.
func Conform(value any, prototype any) any {
	out, _ := conform(value, reflect.TypeOf(prototype))
	return out
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// conform reports false when value cannot decode into t at all
func conform(value any, t reflect.Type) (any, bool) {
	if value == nil || t == nil {
		return value, true
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return value, decodes(value, t)
	}

	switch t.Kind() {
	case reflect.Struct:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		fields := jsonFields(t)
		out := make(map[string]any, len(m))
		for key, item := range m {
			fieldType, known := fields[key]
			if !known {
				out[key] = Clone(item)
				continue
			}
			if fixed, ok := conform(item, fieldType); ok {
				out[key] = fixed
			}
		}
		return out, true
	case reflect.Slice:
		items, ok := value.([]any)
		if !ok {
			return nil, false
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			if fixed, ok := conform(item, t.Elem()); ok {
				out = append(out, fixed)
			}
		}
		return out, true
	case reflect.Map:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		out := make(map[string]any, len(m))
		for key, item := range m {
			if fixed, ok := conform(item, t.Elem()); ok {
				out[key] = fixed
			}
		}
		return out, true
	}
	return value, decodes(value, t)
}

// decodes reports whether value round-trips into a fresh t
func decodes(value any, t reflect.Type) bool {
	data, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, reflect.New(t).Interface()) == nil
}

// jsonFields maps the JSON names of t's exported fields to their types
func jsonFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = f.Type
	}
	return fields
}

// Slice returns the []any stored under key, or nil when absent or not a list
func Slice(m map[string]any, key string) []any {
	items, _ := m[key].([]any)
	return items
}

// String returns the string stored under key, or "" when absent or not a string
func String(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
