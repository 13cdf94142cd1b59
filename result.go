package menv

import (
	"maps"
	"reflect"
	"slices"
	"time"

	"github.com/0xalexb/hjarta-menv/cast"
	"github.com/0xalexb/hjarta-menv/merge"
)

// Origin records which file and line produced a value.
type Origin = merge.Origin

// DefaultSource is the Origin file of values taken from schema defaults.
const DefaultSource = merge.DefaultSource

// InlineSource is the Origin file of values from Parse when no source name is set.
const InlineSource = "<inline>"

// Result is the outcome of a successful load.
type Result struct {
	Parsed  Values
	Origins map[string]Origin
	// Files lists the files that were read, in precedence order.
	Files []string
}

// Environ renders every value as env text.
func (r *Result) Environ() map[string]string {
	environ := make(map[string]string, r.Parsed.Len())

	for key, value := range r.Parsed.data {
		environ[key] = cast.Format(value)
	}

	return environ
}

// Values is a read-only view over the loaded values. When frozen, every
// accessor returns a deep copy so the stored values can not be changed.
type Values struct {
	data   map[string]any
	frozen bool
}

func newValues(data map[string]any, frozen bool) Values {
	if frozen {
		data = cloneMap(data)
	}

	return Values{data: data, frozen: frozen}
}

// Frozen reports whether accessors hand out copies.
func (v Values) Frozen() bool {
	return v.frozen
}

// Len returns the number of keys.
func (v Values) Len() int {
	return len(v.data)
}

// Has reports whether key is set.
func (v Values) Has(key string) bool {
	_, ok := v.data[key]

	return ok
}

// Keys returns the keys in sorted order.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v.data))
}

// Get returns the value for key.
func (v Values) Get(key string) (any, bool) {
	value, ok := v.data[key]
	if !ok {
		return nil, false
	}

	if v.frozen {
		return cloneValue(value), true
	}

	return value, true
}

// Map returns all values. Unfrozen values are returned as the live map.
func (v Values) Map() map[string]any {
	if v.frozen {
		return cloneMap(v.data)
	}

	return v.data
}

// String returns the value for key if it is a string.
func (v Values) String(key string) (string, bool) {
	value, ok := v.data[key].(string)

	return value, ok
}

// Bool returns the value for key if it is a boolean.
func (v Values) Bool(key string) (bool, bool) {
	value, ok := v.data[key].(bool)

	return value, ok
}

// Float returns the value for key if it is a number.
func (v Values) Float(key string) (float64, bool) {
	value, ok := v.data[key].(float64)

	return value, ok
}

// Time returns the value for key if it is a date.
func (v Values) Time(key string) (time.Time, bool) {
	value, ok := v.data[key].(time.Time)

	return value, ok
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = cloneValue(value)
	}

	return dst
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case nil, string, bool, float64, time.Time:
		return value
	case map[string]any:
		return cloneMap(typed)
	case []any:
		cloned := make([]any, len(typed))
		for i, item := range typed {
			cloned[i] = cloneValue(item)
		}

		return cloned
	default:
		return cloneReflect(reflect.ValueOf(value)).Interface()
	}
}

// cloneReflect deep-copies slices, arrays and maps of any element type, such
// as schema defaults declared as []string or map[string]int. Pointers are
// shared.
func cloneReflect(value reflect.Value) reflect.Value {
	switch value.Kind() {
	case reflect.Slice:
		if value.IsNil() {
			return value
		}

		cloned := reflect.MakeSlice(value.Type(), value.Len(), value.Len())
		for i := range value.Len() {
			cloned.Index(i).Set(cloneReflect(value.Index(i)))
		}

		return cloned
	case reflect.Array:
		cloned := reflect.New(value.Type()).Elem()
		for i := range value.Len() {
			cloned.Index(i).Set(cloneReflect(value.Index(i)))
		}

		return cloned
	case reflect.Map:
		if value.IsNil() {
			return value
		}

		cloned := reflect.MakeMapWithSize(value.Type(), value.Len())

		iter := value.MapRange()
		for iter.Next() {
			cloned.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}

		return cloned
	case reflect.Interface:
		if value.IsNil() {
			return value
		}

		cloned := reflect.New(value.Type()).Elem()
		cloned.Set(cloneReflect(value.Elem()))

		return cloned
	default:
		return value
	}
}
