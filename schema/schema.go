// Package schema declares per-key expectations for env-file values: the type
// to coerce to, a default used when no file supplies the key, and whether the
// key is required.
package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/0xalexb/hjarta-menv/cast"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDescriptor is returned when a schema declaration cannot be normalized.
var ErrInvalidDescriptor = errors.New("invalid schema descriptor")

//nolint:gochecknoglobals // validator caches struct metadata; one instance is shared
var validate = validator.New(validator.WithRequiredStructEnabled())

// Descriptor is the canonical declaration for one key.
type Descriptor struct {
	// Type selects explicit coercion. Empty means the value is auto-cast.
	Type cast.Type `validate:"omitempty,oneof=string boolean number json date"`
	// Default is used when no source supplies the key. A nil Default means
	// "no default" unless NullDefault is set; false, 0 and "" are real defaults.
	Default any
	// NullDefault declares an explicit null default, as written by
	// `default: null` in a schema document.
	NullDefault bool
	Required    bool
}

// HasDefault reports whether a default is declared.
func (d Descriptor) HasDefault() bool {
	return d.Default != nil || d.NullDefault
}

// Schema maps key names to descriptors. A nil Schema means no schema at all.
type Schema map[string]Descriptor

// Lookup returns the descriptor for key.
func (s Schema) Lookup(key string) (Descriptor, bool) {
	d, ok := s[key]

	return d, ok
}

// Has reports whether key is declared.
func (s Schema) Has(key string) bool {
	_, ok := s[key]

	return ok
}

// Keys returns the declared keys in sorted order.
func (s Schema) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Validate checks every descriptor.
func (s Schema) Validate() error {
	for _, key := range s.Keys() {
		err := validate.Struct(s[key])
		if err != nil {
			return fmt.Errorf("%w: key %q: %w", ErrInvalidDescriptor, key, err)
		}
	}

	return nil
}

// Normalize converts a loosely typed declaration into a Schema. Each value
// may be a bare type name, a cast.Type, a Descriptor, a *Descriptor, or a
// map with "type", "default" and "required" entries. A nil declaration
// yields a nil Schema.
func Normalize(raw map[string]any) (Schema, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // nil schema is the "no schema" sentinel
	}

	normalized := make(Schema, len(raw))

	for key, def := range raw {
		var (
			descriptor Descriptor
			err        error
		)

		switch typed := def.(type) {
		case nil:
			continue
		case string:
			descriptor = Descriptor{Type: cast.Type(typed)}
		case cast.Type:
			descriptor = Descriptor{Type: typed}
		case Descriptor:
			descriptor = typed
		case *Descriptor:
			if typed == nil {
				continue
			}

			descriptor = *typed
		case map[string]any:
			descriptor, err = fromMap(typed)
		default:
			err = fmt.Errorf("unsupported declaration of type %T", def)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %w", ErrInvalidDescriptor, key, err)
		}

		normalized[key] = descriptor
	}

	err := normalized.Validate()
	if err != nil {
		return nil, err
	}

	return normalized, nil
}

func fromMap(fields map[string]any) (Descriptor, error) {
	var descriptor Descriptor

	for name, value := range fields {
		switch name {
		case "type":
			typeName, ok := value.(string)
			if !ok {
				return Descriptor{}, fmt.Errorf("type must be a string, got %T", value)
			}

			descriptor.Type = cast.Type(typeName)
		case "default":
			descriptor.Default = widenNumber(value)
			descriptor.NullDefault = value == nil
		case "required":
			required, ok := value.(bool)
			if !ok {
				return Descriptor{}, fmt.Errorf("required must be a boolean, got %T", value)
			}

			descriptor.Required = required
		default:
			return Descriptor{}, fmt.Errorf("unknown field %q", name)
		}
	}

	return descriptor, nil
}

// widenNumber maps the integer types decoders produce onto float64, the
// representation used for every number value.
func widenNumber(value any) any {
	switch typed := value.(type) {
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case uint64:
		return float64(typed)
	case int32:
		return float64(typed)
	case uint32:
		return float64(typed)
	case float32:
		return float64(typed)
	default:
		return value
	}
}
