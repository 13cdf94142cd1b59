package cast

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/0xalexb/hjarta-menv/menverr"
)

// Type is a schema-declared value type.
type Type string

// Declarable types. The zero Type means "not declared".
const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeJSON    Type = "json"
	TypeDate    Type = "date"
)

// Valid reports whether t is one of the declarable types.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeBoolean, TypeNumber, TypeJSON, TypeDate:
		return true
	default:
		return false
	}
}

//nolint:gochecknoglobals // compiled once
var (
	numberPattern  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:[T\s].*)?$`)
)

// Coerce converts raw to the declared type. file and line only feed error messages.
func Coerce(raw string, typ Type, file string, line int) (any, error) {
	switch typ {
	case TypeBoolean:
		value, ok := parseBool(raw)
		if !ok {
			return nil, menverr.InvalidType(string(typ), raw, file, line, nil)
		}

		return value, nil
	case TypeNumber:
		value, ok := parseNumber(raw)
		if !ok {
			return nil, menverr.InvalidType(string(typ), raw, file, line, nil)
		}

		return value, nil
	case TypeJSON:
		var value any

		err := json.Unmarshal([]byte(raw), &value)
		if err != nil {
			return nil, menverr.InvalidType(string(typ), raw, file, line, err)
		}

		return value, nil
	case TypeDate:
		value, ok := ParseDate(raw)
		if !ok {
			return nil, menverr.InvalidType(string(typ), raw, file, line, nil)
		}

		return value, nil
	default:
		return raw, nil
	}
}

// Auto infers a typed value from raw using the enabled rules.
// Malformed JSON-looking text and impossible dates fall back to the trimmed string.
func Auto(raw string, rules Rules) any {
	trimmed := strings.TrimSpace(raw)

	if rules.Boolean {
		value, ok := parseBool(trimmed)
		if ok {
			return value
		}
	}

	if rules.Number {
		value, ok := parseNumber(trimmed)
		if ok {
			return value
		}
	}

	if rules.JSON && (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) {
		var value any

		err := json.Unmarshal([]byte(trimmed), &value)
		if err != nil {
			return trimmed
		}

		return value
	}

	if rules.Date && isoDatePattern.MatchString(trimmed) {
		value, ok := ParseDate(trimmed)
		if ok {
			return value
		}
	}

	return trimmed
}

func parseBool(raw string) (bool, bool) {
	switch {
	case strings.EqualFold(raw, "true"):
		return true, true
	case strings.EqualFold(raw, "false"):
		return false, true
	default:
		return false, false
	}
}

func parseNumber(raw string) (float64, bool) {
	if !numberPattern.MatchString(raw) {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Only overflow can get here; the pattern guarantees the syntax.
		return 0, false
	}

	return value, true
}

//nolint:gochecknoglobals // read-only layout table
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		time.RFC1123Z,
		time.RFC1123,
		time.RFC850,
		time.UnixDate,
		time.RubyDate,
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		time.DateTime,
		"2006-01-02 15:04",
		time.ANSIC,
	}
	dateOnlyLayouts = []string{
		time.DateOnly,
		"2006/01/02",
		"01/02/2006",
		"Jan 2, 2006",
		"January 2, 2006",
	}
)

// ParseDate parses the date and date-time forms accepted for the date type.
// Date-only values are UTC midnight; date-times without a zone are local time.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)

	for _, layout := range zonedLayouts {
		value, err := time.Parse(layout, raw)
		if err == nil {
			return value, true
		}
	}

	for _, layout := range localLayouts {
		value, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return value, true
		}
	}

	for _, layout := range dateOnlyLayouts {
		value, err := time.Parse(layout, raw)
		if err == nil {
			return value, true
		}
	}

	return time.Time{}, false
}
