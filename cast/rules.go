package cast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownRule is returned when a rule name is not one of boolean, number, json or date.
var ErrUnknownRule = errors.New("unknown cast rule")

// Rules toggles the individual Auto heuristics.
type Rules struct {
	Boolean bool
	Number  bool
	JSON    bool
	Date    bool
}

// All enables every heuristic. It is the default.
func All() Rules {
	return Rules{Boolean: true, Number: true, JSON: true, Date: true}
}

// None disables every heuristic, so Auto returns trimmed strings only.
func None() Rules {
	return Rules{}
}

// Enabled returns All when on is true and None otherwise.
func Enabled(on bool) Rules {
	if on {
		return All()
	}

	return None()
}

// RulesFromMap builds Rules from a partial record. Rules missing from the map stay enabled.
func RulesFromMap(toggles map[string]bool) (Rules, error) {
	rules := All()

	for name, on := range toggles {
		switch strings.ToLower(name) {
		case "boolean":
			rules.Boolean = on
		case "number":
			rules.Number = on
		case "json":
			rules.JSON = on
		case "date":
			rules.Date = on
		default:
			return Rules{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
	}

	return rules, nil
}

// ParseRules reads the textual form used on the command line:
// "true", "false", or a comma-separated list such as "date=false,json=false".
func ParseRules(text string) (Rules, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return All(), nil
	}

	on, err := strconv.ParseBool(text)
	if err == nil {
		return Enabled(on), nil
	}

	toggles := make(map[string]bool)

	for part := range strings.SplitSeq(text, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return Rules{}, fmt.Errorf("%w: %q is not name=bool", ErrUnknownRule, part)
		}

		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return Rules{}, fmt.Errorf("cast rule %q: %w", name, err)
		}

		toggles[strings.TrimSpace(name)] = enabled
	}

	return RulesFromMap(toggles)
}
