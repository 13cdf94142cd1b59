// Package merge folds parsed env-file entries from one or more sources into a
// single set of typed values, recording where every value came from.
//
// Duplicate detection is scoped to a single source: a later file may always
// redefine a key set by an earlier one, but repeating a key inside the same
// file is reported (an error when strict, a warning otherwise).
package merge

import (
	"log/slog"
	"maps"
	"strconv"

	"github.com/0xalexb/hjarta-menv/cast"
	"github.com/0xalexb/hjarta-menv/envfile"
	"github.com/0xalexb/hjarta-menv/menverr"
	"github.com/0xalexb/hjarta-menv/schema"
)

// DefaultSource is the Origin file recorded for values taken from schema defaults.
const DefaultSource = "<default>"

// WarningDuplicate is the Warning type for a key repeated within one source.
const WarningDuplicate = "duplicate"

// Origin records the provenance of one final value.
type Origin struct {
	File string
	// Line is 0 for defaulted values.
	Line int
	Raw  string
	// HasRaw is false for defaulted values, which have no source text.
	HasRaw bool
}

// String renders the origin as file:line.
func (o Origin) String() string {
	return o.File + ":" + strconv.Itoa(o.Line)
}

// Warning is a non-fatal anomaly reported through Policy.OnWarning.
type Warning struct {
	Type string
	Key  string
	File string
	Line int
}

// Policy configures how entries are applied.
type Policy struct {
	// Schema is nil when no schema is declared.
	Schema schema.Schema
	Strict bool
	Rules  cast.Rules
	// OnWarning receives lenient-mode duplicates. May be nil.
	OnWarning func(Warning)
	// Debug logs every cross-file override to Logger.
	Debug  bool
	Logger *slog.Logger
}

// State accumulates values across sources. It is not safe for concurrent use.
type State struct {
	values      map[string]any
	origins     map[string]Origin
	seenPerFile map[string]map[string]struct{}
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		values:      make(map[string]any),
		origins:     make(map[string]Origin),
		seenPerFile: make(map[string]map[string]struct{}),
	}
}

// Apply folds one entry read from file into the state.
func (s *State) Apply(entry envfile.Entry, file string, policy Policy) error {
	key, line := entry.Key, entry.Line

	if policy.Schema != nil && policy.Strict && !policy.Schema.Has(key) {
		return menverr.UnknownKey(key, file, line)
	}

	seen := s.seenPerFile[file]
	if seen == nil {
		seen = make(map[string]struct{})
		s.seenPerFile[file] = seen
	}

	_, duplicate := seen[key]
	if duplicate {
		if policy.Strict {
			return menverr.DuplicateKey(key, file, line)
		}

		if policy.OnWarning != nil {
			policy.OnWarning(Warning{Type: WarningDuplicate, Key: key, File: file, Line: line})
		}
	}

	previous, overriding := s.origins[key]
	if policy.Debug && overriding && !duplicate {
		logger := policy.Logger
		if logger == nil {
			logger = slog.Default()
		}

		logger.Info("override",
			slog.String("key", key),
			slog.String("from", previous.String()),
			slog.String("to", file+":"+strconv.Itoa(line)),
		)
	}

	value, err := s.typedValue(entry, file, policy)
	if err != nil {
		return err
	}

	s.values[key] = value
	s.origins[key] = Origin{File: file, Line: line, Raw: entry.Raw, HasRaw: true}
	seen[key] = struct{}{}

	return nil
}

func (s *State) typedValue(entry envfile.Entry, file string, policy Policy) (any, error) {
	descriptor, declared := policy.Schema.Lookup(entry.Key)
	if declared && descriptor.Type != "" {
		return cast.Coerce(entry.Raw, descriptor.Type, file, entry.Line)
	}

	return cast.Auto(entry.Raw, policy.Rules), nil
}

// ApplyDefaults fills schema defaults for keys no source supplied and, when
// strict, fails on the first required key (in key order) left without a value.
func (s *State) ApplyDefaults(sch schema.Schema, strict bool) error {
	for _, key := range sch.Keys() {
		_, present := s.values[key]
		if present {
			continue
		}

		descriptor := sch[key]

		switch {
		case descriptor.HasDefault():
			s.values[key] = descriptor.Default
			s.origins[key] = Origin{File: DefaultSource}
		case strict && descriptor.Required:
			return menverr.MissingRequired(key)
		}
	}

	return nil
}

// Values returns the live value map. Callers copy it before handing it out.
func (s *State) Values() map[string]any {
	return s.values
}

// Origins returns a copy of the origin map.
func (s *State) Origins() map[string]Origin {
	return maps.Clone(s.origins)
}
