package config

import (
	"fmt"
	"log/slog"
)

// Parser decodes document bytes into target.
//
// section is a colon-separated path to the part of the document to decode
// (for example "menv:schema"); an empty section decodes the whole document.
type Parser interface {
	Parse(data []byte, target any, section string) error
}

// DataFetcher supplies raw document bytes.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator is implemented by documents that can check themselves.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by documents that fill in their own defaults.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that fetches, parses, defaults and validates
// a document into target.
func Provider[T any](target *T, section string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = parser.Parse(data, target, section)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		defaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter && defaulter.SetDefaults() {
			slog.Debug("document defaults applied", slog.String("section", section))
		}

		validatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := validatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
