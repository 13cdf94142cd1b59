// Package toml decodes TOML documents for the config package.
//
// It is backed by github.com/BurntSushi/toml. Sections use the same colon
// syntax as the YAML parser ("menv:schema" selects [menv.schema]); each level
// is kept as a toml.Primitive and decoded lazily, so only the selected table
// is decoded into the target.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the requested section does not exist.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser for TOML documents.
type Parser struct{}

// NewParser creates a new TOML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data into target, starting at section when it is not empty.
func (p *Parser) Parse(data []byte, target any, section string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	if section == "" {
		_, err := toml.Decode(string(data), target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	var level map[string]toml.Primitive

	meta, err := toml.Decode(string(data), &level)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	parts := strings.Split(section, ":")

	for i, part := range parts {
		primitive, ok := level[part]
		if !ok {
			return fmt.Errorf("%w: %s", ErrPathNotFound, section)
		}

		if i == len(parts)-1 {
			err = meta.PrimitiveDecode(primitive, target)
			if err != nil {
				return fmt.Errorf("reading path %q: %w", section, err)
			}

			return nil
		}

		level = nil

		err = meta.PrimitiveDecode(primitive, &level)
		if err != nil {
			return fmt.Errorf("reading path %q: %w", section, err)
		}
	}

	return nil
}
