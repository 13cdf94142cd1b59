package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the requested section does not exist.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser for YAML and JSON documents.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data into target, starting at section when it is not empty.
func (p *Parser) Parse(data []byte, target any, section string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	if section == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(toYAMLPath(section))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", section, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, section)
		}

		return fmt.Errorf("reading path %q: %w", section, err)
	}

	return nil
}

// toYAMLPath converts "menv:schema" into "$.menv.schema".
func toYAMLPath(section string) string {
	return "$." + strings.Join(strings.Split(section, ":"), ".")
}
