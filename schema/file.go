package schema

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta-menv/config"
	filefetcher "github.com/0xalexb/hjarta-menv/config/fetcher/file"
	tomlparser "github.com/0xalexb/hjarta-menv/config/parser/toml"
	yamlparser "github.com/0xalexb/hjarta-menv/config/parser/yaml"
)

// ErrUnsupportedFormat is returned for schema documents whose extension is not
// .yaml, .yml, .json or .toml.
var ErrUnsupportedFormat = errors.New("unsupported schema document format")

// Document is a schema declaration as decoded from a file, before normalization.
type Document map[string]any

// Validate normalizes the document so malformed declarations fail while loading.
func (d *Document) Validate() error {
	_, err := Normalize(*d)

	return err
}

// LoadFile reads a schema document and normalizes it. section optionally
// selects a nested table, e.g. "menv:schema".
func LoadFile(path, section string) (Schema, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, fmt.Errorf("schema document: %w", err)
	}

	doc, err := config.Provider(&Document{}, section)(parser, fetcher)
	if err != nil {
		return nil, fmt.Errorf("schema document %q: %w", fetcher.Path(), err)
	}

	return Normalize(*doc)
}

//nolint:ireturn // the parser is chosen by extension
func parserFor(path string) (config.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return yamlparser.NewParser(), nil
	case ".toml":
		return tomlparser.NewParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}
