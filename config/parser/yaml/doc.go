// Package yaml decodes YAML and JSON documents for the config package.
//
// It is backed by github.com/goccy/go-yaml. JSON is accepted as-is because
// it is a subset of YAML, so schema documents may be written in either form.
// Colon-separated sections are translated to goccy/go-yaml path syntax:
//
//	""              -> whole document
//	"schema"        -> $.schema
//	"menv:schema"   -> $.menv.schema
package yaml
