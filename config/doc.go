// Package config loads structured documents (YAML, JSON or TOML) through a
// small fetch → parse → default → validate pipeline.
//
// menv uses it for schema documents, which declare the expected keys of the
// env files:
//
//	# menv.yaml
//	menv:
//	  schema:
//	    PORT: number
//	    SERVICE_URL: {type: string, required: true}
//
// The pipeline has four extension points:
//   - Parser: decodes raw bytes into a target, optionally navigating to a section
//   - DataFetcher: supplies the raw bytes (see config/fetcher/file)
//   - Defaulter: fills in defaults after parsing
//   - Validator: rejects an invalid document after defaults
//
// # Sections
//
// Sections are colon-separated paths into the document:
//
//	"menv:schema"  -> doc["menv"]["schema"]
//	""             -> the whole document
//
// Each Parser navigates on its own; see config/parser/yaml and config/parser/toml.
package config
