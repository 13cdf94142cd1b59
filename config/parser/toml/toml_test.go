package toml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_WholeDocument(t *testing.T) {
	t.Parallel()

	data := []byte(`
PORT = "number"

[SERVICE_URL]
type = "string"
required = true
`)

	var result map[string]any

	err := NewParser().Parse(data, &result, "")

	require.NoError(t, err)
	assert.Equal(t, "number", result["PORT"])
	assert.Equal(t, map[string]any{"type": "string", "required": true}, result["SERVICE_URL"])
}

func TestParser_Parse_NestedSection(t *testing.T) {
	t.Parallel()

	data := []byte(`
[menv.schema]
DEBUG = "boolean"

[menv.schema.PORT]
type = "number"
default = 3000

[other]
ignored = true
`)

	var result map[string]any

	err := NewParser().Parse(data, &result, "menv:schema")

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, "boolean", result["DEBUG"])
	assert.Equal(t, map[string]any{"type": "number", "default": int64(3000)}, result["PORT"])
}

func TestParser_Parse_IntoStruct(t *testing.T) {
	t.Parallel()

	data := []byte(`
[watch]
debounce = "50ms"
missing = false
`)

	var result struct {
		Debounce string `toml:"debounce"`
		Missing  bool   `toml:"missing"`
	}

	err := NewParser().Parse(data, &result, "watch")

	require.NoError(t, err)
	assert.Equal(t, "50ms", result.Debounce)
	assert.False(t, result.Missing)
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		data    string
		section string
		wantErr error
	}{
		{"empty data", "", "", ErrEmptyData},
		{"missing top level section", "[menv]\nx = 1\n", "nope", ErrPathNotFound},
		{"missing nested section", "[menv.schema]\nx = \"string\"\n", "menv:nope", ErrPathNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var result map[string]any

			err := NewParser().Parse([]byte(testCase.data), &result, testCase.section)

			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestParser_Parse_ScalarIntermediate(t *testing.T) {
	t.Parallel()

	var result map[string]any

	err := NewParser().Parse([]byte(`menv = "flat"`), &result, "menv:schema")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading path")
}

func TestParser_Parse_Malformed(t *testing.T) {
	t.Parallel()

	var result map[string]any

	err := NewParser().Parse([]byte("[unclosed"), &result, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal error")
}
