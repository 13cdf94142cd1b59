package merge

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/0xalexb/hjarta-menv/cast"
	"github.com/0xalexb/hjarta-menv/envfile"
	"github.com/0xalexb/hjarta-menv/menverr"
	"github.com/0xalexb/hjarta-menv/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(key, raw string, line int) envfile.Entry {
	return envfile.Entry{Key: key, Raw: raw, Line: line}
}

func TestApply_RecordsValueAndOrigin(t *testing.T) {
	t.Parallel()

	state := NewState()

	err := state.Apply(entry("PORT", "3000", 4), "/app/.menv", Policy{Rules: cast.All()})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"PORT": float64(3000)}, state.Values())
	assert.Equal(t, Origin{File: "/app/.menv", Line: 4, Raw: "3000", HasRaw: true}, state.Origins()["PORT"])
}

func TestApply_LaterFileOverridesWithoutDuplicate(t *testing.T) {
	t.Parallel()

	state := NewState()
	policy := Policy{Strict: true, Rules: cast.All()}

	require.NoError(t, state.Apply(entry("PORT", "3000", 1), "/app/.menv", policy))
	require.NoError(t, state.Apply(entry("PORT", "9000", 1), "/app/.menv.prod", policy))

	assert.Equal(t, float64(9000), state.Values()["PORT"])
	assert.Equal(t, "/app/.menv.prod", state.Origins()["PORT"].File)
}

func TestApply_DuplicateWithinFile(t *testing.T) {
	t.Parallel()

	t.Run("strict fails", func(t *testing.T) {
		t.Parallel()

		state := NewState()
		policy := Policy{Strict: true, Rules: cast.All()}

		require.NoError(t, state.Apply(entry("PORT", "3000", 1), ".menv", policy))

		err := state.Apply(entry("PORT", "3001", 2), ".menv", policy)
		require.ErrorIs(t, err, menverr.ErrDuplicateKey)
		assert.Equal(t, "duplicate key: PORT (.menv:2)", err.Error())
	})

	t.Run("lenient warns and last wins", func(t *testing.T) {
		t.Parallel()

		var warnings []Warning

		state := NewState()
		policy := Policy{
			Rules:     cast.All(),
			OnWarning: func(w Warning) { warnings = append(warnings, w) },
		}

		require.NoError(t, state.Apply(entry("PORT", "3000", 1), ".menv", policy))
		require.NoError(t, state.Apply(entry("PORT", "3001", 2), ".menv", policy))

		assert.Equal(t, float64(3001), state.Values()["PORT"])
		assert.Equal(t, []Warning{{Type: WarningDuplicate, Key: "PORT", File: ".menv", Line: 2}}, warnings)
	})

	t.Run("lenient without callback", func(t *testing.T) {
		t.Parallel()

		state := NewState()
		policy := Policy{Rules: cast.All()}

		require.NoError(t, state.Apply(entry("PORT", "1", 1), ".menv", policy))
		require.NoError(t, state.Apply(entry("PORT", "2", 2), ".menv", policy))
		assert.Equal(t, float64(2), state.Values()["PORT"])
	})
}

func TestApply_UnknownKey(t *testing.T) {
	t.Parallel()

	sch := schema.Schema{"PORT": {Type: cast.TypeNumber}}

	t.Run("strict with schema fails", func(t *testing.T) {
		t.Parallel()

		err := NewState().Apply(entry("EXTRA", "1", 2), ".menv", Policy{Schema: sch, Strict: true, Rules: cast.All()})
		require.ErrorIs(t, err, menverr.ErrUnknownKey)
		assert.Equal(t, "unknown key: EXTRA (.menv:2)", err.Error())
	})

	t.Run("lenient auto-casts", func(t *testing.T) {
		t.Parallel()

		state := NewState()

		err := state.Apply(entry("EXTRA", "1", 2), ".menv", Policy{Schema: sch, Rules: cast.All()})
		require.NoError(t, err)
		assert.Equal(t, float64(1), state.Values()["EXTRA"])
	})

	t.Run("strict without schema accepts", func(t *testing.T) {
		t.Parallel()

		err := NewState().Apply(entry("EXTRA", "1", 2), ".menv", Policy{Strict: true, Rules: cast.All()})
		require.NoError(t, err)
	})
}

func TestApply_SchemaTypeBeatsAutoCast(t *testing.T) {
	t.Parallel()

	sch := schema.Schema{
		"VERSION": {Type: cast.TypeString},
		"LOOSE":   {Required: true},
	}
	state := NewState()
	policy := Policy{Schema: sch, Strict: true, Rules: cast.All()}

	require.NoError(t, state.Apply(entry("VERSION", "1.0", 1), ".menv", policy))
	require.NoError(t, state.Apply(entry("LOOSE", "1.0", 2), ".menv", policy))

	assert.Equal(t, "1.0", state.Values()["VERSION"])
	assert.Equal(t, 1.0, state.Values()["LOOSE"], "descriptor without type falls back to auto-cast")
}

func TestApply_InvalidTypeRegardlessOfStrict(t *testing.T) {
	t.Parallel()

	sch := schema.Schema{"META": {Type: cast.TypeJSON}}

	for _, strict := range []bool{true, false} {
		state := NewState()

		err := state.Apply(entry("META", "{broken", 1), ".menv", Policy{Schema: sch, Strict: strict, Rules: cast.All()})
		require.ErrorIs(t, err, menverr.ErrInvalidType)
		assert.Empty(t, state.Values())
	}
}

func TestApply_DebugLogsCrossFileOverride(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	state := NewState()
	policy := Policy{Rules: cast.All(), Debug: true, Logger: logger}

	require.NoError(t, state.Apply(entry("PORT", "3000", 1), "/app/.menv", policy))
	assert.Empty(t, buf.String(), "first assignment is not an override")

	require.NoError(t, state.Apply(entry("PORT", "9000", 3), "/app/.menv.local", policy))

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "override", record["msg"])
	assert.Equal(t, "PORT", record["key"])
	assert.Equal(t, "/app/.menv:1", record["from"])
	assert.Equal(t, "/app/.menv.local:3", record["to"])
}

func TestApply_NoDebugNoLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	state := NewState()
	policy := Policy{Rules: cast.All(), Logger: logger}

	require.NoError(t, state.Apply(entry("PORT", "3000", 1), "a", policy))
	require.NoError(t, state.Apply(entry("PORT", "9000", 1), "b", policy))

	assert.Empty(t, buf.String())
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	sch := schema.Schema{
		"NAME":  {Type: cast.TypeString, Default: "app"},
		"FLAG":  {Type: cast.TypeBoolean, Default: false},
		"PORT":  {Type: cast.TypeNumber, Default: float64(3000)},
		"URL":   {Type: cast.TypeString, Required: true},
		"EXTRA": {Type: cast.TypeString},
	}

	t.Run("defaults fill absent keys only", func(t *testing.T) {
		t.Parallel()

		state := NewState()
		require.NoError(t, state.Apply(entry("PORT", "8080", 1), ".menv", Policy{Schema: sch, Rules: cast.All()}))

		err := state.ApplyDefaults(sch, false)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"NAME": "app",
			"FLAG": false,
			"PORT": float64(8080),
		}, state.Values())
		assert.Equal(t, Origin{File: DefaultSource}, state.Origins()["NAME"])
		assert.Equal(t, ".menv", state.Origins()["PORT"].File)
		assert.NotContains(t, state.Values(), "URL", "lenient mode leaves missing required keys absent")
	})

	t.Run("strict fails on missing required", func(t *testing.T) {
		t.Parallel()

		err := NewState().ApplyDefaults(sch, true)
		require.ErrorIs(t, err, menverr.ErrMissingRequired)
		assert.Equal(t, "missing required key: URL", err.Error())
	})

	t.Run("required with default is satisfied", func(t *testing.T) {
		t.Parallel()

		state := NewState()
		withDefault := schema.Schema{"URL": {Type: cast.TypeString, Required: true, Default: "http://localhost"}}

		require.NoError(t, state.ApplyDefaults(withDefault, true))
		assert.Equal(t, "http://localhost", state.Values()["URL"])
	})

	t.Run("nil schema is a no-op", func(t *testing.T) {
		t.Parallel()

		state := NewState()
		require.NoError(t, state.ApplyDefaults(nil, true))
		assert.Empty(t, state.Values())
	})
}

func TestOrigins_ReturnsCopy(t *testing.T) {
	t.Parallel()

	state := NewState()
	require.NoError(t, state.Apply(entry("A", "1", 1), "f", Policy{Rules: cast.All()}))

	origins := state.Origins()
	origins["A"] = Origin{File: "tampered"}

	assert.Equal(t, "f", state.Origins()["A"].File)
}

func TestOrigin_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/app/.menv:3", Origin{File: "/app/.menv", Line: 3}.String())
	assert.Equal(t, "<default>:0", Origin{File: DefaultSource}.String())
}
