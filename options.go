package menv

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/0xalexb/hjarta-menv/cast"
	"github.com/0xalexb/hjarta-menv/merge"
	"github.com/0xalexb/hjarta-menv/schema"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Warning is a non-fatal anomaly reported in lenient mode.
type Warning = merge.Warning

// Options holds the settings of a load. Use the With* functions to set them.
type Options struct {
	// CWD anchors relative file paths. Empty means the process working directory.
	CWD string
	// Files replaces the default candidates when non-empty.
	Files   []string `validate:"dive,required"`
	Profile string   `validate:"excludesall=/\\"`

	Schema    schema.Schema
	schemaRaw map[string]any
	Strict    bool
	Rules     cast.Rules
	OnWarning func(Warning)
	Debug     bool
	Freeze    bool

	// SourceName is the origin file recorded by Parse.
	SourceName string

	Env      Environment
	Override bool
	Attacher Attacher

	Logger       *slog.Logger
	Debounce     time.Duration `validate:"gte=0"`
	WatchMissing bool
}

// Option defines a function type for applying load options.
type Option func(*Options)

func newOptions(opts []Option) Options {
	options := Options{
		Rules:        cast.All(),
		Freeze:       true,
		WatchMissing: true,
	}

	for _, apply := range opts {
		apply(&options)
	}

	return options
}

func (o *Options) validate() error {
	err := validate.Struct(o)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	return nil
}

// schema returns the declared schema, normalizing a raw one when given.
func (o *Options) schema() (schema.Schema, error) {
	if o.schemaRaw != nil {
		normalized, err := schema.Normalize(o.schemaRaw)
		if err != nil {
			return nil, err
		}

		return normalized, nil
	}

	if o.Schema == nil {
		return nil, nil //nolint:nilnil // a nil schema means none was declared.
	}

	err := o.Schema.Validate()
	if err != nil {
		return nil, err
	}

	return o.Schema, nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}

func (o *Options) policy(sch schema.Schema) merge.Policy {
	return merge.Policy{
		Schema:    sch,
		Strict:    o.Strict,
		Rules:     o.Rules,
		OnWarning: o.OnWarning,
		Debug:     o.Debug,
		Logger:    o.logger(),
	}
}

// WithCWD sets the directory the default files and relative paths are resolved against.
func WithCWD(dir string) Option {
	return func(opts *Options) {
		opts.CWD = dir
	}
}

// WithFiles replaces the default candidates with an explicit, ordered list.
// Later files take precedence.
func WithFiles(files ...string) Option {
	return func(opts *Options) {
		opts.Files = append(opts.Files, files...)
	}
}

// WithProfile adds .menv.<profile> and .menv.<profile>.local to the default candidates.
func WithProfile(profile string) Option {
	return func(opts *Options) {
		opts.Profile = profile
	}
}

// WithSchema declares the expected keys.
func WithSchema(sch schema.Schema) Option {
	return func(opts *Options) {
		opts.Schema = sch
		opts.schemaRaw = nil
	}
}

// WithSchemaMap declares the expected keys in shorthand form, as accepted by
// schema.Normalize. Normalization errors are returned by the load.
func WithSchemaMap(raw map[string]any) Option {
	return func(opts *Options) {
		opts.schemaRaw = raw
		opts.Schema = nil
	}
}

// WithStrict turns unknown keys, duplicates, invalid lines and missing
// required keys into errors.
func WithStrict(strict bool) Option {
	return func(opts *Options) {
		opts.Strict = strict
	}
}

// WithCast enables or disables every auto-cast rule.
func WithCast(enabled bool) Option {
	return func(opts *Options) {
		opts.Rules = cast.Enabled(enabled)
	}
}

// WithCastRules sets the auto-cast rules individually.
func WithCastRules(rules cast.Rules) Option {
	return func(opts *Options) {
		opts.Rules = rules
	}
}

// WithOnWarning sets the callback for lenient-mode warnings.
func WithOnWarning(fn func(Warning)) Option {
	return func(opts *Options) {
		opts.OnWarning = fn
	}
}

// WithDebug logs every value overridden by a later file.
func WithDebug(debug bool) Option {
	return func(opts *Options) {
		opts.Debug = debug
	}
}

// WithFreeze controls whether Result.Parsed hands out copies. Enabled by default.
func WithFreeze(freeze bool) Option {
	return func(opts *Options) {
		opts.Freeze = freeze
	}
}

// WithSourceName sets the origin file name used by Parse.
func WithSourceName(name string) Option {
	return func(opts *Options) {
		opts.SourceName = name
	}
}

// WithExport writes the loaded values into env after a successful Load.
func WithExport(env Environment) Option {
	return func(opts *Options) {
		opts.Env = env
	}
}

// WithOverride lets export replace variables that are already set.
func WithOverride(override bool) Option {
	return func(opts *Options) {
		opts.Override = override
	}
}

// WithAttach hands every successful Load result to attacher.
func WithAttach(attacher Attacher) Option {
	return func(opts *Options) {
		opts.Attacher = attacher
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithDebounce sets the delay Watch waits for changes to settle.
func WithDebounce(delay time.Duration) Option {
	return func(opts *Options) {
		opts.Debounce = delay
	}
}

// WithWatchMissing controls whether Watch notices candidates that do not exist yet.
// Enabled by default.
func WithWatchMissing(watchMissing bool) Option {
	return func(opts *Options) {
		opts.WatchMissing = watchMissing
	}
}
