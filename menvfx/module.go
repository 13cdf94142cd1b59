package menvfx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	menv "github.com/0xalexb/hjarta-menv"
	"github.com/0xalexb/hjarta-menv/watch"

	"go.uber.org/fx"
)

// ErrEmptyName is returned when the module name is empty.
var ErrEmptyName = errors.New("module name must not be empty")

// Config holds the settings of one module.
type Config struct {
	LoadOptions []menv.Option
	// Watch reloads the result while the application runs.
	Watch    bool
	OnChange func(*menv.Result, error)
}

// Option defines a function type for configuring a module.
type Option func(*Config)

// WithLoadOptions adds options passed to every menv.Load.
func WithLoadOptions(opts ...menv.Option) Option {
	return func(cfg *Config) {
		cfg.LoadOptions = append(cfg.LoadOptions, opts...)
	}
}

// WithWatch loads once at construction, then reloads on file changes between
// start and stop. Every successful load is attached to the module's Holder. onChange, when not nil,
// receives every reload outcome.
func WithWatch(onChange func(*menv.Result, error)) Option {
	return func(cfg *Config) {
		cfg.Watch = true
		cfg.OnChange = onChange
	}
}

// NewModule creates an Fx module that loads env files once at construction.
// The name is used as both the module name and the DI named tag for the
// provided *menv.Result and *menv.Holder. A *slog.Logger in the container is
// used when present.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var cfg Config

	for _, apply := range opts {
		apply(&cfg)
	}

	tag := fmt.Sprintf(`name:"%s"`, name)

	moduleOpts := []fx.Option{
		fx.Provide(
			fx.Annotate(
				func() *menv.Holder { return &menv.Holder{} },
				fx.ResultTags(tag),
			),
		),
		fx.Provide(
			fx.Annotate(
				func(holder *menv.Holder, logger *slog.Logger) (*menv.Result, error) {
					res, err := menv.Load(cfg.options(holder, logger)...)
					if err != nil {
						return nil, fmt.Errorf("loading %s env: %w", name, err)
					}

					return res, nil
				},
				fx.ParamTags(tag, `optional:"true"`),
				fx.ResultTags(tag),
			),
		),
	}

	if cfg.Watch {
		moduleOpts = append(moduleOpts, fx.Invoke(
			fx.Annotate(
				func(lifecycle fx.Lifecycle, _ *menv.Result, holder *menv.Holder, logger *slog.Logger) {
					var watcher *watch.Watcher

					lifecycle.Append(fx.Hook{
						OnStart: func(context.Context) error {
							w, err := menv.Watch(cfg.reload(name, logger), cfg.options(holder, logger)...)
							if err != nil {
								return fmt.Errorf("watching %s env: %w", name, err)
							}

							watcher = w

							return nil
						},
						OnStop: func(context.Context) error {
							if watcher == nil {
								return nil
							}

							return watcher.Close()
						},
					})
				},
				fx.ParamTags("", tag, tag, `optional:"true"`),
			),
		))
	}

	return fx.Module(name, moduleOpts...)
}

func (cfg *Config) options(holder *menv.Holder, logger *slog.Logger) []menv.Option {
	var opts []menv.Option

	if logger != nil {
		opts = append(opts, menv.WithLogger(logger))
	}

	opts = append(opts, cfg.LoadOptions...)

	return append(opts, menv.WithAttach(holder))
}

func (cfg *Config) reload(name string, logger *slog.Logger) func(*menv.Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	return func(res *menv.Result, err error) {
		if err != nil {
			logger.Error("env reload failed", "name", name, "error", err)
		} else {
			logger.Info("env reloaded", "name", name, "keys", res.Parsed.Len())
		}

		if cfg.OnChange != nil {
			cfg.OnChange(res, err)
		}
	}
}
