package menvfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/0xalexb/hjarta-menv/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// AppOptions holds configuration settings for an App.
type AppOptions struct {
	Modules []fx.Option
	Logging logging.LoggerConfig
	// Output receives log records. Defaults to os.Stderr.
	Output io.Writer
}

// AppOption defines a function type for applying App options.
type AppOption func(*AppOptions)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) AppOption {
	return func(opts *AppOptions) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogging sets the logger configuration.
func WithLogging(config logging.LoggerConfig) AppOption {
	return func(opts *AppOptions) {
		opts.Logging = config
	}
}

// WithOutput sets where log records are written.
func WithOutput(w io.Writer) AppOption {
	return func(opts *AppOptions) {
		opts.Output = w
	}
}

// App is an fx.App with the slog logger supplied to its modules.
type App struct {
	app *fx.App
}

// NewApp creates a new App. The logger is supplied to the container so
// modules built by NewModule log through it.
func NewApp(opts ...AppOption) *App {
	var options AppOptions

	for _, apply := range opts {
		apply(&options)
	}

	output := options.Output
	if output == nil {
		output = os.Stderr
	}

	logger := logging.NewLogger(options.Logging, output)

	return &App{
		app: fx.New(
			fx.WithLogger(func() fxevent.Logger {
				return &fxevent.SlogLogger{Logger: logger}
			}),
			fx.Supply(options.Logging),
			fx.Supply(logger),
			fx.Options(options.Modules...),
		),
	}
}

// Err returns the error encountered while building the container, if any.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err()
}

// Start runs the OnStart hooks of every module.
func (app *App) Start(ctx context.Context) error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	return nil
}

// Stop runs the OnStop hooks of every module.
func (app *App) Stop(ctx context.Context) error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Stop(ctx)
	if err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}

	return nil
}
