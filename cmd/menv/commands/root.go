// Package commands implements the menv command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	menv "github.com/0xalexb/hjarta-menv"
	"github.com/0xalexb/hjarta-menv/cast"
	"github.com/0xalexb/hjarta-menv/logging"
	"github.com/0xalexb/hjarta-menv/schema"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	cwd           string
	profile       string
	files         []string
	schemaPath    string
	schemaSection string
	strict        bool
	cast          string
	debug         bool
	logLevel      string
	logFormat     string
}

// Execute runs the root command.
func Execute(ctx context.Context, version, compiledAt string) error {
	return newRootCommand(version, compiledAt).ExecuteContext(ctx)
}

func newRootCommand(version, compiledAt string) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "menv",
		Short: "Load, check and watch layered .menv files",
		Long: `menv merges .menv, .menv.local and the profile files .menv.<profile> and
.menv.<profile>.local, later files winning, and reports the typed result.

A schema document (YAML, JSON or TOML) maps each key to a type, a default
and whether it is required:

  PORT: { type: number, default: 3000 }
  URL:  { type: string, required: true }
  DEBUG: boolean`,
		Version:       fmt.Sprintf("%s (built: %s)", version, compiledAt),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&flags.cwd, "cwd", "", "directory the env files are resolved against")
	persistent.StringVarP(&flags.profile, "profile", "p", "", "profile adding .menv.<profile> layers")
	persistent.StringArrayVarP(&flags.files, "file", "f", nil, "explicit env file, lowest precedence first (repeatable)")
	persistent.StringVarP(&flags.schemaPath, "schema", "s", "", "schema document (.yaml, .yml, .json or .toml)")
	persistent.StringVar(&flags.schemaSection, "schema-section", "", "colon path of the schema inside the document, e.g. menv:schema")
	persistent.BoolVar(&flags.strict, "strict", false, "fail on unknown, duplicate, invalid or missing keys")
	persistent.StringVar(&flags.cast, "cast", "true", `auto-cast rules: "true", "false" or "boolean=true,number=false,..."`)
	persistent.BoolVar(&flags.debug, "debug", false, "log values overridden by later files")
	persistent.StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	persistent.StringVar(&flags.logFormat, "log-format", logging.FormatText, "log format: text or json")

	rootCmd.AddCommand(newPrintCommand(flags))
	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newOriginsCommand(flags))
	rootCmd.AddCommand(newWatchCommand(flags))

	return rootCmd
}

func (f *globalFlags) loggerConfig() logging.LoggerConfig {
	return logging.LoggerConfig{Level: f.logLevel, Format: f.logFormat}
}

func (f *globalFlags) logger(w io.Writer) *slog.Logger {
	return logging.NewLogger(f.loggerConfig(), w)
}

// loadOptions translates the flags. The logger is left to the caller.
func (f *globalFlags) loadOptions() ([]menv.Option, error) {
	rules, err := cast.ParseRules(f.cast)
	if err != nil {
		return nil, fmt.Errorf("invalid --cast: %w", err)
	}

	opts := []menv.Option{
		menv.WithCWD(f.cwd),
		menv.WithProfile(f.profile),
		menv.WithFiles(f.files...),
		menv.WithStrict(f.strict),
		menv.WithCastRules(rules),
		menv.WithDebug(f.debug),
	}

	if f.schemaPath != "" {
		sch, err := schema.LoadFile(f.schemaPath, f.schemaSection)
		if err != nil {
			return nil, fmt.Errorf("loading schema: %w", err)
		}

		opts = append(opts, menv.WithSchema(sch))
	}

	return opts, nil
}

func (f *globalFlags) load(cmd *cobra.Command) (*menv.Result, error) {
	opts, err := f.loadOptions()
	if err != nil {
		return nil, err
	}

	opts = append(opts, menv.WithLogger(f.logger(cmd.ErrOrStderr())))

	return menv.Load(opts...)
}
