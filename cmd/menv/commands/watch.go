package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	menv "github.com/0xalexb/hjarta-menv"
	"github.com/0xalexb/hjarta-menv/menvfx"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newWatchCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload and report every time an env file changes",
		Long: `watch loads the env files, then prints one line per reload until it is
interrupted. A failed reload is reported and watching continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.loadOptions()
			if err != nil {
				return err
			}

			out := &lockedWriter{w: cmd.OutOrStdout()}

			app := menvfx.NewApp(
				menvfx.WithLogging(flags.loggerConfig()),
				menvfx.WithOutput(cmd.ErrOrStderr()),
				menvfx.WithModules(
					menvfx.NewModule("menv",
						menvfx.WithLoadOptions(opts...),
						menvfx.WithWatch(func(res *menv.Result, err error) {
							report(out, "reloaded", res, err)
						}),
					),
					fx.Invoke(fx.Annotate(
						func(res *menv.Result) { report(out, "loaded", res, nil) },
						fx.ParamTags(`name:"menv"`),
					)),
				),
			)

			ctx := cmd.Context()

			err = app.Start(ctx)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out, "watching for changes")

			<-ctx.Done()

			return app.Stop(context.WithoutCancel(ctx))
		},
	}
}

func report(out io.Writer, verb string, res *menv.Result, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(out, "error: %v\n", err)

		return
	}

	_, _ = fmt.Fprintf(out, "%s: %d keys from %d files\n", verb, res.Parsed.Len(), len(res.Files))
}

// lockedWriter serializes writes from the watcher goroutine and the command.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(p) //nolint:wrapcheck // passthrough writer.
}
