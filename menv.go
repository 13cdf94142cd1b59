package menv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	filefetcher "github.com/0xalexb/hjarta-menv/config/fetcher/file"
	"github.com/0xalexb/hjarta-menv/envfile"
	"github.com/0xalexb/hjarta-menv/merge"
	"github.com/0xalexb/hjarta-menv/resolve"
	"github.com/0xalexb/hjarta-menv/schema"
	"github.com/0xalexb/hjarta-menv/watch"
)

// Load reads the resolved files in precedence order and returns the merged
// values. Missing files are skipped. Export and attach run only when the
// whole load succeeds.
func Load(opts ...Option) (*Result, error) {
	options := newOptions(opts)

	err := options.validate()
	if err != nil {
		return nil, err
	}

	sch, err := options.schema()
	if err != nil {
		return nil, err
	}

	files, err := resolve.Files(resolve.Request{CWD: options.CWD, Files: options.Files, Profile: options.Profile})
	if err != nil {
		return nil, err
	}

	logger := options.logger()
	state := merge.NewState()
	policy := options.policy(sch)
	read := make([]string, 0, len(files))

	for _, path := range files {
		fetcher, err := filefetcher.NewFetcher(path)()
		if err != nil {
			if filefetcher.IsMissing(err) {
				logger.Debug("env file missing, skipped", "file", path)

				continue
			}

			return nil, fmt.Errorf("reading env file: %w", err)
		}

		logger.Debug("reading env file", "file", path)

		err = applyText(state, fetcher.Text(), path, options.Strict, policy)
		if err != nil {
			return nil, err
		}

		read = append(read, path)
	}

	res, err := finish(state, sch, read, &options)
	if err != nil {
		return nil, err
	}

	level := slog.LevelDebug
	if options.Debug {
		level = slog.LevelInfo
	}

	logger.Log(context.Background(), level, "env loaded", "keys", res.Parsed.Len(), "files", len(read))

	if options.Env != nil {
		err := export(res, options.Env, options.Override)
		if err != nil {
			return nil, err
		}
	}

	if options.Attacher != nil {
		options.Attacher.Attach(res)
	}

	return res, nil
}

// Parse runs the load pipeline over text instead of files. Nothing is
// exported or attached.
func Parse(text string, opts ...Option) (*Result, error) {
	options := newOptions(opts)

	err := options.validate()
	if err != nil {
		return nil, err
	}

	sch, err := options.schema()
	if err != nil {
		return nil, err
	}

	source := options.SourceName
	if source == "" {
		source = InlineSource
	}

	state := merge.NewState()

	err = applyText(state, text, source, options.Strict, options.policy(sch))
	if err != nil {
		return nil, err
	}

	var files []string
	if options.SourceName != "" {
		files = []string{options.SourceName}
	}

	return finish(state, sch, files, &options)
}

// Watch calls onChange with the outcome of Load every time one of the
// resolved files changes. It does not load up front. The returned watcher
// must be closed.
func Watch(onChange func(*Result, error), opts ...Option) (*watch.Watcher, error) {
	if onChange == nil {
		return nil, ErrNilCallback
	}

	options := newOptions(opts)

	err := options.validate()
	if err != nil {
		return nil, err
	}

	files, err := resolve.Files(resolve.Request{CWD: options.CWD, Files: options.Files, Profile: options.Profile})
	if err != nil {
		return nil, err
	}

	if !options.WatchMissing {
		files = slices.DeleteFunc(files, func(path string) bool {
			_, statErr := os.Stat(path)

			return statErr != nil
		})
	}

	watcher, err := watch.New(watch.Config{
		Paths:  files,
		Dirs:   resolve.Dirs(files),
		Delay:  options.Debounce,
		Logger: options.logger(),
		Reload: func() {
			onChange(Load(opts...))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("watching env files: %w", err)
	}

	return watcher, nil
}

func applyText(state *merge.State, text, file string, strict bool, policy merge.Policy) error {
	entries, err := envfile.Parse(text, envfile.Options{Strict: strict, File: file})
	if err != nil {
		return err
	}

	for _, entry := range entries {
		err := state.Apply(entry, file, policy)
		if err != nil {
			return err
		}
	}

	return nil
}

func finish(state *merge.State, sch schema.Schema, files []string, options *Options) (*Result, error) {
	err := state.ApplyDefaults(sch, options.Strict)
	if err != nil {
		return nil, err
	}

	return &Result{
		Parsed:  newValues(state.Values(), options.Freeze),
		Origins: state.Origins(),
		Files:   files,
	}, nil
}
