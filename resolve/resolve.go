// Package resolve lists the env files a load reads, in precedence order
// (lowest first).
//
// Without an explicit list the candidates are
//
//	.menv
//	.menv.local
//	.menv.<profile>        (when a profile is set)
//	.menv.<profile>.local  (when a profile is set)
//
// relative to the working directory. Candidates are not checked for
// existence; the loader skips missing ones.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
)

// BaseName is the file name of the lowest-precedence candidate.
const BaseName = ".menv"

// Request describes which files to resolve.
type Request struct {
	// CWD anchors relative paths. Empty means the process working directory.
	CWD string
	// Files, when non-empty, replaces the default candidates entirely.
	Files []string
	// Profile adds the profile-specific candidates.
	Profile string
}

// Files returns absolute, cleaned candidate paths in precedence order.
func Files(req Request) ([]string, error) {
	cwd, err := absDir(req.CWD)
	if err != nil {
		return nil, err
	}

	if len(req.Files) > 0 {
		files := make([]string, 0, len(req.Files))

		for _, file := range req.Files {
			if !filepath.IsAbs(file) {
				file = filepath.Join(cwd, file)
			}

			files = append(files, filepath.Clean(file))
		}

		return files, nil
	}

	files := []string{
		filepath.Join(cwd, BaseName),
		filepath.Join(cwd, BaseName+".local"),
	}

	if req.Profile != "" {
		files = append(files,
			filepath.Join(cwd, BaseName+"."+req.Profile),
			filepath.Join(cwd, BaseName+"."+req.Profile+".local"),
		)
	}

	return files, nil
}

// Dirs returns the distinct parent directories of paths, in first-seen order.
func Dirs(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	dirs := make([]string, 0, len(paths))

	for _, path := range paths {
		dir := filepath.Dir(path)

		_, dup := seen[dir]
		if dup {
			continue
		}

		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	return dirs
}

func absDir(cwd string) (string, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}

		return wd, nil
	}

	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", cwd, err)
	}

	return abs, nil
}
