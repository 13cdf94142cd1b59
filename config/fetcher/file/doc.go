// Package file reads env files and schema documents from disk.
//
// The file is read once, when the Fetcher is constructed, and Fetch hands out
// copies of those bytes. A missing file is reported as a wrapped
// fs.ErrNotExist so that callers walking a list of optional candidates can
// skip it with IsMissing:
//
//	fetcher, err := file.NewFetcher("/app/.menv.local")()
//	if file.IsMissing(err) {
//	    // optional layer not present
//	}
//
// A path that names a directory fails with ErrPathIsDirectory.
package file
