// Package menverr defines the closed set of failures the menv pipeline reports.
//
// Every failure is a single *Error carrying a Kind plus whatever location data
// was known (key, file, line, raw text, declared type). Callers branch on the
// kind, either with errors.Is against the per-kind sentinels or with KindOf:
//
//	res, err := menv.Load(menv.WithStrict(true))
//	if errors.Is(err, menverr.ErrDuplicateKey) {
//	    // a key was repeated inside one file
//	}
package menverr
