// Package cast turns raw env-file strings into typed values.
//
// Coerce applies an explicitly declared Type and fails with a
// menverr.KindInvalidType error when the raw text does not fit. Auto infers a
// type heuristically, trying boolean, number, JSON and ISO date in that order
// and falling back to the trimmed string; each heuristic can be switched off
// through Rules. Auto never fails.
//
// Typed values are represented as string, bool, float64, time.Time, or the
// any-typed graph produced by encoding/json.
package cast
