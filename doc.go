// Package menv loads layered .menv files into typed, immutable values.
//
// A load reads .menv, .menv.local and, when a profile is set, .menv.<profile>
// and .menv.<profile>.local from the working directory. Later files win.
// Each value is coerced by an optional schema or by auto-casting, and the
// file and line that produced it is kept in Result.Origins.
//
//	res, err := menv.Load(
//		menv.WithProfile("prod"),
//		menv.WithSchema(schema.Schema{
//			"PORT": {Type: cast.TypeNumber, Default: float64(3000)},
//			"URL":  {Type: cast.TypeString, Required: true},
//		}),
//		menv.WithStrict(true),
//	)
//
// Parse runs the same pipeline over a string, and Watch re-runs Load when
// any of the files changes.
package menv
