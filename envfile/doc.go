// Package envfile tokenizes env-file text into ordered key/raw-value entries.
//
// The grammar is line oriented:
//
//	# comment
//	export NAME="Hello # not a comment\nsecond line"
//	PORT=3000   # trailing comment
//
// A '#' starts a comment unless it sits inside a quoted span that is still
// open on that line; a backslash escapes the following character. Values
// wrapped in a matching pair of single or double quotes have the pair removed
// and \n, \r, \t and \\ expanded. Unquoted values are trimmed and otherwise
// kept verbatim.
package envfile
