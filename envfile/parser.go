package envfile

import (
	"regexp"
	"strings"

	"github.com/0xalexb/hjarta-menv/menverr"
)

// Entry is one key=value assignment read from a source.
type Entry struct {
	Key string
	Raw string
	// Line is the 1-based source line number.
	Line int
}

// Options controls how Parse treats malformed lines.
type Options struct {
	// Strict turns lines that are not assignments into menverr.KindInvalidLine errors.
	// Otherwise such lines are skipped.
	Strict bool
	// File names the source in error messages.
	File string
}

//nolint:gochecknoglobals // compiled once
var (
	assignment = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)\s*$`)
	unescaper  = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r", `\t`, "\t")
)

// Parse splits text into entries in line order.
func Parse(text string, opts Options) ([]Entry, error) {
	lines := strings.Split(text, "\n")
	entries := make([]Entry, 0, len(lines))

	for i, rawLine := range lines {
		rawLine = strings.TrimSuffix(rawLine, "\r")
		lineNo := i + 1

		cleaned := stripInlineComment(rawLine)
		if strings.TrimSpace(cleaned) == "" {
			continue
		}

		match := assignment.FindStringSubmatch(cleaned)
		if match == nil {
			if opts.Strict {
				return nil, menverr.InvalidLine(lineNo, rawLine, opts.File)
			}

			continue
		}

		entries = append(entries, Entry{
			Key:  match[1],
			Raw:  StripQuotes(match[2]),
			Line: lineNo,
		})
	}

	return entries, nil
}

// StripQuotes trims value and, when it is wrapped in a matching pair of
// single or double quotes, removes the pair and expands \n, \r, \t and \\.
func StripQuotes(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 2 { //nolint:mnd // opening + closing quote
		return trimmed
	}

	first, last := trimmed[0], trimmed[len(trimmed)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return unescaper.Replace(trimmed[1 : len(trimmed)-1])
	}

	return trimmed
}

// stripInlineComment cuts line at the first '#' that is neither escaped nor
// inside an open quoted span.
func stripInlineComment(line string) string {
	var inSingle, inDouble, escaped bool

	for i := range len(line) {
		if escaped {
			escaped = false

			continue
		}

		switch ch := line[i]; {
		case ch == '\\':
			escaped = true
		case ch == '"' && !inSingle:
			inDouble = !inDouble
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
		case ch == '#' && !inSingle && !inDouble:
			return line[:i]
		}
	}

	return line
}
