package menverr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a class of pipeline failure.
type Kind int

// Pipeline failure kinds.
const (
	KindInvalidLine Kind = iota + 1
	KindUnknownKey
	KindDuplicateKey
	KindInvalidType
	KindMissingRequired
)

// Sentinels matched by errors.Is for each Kind.
var (
	ErrInvalidLine     = errors.New("invalid line")
	ErrUnknownKey      = errors.New("unknown key")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrInvalidType     = errors.New("invalid type")
	ErrMissingRequired = errors.New("missing required key")
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidLine:
		return "InvalidLine"
	case KindUnknownKey:
		return "UnknownKey"
	case KindDuplicateKey:
		return "DuplicateKey"
	case KindInvalidType:
		return "InvalidType"
	case KindMissingRequired:
		return "MissingRequired"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidLine:
		return ErrInvalidLine
	case KindUnknownKey:
		return ErrUnknownKey
	case KindDuplicateKey:
		return ErrDuplicateKey
	case KindInvalidType:
		return ErrInvalidType
	case KindMissingRequired:
		return ErrMissingRequired
	default:
		return nil
	}
}

// Error is the single error type returned by the parse/merge/validate pipeline.
type Error struct {
	Kind Kind
	Key  string
	File string
	Line int
	Raw  string
	// Type is the declared schema type for KindInvalidType.
	Type string
	// Err is the underlying cause, if any (e.g. a JSON syntax error).
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder

	switch e.Kind {
	case KindInvalidLine:
		fmt.Fprintf(&b, "invalid line %d: %s", e.Line, e.Raw)
		b.WriteString(location(e.File, 0))
	case KindUnknownKey:
		b.WriteString("unknown key: " + e.Key)
		b.WriteString(location(e.File, e.Line))
	case KindDuplicateKey:
		b.WriteString("duplicate key: " + e.Key)
		b.WriteString(location(e.File, e.Line))
	case KindInvalidType:
		fmt.Fprintf(&b, "invalid %s: %s", e.Type, e.Raw)
		b.WriteString(location(e.File, e.Line))
	case KindMissingRequired:
		b.WriteString("missing required key: " + e.Key)
	default:
		b.WriteString(e.Kind.String())
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	var errs []error

	sentinel := e.Kind.sentinel()
	if sentinel != nil {
		errs = append(errs, sentinel)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// location renders " (file:line)", " (file)" or "" depending on what is known.
func location(file string, line int) string {
	if file == "" {
		return ""
	}

	if line == 0 {
		return " (" + file + ")"
	}

	return " (" + file + ":" + strconv.Itoa(line) + ")"
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var menvErr *Error
	if errors.As(err, &menvErr) {
		return menvErr.Kind, true
	}

	return 0, false
}

// InvalidLine reports a non-blank line that is not a key=value assignment.
func InvalidLine(line int, raw, file string) *Error {
	return &Error{Kind: KindInvalidLine, Line: line, Raw: raw, File: file}
}

// UnknownKey reports a key missing from a declared schema.
func UnknownKey(key, file string, line int) *Error {
	return &Error{Kind: KindUnknownKey, Key: key, File: file, Line: line}
}

// DuplicateKey reports a key assigned twice within one file.
func DuplicateKey(key, file string, line int) *Error {
	return &Error{Kind: KindDuplicateKey, Key: key, File: file, Line: line}
}

// InvalidType reports a raw value that does not satisfy its declared type.
// cause may be nil.
func InvalidType(typ, raw, file string, line int, cause error) *Error {
	return &Error{Kind: KindInvalidType, Type: typ, Raw: raw, File: file, Line: line, Err: cause}
}

// MissingRequired reports a required schema key with no value and no default.
func MissingRequired(key string) *Error {
	return &Error{Kind: KindMissingRequired, Key: key}
}
