package menv

import (
	"errors"

	"github.com/0xalexb/hjarta-menv/menverr"
)

// Error is the error type returned by the load pipeline.
type Error = menverr.Error

// Kind classifies an Error.
type Kind = menverr.Kind

// Error kinds.
const (
	KindInvalidLine     = menverr.KindInvalidLine
	KindUnknownKey      = menverr.KindUnknownKey
	KindDuplicateKey    = menverr.KindDuplicateKey
	KindInvalidType     = menverr.KindInvalidType
	KindMissingRequired = menverr.KindMissingRequired
)

// Sentinels matched by errors.Is against pipeline errors.
var (
	ErrInvalidLine     = menverr.ErrInvalidLine
	ErrUnknownKey      = menverr.ErrUnknownKey
	ErrDuplicateKey    = menverr.ErrDuplicateKey
	ErrInvalidType     = menverr.ErrInvalidType
	ErrMissingRequired = menverr.ErrMissingRequired
)

// ErrInvalidOptions is returned when options fail validation.
var ErrInvalidOptions = errors.New("invalid options")

// ErrNilCallback is returned by Watch when onChange is nil.
var ErrNilCallback = errors.New("onChange callback is required")

// KindOf reports the Kind of the first Error in err's chain.
func KindOf(err error) (Kind, bool) {
	return menverr.KindOf(err)
}
