// Package core, error taxonomy shared by every pipeline stage.
package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a per-region failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindLoad
	KindTypeConversion
	KindMissingField
	KindWrite
)

// String returns the taxonomy name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindLoad:
		return "LoadError"
	case KindTypeConversion:
		return "TypeConversionError"
	case KindMissingField:
		return "MissingFieldError"
	case KindWrite:
		return "WriteError"
	default:
		return "UnknownError"
	}
}

// Sentinel causes wrapped by Error.
var (
	ErrColumnNotFound = errors.New("column not found")
	ErrEmptyFile      = errors.New("file has no header row")
	ErrInvalidInteger = errors.New("not an integer")
	ErrOutOfRange     = errors.New("integer out of range")
	ErrInvalidBoolean = errors.New("not a boolean")
)

// Error is the typed error returned by every pipeline stage.
type Error struct {
	Kind   ErrorKind
	Path   string
	Column string
	Row    int // 1-based data row, 0 when not row-specific
	Value  string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg += fmt.Sprintf(" %s", e.Path)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Value != "" || e.Kind == KindTypeConversion {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain,
// or KindUnknown if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
