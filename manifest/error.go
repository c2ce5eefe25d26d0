package manifest

import (
	"errors"
	"log/slog"
	"strings"
)

// Sentinel errors. Match them with [errors.Is]; the typed causes
// [*SectionError] and [*KeyError] are reachable with [errors.As].
var (
	ErrSyntax         = NewError("parse error")
	ErrMissingSection = NewError("missing section")
	ErrMissingKey     = NewError("missing key")
	ErrReadInput      = NewError("failed to read input")
	ErrQueryCompile   = NewError("query compilation failed")
	ErrQueryEvaluate  = NewError("query evaluation failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an Error of the same kind as e.
//
// Errors derived from a sentinel through [Error.Wrap] or [Error.With] keep
// its message, so errors.Is(err, ErrMissingKey) holds for all of them.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// SectionError identifies a section that does not exist.
type SectionError struct {
	Section string
}

func (e *SectionError) Error() string { return e.Section }

// KeyError identifies a key that does not exist in an existing section.
type KeyError struct {
	Section string
	Key     string
}

func (e *KeyError) Error() string { return e.Key + " in section " + e.Section }

func missingSection(section string) error {
	return ErrMissingSection.
		Wrap(&SectionError{Section: section}).
		With(slog.String("section", section))
}

func missingKey(section, key string) error {
	return ErrMissingKey.
		Wrap(&KeyError{Section: section, Key: key}).
		With(slog.String("section", section), slog.String("key", key))
}
