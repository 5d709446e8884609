package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Error classes. Every failure of the line parser is classed [ErrParse];
// every failure of substitution, evaluation or conditional resolution is
// classed [ErrResolve].
var (
	ErrParse   = NewError("parse failed")
	ErrResolve = NewError("resolution failed")
)

// Predefined errors (sentinel values).
var (
	ErrReadInput       = newClassError(ErrParse, "unable to read")
	ErrInclude         = newClassError(ErrParse, "include failed")
	ErrCircularInclude = newClassError(ErrParse, "circular include")
	ErrSyntax          = newClassError(ErrParse, "invalid line")
	ErrCommandList     = newClassError(ErrParse,
		"preceding item does not allow command list")

	ErrUndefinedVariable    = newClassError(ErrResolve, "undefined variable")
	ErrSubstitutionLimit    = newClassError(ErrResolve, "substitution limit exceeded")
	ErrInvalidExpression    = newClassError(ErrResolve, "unable to evaluate expression")
	ErrUnsupportedOperator  = newClassError(ErrResolve, "unsupported operator")
	ErrMismatched           = newClassError(ErrResolve, "mismatched")
	ErrUnsupportedDirective = newClassError(ErrResolve, "unsupported directive")
	ErrUnterminated         = newClassError(ErrResolve, "unterminated conditional")
)

// Error represents an error with an optional source location and structured
// logging attributes. It implements both error and slog.LogValuer.
//
// Errors derived from a sentinel with [Error.At], [Error.About],
// [Error.Wrap] or [Error.With] match that sentinel and its class with
// [errors.Is].
type Error struct {
	msg     string
	subject string
	err     error // Wrapped error (for errors.Unwrap)
	loc     *Location
	attrs   []slog.Attr
	kind    *Error // Sentinel this error was derived from
	class   *Error
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func newClassError(class *Error, msg string) *Error {
	return &Error{msg: msg, class: class}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface. The message has the form
//
//	<msg> <subject>: <cause> at [file:line]
//
// where each part is omitted when unset.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.msg)

	if e.subject != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(e.subject)
	}

	if e.err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}

		b.WriteString(e.err.Error())
	}

	if e.loc != nil {
		b.WriteString(" at ")
		b.WriteString(e.loc.String())
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel or class this error was
// derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return t == e.kind || t == e.class
}

// Location returns the source location the error refers to, if any.
func (e *Error) Location() (Location, bool) {
	if e.loc == nil {
		return Location{}, false
	}

	return *e.loc, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.subject != "" {
		attrs = append(attrs, slog.String("subject", e.subject))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.loc != nil {
		attrs = append(attrs, slog.String("at", e.loc.String()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// derive returns a copy of e that still matches e's sentinel.
func (e *Error) derive() *Error {
	c := *e
	if c.kind == nil {
		c.kind = e
	}

	return &c
}

// At returns a copy of the error located at loc.
func (e *Error) At(loc Location) *Error {
	c := e.derive()
	c.loc = &loc

	return c
}

// About returns a copy of the error naming the subject it concerns, such as
// a variable name or an operator.
func (e *Error) About(subject string) *Error {
	c := e.derive()
	c.subject = subject

	return c
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}
