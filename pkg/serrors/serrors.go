// Package serrors defines the semantic error kinds of purl. Every kind maps
// to a process exit code so the CLI can translate any returned error into a
// status without inspecting messages.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind.
type Kind interface {
	error
	// ExitCode is the process status reported for errors of this kind.
	ExitCode() int
	isKind()
}

type kind struct {
	s    string
	code int
}

func (k kind) Error() string { return k.s }
func (k kind) ExitCode() int { return k.code }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name and exit code. Kinds are comparable and can be used with errors.Is/As
// through the Error wrapper.
func NewKind(name string, exitCode int) Kind { return kind{s: name, code: exitCode} }

var (
	// ErrInternal is a generic failure: usage errors, config errors, output errors.
	ErrInternal = NewKind("INTERNAL", 1)
	// ErrInvalidURL indicates the input does not parse as a URL after scheme defaulting.
	ErrInvalidURL = NewKind("INVALID_URL", 2)
	// ErrInsecureBlocked indicates a plain HTTP target was refused by the transport gate.
	ErrInsecureBlocked = NewKind("INSECURE_BLOCKED", 3)
	// ErrTransport indicates the client could not be built or the request failed.
	ErrTransport = NewKind("TRANSPORT", 4)
	// ErrDecode indicates the response body could not be read as text.
	ErrDecode = NewKind("DECODE", 5)
)

// Error is a semantic error carrying a kind, an optional wrapped cause and an
// optional message. errors.Is and errors.As match either the kind or the cause.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind wrapping err.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is matches against either the kind sentinel or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}

	return e.err != nil && errors.Is(e.err, target)
}

// As matches against either the kind sentinel or the wrapped cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}

	return e.err != nil && errors.As(e.err, target)
}

// Kind returns the kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// KindOf returns the outermost kind found in err's chain, or nil.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return nil
}

// ExitCode maps err to a process exit status: 0 for nil, the kind's code for
// semantic errors and ErrInternal's code for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if k := KindOf(err); k != nil {
		return k.ExitCode()
	}

	return ErrInternal.ExitCode()
}
