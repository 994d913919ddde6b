// Package ferrors defines the fatal, non-retried error kinds an invocation
// of flowgen can fail with.
package ferrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the five terminal failure modes of an invocation.
type Kind int

const (
	// ParseError means the external (or local flowparser) front-end returned
	// a non-empty error list. The invocation logs a diagnostic and returns an
	// empty result; it is the host's decision whether to continue.
	ParseError Kind = iota
	// MissingTypenameOnUnion means a union member object literal has no
	// __typename: "X" string-literal property.
	MissingTypenameOnUnion
	// CouldNotMapNumber is reserved: unreachable today because all numerics
	// map to Scalar(Float).
	CouldNotMapNumber
	// NoExtractableOperationsFound means extraction produced none of
	// variables/response/fragment.
	NoExtractableOperationsFound
	// ObjectPathEmpty means a record name was requested from an empty path.
	// flowgen.PrintFromFlowTypes also returns it when the print config's
	// connection option fails validation (empty object path or field name).
	ObjectPathEmpty
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case MissingTypenameOnUnion:
		return "MissingTypenameOnUnion"
	case CouldNotMapNumber:
		return "CouldNotMapNumber"
	case NoExtractableOperationsFound:
		return "NoExtractableOperationsFound"
	case ObjectPathEmpty:
		return "ObjectPathEmpty"
	default:
		return "Unknown"
	}
}

// Error is the single error type every flowgen entry point returns. It
// carries enough context — the path within the type tree and the offending
// key, where applicable — for a host to attribute the failure to a source
// GraphQL document.
type Error struct {
	Kind    Kind
	Message string
	// Path is the leaf-first path (see model.ObjectShape) at which the
	// error was raised, where applicable.
	Path []string
	// Key is the offending property or union-member name, where applicable.
	Key string
	// cause holds a wrapped lower-level error (e.g. a lexer/parser panic),
	// set via Wrap.
	cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("flowgen: %s: %s", e.Kind, e.Message)
	if e.Key != "" {
		str += fmt.Sprintf(" (key %q)", e.Key)
	}
	if len(e.Path) > 0 {
		str += fmt.Sprintf(" (path %v)", e.Path)
	}
	if e.cause != nil {
		str += ": " + e.cause.Error()
	}
	return str
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

var _ error = (*Error)(nil)

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithPath attaches a leaf-first path to the error for host attribution.
func (e *Error) WithPath(path []string) *Error {
	e.Path = append([]string(nil), path...)
	return e
}

// WithKey attaches the offending property or member name.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// Wrap converts a lower-level error (typically a flowparser syntax error
// recovered from a panic) into a ParseError, keeping the original error as
// the cause so its location context survives in Error().
func Wrap(cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    ParseError,
		Message: fmt.Sprintf(format, args...),
		cause:   errors.WithStack(cause),
	}
}
