package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	NotFound Kind = iota + 1
	Parse
	Encoding
	Write
	Query
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Parse:
		return "parse"
	case Encoding:
		return "encoding"
	case Write:
		return "write"
	case Query:
		return "query"
	}
	return "unknown"
}

// Error carries the failure kind alongside the wrapped cause so callers can
// branch with Is/As without string matching.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
