package influx

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindUpstream covers store-originated failures: unreachable server,
	// rejected query, timeout. The upstream message is attached verbatim.
	KindUpstream Kind = iota
	// KindNotFound indicates a referenced bucket or resource does not exist.
	KindNotFound
	// KindValidation indicates the caller supplied malformed arguments.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	default:
		return "upstream"
	}
}

// Error is the error type returned by the query gateway. It carries the
// failure kind so callers can distinguish a missing bucket from a failing
// store without parsing messages.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func upstreamErr(format string, args ...interface{}) error {
	return &Error{Kind: KindUpstream, Err: fmt.Errorf(format, args...)}
}

func notFoundErr(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Err: fmt.Errorf(format, args...)}
}

// IsNotFound reports whether err is a gateway not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

// IsUpstream reports whether err is a gateway upstream error.
func IsUpstream(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUpstream
}
