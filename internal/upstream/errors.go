package upstream

import (
	"errors"
	"fmt"
)

// Kind classifies an upstream failure.
type Kind string

const (
	// KindTransport covers network failures, timeouts and non-200 responses.
	KindTransport Kind = "transport"
	// KindParse covers malformed payloads, e.g. a missing confidence tier.
	KindParse Kind = "parse"
	// KindUnavailable means the upstream answered but the needed field was
	// absent.
	KindUnavailable Kind = "unavailable"
)

// Error is the typed failure every client returns. The orchestrator logs it
// and converts it into an unknown write; nothing propagates further.
type Error struct {
	Kind   Kind
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Source, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, source string, err error) *Error {
	return &Error{Kind: kind, Source: source, Err: err}
}

// IsKind reports whether err is an upstream Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == kind
}
