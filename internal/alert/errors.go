package alert

import (
	"errors"
	"fmt"
)

var (
	// ErrSignatureInvalid rejects a request whose signature does not match its raw body.
	ErrSignatureInvalid = errors.New("invalid signature")
	// ErrMalformedPayload rejects a request, or skips an event, that does not decode into the expected shape.
	ErrMalformedPayload = errors.New("malformed payload")
)

// LookupKind names the enrichment lookup that failed.
type LookupKind string

const (
	ProfileLookup LookupKind = "profile"
	GroupLookup   LookupKind = "group"
)

// LookupError is an event-local enrichment failure. It is recovered with a fallback and only logged.
type LookupError struct {
	Kind  LookupKind
	ID    string
	Cause error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup for %s failed: %v", e.Kind, e.ID, e.Cause)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// DispatchError is an event-local push failure. It is logged and never retried.
type DispatchError struct {
	Recipient string
	Cause     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("push to %s failed: %v", e.Recipient, e.Cause)
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}
