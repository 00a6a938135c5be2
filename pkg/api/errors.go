package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TransportError wraps network failures and unexpected server responses.
// Callers recover by retrying; nothing in this client retries on its own.
type TransportError struct {
	Op     string
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError carries the store's field-level rejection of a create
// payload.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message()
}

// Message concatenates every field message into one display string.
// Fields are visited in name order so the output is deterministic.
func (e *ValidationError) Message() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var msgs []string
	for _, name := range names {
		msgs = append(msgs, e.Fields[name]...)
	}
	return strings.Join(msgs, " ")
}

// NotFoundError reports a status patch against a ticket that no longer
// exists.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ticket %s not found", e.ID)
}

// IsValidation reports whether err is a store validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a missing-ticket failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
