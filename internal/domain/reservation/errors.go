package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("invalid reservation")
	ErrConflict          = errors.New("slot already reserved")
	ErrTransport         = errors.New("remote service request failed")
	ErrNotFound          = errors.New("reservation not found")
	ErrMalformedResponse = errors.New("malformed response from remote service")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports the cached reservation that already holds the slot.
type ConflictError struct {
	Existing Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s taken by %s", ErrConflict, e.Existing.Key(), e.Existing.ID)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// TransportError covers network failures and non-2xx responses (Status > 0).
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", e.Op, ErrTransport, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrMalformedResponse, e.Err)
}

func (e *MalformedResponseError) Unwrap() error        { return e.Err }
func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }
