package weather

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTransport marks a failed round trip to the active backend.
	ErrTransport = errors.New("transport error")
	// ErrMalformedPayload marks a payload missing a required field.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrEmptyDataset is returned when the backend answers with an empty list.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrInvalidDate marks an unparsable forecast date.
	ErrInvalidDate = errors.New("invalid date")
)

// TransportError wraps a network failure or a non-2xx response.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// MalformedPayloadError names the required field that was absent or null.
type MalformedPayloadError struct {
	Kind  PayloadKind
	Field string
	Err   error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s payload: %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed %s payload: missing %s", e.Kind, e.Field)
}

func (e *MalformedPayloadError) Is(target error) bool { return target == ErrMalformedPayload }

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// InvalidDateError records a forecast date that could not be parsed and the
// date substituted for it.
type InvalidDateError struct {
	Value    string
	Fallback time.Time
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid forecast date %q, using %s", e.Value, e.Fallback.Format(time.DateOnly))
}

func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }
