package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a service answers 404 for a record.
var ErrNotFound = errors.New("record not found")

// TransportError covers every other failed exchange with a service: the
// request never completed, the service answered with an error status, or
// the response could not be decoded.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
