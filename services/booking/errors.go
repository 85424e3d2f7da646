package booking

import (
	"errors"
	"fmt"

	"havenstay/services/availability"
)

var (
	ErrNotFound            = errors.New("booking not found")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrPropertyUnavailable = errors.New("property is not accepting bookings")
	ErrOwnProperty         = errors.New("hosts cannot book their own property")
	ErrForbidden           = errors.New("not allowed to modify this booking")
	ErrInvalidTransition   = errors.New("booking status transition not allowed")
	ErrNotDue              = errors.New("booking cannot complete before checkout")
	ErrMalformedDate       = errors.New("dates must use the YYYY-MM-DD format")
	ErrPaymentFailed       = errors.New("payment could not be initialized, booking cancelled")
)

// RemoteConflictError means the store rejected the write because another
// booking took the dates after the caller's snapshot was read. The caller
// must re-fetch availability.
type RemoteConflictError struct {
	Range availability.DateRange
}

func (e *RemoteConflictError) Error() string {
	return fmt.Sprintf("dates %s were booked by someone else", e.Range)
}
func (e *RemoteConflictError) Code() string { return "remote_conflict" }
