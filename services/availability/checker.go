package availability

import (
	"time"

	"havenstay/models"
)

// Reservation is the read-only view of an existing booking the engine needs.
type Reservation struct {
	Range  DateRange
	Status models.BookingStatus
}

type Status string

const (
	StatusIncomplete  Status = "incomplete"
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
)

// Availability is the advisory answer for a candidate range. An available
// result is not a lock; the booking store may still reject the write.
type Availability struct {
	Status    Status      `json:"status"`
	Conflicts []DateRange `json:"conflicts,omitempty"`
}

func (a Availability) Available() bool { return a.Status == StatusAvailable }

// BlockingRanges keeps only reservations that hold their dates.
func BlockingRanges(reservations []Reservation) []DateRange {
	out := make([]DateRange, 0, len(reservations))
	for _, r := range reservations {
		if r.Status.Blocks() {
			out = append(out, r.Range)
		}
	}
	return out
}

// ValidateRange checks shape first and then the past-date rule.
func ValidateRange(candidate *DateRange, today time.Time) error {
	if candidate == nil {
		return ErrIncompleteRange
	}
	if !candidate.Valid() {
		return &InvalidRangeError{Range: *candidate}
	}
	if candidate.Start.Before(DateOf(today)) {
		return &PastDateError{Range: *candidate, Today: DateOf(today)}
	}
	return nil
}

// Check evaluates a candidate against the blocking ranges of one property.
// A nil candidate yields StatusIncomplete. A zero or negative width candidate
// is a caller error and never reported as unavailable.
func Check(candidate *DateRange, blocking []DateRange) (Availability, error) {
	if candidate == nil {
		return Availability{Status: StatusIncomplete}, nil
	}
	if !candidate.Valid() {
		return Availability{}, &InvalidRangeError{Range: *candidate}
	}

	var conflicts []DateRange
	for _, b := range blocking {
		if candidate.Overlaps(b) {
			conflicts = append(conflicts, b)
		}
	}
	if len(conflicts) > 0 {
		return Availability{Status: StatusUnavailable, Conflicts: conflicts}, nil
	}
	return Availability{Status: StatusAvailable}, nil
}
