package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrIncompleteRange = &IncompleteRangeError{}
	ErrNegativeRate    = errors.New("nightly rate must not be negative")
)

// RuleError is implemented by every engine rejection so callers can render a
// field specific message from a stable code.
type RuleError interface {
	error
	Code() string
}

// AsRuleError unwraps err into a RuleError, or returns nil.
func AsRuleError(err error) RuleError {
	if err == nil {
		return nil
	}
	var re RuleError
	if errors.As(err, &re) {
		return re
	}
	return nil
}

// IncompleteRangeError means the user has not picked both dates yet.
type IncompleteRangeError struct{}

func (e *IncompleteRangeError) Error() string { return "check-in and check-out dates are required" }
func (e *IncompleteRangeError) Code() string  { return "incomplete_range" }

type InvalidRangeError struct {
	Range DateRange
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range %s: check-out must be after check-in", e.Range)
}
func (e *InvalidRangeError) Code() string { return "invalid_range" }

type PastDateError struct {
	Range DateRange
	Today time.Time
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("date range %s starts before today (%s)", e.Range, e.Today.Format(DateLayout))
}
func (e *PastDateError) Code() string { return "past_date" }

// DateConflictError lists every blocking range the candidate overlaps.
type DateConflictError struct {
	Range     DateRange
	Conflicts []DateRange
}

func (e *DateConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("dates %s unavailable, conflicts with %s", e.Range, strings.Join(parts, ", "))
}
func (e *DateConflictError) Code() string { return "date_conflict" }

type InvalidGuestCountError struct {
	GuestCount int
}

func (e *InvalidGuestCountError) Error() string {
	return fmt.Sprintf("guest count must be at least 1, got %d", e.GuestCount)
}
func (e *InvalidGuestCountError) Code() string { return "invalid_guest_count" }

type CapacityExceededError struct {
	GuestCount int
	MaxGuests  int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("property allows at most %d guests, got %d", e.MaxGuests, e.GuestCount)
}
func (e *CapacityExceededError) Code() string { return "capacity_exceeded" }
