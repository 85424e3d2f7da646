package availability

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingRequest is the ephemeral input of a booking attempt.
type BookingRequest struct {
	PropertyID string
	Range      *DateRange
	GuestCount int
}

// PropertyFacts is the slice of a property the engine reasons about.
type PropertyFacts struct {
	PricePerNight decimal.Decimal
	MaxGuests     int
}

// CanSubmit is the single pre-submission decision point. Rules run in a fixed
// order and the first failure is returned: range shape and past date, then
// guest capacity, then overlap with blocking reservations.
func CanSubmit(req BookingRequest, existing []Reservation, property PropertyFacts, today time.Time) error {
	if err := ValidateRange(req.Range, today); err != nil {
		return err
	}
	if err := ValidateGuests(req.GuestCount, property.MaxGuests); err != nil {
		return err
	}
	result, err := Check(req.Range, BlockingRanges(existing))
	if err != nil {
		return err
	}
	if !result.Available() {
		return &DateConflictError{Range: *req.Range, Conflicts: result.Conflicts}
	}
	return nil
}
