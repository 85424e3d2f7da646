package availability

// ValidateGuests enforces 1 <= guestCount <= maxGuests.
func ValidateGuests(guestCount, maxGuests int) error {
	if guestCount < 1 {
		return &InvalidGuestCountError{GuestCount: guestCount}
	}
	if guestCount > maxGuests {
		return &CapacityExceededError{GuestCount: guestCount, MaxGuests: maxGuests}
	}
	return nil
}
