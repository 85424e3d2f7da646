package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// BlockingStatuses are the statuses that hold dates on a property calendar.
var BlockingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// Blocks reports whether a booking in this status makes its dates unavailable.
func (s BookingStatus) Blocks() bool {
	return s == BookingPending || s == BookingConfirmed
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled, BookingCompleted},
}

// CanTransition reports whether a booking may move from s to next.
// Cancelled and completed are terminal.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a persisted reservation of a property by a guest.
// CheckIn and CheckOut are calendar days at UTC midnight, CheckOut exclusive.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	PropertyID      string        `bson:"propertyId" json:"propertyId"`
	GuestID         string        `bson:"guestId" json:"guestId"`
	HostID          string        `bson:"hostId" json:"hostId"`
	CheckIn         time.Time     `bson:"checkIn" json:"checkIn"`
	CheckOut        time.Time     `bson:"checkOut" json:"checkOut"`
	GuestCount      int           `bson:"guestCount" json:"guestCount"`
	Nights          int           `bson:"nights" json:"nights"`
	NightlyRate     Money         `bson:"nightlyRate" json:"nightlyRate"`
	CleaningFee     Money         `bson:"cleaningFee" json:"cleaningFee"`
	TotalPrice      Money         `bson:"totalPrice" json:"totalPrice"`
	Currency        string        `bson:"currency" json:"currency"`
	Status          BookingStatus `bson:"status" json:"status"`
	PaymentIntentID string        `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BookingWithProperty is a booking joined with a summary of its listing.
type BookingWithProperty struct {
	Booking  `bson:",inline"`
	Property *PropertyCard `bson:"property,omitempty" json:"property,omitempty"`
}

// CreateBookingRequest is the body of a booking submission or quote.
type CreateBookingRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	GuestCount int    `json:"guestCount"`
}

type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" validate:"required,oneof=confirmed cancelled"`
}

// BookingCompletePayload is the asynq payload for completing a stay.
type BookingCompletePayload struct {
	BookingID string `json:"bookingId"`
}

// BookingNotifyPayload is the asynq payload for pushing a booking event.
type BookingNotifyPayload struct {
	BookingID   string `json:"bookingId"`
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

// HostStats summarizes a host's listings and bookings.
type HostStats struct {
	Listings        int   `json:"listings"`
	PendingRequests int   `json:"pendingRequests"`
	UpcomingStays   int   `json:"upcomingStays"`
	Revenue         Money `json:"revenue"`
}
