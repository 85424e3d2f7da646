package bookingRepo

import (
	"context"
	"errors"
	"time"

	"havenstay/models"
)

var (
	// ErrBookingConflict means a blocking booking already holds part of the
	// requested range. The caller's availability snapshot was stale.
	ErrBookingConflict = errors.New("booking conflicts with an existing reservation")
	// ErrStatusChanged means the booking was not in the expected status when
	// a compare-and-set transition ran.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// CreateIfAvailable inserts booking only if no pending or confirmed booking
	// of the same property overlaps its range. The check and insert commit atomically.
	CreateIfAvailable(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListBlocking returns pending and confirmed bookings of a property that end after from.
	ListBlocking(ctx context.Context, propertyID string, from time.Time) ([]models.Booking, error)
	ListForGuest(ctx context.Context, guestID string) ([]models.Booking, error)
	ListForHost(ctx context.Context, hostID string, status models.BookingStatus) ([]models.Booking, error)
	// UpdateStatus moves a booking from one status to another, failing with
	// ErrStatusChanged when the stored status is not from.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error)
	SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error
	// ListDueForCompletion returns confirmed bookings whose checkout is on or before day.
	ListDueForCompletion(ctx context.Context, day time.Time) ([]models.Booking, error)
	HasCompletedStay(ctx context.Context, guestID, propertyID string) (bool, error)
	CountForHost(ctx context.Context, hostID string, status models.BookingStatus, checkInFrom time.Time) (int, error)
	// RevenueForHost sums the totals of confirmed and completed bookings.
	RevenueForHost(ctx context.Context, hostID string) (models.Money, error)
}
