package booking

import (
	"context"
	"time"

	"havenstay/models"
	"havenstay/services/availability"
	"havenstay/services/payment"
)

// BookingService covers quoting, submitting and managing stays.
type BookingService interface {
	Quote(ctx context.Context, req models.CreateBookingRequest) (*QuoteResult, error)
	Calendar(ctx context.Context, propertyID string) ([]availability.DateRange, error)
	Submit(ctx context.Context, session models.Session, req models.CreateBookingRequest) (*SubmitResult, error)
	ListForGuest(ctx context.Context, session models.Session) ([]models.BookingWithProperty, error)
	ListPendingForHost(ctx context.Context, session models.Session) ([]models.BookingWithProperty, error)
	UpdateStatus(ctx context.Context, session models.Session, bookingID string, to models.BookingStatus) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string) error
	CompleteDue(ctx context.Context) (int, error)
	HostStats(ctx context.Context, session models.Session) (*models.HostStats, error)
}

// Dispatcher runs booking follow-ups in the background.
type Dispatcher interface {
	ScheduleCompletion(ctx context.Context, bookingID string, at time.Time) error
	Notify(ctx context.Context, payload models.BookingNotifyPayload) error
}

// QuoteResult is the advisory answer shown before submission.
type QuoteResult struct {
	Availability availability.Availability `json:"availability"`
	Quote        availability.QuoteView    `json:"quote"`
}

// SubmitResult is a stored booking plus the payment handle the client confirms.
type SubmitResult struct {
	Booking *models.Booking `json:"booking"`
	Payment *payment.Intent `json:"payment,omitempty"`
}
