package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "havenstay/database/repository/booking"
	"havenstay/models"
	"havenstay/services/availability"
	"havenstay/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit runs the pre-submission gate on a fresh snapshot, writes the booking
// through the store's own conflict check, and then opens a payment intent.
// If the payment step fails the booking is cancelled so its dates free up.
func (s *DefaultBookingService) Submit(ctx context.Context, session models.Session, req models.CreateBookingRequest) (*SubmitResult, error) {
	if !session.Authenticated() {
		return nil, ErrForbidden
	}
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	property, err := s.loadProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, ErrPropertyUnavailable
	}
	if property.HostID == session.UserID {
		return nil, ErrOwnProperty
	}

	r, err := parseRange(req)
	if err != nil {
		return nil, err
	}
	today := s.today()
	existing, err := s.snapshot(ctx, property.ID, today)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	bookingReq := availability.BookingRequest{PropertyID: property.ID, Range: r, GuestCount: req.GuestCount}
	facts := availability.PropertyFacts{PricePerNight: property.PricePerNight.Decimal, MaxGuests: property.MaxGuests}
	if err := availability.CanSubmit(bookingReq, existing, facts, today); err != nil {
		return nil, err
	}

	quote, err := s.Calculator.QuoteRange(facts.PricePerNight, r)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		PropertyID:  property.ID,
		GuestID:     session.UserID,
		HostID:      property.HostID,
		CheckIn:     r.Start,
		CheckOut:    r.End,
		GuestCount:  req.GuestCount,
		Nights:      quote.Nights,
		NightlyRate: models.NewMoney(quote.NightlyRate),
		CleaningFee: models.NewMoney(quote.CleaningFee),
		TotalPrice:  models.NewMoney(quote.GrandTotal),
		Currency:    s.Currency,
		Status:      models.BookingPending,
	}

	if err := s.Bookings.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingConflict) {
			return nil, &RemoteConflictError{Range: *r}
		}
		return nil, fmt.Errorf("store booking: %w", err)
	}

	intent, err := s.openPayment(ctx, booking)
	if err != nil {
		s.rollback(ctx, booking, intent, err)
		return nil, ErrPaymentFailed
	}

	s.notify(ctx, models.BookingNotifyPayload{
		BookingID:   booking.ID,
		RecipientID: booking.HostID,
		Title:       "New booking request",
		Body:        fmt.Sprintf("%s requested %s for %d guests", property.Title, r, booking.GuestCount),
	})

	s.Logger.Info("booking submitted",
		zap.String("booking", booking.ID),
		zap.String("property", booking.PropertyID),
		zap.Stringer("range", r),
		zap.String("total", booking.TotalPrice.StringFixed(2)),
	)
	return &SubmitResult{Booking: booking, Payment: intent}, nil
}

func (s *DefaultBookingService) openPayment(ctx context.Context, booking *models.Booking) (*payment.Intent, error) {
	intent, err := s.Payments.CreateIntent(ctx, booking)
	if err != nil || intent == nil {
		return nil, err
	}
	if err := s.Bookings.SetPaymentIntent(ctx, booking.ID, intent.ID); err != nil {
		return intent, err
	}
	booking.PaymentIntentID = intent.ID
	return intent, nil
}

// rollback cancels a booking whose follow-up failed.
func (s *DefaultBookingService) rollback(ctx context.Context, booking *models.Booking, intent *payment.Intent, cause error) {
	s.Logger.Error("booking follow-up failed, cancelling", zap.String("booking", booking.ID), zap.Error(cause))
	if intent != nil {
		if err := s.Payments.CancelIntent(ctx, intent.ID); err != nil {
			s.Logger.Error("failed to cancel payment intent", zap.String("intent", intent.ID), zap.Error(err))
		}
	}
	if _, err := s.Bookings.UpdateStatus(ctx, booking.ID, models.BookingPending, models.BookingCancelled); err != nil {
		s.Logger.Error("failed to cancel booking after follow-up failure", zap.String("booking", booking.ID), zap.Error(err))
	}
}

// notify is best effort; a lost push never undoes a booking.
func (s *DefaultBookingService) notify(ctx context.Context, payload models.BookingNotifyPayload) {
	if s.Dispatcher == nil {
		return
	}
	if err := s.Dispatcher.Notify(ctx, payload); err != nil {
		s.Logger.Warn("failed to enqueue booking notification", zap.String("booking", payload.BookingID), zap.Error(err))
	}
}
