package booking

import (
	"context"
	"errors"
	"fmt"

	"havenstay/database/repository"
	"havenstay/models"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) loadBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

// authorize decides who may request a transition. Hosts answer pending
// requests; guests may withdraw pending or confirmed stays.
func authorize(session models.Session, b *models.Booking, to models.BookingStatus) error {
	isHost := session.UserID == b.HostID
	isGuest := session.UserID == b.GuestID
	switch to {
	case models.BookingConfirmed:
		if !isHost {
			return ErrForbidden
		}
	case models.BookingCancelled:
		if !isHost && !isGuest {
			return ErrForbidden
		}
		if isHost && !isGuest && b.Status != models.BookingPending {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}
	return nil
}

// UpdateStatus applies a user requested transition with compare-and-set
// semantics against the stored status.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, session models.Session, bookingID string, to models.BookingStatus) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(session, b, to); err != nil {
		return nil, err
	}
	if !b.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, to)
	}

	updated, err := s.Bookings.UpdateStatus(ctx, b.ID, b.Status, to)
	if err != nil {
		return nil, err
	}

	switch to {
	case models.BookingConfirmed:
		if s.Dispatcher != nil {
			if err := s.Dispatcher.ScheduleCompletion(ctx, updated.ID, s.completionDue(updated.CheckOut)); err != nil {
				s.Logger.Warn("failed to schedule completion, sweep will pick it up", zap.String("booking", updated.ID), zap.Error(err))
			}
		}
		s.notify(ctx, models.BookingNotifyPayload{
			BookingID:   updated.ID,
			RecipientID: updated.GuestID,
			Title:       "Booking confirmed",
			Body:        "Your stay from " + updated.CheckIn.Format("Jan 2") + " is confirmed",
		})
	case models.BookingCancelled:
		if updated.PaymentIntentID != "" {
			if err := s.Payments.CancelIntent(ctx, updated.PaymentIntentID); err != nil {
				s.Logger.Warn("failed to cancel payment intent", zap.String("booking", updated.ID), zap.Error(err))
			}
		}
		recipient := updated.HostID
		if session.UserID == updated.HostID {
			recipient = updated.GuestID
		}
		s.notify(ctx, models.BookingNotifyPayload{
			BookingID:   updated.ID,
			RecipientID: recipient,
			Title:       "Booking cancelled",
			Body:        "The stay from " + updated.CheckIn.Format("Jan 2") + " was cancelled",
		})
	}

	s.Logger.Info("booking status changed",
		zap.String("booking", updated.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(to)),
		zap.String("by", session.UserID),
	)
	return updated, nil
}

// Complete marks a confirmed stay as completed once checkout has passed.
// Completing an already completed booking is a no-op.
func (s *DefaultBookingService) Complete(ctx context.Context, bookingID string) error {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status == models.BookingCompleted {
		return nil
	}
	if !b.Status.CanTransition(models.BookingCompleted) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, models.BookingCompleted)
	}
	if b.CheckOut.After(s.today()) {
		return ErrNotDue
	}
	if _, err := s.Bookings.UpdateStatus(ctx, b.ID, b.Status, models.BookingCompleted); err != nil {
		return err
	}
	s.Logger.Info("booking completed", zap.String("booking", b.ID))
	return nil
}

// CompleteDue completes every confirmed booking whose checkout has passed.
func (s *DefaultBookingService) CompleteDue(ctx context.Context) (int, error) {
	due, err := s.Bookings.ListDueForCompletion(ctx, s.today())
	if err != nil {
		return 0, err
	}
	completed := 0
	for _, b := range due {
		if err := s.Complete(ctx, b.ID); err != nil {
			s.Logger.Warn("failed to complete booking", zap.String("booking", b.ID), zap.Error(err))
			continue
		}
		completed++
	}
	return completed, nil
}
