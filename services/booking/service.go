package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"havenstay/database/repository"
	bookingRepo "havenstay/database/repository/booking"
	propertyRepo "havenstay/database/repository/property"
	"havenstay/models"
	"havenstay/services/availability"
	"havenstay/services/payment"

	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Properties propertyRepo.PropertyRepository
	Bookings   bookingRepo.BookingRepository
	Payments   payment.Gateway
	Dispatcher Dispatcher
	Calculator availability.Calculator
	Currency   string
	Location   *time.Location
	Now        func() time.Time
	Logger     *zap.Logger
}

func (s *DefaultBookingService) today() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return availability.Today(now(), s.Location)
}

func (s *DefaultBookingService) loadProperty(ctx context.Context, id string) (*models.Property, error) {
	p, err := s.Properties.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func parseRange(req models.CreateBookingRequest) (*availability.DateRange, error) {
	r, err := availability.ParseDateRange(strings.TrimSpace(req.CheckIn), strings.TrimSpace(req.CheckOut))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDate, err)
	}
	return r, nil
}

// completionDue is the instant a stay checking out on checkOut becomes
// completable: midnight of that calendar day in the service's location.
func (s *DefaultBookingService) completionDue(checkOut time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := checkOut.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// snapshot loads the blocking reservations of a property from today on.
func (s *DefaultBookingService) snapshot(ctx context.Context, propertyID string, today time.Time) ([]availability.Reservation, error) {
	bookings, err := s.Bookings.ListBlocking(ctx, propertyID, today)
	if err != nil {
		return nil, err
	}
	out := make([]availability.Reservation, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, availability.Reservation{
			Range:  availability.NewDateRange(b.CheckIn, b.CheckOut),
			Status: b.Status,
		})
	}
	return out, nil
}

// Quote prices a stay and reports advisory availability. It never writes.
func (s *DefaultBookingService) Quote(ctx context.Context, req models.CreateBookingRequest) (*QuoteResult, error) {
	property, err := s.loadProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	r, err := parseRange(req)
	if err != nil {
		return nil, err
	}
	today := s.today()
	if r != nil {
		if err := availability.ValidateRange(r, today); err != nil {
			return nil, err
		}
	}
	if err := availability.ValidateGuests(req.GuestCount, property.MaxGuests); err != nil {
		return nil, err
	}

	existing, err := s.snapshot(ctx, property.ID, today)
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	avail, err := availability.Check(r, availability.BlockingRanges(existing))
	if err != nil {
		return nil, err
	}
	quote, err := s.Calculator.QuoteRange(property.PricePerNight.Decimal, r)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Availability: avail, Quote: quote.Display(s.Currency)}, nil
}

// Calendar lists the ranges a date picker must disable.
func (s *DefaultBookingService) Calendar(ctx context.Context, propertyID string) ([]availability.DateRange, error) {
	if _, err := s.loadProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	existing, err := s.snapshot(ctx, propertyID, s.today())
	if err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	return availability.BlockingRanges(existing), nil
}

func (s *DefaultBookingService) withProperties(ctx context.Context, bookings []models.Booking) ([]models.BookingWithProperty, error) {
	ids := make([]string, 0, len(bookings))
	seen := map[string]bool{}
	for _, b := range bookings {
		if !seen[b.PropertyID] {
			seen[b.PropertyID] = true
			ids = append(ids, b.PropertyID)
		}
	}
	cards, err := s.Properties.ListCards(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.PropertyCard, len(cards))
	for i := range cards {
		byID[cards[i].ID] = &cards[i]
	}

	out := make([]models.BookingWithProperty, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, models.BookingWithProperty{Booking: b, Property: byID[b.PropertyID]})
	}
	return out, nil
}

// ListForGuest returns the caller's trips, newest check-in first.
func (s *DefaultBookingService) ListForGuest(ctx context.Context, session models.Session) ([]models.BookingWithProperty, error) {
	bookings, err := s.Bookings.ListForGuest(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return s.withProperties(ctx, bookings)
}

// ListPendingForHost returns requests awaiting the caller's approval.
func (s *DefaultBookingService) ListPendingForHost(ctx context.Context, session models.Session) ([]models.BookingWithProperty, error) {
	if !session.IsHost() {
		return nil, ErrForbidden
	}
	bookings, err := s.Bookings.ListForHost(ctx, session.UserID, models.BookingPending)
	if err != nil {
		return nil, err
	}
	return s.withProperties(ctx, bookings)
}

// HostStats feeds the host dashboard.
func (s *DefaultBookingService) HostStats(ctx context.Context, session models.Session) (*models.HostStats, error) {
	if !session.IsHost() {
		return nil, ErrForbidden
	}
	listings, err := s.Properties.CountByHost(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	pending, err := s.Bookings.CountForHost(ctx, session.UserID, models.BookingPending, time.Time{})
	if err != nil {
		return nil, err
	}
	upcoming, err := s.Bookings.CountForHost(ctx, session.UserID, models.BookingConfirmed, s.today())
	if err != nil {
		return nil, err
	}
	revenue, err := s.Bookings.RevenueForHost(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return &models.HostStats{
		Listings:        listings,
		PendingRequests: pending,
		UpcomingStays:   upcoming,
		Revenue:         revenue,
	}, nil
}
