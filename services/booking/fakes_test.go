package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"havenstay/database/repository"
	bookingRepo "havenstay/database/repository/booking"
	"havenstay/models"
	"havenstay/services/payment"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeProperties struct {
	items map[string]*models.Property
}

func (f *fakeProperties) Create(_ context.Context, p *models.Property) error {
	f.items[p.ID] = p
	return nil
}
func (f *fakeProperties) GetByID(_ context.Context, id string) (*models.Property, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProperties) Update(context.Context, *models.Property) error { return nil }
func (f *fakeProperties) Delete(context.Context, string) error           { return nil }
func (f *fakeProperties) AddImage(context.Context, string, string) (*models.Property, error) {
	return nil, nil
}
func (f *fakeProperties) ListFeatured(context.Context, int) ([]models.PropertyCard, error) {
	return nil, nil
}
func (f *fakeProperties) ListByHost(context.Context, string) ([]models.Property, error) {
	return nil, nil
}
func (f *fakeProperties) CountByHost(_ context.Context, hostID string) (int, error) {
	n := 0
	for _, p := range f.items {
		if p.HostID == hostID {
			n++
		}
	}
	return n, nil
}
func (f *fakeProperties) ListCards(_ context.Context, ids []string) ([]models.PropertyCard, error) {
	var cards []models.PropertyCard
	for _, id := range ids {
		if p, ok := f.items[id]; ok {
			cards = append(cards, models.PropertyCard{ID: p.ID, Title: p.Title, PricePerNight: p.PricePerNight})
		}
	}
	return cards, nil
}
func (f *fakeProperties) Search(context.Context, mongo.Pipeline) ([]models.PropertyCard, error) {
	return nil, nil
}

// fakeBookings mirrors the store's authoritative overlap check under a mutex.
type fakeBookings struct {
	mu    sync.Mutex
	items map[string]*models.Booking
	order []string
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{items: map[string]*models.Booking{}}
}

func (f *fakeBookings) put(b models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[b.ID] = &b
	f.order = append(f.order, b.ID)
}

func (f *fakeBookings) CreateIfAvailable(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.PropertyID == b.PropertyID && existing.Status.Blocks() &&
			existing.CheckIn.Before(b.CheckOut) && b.CheckIn.Before(existing.CheckOut) {
			return bookingRepo.ErrBookingConflict
		}
	}
	cp := *b
	f.items[b.ID] = &cp
	f.order = append(f.order, b.ID)
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) filter(keep func(*models.Booking) bool) []models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, id := range f.order {
		if b := f.items[id]; keep(b) {
			out = append(out, *b)
		}
	}
	return out
}

func (f *fakeBookings) ListBlocking(_ context.Context, propertyID string, from time.Time) ([]models.Booking, error) {
	return f.filter(func(b *models.Booking) bool {
		return b.PropertyID == propertyID && b.Status.Blocks() && b.CheckOut.After(from)
	}), nil
}
func (f *fakeBookings) ListForGuest(_ context.Context, guestID string) ([]models.Booking, error) {
	return f.filter(func(b *models.Booking) bool { return b.GuestID == guestID }), nil
}
func (f *fakeBookings) ListForHost(_ context.Context, hostID string, status models.BookingStatus) ([]models.Booking, error) {
	return f.filter(func(b *models.Booking) bool { return b.HostID == hostID && (status == "" || b.Status == status) }), nil
}
func (f *fakeBookings) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.items[id]
	if !ok || b.Status != from {
		return nil, bookingRepo.ErrStatusChanged
	}
	b.Status = to
	cp := *b
	return &cp, nil
}
func (f *fakeBookings) SetPaymentIntent(_ context.Context, id, intent string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.items[id]; ok {
		b.PaymentIntentID = intent
		return nil
	}
	return repository.ErrNotFound
}
func (f *fakeBookings) ListDueForCompletion(_ context.Context, day time.Time) ([]models.Booking, error) {
	return f.filter(func(b *models.Booking) bool {
		return b.Status == models.BookingConfirmed && !b.CheckOut.After(day)
	}), nil
}
func (f *fakeBookings) HasCompletedStay(_ context.Context, guestID, propertyID string) (bool, error) {
	return len(f.filter(func(b *models.Booking) bool {
		return b.GuestID == guestID && b.PropertyID == propertyID && b.Status == models.BookingCompleted
	})) > 0, nil
}
func (f *fakeBookings) CountForHost(_ context.Context, hostID string, status models.BookingStatus, from time.Time) (int, error) {
	return len(f.filter(func(b *models.Booking) bool {
		return b.HostID == hostID && b.Status == status && (from.IsZero() || !b.CheckIn.Before(from))
	})), nil
}
func (f *fakeBookings) RevenueForHost(_ context.Context, hostID string) (models.Money, error) {
	total := decimal.Zero
	for _, b := range f.filter(func(b *models.Booking) bool {
		return b.HostID == hostID && (b.Status == models.BookingConfirmed || b.Status == models.BookingCompleted)
	}) {
		total = total.Add(b.TotalPrice.Decimal)
	}
	return models.NewMoney(total), nil
}

type fakeGateway struct {
	mu        sync.Mutex
	fail      bool
	created   []string
	cancelled []string
}

func (g *fakeGateway) CreateIntent(_ context.Context, b *models.Booking) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return nil, errors.New("card network down")
	}
	g.created = append(g.created, b.ID)
	return &payment.Intent{ID: "pi_" + b.ID, ClientSecret: "secret"}, nil
}
func (g *fakeGateway) CancelIntent(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelled = append(g.cancelled, id)
	return nil
}

type fakeDispatcher struct {
	mu        sync.Mutex
	scheduled []string
	dueAt     []time.Time
	notified  []models.BookingNotifyPayload
}

func (d *fakeDispatcher) ScheduleCompletion(_ context.Context, id string, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scheduled = append(d.scheduled, id)
	d.dueAt = append(d.dueAt, at)
	return nil
}
func (d *fakeDispatcher) Notify(_ context.Context, p models.BookingNotifyPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notified = append(d.notified, p)
	return nil
}
