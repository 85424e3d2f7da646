package review

import (
	"context"
	"errors"
	"testing"

	"havenstay/database/repository"
	bookingRepo "havenstay/database/repository/booking"
	propertyRepo "havenstay/database/repository/property"
	"havenstay/models"

	"go.uber.org/zap"
)

type fakeReviews struct {
	items []models.Review
}

func (f *fakeReviews) Create(_ context.Context, r *models.Review) error {
	for _, existing := range f.items {
		if existing.GuestID == r.GuestID && existing.PropertyID == r.PropertyID {
			return repository.ErrDuplicate
		}
	}
	f.items = append(f.items, *r)
	return nil
}
func (f *fakeReviews) ListForProperty(_ context.Context, id string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.items {
		if r.PropertyID == id {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeReviews) Summary(ctx context.Context, id string) (models.RatingSummary, error) {
	list, _ := f.ListForProperty(ctx, id)
	if len(list) == 0 {
		return models.RatingSummary{}, nil
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return models.RatingSummary{Average: float64(sum) / float64(len(list)), Count: len(list)}, nil
}

// stays embeds the repository interfaces so only the methods the review
// service calls need bodies.
type stays struct {
	bookingRepo.BookingRepository
	completed map[string]bool
}

func (s stays) HasCompletedStay(_ context.Context, guestID, propertyID string) (bool, error) {
	return s.completed[guestID+"/"+propertyID], nil
}

type listings struct {
	propertyRepo.PropertyRepository
}

func (listings) GetByID(_ context.Context, id string) (*models.Property, error) {
	if id != "villa" {
		return nil, repository.ErrNotFound
	}
	return &models.Property{ID: id}, nil
}

func newService() (*DefaultReviewService, *fakeReviews) {
	reviews := &fakeReviews{}
	return &DefaultReviewService{
		Reviews:    reviews,
		Bookings:   stays{completed: map[string]bool{"ana/villa": true, "ben/villa": true}},
		Properties: listings{},
		Logger:     zap.NewNop(),
	}, reviews
}

func TestCreateReview(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	ana := models.Session{UserID: "ana", Role: models.RoleGuest}

	r, err := svc.Create(ctx, ana, "villa", models.CreateReviewRequest{Rating: 5, Comment: " lovely "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.Comment != "lovely" || r.ID == "" {
		t.Fatalf("unexpected review %+v", r)
	}
	if _, err := svc.Create(ctx, ana, "villa", models.CreateReviewRequest{Rating: 4}); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}

	stranger := models.Session{UserID: "cara", Role: models.RoleGuest}
	if _, err := svc.Create(ctx, stranger, "villa", models.CreateReviewRequest{Rating: 4}); !errors.Is(err, ErrNoCompletedStay) {
		t.Fatalf("expected ErrNoCompletedStay, got %v", err)
	}
	if _, err := svc.Create(ctx, ana, "cabin", models.CreateReviewRequest{Rating: 4}); !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
	for _, rating := range []int{0, 6} {
		var verr *models.ValidationError
		if _, err := svc.Create(ctx, ana, "villa", models.CreateReviewRequest{Rating: rating}); !errors.As(err, &verr) {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestSummaryRecomputedOnRead(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if s, _ := svc.Summary(ctx, "villa"); s.Count != 0 || s.Average != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
	_, _ = svc.Create(ctx, models.Session{UserID: "ana"}, "villa", models.CreateReviewRequest{Rating: 5})
	_, _ = svc.Create(ctx, models.Session{UserID: "ben"}, "villa", models.CreateReviewRequest{Rating: 2})

	s, err := svc.Summary(ctx, "villa")
	if err != nil || s.Count != 2 || s.Average != 3.5 {
		t.Fatalf("unexpected summary %+v (%v)", s, err)
	}
	list, _ := svc.ListForProperty(ctx, "villa")
	if len(list) != 2 {
		t.Fatalf("expected two reviews, got %d", len(list))
	}
}
