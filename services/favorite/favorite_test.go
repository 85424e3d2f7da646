package favorite

import (
	"context"
	"errors"
	"testing"

	"havenstay/database/repository"
	propertyRepo "havenstay/database/repository/property"
	"havenstay/models"
)

type fakeFavorites struct {
	ids []string
}

func (f *fakeFavorites) Add(_ context.Context, fav *models.Favorite) error {
	for _, id := range f.ids {
		if id == fav.PropertyID {
			return repository.ErrDuplicate
		}
	}
	f.ids = append([]string{fav.PropertyID}, f.ids...)
	return nil
}
func (f *fakeFavorites) Remove(_ context.Context, _, propertyID string) (bool, error) {
	for i, id := range f.ids {
		if id == propertyID {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeFavorites) Exists(_ context.Context, _, propertyID string) (bool, error) {
	for _, id := range f.ids {
		if id == propertyID {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeFavorites) ListPropertyIDs(context.Context, string) ([]string, error) {
	return append([]string(nil), f.ids...), nil
}

type listings struct {
	propertyRepo.PropertyRepository
	known map[string]bool
}

func (l listings) GetByID(_ context.Context, id string) (*models.Property, error) {
	if !l.known[id] {
		return nil, repository.ErrNotFound
	}
	return &models.Property{ID: id}, nil
}

func (l listings) ListCards(_ context.Context, ids []string) ([]models.PropertyCard, error) {
	var out []models.PropertyCard
	for _, id := range ids {
		if l.known[id] {
			out = append(out, models.PropertyCard{ID: id})
		}
	}
	return out, nil
}

func TestToggleAndList(t *testing.T) {
	props := listings{known: map[string]bool{"villa": true, "cabin": true}}
	svc := &DefaultFavoriteService{Favorites: &fakeFavorites{}, Properties: props}
	ctx := context.Background()
	me := models.Session{UserID: "ana"}

	for _, id := range []string{"villa", "cabin"} {
		on, err := svc.Toggle(ctx, me, id)
		if err != nil || !on {
			t.Fatalf("toggle %s on: %v, %v", id, on, err)
		}
	}
	if on, _ := svc.IsFavorite(ctx, me, "villa"); !on {
		t.Fatal("villa should be a favorite")
	}

	list, err := svc.List(ctx, me)
	if err != nil || len(list) != 2 || list[0].ID != "cabin" {
		t.Fatalf("expected most recent first, got %+v (%v)", list, err)
	}

	on, err := svc.Toggle(ctx, me, "villa")
	if err != nil || on {
		t.Fatalf("toggle villa off: %v, %v", on, err)
	}

	// A listing removed after being saved drops out of the list.
	delete(props.known, "cabin")
	list, _ = svc.List(ctx, me)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}

	if _, err := svc.Toggle(ctx, me, "ghost"); !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}
