package favorite

import (
	"context"
	"errors"
	"time"

	"havenstay/database/repository"
	favoriteRepo "havenstay/database/repository/favorite"
	propertyRepo "havenstay/database/repository/property"
	"havenstay/models"

	"github.com/google/uuid"
)

var ErrPropertyNotFound = errors.New("property not found")

type FavoriteService interface {
	// Toggle adds or removes a favorite and reports the new state.
	Toggle(ctx context.Context, session models.Session, propertyID string) (bool, error)
	IsFavorite(ctx context.Context, session models.Session, propertyID string) (bool, error)
	List(ctx context.Context, session models.Session) ([]models.PropertyCard, error)
}

type DefaultFavoriteService struct {
	Favorites  favoriteRepo.FavoriteRepository
	Properties propertyRepo.PropertyRepository
}

func (s *DefaultFavoriteService) Toggle(ctx context.Context, session models.Session, propertyID string) (bool, error) {
	removed, err := s.Favorites.Remove(ctx, session.UserID, propertyID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if _, err := s.Properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrPropertyNotFound
		}
		return false, err
	}
	err = s.Favorites.Add(ctx, &models.Favorite{
		ID:         uuid.New().String(),
		PropertyID: propertyID,
		ProfileID:  session.UserID,
		CreatedAt:  time.Now().UTC(),
	})
	// A concurrent toggle already added it.
	if errors.Is(err, repository.ErrDuplicate) {
		return true, nil
	}
	return err == nil, err
}

func (s *DefaultFavoriteService) IsFavorite(ctx context.Context, session models.Session, propertyID string) (bool, error) {
	return s.Favorites.Exists(ctx, session.UserID, propertyID)
}

// List returns favorited listings in the order they were saved. Listings
// deleted since then are skipped.
func (s *DefaultFavoriteService) List(ctx context.Context, session models.Session) ([]models.PropertyCard, error) {
	ids, err := s.Favorites.ListPropertyIDs(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.PropertyCard{}, nil
	}
	cards, err := s.Properties.ListCards(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.PropertyCard, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	out := make([]models.PropertyCard, 0, len(cards))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
