package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"havenstay/database/repository"
	amenityRepo "havenstay/database/repository/amenity"
	propertyRepo "havenstay/database/repository/property"
	reviewRepo "havenstay/database/repository/review"
	"havenstay/models"
	"havenstay/services/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const FeaturedLimit = 6

var (
	ErrNotFound       = errors.New("property not found")
	ErrHostOnly       = errors.New("only hosts can manage listings")
	ErrNotOwner       = errors.New("listing belongs to another host")
	ErrInvalidPrice   = errors.New("price per night must be a positive amount")
	ErrUnknownAmenity = errors.New("unknown amenity")
	ErrImagesDisabled = errors.New("image uploads are not configured")
)

type PropertyService interface {
	Create(ctx context.Context, session models.Session, input models.PropertyInput) (*models.Property, error)
	Get(ctx context.Context, id string) (*models.PropertyDetail, error)
	ListFeatured(ctx context.Context) ([]models.PropertyCard, error)
	ListByHost(ctx context.Context, session models.Session) ([]models.Property, error)
	Update(ctx context.Context, session models.Session, id string, input models.PropertyInput) (*models.Property, error)
	Delete(ctx context.Context, session models.Session, id string) error
	UploadImage(ctx context.Context, session models.Session, id string, file io.Reader) (*models.Property, error)
}

type DefaultPropertyService struct {
	Properties propertyRepo.PropertyRepository
	Amenities  amenityRepo.AmenityRepository
	Reviews    reviewRepo.ReviewRepository
	Images     storage.ImageStore
	Logger     *zap.Logger
}

// normalizeAmenities dedupes ids and checks that each one exists.
func (s *DefaultPropertyService) normalizeAmenities(ctx context.Context, ids []string) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return out, nil
	}
	found, err := s.Amenities.GetByIDs(ctx, out)
	if err != nil {
		return nil, fmt.Errorf("load amenities: %w", err)
	}
	if len(found) != len(out) {
		return nil, ErrUnknownAmenity
	}
	return out, nil
}

// apply copies validated input onto p.
func (s *DefaultPropertyService) apply(ctx context.Context, p *models.Property, input models.PropertyInput) error {
	if err := models.Validate(input); err != nil {
		return err
	}
	price, err := models.ParseMoney(input.PricePerNight)
	if err != nil || !price.IsPositive() {
		return ErrInvalidPrice
	}
	amenities, err := s.normalizeAmenities(ctx, input.AmenityIDs)
	if err != nil {
		return err
	}

	p.Title = strings.TrimSpace(input.Title)
	p.Description = strings.TrimSpace(input.Description)
	p.Address = strings.TrimSpace(input.Address)
	p.City = strings.TrimSpace(input.City)
	p.Latitude = input.Latitude
	p.Longitude = input.Longitude
	p.PricePerNight = models.NewMoney(price.Round(2))
	p.MaxGuests = input.MaxGuests
	p.Bedrooms = input.Bedrooms
	p.Beds = input.Beds
	p.Bathrooms = input.Bathrooms
	p.AmenityIDs = amenities
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	return nil
}

func (s *DefaultPropertyService) load(ctx context.Context, id string) (*models.Property, error) {
	p, err := s.Properties.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// owned loads a listing the caller may modify.
func (s *DefaultPropertyService) owned(ctx context.Context, session models.Session, id string) (*models.Property, error) {
	if !session.IsHost() {
		return nil, ErrHostOnly
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.HostID != session.UserID {
		return nil, ErrNotOwner
	}
	return p, nil
}

func (s *DefaultPropertyService) Create(ctx context.Context, session models.Session, input models.PropertyInput) (*models.Property, error) {
	if !session.IsHost() {
		return nil, ErrHostOnly
	}
	now := time.Now().UTC()
	p := &models.Property{
		ID:        uuid.New().String(),
		HostID:    session.UserID,
		Images:    []string{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.apply(ctx, p, input); err != nil {
		return nil, err
	}
	if err := s.Properties.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("store property: %w", err)
	}
	s.Logger.Info("property created", zap.String("property", p.ID), zap.String("host", p.HostID))
	return p, nil
}

// Get returns a listing with its amenities and a freshly computed rating.
func (s *DefaultPropertyService) Get(ctx context.Context, id string) (*models.PropertyDetail, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.PropertyDetail{Property: *p, Amenities: []models.Amenity{}}
	if len(p.AmenityIDs) > 0 {
		amenities, err := s.Amenities.GetByIDs(ctx, p.AmenityIDs)
		if err != nil {
			return nil, fmt.Errorf("load amenities: %w", err)
		}
		detail.Amenities = amenities
	}
	summary, err := s.Reviews.Summary(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load rating: %w", err)
	}
	detail.Rating = summary
	return detail, nil
}

func (s *DefaultPropertyService) ListFeatured(ctx context.Context) ([]models.PropertyCard, error) {
	return s.Properties.ListFeatured(ctx, FeaturedLimit)
}

func (s *DefaultPropertyService) ListByHost(ctx context.Context, session models.Session) ([]models.Property, error) {
	if !session.IsHost() {
		return nil, ErrHostOnly
	}
	return s.Properties.ListByHost(ctx, session.UserID)
}

func (s *DefaultPropertyService) Update(ctx context.Context, session models.Session, id string, input models.PropertyInput) (*models.Property, error) {
	p, err := s.owned(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, p, input); err != nil {
		return nil, err
	}
	if err := s.Properties.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	return p, nil
}

// Delete removes a listing. Existing bookings keep their own copy of the
// price and dates.
func (s *DefaultPropertyService) Delete(ctx context.Context, session models.Session, id string) error {
	if _, err := s.owned(ctx, session, id); err != nil {
		return err
	}
	if err := s.Properties.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.Logger.Info("property deleted", zap.String("property", id))
	return nil
}

// UploadImage stores a photo and appends it to the gallery. The first photo
// becomes the main image.
func (s *DefaultPropertyService) UploadImage(ctx context.Context, session models.Session, id string, file io.Reader) (*models.Property, error) {
	if s.Images == nil {
		return nil, ErrImagesDisabled
	}
	if _, err := s.owned(ctx, session, id); err != nil {
		return nil, err
	}
	img, err := s.Images.Upload(ctx, file, "properties/"+id, uuid.New().String())
	if err != nil {
		return nil, err
	}
	p, err := s.Properties.AddImage(ctx, id, img.URL)
	if err != nil {
		if delErr := s.Images.Delete(ctx, img.PublicID); delErr != nil {
			s.Logger.Warn("failed to remove orphaned image", zap.String("image", img.PublicID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("attach image: %w", err)
	}
	return p, nil
}
