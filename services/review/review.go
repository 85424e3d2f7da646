package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"havenstay/database/repository"
	bookingRepo "havenstay/database/repository/booking"
	profileRepo "havenstay/database/repository/profile"
	propertyRepo "havenstay/database/repository/property"
	reviewRepo "havenstay/database/repository/review"
	"havenstay/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNoCompletedStay  = errors.New("only guests with a completed stay can review")
	ErrAlreadyReviewed  = errors.New("you have already reviewed this property")
)

type ReviewService interface {
	Create(ctx context.Context, session models.Session, propertyID string, req models.CreateReviewRequest) (*models.Review, error)
	ListForProperty(ctx context.Context, propertyID string) ([]models.Review, error)
	Summary(ctx context.Context, propertyID string) (models.RatingSummary, error)
}

type DefaultReviewService struct {
	Reviews    reviewRepo.ReviewRepository
	Bookings   bookingRepo.BookingRepository
	Properties propertyRepo.PropertyRepository
	Profiles   profileRepo.ProfileRepository
	Logger     *zap.Logger
}

func (s *DefaultReviewService) Create(ctx context.Context, session models.Session, propertyID string, req models.CreateReviewRequest) (*models.Review, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.Properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	stayed, err := s.Bookings.HasCompletedStay(ctx, session.UserID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("check stay: %w", err)
	}
	if !stayed {
		return nil, ErrNoCompletedStay
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		PropertyID: propertyID,
		GuestID:    session.UserID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	// The name is denormalized for display; a missing profile only loses it.
	if s.Profiles != nil {
		if p, err := s.Profiles.GetByIDWithProjection(ctx, session.UserID, bson.M{"fullName": 1}); err == nil {
			review.GuestName = p.FullName
		}
	}

	if err := s.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	s.Logger.Info("review created", zap.String("property", propertyID), zap.Int("rating", review.Rating))
	return review, nil
}

func (s *DefaultReviewService) ListForProperty(ctx context.Context, propertyID string) ([]models.Review, error) {
	return s.Reviews.ListForProperty(ctx, propertyID)
}

func (s *DefaultReviewService) Summary(ctx context.Context, propertyID string) (models.RatingSummary, error) {
	return s.Reviews.Summary(ctx, propertyID)
}
