package user

import (
	"context"
	"errors"
	"strings"

	"havenstay/database/repository"
	"havenstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

// UpdateProfile sets only the fields present in the request.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.FullName != nil {
		set["fullName"] = strings.TrimSpace(*req.FullName)
	}
	if req.PhoneNumber != nil {
		set["phoneNumber"] = *req.PhoneNumber
	}
	if req.BirthDate != nil {
		set["birthDate"] = *req.BirthDate
	}
	if req.AvatarURL != nil {
		set["avatarUrl"] = *req.AvatarURL
	}
	if req.FCMToken != nil {
		set["fcmToken"] = *req.FCMToken
	}

	if len(set) > 0 {
		s.Logger.Debug("updating profile", zap.String("profile", userID), zap.Int("fields", len(set)))
		err := s.Repo.UpdateSetDocument(ctx, userID, set)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		if err != nil {
			return nil, err
		}
	}
	return s.GetProfile(ctx, userID)
}

// BecomeHost upgrades a guest to a host. The old token carries the guest
// role, so a new one is issued.
func (s *DefaultUserService) BecomeHost(ctx context.Context, userID string) (*models.AuthResponse, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Role == models.RoleHost {
		return nil, ErrAlreadyHost
	}
	profile.Role = models.RoleHost
	token, err := s.issueToken(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("profile became host", zap.String("profile", profile.ID))
	return &models.AuthResponse{Token: token, Profile: profile}, nil
}
