package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"havenstay/database/repository"
	"havenstay/models"
	"havenstay/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// verifyPasswordComplexity requires at least one letter and one digit.
func verifyPasswordComplexity(pw string) error {
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrWeakPassword
	}
	return nil
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return utils.TokenTTL
}

// issueToken signs a new token, stores its hash and drops any cached hash so
// older tokens stop working.
func (s *DefaultUserService) issueToken(ctx context.Context, profile *models.Profile) (string, error) {
	token, err := utils.GenerateToken(profile.ID, profile.Role, s.tokenTTL())
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	profile.TokenHash = utils.HashToken(token)
	if err := s.Repo.UpdateSetDocument(ctx, profile.ID, bson.M{"tokenHash": profile.TokenHash, "role": profile.Role}); err != nil {
		return "", fmt.Errorf("store token hash: %w", err)
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+profile.ID).Err(); err != nil {
			s.Logger.Warn("failed to clear auth cache", zap.String("profile", profile.ID), zap.Error(err))
		}
	}
	return token, nil
}

// Register creates a guest profile and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := models.Validate(req); err != nil {
		return nil, err
	}
	if err := verifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now().UTC()
	profile := &models.Profile{
		ID:           uuid.New().String(),
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         models.RoleGuest,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.Logger.Error("failed to create profile", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := s.issueToken(ctx, profile)
	if err != nil {
		s.Logger.Error("failed to issue token", zap.String("profile", profile.ID), zap.Error(err))
		// Drop the half-registered profile so the email can be retried.
		if delErr := s.Repo.Delete(ctx, profile.ID); delErr != nil {
			s.Logger.Error("failed to remove profile after token error", zap.String("profile", profile.ID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("registration failed, please try again")
	}
	s.Logger.Info("profile registered", zap.String("profile", profile.ID))
	return &models.AuthResponse{Token: token, Profile: profile}, nil
}

// Login checks the password and rotates the profile's token.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	profile, err := s.Repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.Logger.Error("failed to fetch profile", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, profile)
	if err != nil {
		s.Logger.Error("failed to issue token", zap.String("profile", profile.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	return &models.AuthResponse{Token: token, Profile: profile}, nil
}
