package user

import (
	"context"
	"time"

	profileRepo "havenstay/database/repository/profile"
	"havenstay/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// Profile management
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Profile, error)
	BecomeHost(ctx context.Context, userID string) (*models.AuthResponse, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo      profileRepo.ProfileRepository
	AuthCache *redis.Client
	TokenTTL  time.Duration
	Logger    *zap.Logger
}
