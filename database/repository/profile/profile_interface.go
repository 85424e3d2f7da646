package profileRepo

import (
	"context"

	"havenstay/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfileRepository defines methods for profile data access.
type ProfileRepository interface {
	// Create inserts a new profile. A taken email yields repository.ErrDuplicate.
	Create(ctx context.Context, profile *models.Profile) error
	// GetByID retrieves a profile by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	// GetByEmail retrieves a profile by its email address.
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	// GetByIDWithProjection retrieves a profile with only the projected fields.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.Profile, error)
	// UpdateSetDocument applies a $set document to a profile.
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error
	// Delete removes a profile by ID.
	Delete(ctx context.Context, id string) error
}
