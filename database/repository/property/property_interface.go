package propertyRepo

import (
	"context"

	"havenstay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PropertyRepository defines methods for listing data access.
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id string) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id string) error
	// AddImage appends url to the gallery and sets it as the main image if none is set.
	AddImage(ctx context.Context, id, url string) (*models.Property, error)
	// ListFeatured returns the newest active listings.
	ListFeatured(ctx context.Context, limit int) ([]models.PropertyCard, error)
	ListByHost(ctx context.Context, hostID string) ([]models.Property, error)
	CountByHost(ctx context.Context, hostID string) (int, error)
	// ListCards returns card projections for the given ids, ignoring unknown ids.
	ListCards(ctx context.Context, ids []string) ([]models.PropertyCard, error)
	// Search runs a prepared aggregation over the properties collection.
	Search(ctx context.Context, pipeline mongo.Pipeline) ([]models.PropertyCard, error)
}
