package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"havenstay/database/repository"
	"havenstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a review. A second review by the same guest for the same
	// property yields repository.ErrDuplicate.
	Create(ctx context.Context, review *models.Review) error
	ListForProperty(ctx context.Context, propertyID string) ([]models.Review, error)
	// Summary recomputes the average rating and count from stored reviews.
	Summary(ctx context.Context, propertyID string) (models.RatingSummary, error)
}

type MongoReviewRepo struct {
	coll *mongo.Collection
}

func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	repo := &MongoReviewRepo{coll: db.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("reviews: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "guestId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	review.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", repository.MapError(err))
	}
	return nil
}

func (r *MongoReviewRepo) ListForProperty(ctx context.Context, propertyID string) ([]models.Review, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"propertyId": propertyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for property %s: %w", propertyID, err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) Summary(ctx context.Context, propertyID string) (models.RatingSummary, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "propertyId", Value: propertyID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to summarize reviews for property %s: %w", propertyID, err)
	}
	defer cursor.Close(ctx)

	var rows []models.RatingSummary
	if err := cursor.All(ctx, &rows); err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to decode rating summary: %w", err)
	}
	if len(rows) == 0 {
		return models.RatingSummary{}, nil
	}
	return rows[0], nil
}
