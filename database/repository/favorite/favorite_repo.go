package favoriteRepo

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

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *models.Favorite) error
	// Remove deletes the favorite and reports whether one existed.
	Remove(ctx context.Context, profileID, propertyID string) (bool, error)
	Exists(ctx context.Context, profileID, propertyID string) (bool, error)
	// ListPropertyIDs returns favorited property ids, most recent first.
	ListPropertyIDs(ctx context.Context, profileID string) ([]string, error)
}

type MongoFavoriteRepo struct {
	coll *mongo.Collection
}

func NewMongoFavoriteRepo(db *mongo.Database) FavoriteRepository {
	repo := &MongoFavoriteRepo{coll: db.Collection("favorites")}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("favorites: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoFavoriteRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "propertyId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoFavoriteRepo) Add(ctx context.Context, favorite *models.Favorite) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	favorite.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, favorite); err != nil {
		return fmt.Errorf("failed to add favorite: %w", repository.MapError(err))
	}
	return nil
}

func (r *MongoFavoriteRepo) Remove(ctx context.Context, profileID, propertyID string) (bool, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"profileId": profileID, "propertyId": propertyID})
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *MongoFavoriteRepo) Exists(ctx context.Context, profileID, propertyID string) (bool, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"profileId": profileID, "propertyId": propertyID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

func (r *MongoFavoriteRepo) ListPropertyIDs(ctx context.Context, profileID string) ([]string, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"propertyId": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"profileId": profileID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.PropertyID)
	}
	return ids, nil
}
