package amenityRepo

import (
	"context"
	"fmt"
	"time"

	"havenstay/database/repository"
	"havenstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AmenityRepository interface {
	// List returns all amenities ordered by name.
	List(ctx context.Context) ([]models.Amenity, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Amenity, error)
	// Upsert inserts or replaces amenities by id.
	Upsert(ctx context.Context, amenities []models.Amenity) error
}

type MongoAmenityRepo struct {
	coll *mongo.Collection
}

func NewMongoAmenityRepo(db *mongo.Database) AmenityRepository {
	return &MongoAmenityRepo{coll: db.Collection("amenities")}
}

func (r *MongoAmenityRepo) list(ctx context.Context, filter bson.M) ([]models.Amenity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	defer cursor.Close(ctx)

	amenities := []models.Amenity{}
	if err := cursor.All(ctx, &amenities); err != nil {
		return nil, fmt.Errorf("failed to decode amenities: %w", err)
	}
	return amenities, nil
}

func (r *MongoAmenityRepo) List(ctx context.Context) ([]models.Amenity, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()
	return r.list(ctx, bson.M{})
}

func (r *MongoAmenityRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Amenity, error) {
	if len(ids) == 0 {
		return []models.Amenity{}, nil
	}
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()
	return r.list(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (r *MongoAmenityRepo) Upsert(ctx context.Context, amenities []models.Amenity) error {
	if len(amenities) == 0 {
		return nil
	}
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(amenities))
	for _, a := range amenities {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": a.ID}).
			SetReplacement(a).
			SetUpsert(true))
	}
	if _, err := r.coll.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to upsert amenities: %w", err)
	}
	return nil
}
