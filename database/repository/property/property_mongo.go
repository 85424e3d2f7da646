package propertyRepo

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

// MongoPropertyRepo implements PropertyRepository using MongoDB.
type MongoPropertyRepo struct {
	coll *mongo.Collection
}

func NewMongoPropertyRepo(db *mongo.Database) PropertyRepository {
	repo := &MongoPropertyRepo{coll: db.Collection("properties")}

	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("properties: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoPropertyRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "hostId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "pricePerNight", Value: 1}}},
		{Keys: bson.D{{Key: "amenityIds", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPropertyRepo) Create(ctx context.Context, property *models.Property) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now
	if property.Images == nil {
		property.Images = []string{}
	}
	if property.AmenityIDs == nil {
		property.AmenityIDs = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, property); err != nil {
		return fmt.Errorf("failed to create property: %w", repository.MapError(err))
	}
	return nil
}

func (r *MongoPropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var property models.Property
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&property); err != nil {
		return nil, fmt.Errorf("failed to fetch property with id %s: %w", id, repository.MapError(err))
	}
	return &property, nil
}

// Update replaces the editable fields of a property.
func (r *MongoPropertyRepo) Update(ctx context.Context, property *models.Property) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	property.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":         property.Title,
		"description":   property.Description,
		"address":       property.Address,
		"city":          property.City,
		"latitude":      property.Latitude,
		"longitude":     property.Longitude,
		"pricePerNight": property.PricePerNight,
		"maxGuests":     property.MaxGuests,
		"bedrooms":      property.Bedrooms,
		"beds":          property.Beds,
		"bathrooms":     property.Bathrooms,
		"amenityIds":    property.AmenityIDs,
		"isActive":      property.IsActive,
		"updatedAt":     property.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": property.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update property with id %s: %w", property.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("property with id %s: %w", property.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoPropertyRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("property with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoPropertyRepo) AddImage(ctx context.Context, id, url string) (*models.Property, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	// The pipeline form lets mainImage fall back to the new url in the same write.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "images", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$images", bson.A{}}}},
				bson.A{url},
			}}}},
			{Key: "mainImage", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$gt", Value: bson.A{bson.D{{Key: "$strLenCP", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$mainImage", ""}}}}}, 0}}},
				"$mainImage",
				url,
			}}}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var property models.Property
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&property); err != nil {
		return nil, fmt.Errorf("failed to add image to property %s: %w", id, repository.MapError(err))
	}
	return &property, nil
}

func (r *MongoPropertyRepo) ListByHost(ctx context.Context, hostID string) ([]models.Property, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"hostId": hostID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

func (r *MongoPropertyRepo) CountByHost(ctx context.Context, hostID string) (int, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"hostId": hostID})
	if err != nil {
		return 0, fmt.Errorf("failed to count properties for host %s: %w", hostID, err)
	}
	return int(n), nil
}
