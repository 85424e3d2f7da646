package propertyRepo

import (
	"context"
	"fmt"
	"time"

	"havenstay/database/repository"
	"havenstay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RatingStages joins reviews and projects a listing into a PropertyCard.
func RatingStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "reviews"},
			{Key: "localField", Value: "id"},
			{Key: "foreignField", Value: "propertyId"},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: 1},
			{Key: "title", Value: 1},
			{Key: "city", Value: 1},
			{Key: "pricePerNight", Value: 1},
			{Key: "maxGuests", Value: 1},
			{Key: "mainImage", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "averageRating", Value: bson.D{{Key: "$ifNull", Value: bson.A{bson.D{{Key: "$avg", Value: "$reviews.rating"}}, 0}}}},
			{Key: "reviewCount", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
		}}},
	}
}

func (r *MongoPropertyRepo) aggregateCards(ctx context.Context, pipeline mongo.Pipeline) ([]models.PropertyCard, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate properties: %w", err)
	}
	defer cursor.Close(ctx)

	cards := []models.PropertyCard{}
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode property cards: %w", err)
	}
	return cards, nil
}

func (r *MongoPropertyRepo) ListFeatured(ctx context.Context, limit int) ([]models.PropertyCard, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "isActive", Value: true}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	return r.aggregateCards(ctx, append(pipeline, RatingStages()...))
}

func (r *MongoPropertyRepo) ListCards(ctx context.Context, ids []string) ([]models.PropertyCard, error) {
	if len(ids) == 0 {
		return []models.PropertyCard{}, nil
	}
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "id", Value: bson.D{{Key: "$in", Value: ids}}}}}},
	}
	return r.aggregateCards(ctx, append(pipeline, RatingStages()...))
}

func (r *MongoPropertyRepo) Search(ctx context.Context, pipeline mongo.Pipeline) ([]models.PropertyCard, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()
	return r.aggregateCards(ctx, pipeline)
}
