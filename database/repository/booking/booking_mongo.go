package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	lockColl    *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		lockColl:    db.Collection("property_locks"),
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("bookings: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := repository.NewContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "status", Value: 1}, {Key: "checkOut", Value: 1}}},
		{Keys: bson.D{{Key: "guestId", Value: 1}, {Key: "checkIn", Value: -1}}},
		{Keys: bson.D{{Key: "hostId", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := r.bookingColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	_, err := r.lockColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "propertyId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create lock indexes: %w", err)
	}
	return nil
}

func blockingFilter(propertyID string) bson.M {
	return bson.M{
		"propertyId": propertyID,
		"status":     bson.M{"$in": models.BlockingStatuses},
	}
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, repository.MapError(err))
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListBlocking(ctx context.Context, propertyID string, from time.Time) ([]models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := blockingFilter(propertyID)
	filter["checkOut"] = bson.M{"$gt": from}
	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: 1}})

	bookings, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocking bookings for property %s: %w", propertyID, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListForGuest(ctx context.Context, guestID string) ([]models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: -1}})
	bookings, err := r.find(ctx, bson.M{"guestId": guestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for guest %s: %w", guestID, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListForHost(ctx context.Context, hostID string, status models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"hostId": hostID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "checkIn", Value: 1}})
	bookings, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for host %s: %w", hostID, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.bookingColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("booking %s is no longer %s: %w", id, from, ErrStatusChanged)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update status of booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"paymentIntentId": paymentIntentID, "updatedAt": time.Now().UTC()}}
	result, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set payment intent on booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoBookingRepo) ListDueForCompletion(ctx context.Context, day time.Time) ([]models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"status": models.BookingConfirmed, "checkOut": bson.M{"$lte": day}}
	bookings, err := r.find(ctx, filter, options.Find().SetLimit(500))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings due for completion: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) HasCompletedStay(ctx context.Context, guestID, propertyID string) (bool, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"guestId": guestID, "propertyId": propertyID, "status": models.BookingCompleted}
	n, err := r.bookingColl.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check completed stays: %w", err)
	}
	return n > 0, nil
}

func (r *MongoBookingRepo) CountForHost(ctx context.Context, hostID string, status models.BookingStatus, checkInFrom time.Time) (int, error) {
	ctx, cancel := repository.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"hostId": hostID, "status": status}
	if !checkInFrom.IsZero() {
		filter["checkIn"] = bson.M{"$gte": checkInFrom}
	}
	n, err := r.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings for host %s: %w", hostID, err)
	}
	return int(n), nil
}

func (r *MongoBookingRepo) RevenueForHost(ctx context.Context, hostID string) (models.Money, error) {
	ctx, cancel := repository.NewContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "hostId", Value: hostID},
			{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{models.BookingConfirmed, models.BookingCompleted}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$totalPrice"}}},
		}}},
	}

	cursor, err := r.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Money{}, fmt.Errorf("failed to sum revenue for host %s: %w", hostID, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total models.Money `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return models.Money{}, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(rows) == 0 {
		return models.Money{}, nil
	}
	return rows[0].Total, nil
}
