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
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// CreateIfAvailable serializes writers per property by bumping a lock
// document inside the transaction. Two concurrent inserts for the same
// property write the same lock document, so one of them aborts with a write
// conflict and is retried by WithTransaction, at which point it sees the
// other's booking and fails with ErrBookingConflict.
func (r *MongoBookingRepo) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := repository.NewContext(ctx, 15*time.Second)
	defer cancel()

	sess, err := r.bookingColl.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		lockUpdate := bson.M{
			"$inc": bson.M{"version": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		}
		if _, err := r.lockColl.UpdateOne(sc, bson.M{"propertyId": booking.PropertyID}, lockUpdate, options.Update().SetUpsert(true)); err != nil {
			return nil, fmt.Errorf("lock property %s: %w", booking.PropertyID, err)
		}

		overlap := blockingFilter(booking.PropertyID)
		overlap["checkIn"] = bson.M{"$lt": booking.CheckOut}
		overlap["checkOut"] = bson.M{"$gt": booking.CheckIn}

		n, err := r.bookingColl.CountDocuments(sc, overlap, options.Count().SetLimit(1))
		if err != nil {
			return nil, fmt.Errorf("check overlapping bookings: %w", err)
		}
		if n > 0 {
			return nil, ErrBookingConflict
		}

		now := time.Now().UTC()
		booking.CreatedAt = now
		booking.UpdatedAt = now
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return nil, fmt.Errorf("insert booking: %w", repository.MapError(err))
		}
		return nil, nil
	}, txnOpts)
	if err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}
