package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "rentalspot/internal/bookings/errors"
	"rentalspot/pkg/config"
	mongotx "rentalspot/pkg/db/mongo"
	"rentalspot/pkg/model"
)

const (
	CollectionName = "bookings"
)

// BookingRepository is the read side of bookings plus hold expiry. Bookings
// are created and confirmed by the reservation flow, not by this service.
type BookingRepository interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	// FindBlocking returns confirmed and on-hold bookings of propertyID whose
	// stay [checkInDate, checkOutDate) intersects the nights [from, to].
	FindBlocking(ctx context.Context, propertyID, from, to string) ([]model.Booking, error)
	FindExpiredHolds(ctx context.Context, now time.Time, limit int) ([]model.Booking, error)
	// ExpireHold cancels the booking if it is still an expired hold at now.
	// It reports whether this call changed the booking.
	ExpireHold(ctx context.Context, id string, now time.Time) (bool, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}

	var booking model.Booking
	if err := r.collection.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) FindBlocking(ctx context.Context, propertyID, from, to string) ([]model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"propertyId": propertyID,
		"status":     bson.M{"$in": model.BlockingStatuses},
	}
	if to != "" {
		filter["checkInDate"] = bson.M{"$lte": to}
	}
	if from != "" {
		// check-out is exclusive: a stay leaving on from does not occupy it
		filter["checkOutDate"] = bson.M{"$gt": from}
	}

	opts := options.Find().SetSort(bson.D{{Key: "checkInDate", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocking bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) FindExpiredHolds(ctx context.Context, now time.Time, limit int) ([]model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"status":    model.BookingStatusOnHold,
		"holdUntil": bson.M{"$lte": now},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "holdUntil", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired holds: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode expired holds: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) ExpireHold(ctx context.Context, id string, now time.Time) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter, err := idFilter(id)
	if err != nil {
		return false, err
	}
	// guard against a hold confirmed or extended since it was listed
	filter["status"] = model.BookingStatusOnHold
	filter["holdUntil"] = bson.M{"$lte": now}

	update := bson.M{"$set": bson.M{
		"status":    model.BookingStatusCancelled,
		"updatedAt": now.UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to expire hold: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

// idFilter matches booking ids stored either as ObjectIDs or as plain strings.
func idFilter(id string) (bson.M, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty", bookingserrors.ErrInvalidID)
	}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}, nil
	}
	return bson.M{"_id": id}, nil
}
