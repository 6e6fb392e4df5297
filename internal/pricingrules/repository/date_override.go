package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	pricingruleserrors "rentalspot/internal/pricingrules/errors"
	"rentalspot/pkg/config"
	mongotx "rentalspot/pkg/db/mongo"
	"rentalspot/pkg/model"
)

const (
	DateOverridesCollection = "dateOverrides"
)

type DateOverrideRepository interface {
	// Upsert stores override as the single override of its (propertyId, date),
	// replacing any earlier one.
	Upsert(ctx context.Context, override *model.DateOverride) error
	FindByID(ctx context.Context, id string) (*model.DateOverride, error)
	FindInRange(ctx context.Context, propertyID, from, to string) ([]*model.DateOverride, error)
	Delete(ctx context.Context, id string) error
}

type mongoDateOverrideRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDateOverrideRepository(cfg *config.Config) DateOverrideRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDateOverrideRepository{
		cfg:        cfg,
		collection: db.Collection(DateOverridesCollection),
	}
}

func (r *mongoDateOverrideRepository) Upsert(ctx context.Context, override *model.DateOverride) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	override.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	filter := bson.M{"propertyId": override.PropertyID, "date": override.Date}
	update := bson.M{"$set": bson.M{
		"customPrice": override.CustomPrice,
		"minimumStay": override.MinimumStay,
		"reason":      override.Reason,
		"available":   override.Available,
		"flatRate":    override.FlatRate,
		"updatedAt":   override.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.DateOverride
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return fmt.Errorf("failed to upsert date override: %w", err)
	}
	*override = stored
	return nil
}

func (r *mongoDateOverrideRepository) FindByID(ctx context.Context, id string) (*model.DateOverride, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var override model.DateOverride
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&override); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find date override: %w", err)
	}
	return &override, nil
}

func (r *mongoDateOverrideRepository) FindInRange(ctx context.Context, propertyID, from, to string) ([]*model.DateOverride, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := dayRangeFilter(propertyID, from, to)

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query date overrides: %w", err)
	}
	defer cursor.Close(ctx)

	overrides := []*model.DateOverride{}
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode date overrides: %w", err)
	}
	return overrides, nil
}

func (r *mongoDateOverrideRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete date override: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, id)
	}
	return nil
}
