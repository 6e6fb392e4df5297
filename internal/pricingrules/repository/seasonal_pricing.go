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

	pricingruleserrors "rentalspot/internal/pricingrules/errors"
	"rentalspot/pkg/config"
	mongotx "rentalspot/pkg/db/mongo"
	"rentalspot/pkg/model"
)

const (
	SeasonalPricingCollection = "seasonalPricing"
)

type SeasonalPricingRepository interface {
	Create(ctx context.Context, season *model.SeasonalPricing) error
	FindByID(ctx context.Context, id string) (*model.SeasonalPricing, error)
	FindByProperty(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.SeasonalPricing, error)
	FindOverlapping(ctx context.Context, propertyID, from, to string) ([]*model.SeasonalPricing, error)
	Update(ctx context.Context, season *model.SeasonalPricing) error
}

type mongoSeasonalPricingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSeasonalPricingRepository(cfg *config.Config) SeasonalPricingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSeasonalPricingRepository{
		cfg:        cfg,
		collection: db.Collection(SeasonalPricingCollection),
	}
}

func (r *mongoSeasonalPricingRepository) Create(ctx context.Context, season *model.SeasonalPricing) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	season.ID = ""
	season.CreatedAt = now
	season.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, season)
	if err != nil {
		return fmt.Errorf("failed to create seasonal pricing: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		season.ID = oid.Hex()
	}
	return nil
}

func (r *mongoSeasonalPricingRepository) FindByID(ctx context.Context, id string) (*model.SeasonalPricing, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var season model.SeasonalPricing
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&season); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find seasonal pricing: %w", err)
	}
	return &season, nil
}

func (r *mongoSeasonalPricingRepository) FindByProperty(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.SeasonalPricing, error) {
	filter := bson.M{"propertyId": propertyID}
	if !includeDisabled {
		filter["enabled"] = true
	}
	return r.find(ctx, filter)
}

func (r *mongoSeasonalPricingRepository) FindOverlapping(ctx context.Context, propertyID, from, to string) ([]*model.SeasonalPricing, error) {
	return r.find(ctx, overlapFilter(propertyID, from, to, true))
}

func (r *mongoSeasonalPricingRepository) find(ctx context.Context, filter bson.M) ([]*model.SeasonalPricing, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasonal pricing: %w", err)
	}
	defer cursor.Close(ctx)

	seasons := []*model.SeasonalPricing{}
	if err := cursor.All(ctx, &seasons); err != nil {
		return nil, fmt.Errorf("failed to decode seasonal pricing: %w", err)
	}
	return seasons, nil
}

func (r *mongoSeasonalPricingRepository) Update(ctx context.Context, season *model.SeasonalPricing) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(season.ID)
	if err != nil {
		return err
	}

	season.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{"$set": bson.M{
		"name":            season.Name,
		"startDate":       season.StartDate,
		"endDate":         season.EndDate,
		"priceMultiplier": season.PriceMultiplier,
		"minimumStay":     season.MinimumStay,
		"seasonType":      season.SeasonType,
		"enabled":         season.Enabled,
		"updatedAt":       season.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update seasonal pricing: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, season.ID)
	}
	return nil
}
