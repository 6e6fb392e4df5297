package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rentalspot/internal/migrations/mongo/validators"
	"rentalspot/pkg/logger"
)

var (
	SeasonalPricingIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "propertyId", Value: 1},
			{Key: "enabled", Value: 1},
			{Key: "startDate", Value: 1},
			{Key: "endDate", Value: 1},
		}},
	}

	DateOverridesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "propertyId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("propertyId_date_unique"),
		},
	}

	MinimumStayRulesIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "propertyId", Value: 1},
			{Key: "enabled", Value: 1},
			{Key: "startDate", Value: 1},
		}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "propertyId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "checkInDate", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "holdUntil", Value: 1},
		}},
	}

	PriceCalendarsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "propertyId", Value: 1},
				{Key: "year", Value: 1},
				{Key: "month", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("propertyId_year_month_unique"),
		},
	}

	CouponsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("code_unique"),
		},
	}
)

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection the service owns or reads.
var Collections = map[string]collectionDef{
	"properties": {
		Validator: validators.PropertyValidator,
	},
	"seasonalPricing": {
		Indexes:   SeasonalPricingIndexes,
		Validator: validators.SeasonalPricingValidator,
	},
	"dateOverrides": {
		Indexes:   DateOverridesIndexes,
		Validator: validators.DateOverrideValidator,
	},
	"minimumStayRules": {
		Indexes:   MinimumStayRulesIndexes,
		Validator: validators.MinimumStayRuleValidator,
	},
	"bookings": {
		Indexes:   BookingsIndexes,
		Validator: validators.BookingValidator,
	},
	"priceCalendars": {
		Indexes:   PriceCalendarsIndexes,
		Validator: validators.PriceCalendarValidator,
	},
	"coupons": {
		Indexes:   CouponsIndexes,
		Validator: validators.CouponValidator,
	},
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	for name, def := range Collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully", "collections", len(Collections))
	return nil
}

// ensureCollection creates the collection or updates the validator of an
// existing one. Validation is moderate so documents written before a schema
// change can still be updated.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().
			SetValidator(validator).
			SetValidationLevel("moderate")
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", len(models))
	return nil
}
