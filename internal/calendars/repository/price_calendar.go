package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	calendarserrors "rentalspot/internal/calendars/errors"
	"rentalspot/internal/pricing"
	"rentalspot/pkg/config"
	mongotx "rentalspot/pkg/db/mongo"
	"rentalspot/pkg/model"
)

const (
	CollectionName = "priceCalendars"
)

// PriceCalendarRepository stores materialized calendar months. Writes replace
// whole documents; concurrent regenerations of a month are last write wins.
type PriceCalendarRepository interface {
	FindByID(ctx context.Context, id string) (*model.PriceCalendar, error)
	// FindRange returns the stored months of propertyID in [from, to], ordered
	// by month. Missing months are simply absent.
	FindRange(ctx context.Context, propertyID string, from, to pricing.YearMonth) ([]*model.PriceCalendar, error)
	Upsert(ctx context.Context, cal *model.PriceCalendar) error
	// UpsertMany writes a window of months in one transaction when the server
	// supports it.
	UpsertMany(ctx context.Context, cals []*model.PriceCalendar) error
	ListPropertyIDs(ctx context.Context) ([]string, error)
}

type mongoPriceCalendarRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoPriceCalendarRepository(cfg *config.Config) PriceCalendarRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPriceCalendarRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo, cfg.Log),
	}
}

func (r *mongoPriceCalendarRepository) FindByID(ctx context.Context, id string) (*model.PriceCalendar, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var cal model.PriceCalendar
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", calendarserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find price calendar: %w", err)
	}
	return &cal, nil
}

func (r *mongoPriceCalendarRepository) FindRange(ctx context.Context, propertyID string, from, to pricing.YearMonth) ([]*model.PriceCalendar, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, rangeFilter(propertyID, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query price calendars: %w", err)
	}
	defer cursor.Close(ctx)

	cals := []*model.PriceCalendar{}
	if err := cursor.All(ctx, &cals); err != nil {
		return nil, fmt.Errorf("failed to decode price calendars: %w", err)
	}
	return cals, nil
}

func (r *mongoPriceCalendarRepository) Upsert(ctx context.Context, cal *model.PriceCalendar) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cal.ID}, cal, opts); err != nil {
		return fmt.Errorf("failed to upsert price calendar %s: %w", cal.ID, err)
	}
	return nil
}

func (r *mongoPriceCalendarRepository) UpsertMany(ctx context.Context, cals []*model.PriceCalendar) error {
	if len(cals) == 0 {
		return nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(cals))
	for _, cal := range cals {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": cal.ID}).
			SetReplacement(cal).
			SetUpsert(true))
	}

	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := r.collection.BulkWrite(sessCtx, models, options.BulkWrite().SetOrdered(true)); err != nil {
			return fmt.Errorf("failed to upsert %d price calendars: %w", len(cals), err)
		}
		return nil
	})
}

func (r *mongoPriceCalendarRepository) ListPropertyIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "propertyId", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar property ids: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// rangeFilter relies on document ids sorting by month: {propertyId}_{yyyy-MM}
// is zero padded, so a lexical range on _id is a month range.
func rangeFilter(propertyID string, from, to pricing.YearMonth) bson.M {
	return bson.M{
		"propertyId": propertyID,
		"_id": bson.M{
			"$gte": pricing.CalendarID(propertyID, from.Year, from.Month),
			"$lte": pricing.CalendarID(propertyID, to.Year, to.Month),
		},
	}
}
