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
	MinimumStayRulesCollection = "minimumStayRules"
)

type MinimumStayRuleRepository interface {
	Create(ctx context.Context, rule *model.MinimumStayRule) error
	FindByID(ctx context.Context, id string) (*model.MinimumStayRule, error)
	FindByProperty(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.MinimumStayRule, error)
	FindOverlapping(ctx context.Context, propertyID, from, to string) ([]*model.MinimumStayRule, error)
	Update(ctx context.Context, rule *model.MinimumStayRule) error
}

type mongoMinimumStayRuleRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoMinimumStayRuleRepository(cfg *config.Config) MinimumStayRuleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoMinimumStayRuleRepository{
		cfg:        cfg,
		collection: db.Collection(MinimumStayRulesCollection),
	}
}

func (r *mongoMinimumStayRuleRepository) Create(ctx context.Context, rule *model.MinimumStayRule) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rule.ID = ""
	rule.CreatedAt = now
	rule.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, rule)
	if err != nil {
		return fmt.Errorf("failed to create minimum stay rule: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		rule.ID = oid.Hex()
	}
	return nil
}

func (r *mongoMinimumStayRuleRepository) FindByID(ctx context.Context, id string) (*model.MinimumStayRule, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var rule model.MinimumStayRule
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rule); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find minimum stay rule: %w", err)
	}
	return &rule, nil
}

func (r *mongoMinimumStayRuleRepository) FindByProperty(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.MinimumStayRule, error) {
	filter := bson.M{"propertyId": propertyID}
	if !includeDisabled {
		filter["enabled"] = true
	}
	return r.find(ctx, filter)
}

func (r *mongoMinimumStayRuleRepository) FindOverlapping(ctx context.Context, propertyID, from, to string) ([]*model.MinimumStayRule, error) {
	return r.find(ctx, overlapFilter(propertyID, from, to, true))
}

func (r *mongoMinimumStayRuleRepository) find(ctx context.Context, filter bson.M) ([]*model.MinimumStayRule, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query minimum stay rules: %w", err)
	}
	defer cursor.Close(ctx)

	rules := []*model.MinimumStayRule{}
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode minimum stay rules: %w", err)
	}
	return rules, nil
}

func (r *mongoMinimumStayRuleRepository) Update(ctx context.Context, rule *model.MinimumStayRule) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(rule.ID)
	if err != nil {
		return err
	}

	rule.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{"$set": bson.M{
		"startDate":   rule.StartDate,
		"endDate":     rule.EndDate,
		"minimumStay": rule.MinimumStay,
		"enabled":     rule.Enabled,
		"updatedAt":   rule.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update minimum stay rule: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, rule.ID)
	}
	return nil
}
