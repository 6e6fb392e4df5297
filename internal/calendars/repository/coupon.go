package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	calendarserrors "rentalspot/internal/calendars/errors"
	"rentalspot/pkg/config"
	mongotx "rentalspot/pkg/db/mongo"
	"rentalspot/pkg/model"
)

const (
	CouponCollectionName = "coupons"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
}

type mongoCouponRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCouponRepository(cfg *config.Config) CouponRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCouponRepository{
		cfg:        cfg,
		collection: db.Collection(CouponCollectionName),
	}
}

// FindByCode expects code already normalized to upper case, which is how codes
// are stored.
func (r *mongoCouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var coupon model.Coupon
	if err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", calendarserrors.ErrCouponNotFound, code)
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return &coupon, nil
}
