package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentalspot/internal/pricing"
	pricingruleserrors "rentalspot/internal/pricingrules/errors"
)

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", pricingruleserrors.ErrInvalidID, id)
	}
	return oid, nil
}

// throughDay bounds a date field to values on or before the calendar day of
// to. The bound is exclusive on the next day so timestamped values stored as
// "2025-07-31T00:00:00Z" still fall on their day.
func throughDay(r bson.M, to string) bson.M {
	if len(to) >= 10 {
		if day, err := time.Parse(pricing.DateLayout, to[:10]); err == nil {
			r["$lt"] = day.AddDate(0, 0, 1).Format(pricing.DateLayout)
			return r
		}
	}
	r["$lte"] = to
	return r
}

// dayRangeFilter matches single-date documents of propertyID whose date falls
// in [from, to]. Either end may be empty.
func dayRangeFilter(propertyID, from, to string) bson.M {
	filter := bson.M{"propertyId": propertyID}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		throughDay(dateRange, to)
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	return filter
}

// overlapFilter matches range rules of propertyID whose [startDate, endDate]
// intersects [from, to]. ISO dates compare correctly as strings.
func overlapFilter(propertyID, from, to string, enabledOnly bool) bson.M {
	filter := bson.M{"propertyId": propertyID}
	if to != "" {
		filter["startDate"] = throughDay(bson.M{}, to)
	}
	if from != "" {
		filter["endDate"] = bson.M{"$gte": from}
	}
	if enabledOnly {
		filter["enabled"] = true
	}
	return filter
}
