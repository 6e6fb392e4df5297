package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"rentalspot/pkg/model"
)

type fakeSeasons struct {
	SeasonalPricingRepository
	seasons []*model.SeasonalPricing
	err     error
	from    string
	to      string
}

func (f *fakeSeasons) FindOverlapping(ctx context.Context, propertyID, from, to string) ([]*model.SeasonalPricing, error) {
	f.from, f.to = from, to
	return f.seasons, f.err
}

type fakeOverrides struct {
	DateOverrideRepository
	overrides []*model.DateOverride
}

func (f *fakeOverrides) FindInRange(ctx context.Context, propertyID, from, to string) ([]*model.DateOverride, error) {
	return f.overrides, nil
}

type fakeMinimumStays struct {
	MinimumStayRuleRepository
	rules []*model.MinimumStayRule
}

func (f *fakeMinimumStays) FindOverlapping(ctx context.Context, propertyID, from, to string) ([]*model.MinimumStayRule, error) {
	return f.rules, nil
}

func TestRuleReader_LoadRules(t *testing.T) {
	seasons := &fakeSeasons{seasons: []*model.SeasonalPricing{{ID: "s1", PriceMultiplier: 1.5, Enabled: true}}}
	overrides := &fakeOverrides{overrides: []*model.DateOverride{{Date: "2025-07-04", CustomPrice: 250, Available: true}, nil}}
	minStays := &fakeMinimumStays{rules: []*model.MinimumStayRule{{MinimumStay: 3, Enabled: true}}}

	rules, err := NewRuleReader(seasons, overrides, minStays).LoadRules(context.Background(), "beach-house", "2025-07-01", "2025-07-31")
	require.NoError(t, err)

	assert.Equal(t, "2025-07-01", seasons.from)
	assert.Equal(t, "2025-07-31", seasons.to)
	require.Len(t, rules.Seasons, 1)
	assert.Equal(t, "s1", rules.Seasons[0].ID)
	assert.Len(t, rules.Overrides, 1, "nil entries are dropped")
	assert.Len(t, rules.MinimumStays, 1)
}

func TestRuleReader_PropagatesErrors(t *testing.T) {
	seasons := &fakeSeasons{err: errors.New("boom")}

	_, err := NewRuleReader(seasons, &fakeOverrides{}, &fakeMinimumStays{}).LoadRules(context.Background(), "p", "", "")

	assert.ErrorContains(t, err, "seasonal pricing")
}

func TestOverlapFilter(t *testing.T) {
	f := overlapFilter("beach-house", "2025-07-01", "2025-07-31", true)

	assert.Equal(t, "beach-house", f["propertyId"])
	assert.Equal(t, true, f["enabled"])
	assert.Equal(t, bson.M{"$lt": "2025-08-01"}, f["startDate"])
	assert.Equal(t, bson.M{"$gte": "2025-07-01"}, f["endDate"])

	open := overlapFilter("beach-house", "", "", false)
	assert.Len(t, open, 1)
}

func TestDayRangeFilter_IncludesTimestampedLastDay(t *testing.T) {
	f := dayRangeFilter("beach-house", "2025-07-01", "2025-07-31")

	assert.Equal(t, "beach-house", f["propertyId"])
	r, ok := f["date"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "2025-07-01", r["$gte"])
	assert.Equal(t, "2025-08-01", r["$lt"])
	assert.NotContains(t, r, "$lte")

	// a legacy value on the last day sorts below the exclusive bound
	assert.Less(t, "2025-07-31T00:00:00Z", r["$lt"].(string))
	assert.GreaterOrEqual(t, "2025-07-31T00:00:00Z", r["$gte"].(string))

	// month and year rollover
	assert.Equal(t, bson.M{"$lt": "2026-01-01"}, dayRangeFilter("p", "", "2025-12-31")["date"])

	open := dayRangeFilter("beach-house", "", "")
	assert.NotContains(t, open, "date")
}

func TestThroughDay_KeepsUnparsableBound(t *testing.T) {
	assert.Equal(t, bson.M{"$lte": "tomorrow"}, throughDay(bson.M{}, "tomorrow"))
	assert.Equal(t, bson.M{"$lt": "2025-03-01"}, throughDay(bson.M{}, "2025-02-28T12:00:00Z"))
}
