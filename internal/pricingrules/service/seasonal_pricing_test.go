package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/model"
)

func summerSeason() *model.SeasonalPricing {
	return &model.SeasonalPricing{
		Name:            "  Summer   peak ",
		StartDate:       "2025-07-01T00:00:00Z",
		EndDate:         "2025-08-31",
		PriceMultiplier: 1.5,
		MinimumStay:     3,
		Enabled:         true,
	}
}

func TestSeasonCreate(t *testing.T) {
	cfg, v, props := testDeps()
	repo := newMockSeasonRepo()
	notifier := &recordingNotifier{}
	svc := NewSeasonalPricingService(repo, props, v, notifier, cfg)

	season := summerSeason()
	require.NoError(t, svc.Create(context.Background(), "beach-house", season))

	assert.NotEmpty(t, season.ID)
	assert.Equal(t, "beach-house", season.PropertyID)
	assert.Equal(t, "Summer peak", season.Name)
	assert.Equal(t, "2025-07-01", season.StartDate)
	assert.Equal(t, "standard", season.SeasonType)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, model.PricingInputChanged{
		PropertyID: "beach-house",
		Source:     model.ChangeSourceSeasonalPricing,
		StartDate:  "2025-07-01",
		EndDate:    "2025-08-31",
		OccurredAt: notifier.events[0].OccurredAt,
	}, notifier.events[0])
}

func TestSeasonCreate_UnknownProperty(t *testing.T) {
	cfg, v, props := testDeps()
	notifier := &recordingNotifier{}
	svc := NewSeasonalPricingService(newMockSeasonRepo(), props, v, notifier, cfg)

	err := svc.Create(context.Background(), "ghost", summerSeason())

	assert.Equal(t, http.StatusNotFound, apperrors.AsAppError(err).StatusCode())
	assert.Empty(t, notifier.events)
}

func TestSeasonCreate_Invalid(t *testing.T) {
	cfg, v, props := testDeps()
	svc := NewSeasonalPricingService(newMockSeasonRepo(), props, v, &recordingNotifier{}, cfg)

	season := summerSeason()
	season.EndDate = "2025-06-01"
	err := svc.Create(context.Background(), "beach-house", season)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details["fields"], "endDate")
}

func TestSeasonUpdate_NotifiesUnionOfRanges(t *testing.T) {
	cfg, v, props := testDeps()
	repo := newMockSeasonRepo()
	notifier := &recordingNotifier{}
	svc := NewSeasonalPricingService(repo, props, v, notifier, cfg)

	season := summerSeason()
	require.NoError(t, svc.Create(context.Background(), "beach-house", season))

	multiplier := 2.0
	updated, err := svc.Update(context.Background(), season.ID, &model.SeasonalPricingUpdate{
		StartDate:       "2025-08-01",
		EndDate:         "2025-09-15",
		PriceMultiplier: &multiplier,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, updated.PriceMultiplier)
	assert.Equal(t, "Summer peak", updated.Name)

	require.Len(t, notifier.events, 2)
	assert.Equal(t, "2025-07-01", notifier.events[1].StartDate)
	assert.Equal(t, "2025-09-15", notifier.events[1].EndDate)
}

func TestSeasonUpdate_MergedRangeMustStayOrdered(t *testing.T) {
	cfg, v, props := testDeps()
	repo := newMockSeasonRepo()
	svc := NewSeasonalPricingService(repo, props, v, &recordingNotifier{}, cfg)

	season := summerSeason()
	require.NoError(t, svc.Create(context.Background(), "beach-house", season))

	_, err := svc.Update(context.Background(), season.ID, &model.SeasonalPricingUpdate{StartDate: "2025-10-01"})

	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
}

func TestSeasonDisable(t *testing.T) {
	cfg, v, props := testDeps()
	repo := newMockSeasonRepo()
	notifier := &recordingNotifier{}
	svc := NewSeasonalPricingService(repo, props, v, notifier, cfg)

	season := summerSeason()
	require.NoError(t, svc.Create(context.Background(), "beach-house", season))

	require.NoError(t, svc.Disable(context.Background(), season.ID))
	assert.False(t, repo.items[season.ID].Enabled)
	assert.Len(t, notifier.events, 2)

	require.NoError(t, svc.Disable(context.Background(), season.ID), "disabling twice is a no-op")
	assert.Len(t, notifier.events, 2)

	listed, err := svc.List(context.Background(), "beach-house", false)
	require.NoError(t, err)
	assert.Empty(t, listed)

	listed, err = svc.List(context.Background(), "beach-house", true)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSeasonGetByID_NotFound(t *testing.T) {
	cfg, v, props := testDeps()
	svc := NewSeasonalPricingService(newMockSeasonRepo(), props, v, &recordingNotifier{}, cfg)

	_, err := svc.GetByID(context.Background(), "0000000000000000000000ff")

	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}
