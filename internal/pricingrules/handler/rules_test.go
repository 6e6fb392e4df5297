package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/logger"
	"rentalspot/pkg/model"
)

type mockSeasonService struct {
	created  *model.SeasonalPricing
	disabled string
	listed   bool
}

func (m *mockSeasonService) Create(ctx context.Context, propertyID string, season *model.SeasonalPricing) error {
	season.ID = "66a000000000000000000001"
	season.PropertyID = propertyID
	m.created = season
	return nil
}

func (m *mockSeasonService) GetByID(ctx context.Context, id string) (*model.SeasonalPricing, error) {
	return nil, apperrors.NotFoundWithID("Seasonal pricing", id)
}

func (m *mockSeasonService) List(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.SeasonalPricing, error) {
	m.listed = includeDisabled
	return []*model.SeasonalPricing{{ID: "a", PropertyID: propertyID}}, nil
}

func (m *mockSeasonService) Update(ctx context.Context, id string, updates *model.SeasonalPricingUpdate) (*model.SeasonalPricing, error) {
	return &model.SeasonalPricing{ID: id}, nil
}

func (m *mockSeasonService) Disable(ctx context.Context, id string) error {
	m.disabled = id
	return nil
}

type mockOverrideService struct {
	from, to string
	stored   *model.DateOverride
}

func (m *mockOverrideService) Upsert(ctx context.Context, propertyID string, override *model.DateOverride) error {
	override.PropertyID = propertyID
	m.stored = override
	return nil
}

func (m *mockOverrideService) List(ctx context.Context, propertyID, from, to string) ([]*model.DateOverride, error) {
	m.from, m.to = from, to
	return []*model.DateOverride{}, nil
}

func (m *mockOverrideService) Delete(ctx context.Context, id string) error {
	return nil
}

type mockMinimumStayService struct{}

func (mockMinimumStayService) Create(ctx context.Context, propertyID string, rule *model.MinimumStayRule) error {
	return nil
}

func (mockMinimumStayService) GetByID(ctx context.Context, id string) (*model.MinimumStayRule, error) {
	return &model.MinimumStayRule{ID: id}, nil
}

func (mockMinimumStayService) List(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.MinimumStayRule, error) {
	return nil, nil
}

func (mockMinimumStayService) Update(ctx context.Context, id string, updates *model.MinimumStayRuleUpdate) (*model.MinimumStayRule, error) {
	return &model.MinimumStayRule{ID: id}, nil
}

func (mockMinimumStayService) Disable(ctx context.Context, id string) error {
	return nil
}

func setup() (*httprouter.Router, *mockSeasonService, *mockOverrideService) {
	seasons := &mockSeasonService{}
	overrides := &mockOverrideService{}
	router := httprouter.New()
	NewRuleHandler(seasons, overrides, mockMinimumStayService{}, logger.Discard()).RegisterRoutes(router)
	return router, seasons, overrides
}

func TestCreateSeason(t *testing.T) {
	router, seasons, _ := setup()

	body := `{"name":"Summer","startDate":"2025-07-01","endDate":"2025-08-31","priceMultiplier":1.5,"enabled":true}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/properties/beach-house/seasonal-pricing", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, seasons.created)
	assert.Equal(t, "beach-house", seasons.created.PropertyID)
	assert.Equal(t, 1.5, seasons.created.PriceMultiplier)

	var resp struct {
		Data model.SeasonalPricing `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "66a000000000000000000001", resp.Data.ID)
}

func TestListSeasons_IncludeDisabled(t *testing.T) {
	router, seasons, _ := setup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties/beach-house/seasonal-pricing?includeDisabled=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, seasons.listed)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties/beach-house/seasonal-pricing?includeDisabled=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSeason_NotFound(t *testing.T) {
	router, _, _ := setup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seasonal-pricing/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeNotFound)
}

func TestDisableSeason(t *testing.T) {
	router, seasons, _ := setup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/seasonal-pricing/abc", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "abc", seasons.disabled)
}

func TestListOverrides_PassesRange(t *testing.T) {
	router, _, overrides := setup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties/beach-house/date-overrides?from=2025-12-01&to=2025-12-31", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-12-01", overrides.from)
	assert.Equal(t, "2025-12-31", overrides.to)
}

func TestUpsertOverride_BadBody(t *testing.T) {
	router, _, _ := setup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/properties/beach-house/date-overrides", strings.NewReader(`{"date":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertOverride_AvailableDefaultsToOpen(t *testing.T) {
	router, _, overrides := setup()

	body := `{"date":"2025-12-25","customPrice":1000,"minimumStay":3,"reason":"Christmas"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/properties/beach-house/date-overrides", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, overrides.stored)
	assert.True(t, overrides.stored.Available)
	assert.Equal(t, 1000.0, overrides.stored.CustomPrice)
	assert.Equal(t, "beach-house", overrides.stored.PropertyID)

	var resp struct {
		Data model.DateOverride `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Available)
}

func TestUpsertOverride_ExplicitBlockKept(t *testing.T) {
	router, _, overrides := setup()

	body := `{"date":"2025-12-25","available":false,"reason":"maintenance"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/properties/beach-house/date-overrides", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, overrides.stored)
	assert.False(t, overrides.stored.Available)
}
