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

type mockPropertyService struct {
	getPricingFunc    func(ctx context.Context, id string) (*model.Property, error)
	updatePricingFunc func(ctx context.Context, id string, updates *model.PropertyPricingUpdate) (*model.Property, error)
}

func (m *mockPropertyService) GetPricing(ctx context.Context, id string) (*model.Property, error) {
	return m.getPricingFunc(ctx, id)
}

func (m *mockPropertyService) UpdatePricing(ctx context.Context, id string, updates *model.PropertyPricingUpdate) (*model.Property, error) {
	return m.updatePricingFunc(ctx, id, updates)
}

func newRouter(svc *mockPropertyService) *httprouter.Router {
	router := httprouter.New()
	NewPropertyHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestGetPricing(t *testing.T) {
	svc := &mockPropertyService{
		getPricingFunc: func(ctx context.Context, id string) (*model.Property, error) {
			if id != "beach-house" {
				return nil, apperrors.NotFoundWithID("Property", id)
			}
			return &model.Property{ID: id, PricePerNight: 100, BaseCurrency: "EUR"}, nil
		},
	}
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties/beach-house/pricing", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data model.Property `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 100.0, body.Data.PricePerNight)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/properties/nope/pricing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePricing_RejectsUnknownFields(t *testing.T) {
	called := false
	svc := &mockPropertyService{
		updatePricingFunc: func(ctx context.Context, id string, updates *model.PropertyPricingUpdate) (*model.Property, error) {
			called = true
			return &model.Property{ID: id}, nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/properties/beach-house/pricing", strings.NewReader(`{"pricePerNigth": 120}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestUpdatePricing_PassesDecodedBody(t *testing.T) {
	var got *model.PropertyPricingUpdate
	svc := &mockPropertyService{
		updatePricingFunc: func(ctx context.Context, id string, updates *model.PropertyPricingUpdate) (*model.Property, error) {
			got = updates
			return &model.Property{ID: id, PricePerNight: *updates.PricePerNight}, nil
		},
	}
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/properties/beach-house/pricing", strings.NewReader(`{"pricePerNight": 120, "weekendDays": ["friday"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.PricePerNight)
	assert.Equal(t, 120.0, *got.PricePerNight)
	assert.Equal(t, []string{"friday"}, *got.WeekendDays)
}
