package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"rentalspot/pkg/logger"
)

type sweeperFunc func(ctx context.Context) (int, error)

func (f sweeperFunc) Sweep(ctx context.Context) (int, error) { return f(ctx) }

func TestExpireHolds(t *testing.T) {
	router := httprouter.New()
	NewHoldHandler(sweeperFunc(func(ctx context.Context) (int, error) { return 3, nil }), logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings/holds/expire", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"released":3}}`, rec.Body.String())
}

func TestExpireHolds_Failure(t *testing.T) {
	router := httprouter.New()
	NewHoldHandler(sweeperFunc(func(ctx context.Context) (int, error) { return 0, errors.New("db down") }), logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings/holds/expire", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
