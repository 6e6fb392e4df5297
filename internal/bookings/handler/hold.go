package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "rentalspot/pkg/errors"
	httputil "rentalspot/pkg/http"
	"rentalspot/pkg/logger"
)

type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

type SweepResponse struct {
	Released int `json:"released"`
}

// HoldHandler lets operators run the hold expiry sweep on demand instead of
// waiting for the next scheduled run.
type HoldHandler struct {
	sweeper Sweeper
	log     *logger.Logger
}

func NewHoldHandler(sweeper Sweeper, log *logger.Logger) *HoldHandler {
	return &HoldHandler{
		sweeper: sweeper,
		log:     log,
	}
}

func (h *HoldHandler) ExpireHolds(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	released, err := h.sweeper.Sweep(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to expire holds", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ExpireHolds", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, SweepResponse{Released: released}); err != nil {
		h.log.Error("failed to write success response", "handler", "ExpireHolds", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HoldHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings/holds/expire", h.ExpireHolds)
}
