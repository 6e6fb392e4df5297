package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rentalspot/internal/properties/service"
	httputil "rentalspot/pkg/http"
	"rentalspot/pkg/logger"
	"rentalspot/pkg/model"
)

type PropertyHandler struct {
	service service.PropertyService
	log     *logger.Logger
}

func NewPropertyHandler(service service.PropertyService, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		log:     log,
	}
}

func (h *PropertyHandler) GetPricing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	property, err := h.service.GetPricing(r.Context(), ps.ByName("propertyId"))
	if err != nil {
		h.writeError(w, "GetPricing", err)
		return
	}

	if err := httputil.WriteSuccess(w, property); err != nil {
		h.log.Error("failed to write success response", "handler", "GetPricing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PropertyHandler) UpdatePricing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PropertyPricingUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "UpdatePricing", err)
		return
	}

	property, err := h.service.UpdatePricing(r.Context(), ps.ByName("propertyId"), &updates)
	if err != nil {
		h.writeError(w, "UpdatePricing", err)
		return
	}

	if err := httputil.WriteSuccess(w, property); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdatePricing", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PropertyHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/properties/:propertyId/pricing", h.GetPricing)
	router.PATCH("/api/v1/properties/:propertyId/pricing", h.UpdatePricing)
}

func (h *PropertyHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
