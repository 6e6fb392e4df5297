package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rentalspot/internal/calendars/service"
	"rentalspot/internal/pricing"
	apperrors "rentalspot/pkg/errors"
	httputil "rentalspot/pkg/http"
	"rentalspot/pkg/logger"
	"rentalspot/pkg/metrics"
)

type RegenerateRequest struct {
	From   string `json:"from,omitempty"`
	Months int    `json:"months,omitempty"`
}

type RegenerateResponse struct {
	PropertyID  string   `json:"propertyId"`
	CalendarIDs []string `json:"calendarIds"`
}

type CalendarHandler struct {
	calendars service.CalendarService
	generator service.GeneratorService
	quotes    service.QuoteService
	log       *logger.Logger
}

func NewCalendarHandler(
	calendars service.CalendarService,
	generator service.GeneratorService,
	quotes service.QuoteService,
	log *logger.Logger,
) *CalendarHandler {
	return &CalendarHandler{
		calendars: calendars,
		generator: generator,
		quotes:    quotes,
		log:       log,
	}
}

func (h *CalendarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/properties/:propertyId/calendars", h.ListMonths)
	router.GET("/api/v1/properties/:propertyId/calendars/:month", h.GetMonth)
	router.POST("/api/v1/properties/:propertyId/calendars/regenerate", h.Regenerate)
	router.POST("/api/v1/properties/:propertyId/quote", h.Quote)
	router.POST("/api/v1/calendars/regenerate", h.RegenerateAll)
}

func (h *CalendarHandler) ListMonths(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	months, err := httputil.QueryInt(r, "months", 0)
	if err != nil {
		h.writeError(w, "ListMonths", err)
		return
	}

	cals, err := h.calendars.ListMonths(r.Context(), ps.ByName("propertyId"), r.URL.Query().Get("from"), months)
	if err != nil {
		h.writeError(w, "ListMonths", err)
		return
	}

	if err := httputil.WriteList(w, cals, len(cals)); err != nil {
		h.log.Error("failed to write list response", "handler", "ListMonths", "operation", "WriteList", "error", err)
	}
}

func (h *CalendarHandler) GetMonth(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	cal, err := h.calendars.GetMonth(r.Context(), ps.ByName("propertyId"), ps.ByName("month"))
	if err != nil {
		h.writeError(w, "GetMonth", err)
		return
	}
	h.writeSuccess(w, "GetMonth", cal)
}

func (h *CalendarHandler) Regenerate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req RegenerateRequest
	if err := httputil.DecodeOptionalJSON(r, &req); err != nil {
		h.writeError(w, "Regenerate", err)
		return
	}

	var from pricing.YearMonth
	if req.From != "" {
		ym, err := pricing.ParseMonth(req.From)
		if err != nil {
			h.writeError(w, "Regenerate", apperrors.InvalidInput(err.Error()))
			return
		}
		from = ym
	}
	if req.Months < 0 {
		h.writeError(w, "Regenerate", apperrors.InvalidInput("months cannot be negative"))
		return
	}

	propertyID := ps.ByName("propertyId")
	cals, err := h.generator.RegenerateWindow(r.Context(), propertyID, from, req.Months)
	if err != nil {
		h.writeError(w, "Regenerate", err)
		return
	}

	resp := RegenerateResponse{PropertyID: propertyID, CalendarIDs: make([]string, 0, len(cals))}
	for _, cal := range cals {
		resp.CalendarIDs = append(resp.CalendarIDs, cal.ID)
	}
	h.writeSuccess(w, "Regenerate", resp)
}

func (h *CalendarHandler) RegenerateAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	report, err := h.generator.RegenerateAll(r.Context())
	if err != nil {
		h.writeError(w, "RegenerateAll", err)
		return
	}
	h.writeSuccess(w, "RegenerateAll", report)
}

// Quote always answers 200; a rejected stay is reported in the payload so
// clients do not retry it.
func (h *CalendarHandler) Quote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req service.QuoteRequest
	var result *service.QuoteResult
	if err := httputil.DecodeJSON(r, &req); err != nil {
		metrics.Quotes.WithLabelValues(service.ReasonInvalidRequest).Inc()
		result = &service.QuoteResult{Reason: service.ReasonInvalidRequest, Message: decodeMessage(err)}
	} else {
		result = h.quotes.Quote(r.Context(), ps.ByName("propertyId"), &req)
	}
	h.writeSuccess(w, "Quote", result)
}

func decodeMessage(err error) string {
	if appErr := apperrors.AsAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}

func (h *CalendarHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
