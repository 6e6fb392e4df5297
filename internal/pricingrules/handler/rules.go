package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rentalspot/internal/pricingrules/service"
	httputil "rentalspot/pkg/http"
	"rentalspot/pkg/logger"
	"rentalspot/pkg/model"
)

type RuleHandler struct {
	seasons      service.SeasonalPricingService
	overrides    service.DateOverrideService
	minimumStays service.MinimumStayRuleService
	log          *logger.Logger
}

func NewRuleHandler(
	seasons service.SeasonalPricingService,
	overrides service.DateOverrideService,
	minimumStays service.MinimumStayRuleService,
	log *logger.Logger,
) *RuleHandler {
	return &RuleHandler{
		seasons:      seasons,
		overrides:    overrides,
		minimumStays: minimumStays,
		log:          log,
	}
}

func (h *RuleHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/properties/:propertyId/seasonal-pricing", h.ListSeasons)
	router.POST("/api/v1/properties/:propertyId/seasonal-pricing", h.CreateSeason)
	router.GET("/api/v1/seasonal-pricing/:id", h.GetSeason)
	router.PATCH("/api/v1/seasonal-pricing/:id", h.UpdateSeason)
	router.DELETE("/api/v1/seasonal-pricing/:id", h.DisableSeason)

	router.GET("/api/v1/properties/:propertyId/date-overrides", h.ListOverrides)
	router.POST("/api/v1/properties/:propertyId/date-overrides", h.UpsertOverride)
	router.DELETE("/api/v1/date-overrides/:id", h.DeleteOverride)

	router.GET("/api/v1/properties/:propertyId/minimum-stay-rules", h.ListMinimumStays)
	router.POST("/api/v1/properties/:propertyId/minimum-stay-rules", h.CreateMinimumStay)
	router.GET("/api/v1/minimum-stay-rules/:id", h.GetMinimumStay)
	router.PATCH("/api/v1/minimum-stay-rules/:id", h.UpdateMinimumStay)
	router.DELETE("/api/v1/minimum-stay-rules/:id", h.DisableMinimumStay)
}

// ────────────────────────────────────────────────
// Seasonal pricing
// ────────────────────────────────────────────────

func (h *RuleHandler) ListSeasons(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	includeDisabled, err := httputil.QueryBool(r, "includeDisabled", false)
	if err != nil {
		h.writeError(w, "ListSeasons", err)
		return
	}

	seasons, err := h.seasons.List(r.Context(), ps.ByName("propertyId"), includeDisabled)
	if err != nil {
		h.writeError(w, "ListSeasons", err)
		return
	}
	h.writeList(w, "ListSeasons", seasons, len(seasons))
}

func (h *RuleHandler) CreateSeason(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var season model.SeasonalPricing
	if err := httputil.DecodeJSON(r, &season); err != nil {
		h.writeError(w, "CreateSeason", err)
		return
	}

	if err := h.seasons.Create(r.Context(), ps.ByName("propertyId"), &season); err != nil {
		h.writeError(w, "CreateSeason", err)
		return
	}
	h.writeCreated(w, "CreateSeason", season)
}

func (h *RuleHandler) GetSeason(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	season, err := h.seasons.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetSeason", err)
		return
	}
	h.writeSuccess(w, "GetSeason", season)
}

func (h *RuleHandler) UpdateSeason(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.SeasonalPricingUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "UpdateSeason", err)
		return
	}

	season, err := h.seasons.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "UpdateSeason", err)
		return
	}
	h.writeSuccess(w, "UpdateSeason", season)
}

func (h *RuleHandler) DisableSeason(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.seasons.Disable(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "DisableSeason", err)
		return
	}
	httputil.WriteNoContent(w)
}

// ────────────────────────────────────────────────
// Date overrides
// ────────────────────────────────────────────────

func (h *RuleHandler) ListOverrides(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()
	overrides, err := h.overrides.List(r.Context(), ps.ByName("propertyId"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.writeError(w, "ListOverrides", err)
		return
	}
	h.writeList(w, "ListOverrides", overrides, len(overrides))
}

func (h *RuleHandler) UpsertOverride(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input model.DateOverrideInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, "UpsertOverride", err)
		return
	}

	override := input.Override()
	if err := h.overrides.Upsert(r.Context(), ps.ByName("propertyId"), override); err != nil {
		h.writeError(w, "UpsertOverride", err)
		return
	}
	h.writeSuccess(w, "UpsertOverride", override)
}

func (h *RuleHandler) DeleteOverride(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.overrides.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "DeleteOverride", err)
		return
	}
	httputil.WriteNoContent(w)
}

// ────────────────────────────────────────────────
// Minimum stay rules
// ────────────────────────────────────────────────

func (h *RuleHandler) ListMinimumStays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	includeDisabled, err := httputil.QueryBool(r, "includeDisabled", false)
	if err != nil {
		h.writeError(w, "ListMinimumStays", err)
		return
	}

	rules, err := h.minimumStays.List(r.Context(), ps.ByName("propertyId"), includeDisabled)
	if err != nil {
		h.writeError(w, "ListMinimumStays", err)
		return
	}
	h.writeList(w, "ListMinimumStays", rules, len(rules))
}

func (h *RuleHandler) CreateMinimumStay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var rule model.MinimumStayRule
	if err := httputil.DecodeJSON(r, &rule); err != nil {
		h.writeError(w, "CreateMinimumStay", err)
		return
	}

	if err := h.minimumStays.Create(r.Context(), ps.ByName("propertyId"), &rule); err != nil {
		h.writeError(w, "CreateMinimumStay", err)
		return
	}
	h.writeCreated(w, "CreateMinimumStay", rule)
}

func (h *RuleHandler) GetMinimumStay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rule, err := h.minimumStays.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetMinimumStay", err)
		return
	}
	h.writeSuccess(w, "GetMinimumStay", rule)
}

func (h *RuleHandler) UpdateMinimumStay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.MinimumStayRuleUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "UpdateMinimumStay", err)
		return
	}

	rule, err := h.minimumStays.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "UpdateMinimumStay", err)
		return
	}
	h.writeSuccess(w, "UpdateMinimumStay", rule)
}

func (h *RuleHandler) DisableMinimumStay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.minimumStays.Disable(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "DisableMinimumStay", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *RuleHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *RuleHandler) writeCreated(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteCreated(w, data); err != nil {
		h.log.Error("failed to write created response", "handler", handler, "operation", "WriteCreated", "error", err)
	}
}

func (h *RuleHandler) writeList(w http.ResponseWriter, handler string, data any, count int) {
	if err := httputil.WriteList(w, data, count); err != nil {
		h.log.Error("failed to write list response", "handler", handler, "operation", "WriteList", "error", err)
	}
}

func (h *RuleHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
