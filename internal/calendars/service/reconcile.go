package service

import (
	"context"
	"math"
	"strconv"

	"rentalspot/internal/calendars/repository"
	"rentalspot/internal/pricing"
	propertiesrepository "rentalspot/internal/properties/repository"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/model"
)

// priceTolerance absorbs float noise between stored and recomputed prices.
const priceTolerance = 0.005

// DayDrift is one day whose stored entry no longer matches its inputs.
type DayDrift struct {
	Date     string               `json:"date"`
	Fields   []string             `json:"fields"`
	Stored   *model.DayPriceEntry `json:"stored,omitempty"`
	Expected model.DayPriceEntry  `json:"expected"`
}

type MonthDrift struct {
	CalendarID string     `json:"calendarId"`
	Missing    bool       `json:"missing,omitempty"`
	Days       []DayDrift `json:"days,omitempty"`
}

type ReconcileReport struct {
	PropertyID    string       `json:"propertyId"`
	MonthsChecked int          `json:"monthsChecked"`
	Drifted       []MonthDrift `json:"drifted,omitempty"`
	Fixed         int          `json:"fixed"`
}

// ReconcileService compares stored calendar months with a fresh generation.
type ReconcileService interface {
	Reconcile(ctx context.Context, propertyID string, months []pricing.YearMonth, fix bool) (*ReconcileReport, error)
	ReconcileAll(ctx context.Context, months []pricing.YearMonth, fix bool) ([]*ReconcileReport, error)
}

type reconcileService struct {
	properties propertiesrepository.PropertyRepository
	calendars  repository.PriceCalendarRepository
	generator  GeneratorService
	cfg        *config.Config
}

func NewReconcileService(
	properties propertiesrepository.PropertyRepository,
	calendars repository.PriceCalendarRepository,
	generator GeneratorService,
	cfg *config.Config,
) ReconcileService {
	return &reconcileService{
		properties: properties,
		calendars:  calendars,
		generator:  generator,
		cfg:        cfg,
	}
}

func (s *reconcileService) Reconcile(ctx context.Context, propertyID string, months []pricing.YearMonth, fix bool) (*ReconcileReport, error) {
	months = normalizeMonths(months)
	report := &ReconcileReport{PropertyID: propertyID, MonthsChecked: len(months)}
	if len(months) == 0 {
		return report, nil
	}

	expected, err := s.generator.Generate(ctx, propertyID, months)
	if err != nil {
		return nil, err
	}
	stored, err := s.calendars.FindRange(ctx, propertyID, months[0], months[len(months)-1])
	if err != nil {
		s.cfg.Log.Error("Failed to read stored calendars", "property_id", propertyID, "error", err)
		return nil, apperrors.Internal("Failed to read stored calendars", err)
	}

	byID := make(map[string]*model.PriceCalendar, len(stored))
	for _, cal := range stored {
		byID[cal.ID] = cal
	}

	var drifted []pricing.YearMonth
	for _, want := range expected {
		drift := CompareMonth(byID[want.ID], want)
		if drift == nil {
			continue
		}
		report.Drifted = append(report.Drifted, *drift)
		drifted = append(drifted, pricing.YearMonth{Year: want.Year, Month: monthOf(want)})
	}

	if len(drifted) > 0 {
		s.cfg.Log.Warn("Calendar drift detected", "property_id", propertyID, "months", len(drifted))
	}
	if fix && len(drifted) > 0 {
		fixed, err := s.generator.RegenerateMonths(ctx, propertyID, drifted)
		if err != nil {
			return report, err
		}
		report.Fixed = len(fixed)
	}
	return report, nil
}

// ReconcileAll checks every property. A failing property is logged and
// skipped.
func (s *reconcileService) ReconcileAll(ctx context.Context, months []pricing.YearMonth, fix bool) ([]*ReconcileReport, error) {
	ids, err := s.properties.ListIDs(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list properties", "error", err)
		return nil, apperrors.Internal("Failed to list properties", err)
	}

	reports := make([]*ReconcileReport, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := s.Reconcile(ctx, id, months, fix)
		if err != nil {
			s.cfg.Log.Error("Failed to reconcile property", "property_id", id, "error", err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// CompareMonth reports how stored differs from want, or nil when they agree on
// availability, price, minimum stay and price source for every day.
func CompareMonth(stored, want *model.PriceCalendar) *MonthDrift {
	if stored == nil {
		return &MonthDrift{CalendarID: want.ID, Missing: true}
	}

	var days []DayDrift
	for day := 1; day <= 31; day++ {
		key := strconv.Itoa(day)
		expected, ok := want.Days[key]
		if !ok {
			continue
		}
		got, ok := stored.Days[key]
		if !ok {
			days = append(days, DayDrift{Date: expected.Date, Fields: []string{"missing"}, Expected: expected})
			continue
		}
		if fields := compareDay(got, expected); len(fields) > 0 {
			days = append(days, DayDrift{Date: expected.Date, Fields: fields, Stored: &got, Expected: expected})
		}
	}
	if len(days) == 0 {
		return nil
	}
	return &MonthDrift{CalendarID: want.ID, Days: days}
}

func compareDay(got, want model.DayPriceEntry) []string {
	var fields []string
	if got.Available != want.Available {
		fields = append(fields, "available")
	}
	if math.Abs(got.AdjustedPrice-want.AdjustedPrice) > priceTolerance {
		fields = append(fields, "adjustedPrice")
	}
	if got.MinimumStay != want.MinimumStay {
		fields = append(fields, "minimumStay")
	}
	if got.PriceSource != want.PriceSource {
		fields = append(fields, "priceSource")
	}
	return fields
}
