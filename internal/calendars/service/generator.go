package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	bookingsrepository "rentalspot/internal/bookings/repository"
	"rentalspot/internal/calendars/repository"
	"rentalspot/internal/pricing"
	pricingrulesrepository "rentalspot/internal/pricingrules/repository"
	propertieserrors "rentalspot/internal/properties/errors"
	propertiesrepository "rentalspot/internal/properties/repository"
	"rentalspot/pkg/cache"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/metrics"
	"rentalspot/pkg/model"
)

// GeneratorService materializes price calendar months. Every run recomputes
// whole months from the current property, rules and bookings.
type GeneratorService interface {
	// Generate computes months without storing them.
	Generate(ctx context.Context, propertyID string, months []pricing.YearMonth) ([]*model.PriceCalendar, error)
	RegenerateMonths(ctx context.Context, propertyID string, months []pricing.YearMonth) ([]*model.PriceCalendar, error)
	// RegenerateWindow regenerates n months starting at from. A zero from means
	// the current month and n <= 0 means the configured window size.
	RegenerateWindow(ctx context.Context, propertyID string, from pricing.YearMonth, n int) ([]*model.PriceCalendar, error)
	RegenerateAll(ctx context.Context) (*RegenerationReport, error)
	// Window is the configured regeneration window starting at the current month.
	Window() []pricing.YearMonth
}

type RegenerationReport struct {
	Properties int      `json:"properties"`
	Months     int      `json:"months"`
	Failed     []string `json:"failed,omitempty"`
}

type generatorService struct {
	properties propertiesrepository.PropertyRepository
	rules      pricingrulesrepository.RuleReader
	bookings   bookingsrepository.BookingRepository
	calendars  repository.PriceCalendarRepository
	cache      cache.CalendarCache
	calc       *pricing.Calculator
	cfg        *config.Config
	now        func() time.Time
}

func NewGeneratorService(
	properties propertiesrepository.PropertyRepository,
	rules pricingrulesrepository.RuleReader,
	bookings bookingsrepository.BookingRepository,
	calendars repository.PriceCalendarRepository,
	calendarCache cache.CalendarCache,
	calc *pricing.Calculator,
	cfg *config.Config,
) GeneratorService {
	return &generatorService{
		properties: properties,
		rules:      rules,
		bookings:   bookings,
		calendars:  calendars,
		cache:      calendarCache,
		calc:       calc,
		cfg:        cfg,
		now:        time.Now,
	}
}

// NewCalculator builds the pricing calculator from configuration.
func NewCalculator(cfg *config.Config) (*pricing.Calculator, error) {
	policy, err := pricing.ParseWeekendSeasonPolicy(cfg.PricingWeekendSeasonPolicy)
	if err != nil {
		return nil, err
	}
	return pricing.NewCalculator(
		pricing.WithWeekendSeasonPolicy(policy),
		pricing.WithFallbackBasePrice(cfg.PricingFallbackBasePrice),
	), nil
}

func (s *generatorService) Window() []pricing.YearMonth {
	return pricing.Window(pricing.NewYearMonth(s.now().UTC()), s.cfg.CalendarWindowMonths)
}

func (s *generatorService) Generate(ctx context.Context, propertyID string, months []pricing.YearMonth) ([]*model.PriceCalendar, error) {
	if propertyID == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}
	months = normalizeMonths(months)
	if len(months) == 0 {
		return nil, nil
	}

	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", propertyID)
		}
		s.cfg.Log.Error("Failed to load property for generation", "property_id", propertyID, "error", err)
		return nil, apperrors.Internal("Failed to load property", err)
	}

	from := pricing.DateKey(months[0].First())
	to := pricing.DateKey(months[len(months)-1].Last())

	rules, err := s.rules.LoadRules(ctx, propertyID, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to load pricing rules", "property_id", propertyID, "from", from, "to", to, "error", err)
		return nil, apperrors.Internal("Failed to load pricing rules", err)
	}
	bookings, err := s.bookings.FindBlocking(ctx, propertyID, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings", "property_id", propertyID, "from", from, "to", to, "error", err)
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	now := s.now().UTC()
	generatedAt := now.Truncate(time.Millisecond)
	cals := make([]*model.PriceCalendar, 0, len(months))
	for _, ym := range months {
		cal := s.calc.Month(property, ym, rules, bookings, now)
		cal.GeneratedAt = generatedAt
		cals = append(cals, cal)
	}
	return cals, nil
}

func (s *generatorService) RegenerateMonths(ctx context.Context, propertyID string, months []pricing.YearMonth) (cals []*model.PriceCalendar, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveRegeneration(start, len(cals), err)
	}()

	cals, err = s.Generate(ctx, propertyID, months)
	if err != nil {
		return nil, err
	}
	if len(cals) == 0 {
		return cals, nil
	}

	if err := s.calendars.UpsertMany(ctx, cals); err != nil {
		s.cfg.Log.Error("Failed to store price calendars", "property_id", propertyID, "months", len(cals), "error", err)
		return nil, apperrors.Internal("Failed to store price calendars", err)
	}
	s.refreshCache(ctx, cals)

	s.cfg.Log.Info("Price calendars regenerated",
		"property_id", propertyID,
		"from", cals[0].ID,
		"to", cals[len(cals)-1].ID,
		"months", len(cals),
		"duration", time.Since(start),
	)
	return cals, nil
}

func (s *generatorService) RegenerateWindow(ctx context.Context, propertyID string, from pricing.YearMonth, n int) ([]*model.PriceCalendar, error) {
	if from.Year == 0 {
		from = pricing.NewYearMonth(s.now().UTC())
	}
	if n <= 0 {
		n = s.cfg.CalendarWindowMonths
	}
	if n > config.MaxCalendarWindowMonths {
		return nil, apperrors.InvalidInput(fmt.Sprintf("At most %d months can be regenerated at once", config.MaxCalendarWindowMonths))
	}
	return s.RegenerateMonths(ctx, propertyID, pricing.Window(from, n))
}

// RegenerateAll regenerates the configured window of every property. A failing
// property is reported and does not stop the run.
func (s *generatorService) RegenerateAll(ctx context.Context) (*RegenerationReport, error) {
	ids, err := s.properties.ListIDs(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list properties", "error", err)
		return nil, apperrors.Internal("Failed to list properties", err)
	}

	report := &RegenerationReport{}
	window := s.Window()
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		cals, err := s.RegenerateMonths(ctx, id, window)
		if err != nil {
			report.Failed = append(report.Failed, id)
			continue
		}
		report.Properties++
		report.Months += len(cals)
	}

	s.cfg.Log.Info("Full calendar regeneration completed",
		"properties", report.Properties,
		"months", report.Months,
		"failed", len(report.Failed),
	)
	return report, nil
}

// refreshCache writes the new months through to the cache. When that fails the
// old entries are dropped so readers fall back to the store.
func (s *generatorService) refreshCache(ctx context.Context, cals []*model.PriceCalendar) {
	var stale []string
	for _, cal := range cals {
		if err := s.cache.Set(ctx, cal); err != nil {
			stale = append(stale, cal.ID)
		}
	}
	if len(stale) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, stale...); err != nil {
		s.cfg.Log.Warn("Failed to invalidate cached calendars", "calendar_ids", stale, "error", err)
	}
}

// normalizeMonths sorts and deduplicates months.
func normalizeMonths(months []pricing.YearMonth) []pricing.YearMonth {
	out := slices.Clone(months)
	slices.SortFunc(out, func(a, b pricing.YearMonth) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
	return slices.Compact(out)
}
