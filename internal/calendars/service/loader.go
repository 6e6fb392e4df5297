package service

import (
	"context"
	"errors"
	"time"

	"rentalspot/internal/calendars/repository"
	"rentalspot/internal/pricing"
	"rentalspot/pkg/cache"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/model"
)

// monthLoader resolves calendar months from the cache, then the store, and
// generates whatever neither holds.
type monthLoader struct {
	calendars repository.PriceCalendarRepository
	cache     cache.CalendarCache
	generator GeneratorService
	cfg       *config.Config
}

func (l *monthLoader) load(ctx context.Context, propertyID string, months []pricing.YearMonth) (map[pricing.YearMonth]*model.PriceCalendar, error) {
	months = normalizeMonths(months)
	found := make(map[pricing.YearMonth]*model.PriceCalendar, len(months))
	if len(months) == 0 {
		return found, nil
	}

	var uncached []pricing.YearMonth
	for _, ym := range months {
		cal, err := l.cache.Get(ctx, pricing.CalendarID(propertyID, ym.Year, ym.Month))
		if err == nil {
			found[ym] = cal
			continue
		}
		if !errors.Is(err, cache.ErrMiss) {
			l.cfg.Log.Warn("Calendar cache unavailable, reading from store", "property_id", propertyID, "error", err)
		}
		uncached = append(uncached, ym)
	}
	if len(uncached) == 0 {
		return found, nil
	}

	stored, err := l.calendars.FindRange(ctx, propertyID, uncached[0], uncached[len(uncached)-1])
	if err != nil {
		l.cfg.Log.Error("Failed to read price calendars", "property_id", propertyID, "error", err)
		return nil, apperrors.Internal("Failed to read price calendars", err)
	}
	for _, cal := range stored {
		ym := pricing.YearMonth{Year: cal.Year, Month: monthOf(cal)}
		if _, ok := found[ym]; ok {
			continue
		}
		found[ym] = cal
		if err := l.cache.Set(ctx, cal); err != nil {
			l.cfg.Log.Warn("Failed to cache price calendar", "calendar_id", cal.ID, "error", err)
		}
	}

	var missing []pricing.YearMonth
	for _, ym := range uncached {
		if _, ok := found[ym]; !ok {
			missing = append(missing, ym)
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	l.cfg.Log.Info("Generating missing calendar months", "property_id", propertyID, "months", len(missing))
	generated, err := l.generator.RegenerateMonths(ctx, propertyID, missing)
	if err != nil {
		return nil, err
	}
	for _, cal := range generated {
		found[pricing.YearMonth{Year: cal.Year, Month: monthOf(cal)}] = cal
	}
	return found, nil
}

func monthOf(cal *model.PriceCalendar) time.Month {
	return time.Month(cal.Month)
}
