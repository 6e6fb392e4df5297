package service

import (
	"context"
	"fmt"
	"time"

	"rentalspot/internal/calendars/repository"
	"rentalspot/internal/pricing"
	"rentalspot/pkg/cache"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/model"
)

type CalendarService interface {
	GetMonth(ctx context.Context, propertyID, month string) (*model.PriceCalendar, error)
	// ListMonths returns n months starting at from (yyyy-MM). Empty from means
	// the current month and n <= 0 the configured window.
	ListMonths(ctx context.Context, propertyID, from string, n int) ([]*model.PriceCalendar, error)
}

type calendarService struct {
	loader *monthLoader
	cfg    *config.Config
	now    func() time.Time
}

func NewCalendarService(
	calendars repository.PriceCalendarRepository,
	calendarCache cache.CalendarCache,
	generator GeneratorService,
	cfg *config.Config,
) CalendarService {
	return &calendarService{
		loader: &monthLoader{
			calendars: calendars,
			cache:     calendarCache,
			generator: generator,
			cfg:       cfg,
		},
		cfg: cfg,
		now: time.Now,
	}
}

func (s *calendarService) GetMonth(ctx context.Context, propertyID, month string) (*model.PriceCalendar, error) {
	if propertyID == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}
	ym, err := pricing.ParseMonth(month)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	found, err := s.loader.load(ctx, propertyID, []pricing.YearMonth{ym})
	if err != nil {
		return nil, err
	}
	cal, ok := found[ym]
	if !ok {
		return nil, apperrors.NotFoundWithID("Price calendar", pricing.CalendarID(propertyID, ym.Year, ym.Month))
	}
	return cal, nil
}

func (s *calendarService) ListMonths(ctx context.Context, propertyID, from string, n int) ([]*model.PriceCalendar, error) {
	if propertyID == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	start := pricing.NewYearMonth(s.now().UTC())
	if from != "" {
		ym, err := pricing.ParseMonth(from)
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error())
		}
		start = ym
	}
	if n <= 0 {
		n = s.cfg.CalendarWindowMonths
	}
	if n > config.MaxCalendarWindowMonths {
		return nil, apperrors.InvalidInput(fmt.Sprintf("At most %d months can be requested at once", config.MaxCalendarWindowMonths))
	}

	months := pricing.Window(start, n)
	found, err := s.loader.load(ctx, propertyID, months)
	if err != nil {
		return nil, err
	}

	cals := make([]*model.PriceCalendar, 0, len(months))
	for _, ym := range months {
		if cal, ok := found[ym]; ok {
			cals = append(cals, cal)
		}
	}
	return cals, nil
}
