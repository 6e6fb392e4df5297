package regeneration

import (
	"fmt"

	"rentalspot/internal/pricing"
	"rentalspot/pkg/model"
)

// AffectedMonths maps the range an event names onto the regeneration window.
// An event without a range affects the whole window. Months outside the
// window are dropped since nothing stores them.
func AffectedMonths(event model.PricingInputChanged, window []pricing.YearMonth) ([]pricing.YearMonth, error) {
	if event.StartDate == "" && event.EndDate == "" {
		return window, nil
	}
	if len(window) == 0 {
		return nil, nil
	}

	first, last := window[0].First(), window[len(window)-1].Last()
	start, end := first, last
	if event.StartDate != "" {
		t, err := pricing.ParseDate(event.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		start = t
	}
	if event.EndDate != "" {
		t, err := pricing.ParseDate(event.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		end = t
	}
	if end.Before(start) {
		start, end = end, start
	}

	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}
	return pricing.MonthsBetween(start, end), nil
}
