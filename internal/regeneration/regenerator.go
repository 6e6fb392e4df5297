package regeneration

import (
	"context"

	"rentalspot/internal/pricing"
	"rentalspot/pkg/model"
)

// Regenerator rebuilds stored calendar months of a property.
type Regenerator interface {
	RegenerateMonths(ctx context.Context, propertyID string, months []pricing.YearMonth) ([]*model.PriceCalendar, error)
	Window() []pricing.YearMonth
}
