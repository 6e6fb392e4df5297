package regeneration

import (
	"context"

	"rentalspot/pkg/model"
)

// ChangeNotifier announces that a pricing input of a property changed so its
// stored calendar months get regenerated.
type ChangeNotifier interface {
	Notify(ctx context.Context, event model.PricingInputChanged) error
}

type NotifierFunc func(ctx context.Context, event model.PricingInputChanged) error

func (f NotifierFunc) Notify(ctx context.Context, event model.PricingInputChanged) error {
	return f(ctx, event)
}
