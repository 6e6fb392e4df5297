package regeneration

import (
	"context"

	"rentalspot/pkg/config"
	"rentalspot/pkg/model"
)

// InlineNotifier regenerates the affected months before Notify returns. It
// suits single-process deployments without a broker.
type InlineNotifier struct {
	regenerator Regenerator
	cfg         *config.Config
}

func NewInlineNotifier(regenerator Regenerator, cfg *config.Config) *InlineNotifier {
	return &InlineNotifier{
		regenerator: regenerator,
		cfg:         cfg,
	}
}

func (n *InlineNotifier) Notify(ctx context.Context, event model.PricingInputChanged) error {
	months, err := AffectedMonths(event, n.regenerator.Window())
	if err != nil {
		return err
	}
	if len(months) == 0 {
		n.cfg.Log.Debug("Change outside the calendar window", "property_id", event.PropertyID, "source", event.Source)
		return nil
	}

	_, err = n.regenerator.RegenerateMonths(ctx, event.PropertyID, months)
	return err
}
