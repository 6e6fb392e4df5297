package regeneration

import (
	"context"
	"fmt"

	"rentalspot/pkg/config"
	"rentalspot/pkg/kafka"
	"rentalspot/pkg/middleware"
	"rentalspot/pkg/model"
)

const (
	EventTypePricingInputChanged = "pricing.input.changed"
	SchemaVersion                = "1"
)

// Publisher is the part of *kafka.Producer the notifier uses.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaNotifier publishes change events keyed by property id, so the events
// of one property stay ordered on one partition.
type KafkaNotifier struct {
	publisher Publisher
	cfg       *config.Config
}

func NewKafkaNotifier(publisher Publisher, cfg *config.Config) *KafkaNotifier {
	return &KafkaNotifier{
		publisher: publisher,
		cfg:       cfg,
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, event model.PricingInputChanged) error {
	if event.PropertyID == "" {
		return fmt.Errorf("pricing change event without property id")
	}

	msg, err := kafka.NewMessage().
		WithKey(event.PropertyID).
		WithValue(event).
		WithEventID("").
		WithEventType(EventTypePricingInputChanged).
		WithSchemaVersion(SchemaVersion).
		WithSource(event.Source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return err
	}

	if err := n.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish pricing change for %s: %w", event.PropertyID, err)
	}
	return nil
}
