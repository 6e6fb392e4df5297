package regeneration

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/kafka"
	"rentalspot/pkg/model"
)

// EventHandler consumes pricing change events and regenerates the affected
// months. Undecodable events are permanent failures and go to the DLQ; store
// failures are transient and retried by the consumer.
type EventHandler struct {
	regenerator Regenerator
	cfg         *config.Config
}

func NewEventHandler(regenerator Regenerator, cfg *config.Config) *EventHandler {
	return &EventHandler{
		regenerator: regenerator,
		cfg:         cfg,
	}
}

func (h *EventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	if eventType := msg.GetEventType(); eventType != "" && eventType != EventTypePricingInputChanged {
		h.cfg.Log.Warn("Skipping unexpected event type", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var event model.PricingInputChanged
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("decode pricing change event", err)
	}
	if event.PropertyID == "" {
		event.PropertyID = msg.Key
	}
	if event.PropertyID == "" {
		return kafka.NewPermanentError("pricing change event without property id", kafka.ErrInvalidMessage)
	}

	months, err := AffectedMonths(event, h.regenerator.Window())
	if err != nil {
		return kafka.NewPermanentError("pricing change event range", err).WithDetail("property_id", event.PropertyID)
	}
	if len(months) == 0 {
		h.cfg.Log.Debug("Change outside the calendar window", "property_id", event.PropertyID, "event_id", msg.GetEventID())
		return nil
	}

	if _, err := h.regenerator.RegenerateMonths(ctx, event.PropertyID, months); err != nil {
		return h.classify(event, err)
	}

	h.cfg.Log.Info("Regenerated calendars from change event",
		"property_id", event.PropertyID,
		"source", event.Source,
		"months", len(months),
		"event_id", msg.GetEventID(),
	)
	return nil
}

func (h *EventHandler) classify(event model.PricingInputChanged, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.HTTPStatus {
		case http.StatusNotFound:
			// the property was removed after the event was published
			h.cfg.Log.Warn("Dropping change event for unknown property", "property_id", event.PropertyID)
			return nil
		case http.StatusBadRequest:
			return kafka.NewPermanentError("regenerate calendars", err)
		}
	}
	return kafka.NewTransientError(fmt.Sprintf("regenerate calendars of %s", event.PropertyID), err)
}
