package service

import (
	"context"
	"errors"
	"time"

	pricingruleserrors "rentalspot/internal/pricingrules/errors"
	propertieserrors "rentalspot/internal/properties/errors"
	propertiesrepository "rentalspot/internal/properties/repository"
	"rentalspot/internal/regeneration"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/model"
)

// base carries what every rule service needs: the owning property check and
// change notification.
type base struct {
	properties propertiesrepository.PropertyRepository
	notifier   regeneration.ChangeNotifier
	cfg        *config.Config
}

func (b *base) requireProperty(ctx context.Context, propertyID string) error {
	if propertyID == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}
	if _, err := b.properties.FindByID(ctx, propertyID); err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", propertyID)
		}
		b.cfg.Log.Error("Failed to check property existence", "property_id", propertyID, "error", err)
		return apperrors.Internal("Failed to check property existence", err)
	}
	return nil
}

// notify announces a rule change covering [start, end]. The rule write has
// already succeeded, so a failure is only logged; the scheduled full
// regeneration bounds the staleness.
func (b *base) notify(ctx context.Context, propertyID, source, start, end string) {
	event := model.PricingInputChanged{
		PropertyID: propertyID,
		Source:     source,
		StartDate:  start,
		EndDate:    end,
		OccurredAt: time.Now().UTC(),
	}
	if err := b.notifier.Notify(ctx, event); err != nil {
		b.cfg.Log.Error("Failed to announce pricing rule change",
			"property_id", propertyID,
			"source", source,
			"error", err,
		)
	}
}

func (b *base) mapRepoError(err error, resource, id, action string) error {
	if errors.Is(err, pricingruleserrors.ErrNotFound) {
		return apperrors.NotFoundWithID(resource, id)
	}
	if errors.Is(err, pricingruleserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid " + resource + " ID format")
	}
	b.cfg.Log.Error("Failed to "+action, "id", id, "error", err)
	return apperrors.Internal("Failed to "+action, err)
}

func minDate(a, b string) string {
	if a == "" || (b != "" && b < a) {
		return b
	}
	return a
}

func maxDate(a, b string) string {
	if b > a {
		return b
	}
	return a
}
