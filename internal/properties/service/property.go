package service

import (
	"context"
	"errors"
	"time"

	propertieserrors "rentalspot/internal/properties/errors"
	"rentalspot/internal/properties/repository"
	"rentalspot/internal/properties/validator"
	"rentalspot/internal/regeneration"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/model"
	"rentalspot/pkg/sanitizer"
	"rentalspot/pkg/validation"
)

type PropertyService interface {
	GetPricing(ctx context.Context, id string) (*model.Property, error)
	UpdatePricing(ctx context.Context, id string, updates *model.PropertyPricingUpdate) (*model.Property, error)
}

type propertyService struct {
	repo      repository.PropertyRepository
	validator *validator.PropertyValidator
	notifier  regeneration.ChangeNotifier
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	validator *validator.PropertyValidator,
	notifier regeneration.ChangeNotifier,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *propertyService) GetPricing(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		s.cfg.Log.Error("Failed to get property", "property_id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve property", err)
	}

	return property, nil
}

func (s *propertyService) UpdatePricing(ctx context.Context, id string, updates *model.PropertyPricingUpdate) (*model.Property, error) {
	existing, err := s.GetPricing(ctx, id)
	if err != nil {
		return nil, err
	}

	sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Property pricing validation failed", "property_id", id, "error", err)
		return nil, validation.ToAppError("Property pricing validation failed", err)
	}

	merged := mergePricing(existing, updates)
	if merged.MaxGuests > 0 && merged.BaseOccupancy > merged.MaxGuests {
		return nil, apperrors.Validation("Property pricing validation failed", map[string]any{
			"error": "baseOccupancy must not exceed maxGuests",
		})
	}

	if err := s.repo.UpdatePricing(ctx, merged); err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		s.cfg.Log.Error("Failed to update property pricing", "property_id", id, "error", err)
		return nil, apperrors.Internal("Failed to update property pricing", err)
	}

	s.cfg.Log.Info("Property pricing updated", "property_id", id)

	// the write already succeeded; a lost event is bounded by the nightly run
	if err := s.notifier.Notify(ctx, model.PricingInputChanged{
		PropertyID: id,
		Source:     model.ChangeSourceProperty,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		s.cfg.Log.Error("Failed to announce property pricing change", "property_id", id, "error", err)
	}

	return merged, nil
}

func sanitizeUpdate(u *model.PropertyPricingUpdate) {
	if u.BaseCurrency != "" {
		u.BaseCurrency = sanitizer.NormalizeCurrency(u.BaseCurrency)
	}
	if u.WeekendDays != nil {
		days := sanitizer.NormalizeWeekdays(*u.WeekendDays)
		u.WeekendDays = &days
	}
}

func mergePricing(existing *model.Property, u *model.PropertyPricingUpdate) *model.Property {
	merged := *existing
	merged.PricingConfig.WeekendDays = append([]string(nil), existing.PricingConfig.WeekendDays...)
	merged.PricingConfig.LengthOfStayDiscounts = append([]model.LengthOfStayDiscount(nil), existing.PricingConfig.LengthOfStayDiscounts...)

	if u.PricePerNight != nil {
		merged.PricePerNight = *u.PricePerNight
	}
	if u.BaseCurrency != "" {
		merged.BaseCurrency = u.BaseCurrency
	}
	if u.BaseOccupancy != nil {
		merged.BaseOccupancy = *u.BaseOccupancy
	}
	if u.ExtraGuestFee != nil {
		merged.ExtraGuestFee = *u.ExtraGuestFee
	}
	if u.MaxGuests != nil {
		merged.MaxGuests = *u.MaxGuests
	}
	if u.CleaningFee != nil {
		merged.CleaningFee = *u.CleaningFee
	}
	if u.DefaultMinimumStay != nil {
		merged.DefaultMinimumStay = *u.DefaultMinimumStay
	}
	if u.WeekendAdjustment != nil {
		merged.PricingConfig.WeekendAdjustment = *u.WeekendAdjustment
	}
	if u.WeekendDays != nil {
		merged.PricingConfig.WeekendDays = *u.WeekendDays
	}
	if u.LengthOfStayDiscounts != nil {
		merged.PricingConfig.LengthOfStayDiscounts = *u.LengthOfStayDiscounts
	}
	return &merged
}
