package service

import (
	"context"

	"rentalspot/internal/pricingrules/repository"
	"rentalspot/internal/pricingrules/validator"
	propertiesrepository "rentalspot/internal/properties/repository"
	"rentalspot/internal/regeneration"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/model"
	"rentalspot/pkg/sanitizer"
	"rentalspot/pkg/validation"
)

type SeasonalPricingService interface {
	Create(ctx context.Context, propertyID string, season *model.SeasonalPricing) error
	GetByID(ctx context.Context, id string) (*model.SeasonalPricing, error)
	List(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.SeasonalPricing, error)
	Update(ctx context.Context, id string, updates *model.SeasonalPricingUpdate) (*model.SeasonalPricing, error)
	// Disable soft-deletes the rule; disabled rules never affect prices.
	Disable(ctx context.Context, id string) error
}

type seasonalPricingService struct {
	base
	repo      repository.SeasonalPricingRepository
	validator *validator.RuleValidator
}

func NewSeasonalPricingService(
	repo repository.SeasonalPricingRepository,
	properties propertiesrepository.PropertyRepository,
	validator *validator.RuleValidator,
	notifier regeneration.ChangeNotifier,
	cfg *config.Config,
) SeasonalPricingService {
	return &seasonalPricingService{
		base:      base{properties: properties, notifier: notifier, cfg: cfg},
		repo:      repo,
		validator: validator,
	}
}

func (s *seasonalPricingService) Create(ctx context.Context, propertyID string, season *model.SeasonalPricing) error {
	season.PropertyID = propertyID
	season.Name = sanitizer.NormalizeName(season.Name)
	season.StartDate = sanitizer.NormalizeDate(season.StartDate)
	season.EndDate = sanitizer.NormalizeDate(season.EndDate)
	if season.SeasonType == "" {
		season.SeasonType = "standard"
	}

	if err := s.validator.ValidateSeason(season); err != nil {
		s.cfg.Log.Warn("Seasonal pricing validation failed", "property_id", propertyID, "error", err)
		return validation.ToAppError("Seasonal pricing validation failed", err)
	}
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, season); err != nil {
		s.cfg.Log.Error("Failed to create seasonal pricing", "property_id", propertyID, "error", err)
		return apperrors.Internal("Failed to create seasonal pricing", err)
	}

	s.cfg.Log.Info("Seasonal pricing created",
		"id", season.ID,
		"property_id", propertyID,
		"start_date", season.StartDate,
		"end_date", season.EndDate,
		"multiplier", season.PriceMultiplier,
	)
	if season.Enabled {
		s.notify(ctx, propertyID, model.ChangeSourceSeasonalPricing, season.StartDate, season.EndDate)
	}
	return nil
}

func (s *seasonalPricingService) GetByID(ctx context.Context, id string) (*model.SeasonalPricing, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Seasonal pricing ID cannot be empty")
	}
	season, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "Seasonal pricing", id, "retrieve seasonal pricing")
	}
	return season, nil
}

func (s *seasonalPricingService) List(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.SeasonalPricing, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	seasons, err := s.repo.FindByProperty(ctx, propertyID, includeDisabled)
	if err != nil {
		s.cfg.Log.Error("Failed to list seasonal pricing", "property_id", propertyID, "error", err)
		return nil, apperrors.Internal("Failed to list seasonal pricing", err)
	}
	return seasons, nil
}

func (s *seasonalPricingService) Update(ctx context.Context, id string, updates *model.SeasonalPricingUpdate) (*model.SeasonalPricing, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates.Name = sanitizer.NormalizeName(updates.Name)
	updates.StartDate = sanitizer.NormalizeDate(updates.StartDate)
	updates.EndDate = sanitizer.NormalizeDate(updates.EndDate)
	if err := s.validator.ValidateSeasonUpdate(updates); err != nil {
		return nil, validation.ToAppError("Seasonal pricing validation failed", err)
	}

	merged := mergeSeason(existing, updates)
	if err := s.validator.ValidateSeason(merged); err != nil {
		return nil, validation.ToAppError("Seasonal pricing validation failed", err)
	}

	if err := s.repo.Update(ctx, merged); err != nil {
		return nil, s.mapRepoError(err, "Seasonal pricing", id, "update seasonal pricing")
	}

	s.cfg.Log.Info("Seasonal pricing updated", "id", id, "property_id", merged.PropertyID)
	s.notify(ctx, merged.PropertyID, model.ChangeSourceSeasonalPricing,
		minDate(existing.StartDate, merged.StartDate), maxDate(existing.EndDate, merged.EndDate))
	return merged, nil
}

func (s *seasonalPricingService) Disable(ctx context.Context, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.Enabled {
		return nil
	}

	existing.Enabled = false
	if err := s.repo.Update(ctx, existing); err != nil {
		return s.mapRepoError(err, "Seasonal pricing", id, "disable seasonal pricing")
	}

	s.cfg.Log.Info("Seasonal pricing disabled", "id", id, "property_id", existing.PropertyID)
	s.notify(ctx, existing.PropertyID, model.ChangeSourceSeasonalPricing, existing.StartDate, existing.EndDate)
	return nil
}

func mergeSeason(existing *model.SeasonalPricing, u *model.SeasonalPricingUpdate) *model.SeasonalPricing {
	merged := *existing
	if u.Name != "" {
		merged.Name = u.Name
	}
	if u.StartDate != "" {
		merged.StartDate = u.StartDate
	}
	if u.EndDate != "" {
		merged.EndDate = u.EndDate
	}
	if u.PriceMultiplier != nil {
		merged.PriceMultiplier = *u.PriceMultiplier
	}
	if u.MinimumStay != nil {
		merged.MinimumStay = *u.MinimumStay
	}
	if u.SeasonType != "" {
		merged.SeasonType = u.SeasonType
	}
	if u.Enabled != nil {
		merged.Enabled = *u.Enabled
	}
	return &merged
}
