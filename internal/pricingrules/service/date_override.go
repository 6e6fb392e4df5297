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

type DateOverrideService interface {
	// Upsert sets the override of one date, replacing an earlier one.
	Upsert(ctx context.Context, propertyID string, override *model.DateOverride) error
	List(ctx context.Context, propertyID, from, to string) ([]*model.DateOverride, error)
	Delete(ctx context.Context, id string) error
}

type dateOverrideService struct {
	base
	repo      repository.DateOverrideRepository
	validator *validator.RuleValidator
}

func NewDateOverrideService(
	repo repository.DateOverrideRepository,
	properties propertiesrepository.PropertyRepository,
	validator *validator.RuleValidator,
	notifier regeneration.ChangeNotifier,
	cfg *config.Config,
) DateOverrideService {
	return &dateOverrideService{
		base:      base{properties: properties, notifier: notifier, cfg: cfg},
		repo:      repo,
		validator: validator,
	}
}

func (s *dateOverrideService) Upsert(ctx context.Context, propertyID string, override *model.DateOverride) error {
	override.PropertyID = propertyID
	override.Date = sanitizer.NormalizeDate(override.Date)
	override.Reason = sanitizer.NormalizeReason(override.Reason)

	if err := s.validator.ValidateOverride(override); err != nil {
		s.cfg.Log.Warn("Date override validation failed", "property_id", propertyID, "error", err)
		return validation.ToAppError("Date override validation failed", err)
	}
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, override); err != nil {
		s.cfg.Log.Error("Failed to upsert date override", "property_id", propertyID, "date", override.Date, "error", err)
		return apperrors.Internal("Failed to store date override", err)
	}

	s.cfg.Log.Info("Date override stored",
		"id", override.ID,
		"property_id", propertyID,
		"date", override.Date,
		"available", override.Available,
	)
	s.notify(ctx, propertyID, model.ChangeSourceDateOverride, override.Date, override.Date)
	return nil
}

func (s *dateOverrideService) List(ctx context.Context, propertyID, from, to string) ([]*model.DateOverride, error) {
	from = sanitizer.NormalizeDate(from)
	to = sanitizer.NormalizeDate(to)
	if from != "" && to != "" && to < from {
		return nil, apperrors.InvalidInput("to must not be before from")
	}
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	overrides, err := s.repo.FindInRange(ctx, propertyID, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to list date overrides", "property_id", propertyID, "error", err)
		return nil, apperrors.Internal("Failed to list date overrides", err)
	}
	return overrides, nil
}

func (s *dateOverrideService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Date override ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, "Date override", id, "retrieve date override")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, "Date override", id, "delete date override")
	}

	s.cfg.Log.Info("Date override deleted", "id", id, "property_id", existing.PropertyID, "date", existing.Date)
	s.notify(ctx, existing.PropertyID, model.ChangeSourceDateOverride, existing.Date, existing.Date)
	return nil
}
