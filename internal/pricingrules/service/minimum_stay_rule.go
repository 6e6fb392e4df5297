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

type MinimumStayRuleService interface {
	Create(ctx context.Context, propertyID string, rule *model.MinimumStayRule) error
	GetByID(ctx context.Context, id string) (*model.MinimumStayRule, error)
	List(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.MinimumStayRule, error)
	Update(ctx context.Context, id string, updates *model.MinimumStayRuleUpdate) (*model.MinimumStayRule, error)
	Disable(ctx context.Context, id string) error
}

type minimumStayRuleService struct {
	base
	repo      repository.MinimumStayRuleRepository
	validator *validator.RuleValidator
}

func NewMinimumStayRuleService(
	repo repository.MinimumStayRuleRepository,
	properties propertiesrepository.PropertyRepository,
	validator *validator.RuleValidator,
	notifier regeneration.ChangeNotifier,
	cfg *config.Config,
) MinimumStayRuleService {
	return &minimumStayRuleService{
		base:      base{properties: properties, notifier: notifier, cfg: cfg},
		repo:      repo,
		validator: validator,
	}
}

func (s *minimumStayRuleService) Create(ctx context.Context, propertyID string, rule *model.MinimumStayRule) error {
	rule.PropertyID = propertyID
	rule.StartDate = sanitizer.NormalizeDate(rule.StartDate)
	rule.EndDate = sanitizer.NormalizeDate(rule.EndDate)

	if err := s.validator.ValidateMinimumStay(rule); err != nil {
		s.cfg.Log.Warn("Minimum stay rule validation failed", "property_id", propertyID, "error", err)
		return validation.ToAppError("Minimum stay rule validation failed", err)
	}
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		s.cfg.Log.Error("Failed to create minimum stay rule", "property_id", propertyID, "error", err)
		return apperrors.Internal("Failed to create minimum stay rule", err)
	}

	s.cfg.Log.Info("Minimum stay rule created",
		"id", rule.ID,
		"property_id", propertyID,
		"minimum_stay", rule.MinimumStay,
	)
	if rule.Enabled {
		s.notify(ctx, propertyID, model.ChangeSourceMinimumStayRule, rule.StartDate, rule.EndDate)
	}
	return nil
}

func (s *minimumStayRuleService) GetByID(ctx context.Context, id string) (*model.MinimumStayRule, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Minimum stay rule ID cannot be empty")
	}
	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "Minimum stay rule", id, "retrieve minimum stay rule")
	}
	return rule, nil
}

func (s *minimumStayRuleService) List(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.MinimumStayRule, error) {
	if err := s.requireProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	rules, err := s.repo.FindByProperty(ctx, propertyID, includeDisabled)
	if err != nil {
		s.cfg.Log.Error("Failed to list minimum stay rules", "property_id", propertyID, "error", err)
		return nil, apperrors.Internal("Failed to list minimum stay rules", err)
	}
	return rules, nil
}

func (s *minimumStayRuleService) Update(ctx context.Context, id string, updates *model.MinimumStayRuleUpdate) (*model.MinimumStayRule, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates.StartDate = sanitizer.NormalizeDate(updates.StartDate)
	updates.EndDate = sanitizer.NormalizeDate(updates.EndDate)
	if err := s.validator.ValidateMinimumStayUpdate(updates); err != nil {
		return nil, validation.ToAppError("Minimum stay rule validation failed", err)
	}

	merged := *existing
	if updates.StartDate != "" {
		merged.StartDate = updates.StartDate
	}
	if updates.EndDate != "" {
		merged.EndDate = updates.EndDate
	}
	if updates.MinimumStay != nil {
		merged.MinimumStay = *updates.MinimumStay
	}
	if updates.Enabled != nil {
		merged.Enabled = *updates.Enabled
	}
	if err := s.validator.ValidateMinimumStay(&merged); err != nil {
		return nil, validation.ToAppError("Minimum stay rule validation failed", err)
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, s.mapRepoError(err, "Minimum stay rule", id, "update minimum stay rule")
	}

	s.cfg.Log.Info("Minimum stay rule updated", "id", id, "property_id", merged.PropertyID)
	s.notify(ctx, merged.PropertyID, model.ChangeSourceMinimumStayRule,
		minDate(existing.StartDate, merged.StartDate), maxDate(existing.EndDate, merged.EndDate))
	return &merged, nil
}

func (s *minimumStayRuleService) Disable(ctx context.Context, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.Enabled {
		return nil
	}

	existing.Enabled = false
	if err := s.repo.Update(ctx, existing); err != nil {
		return s.mapRepoError(err, "Minimum stay rule", id, "disable minimum stay rule")
	}

	s.cfg.Log.Info("Minimum stay rule disabled", "id", id, "property_id", existing.PropertyID)
	s.notify(ctx, existing.PropertyID, model.ChangeSourceMinimumStayRule, existing.StartDate, existing.EndDate)
	return nil
}
