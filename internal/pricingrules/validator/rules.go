package validator

import (
	"github.com/go-playground/validator/v10"

	"rentalspot/pkg/logger"
	"rentalspot/pkg/model"
	"rentalspot/pkg/validation"
)

type RuleValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRuleValidator(log *logger.Logger) *RuleValidator {
	log.Info("Pricing rule validator initialized successfully")

	return &RuleValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *RuleValidator) ValidateSeason(season *model.SeasonalPricing) error {
	if err := validation.Struct(v.validate, season); err != nil {
		return err
	}
	return validation.DateRange(season.StartDate, season.EndDate)
}

func (v *RuleValidator) ValidateSeasonUpdate(update *model.SeasonalPricingUpdate) error {
	if err := validation.Struct(v.validate, update); err != nil {
		return err
	}
	return validation.DateRange(update.StartDate, update.EndDate)
}

func (v *RuleValidator) ValidateOverride(override *model.DateOverride) error {
	if err := validation.Struct(v.validate, override); err != nil {
		return err
	}
	if override.Available && override.CustomPrice <= 0 {
		return validation.ValidationErrors{{
			Field:   "customPrice",
			Message: "customPrice must be greater than 0 for an available date",
		}}
	}
	return nil
}

func (v *RuleValidator) ValidateMinimumStay(rule *model.MinimumStayRule) error {
	if err := validation.Struct(v.validate, rule); err != nil {
		return err
	}
	return validation.DateRange(rule.StartDate, rule.EndDate)
}

func (v *RuleValidator) ValidateMinimumStayUpdate(update *model.MinimumStayRuleUpdate) error {
	if err := validation.Struct(v.validate, update); err != nil {
		return err
	}
	return validation.DateRange(update.StartDate, update.EndDate)
}
