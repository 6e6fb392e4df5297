package validator

import (
	"github.com/go-playground/validator/v10"

	"rentalspot/pkg/logger"
	"rentalspot/pkg/model"
	"rentalspot/pkg/validation"
)

type PropertyValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPropertyValidator(log *logger.Logger) *PropertyValidator {
	return &PropertyValidator{
		validate: validation.New(log),
		logger:   log,
	}
}

func (v *PropertyValidator) ValidateUpdate(update *model.PropertyPricingUpdate) error {
	if err := validation.Struct(v.validate, update); err != nil {
		return err
	}

	if update.LengthOfStayDiscounts != nil {
		seen := make(map[int]bool)
		for _, tier := range *update.LengthOfStayDiscounts {
			if seen[tier.MinNights] {
				return validation.ValidationErrors{{
					Field:   "lengthOfStayDiscounts",
					Message: "each minNights threshold may appear only once",
				}}
			}
			seen[tier.MinNights] = true
		}
	}

	if update.BaseOccupancy != nil && update.MaxGuests != nil && *update.BaseOccupancy > *update.MaxGuests {
		return validation.ValidationErrors{{
			Field:   "baseOccupancy",
			Message: "baseOccupancy must not exceed maxGuests",
		}}
	}

	return nil
}
