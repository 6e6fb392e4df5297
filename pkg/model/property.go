package model

import "time"

// Property is the pricing-relevant slice of a properties/{id} document. The
// document id is the property slug.
type Property struct {
	ID                 string        `json:"id" bson:"_id"`
	Name               string        `json:"name,omitempty" bson:"name,omitempty"`
	PricePerNight      float64       `json:"pricePerNight" bson:"pricePerNight"`
	BaseCurrency       string        `json:"baseCurrency" bson:"baseCurrency"`
	BaseOccupancy      int           `json:"baseOccupancy" bson:"baseOccupancy"`
	ExtraGuestFee      float64       `json:"extraGuestFee" bson:"extraGuestFee"`
	MaxGuests          int           `json:"maxGuests" bson:"maxGuests"`
	CleaningFee        float64       `json:"cleaningFee" bson:"cleaningFee"`
	DefaultMinimumStay int           `json:"defaultMinimumStay,omitempty" bson:"defaultMinimumStay,omitempty"`
	PricingConfig      PricingConfig `json:"pricingConfig" bson:"pricingConfig"`
	UpdatedAt          time.Time     `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type PricingConfig struct {
	// WeekendAdjustment is a multiplier; zero or 1 means no weekend pricing.
	WeekendAdjustment     float64                `json:"weekendAdjustment,omitempty" bson:"weekendAdjustment,omitempty"`
	WeekendDays           []string               `json:"weekendDays,omitempty" bson:"weekendDays,omitempty"`
	LengthOfStayDiscounts []LengthOfStayDiscount `json:"lengthOfStayDiscounts,omitempty" bson:"lengthOfStayDiscounts,omitempty"`
}

type LengthOfStayDiscount struct {
	MinNights          int     `json:"minNights" bson:"minNights" validate:"required,min=1,max=365"`
	DiscountPercentage float64 `json:"discountPercentage" bson:"discountPercentage" validate:"gt=0,lte=100"`
}

type PropertyPricingUpdate struct {
	PricePerNight         *float64                `json:"pricePerNight,omitempty" validate:"omitempty,gte=0"`
	BaseCurrency          string                  `json:"baseCurrency,omitempty" validate:"omitempty,len=3,alpha"`
	BaseOccupancy         *int                    `json:"baseOccupancy,omitempty" validate:"omitempty,min=1,max=100"`
	ExtraGuestFee         *float64                `json:"extraGuestFee,omitempty" validate:"omitempty,gte=0"`
	MaxGuests             *int                    `json:"maxGuests,omitempty" validate:"omitempty,min=1,max=100"`
	CleaningFee           *float64                `json:"cleaningFee,omitempty" validate:"omitempty,gte=0"`
	DefaultMinimumStay    *int                    `json:"defaultMinimumStay,omitempty" validate:"omitempty,min=1,max=365"`
	WeekendAdjustment     *float64                `json:"weekendAdjustment,omitempty" validate:"omitempty,gt=0,lte=10"`
	WeekendDays           *[]string               `json:"weekendDays,omitempty" validate:"omitempty,max=7,dive,weekday_name"`
	LengthOfStayDiscounts *[]LengthOfStayDiscount `json:"lengthOfStayDiscounts,omitempty" validate:"omitempty,max=20,dive"`
}
