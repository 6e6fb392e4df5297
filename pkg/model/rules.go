package model

import "time"

// SeasonalPricing is a seasonalPricing/{id} document. Dates are ISO calendar
// dates (YYYY-MM-DD), both ends inclusive.
type SeasonalPricing struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PropertyID      string    `json:"propertyId" bson:"propertyId" validate:"required,min=1,max=100"`
	Name            string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	StartDate       string    `json:"startDate" bson:"startDate" validate:"required,iso_date"`
	EndDate         string    `json:"endDate" bson:"endDate" validate:"required,iso_date"`
	PriceMultiplier float64   `json:"priceMultiplier" bson:"priceMultiplier" validate:"gt=0,lte=10"`
	MinimumStay     int       `json:"minimumStay" bson:"minimumStay" validate:"min=0,max=365"`
	SeasonType      string    `json:"seasonType" bson:"seasonType" validate:"omitempty,oneof=low standard medium high peak holiday"`
	Enabled         bool      `json:"enabled" bson:"enabled"`
	CreatedAt       time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type SeasonalPricingUpdate struct {
	Name            string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	StartDate       string   `json:"startDate,omitempty" validate:"omitempty,iso_date"`
	EndDate         string   `json:"endDate,omitempty" validate:"omitempty,iso_date"`
	PriceMultiplier *float64 `json:"priceMultiplier,omitempty" validate:"omitempty,gt=0,lte=10"`
	MinimumStay     *int     `json:"minimumStay,omitempty" validate:"omitempty,min=0,max=365"`
	SeasonType      string   `json:"seasonType,omitempty" validate:"omitempty,oneof=low standard medium high peak holiday"`
	Enabled         *bool    `json:"enabled,omitempty"`
}

// DateOverride is a dateOverrides/{id} document. There is at most one per
// (propertyId, date); a later write replaces the earlier one.
type DateOverride struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PropertyID  string    `json:"propertyId" bson:"propertyId" validate:"required,min=1,max=100"`
	Date        string    `json:"date" bson:"date" validate:"required,iso_date"`
	CustomPrice float64   `json:"customPrice" bson:"customPrice" validate:"gte=0"`
	MinimumStay int       `json:"minimumStay" bson:"minimumStay" validate:"min=0,max=365"`
	Reason      string    `json:"reason,omitempty" bson:"reason,omitempty" validate:"max=200"`
	Available   bool      `json:"available" bson:"available"`
	FlatRate    bool      `json:"flatRate" bson:"flatRate"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// DateOverrideInput is the request body of an override upsert. Available is
// a pointer so an omitted flag can be told apart from an explicit false.
type DateOverrideInput struct {
	PropertyID  string  `json:"propertyId,omitempty"`
	Date        string  `json:"date"`
	CustomPrice float64 `json:"customPrice"`
	MinimumStay int     `json:"minimumStay"`
	Reason      string  `json:"reason,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	FlatRate    bool    `json:"flatRate"`
}

// Override converts the input to the stored form. A date is open unless the
// input blocks it explicitly.
func (in *DateOverrideInput) Override() *DateOverride {
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	return &DateOverride{
		PropertyID:  in.PropertyID,
		Date:        in.Date,
		CustomPrice: in.CustomPrice,
		MinimumStay: in.MinimumStay,
		Reason:      in.Reason,
		Available:   available,
		FlatRate:    in.FlatRate,
	}
}

// MinimumStayRule is a minimumStayRules/{id} document.
type MinimumStayRule struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PropertyID  string    `json:"propertyId" bson:"propertyId" validate:"required,min=1,max=100"`
	StartDate   string    `json:"startDate" bson:"startDate" validate:"required,iso_date"`
	EndDate     string    `json:"endDate" bson:"endDate" validate:"required,iso_date"`
	MinimumStay int       `json:"minimumStay" bson:"minimumStay" validate:"required,min=1,max=365"`
	Enabled     bool      `json:"enabled" bson:"enabled"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type MinimumStayRuleUpdate struct {
	StartDate   string `json:"startDate,omitempty" validate:"omitempty,iso_date"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty,iso_date"`
	MinimumStay *int   `json:"minimumStay,omitempty" validate:"omitempty,min=1,max=365"`
	Enabled     *bool  `json:"enabled,omitempty"`
}
