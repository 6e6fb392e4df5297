package model

import "time"

const (
	ChangeSourceProperty        = "property"
	ChangeSourceSeasonalPricing = "seasonalPricing"
	ChangeSourceDateOverride    = "dateOverride"
	ChangeSourceMinimumStayRule = "minimumStayRule"
	ChangeSourceBooking         = "booking"
	ChangeSourceSchedule        = "schedule"
)

// PricingInputChanged announces that an input of a property's price calendar
// changed. StartDate/EndDate bound the affected nights when known; empty means
// the whole regeneration window.
type PricingInputChanged struct {
	PropertyID string    `json:"propertyId"`
	Source     string    `json:"source"`
	StartDate  string    `json:"startDate,omitempty"`
	EndDate    string    `json:"endDate,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
