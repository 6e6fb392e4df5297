package model

import "time"

const (
	PriceSourceBase     = "base"
	PriceSourceSeason   = "season"
	PriceSourceOverride = "override"
	PriceSourceWeekend  = "weekend"
)

const (
	UnavailableReasonBlocked = "blocked"
	UnavailableReasonBooked  = "booked"
)

type DayPriceEntry struct {
	Date              string  `json:"date" bson:"date"`
	BasePrice         float64 `json:"basePrice" bson:"basePrice"`
	AdjustedPrice     float64 `json:"adjustedPrice" bson:"adjustedPrice"`
	Available         bool    `json:"available" bson:"available"`
	MinimumStay       int     `json:"minimumStay" bson:"minimumStay"`
	PriceSource       string  `json:"priceSource" bson:"priceSource"`
	IsWeekend         bool    `json:"isWeekend" bson:"isWeekend"`
	SeasonID          string  `json:"seasonId,omitempty" bson:"seasonId,omitempty"`
	SeasonName        string  `json:"seasonName,omitempty" bson:"seasonName,omitempty"`
	OverrideReason    string  `json:"overrideReason,omitempty" bson:"overrideReason,omitempty"`
	UnavailableReason string  `json:"unavailableReason,omitempty" bson:"unavailableReason,omitempty"`
}

type CalendarSummary struct {
	MinPrice         float64 `json:"minPrice" bson:"minPrice"`
	MaxPrice         float64 `json:"maxPrice" bson:"maxPrice"`
	AvgPrice         float64 `json:"avgPrice" bson:"avgPrice"`
	UnavailableDays  int     `json:"unavailableDays" bson:"unavailableDays"`
	ModifiedDays     int     `json:"modifiedDays" bson:"modifiedDays"`
	HasCustomPrices  bool    `json:"hasCustomPrices" bson:"hasCustomPrices"`
	HasSeasonalRates bool    `json:"hasSeasonalRates" bson:"hasSeasonalRates"`
}

// PriceCalendar is a priceCalendars/{propertyId}_{yyyy-MM} document: a
// materialized month of DayPriceEntry values, valid as of GeneratedAt.
type PriceCalendar struct {
	ID          string                   `json:"id" bson:"_id"`
	PropertyID  string                   `json:"propertyId" bson:"propertyId"`
	Year        int                      `json:"year" bson:"year"`
	Month       int                      `json:"month" bson:"month"`
	Currency    string                   `json:"currency,omitempty" bson:"currency,omitempty"`
	Days        map[string]DayPriceEntry `json:"days" bson:"days"`
	Summary     CalendarSummary          `json:"summary" bson:"summary"`
	GeneratedAt time.Time                `json:"generatedAt" bson:"generatedAt"`
}
