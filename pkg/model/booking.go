package model

import (
	"time"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusOnHold    = "on-hold"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// BlockingStatuses are the booking statuses whose date range makes nights
// unbookable.
var BlockingStatuses = []string{BookingStatusConfirmed, BookingStatusOnHold}

type Booking struct {
	ID             string          `json:"id,omitempty" bson:"_id,omitempty"`
	PropertyID     string          `json:"propertyId" bson:"propertyId"`
	GuestInfo      *GuestInfo      `json:"guestInfo,omitempty" bson:"guestInfo,omitempty"`
	CheckInDate    string          `json:"checkInDate" bson:"checkInDate"`
	CheckOutDate   string          `json:"checkOutDate" bson:"checkOutDate"`
	NumberOfGuests int             `json:"numberOfGuests" bson:"numberOfGuests"`
	Pricing        *BookingPricing `json:"pricing,omitempty" bson:"pricing,omitempty"`
	Status         string          `json:"status" bson:"status"`
	HoldUntil      *time.Time      `json:"holdUntil,omitempty" bson:"holdUntil,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type GuestInfo struct {
	FirstName string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// BookingPricing is the price snapshot frozen on a booking. It is also the
// shape returned by a quote.
type BookingPricing struct {
	BaseRate             float64 `json:"baseRate" bson:"baseRate"`
	AverageNightlyRate   float64 `json:"averageNightlyRate" bson:"averageNightlyRate"`
	Nights               int     `json:"numberOfNights" bson:"numberOfNights"`
	CleaningFee          float64 `json:"cleaningFee" bson:"cleaningFee"`
	ExtraGuestFee        float64 `json:"extraGuestFee" bson:"extraGuestFee"`
	AccommodationTotal   float64 `json:"accommodationTotal" bson:"accommodationTotal"`
	Subtotal             float64 `json:"subtotal" bson:"subtotal"`
	LengthOfStayDiscount float64 `json:"lengthOfStayDiscount,omitempty" bson:"lengthOfStayDiscount,omitempty"`
	CouponCode           string  `json:"couponCode,omitempty" bson:"couponCode,omitempty"`
	CouponDiscount       float64 `json:"couponDiscount,omitempty" bson:"couponDiscount,omitempty"`
	DiscountAmount       float64 `json:"discountAmount" bson:"discountAmount"`
	Taxes                float64 `json:"taxes" bson:"taxes"`
	Total                float64 `json:"total" bson:"total"`
	Currency             string  `json:"currency" bson:"currency"`
}

// Blocks reports whether the booking holds its dates at instant now. Holds
// past their holdUntil no longer block.
func (b *Booking) Blocks(now time.Time) bool {
	switch b.Status {
	case BookingStatusConfirmed:
		return true
	case BookingStatusOnHold:
		return b.HoldUntil == nil || b.HoldUntil.After(now)
	default:
		return false
	}
}
