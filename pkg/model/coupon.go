package model

import "time"

type Coupon struct {
	ID                 string     `json:"id,omitempty" bson:"_id,omitempty"`
	Code               string     `json:"code" bson:"code"`
	DiscountPercentage float64    `json:"discountPercentage" bson:"discountPercentage"`
	PropertyID         string     `json:"propertyId,omitempty" bson:"propertyId,omitempty"`
	ValidFrom          *time.Time `json:"validFrom,omitempty" bson:"validFrom,omitempty"`
	ValidUntil         *time.Time `json:"validUntil,omitempty" bson:"validUntil,omitempty"`
	Active             bool       `json:"active" bson:"active"`
}

// Usable reports whether the coupon applies to propertyID at instant now.
func (c *Coupon) Usable(propertyID string, now time.Time) bool {
	if !c.Active || c.DiscountPercentage <= 0 {
		return false
	}
	if c.PropertyID != "" && c.PropertyID != propertyID {
		return false
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false
	}
	return true
}
