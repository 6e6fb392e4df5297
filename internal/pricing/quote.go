package pricing

import (
	"time"

	"rentalspot/pkg/model"
)

type QuoteRequest struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	// CouponCode and CouponPercentage describe an already validated coupon.
	CouponCode       string
	CouponPercentage float64
	// Taxes are computed downstream and added verbatim.
	Taxes float64
}

// NightLookup returns the priced entry for one night. A night without an entry
// cannot be booked.
type NightLookup func(night time.Time) (model.DayPriceEntry, bool)

// Quote totals a stay over [CheckIn, CheckOut).
func (c *Calculator) Quote(property *model.Property, req QuoteRequest, lookup NightLookup) (*model.BookingPricing, error) {
	nights := Nights(req.CheckIn, req.CheckOut)
	if len(nights) == 0 {
		return nil, ErrInvalidStayRange
	}
	if req.Guests < 1 {
		return nil, ErrInvalidGuestCount
	}

	var p model.Property
	if property != nil {
		p = *property
	}
	if p.MaxGuests > 0 && req.Guests > p.MaxGuests {
		return nil, &GuestLimitError{MaxGuests: p.MaxGuests, RequestedGuests: req.Guests}
	}

	entries := make([]model.DayPriceEntry, 0, len(nights))
	var unavailable []string
	required := 1
	for _, night := range nights {
		e, ok := lookup(night)
		if !ok || !e.Available {
			unavailable = append(unavailable, DateKey(night))
			continue
		}
		required = max(required, e.MinimumStay)
		entries = append(entries, e)
	}
	if len(unavailable) > 0 {
		return nil, &DatesUnavailableError{Dates: unavailable}
	}
	if len(nights) < required {
		return nil, &MinimumStayNotMetError{RequiredNights: required, RequestedNights: len(nights)}
	}

	var accommodation float64
	for _, e := range entries {
		accommodation += e.AdjustedPrice
	}

	var extraGuestFee float64
	if p.BaseOccupancy > 0 && req.Guests > p.BaseOccupancy {
		extraGuestFee = p.ExtraGuestFee * float64(req.Guests-p.BaseOccupancy) * float64(len(nights))
	}

	subtotal := accommodation + extraGuestFee + p.CleaningFee
	losDiscount := percentOf(subtotal, BestLengthOfStayDiscount(p.PricingConfig.LengthOfStayDiscounts, len(nights)))

	var couponDiscount float64
	if req.CouponPercentage > 0 {
		couponDiscount = percentOf(subtotal-losDiscount, min(req.CouponPercentage, 100))
	}

	discount := losDiscount + couponDiscount
	pricing := &model.BookingPricing{
		BaseRate:             RoundMoney(basePrice(c, &p)),
		AverageNightlyRate:   RoundMoney(accommodation / float64(len(nights))),
		Nights:               len(nights),
		CleaningFee:          RoundMoney(p.CleaningFee),
		ExtraGuestFee:        RoundMoney(extraGuestFee),
		AccommodationTotal:   RoundMoney(accommodation),
		Subtotal:             RoundMoney(subtotal),
		LengthOfStayDiscount: RoundMoney(losDiscount),
		CouponDiscount:       RoundMoney(couponDiscount),
		DiscountAmount:       RoundMoney(discount),
		Taxes:                RoundMoney(req.Taxes),
		Total:                RoundMoney(subtotal - discount + req.Taxes),
		Currency:             p.BaseCurrency,
	}
	if couponDiscount > 0 {
		pricing.CouponCode = req.CouponCode
	}
	return pricing, nil
}

// BestLengthOfStayDiscount returns the highest percentage among tiers whose
// night threshold the stay reaches, or zero.
func BestLengthOfStayDiscount(tiers []model.LengthOfStayDiscount, nights int) float64 {
	var best float64
	for _, t := range tiers {
		if t.MinNights <= nights && t.DiscountPercentage > best {
			best = min(t.DiscountPercentage, 100)
		}
	}
	return best
}

func basePrice(c *Calculator, p *model.Property) float64 {
	if p.PricePerNight > 0 {
		return p.PricePerNight
	}
	return c.fallbackBase
}
