package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	calendarserrors "rentalspot/internal/calendars/errors"
	"rentalspot/internal/calendars/repository"
	"rentalspot/internal/pricing"
	propertieserrors "rentalspot/internal/properties/errors"
	propertiesrepository "rentalspot/internal/properties/repository"
	"rentalspot/pkg/cache"
	"rentalspot/pkg/config"
	apperrors "rentalspot/pkg/errors"
	"rentalspot/pkg/logger"
	"rentalspot/pkg/metrics"
	"rentalspot/pkg/model"
	"rentalspot/pkg/sanitizer"
	"rentalspot/pkg/validation"
)

// Quote rejection reasons besides the ones the pricing core reports.
const (
	ReasonInvalidRequest   = "invalid_request"
	ReasonPropertyNotFound = "property_not_found"
	ReasonInvalidCoupon    = "invalid_coupon"
	ReasonServiceError     = "service_error"
	ReasonStayTooLong      = "stay_too_long"

	outcomeAvailable = "available"
)

// MaxStayNights bounds a quoted stay.
const MaxStayNights = 365

type QuoteRequest struct {
	CheckInDate  string  `json:"checkInDate" validate:"required,iso_date"`
	CheckOutDate string  `json:"checkOutDate" validate:"required,iso_date"`
	Guests       int     `json:"guests" validate:"required,min=1,max=100"`
	CouponCode   string  `json:"couponCode,omitempty" validate:"omitempty,min=2,max=50"`
	Taxes        float64 `json:"taxes,omitempty" validate:"gte=0"`
}

// QuoteResult is always returned with HTTP 200. Rejections carry a machine
// readable reason plus the data a client needs to explain it.
type QuoteResult struct {
	Available bool                  `json:"available"`
	Pricing   *model.BookingPricing `json:"pricing,omitempty"`
	Reason    string                `json:"reason,omitempty"`
	Message   string                `json:"message,omitempty"`
	Details   map[string]any        `json:"details,omitempty"`
}

type QuoteService interface {
	Quote(ctx context.Context, propertyID string, req *QuoteRequest) *QuoteResult
}

type quoteService struct {
	properties propertiesrepository.PropertyRepository
	coupons    repository.CouponRepository
	loader     *monthLoader
	calc       *pricing.Calculator
	validator  *validator.Validate
	cfg        *config.Config
	log        *logger.Logger
	now        func() time.Time
}

func NewQuoteService(
	properties propertiesrepository.PropertyRepository,
	coupons repository.CouponRepository,
	calendars repository.PriceCalendarRepository,
	calendarCache cache.CalendarCache,
	generator GeneratorService,
	calc *pricing.Calculator,
	cfg *config.Config,
) QuoteService {
	return &quoteService{
		properties: properties,
		coupons:    coupons,
		loader: &monthLoader{
			calendars: calendars,
			cache:     calendarCache,
			generator: generator,
			cfg:       cfg,
		},
		calc:      calc,
		validator: validation.New(cfg.Log),
		cfg:       cfg,
		log:       cfg.Log.Component("quote"),
		now:       time.Now,
	}
}

func (s *quoteService) Quote(ctx context.Context, propertyID string, req *QuoteRequest) *QuoteResult {
	result := s.quote(ctx, propertyID, req)

	outcome := outcomeAvailable
	if !result.Available {
		outcome = result.Reason
	}
	metrics.Quotes.WithLabelValues(outcome).Inc()
	return result
}

func (s *quoteService) quote(ctx context.Context, propertyID string, req *QuoteRequest) *QuoteResult {
	if propertyID == "" || req == nil {
		return rejected(ReasonInvalidRequest, "property and stay are required", nil)
	}

	req.CheckInDate = sanitizer.NormalizeDate(req.CheckInDate)
	req.CheckOutDate = sanitizer.NormalizeDate(req.CheckOutDate)
	req.CouponCode = sanitizer.NormalizeCouponCode(req.CouponCode)
	if err := validation.Struct(s.validator, req); err != nil {
		var verrs validation.ValidationErrors
		if errors.As(err, &verrs) {
			return rejected(ReasonInvalidRequest, "invalid quote request", verrs.Details())
		}
		return rejected(ReasonInvalidRequest, err.Error(), nil)
	}

	checkIn, _ := pricing.ParseDate(req.CheckInDate)
	checkOut, _ := pricing.ParseDate(req.CheckOutDate)
	if !checkOut.After(checkIn) {
		return fromQuoteError(pricing.ErrInvalidStayRange)
	}
	if nights := len(pricing.Nights(checkIn, checkOut)); nights > MaxStayNights {
		return rejected(ReasonStayTooLong, "stays are limited in length", map[string]any{
			"maxNights":       MaxStayNights,
			"requestedNights": nights,
		})
	}

	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, propertieserrors.ErrNotFound) {
			return rejected(ReasonPropertyNotFound, "property not found", map[string]any{"propertyId": propertyID})
		}
		s.log.Error("Failed to load property for quote", "property_id", propertyID, "error", err)
		return serviceError()
	}

	coupon, result := s.resolveCoupon(ctx, propertyID, req.CouponCode)
	if result != nil {
		return result
	}

	months := pricing.MonthsBetween(checkIn, checkOut.AddDate(0, 0, -1))
	cals, err := s.loader.load(ctx, propertyID, months)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return rejected(ReasonPropertyNotFound, "property not found", map[string]any{"propertyId": propertyID})
		}
		s.log.Error("Failed to load calendar months for quote", "property_id", propertyID, "error", err)
		return serviceError()
	}

	lookup := func(night time.Time) (model.DayPriceEntry, bool) {
		return pricing.DayEntry(cals[pricing.NewYearMonth(night)], night)
	}

	quoteReq := pricing.QuoteRequest{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
		Taxes:    req.Taxes,
	}
	if coupon != nil {
		quoteReq.CouponCode = coupon.Code
		quoteReq.CouponPercentage = coupon.DiscountPercentage
	}

	quote, err := s.calc.Quote(property, quoteReq, lookup)
	if err != nil {
		return fromQuoteError(err)
	}
	return &QuoteResult{Available: true, Pricing: quote}
}

// resolveCoupon returns the usable coupon for code, or a rejection.
func (s *quoteService) resolveCoupon(ctx context.Context, propertyID, code string) (*model.Coupon, *QuoteResult) {
	if code == "" {
		return nil, nil
	}

	coupon, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, calendarserrors.ErrCouponNotFound) {
			return nil, rejected(ReasonInvalidCoupon, "coupon not found", map[string]any{"couponCode": code})
		}
		s.log.Error("Failed to load coupon", "property_id", propertyID, "coupon_code", code, "error", err)
		return nil, serviceError()
	}
	if !coupon.Usable(propertyID, s.now().UTC()) {
		return nil, rejected(ReasonInvalidCoupon, "coupon is not valid for this stay", map[string]any{"couponCode": code})
	}
	return coupon, nil
}

func fromQuoteError(err error) *QuoteResult {
	qe, ok := pricing.AsQuoteError(err)
	if !ok {
		return serviceError()
	}
	return rejected(qe.Reason(), qe.Error(), qe.Details())
}

func rejected(reason, message string, details map[string]any) *QuoteResult {
	return &QuoteResult{
		Available: false,
		Reason:    reason,
		Message:   message,
		Details:   details,
	}
}

func serviceError() *QuoteResult {
	return rejected(ReasonServiceError, "quote is temporarily unavailable", nil)
}
