package pricing

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ReasonUnavailableDates = "unavailable_dates"
	ReasonMinimumStay      = "minimum_stay"
	ReasonMaxGuests        = "max_guests"
	ReasonInvalidRange     = "invalid_dates"
	ReasonInvalidGuests    = "invalid_guests"
)

var (
	ErrInvalidStayRange  = errors.New("check-out must be after check-in")
	ErrInvalidGuestCount = errors.New("guest count must be at least 1")
	ErrInvalidPolicy     = errors.New("invalid weekend/season policy")
)

// QuoteError is a quote rejection the caller can render as a structured
// payload.
type QuoteError interface {
	error
	Reason() string
	Details() map[string]any
}

type DatesUnavailableError struct {
	Dates []string
}

func (e *DatesUnavailableError) Error() string {
	return fmt.Sprintf("dates unavailable: %s", strings.Join(e.Dates, ", "))
}

func (e *DatesUnavailableError) Reason() string { return ReasonUnavailableDates }

func (e *DatesUnavailableError) Details() map[string]any {
	return map[string]any{"unavailableDates": e.Dates}
}

type MinimumStayNotMetError struct {
	RequiredNights  int
	RequestedNights int
}

func (e *MinimumStayNotMetError) Error() string {
	return fmt.Sprintf("minimum stay is %d nights, requested %d", e.RequiredNights, e.RequestedNights)
}

func (e *MinimumStayNotMetError) Reason() string { return ReasonMinimumStay }

func (e *MinimumStayNotMetError) Details() map[string]any {
	return map[string]any{"requiredNights": e.RequiredNights, "requestedNights": e.RequestedNights}
}

type GuestLimitError struct {
	MaxGuests       int
	RequestedGuests int
}

func (e *GuestLimitError) Error() string {
	return fmt.Sprintf("property allows at most %d guests, requested %d", e.MaxGuests, e.RequestedGuests)
}

func (e *GuestLimitError) Reason() string { return ReasonMaxGuests }

func (e *GuestLimitError) Details() map[string]any {
	return map[string]any{"maxGuests": e.MaxGuests, "requestedGuests": e.RequestedGuests}
}

// AsQuoteError unwraps err into a QuoteError. Plain input errors are mapped to
// their reason codes.
func AsQuoteError(err error) (QuoteError, bool) {
	var qe QuoteError
	if errors.As(err, &qe) {
		return qe, true
	}
	switch {
	case errors.Is(err, ErrInvalidStayRange):
		return &inputError{reason: ReasonInvalidRange, err: err}, true
	case errors.Is(err, ErrInvalidGuestCount):
		return &inputError{reason: ReasonInvalidGuests, err: err}, true
	}
	return nil, false
}

type inputError struct {
	reason string
	err    error
}

func (e *inputError) Error() string           { return e.err.Error() }
func (e *inputError) Unwrap() error           { return e.err }
func (e *inputError) Reason() string          { return e.reason }
func (e *inputError) Details() map[string]any { return nil }
