package pricing

import (
	"strconv"
	"time"

	"rentalspot/pkg/model"
)

// Month materializes one month of day entries for a property. Bookings that
// block at now mark their nights unavailable; the check-out day stays free.
// GeneratedAt is left for the caller to stamp.
func (c *Calculator) Month(property *model.Property, ym YearMonth, rules Rules, bookings []model.Booking, now time.Time) *model.PriceCalendar {
	idx := newRuleIndex(rules)
	booked := bookedNights(bookings, now)

	days := make(map[string]model.DayPriceEntry, ym.Days())
	for day := 1; day <= ym.Days(); day++ {
		date := time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.UTC)
		entry := c.day(property, date, idx)
		if entry.Available && booked[entry.Date] {
			entry.Available = false
			entry.UnavailableReason = model.UnavailableReasonBooked
		}
		days[strconv.Itoa(day)] = entry
	}

	cal := &model.PriceCalendar{
		Year:    ym.Year,
		Month:   int(ym.Month),
		Days:    days,
		Summary: Summarize(days),
	}
	if property != nil {
		cal.ID = CalendarID(property.ID, ym.Year, ym.Month)
		cal.PropertyID = property.ID
		cal.Currency = property.BaseCurrency
	}
	return cal
}

func bookedNights(bookings []model.Booking, now time.Time) map[string]bool {
	booked := make(map[string]bool)
	for i := range bookings {
		b := &bookings[i]
		if !b.Blocks(now) {
			continue
		}
		in, err := ParseDate(b.CheckInDate)
		if err != nil {
			continue
		}
		out, err := ParseDate(b.CheckOutDate)
		if err != nil {
			continue
		}
		for _, n := range Nights(in, out) {
			booked[DateKey(n)] = true
		}
	}
	return booked
}

// Summarize aggregates a month's days in day order so repeated runs produce
// identical sums. Price statistics cover available days only.
func Summarize(days map[string]model.DayPriceEntry) model.CalendarSummary {
	var (
		s         model.CalendarSummary
		sum       float64
		available int
	)
	for day := 1; day <= 31; day++ {
		e, ok := days[strconv.Itoa(day)]
		if !ok {
			continue
		}
		switch e.PriceSource {
		case model.PriceSourceOverride:
			s.HasCustomPrices = true
		case model.PriceSourceSeason:
			s.HasSeasonalRates = true
		}
		// a day closed by an override is modified even though no custom
		// price applies to it
		if (e.PriceSource != model.PriceSourceBase && e.PriceSource != "") ||
			e.UnavailableReason == model.UnavailableReasonBlocked {
			s.ModifiedDays++
		}
		if !e.Available {
			s.UnavailableDays++
			continue
		}
		if available == 0 || e.AdjustedPrice < s.MinPrice {
			s.MinPrice = e.AdjustedPrice
		}
		if available == 0 || e.AdjustedPrice > s.MaxPrice {
			s.MaxPrice = e.AdjustedPrice
		}
		sum += e.AdjustedPrice
		available++
	}
	if available > 0 {
		s.AvgPrice = RoundMoney(sum / float64(available))
	}
	s.MinPrice = RoundMoney(s.MinPrice)
	s.MaxPrice = RoundMoney(s.MaxPrice)
	return s
}

// DayEntry looks up the entry for date in a month document.
func DayEntry(cal *model.PriceCalendar, date time.Time) (model.DayPriceEntry, bool) {
	if cal == nil || cal.Year != date.Year() || cal.Month != int(date.Month()) {
		return model.DayPriceEntry{}, false
	}
	e, ok := cal.Days[strconv.Itoa(date.Day())]
	return e, ok
}
