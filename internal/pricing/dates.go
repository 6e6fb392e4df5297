package pricing

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

func NewYearMonth(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a yyyy-MM string.
func ParseMonth(s string) (YearMonth, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: expected yyyy-MM", s)
	}
	return NewYearMonth(t), nil
}

func (ym YearMonth) Key() string {
	return MonthKey(ym.Year, ym.Month)
}

func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (ym YearMonth) Last() time.Time {
	return ym.First().AddDate(0, 1, -1)
}

func (ym YearMonth) Days() int {
	return ym.Last().Day()
}

func (ym YearMonth) Add(months int) YearMonth {
	return NewYearMonth(ym.First().AddDate(0, months, 0))
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// ParseDate parses an ISO calendar date. Values carrying a time component are
// truncated to their date part.
func ParseDate(s string) (time.Time, error) {
	key := normalizeDate(s)
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected yyyy-MM-dd", s)
	}
	return t, nil
}

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// CalendarID is the priceCalendars document id for a property month.
func CalendarID(propertyID string, year int, month time.Month) string {
	return propertyID + "_" + MonthKey(year, month)
}

// Window returns n consecutive months starting at from.
func Window(from YearMonth, n int) []YearMonth {
	months := make([]YearMonth, 0, max(n, 0))
	for i := 0; i < n; i++ {
		months = append(months, from.Add(i))
	}
	return months
}

// MonthsBetween returns every month touched by the inclusive date range
// [from, to]. It returns nil when to is before from.
func MonthsBetween(from, to time.Time) []YearMonth {
	start, end := NewYearMonth(from), NewYearMonth(to)
	if end.Before(start) {
		return nil
	}
	var months []YearMonth
	for ym := start; !end.Before(ym); ym = ym.Add(1) {
		months = append(months, ym)
	}
	return months
}

// Nights lists the nights of a stay: every date in [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) []time.Time {
	var nights []time.Time
	for d := dateOnly(checkIn); d.Before(dateOnly(checkOut)); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// normalizeDate reduces stored date values such as "2025-07-01T00:00:00Z" to
// their yyyy-MM-dd prefix so they compare lexically.
func normalizeDate(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

func covers(start, end, key string) bool {
	start, end = normalizeDate(start), normalizeDate(end)
	if start == "" || end == "" {
		return false
	}
	return start <= key && key <= end
}
