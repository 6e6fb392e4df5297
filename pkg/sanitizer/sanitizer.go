package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

func upper(s string) string {
	return strings.ToUpper(s)
}

func stripSpaces(s string) string {
	return reSpaces.ReplaceAllString(s, "")
}

func NormalizeWeekday(day string) string {
	return Pipeline{trim, lower}.Apply(day)
}

func NormalizeCurrency(code string) string {
	return Pipeline{trim, stripSpaces, upper}.Apply(code)
}

func NormalizeCouponCode(code string) string {
	return Pipeline{trim, stripSpaces, upper}.Apply(code)
}

// NormalizeDate keeps the calendar date of an ISO date or timestamp. Values
// that do not start with YYYY-MM-DD are returned trimmed for the validator to
// reject.
func NormalizeDate(s string) string {
	s = trim(s)
	if m := reDatePrefix.FindString(s); m != "" {
		return m
	}
	return s
}
