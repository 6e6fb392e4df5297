package pricing

import (
	"fmt"
	"strings"
	"time"

	"rentalspot/pkg/model"
)

// WeekendSeasonPolicy decides how a weekend adjustment combines with a
// seasonal multiplier on a date covered by both.
type WeekendSeasonPolicy string

const (
	// SeasonOnly lets the seasonal multiplier replace the weekend adjustment.
	SeasonOnly WeekendSeasonPolicy = "season_only"
	// MultiplyWeekendSeason applies base × weekend × season.
	MultiplyWeekendSeason WeekendSeasonPolicy = "multiply"
)

func ParseWeekendSeasonPolicy(s string) (WeekendSeasonPolicy, error) {
	switch WeekendSeasonPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeasonOnly:
		return SeasonOnly, nil
	case MultiplyWeekendSeason:
		return MultiplyWeekendSeason, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// DefaultWeekendDays apply when a property configures a weekend adjustment
// without naming the days.
var DefaultWeekendDays = []time.Weekday{time.Friday, time.Saturday}

// Rules are the rule sets that apply to one property. Callers pass enabled
// rules; disabled entries are skipped anyway.
type Rules struct {
	Seasons      []model.SeasonalPricing
	Overrides    []model.DateOverride
	MinimumStays []model.MinimumStayRule
}

type Calculator struct {
	policy       WeekendSeasonPolicy
	fallbackBase float64
}

type Option func(*Calculator)

func WithWeekendSeasonPolicy(p WeekendSeasonPolicy) Option {
	return func(c *Calculator) {
		if p != "" {
			c.policy = p
		}
	}
}

// WithFallbackBasePrice sets the base price used when a property has none.
func WithFallbackBasePrice(price float64) Option {
	return func(c *Calculator) {
		if price >= 0 {
			c.fallbackBase = price
		}
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{policy: SeasonOnly}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calculator) Policy() WeekendSeasonPolicy {
	return c.policy
}

// Day prices a single date.
func (c *Calculator) Day(property *model.Property, date time.Time, rules Rules) model.DayPriceEntry {
	return c.day(property, dateOnly(date), newRuleIndex(rules))
}

func (c *Calculator) day(property *model.Property, date time.Time, idx *ruleIndex) model.DayPriceEntry {
	d := c.newDayContext(property, date, idx)

	entry := model.DayPriceEntry{
		Date:        d.key,
		BasePrice:   d.base,
		Available:   true,
		MinimumStay: d.minimumStay(),
		IsWeekend:   d.weekend,
	}

	for _, resolve := range resolvers {
		if r, ok := resolve(c, d); ok {
			entry.AdjustedPrice = r.price
			entry.PriceSource = r.source
			entry.SeasonID = r.seasonID
			entry.SeasonName = r.seasonName
			entry.OverrideReason = r.reason
			break
		}
	}

	if d.override != nil && !d.override.Available {
		entry.Available = false
		entry.UnavailableReason = model.UnavailableReasonBlocked
		entry.OverrideReason = d.override.Reason
	}
	return entry
}

type dayContext struct {
	key      string
	base     float64
	weekend  bool
	weekendX float64
	override *model.DateOverride
	seasons  []*model.SeasonalPricing
	minStays []*model.MinimumStayRule
	defMin   int
}

func (c *Calculator) newDayContext(property *model.Property, date time.Time, idx *ruleIndex) *dayContext {
	key := DateKey(date)
	d := &dayContext{
		key:      key,
		base:     c.fallbackBase,
		override: idx.overrides[key],
	}
	if property != nil {
		if property.PricePerNight > 0 {
			d.base = property.PricePerNight
		}
		d.weekend = isWeekend(date.Weekday(), property.PricingConfig.WeekendDays)
		d.weekendX = property.PricingConfig.WeekendAdjustment
		d.defMin = property.DefaultMinimumStay
	} else {
		d.weekend = isWeekend(date.Weekday(), nil)
	}
	for _, s := range idx.seasons {
		if covers(s.StartDate, s.EndDate, key) {
			d.seasons = append(d.seasons, s)
		}
	}
	for _, r := range idx.minStays {
		if covers(r.StartDate, r.EndDate, key) {
			d.minStays = append(d.minStays, r)
		}
	}
	return d
}

func (d *dayContext) hasWeekendAdjustment() bool {
	return d.weekend && d.weekendX > 0 && d.weekendX != 1
}

// minimumStay is the most restrictive requirement among every source active
// on the date, including the override.
func (d *dayContext) minimumStay() int {
	m := max(d.defMin, 1)
	for _, s := range d.seasons {
		m = max(m, s.MinimumStay)
	}
	for _, r := range d.minStays {
		m = max(m, r.MinimumStay)
	}
	if d.override != nil {
		m = max(m, d.override.MinimumStay)
	}
	return m
}

type resolution struct {
	price      float64
	source     string
	seasonID   string
	seasonName string
	reason     string
}

type resolver func(c *Calculator, d *dayContext) (resolution, bool)

// resolvers are evaluated in order; the first match prices the day.
var resolvers = []resolver{
	resolveOverride,
	resolveSeason,
	resolveWeekend,
	resolveBase,
}

func resolveOverride(_ *Calculator, d *dayContext) (resolution, bool) {
	if d.override == nil || !d.override.Available {
		return resolution{}, false
	}
	return resolution{
		price:  d.override.CustomPrice,
		source: model.PriceSourceOverride,
		reason: d.override.Reason,
	}, true
}

func resolveSeason(c *Calculator, d *dayContext) (resolution, bool) {
	best := bestSeason(d.seasons)
	if best == nil {
		return resolution{}, false
	}
	price := d.base * best.PriceMultiplier
	if c.policy == MultiplyWeekendSeason && d.hasWeekendAdjustment() {
		price = d.base * d.weekendX * best.PriceMultiplier
	}
	return resolution{
		price:      price,
		source:     model.PriceSourceSeason,
		seasonID:   best.ID,
		seasonName: best.Name,
	}, true
}

func resolveWeekend(_ *Calculator, d *dayContext) (resolution, bool) {
	if !d.hasWeekendAdjustment() {
		return resolution{}, false
	}
	return resolution{price: d.base * d.weekendX, source: model.PriceSourceWeekend}, true
}

func resolveBase(_ *Calculator, d *dayContext) (resolution, bool) {
	return resolution{price: d.base, source: model.PriceSourceBase}, true
}

// bestSeason picks the highest multiplier. Ties go to the earliest start date,
// then the smallest id.
func bestSeason(seasons []*model.SeasonalPricing) *model.SeasonalPricing {
	var best *model.SeasonalPricing
	for _, s := range seasons {
		if s.PriceMultiplier <= 0 {
			continue
		}
		if best == nil || betterSeason(s, best) {
			best = s
		}
	}
	return best
}

func betterSeason(a, b *model.SeasonalPricing) bool {
	if a.PriceMultiplier != b.PriceMultiplier {
		return a.PriceMultiplier > b.PriceMultiplier
	}
	as, bs := normalizeDate(a.StartDate), normalizeDate(b.StartDate)
	if as != bs {
		return as < bs
	}
	return a.ID < b.ID
}

func isWeekend(day time.Weekday, names []string) bool {
	days := DefaultWeekendDays
	if len(names) > 0 {
		days = ParseWeekdays(names)
	}
	for _, w := range days {
		if w == day {
			return true
		}
	}
	return false
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekdays maps day names (full or three-letter, any case) to weekdays,
// skipping unknown names.
func ParseWeekdays(names []string) []time.Weekday {
	var days []time.Weekday
	for _, n := range names {
		if w, ok := LookupWeekday(n); ok {
			days = append(days, w)
		}
	}
	return days
}

func LookupWeekday(name string) (time.Weekday, bool) {
	w, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return w, ok
}

// ruleIndex holds the enabled rules of a run, with overrides keyed by date.
type ruleIndex struct {
	overrides map[string]*model.DateOverride
	seasons   []*model.SeasonalPricing
	minStays  []*model.MinimumStayRule
}

func newRuleIndex(rules Rules) *ruleIndex {
	idx := &ruleIndex{overrides: make(map[string]*model.DateOverride, len(rules.Overrides))}
	for i := range rules.Overrides {
		o := &rules.Overrides[i]
		key := normalizeDate(o.Date)
		// one override per date; the most recently written wins
		if prev, ok := idx.overrides[key]; ok && prev.UpdatedAt.After(o.UpdatedAt) {
			continue
		}
		idx.overrides[key] = o
	}
	for i := range rules.Seasons {
		if rules.Seasons[i].Enabled {
			idx.seasons = append(idx.seasons, &rules.Seasons[i])
		}
	}
	for i := range rules.MinimumStays {
		if rules.MinimumStays[i].Enabled {
			idx.minStays = append(idx.minStays, &rules.MinimumStays[i])
		}
	}
	return idx
}
