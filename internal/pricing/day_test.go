package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalspot/pkg/model"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func testProperty() *model.Property {
	return &model.Property{
		ID:            "villa-azul",
		PricePerNight: 500,
		BaseCurrency:  "EUR",
		BaseOccupancy: 2,
		MaxGuests:     6,
	}
}

func TestDay_NoRulesFallsThroughToBase(t *testing.T) {
	calc := NewCalculator()
	p := testProperty()

	// 2025-07-01 through 07-03 are Tuesday to Thursday
	for _, d := range []string{"2025-07-01", "2025-07-02", "2025-07-03"} {
		e := calc.Day(p, date(t, d), Rules{})
		assert.Equal(t, 500.0, e.AdjustedPrice, d)
		assert.Equal(t, 500.0, e.BasePrice, d)
		assert.Equal(t, model.PriceSourceBase, e.PriceSource, d)
		assert.True(t, e.Available, d)
		assert.Equal(t, 1, e.MinimumStay, d)
	}
}

func TestDay_WeekendAdjustmentOnSaturday(t *testing.T) {
	p := testProperty()
	p.PricingConfig.WeekendAdjustment = 1.3

	e := NewCalculator().Day(p, date(t, "2025-07-05"), Rules{})

	assert.InDelta(t, 650.0, e.AdjustedPrice, 1e-9)
	assert.Equal(t, model.PriceSourceWeekend, e.PriceSource)
	assert.True(t, e.IsWeekend)
}

func TestDay_ConfiguredWeekendDays(t *testing.T) {
	p := testProperty()
	p.PricingConfig.WeekendAdjustment = 1.5
	p.PricingConfig.WeekendDays = []string{"Sunday"}

	calc := NewCalculator()
	sat := calc.Day(p, date(t, "2025-07-05"), Rules{})
	sun := calc.Day(p, date(t, "2025-07-06"), Rules{})

	assert.Equal(t, model.PriceSourceBase, sat.PriceSource)
	assert.False(t, sat.IsWeekend)
	assert.Equal(t, model.PriceSourceWeekend, sun.PriceSource)
	assert.InDelta(t, 750.0, sun.AdjustedPrice, 1e-9)
}

func TestDay_SingleSeason(t *testing.T) {
	rules := Rules{Seasons: []model.SeasonalPricing{
		{ID: "s1", Name: "Summer", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: 1.2, Enabled: true},
	}}

	e := NewCalculator().Day(testProperty(), date(t, "2025-07-10"), rules)

	assert.InDelta(t, 600.0, e.AdjustedPrice, 1e-9)
	assert.Equal(t, model.PriceSourceSeason, e.PriceSource)
	assert.Equal(t, "s1", e.SeasonID)
	assert.Equal(t, "Summer", e.SeasonName)
}

func TestDay_SeasonBoundsAreInclusive(t *testing.T) {
	rules := Rules{Seasons: []model.SeasonalPricing{
		{ID: "s1", StartDate: "2025-07-10", EndDate: "2025-07-12", PriceMultiplier: 2, Enabled: true},
	}}
	calc := NewCalculator()

	assert.Equal(t, model.PriceSourceBase, calc.Day(testProperty(), date(t, "2025-07-09"), rules).PriceSource)
	assert.Equal(t, model.PriceSourceSeason, calc.Day(testProperty(), date(t, "2025-07-10"), rules).PriceSource)
	assert.Equal(t, model.PriceSourceSeason, calc.Day(testProperty(), date(t, "2025-07-12"), rules).PriceSource)
	assert.Equal(t, model.PriceSourceBase, calc.Day(testProperty(), date(t, "2025-07-13"), rules).PriceSource)
}

func TestDay_OverlappingSeasonsHighestMultiplierWins(t *testing.T) {
	tests := []struct {
		name   string
		first  float64
		second float64
		want   string
	}{
		{name: "first higher", first: 1.5, second: 1.1, want: "a"},
		{name: "second higher", first: 1.1, second: 1.5, want: "b"},
		{name: "tie goes to earliest start", first: 1.3, second: 1.3, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := Rules{Seasons: []model.SeasonalPricing{
				{ID: "b", StartDate: "2025-07-05", EndDate: "2025-07-20", PriceMultiplier: tt.second, Enabled: true},
				{ID: "a", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: tt.first, Enabled: true},
			}}
			e := NewCalculator().Day(testProperty(), date(t, "2025-07-10"), rules)
			assert.Equal(t, tt.want, e.SeasonID)
			assert.InDelta(t, 500*max(tt.first, tt.second), e.AdjustedPrice, 1e-9)
		})
	}
}

func TestDay_SeasonTieSameStartUsesSmallestID(t *testing.T) {
	rules := Rules{Seasons: []model.SeasonalPricing{
		{ID: "zz", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: 1.4, Enabled: true},
		{ID: "aa", StartDate: "2025-07-01", EndDate: "2025-07-15", PriceMultiplier: 1.4, Enabled: true},
	}}
	e := NewCalculator().Day(testProperty(), date(t, "2025-07-10"), rules)
	assert.Equal(t, "aa", e.SeasonID)
}

func TestDay_DisabledRulesAreIgnored(t *testing.T) {
	rules := Rules{
		Seasons: []model.SeasonalPricing{
			{ID: "s1", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: 3, MinimumStay: 7, Enabled: false},
		},
		MinimumStays: []model.MinimumStayRule{
			{ID: "m1", StartDate: "2025-07-01", EndDate: "2025-07-31", MinimumStay: 5, Enabled: false},
		},
	}
	e := NewCalculator().Day(testProperty(), date(t, "2025-07-10"), rules)
	assert.Equal(t, model.PriceSourceBase, e.PriceSource)
	assert.Equal(t, 1, e.MinimumStay)
}

func TestDay_OverrideBeatsSeason(t *testing.T) {
	rules := Rules{
		Seasons: []model.SeasonalPricing{
			{ID: "s1", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: 1.2, Enabled: true},
		},
		Overrides: []model.DateOverride{
			{ID: "o1", Date: "2025-07-25", CustomPrice: 1000, Available: true, Reason: "festival"},
		},
	}
	e := NewCalculator().Day(testProperty(), date(t, "2025-07-25"), rules)
	assert.Equal(t, 1000.0, e.AdjustedPrice)
	assert.Equal(t, model.PriceSourceOverride, e.PriceSource)
	assert.Equal(t, "festival", e.OverrideReason)
	assert.True(t, e.Available)
}

func TestDay_UnavailableOverrideBlocksDate(t *testing.T) {
	rules := Rules{Overrides: []model.DateOverride{
		{ID: "o1", Date: "2025-07-25", CustomPrice: 1000, Available: false, Reason: "maintenance"},
	}}
	e := NewCalculator().Day(testProperty(), date(t, "2025-07-25"), rules)
	assert.False(t, e.Available)
	assert.Equal(t, model.UnavailableReasonBlocked, e.UnavailableReason)
	assert.Equal(t, model.PriceSourceBase, e.PriceSource)
}

func TestDay_DuplicateOverridesLatestWriteWins(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	rules := Rules{Overrides: []model.DateOverride{
		{ID: "new", Date: "2025-07-25", CustomPrice: 900, Available: true, UpdatedAt: newer},
		{ID: "old", Date: "2025-07-25", CustomPrice: 700, Available: true, UpdatedAt: older},
	}}
	e := NewCalculator().Day(testProperty(), date(t, "2025-07-25"), rules)
	assert.Equal(t, 900.0, e.AdjustedPrice)
}

func TestDay_WeekendSeasonPolicy(t *testing.T) {
	p := testProperty()
	p.PricingConfig.WeekendAdjustment = 1.5
	rules := Rules{Seasons: []model.SeasonalPricing{
		{ID: "s1", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: 1.2, Enabled: true},
	}}
	saturday := date(t, "2025-07-05")

	seasonOnly := NewCalculator(WithWeekendSeasonPolicy(SeasonOnly)).Day(p, saturday, rules)
	assert.InDelta(t, 600.0, seasonOnly.AdjustedPrice, 1e-9)
	assert.Equal(t, model.PriceSourceSeason, seasonOnly.PriceSource)

	multiply := NewCalculator(WithWeekendSeasonPolicy(MultiplyWeekendSeason)).Day(p, saturday, rules)
	assert.InDelta(t, 900.0, multiply.AdjustedPrice, 1e-9)
	assert.Equal(t, model.PriceSourceSeason, multiply.PriceSource)
}

func TestDay_MinimumStayTakesMaxAcrossSources(t *testing.T) {
	p := testProperty()
	p.DefaultMinimumStay = 2
	rules := Rules{
		Seasons: []model.SeasonalPricing{
			{ID: "hi", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: 1.5, MinimumStay: 3, Enabled: true},
			{ID: "lo", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: 1.1, MinimumStay: 5, Enabled: true},
		},
		MinimumStays: []model.MinimumStayRule{
			{ID: "m1", StartDate: "2025-07-20", EndDate: "2025-07-22", MinimumStay: 4, Enabled: true},
		},
		Overrides: []model.DateOverride{
			{ID: "o1", Date: "2025-07-21", CustomPrice: 800, MinimumStay: 6, Available: true},
		},
	}
	calc := NewCalculator()

	// the losing season still contributes its minimum stay
	assert.Equal(t, 5, calc.Day(p, date(t, "2025-07-10"), rules).MinimumStay)
	assert.Equal(t, 5, calc.Day(p, date(t, "2025-07-20"), rules).MinimumStay)
	// the override participates in the max as well
	assert.Equal(t, 6, calc.Day(p, date(t, "2025-07-21"), rules).MinimumStay)
}

func TestDay_MinimumStayMonotonic(t *testing.T) {
	p := testProperty()
	d := date(t, "2025-07-21")
	base := Rules{
		Seasons: []model.SeasonalPricing{
			{ID: "s", StartDate: "2025-07-01", EndDate: "2025-07-31", PriceMultiplier: 1.2, MinimumStay: 3, Enabled: true},
		},
		MinimumStays: []model.MinimumStayRule{
			{ID: "m", StartDate: "2025-07-01", EndDate: "2025-07-31", MinimumStay: 2, Enabled: true},
		},
		Overrides: []model.DateOverride{
			{ID: "o", Date: "2025-07-21", CustomPrice: 700, MinimumStay: 1, Available: true},
		},
	}
	calc := NewCalculator()
	before := calc.Day(p, d, base).MinimumStay

	for bump := 0; bump <= 10; bump++ {
		r := Rules{
			Seasons:      append([]model.SeasonalPricing(nil), base.Seasons...),
			MinimumStays: append([]model.MinimumStayRule(nil), base.MinimumStays...),
			Overrides:    append([]model.DateOverride(nil), base.Overrides...),
		}
		r.Seasons[0].MinimumStay += bump
		assert.GreaterOrEqual(t, calc.Day(p, d, r).MinimumStay, before)

		r.MinimumStays[0].MinimumStay += bump
		assert.GreaterOrEqual(t, calc.Day(p, d, r).MinimumStay, before)

		r.Overrides[0].MinimumStay += bump
		assert.GreaterOrEqual(t, calc.Day(p, d, r).MinimumStay, before)
	}
}

func TestDay_MissingPropertyUsesFallback(t *testing.T) {
	e := NewCalculator(WithFallbackBasePrice(120)).Day(nil, date(t, "2025-07-02"), Rules{})
	assert.Equal(t, 120.0, e.AdjustedPrice)
	assert.Equal(t, model.PriceSourceBase, e.PriceSource)

	zero := NewCalculator().Day(&model.Property{ID: "x"}, date(t, "2025-07-02"), Rules{})
	assert.Equal(t, 0.0, zero.AdjustedPrice)
}

func TestParseWeekendSeasonPolicy(t *testing.T) {
	p, err := ParseWeekendSeasonPolicy("")
	require.NoError(t, err)
	assert.Equal(t, SeasonOnly, p)

	p, err = ParseWeekendSeasonPolicy("MULTIPLY")
	require.NoError(t, err)
	assert.Equal(t, MultiplyWeekendSeason, p)

	_, err = ParseWeekendSeasonPolicy("stack")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
