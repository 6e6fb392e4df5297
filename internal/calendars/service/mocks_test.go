package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	calendarserrors "rentalspot/internal/calendars/errors"
	"rentalspot/internal/pricing"
	propertieserrors "rentalspot/internal/properties/errors"
	"rentalspot/pkg/cache"
	"rentalspot/pkg/config"
	"rentalspot/pkg/logger"
	"rentalspot/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repositories for testing
// ────────────────────────────────────────────────

type mockPropertyRepository struct {
	properties map[string]*model.Property
	err        error
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.properties[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
	}
	return p, nil
}

func (m *mockPropertyRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.properties))
	for id := range m.properties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockPropertyRepository) UpdatePricing(ctx context.Context, property *model.Property) error {
	return nil
}

type mockRuleReader struct {
	rules pricing.Rules
	calls int
}

func (m *mockRuleReader) LoadRules(ctx context.Context, propertyID, from, to string) (pricing.Rules, error) {
	m.calls++
	return m.rules, nil
}

type mockBookingRepository struct {
	bookings []model.Booking
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) FindBlocking(ctx context.Context, propertyID, from, to string) ([]model.Booking, error) {
	return m.bookings, nil
}

func (m *mockBookingRepository) FindExpiredHolds(ctx context.Context, now time.Time, limit int) ([]model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) ExpireHold(ctx context.Context, id string, now time.Time) (bool, error) {
	return false, nil
}

type mockCalendarRepository struct {
	docs        map[string]*model.PriceCalendar
	upsertCalls int
	findErr     error
}

func newMockCalendarRepo() *mockCalendarRepository {
	return &mockCalendarRepository{docs: map[string]*model.PriceCalendar{}}
}

func (m *mockCalendarRepository) FindByID(ctx context.Context, id string) (*model.PriceCalendar, error) {
	cal, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", calendarserrors.ErrNotFound, id)
	}
	return cal, nil
}

func (m *mockCalendarRepository) FindRange(ctx context.Context, propertyID string, from, to pricing.YearMonth) ([]*model.PriceCalendar, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*model.PriceCalendar
	lo := pricing.CalendarID(propertyID, from.Year, from.Month)
	hi := pricing.CalendarID(propertyID, to.Year, to.Month)
	for id, cal := range m.docs {
		if cal.PropertyID == propertyID && id >= lo && id <= hi {
			out = append(out, cal)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCalendarRepository) Upsert(ctx context.Context, cal *model.PriceCalendar) error {
	m.docs[cal.ID] = cal
	return nil
}

func (m *mockCalendarRepository) UpsertMany(ctx context.Context, cals []*model.PriceCalendar) error {
	m.upsertCalls++
	for _, cal := range cals {
		m.docs[cal.ID] = cal
	}
	return nil
}

func (m *mockCalendarRepository) ListPropertyIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

type mockCache struct {
	entries map[string]*model.PriceCalendar
	gets    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]*model.PriceCalendar{}}
}

func (m *mockCache) Get(ctx context.Context, id string) (*model.PriceCalendar, error) {
	m.gets++
	cal, ok := m.entries[id]
	if !ok {
		return nil, cache.ErrMiss
	}
	return cal, nil
}

func (m *mockCache) Set(ctx context.Context, cal *model.PriceCalendar) error {
	m.entries[cal.ID] = cal
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		delete(m.entries, id)
	}
	return nil
}

type mockCouponRepository struct {
	coupons map[string]*model.Coupon
}

func (m *mockCouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", calendarserrors.ErrCouponNotFound, code)
	}
	return c, nil
}

// ────────────────────────────────────────────────
// Fixtures
// ────────────────────────────────────────────────

var fixedNow = time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Log:                  logger.Discard(),
		CalendarWindowMonths: 3,
	}
}

func beachHouse() *model.Property {
	return &model.Property{
		ID:            "beach-house",
		PricePerNight: 100,
		BaseCurrency:  "EUR",
		BaseOccupancy: 2,
		ExtraGuestFee: 20,
		MaxGuests:     6,
		CleaningFee:   50,
	}
}

type fixture struct {
	properties *mockPropertyRepository
	rules      *mockRuleReader
	bookings   *mockBookingRepository
	calendars  *mockCalendarRepository
	cache      *mockCache
	generator  *generatorService
	cfg        *config.Config
}

func newFixture() *fixture {
	f := &fixture{
		properties: &mockPropertyRepository{properties: map[string]*model.Property{"beach-house": beachHouse()}},
		rules:      &mockRuleReader{},
		bookings:   &mockBookingRepository{},
		calendars:  newMockCalendarRepo(),
		cache:      newMockCache(),
		cfg:        testConfig(),
	}
	gen := NewGeneratorService(f.properties, f.rules, f.bookings, f.calendars, f.cache, pricing.NewCalculator(), f.cfg).(*generatorService)
	gen.now = func() time.Time { return fixedNow }
	f.generator = gen
	return f
}

func july() pricing.YearMonth {
	return pricing.YearMonth{Year: 2025, Month: time.July}
}
