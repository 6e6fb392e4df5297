package service

import (
	"context"
	"fmt"
	"time"

	pricingruleserrors "rentalspot/internal/pricingrules/errors"
	"rentalspot/internal/pricingrules/validator"
	propertieserrors "rentalspot/internal/properties/errors"
	"rentalspot/internal/regeneration"
	"rentalspot/pkg/config"
	"rentalspot/pkg/logger"
	"rentalspot/pkg/model"
)

// ────────────────────────────────────────────────
// Mock repositories for testing
// ────────────────────────────────────────────────

type mockPropertyRepository struct {
	known map[string]bool
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	if m.known[id] {
		return &model.Property{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: %s", propertieserrors.ErrNotFound, id)
}

func (m *mockPropertyRepository) ListIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockPropertyRepository) UpdatePricing(ctx context.Context, property *model.Property) error {
	return nil
}

type mockSeasonalPricingRepository struct {
	items map[string]*model.SeasonalPricing
	next  int
}

func newMockSeasonRepo(seed ...*model.SeasonalPricing) *mockSeasonalPricingRepository {
	m := &mockSeasonalPricingRepository{items: map[string]*model.SeasonalPricing{}}
	for _, s := range seed {
		m.items[s.ID] = s
	}
	return m
}

func (m *mockSeasonalPricingRepository) Create(ctx context.Context, season *model.SeasonalPricing) error {
	m.next++
	season.ID = fmt.Sprintf("%024x", m.next)
	m.items[season.ID] = season
	return nil
}

func (m *mockSeasonalPricingRepository) FindByID(ctx context.Context, id string) (*model.SeasonalPricing, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, id)
	}
	cp := *s
	return &cp, nil
}

func (m *mockSeasonalPricingRepository) FindByProperty(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.SeasonalPricing, error) {
	var out []*model.SeasonalPricing
	for _, s := range m.items {
		if s.PropertyID == propertyID && (includeDisabled || s.Enabled) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSeasonalPricingRepository) FindOverlapping(ctx context.Context, propertyID, from, to string) ([]*model.SeasonalPricing, error) {
	return m.FindByProperty(ctx, propertyID, false)
}

func (m *mockSeasonalPricingRepository) Update(ctx context.Context, season *model.SeasonalPricing) error {
	if _, ok := m.items[season.ID]; !ok {
		return fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, season.ID)
	}
	cp := *season
	m.items[season.ID] = &cp
	return nil
}

type mockDateOverrideRepository struct {
	byDate map[string]*model.DateOverride
}

func newMockOverrideRepo() *mockDateOverrideRepository {
	return &mockDateOverrideRepository{byDate: map[string]*model.DateOverride{}}
}

func (m *mockDateOverrideRepository) Upsert(ctx context.Context, override *model.DateOverride) error {
	key := override.PropertyID + "|" + override.Date
	if existing, ok := m.byDate[key]; ok {
		override.ID = existing.ID
	} else {
		override.ID = fmt.Sprintf("%024x", len(m.byDate)+1)
	}
	override.UpdatedAt = time.Now()
	cp := *override
	m.byDate[key] = &cp
	return nil
}

func (m *mockDateOverrideRepository) FindByID(ctx context.Context, id string) (*model.DateOverride, error) {
	for _, o := range m.byDate {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, id)
}

func (m *mockDateOverrideRepository) FindInRange(ctx context.Context, propertyID, from, to string) ([]*model.DateOverride, error) {
	var out []*model.DateOverride
	for _, o := range m.byDate {
		if o.PropertyID == propertyID && (from == "" || o.Date >= from) && (to == "" || o.Date <= to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockDateOverrideRepository) Delete(ctx context.Context, id string) error {
	for key, o := range m.byDate {
		if o.ID == id {
			delete(m.byDate, key)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, id)
}

type recordingNotifier struct {
	events []model.PricingInputChanged
}

func (n *recordingNotifier) Notify(ctx context.Context, event model.PricingInputChanged) error {
	n.events = append(n.events, event)
	return nil
}

var _ regeneration.ChangeNotifier = (*recordingNotifier)(nil)

func testDeps() (*config.Config, *validator.RuleValidator, *mockPropertyRepository) {
	log := logger.Discard()
	cfg := &config.Config{Log: log, ReadTimeout: time.Second, WriteTimeout: time.Second}
	return cfg, validator.NewRuleValidator(log), &mockPropertyRepository{known: map[string]bool{"beach-house": true}}
}

type mockMinimumStayRuleRepository struct {
	items map[string]*model.MinimumStayRule
}

func (m *mockMinimumStayRuleRepository) Create(ctx context.Context, rule *model.MinimumStayRule) error {
	rule.ID = fmt.Sprintf("%024x", len(m.items)+1)
	cp := *rule
	m.items[rule.ID] = &cp
	return nil
}

func (m *mockMinimumStayRuleRepository) FindByID(ctx context.Context, id string) (*model.MinimumStayRule, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pricingruleserrors.ErrNotFound, id)
	}
	cp := *r
	return &cp, nil
}

func (m *mockMinimumStayRuleRepository) FindByProperty(ctx context.Context, propertyID string, includeDisabled bool) ([]*model.MinimumStayRule, error) {
	var out []*model.MinimumStayRule
	for _, r := range m.items {
		if r.PropertyID == propertyID && (includeDisabled || r.Enabled) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMinimumStayRuleRepository) FindOverlapping(ctx context.Context, propertyID, from, to string) ([]*model.MinimumStayRule, error) {
	return m.FindByProperty(ctx, propertyID, false)
}

func (m *mockMinimumStayRuleRepository) Update(ctx context.Context, rule *model.MinimumStayRule) error {
	cp := *rule
	m.items[rule.ID] = &cp
	return nil
}
