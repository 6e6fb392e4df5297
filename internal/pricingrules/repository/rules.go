package repository

import (
	"context"
	"fmt"

	"rentalspot/internal/pricing"
)

// RuleReader loads every pricing rule of a property that can affect the nights
// in [from, to].
type RuleReader interface {
	LoadRules(ctx context.Context, propertyID, from, to string) (pricing.Rules, error)
}

type ruleReader struct {
	seasons      SeasonalPricingRepository
	overrides    DateOverrideRepository
	minimumStays MinimumStayRuleRepository
}

func NewRuleReader(seasons SeasonalPricingRepository, overrides DateOverrideRepository, minimumStays MinimumStayRuleRepository) RuleReader {
	return &ruleReader{
		seasons:      seasons,
		overrides:    overrides,
		minimumStays: minimumStays,
	}
}

func (r *ruleReader) LoadRules(ctx context.Context, propertyID, from, to string) (pricing.Rules, error) {
	seasons, err := r.seasons.FindOverlapping(ctx, propertyID, from, to)
	if err != nil {
		return pricing.Rules{}, fmt.Errorf("failed to load seasonal pricing: %w", err)
	}
	overrides, err := r.overrides.FindInRange(ctx, propertyID, from, to)
	if err != nil {
		return pricing.Rules{}, fmt.Errorf("failed to load date overrides: %w", err)
	}
	minimumStays, err := r.minimumStays.FindOverlapping(ctx, propertyID, from, to)
	if err != nil {
		return pricing.Rules{}, fmt.Errorf("failed to load minimum stay rules: %w", err)
	}

	return pricing.Rules{
		Seasons:      deref(seasons),
		Overrides:    deref(overrides),
		MinimumStays: deref(minimumStays),
	}, nil
}

func deref[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}
