package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// CategoryRate is the pricing rule for one contribution tier: the monthly
// reference value is Absolute plus Relative times the weighted base.
type CategoryRate struct {
	Relative decimal.Decimal
	Absolute int64
}

// PricingConfig bundles the configurable tables the calculation core
// depends on. It is injected rather than read from package state so the
// calculations stay pure and testable against alternate tables.
type PricingConfig struct {
	// Rates maps each contribution tier to its multiplier
	Rates map[entities.UserCategory]CategoryRate
	// UnitConversion normalizes the catalog price to the ordered unit:
	// the catalog stores minor units per 100 pieces or per kg/l
	UnitConversion map[entities.Unit]int64
	// OfferLimit is the fraction of the reference value an offer must reach
	OfferLimit decimal.Decimal
	// OfferReasonLimit is the fraction below which an offer needs a reason
	OfferReasonLimit decimal.Decimal
	// NeedsCategoryReason lists tiers that require a justification
	NeedsCategoryReason []entities.UserCategory
	// AvailableCategories lists tiers members may choose
	AvailableCategories []entities.UserCategory
	// ShipmentRounding is the per-unit rounding step for shipment totals
	ShipmentRounding map[entities.Unit]int64
}

// DefaultPricingConfig returns the reference configuration: CAT100 pays the
// plain reference value, CAT115 and CAT130 pay 15% and 30% on top.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Rates: map[entities.UserCategory]CategoryRate{
			entities.Cat100: {Relative: decimal.NewFromFloat(1.0), Absolute: 0},
			entities.Cat115: {Relative: decimal.NewFromFloat(1.15), Absolute: 0},
			entities.Cat130: {Relative: decimal.NewFromFloat(1.3), Absolute: 0},
		},
		UnitConversion: map[entities.Unit]int64{
			entities.Piece:  100,
			entities.Weight: 100000,
			entities.Volume: 100000,
		},
		OfferLimit:          decimal.NewFromFloat(0.6),
		OfferReasonLimit:    decimal.NewFromFloat(0.9),
		NeedsCategoryReason: []entities.UserCategory{entities.Cat100, entities.Cat115},
		AvailableCategories: []entities.UserCategory{entities.Cat130, entities.Cat115, entities.Cat100},
		ShipmentRounding: map[entities.Unit]int64{
			entities.Piece:  1,
			entities.Weight: 10,
			entities.Volume: 10,
		},
	}
}

// Validate checks the configuration is complete enough to price orders
func (c PricingConfig) Validate() error {
	if len(c.Rates) == 0 {
		return fmt.Errorf("pricing config has no category rates")
	}
	for cat, rate := range c.Rates {
		if rate.Relative.Sign() < 0 {
			return fmt.Errorf("category %s: relative rate cannot be negative", cat)
		}
		if rate.Absolute < 0 {
			return fmt.Errorf("category %s: absolute addend cannot be negative", cat)
		}
	}
	for _, unit := range []entities.Unit{entities.Weight, entities.Piece, entities.Volume} {
		conversion, ok := c.UnitConversion[unit]
		if !ok || conversion <= 0 {
			return fmt.Errorf("unit %s: missing or non-positive conversion factor", unit)
		}
	}
	return nil
}

// CategoryAvailable reports whether members may choose the tier
func (c PricingConfig) CategoryAvailable(category entities.UserCategory) bool {
	for _, available := range c.AvailableCategories {
		if available == category {
			return true
		}
	}
	return false
}

// CategoryNeedsReason reports whether the tier requires a justification
func (c PricingConfig) CategoryNeedsReason(category entities.UserCategory) bool {
	for _, needy := range c.NeedsCategoryReason {
		if needy == category {
			return true
		}
	}
	return false
}
