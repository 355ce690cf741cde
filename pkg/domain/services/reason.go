package services

import (
	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// IsOfferValid reports whether the chosen monthly offer reaches the
// configured fraction of the reference contribution.
func (c PricingConfig) IsOfferValid(offer int64, monthlyTotal int64) bool {
	floor := c.OfferLimit.Mul(decimal.NewFromInt(monthlyTotal))
	return decimal.NewFromInt(offer).GreaterThanOrEqual(floor)
}

// IsOfferReasonValid requires a justification for offers below the
// configured reason threshold.
func (c PricingConfig) IsOfferReasonValid(offer int64, monthlyTotal int64, offerReason string) bool {
	threshold := c.OfferReasonLimit.Mul(decimal.NewFromInt(monthlyTotal))
	if decimal.NewFromInt(offer).GreaterThanOrEqual(threshold) {
		return true
	}
	return offerReason != ""
}

// IsCategoryReasonValid requires a justification for tiers the
// configuration marks as reason-bearing.
func (c PricingConfig) IsCategoryReasonValid(category entities.UserCategory, categoryReason string) bool {
	if !c.CategoryNeedsReason(category) {
		return true
	}
	return categoryReason != ""
}
