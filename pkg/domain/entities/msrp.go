package entities

import "github.com/shopspring/decimal"

// MsrpValues is one contribution breakdown in whole currency units.
// Total equals Selfgrown plus Cooperation by construction.
type MsrpValues struct {
	Total       int64
	Selfgrown   int64
	Cooperation int64
}

// Msrp is the computed reference contribution for a member's product
// selection, at monthly and yearly granularity. Months is the number of
// season months the underlying order is valid for.
type Msrp struct {
	Monthly  MsrpValues
	Yearly   MsrpValues
	Months   int
	Category UserCategory
}

// ProductMsrpWeights maps each product to the fraction of its planned
// season distribution that is still outstanding. A fully delivered
// product carries weight zero and no longer contributes to a late
// joiner's price.
type ProductMsrpWeights map[ProductID]decimal.Decimal

// Weight returns the weight for a product, defaulting to one when the
// map is nil or the product has no entry.
func (w ProductMsrpWeights) Weight(id ProductID) decimal.Decimal {
	if w == nil {
		return decimal.NewFromInt(1)
	}
	weight, ok := w[id]
	if !ok {
		return decimal.NewFromInt(1)
	}
	return weight
}
