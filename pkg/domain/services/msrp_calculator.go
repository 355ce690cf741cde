package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// MsrpCalculator converts a member's product selection into the reference
// monthly and yearly contribution, split into selfgrown and cooperation
// value. All arithmetic is exact decimal; the adjusted amounts round up,
// never down, so the cooperative is never undercharged.
type MsrpCalculator struct {
	config PricingConfig
}

// NewMsrpCalculator creates a calculator bound to a pricing configuration
func NewMsrpCalculator(config PricingConfig) *MsrpCalculator {
	return &MsrpCalculator{config: config}
}

// BaseMsrp returns the yearly base contribution of one order item in whole
// currency units (as an exact decimal): deliveries per season times the
// catalog price times the ordered value, normalized by the unit conversion
// and scaled by the product's remaining-season weight.
func (c *MsrpCalculator) BaseMsrp(item entities.OrderItem, product entities.Product, weight decimal.Decimal) (decimal.Decimal, error) {
	conversion, ok := c.config.UnitConversion[product.Unit]
	if !ok {
		return decimal.Zero, fmt.Errorf("no unit conversion for %s", product.Unit)
	}

	frequency := product.Frequency
	if frequency == 0 {
		frequency = 1
	}

	base := decimal.NewFromInt(int64(frequency)).
		Mul(decimal.NewFromInt(product.Msrp)).
		Mul(item.Value).
		Div(decimal.NewFromInt(conversion))

	return base.Mul(weight), nil
}

// AdjustMsrp applies the tier multiplier to a yearly base contribution and
// returns the monthly amount, rounded up to whole currency units. A zero
// or negative base adjusts to zero.
func (c *MsrpCalculator) AdjustMsrp(base decimal.Decimal, category entities.UserCategory, months int) (int64, error) {
	if base.Sign() <= 0 {
		return 0, nil
	}
	rate, ok := c.config.Rates[category]
	if !ok {
		return 0, fmt.Errorf("no pricing rate for category %s", category)
	}
	if months < 1 {
		months = 1
	}

	monthly := rate.Relative.Mul(base).Div(decimal.NewFromInt(int64(months))).Ceil()
	return rate.Absolute + monthly.IntPart(), nil
}

// GetMsrp computes the reference contribution for an order.
//
// months is the number of season months the order is valid for, capped at
// twelve. weights scales each product by the fraction of its planned
// season distribution still outstanding; a nil map means full weight for
// every product. A product referenced by an order item but absent from
// the catalog snapshot is an error: the caller's snapshot is inconsistent
// with the order being priced.
func (c *MsrpCalculator) GetMsrp(
	category entities.UserCategory,
	orderItems []entities.OrderItem,
	productsByID entities.ProductsByID,
	months int,
	weights entities.ProductMsrpWeights,
) (entities.Msrp, error) {
	if months < 1 {
		months = 1
	}
	if months > 12 {
		months = 12
	}

	base := decimal.Zero
	selfgrownBase := decimal.Zero

	for _, item := range orderItems {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return entities.Msrp{}, fmt.Errorf("product %d not in catalog snapshot", item.ProductID)
		}

		itemBase, err := c.BaseMsrp(item, product, weights.Weight(item.ProductID))
		if err != nil {
			return entities.Msrp{}, fmt.Errorf("product %d: %w", item.ProductID, err)
		}

		base = base.Add(itemBase)
		if product.ProductCategoryType == entities.Selfgrown {
			selfgrownBase = selfgrownBase.Add(itemBase)
		}
	}

	total, err := c.AdjustMsrp(base, category, months)
	if err != nil {
		return entities.Msrp{}, err
	}
	selfgrown, err := c.AdjustMsrp(selfgrownBase, category, months)
	if err != nil {
		return entities.Msrp{}, err
	}

	monthly := entities.MsrpValues{
		Total:       total,
		Selfgrown:   selfgrown,
		Cooperation: total - selfgrown,
	}

	return entities.Msrp{
		Monthly: monthly,
		Yearly: entities.MsrpValues{
			Total:       monthly.Total * int64(months),
			Selfgrown:   monthly.Selfgrown * int64(months),
			Cooperation: monthly.Cooperation * int64(months),
		},
		Months:   months,
		Category: category,
	}, nil
}

// OrderItemAdjustedMonthlyMsrp prices a single order item in isolation,
// used for per-product breakdowns in contribution overviews.
func (c *MsrpCalculator) OrderItemAdjustedMonthlyMsrp(
	category entities.UserCategory,
	item entities.OrderItem,
	productsByID entities.ProductsByID,
	months int,
	weights entities.ProductMsrpWeights,
) (int64, error) {
	product, ok := productsByID[item.ProductID]
	if !ok {
		return 0, fmt.Errorf("product %d not in catalog snapshot", item.ProductID)
	}

	base, err := c.BaseMsrp(item, product, weights.Weight(item.ProductID))
	if err != nil {
		return 0, err
	}
	return c.AdjustMsrp(base, category, months)
}
