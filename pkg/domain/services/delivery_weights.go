package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// DeliveryProgress describes how much of a product's planned season
// distribution has already happened.
type DeliveryProgress struct {
	Display           string
	Percentage        decimal.Decimal
	RoundedPercentage int64
	TargetDeliveries  int
	ActualDeliveries  decimal.Decimal
}

// CalculateDeliveries computes a product's delivery progress across the
// given depots. The target is the number of depots carrying the product
// times its planned frequency; actual deliveries are summed from the
// per-depot progress entries, which store values times 100.
func CalculateDeliveries(
	product entities.Product,
	delivered entities.DeliveredByProductIDDepotID,
	depots []entities.Depot,
) DeliveryProgress {
	deliveredByDepotID := delivered[product.ID]

	targetDeliveries := 0
	actual := decimal.Zero
	for _, depot := range depots {
		entry, ok := deliveredByDepotID[depot.ID]
		if !ok {
			continue
		}
		if entry.ValueForShipment > 0 {
			targetDeliveries += product.Frequency
		}
		actual = actual.Add(decimal.NewFromInt(entry.Delivered).Div(decimal.NewFromInt(100)))
	}

	percentage := decimal.Zero
	if targetDeliveries > 0 {
		percentage = actual.Div(decimal.NewFromInt(int64(targetDeliveries))).Mul(decimal.NewFromInt(100))
	}

	return DeliveryProgress{
		Display:           fmt.Sprintf("%s/%d", actual, targetDeliveries),
		Percentage:        percentage,
		RoundedPercentage: percentage.Round(0).IntPart(),
		TargetDeliveries:  targetDeliveries,
		ActualDeliveries:  actual,
	}
}

// CalculateMsrpWeights derives the per-product discount weight used when
// pricing a member who joins or amends mid-season: the fraction of the
// planned distribution still outstanding. A product delivered in full
// contributes nothing to a late joiner's price.
func CalculateMsrpWeights(
	productsByID entities.ProductsByID,
	delivered entities.DeliveredByProductIDDepotID,
	depots []entities.Depot,
) entities.ProductMsrpWeights {
	weights := make(entities.ProductMsrpWeights, len(productsByID))
	one := decimal.NewFromInt(1)

	for id, product := range productsByID {
		progress := CalculateDeliveries(product, delivered, depots)
		weight := one.Sub(decimal.NewFromInt(progress.RoundedPercentage).Div(decimal.NewFromInt(100)))
		if weight.Sign() < 0 {
			weight = decimal.Zero
		}
		weights[id] = weight
	}

	return weights
}
