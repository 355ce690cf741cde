package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// EffectiveMsrpChainResolver composes the raw contribution of each order
// in a member's chain into the effective contribution the member is bound
// to. When a member amends an order mid-season the new figures must keep
// accounting for what was already committed in the earlier links, so the
// effective monthly total never drops below the preceding order's total.
//
// The selfgrown and cooperation split of a later order is recomputed from
// the union of both orders' weighted items instead of naively summed, so
// products present in both orders are not double counted.
type EffectiveMsrpChainResolver struct {
	calc *MsrpCalculator
}

// NewEffectiveMsrpChainResolver creates a resolver sharing the calculator's
// pricing configuration
func NewEffectiveMsrpChainResolver(calc *MsrpCalculator) *EffectiveMsrpChainResolver {
	return &EffectiveMsrpChainResolver{calc: calc}
}

// CalculateEffectiveMsrpChain resolves the whole chain at once. orders must
// be the member's full chain; it is normalized to validFrom order and the
// result slice is parallel to the normalized chain. Each order's raw Msrp
// and product weights are supplied by the caller, keyed by order id.
//
// An empty chain resolves to an empty slice; a single order resolves to
// its own raw Msrp unchanged.
func (r *EffectiveMsrpChainResolver) CalculateEffectiveMsrpChain(
	orders []entities.SavedOrder,
	rawMsrpByOrderID map[entities.OrderID]entities.Msrp,
	weightsByOrderID map[entities.OrderID]entities.ProductMsrpWeights,
	productsByID entities.ProductsByID,
) ([]entities.Msrp, error) {
	if len(orders) == 0 {
		return []entities.Msrp{}, nil
	}

	chain := entities.SortChain(orders)
	results := make([]entities.Msrp, 0, len(chain))

	first, ok := rawMsrpByOrderID[chain[0].ID]
	if !ok {
		return nil, fmt.Errorf("no raw msrp for order %d", chain[0].ID)
	}
	results = append(results, first)

	for i := 1; i < len(chain); i++ {
		raw, ok := rawMsrpByOrderID[chain[i].ID]
		if !ok {
			return nil, fmt.Errorf("no raw msrp for order %d", chain[i].ID)
		}

		combined, err := r.combine(
			chain[i-1], results[i-1],
			chain[i], raw,
			weightsByOrderID[chain[i-1].ID],
			weightsByOrderID[chain[i].ID],
			productsByID,
		)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", chain[i].ID, err)
		}
		results = append(results, combined)
	}

	return results, nil
}

// CalculateEffectiveMsrp resolves a single earlier/later pair, as used when
// validating a proposed modification against its predecessor.
func (r *EffectiveMsrpChainResolver) CalculateEffectiveMsrp(
	earlier, later entities.SavedOrder,
	rawMsrpByOrderID map[entities.OrderID]entities.Msrp,
	weightsByOrderID map[entities.OrderID]entities.ProductMsrpWeights,
	productsByID entities.ProductsByID,
) (entities.Msrp, error) {
	earlierMsrp, ok := rawMsrpByOrderID[earlier.ID]
	if !ok {
		return entities.Msrp{}, fmt.Errorf("no raw msrp for order %d", earlier.ID)
	}
	laterMsrp, ok := rawMsrpByOrderID[later.ID]
	if !ok {
		return entities.Msrp{}, fmt.Errorf("no raw msrp for order %d", later.ID)
	}

	return r.combine(
		earlier, earlierMsrp,
		later, laterMsrp,
		weightsByOrderID[earlier.ID],
		weightsByOrderID[later.ID],
		productsByID,
	)
}

// combine folds the earlier order's effective contribution into the later
// order's figures. The weighted union takes, per product, the larger of
// the two ordered values and the later order's weight where one exists, so
// a member keeps paying for commitments the amendment tried to walk back
// while nothing is charged twice. The later total is floored at the
// earlier effective total.
func (r *EffectiveMsrpChainResolver) combine(
	earlier entities.SavedOrder, earlierEffective entities.Msrp,
	later entities.SavedOrder, laterRaw entities.Msrp,
	earlierWeights, laterWeights entities.ProductMsrpWeights,
	productsByID entities.ProductsByID,
) (entities.Msrp, error) {
	unionValues := make(map[entities.ProductID]decimal.Decimal)
	for _, item := range earlier.OrderItems {
		unionValues[item.ProductID] = item.Value
	}
	for _, item := range later.OrderItems {
		if existing, ok := unionValues[item.ProductID]; !ok || item.Value.GreaterThan(existing) {
			unionValues[item.ProductID] = item.Value
		}
	}

	unionBase := decimal.Zero
	unionSelfgrownBase := decimal.Zero
	for productID, value := range unionValues {
		product, ok := productsByID[productID]
		if !ok {
			return entities.Msrp{}, fmt.Errorf("product %d not in catalog snapshot", productID)
		}

		weight := earlierWeights.Weight(productID)
		if laterWeights != nil {
			if w, ok := laterWeights[productID]; ok {
				weight = w
			}
		}

		base, err := r.calc.BaseMsrp(entities.OrderItem{ProductID: productID, Value: value}, product, weight)
		if err != nil {
			return entities.Msrp{}, err
		}
		unionBase = unionBase.Add(base)
		if product.ProductCategoryType == entities.Selfgrown {
			unionSelfgrownBase = unionSelfgrownBase.Add(base)
		}
	}

	months := laterRaw.Months
	if months < 1 {
		months = 1
	}
	total, err := r.calc.AdjustMsrp(unionBase, laterRaw.Category, months)
	if err != nil {
		return entities.Msrp{}, err
	}
	selfgrown, err := r.calc.AdjustMsrp(unionSelfgrownBase, laterRaw.Category, months)
	if err != nil {
		return entities.Msrp{}, err
	}

	// Monotonic floor: the chain never reduces what the member already owes.
	if total < earlierEffective.Monthly.Total {
		total = earlierEffective.Monthly.Total
	}
	if selfgrown < earlierEffective.Monthly.Selfgrown {
		selfgrown = earlierEffective.Monthly.Selfgrown
	}
	if selfgrown > total {
		selfgrown = total
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
		Category: laterRaw.Category,
	}, nil
}
