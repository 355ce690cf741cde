package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// CheckOrderItemValid validates a single requested quantity against the
// product's constraints and the remaining season inventory. It returns an
// empty string for a valid item and a human-readable reason otherwise;
// a product id missing from the catalog snapshot is an error because the
// caller's snapshot is inconsistent with the order being validated.
//
// savedOrder is the member's currently saved order, if any: a previously
// saved nonzero value for the same product is handed back to the pool
// before checking, so the member's own reservation does not count against
// them.
func CheckOrderItemValid(
	savedOrder *entities.SavedOrder,
	item entities.OrderItem,
	soldByProductID entities.SoldByProductID,
	productsByID entities.ProductsByID,
) (string, error) {
	if item.Value.IsZero() {
		return "", nil
	}

	product, ok := productsByID[item.ProductID]
	if !ok {
		return "", fmt.Errorf("product %d not in catalog snapshot", item.ProductID)
	}
	if !product.Active {
		return fmt.Sprintf("product %s is not available", product.Name), nil
	}
	if item.Value.Sign() < 0 {
		return fmt.Sprintf("value for %s must not be negative", product.Name), nil
	}

	if product.QuantityMin.GreaterThan(item.Value) {
		return fmt.Sprintf("minimum quantity %s %s of %s not reached",
			product.QuantityMin, product.Unit, product.Name), nil
	}

	maxAvailable, err := maxAvailableValue(item.ProductID, productsByID, soldByProductID, savedValueFor(savedOrder, item.ProductID))
	if err != nil {
		return "", err
	}
	if maxAvailable.LessThan(item.Value) {
		return fmt.Sprintf("maximum available quantity %s %s of %s exceeded",
			maxAvailable, product.Unit, product.Name), nil
	}

	if !item.Value.Mod(product.QuantityStep).IsZero() {
		return fmt.Sprintf("quantity for %s must be a multiple of %s %s",
			product.Name, product.QuantityStep, product.Unit), nil
	}

	return "", nil
}

// GetMaxAvailable returns the largest value a member may currently order
// for a product, taking their own saved reservation into account.
func GetMaxAvailable(
	savedItem entities.OrderItem,
	productsByID entities.ProductsByID,
	soldByProductID entities.SoldByProductID,
) (decimal.Decimal, error) {
	return maxAvailableValue(savedItem.ProductID, productsByID, soldByProductID, savedItem.Value)
}

// GetMinAvailable returns the smallest value a member may currently order
// for a product. During the increase-only phase the effective minimum is
// the larger of the product's own minimum and what the member already
// committed.
func GetMinAvailable(
	savedItem entities.OrderItem,
	role entities.UserRole,
	config entities.RequisitionConfig,
	now time.Time,
	productsByID entities.ProductsByID,
) (decimal.Decimal, error) {
	product, ok := productsByID[savedItem.ProductID]
	if !ok {
		return decimal.Zero, fmt.Errorf("product %d not in catalog snapshot", savedItem.ProductID)
	}

	if IsIncreaseOnly(role, config, now) && savedItem.Value.GreaterThan(product.QuantityMin) {
		return savedItem.Value, nil
	}
	return product.QuantityMin, nil
}

// GetRemainingDepotCapacity returns the free seats of a depot, or nil when
// the depot is uncapped. A member who already holds a seat in the depot
// gets their own seat handed back.
func GetRemainingDepotCapacity(depot entities.Depot, reserved int, savedDepotID entities.DepotID) *int {
	if depot.Capacity == nil {
		return nil
	}
	remaining := *depot.Capacity - reserved
	if depot.ID == savedDepotID {
		remaining++
	}
	return &remaining
}

// SanitizeOrderItem normalizes arbitrary numeric input into a valid order
// value: clamp into [minValue, maxValue], round down to the nearest step
// multiple, and collapse to zero when the result would undercut the
// minimum. It never fails; it is an input normalizer, not a validator.
func SanitizeOrderItem(value *decimal.Decimal, minValue, maxValue, step decimal.Decimal) decimal.Decimal {
	v := minValue
	if value != nil {
		v = *value
	}
	if v.LessThan(minValue) {
		v = minValue
	}
	if v.GreaterThan(maxValue) {
		v = maxValue
	}
	if step.Sign() > 0 && !v.Mod(step).IsZero() {
		v = v.Div(step).Floor().Mul(step)
	}
	if v.LessThan(minValue) {
		v = decimal.Zero
	}
	return v
}

// savedValueFor extracts the member's previously saved value for a
// product; zero when there is no saved order or no matching item.
func savedValueFor(savedOrder *entities.SavedOrder, productID entities.ProductID) decimal.Decimal {
	if savedOrder == nil {
		return decimal.Zero
	}
	if item, ok := savedOrder.ItemByProductID(productID); ok {
		return item.Value
	}
	return decimal.Zero
}

// maxAvailableValue derives the remaining per-cycle availability: the
// unsold season quantity, plus the member's own prior reservation, spread
// over the delivery frequency and capped by the product maximum.
func maxAvailableValue(
	productID entities.ProductID,
	productsByID entities.ProductsByID,
	soldByProductID entities.SoldByProductID,
	savedValue decimal.Decimal,
) (decimal.Decimal, error) {
	product, ok := productsByID[productID]
	if !ok {
		return decimal.Zero, fmt.Errorf("product %d not in catalog snapshot", productID)
	}
	sold, ok := soldByProductID[productID]
	if !ok {
		return decimal.Zero, fmt.Errorf("product %d not in sales snapshot", productID)
	}

	remaining := sold.Quantity.Sub(sold.Sold)
	if savedValue.Sign() > 0 {
		remaining = remaining.Add(savedValue.Mul(decimal.NewFromInt(int64(sold.Frequency))))
	}

	frequency := sold.Frequency
	if frequency == 0 {
		frequency = 1
	}

	maxAvailable := remaining.Div(decimal.NewFromInt(int64(frequency)))
	if maxAvailable.GreaterThan(product.QuantityMax) {
		maxAvailable = product.QuantityMax
	}
	return maxAvailable, nil
}
