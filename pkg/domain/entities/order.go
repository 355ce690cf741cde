package entities

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// OrderID identifies a saved order
type OrderID int64

// UserID identifies a member account
type UserID int64

// OrderItem is one product selection within an order. Value is the ordered
// quantity in the product's unit; zero means no selection and is always valid.
type OrderItem struct {
	ProductID ProductID
	Value     decimal.Decimal
}

// SavedOrder is one member's commitment for a validity window within a
// season. Consecutive orders of the same member form a chain: each order's
// ValidFrom equals the prior order's ValidTo. An order is never mutated in
// place once its window has started; amendments append a new chain link.
type SavedOrder struct {
	ID                  OrderID
	UserID              UserID
	OrderItems          []OrderItem
	DepotID             DepotID
	AlternateDepotID    *DepotID
	Offer               int64
	OfferReason         string
	Category            UserCategory
	CategoryReason      string
	ValidFrom           time.Time
	ValidTo             time.Time
	RequisitionConfigID ConfigID
}

// NewSavedOrder creates a validated SavedOrder
func NewSavedOrder(
	id OrderID,
	userID UserID,
	items []OrderItem,
	depotID DepotID,
	offer int64,
	category UserCategory,
	validFrom, validTo time.Time,
	configID ConfigID,
) (*SavedOrder, error) {
	if id <= 0 {
		return nil, fmt.Errorf("order id must be positive, got %d", id)
	}
	if offer < 0 {
		return nil, fmt.Errorf("offer cannot be negative, got %d", offer)
	}
	if !validFrom.IsZero() && !validTo.IsZero() && !validFrom.Before(validTo) {
		return nil, fmt.Errorf("validFrom %v must be before validTo %v", validFrom, validTo)
	}

	return &SavedOrder{
		ID:                  id,
		UserID:              userID,
		OrderItems:          items,
		DepotID:             depotID,
		Offer:               offer,
		Category:            category,
		ValidFrom:           validFrom,
		ValidTo:             validTo,
		RequisitionConfigID: configID,
	}, nil
}

// ItemByProductID returns the order item for a product, if present
func (o *SavedOrder) ItemByProductID(id ProductID) (OrderItem, bool) {
	for _, item := range o.OrderItems {
		if item.ProductID == id {
			return item, true
		}
	}
	return OrderItem{}, false
}

// SortChain returns a copy of the orders sorted by ValidFrom ascending.
// The sorted slice is the canonical chain representation; predecessor and
// successor lookups are index based rather than re-derived from timestamp
// equality on every call.
func SortChain(orders []SavedOrder) []SavedOrder {
	chain := make([]SavedOrder, len(orders))
	copy(chain, orders)
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].ValidFrom.Before(chain[j].ValidFrom)
	})
	return chain
}
