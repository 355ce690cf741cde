package services

import (
	"time"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// DetermineModificationOrderID returns the id of the order a regular
// member may still edit: the first order in the chain whose
// delivery-aligned start is still in the future. The second return value
// is false when only historical orders exist.
func DetermineModificationOrderID(orders []entities.SavedOrder, now time.Time) (entities.OrderID, bool) {
	chain := entities.SortChain(orders)
	for _, order := range chain {
		if order.ValidFrom.IsZero() {
			continue
		}
		if now.Before(SameOrNextThursday(order.ValidFrom)) {
			return order.ID, true
		}
	}
	return 0, false
}

// DetermineCurrentOrderID returns the id of the order whose
// delivery-aligned validity window contains now: the order governing
// today's deliveries.
func DetermineCurrentOrderID(orders []entities.SavedOrder, now time.Time) (entities.OrderID, bool) {
	chain := entities.SortChain(orders)
	for _, order := range chain {
		var from, to *time.Time
		if !order.ValidFrom.IsZero() {
			f := SameOrNextThursday(order.ValidFrom)
			from = &f
		}
		if !order.ValidTo.IsZero() {
			t := SameOrNextThursday(order.ValidTo)
			to = &t
		}
		if IsDateInRange(now, from, to) {
			return order.ID, true
		}
	}
	return 0, false
}

// DeterminePredecessorOrder returns the chain link immediately before the
// given order, or nil when the order is the first link or unknown.
// Adjacency is positional on the sorted chain, not re-derived from
// timestamp equality.
func DeterminePredecessorOrder(orders []entities.SavedOrder, orderID entities.OrderID) *entities.SavedOrder {
	chain := entities.SortChain(orders)
	for i, order := range chain {
		if order.ID == orderID {
			if i == 0 {
				return nil
			}
			predecessor := chain[i-1]
			return &predecessor
		}
	}
	return nil
}
