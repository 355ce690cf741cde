package entities

import "github.com/shopspring/decimal"

// DepotID identifies a pickup location
type DepotID int64

// Depot is a pickup location with an optional seat limit.
// A nil Capacity means unlimited.
type Depot struct {
	ID       DepotID
	Name     string
	Active   bool
	Capacity *int
}

// SoldEntry aggregates, per product, what all members together have
// committed for the season. Quantity is the total available per delivery
// cycle, Sold the quantity already committed.
type SoldEntry struct {
	Quantity        decimal.Decimal
	Sold            decimal.Decimal
	Frequency       int
	SoldForShipment decimal.Decimal
}

// SoldByProductID is the sales aggregate snapshot for one season
type SoldByProductID map[ProductID]SoldEntry

// DeliveryEntry tracks delivery progress of one product at one depot.
// Delivered is stored times 100 so fractional deliveries survive integer
// aggregation; ValueForShipment is the per-cycle need used when splitting
// shipment totals.
type DeliveryEntry struct {
	Value            int64
	Delivered        int64
	Frequency        int
	ValueForShipment int64
}

// DeliveredByProductIDDepotID is the per-depot delivery progress snapshot
type DeliveredByProductIDDepotID map[ProductID]map[DepotID]DeliveryEntry

// DepotCapacity aggregates seat usage of one depot
type DepotCapacity struct {
	Capacity *int
	Reserved int
	UserIDs  []UserID
}

// CapacityByDepotID is the depot seat usage snapshot
type CapacityByDepotID map[DepotID]DepotCapacity
