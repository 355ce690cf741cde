package dto

import (
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// SaveOrderRequest is a proposed order modification as submitted by a
// member or an admin acting on their behalf
type SaveOrderRequest struct {
	UserID     entities.UserID
	Role       entities.UserRole
	UserActive bool

	OrderID  entities.OrderID
	ConfigID entities.ConfigID

	DepotID          entities.DepotID
	AlternateDepotID *entities.DepotID

	Offer       int64
	OfferReason string

	Category       entities.UserCategory
	CategoryReason string

	OrderItems []entities.OrderItem
}

// SaveOrderResult reports the outcome of a save attempt. Errors collects
// every violated rule so the caller can display all of them at once.
type SaveOrderResult struct {
	Valid   bool
	OrderID entities.OrderID
	Errors  []string

	// Msrp is the reference contribution the proposal was checked
	// against
	Msrp entities.Msrp
}

// ShipmentSplit is a shipment total distributed over depots
type ShipmentSplit struct {
	ProductID    entities.ProductID
	ProductName  string
	Unit         entities.Unit
	Total        int64
	RoundingStep int64
	ByDepot      map[entities.DepotID]int64
}
