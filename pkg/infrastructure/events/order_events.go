package events

import (
	"fmt"
	"time"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

const (
	OrderSavedEvent               = "order.saved"
	OrderRejectedEvent            = "order.rejected"
	OrderModificationCreatedEvent = "order.modification.created"

	BiddingRoundStartedEvent = "bidding.round.started"
	BiddingRoundEndedEvent   = "bidding.round.ended"

	ShipmentSplitEvent    = "shipment.split"
	DeliveryRecordedEvent = "delivery.recorded"
)

type OrderSaved struct {
	Order         entities.SavedOrder  `json:"order"`
	Predecessor   *entities.SavedOrder `json:"predecessor,omitempty"`
	EffectiveMsrp entities.Msrp        `json:"effective_msrp"`
}

type OrderRejected struct {
	UserID  entities.UserID  `json:"user_id"`
	OrderID entities.OrderID `json:"order_id"`
	Reasons []string         `json:"reasons"`
}

// OrderModificationCreated records a chain link appended during a
// bidding round, together with the truncation applied to its predecessor.
type OrderModificationCreated struct {
	Order           entities.SavedOrder `json:"order"`
	PreviousOrderID entities.OrderID    `json:"previous_order_id"`
	PreviousValidTo time.Time           `json:"previous_valid_to"`
}

type BiddingRoundStarted struct {
	Config entities.RequisitionConfig `json:"config"`
}

type BiddingRoundEnded struct {
	Config entities.RequisitionConfig `json:"config"`
}

type ShipmentSplit struct {
	ProductID entities.ProductID         `json:"product_id"`
	Total     int64                      `json:"total"`
	ByDepot   map[entities.DepotID]int64 `json:"by_depot"`
}

type DeliveryRecorded struct {
	ProductID entities.ProductID `json:"product_id"`
	DepotID   entities.DepotID   `json:"depot_id"`
	Delivered int64              `json:"delivered"`
}

func orderStreamID(userID entities.UserID, configID entities.ConfigID) string {
	return fmt.Sprintf("order-%d-%d", userID, configID)
}

func NewOrderSavedEvent(order entities.SavedOrder, predecessor *entities.SavedOrder, effective entities.Msrp) Event {
	return NewEvent(OrderSavedEvent, orderStreamID(order.UserID, order.RequisitionConfigID), OrderSaved{
		Order:         order,
		Predecessor:   predecessor,
		EffectiveMsrp: effective,
	})
}

func NewOrderRejectedEvent(userID entities.UserID, configID entities.ConfigID, orderID entities.OrderID, reasons []string) Event {
	return NewEvent(OrderRejectedEvent, orderStreamID(userID, configID), OrderRejected{
		UserID:  userID,
		OrderID: orderID,
		Reasons: reasons,
	})
}

func NewOrderModificationCreatedEvent(order, previous entities.SavedOrder) Event {
	return NewEvent(OrderModificationCreatedEvent, orderStreamID(order.UserID, order.RequisitionConfigID), OrderModificationCreated{
		Order:           order,
		PreviousOrderID: previous.ID,
		PreviousValidTo: previous.ValidTo,
	})
}

func NewShipmentSplitEvent(productID entities.ProductID, total int64, byDepot map[entities.DepotID]int64) Event {
	return NewEvent(ShipmentSplitEvent, fmt.Sprintf("shipment-%d", productID), ShipmentSplit{
		ProductID: productID,
		Total:     total,
		ByDepot:   byDepot,
	})
}

func NewDeliveryRecordedEvent(productID entities.ProductID, depotID entities.DepotID, delivered int64) Event {
	return NewEvent(DeliveryRecordedEvent, fmt.Sprintf("shipment-%d", productID), DeliveryRecorded{
		ProductID: productID,
		DepotID:   depotID,
		Delivered: delivered,
	})
}
