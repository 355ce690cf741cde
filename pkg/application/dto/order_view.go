package dto

import (
	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// ItemPrice is the per-product slice of a priced order
type ItemPrice struct {
	ProductID   entities.ProductID
	Name        string
	Value       decimal.Decimal
	Unit        entities.Unit
	MonthlyMsrp int64
}

// PricedOrder is one chain link with its raw and effective contribution
type PricedOrder struct {
	OrderID       entities.OrderID
	Offer         int64
	Months        int
	RawMsrp       entities.Msrp
	EffectiveMsrp entities.Msrp
	Items         []ItemPrice
}

// PricedChain is the complete priced view of a member's season:
// every chain link with raw and effective contributions, plus the
// season phase the view was computed in.
type PricedChain struct {
	UserID   entities.UserID
	ConfigID entities.ConfigID
	Phase    string
	Orders   []PricedOrder
}

// CurrentOrder returns the link governing deliveries right now, if any
func (c *PricedChain) CurrentOrder(id entities.OrderID) (PricedOrder, bool) {
	for _, order := range c.Orders {
		if order.OrderID == id {
			return order, true
		}
	}
	return PricedOrder{}, false
}
