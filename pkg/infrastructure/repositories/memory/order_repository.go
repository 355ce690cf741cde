package memory

import (
	"fmt"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/repositories"
)

// OrderRepository provides in-memory order storage
type OrderRepository struct {
	orders map[entities.OrderID]entities.SavedOrder
	nextID entities.OrderID
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[entities.OrderID]entities.SavedOrder),
		nextID: 1,
	}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// GetOrder returns the order for an id
func (r *OrderRepository) GetOrder(id entities.OrderID) (*entities.SavedOrder, error) {
	order, exists := r.orders[id]
	if !exists {
		return nil, fmt.Errorf("order not found: %d", id)
	}
	return &order, nil
}

// GetOrderChain returns a user's orders for a season configuration,
// sorted by validFrom ascending
func (r *OrderRepository) GetOrderChain(userID entities.UserID, configID entities.ConfigID) ([]entities.SavedOrder, error) {
	var chain []entities.SavedOrder
	for _, order := range r.orders {
		if order.UserID == userID && order.RequisitionConfigID == configID {
			chain = append(chain, order)
		}
	}
	return entities.SortChain(chain), nil
}

// GetOrdersByConfig returns every order of a season configuration
func (r *OrderRepository) GetOrdersByConfig(configID entities.ConfigID) ([]entities.SavedOrder, error) {
	var orders []entities.SavedOrder
	for _, order := range r.orders {
		if order.RequisitionConfigID == configID {
			orders = append(orders, order)
		}
	}
	return entities.SortChain(orders), nil
}

// SaveOrder stores an order, assigning an id when it has none
func (r *OrderRepository) SaveOrder(order *entities.SavedOrder) error {
	if order == nil {
		return fmt.Errorf("cannot save nil order")
	}
	if order.ID == 0 {
		order.ID = r.nextID
	}
	if order.ID >= r.nextID {
		r.nextID = order.ID + 1
	}
	r.orders[order.ID] = *order
	return nil
}

// LoadOrders loads orders into the repository
func (r *OrderRepository) LoadOrders(orders []*entities.SavedOrder) error {
	for _, order := range orders {
		if order.ID != 0 {
			if _, exists := r.orders[order.ID]; exists {
				return fmt.Errorf("duplicate order id: %d", order.ID)
			}
		}
		if err := r.SaveOrder(order); err != nil {
			return err
		}
	}
	return nil
}
