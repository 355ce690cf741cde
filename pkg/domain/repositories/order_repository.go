package repositories

import "github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"

// OrderRepository provides access to saved orders and their chains
type OrderRepository interface {
	GetOrder(id entities.OrderID) (*entities.SavedOrder, error)

	// GetOrderChain returns every order a user has for a season
	// configuration, sorted by validFrom ascending.
	GetOrderChain(userID entities.UserID, configID entities.ConfigID) ([]entities.SavedOrder, error)

	GetOrdersByConfig(configID entities.ConfigID) ([]entities.SavedOrder, error)
	SaveOrder(order *entities.SavedOrder) error
	LoadOrders(orders []*entities.SavedOrder) error
}
