package repositories

import "github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"

// StatisticsRepository provides the aggregate snapshots that validation
// and pricing read: per-product sales, per-depot delivery progress and
// depot seat usage. Implementations derive these from the stored orders
// and shipments rather than maintaining them as separate state.
type StatisticsRepository interface {
	GetSoldByProductID(configID entities.ConfigID) (entities.SoldByProductID, error)
	GetDeliveredByProductID(configID entities.ConfigID) (entities.DeliveredByProductIDDepotID, error)
	GetCapacityByDepotID(configID entities.ConfigID) (entities.CapacityByDepotID, error)
}
