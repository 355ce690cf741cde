package memory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/repositories"
)

// StatisticsRepository derives the aggregate snapshots from the stored
// orders instead of maintaining them as separate state. Delivery progress
// is the exception: actual deliveries are recorded as they happen.
type StatisticsRepository struct {
	orders  repositories.OrderRepository
	catalog repositories.CatalogRepository
	depots  repositories.DepotRepository

	// delivered[configID][productID][depotID] accumulates deliveries
	// times 100
	delivered map[entities.ConfigID]map[entities.ProductID]map[entities.DepotID]int64
}

// NewStatisticsRepository creates a statistics repository reading from the
// given stores
func NewStatisticsRepository(
	orders repositories.OrderRepository,
	catalog repositories.CatalogRepository,
	depots repositories.DepotRepository,
) *StatisticsRepository {
	return &StatisticsRepository{
		orders:    orders,
		catalog:   catalog,
		depots:    depots,
		delivered: make(map[entities.ConfigID]map[entities.ProductID]map[entities.DepotID]int64),
	}
}

// Verify interface compliance
var _ repositories.StatisticsRepository = (*StatisticsRepository)(nil)

// currentChainLinks returns, per user, the latest link of their order
// chain. Only the latest link counts towards the aggregates: earlier
// links are historical.
func (r *StatisticsRepository) currentChainLinks(configID entities.ConfigID) ([]entities.SavedOrder, error) {
	orders, err := r.orders.GetOrdersByConfig(configID)
	if err != nil {
		return nil, fmt.Errorf("loading orders for config %d: %w", configID, err)
	}

	latestByUser := make(map[entities.UserID]entities.SavedOrder)
	for _, order := range orders {
		existing, ok := latestByUser[order.UserID]
		if !ok || order.ValidFrom.After(existing.ValidFrom) {
			latestByUser[order.UserID] = order
		}
	}

	links := make([]entities.SavedOrder, 0, len(latestByUser))
	for _, order := range latestByUser {
		links = append(links, order)
	}
	return links, nil
}

// GetSoldByProductID aggregates, per product, what all members together
// have committed for the season
func (r *StatisticsRepository) GetSoldByProductID(configID entities.ConfigID) (entities.SoldByProductID, error) {
	productsByID, err := r.catalog.GetProductsByID()
	if err != nil {
		return nil, err
	}
	links, err := r.currentChainLinks(configID)
	if err != nil {
		return nil, err
	}

	sold := make(entities.SoldByProductID, len(productsByID))
	for id, product := range productsByID {
		sold[id] = entities.SoldEntry{
			Quantity:  product.Quantity,
			Frequency: product.Frequency,
		}
	}

	for _, order := range links {
		for _, item := range order.OrderItems {
			entry, ok := sold[item.ProductID]
			if !ok {
				return nil, fmt.Errorf("order %d references unknown product %d", order.ID, item.ProductID)
			}
			// order values are per delivery cycle, the aggregate
			// counts the whole season
			seasonValue := item.Value.Mul(decimal.NewFromInt(int64(entry.Frequency)))
			entry.Sold = entry.Sold.Add(seasonValue)
			entry.SoldForShipment = entry.SoldForShipment.Add(seasonValue)
			sold[item.ProductID] = entry
		}
	}

	return sold, nil
}

// RecordDelivery accumulates an actual delivery of a product at a depot.
// deliveredTimes100 carries the delivered fraction of one planned
// distribution scaled by 100, so partial deliveries survive integer
// aggregation.
func (r *StatisticsRepository) RecordDelivery(
	configID entities.ConfigID,
	productID entities.ProductID,
	depotID entities.DepotID,
	deliveredTimes100 int64,
) {
	byProduct, ok := r.delivered[configID]
	if !ok {
		byProduct = make(map[entities.ProductID]map[entities.DepotID]int64)
		r.delivered[configID] = byProduct
	}
	byDepot, ok := byProduct[productID]
	if !ok {
		byDepot = make(map[entities.DepotID]int64)
		byProduct[productID] = byDepot
	}
	byDepot[depotID] += deliveredTimes100
}

// GetDeliveredByProductID builds the per-depot delivery progress snapshot:
// the per-cycle need of each depot from the current orders, combined with
// the recorded deliveries
func (r *StatisticsRepository) GetDeliveredByProductID(configID entities.ConfigID) (entities.DeliveredByProductIDDepotID, error) {
	productsByID, err := r.catalog.GetProductsByID()
	if err != nil {
		return nil, err
	}
	links, err := r.currentChainLinks(configID)
	if err != nil {
		return nil, err
	}

	snapshot := make(entities.DeliveredByProductIDDepotID)
	for _, order := range links {
		for _, item := range order.OrderItems {
			if item.Value.Sign() <= 0 {
				continue
			}
			product, ok := productsByID[item.ProductID]
			if !ok {
				return nil, fmt.Errorf("order %d references unknown product %d", order.ID, item.ProductID)
			}

			byDepot, ok := snapshot[item.ProductID]
			if !ok {
				byDepot = make(map[entities.DepotID]entities.DeliveryEntry)
				snapshot[item.ProductID] = byDepot
			}
			entry := byDepot[order.DepotID]
			entry.Frequency = product.Frequency
			entry.Value += item.Value.Round(0).IntPart()
			entry.ValueForShipment += item.Value.Round(0).IntPart()
			byDepot[order.DepotID] = entry
		}
	}

	for productID, byDepotDelivered := range r.delivered[configID] {
		byDepot, ok := snapshot[productID]
		if !ok {
			byDepot = make(map[entities.DepotID]entities.DeliveryEntry)
			snapshot[productID] = byDepot
		}
		for depotID, deliveredTimes100 := range byDepotDelivered {
			entry := byDepot[depotID]
			entry.Delivered += deliveredTimes100
			byDepot[depotID] = entry
		}
	}

	return snapshot, nil
}

// GetCapacityByDepotID aggregates seat usage per depot from the current
// orders
func (r *StatisticsRepository) GetCapacityByDepotID(configID entities.ConfigID) (entities.CapacityByDepotID, error) {
	depots, err := r.depots.GetAllDepots()
	if err != nil {
		return nil, err
	}
	links, err := r.currentChainLinks(configID)
	if err != nil {
		return nil, err
	}

	capacity := make(entities.CapacityByDepotID, len(depots))
	for _, depot := range depots {
		capacity[depot.ID] = entities.DepotCapacity{Capacity: depot.Capacity}
	}

	for _, order := range links {
		entry, ok := capacity[order.DepotID]
		if !ok {
			return nil, fmt.Errorf("order %d references unknown depot %d", order.ID, order.DepotID)
		}
		entry.Reserved++
		entry.UserIDs = append(entry.UserIDs, order.UserID)
		capacity[order.DepotID] = entry
	}

	return capacity, nil
}
