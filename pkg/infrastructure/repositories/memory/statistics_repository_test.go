package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

func statisticsFixture(t *testing.T) (*StatisticsRepository, *OrderRepository) {
	t.Helper()

	catalog := NewCatalogRepository(2)
	carrots, err := entities.NewProduct(
		1, "Carrots", entities.Weight, 250, 30,
		decimal.NewFromInt(5000),
		decimal.NewFromInt(500),
		decimal.NewFromInt(2000),
		decimal.NewFromInt(500),
		entities.Selfgrown,
	)
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	if err := catalog.LoadProducts([]*entities.Product{carrots}); err != nil {
		t.Fatalf("Failed to load products: %v", err)
	}

	ten := 10
	depots := NewDepotRepository(2)
	err = depots.LoadDepots([]*entities.Depot{
		{ID: 1, Name: "North", Active: true, Capacity: &ten},
		{ID: 2, Name: "South", Active: true},
	})
	if err != nil {
		t.Fatalf("Failed to load depots: %v", err)
	}

	orders := NewOrderRepository()
	stats := NewStatisticsRepository(orders, catalog, depots)
	return stats, orders
}

func TestStatisticsRepository_SoldCountsOnlyLatestChainLink(t *testing.T) {
	stats, orders := statisticsFixture(t)

	err := orders.LoadOrders([]*entities.SavedOrder{
		{
			ID: 1, UserID: 1, DepotID: 1, RequisitionConfigID: 1,
			ValidFrom:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			OrderItems: []entities.OrderItem{{ProductID: 1, Value: decimal.NewFromInt(500)}},
		},
		{
			ID: 2, UserID: 1, DepotID: 1, RequisitionConfigID: 1,
			ValidFrom:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			OrderItems: []entities.OrderItem{{ProductID: 1, Value: decimal.NewFromInt(1000)}},
		},
		{
			ID: 3, UserID: 2, DepotID: 2, RequisitionConfigID: 1,
			ValidFrom:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			OrderItems: []entities.OrderItem{{ProductID: 1, Value: decimal.NewFromInt(500)}},
		},
	})
	if err != nil {
		t.Fatalf("Failed to load orders: %v", err)
	}

	sold, err := stats.GetSoldByProductID(1)
	if err != nil {
		t.Fatalf("Failed to get sales snapshot: %v", err)
	}

	entry := sold[1]
	// User 1's amendment supersedes their first order: (1000 + 500)
	// per cycle, times 30 deliveries
	if !entry.Sold.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("Expected sold 45000, got %s", entry.Sold)
	}
	if !entry.Quantity.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected quantity 5000, got %s", entry.Quantity)
	}
	if entry.Frequency != 30 {
		t.Errorf("Expected frequency 30, got %d", entry.Frequency)
	}
}

func TestStatisticsRepository_DeliveredSnapshot(t *testing.T) {
	stats, orders := statisticsFixture(t)

	err := orders.LoadOrders([]*entities.SavedOrder{
		{
			ID: 1, UserID: 1, DepotID: 1, RequisitionConfigID: 1,
			ValidFrom:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			OrderItems: []entities.OrderItem{{ProductID: 1, Value: decimal.NewFromInt(500)}},
		},
	})
	if err != nil {
		t.Fatalf("Failed to load orders: %v", err)
	}

	stats.RecordDelivery(1, 1, 1, 100)
	stats.RecordDelivery(1, 1, 1, 50)

	delivered, err := stats.GetDeliveredByProductID(1)
	if err != nil {
		t.Fatalf("Failed to get delivery snapshot: %v", err)
	}

	entry := delivered[1][1]
	if entry.Delivered != 150 {
		t.Errorf("Expected accumulated delivery 150, got %d", entry.Delivered)
	}
	if entry.ValueForShipment != 500 {
		t.Errorf("Expected shipment need 500, got %d", entry.ValueForShipment)
	}
	if entry.Frequency != 30 {
		t.Errorf("Expected frequency 30, got %d", entry.Frequency)
	}
}

func TestStatisticsRepository_CapacitySnapshot(t *testing.T) {
	stats, orders := statisticsFixture(t)

	err := orders.LoadOrders([]*entities.SavedOrder{
		{ID: 1, UserID: 1, DepotID: 1, RequisitionConfigID: 1,
			ValidFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, UserID: 2, DepotID: 1, RequisitionConfigID: 1,
			ValidFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, UserID: 3, DepotID: 2, RequisitionConfigID: 1,
			ValidFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	})
	if err != nil {
		t.Fatalf("Failed to load orders: %v", err)
	}

	capacity, err := stats.GetCapacityByDepotID(1)
	if err != nil {
		t.Fatalf("Failed to get capacity snapshot: %v", err)
	}

	north := capacity[1]
	if north.Reserved != 2 {
		t.Errorf("Expected 2 seats reserved at depot 1, got %d", north.Reserved)
	}
	if north.Capacity == nil || *north.Capacity != 10 {
		t.Errorf("Expected capacity 10 at depot 1, got %v", north.Capacity)
	}

	south := capacity[2]
	if south.Reserved != 1 {
		t.Errorf("Expected 1 seat reserved at depot 2, got %d", south.Reserved)
	}
	if south.Capacity != nil {
		t.Errorf("Expected uncapped depot 2, got %v", *south.Capacity)
	}
}
