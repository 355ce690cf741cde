package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/application/dto"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/application/services"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	domainservices "github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/services"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/infrastructure/events"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	catalogRepo := memory.NewCatalogRepository(3)
	depotRepo := memory.NewDepotRepository(2)
	orderRepo := memory.NewOrderRepository()
	configRepo := memory.NewConfigRepository()

	// Set up a small season snapshot
	setupSeason(catalogRepo, depotRepo, configRepo)
	statsRepo := memory.NewStatisticsRepository(orderRepo, catalogRepo, depotRepo)

	pricing := domainservices.DefaultPricingConfig()
	eventStore := events.NewInMemoryEventStore(nil)

	// A member commits to weekly carrots and eggs during the order phase
	now := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	request := dto.SaveOrderRequest{
		UserID:     7,
		Role:       entities.RoleUser,
		UserActive: true,
		ConfigID:   1,
		DepotID:    2,
		Offer:      13,
		Category:   entities.Cat130,
		OrderItems: []entities.OrderItem{
			{ProductID: 1, Value: decimal.NewFromInt(500)}, // 500 g carrots per delivery
			{ProductID: 2, Value: decimal.NewFromInt(4)},   // 4 eggs per delivery
		},
	}

	fmt.Println("🥕 Saving a member order...")
	orderService := services.NewOrderService(pricing, nil)
	result, err := orderService.SaveOrder(ctx, request, now,
		orderRepo, catalogRepo, depotRepo, configRepo, statsRepo, eventStore)
	if err != nil {
		fmt.Printf("❌ Save failed: %v\n", err)
		return
	}
	if !result.Valid {
		fmt.Println("❌ Proposal rejected:")
		for _, reason := range result.Errors {
			fmt.Printf("  - %s\n", reason)
		}
		return
	}
	fmt.Printf("✅ Order %d saved, reference contribution %d/month\n\n",
		result.OrderID, result.Msrp.Monthly.Total)

	// Price the member's chain
	fmt.Println("💶 Pricing the member's chain...")
	pricingService := services.NewPricingService(pricing, nil)
	chain, err := pricingService.PriceMemberChain(ctx, 7, 1, now,
		orderRepo, catalogRepo, depotRepo, configRepo, statsRepo)
	if err != nil {
		fmt.Printf("❌ Pricing failed: %v\n", err)
		return
	}
	for _, order := range chain.Orders {
		fmt.Printf("  Order %d: %d months, effective %d/month (offer %d)\n",
			order.OrderID, order.Months, order.EffectiveMsrp.Monthly.Total, order.Offer)
	}
	fmt.Println()

	// Split this week's carrot harvest across the depots
	fmt.Println("🚚 Splitting 75 kg of carrots across depots...")
	shipmentService := services.NewShipmentService(pricing, nil, nil)
	split, err := shipmentService.SplitShipment(ctx, 1, 1, decimal.NewFromInt(75),
		catalogRepo, statsRepo, eventStore)
	if err != nil {
		fmt.Printf("❌ Split failed: %v\n", err)
		return
	}
	for depotID, qty := range split.ByDepot {
		fmt.Printf("  Depot %d: %d hundredths of a kg\n", depotID, qty)
	}
	fmt.Println()

	// The event store carries the audit trail
	published, err := eventStore.ReadAllEvents(0)
	if err != nil {
		fmt.Printf("❌ Reading events failed: %v\n", err)
		return
	}
	fmt.Printf("📨 %d event(s) recorded:\n", len(published))
	for _, event := range published {
		fmt.Printf("  %s on stream %s\n", event.Type(), event.StreamID())
	}

	fmt.Println("\n✅ Season walkthrough complete!")
}

func setupSeason(
	catalogRepo *memory.CatalogRepository,
	depotRepo *memory.DepotRepository,
	configRepo *memory.ConfigRepository,
) {
	carrots, _ := entities.NewProduct(1, "Carrots", entities.Weight, 250, 30,
		decimal.NewFromInt(100000), decimal.NewFromInt(500),
		decimal.NewFromInt(10000), decimal.NewFromInt(250), entities.Selfgrown)
	eggs, _ := entities.NewProduct(2, "Eggs", entities.Piece, 40, 48,
		decimal.NewFromInt(10000), decimal.NewFromInt(2),
		decimal.NewFromInt(50), decimal.NewFromInt(2), entities.Cooperation)
	milk, _ := entities.NewProduct(3, "Milk", entities.Volume, 120, 48,
		decimal.NewFromInt(50000), decimal.NewFromInt(500),
		decimal.NewFromInt(5000), decimal.NewFromInt(500), entities.Cooperation)
	catalogRepo.LoadProducts([]*entities.Product{carrots, eggs, milk})

	twenty := 20
	depotRepo.LoadDepots([]*entities.Depot{
		{ID: 1, Name: "North", Active: true, Capacity: &twenty},
		{ID: 2, Name: "South", Active: true},
	})

	season, _ := entities.NewRequisitionConfig(1, "Season 2025/26",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		100000)
	configRepo.LoadConfigs([]*entities.RequisitionConfig{season})
}
