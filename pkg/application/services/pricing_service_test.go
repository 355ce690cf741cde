package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/application/dto"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	domainservices "github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/services"
)

func loadMemberChain(t *testing.T, f *appFixture) {
	t.Helper()
	f.loadOrder(t, entities.SavedOrder{
		ID:      1,
		UserID:  7,
		DepotID: 2,
		Offer:   13,
		OrderItems: []entities.OrderItem{
			{ProductID: 1, Value: decimal.NewFromInt(500)},
			{ProductID: 2, Value: decimal.NewFromInt(4)},
		},
		Category: entities.Cat130,
		ValidTo:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	f.loadOrder(t, entities.SavedOrder{
		ID:      2,
		UserID:  7,
		DepotID: 2,
		Offer:   15,
		OrderItems: []entities.OrderItem{
			{ProductID: 2, Value: decimal.NewFromInt(4)},
		},
		Category:  entities.Cat130,
		ValidFrom: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
}

func priceChain(t *testing.T, f *appFixture, now time.Time) *dto.PricedChain {
	t.Helper()
	service := NewPricingService(domainservices.DefaultPricingConfig(), nil)
	chain, err := service.PriceMemberChain(context.Background(), 7, 1, now,
		f.orders, f.catalog, f.depots, f.configs, f.stats)
	require.NoError(t, err)
	return chain
}

func TestPriceMemberChain(t *testing.T) {
	f := newAppFixture(t)
	loadMemberChain(t, f)

	chain := priceChain(t, f, orderPhaseNow)

	assert.Equal(t, "ORDER_PHASE", chain.Phase)
	require.Len(t, chain.Orders, 2)

	first := chain.Orders[0]
	assert.Equal(t, entities.OrderID(1), first.OrderID)
	assert.Equal(t, 12, first.Months)
	assert.Equal(t, int64(13), first.RawMsrp.Monthly.Total)
	assert.Equal(t, int64(13), first.EffectiveMsrp.Monthly.Total)
	assert.Equal(t, int64(5), first.EffectiveMsrp.Monthly.Selfgrown)

	require.Len(t, first.Items, 2)
	assert.Equal(t, "Carrots", first.Items[0].Name)
	assert.Equal(t, int64(5), first.Items[0].MonthlyMsrp)
	assert.Equal(t, "Eggs", first.Items[1].Name)
	assert.Equal(t, int64(9), first.Items[1].MonthlyMsrp)

	// The amendment drops the carrots but keeps paying for them: ten
	// remaining months over the union of both orders.
	second := chain.Orders[1]
	assert.Equal(t, entities.OrderID(2), second.OrderID)
	assert.Equal(t, 10, second.Months)
	assert.Equal(t, int64(10), second.RawMsrp.Monthly.Total)
	assert.Equal(t, int64(15), second.EffectiveMsrp.Monthly.Total)
}

func TestPriceMemberChain_DeliveryProgressDiscountsFutureLinks(t *testing.T) {
	f := newAppFixture(t)
	loadMemberChain(t, f)

	// another member still expecting carrots keeps the product in
	// distribution, half of which has already happened
	f.loadOrder(t, entities.SavedOrder{
		ID:      3,
		UserID:  9,
		DepotID: 2,
		Offer:   10,
		OrderItems: []entities.OrderItem{
			{ProductID: 1, Value: decimal.NewFromInt(500)},
		},
		Category: entities.Cat130,
	})
	f.stats.RecordDelivery(1, 1, 2, 1500)

	// the first link is already running, the amendment starts in July
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	chain := priceChain(t, f, now)

	assert.Equal(t, "SEASON_PHASE", chain.Phase)
	require.Len(t, chain.Orders, 2)

	// committed at full weight, the running link keeps its price
	assert.Equal(t, int64(13), chain.Orders[0].EffectiveMsrp.Monthly.Total)

	// the future link only pays half for the half-delivered carrots
	second := chain.Orders[1]
	assert.Equal(t, int64(13), second.EffectiveMsrp.Monthly.Total)
	assert.Equal(t, int64(5), second.EffectiveMsrp.Monthly.Selfgrown)
}

func TestPriceMemberChain_EmptyChain(t *testing.T) {
	f := newAppFixture(t)

	chain := priceChain(t, f, orderPhaseNow)
	assert.Empty(t, chain.Orders)
}
