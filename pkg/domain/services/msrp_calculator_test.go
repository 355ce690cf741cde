package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

func testCatalog() entities.ProductsByID {
	carrots, _ := entities.NewProduct(
		1, "Carrots", entities.Weight, 250, 30,
		decimal.NewFromInt(500),
		decimal.NewFromInt(500),
		decimal.NewFromInt(5000),
		decimal.NewFromInt(500),
		entities.Selfgrown,
	)
	eggs, _ := entities.NewProduct(
		2, "Eggs", entities.Piece, 40, 48,
		decimal.NewFromInt(600),
		decimal.NewFromInt(4),
		decimal.NewFromInt(20),
		decimal.NewFromInt(2),
		entities.Cooperation,
	)
	milk, _ := entities.NewProduct(
		3, "Milk", entities.Volume, 120, 48,
		decimal.NewFromInt(200),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(4000),
		decimal.NewFromInt(1000),
		entities.Cooperation,
	)
	return entities.ProductsByID{
		carrots.ID: *carrots,
		eggs.ID:    *eggs,
		milk.ID:    *milk,
	}
}

func TestBaseMsrp_WeightProduct(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	catalog := testCatalog()

	// 30 deliveries of 500g at 250 per kilogram: 30*250*500/100000 = 37.5
	base, err := calc.BaseMsrp(
		entities.OrderItem{ProductID: 1, Value: decimal.NewFromInt(500)},
		catalog[1],
		decimal.NewFromInt(1),
	)
	if err != nil {
		t.Fatalf("BaseMsrp failed: %v", err)
	}
	if !base.Equal(decimal.NewFromFloat(37.5)) {
		t.Errorf("got base %s, expected 37.5", base)
	}
}

func TestBaseMsrp_PieceProduct(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	catalog := testCatalog()

	// 48 deliveries of 4 eggs at 40 per 100 pieces: 48*40*4/100 = 76.8
	base, err := calc.BaseMsrp(
		entities.OrderItem{ProductID: 2, Value: decimal.NewFromInt(4)},
		catalog[2],
		decimal.NewFromInt(1),
	)
	if err != nil {
		t.Fatalf("BaseMsrp failed: %v", err)
	}
	if !base.Equal(decimal.NewFromFloat(76.8)) {
		t.Errorf("got base %s, expected 76.8", base)
	}
}

func TestBaseMsrp_WeightScalesContribution(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	catalog := testCatalog()
	item := entities.OrderItem{ProductID: 1, Value: decimal.NewFromInt(500)}

	full, _ := calc.BaseMsrp(item, catalog[1], decimal.NewFromInt(1))
	half, _ := calc.BaseMsrp(item, catalog[1], decimal.NewFromFloat(0.5))

	if !half.Mul(decimal.NewFromInt(2)).Equal(full) {
		t.Errorf("half weight %s is not half of full weight %s", half, full)
	}
}

func TestAdjustMsrp_RoundsUp(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())

	// 37.5 over 12 months is 3.125, always charged as 4
	monthly, err := calc.AdjustMsrp(decimal.NewFromFloat(37.5), entities.Cat100, 12)
	if err != nil {
		t.Fatalf("AdjustMsrp failed: %v", err)
	}
	if monthly != 4 {
		t.Errorf("got monthly %d, expected 4 (rounded up)", monthly)
	}
}

func TestAdjustMsrp_CategoryMultiplier(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	base := decimal.NewFromInt(1200)

	tests := []struct {
		category entities.UserCategory
		expected int64
	}{
		{entities.Cat100, 100},
		{entities.Cat115, 115},
		{entities.Cat130, 130},
	}

	for _, tt := range tests {
		monthly, err := calc.AdjustMsrp(base, tt.category, 12)
		if err != nil {
			t.Fatalf("AdjustMsrp(%s) failed: %v", tt.category, err)
		}
		if monthly != tt.expected {
			t.Errorf("%s: got %d, expected %d", tt.category, monthly, tt.expected)
		}
	}
}

func TestAdjustMsrp_NonPositiveBaseIsZero(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())

	for _, base := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		monthly, err := calc.AdjustMsrp(base, entities.Cat130, 12)
		if err != nil {
			t.Fatalf("AdjustMsrp failed: %v", err)
		}
		if monthly != 0 {
			t.Errorf("base %s: got %d, expected 0", base, monthly)
		}
	}
}

func TestGetMsrp_SplitsSelfgrownAndCooperation(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	catalog := testCatalog()

	items := []entities.OrderItem{
		{ProductID: 1, Value: decimal.NewFromInt(500)}, // selfgrown, base 37.5
		{ProductID: 2, Value: decimal.NewFromInt(4)},   // cooperation, base 76.8
	}

	msrp, err := calc.GetMsrp(entities.Cat100, items, catalog, 12, nil)
	if err != nil {
		t.Fatalf("GetMsrp failed: %v", err)
	}

	// total: ceil(114.3/12) = 10, selfgrown: ceil(37.5/12) = 4
	if msrp.Monthly.Total != 10 {
		t.Errorf("got monthly total %d, expected 10", msrp.Monthly.Total)
	}
	if msrp.Monthly.Selfgrown != 4 {
		t.Errorf("got monthly selfgrown %d, expected 4", msrp.Monthly.Selfgrown)
	}
	if msrp.Monthly.Cooperation != 6 {
		t.Errorf("got monthly cooperation %d, expected 6", msrp.Monthly.Cooperation)
	}
	if msrp.Monthly.Total != msrp.Monthly.Selfgrown+msrp.Monthly.Cooperation {
		t.Error("monthly total must equal selfgrown plus cooperation")
	}
}

func TestGetMsrp_YearlyIsMonthlyTimesMonths(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	catalog := testCatalog()
	items := []entities.OrderItem{{ProductID: 2, Value: decimal.NewFromInt(6)}}

	msrp, err := calc.GetMsrp(entities.Cat115, items, catalog, 7, nil)
	if err != nil {
		t.Fatalf("GetMsrp failed: %v", err)
	}

	if msrp.Months != 7 {
		t.Errorf("got months %d, expected 7", msrp.Months)
	}
	if msrp.Yearly.Total != msrp.Monthly.Total*7 {
		t.Errorf("yearly total %d is not monthly %d times 7", msrp.Yearly.Total, msrp.Monthly.Total)
	}
}

func TestGetMsrp_MonthsClamped(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	catalog := testCatalog()
	items := []entities.OrderItem{{ProductID: 1, Value: decimal.NewFromInt(500)}}

	tooMany, err := calc.GetMsrp(entities.Cat100, items, catalog, 15, nil)
	if err != nil {
		t.Fatalf("GetMsrp failed: %v", err)
	}
	if tooMany.Months != 12 {
		t.Errorf("got months %d, expected clamp to 12", tooMany.Months)
	}

	tooFew, err := calc.GetMsrp(entities.Cat100, items, catalog, 0, nil)
	if err != nil {
		t.Fatalf("GetMsrp failed: %v", err)
	}
	if tooFew.Months != 1 {
		t.Errorf("got months %d, expected clamp to 1", tooFew.Months)
	}
}

func TestGetMsrp_UnknownProductFails(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	items := []entities.OrderItem{{ProductID: 99, Value: decimal.NewFromInt(1)}}

	_, err := calc.GetMsrp(entities.Cat100, items, testCatalog(), 12, nil)
	if err == nil {
		t.Error("expected error for product missing from catalog snapshot")
	}
}

func TestGetMsrp_FullyDeliveredProductIsFree(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	catalog := testCatalog()
	items := []entities.OrderItem{{ProductID: 1, Value: decimal.NewFromInt(500)}}
	weights := entities.ProductMsrpWeights{1: decimal.Zero}

	msrp, err := calc.GetMsrp(entities.Cat100, items, catalog, 12, weights)
	if err != nil {
		t.Fatalf("GetMsrp failed: %v", err)
	}
	if msrp.Monthly.Total != 0 {
		t.Errorf("got monthly total %d, expected 0 for zero-weighted product", msrp.Monthly.Total)
	}
}

func TestOrderItemAdjustedMonthlyMsrp(t *testing.T) {
	calc := NewMsrpCalculator(DefaultPricingConfig())
	catalog := testCatalog()

	monthly, err := calc.OrderItemAdjustedMonthlyMsrp(
		entities.Cat100,
		entities.OrderItem{ProductID: 1, Value: decimal.NewFromInt(500)},
		catalog, 12, nil,
	)
	if err != nil {
		t.Fatalf("OrderItemAdjustedMonthlyMsrp failed: %v", err)
	}
	if monthly != 4 {
		t.Errorf("got %d, expected 4", monthly)
	}
}
