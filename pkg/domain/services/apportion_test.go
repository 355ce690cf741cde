package services

import (
	"math/rand"
	"testing"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

func TestSplitTotal_ProportionalExample(t *testing.T) {
	apportioner := NewApportioner(rand.New(rand.NewSource(42)))
	shares := []DepotShare{
		{DepotID: 1, Weight: 1},
		{DepotID: 2, Weight: 2},
		{DepotID: 3, Weight: 3},
	}

	result := apportioner.SplitTotal(100, shares)

	expected := map[entities.DepotID]int64{1: 17, 2: 33, 3: 50}
	for depotID, want := range expected {
		if result[depotID] != want {
			t.Errorf("depot %d: got %d, expected %d", depotID, result[depotID], want)
		}
	}
}

func TestSplitTotal_SumInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	apportioner := NewApportioner(rng)

	for trial := 0; trial < 50; trial++ {
		total := rng.Int63n(10000)
		shares := make([]DepotShare, 1+rng.Intn(8))
		anyPositive := false
		for i := range shares {
			shares[i] = DepotShare{DepotID: entities.DepotID(i + 1), Weight: rng.Int63n(20)}
			if shares[i].Weight > 0 {
				anyPositive = true
			}
		}
		if !anyPositive {
			continue
		}

		result := apportioner.SplitTotal(total, shares)

		var sum int64
		for _, v := range result {
			sum += v
		}
		if sum != total {
			t.Fatalf("trial %d: shares sum to %d, expected %d (shares %v)", trial, sum, total, shares)
		}
	}
}

func TestSplitTotal_AllZeroWeights(t *testing.T) {
	apportioner := NewApportioner(nil)
	shares := []DepotShare{
		{DepotID: 1, Weight: 0},
		{DepotID: 2, Weight: 0},
	}

	result := apportioner.SplitTotal(100, shares)

	for depotID, v := range result {
		if v != 0 {
			t.Errorf("depot %d: got %d, expected 0 when no recipient has weight", depotID, v)
		}
	}
}

func TestSplitTotal_ZeroWeightRecipientGetsNothing(t *testing.T) {
	apportioner := NewApportioner(nil)
	shares := []DepotShare{
		{DepotID: 1, Weight: 5},
		{DepotID: 2, Weight: 0},
	}

	result := apportioner.SplitTotal(17, shares)

	if result[1] != 17 {
		t.Errorf("depot 1: got %d, expected the whole total of 17", result[1])
	}
	if result[2] != 0 {
		t.Errorf("depot 2: got %d, expected 0 for zero weight", result[2])
	}
}

func TestSplitTotal_SingleRecipient(t *testing.T) {
	apportioner := NewApportioner(nil)

	result := apportioner.SplitTotal(42, []DepotShare{{DepotID: 9, Weight: 3}})

	if result[9] != 42 {
		t.Errorf("got %d, expected the single recipient to receive everything", result[9])
	}
}

func TestSplitTotal_ZeroTotal(t *testing.T) {
	apportioner := NewApportioner(nil)

	result := apportioner.SplitTotal(0, []DepotShare{{DepotID: 1, Weight: 1}, {DepotID: 2, Weight: 1}})

	for depotID, v := range result {
		if v != 0 {
			t.Errorf("depot %d: got %d, expected 0 for zero total", depotID, v)
		}
	}
}

func TestSplitTotal_EqualWeightsAlwaysSumExactly(t *testing.T) {
	// Three equal recipients sharing 100: two get 33, one gets 34, and
	// which one is decided by the seeded source.
	apportioner := NewApportioner(rand.New(rand.NewSource(1)))
	shares := []DepotShare{
		{DepotID: 1, Weight: 1},
		{DepotID: 2, Weight: 1},
		{DepotID: 3, Weight: 1},
	}

	result := apportioner.SplitTotal(100, shares)

	var sum int64
	countOf34 := 0
	for _, v := range result {
		sum += v
		if v == 34 {
			countOf34++
		} else if v != 33 {
			t.Errorf("unexpected share %d, expected 33 or 34", v)
		}
	}
	if sum != 100 {
		t.Errorf("shares sum to %d, expected 100", sum)
	}
	if countOf34 != 1 {
		t.Errorf("got %d recipients with 34, expected exactly 1", countOf34)
	}
}
