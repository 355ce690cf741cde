package services

import (
	"math/rand"
	"sort"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// DepotShare is one weighted recipient in an apportionment.
type DepotShare struct {
	DepotID entities.DepotID
	Weight  int64
}

// Apportioner distributes integer totals over weighted recipients using
// the largest-remainder method. Tie-breaking between equal remainders is
// randomized through the injected source so callers can seed it for
// reproducible tests.
type Apportioner struct {
	rng *rand.Rand
}

// NewApportioner builds an Apportioner. A nil source falls back to a
// fixed-seed generator.
func NewApportioner(rng *rand.Rand) *Apportioner {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Apportioner{rng: rng}
}

// SplitTotal divides total into integer shares proportional to the given
// weights. The shares always sum to total exactly. Recipients whose
// weight is zero receive zero. When every weight is zero, every share is
// zero and the total is not distributed.
//
// Each recipient first gets the floor of its proportional share; the
// leftover units go to the recipients with the largest fractional
// remainders. Remainders are compared exactly as total*weight mod
// weightSum, which avoids floating point entirely.
func (a *Apportioner) SplitTotal(total int64, shares []DepotShare) map[entities.DepotID]int64 {
	result := make(map[entities.DepotID]int64, len(shares))
	for _, s := range shares {
		result[s.DepotID] = 0
	}
	if total <= 0 || len(shares) == 0 {
		return result
	}

	var weightSum int64
	for _, s := range shares {
		if s.Weight > 0 {
			weightSum += s.Weight
		}
	}
	if weightSum == 0 {
		return result
	}

	type allocation struct {
		depotID   entities.DepotID
		remainder int64
	}
	allocations := make([]allocation, 0, len(shares))

	var distributed int64
	for _, s := range shares {
		if s.Weight <= 0 {
			continue
		}
		floor := total * s.Weight / weightSum
		result[s.DepotID] = floor
		distributed += floor
		allocations = append(allocations, allocation{
			depotID:   s.DepotID,
			remainder: total * s.Weight % weightSum,
		})
	}

	leftover := total - distributed
	if leftover <= 0 {
		return result
	}

	// Shuffle before the stable sort so recipients with equal
	// remainders receive the leftover units in random order.
	a.rng.Shuffle(len(allocations), func(i, j int) {
		allocations[i], allocations[j] = allocations[j], allocations[i]
	})
	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].remainder > allocations[j].remainder
	})

	for i := int64(0); i < leftover && int(i) < len(allocations); i++ {
		result[allocations[i].depotID]++
	}
	return result
}
