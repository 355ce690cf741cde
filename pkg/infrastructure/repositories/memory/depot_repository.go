package memory

import (
	"fmt"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/repositories"
)

// DepotRepository provides in-memory depot storage
type DepotRepository struct {
	depots []entities.Depot
	index  map[entities.DepotID]int
}

// NewDepotRepository creates a new in-memory depot repository
func NewDepotRepository(expectedDepots int) *DepotRepository {
	return &DepotRepository{
		depots: make([]entities.Depot, 0, expectedDepots),
		index:  make(map[entities.DepotID]int, expectedDepots),
	}
}

// Verify interface compliance
var _ repositories.DepotRepository = (*DepotRepository)(nil)

// LoadDepots loads depots into the repository
func (r *DepotRepository) LoadDepots(depots []*entities.Depot) error {
	for _, depot := range depots {
		if _, exists := r.index[depot.ID]; exists {
			return fmt.Errorf("duplicate depot id: %d", depot.ID)
		}
		r.index[depot.ID] = len(r.depots)
		r.depots = append(r.depots, *depot)
	}
	return nil
}

// GetDepot returns the depot for an id
func (r *DepotRepository) GetDepot(id entities.DepotID) (*entities.Depot, error) {
	index, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("depot not found: %d", id)
	}
	return &r.depots[index], nil
}

// GetAllDepots returns all depots
func (r *DepotRepository) GetAllDepots() ([]*entities.Depot, error) {
	var depots []*entities.Depot
	for i := range r.depots {
		depots = append(depots, &r.depots[i])
	}
	return depots, nil
}
