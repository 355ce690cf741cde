package memory

import (
	"fmt"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/repositories"
)

// ConfigRepository provides in-memory season configuration storage
type ConfigRepository struct {
	configs map[entities.ConfigID]entities.RequisitionConfig
}

// NewConfigRepository creates a new in-memory config repository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{
		configs: make(map[entities.ConfigID]entities.RequisitionConfig),
	}
}

// Verify interface compliance
var _ repositories.ConfigRepository = (*ConfigRepository)(nil)

// GetConfig returns the season configuration for an id
func (r *ConfigRepository) GetConfig(id entities.ConfigID) (*entities.RequisitionConfig, error) {
	config, exists := r.configs[id]
	if !exists {
		return nil, fmt.Errorf("season configuration not found: %d", id)
	}
	return &config, nil
}

// GetAllConfigs returns all season configurations
func (r *ConfigRepository) GetAllConfigs() ([]*entities.RequisitionConfig, error) {
	var configs []*entities.RequisitionConfig
	for id := range r.configs {
		config := r.configs[id]
		configs = append(configs, &config)
	}
	return configs, nil
}

// LoadConfigs loads season configurations into the repository
func (r *ConfigRepository) LoadConfigs(configs []*entities.RequisitionConfig) error {
	for _, config := range configs {
		if _, exists := r.configs[config.ID]; exists {
			return fmt.Errorf("duplicate config id: %d", config.ID)
		}
		r.configs[config.ID] = *config
	}
	return nil
}
