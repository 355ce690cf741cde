package repositories

import "github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"

// ConfigRepository provides access to season configurations
type ConfigRepository interface {
	GetConfig(id entities.ConfigID) (*entities.RequisitionConfig, error)
	GetAllConfigs() ([]*entities.RequisitionConfig, error)
	LoadConfigs(configs []*entities.RequisitionConfig) error
}
