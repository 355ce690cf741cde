package repositories

import "github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"

// CatalogRepository provides access to the season's product catalog
type CatalogRepository interface {
	GetProduct(id entities.ProductID) (*entities.Product, error)
	GetAllProducts() ([]*entities.Product, error)
	GetProductsByID() (entities.ProductsByID, error)
	LoadProducts(products []*entities.Product) error
}

// DepotRepository provides access to pickup locations
type DepotRepository interface {
	GetDepot(id entities.DepotID) (*entities.Depot, error)
	GetAllDepots() ([]*entities.Depot, error)
	LoadDepots(depots []*entities.Depot) error
}
