package memory

import (
	"fmt"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/repositories"
)

// CatalogRepository provides in-memory product storage
type CatalogRepository struct {
	products []entities.Product
	index    map[entities.ProductID]int
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository(expectedProducts int) *CatalogRepository {
	return &CatalogRepository{
		products: make([]entities.Product, 0, expectedProducts),
		index:    make(map[entities.ProductID]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadProducts loads products into the repository
func (r *CatalogRepository) LoadProducts(products []*entities.Product) error {
	for _, product := range products {
		if _, exists := r.index[product.ID]; exists {
			return fmt.Errorf("duplicate product id: %d", product.ID)
		}
		r.AddProduct(*product)
	}
	return nil
}

// AddProduct adds a product to the repository
func (r *CatalogRepository) AddProduct(product entities.Product) {
	r.index[product.ID] = len(r.products)
	r.products = append(r.products, product)
}

// GetProduct returns the catalog entry for a product id
func (r *CatalogRepository) GetProduct(id entities.ProductID) (*entities.Product, error) {
	index, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("product not found: %d", id)
	}
	return &r.products[index], nil
}

// GetAllProducts returns all products
func (r *CatalogRepository) GetAllProducts() ([]*entities.Product, error) {
	var products []*entities.Product
	for i := range r.products {
		products = append(products, &r.products[i])
	}
	return products, nil
}

// GetProductsByID returns the catalog as a snapshot map
func (r *CatalogRepository) GetProductsByID() (entities.ProductsByID, error) {
	snapshot := make(entities.ProductsByID, len(r.products))
	for _, product := range r.products {
		snapshot[product.ID] = product
	}
	return snapshot, nil
}
