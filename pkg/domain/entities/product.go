package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID identifies a catalog product
type ProductID int64

// Unit is the measurement unit a product is ordered in. Weight and Volume
// quantities are stored in grams and milliliters; Piece quantities count
// items.
type Unit int

const (
	Weight Unit = iota
	Piece
	Volume
)

// String method for Unit enum
func (u Unit) String() string {
	switch u {
	case Weight:
		return "WEIGHT"
	case Piece:
		return "PIECE"
	case Volume:
		return "VOLUME"
	default:
		return "Unknown"
	}
}

// ParseUnit converts a stored unit name back into a Unit
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "WEIGHT":
		return Weight, nil
	case "PIECE":
		return Piece, nil
	case "VOLUME":
		return Volume, nil
	default:
		return 0, fmt.Errorf("unknown unit %q", s)
	}
}

// ProductCategoryType tells whether the cooperative grows a product itself
// or buys it in from partner farms. The split matters for pricing: the
// selfgrown share of a contribution is committed to the production plan
// and may never shrink once a season has started.
type ProductCategoryType int

const (
	Selfgrown ProductCategoryType = iota
	Cooperation
)

// String method for ProductCategoryType enum
func (t ProductCategoryType) String() string {
	switch t {
	case Selfgrown:
		return "SELFGROWN"
	case Cooperation:
		return "COOPERATION"
	default:
		return "Unknown"
	}
}

// ParseProductCategoryType converts a stored category type name back into
// a ProductCategoryType
func ParseProductCategoryType(s string) (ProductCategoryType, error) {
	switch s {
	case "SELFGROWN":
		return Selfgrown, nil
	case "COOPERATION":
		return Cooperation, nil
	default:
		return 0, fmt.Errorf("unknown product category type %q", s)
	}
}

// Product is one catalog entry members can order.
//
// Msrp is the catalog price in minor currency units, per 100 pieces for
// Piece products and per kilogram or liter otherwise. Frequency is the
// planned number of deliveries per season. Quantity is the total amount
// available over the whole season; QuantityMin, QuantityMax and
// QuantityStep constrain a single member's per-cycle order value.
type Product struct {
	ID                  ProductID
	Name                string
	Unit                Unit
	Active              bool
	Msrp                int64
	Frequency           int
	Quantity            decimal.Decimal
	QuantityMin         decimal.Decimal
	QuantityMax         decimal.Decimal
	QuantityStep        decimal.Decimal
	ProductCategoryType ProductCategoryType
}

// NewProduct creates a validated, active Product
func NewProduct(
	id ProductID,
	name string,
	unit Unit,
	msrp int64,
	frequency int,
	quantity, quantityMin, quantityMax, quantityStep decimal.Decimal,
	categoryType ProductCategoryType,
) (*Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("product id must be positive, got %d", id)
	}
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if msrp < 0 {
		return nil, fmt.Errorf("msrp cannot be negative, got %d", msrp)
	}
	if frequency < 0 {
		return nil, fmt.Errorf("frequency cannot be negative, got %d", frequency)
	}
	if quantityMin.GreaterThan(quantityMax) {
		return nil, fmt.Errorf("quantityMin %s exceeds quantityMax %s", quantityMin, quantityMax)
	}
	if quantityStep.Sign() <= 0 {
		return nil, fmt.Errorf("quantityStep must be positive, got %s", quantityStep)
	}

	return &Product{
		ID:                  id,
		Name:                name,
		Unit:                unit,
		Active:              true,
		Msrp:                msrp,
		Frequency:           frequency,
		Quantity:            quantity,
		QuantityMin:         quantityMin,
		QuantityMax:         quantityMax,
		QuantityStep:        quantityStep,
		ProductCategoryType: categoryType,
	}, nil
}

// ProductsByID is the catalog snapshot keyed by product id
type ProductsByID map[ProductID]Product
