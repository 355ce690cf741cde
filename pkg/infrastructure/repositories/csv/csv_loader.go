package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

// Loader handles loading catalog and season data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadProducts loads the product catalog from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readAll(filename, "products")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "name", "unit", "msrp", "frequency", "quantity", "quantity_min", "quantity_max", "quantity_step", "category_type", "active"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var products []*entities.Product
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}

		products = append(products, product)
	}

	return products, nil
}

// LoadDepots loads pickup locations from a CSV file
func (l *Loader) LoadDepots(filename string) ([]*entities.Depot, error) {
	records, err := readAll(filename, "depots")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "name", "capacity", "active"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("depots CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var depots []*entities.Depot
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("depots CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		depot, err := parseDepot(record)
		if err != nil {
			return nil, fmt.Errorf("depots CSV row %d: %w", i+2, err)
		}

		depots = append(depots, depot)
	}

	return depots, nil
}

// LoadConfigs loads season configurations from a CSV file
func (l *Loader) LoadConfigs(filename string) ([]*entities.RequisitionConfig, error) {
	records, err := readAll(filename, "configs")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "name", "start_order", "start_bidding_round", "end_bidding_round", "valid_from", "valid_to", "budget"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("configs CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var configs []*entities.RequisitionConfig
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("configs CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		config, err := parseConfig(record)
		if err != nil {
			return nil, fmt.Errorf("configs CSV row %d: %w", i+2, err)
		}

		configs = append(configs, config)
	}

	return configs, nil
}

// LoadOrders loads saved orders from a CSV file. Order items are stored
// inline as semicolon-separated productID:value pairs.
func (l *Loader) LoadOrders(filename string) ([]*entities.SavedOrder, error) {
	records, err := readAll(filename, "orders")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "user_id", "config_id", "depot_id", "offer", "category", "valid_from", "valid_to", "items"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("orders CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var orders []*entities.SavedOrder
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("orders CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		order, err := parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// Helper functions for parsing CSV records

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseProduct(record []string) (*entities.Product, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %s", record[0])
	}

	unit, err := entities.ParseUnit(record[2])
	if err != nil {
		return nil, err
	}

	msrp, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid msrp: %s", record[3])
	}

	frequency, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid frequency: %s", record[4])
	}

	quantities := make([]decimal.Decimal, 4)
	for i, column := range []string{"quantity", "quantity_min", "quantity_max", "quantity_step"} {
		quantities[i], err = decimal.NewFromString(record[5+i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", column, record[5+i])
		}
	}

	categoryType, err := entities.ParseProductCategoryType(record[9])
	if err != nil {
		return nil, err
	}

	product, err := entities.NewProduct(
		entities.ProductID(id), record[1], unit, msrp, frequency,
		quantities[0], quantities[1], quantities[2], quantities[3],
		categoryType,
	)
	if err != nil {
		return nil, err
	}

	active, err := strconv.ParseBool(record[10])
	if err != nil {
		return nil, fmt.Errorf("invalid active flag: %s", record[10])
	}
	product.Active = active

	return product, nil
}

func parseDepot(record []string) (*entities.Depot, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %s", record[0])
	}

	depot := &entities.Depot{
		ID:   entities.DepotID(id),
		Name: record[1],
	}

	// Empty capacity means unlimited
	if record[2] != "" {
		capacity, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("invalid capacity: %s", record[2])
		}
		depot.Capacity = &capacity
	}

	active, err := strconv.ParseBool(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid active flag: %s", record[3])
	}
	depot.Active = active

	return depot, nil
}

func parseConfig(record []string) (*entities.RequisitionConfig, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %s", record[0])
	}

	dates := make([]time.Time, 5)
	for i, column := range []string{"start_order", "start_bidding_round", "end_bidding_round", "valid_from", "valid_to"} {
		dates[i], err = time.Parse(time.RFC3339, record[2+i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", column, record[2+i])
		}
	}

	budget, err := strconv.ParseInt(record[7], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid budget: %s", record[7])
	}

	return entities.NewRequisitionConfig(
		entities.ConfigID(id), record[1],
		dates[0], dates[1], dates[2], dates[3], dates[4],
		budget,
	)
}

func parseOrder(record []string) (*entities.SavedOrder, error) {
	ids := make([]int64, 4)
	for i, column := range []string{"id", "user_id", "config_id", "depot_id"} {
		var err error
		ids[i], err = strconv.ParseInt(record[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", column, record[i])
		}
	}

	offer, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid offer: %s", record[4])
	}

	category, err := entities.ParseUserCategory(record[5])
	if err != nil {
		return nil, err
	}

	validFrom, err := time.Parse(time.RFC3339, record[6])
	if err != nil {
		return nil, fmt.Errorf("invalid valid_from: %s", record[6])
	}

	var validTo time.Time
	if record[7] != "" {
		validTo, err = time.Parse(time.RFC3339, record[7])
		if err != nil {
			return nil, fmt.Errorf("invalid valid_to: %s", record[7])
		}
	}

	items, err := ParseOrderItems(record[8])
	if err != nil {
		return nil, err
	}

	return &entities.SavedOrder{
		ID:                  entities.OrderID(ids[0]),
		UserID:              entities.UserID(ids[1]),
		RequisitionConfigID: entities.ConfigID(ids[2]),
		DepotID:             entities.DepotID(ids[3]),
		Offer:               offer,
		Category:            category,
		ValidFrom:           validFrom,
		ValidTo:             validTo,
		OrderItems:          items,
	}, nil
}

// ParseOrderItems parses "1:500;2:4" into order items
func ParseOrderItems(raw string) ([]entities.OrderItem, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var items []entities.OrderItem
	for _, pair := range strings.Split(raw, ";") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid item %q (expected productID:value)", pair)
		}

		productID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid item product id: %s", parts[0])
		}
		value, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid item value: %s", parts[1])
		}

		items = append(items, entities.OrderItem{
			ProductID: entities.ProductID(productID),
			Value:     value,
		})
	}

	return items, nil
}
