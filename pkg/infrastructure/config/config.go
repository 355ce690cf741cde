package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/services"
)

// File is the on-disk pricing configuration. All rate and limit fields
// are decimal strings so the YAML round-trips without float noise.
type File struct {
	Rates map[string]RateEntry `yaml:"rates"`

	UnitConversion map[string]int64 `yaml:"unit_conversion"`

	OfferLimit       string `yaml:"offer_limit"`
	OfferReasonLimit string `yaml:"offer_reason_limit"`

	NeedsCategoryReason []string `yaml:"needs_category_reason"`
	AvailableCategories []string `yaml:"available_categories"`

	ShipmentRounding map[string]int64 `yaml:"shipment_rounding"`
}

// RateEntry is one contribution tier in the YAML file
type RateEntry struct {
	Relative string `yaml:"relative"`
	Absolute int64  `yaml:"absolute"`
}

// LoadPricingConfig reads a YAML pricing configuration. Fields left out
// of the file keep their defaults, so a partial file only overrides what
// it names.
func LoadPricingConfig(path string) (services.PricingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return services.PricingConfig{}, fmt.Errorf("reading pricing config %s: %w", path, err)
	}
	return parsePricingConfig(data)
}

func parsePricingConfig(data []byte) (services.PricingConfig, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return services.PricingConfig{}, fmt.Errorf("parsing pricing config: %w", err)
	}

	cfg := services.DefaultPricingConfig()

	if len(file.Rates) > 0 {
		cfg.Rates = make(map[entities.UserCategory]services.CategoryRate, len(file.Rates))
		for name, entry := range file.Rates {
			category, err := entities.ParseUserCategory(name)
			if err != nil {
				return services.PricingConfig{}, err
			}
			relative, err := decimal.NewFromString(entry.Relative)
			if err != nil {
				return services.PricingConfig{}, fmt.Errorf("rate %s: invalid relative %q", name, entry.Relative)
			}
			cfg.Rates[category] = services.CategoryRate{Relative: relative, Absolute: entry.Absolute}
		}
	}

	if len(file.UnitConversion) > 0 {
		cfg.UnitConversion = make(map[entities.Unit]int64, len(file.UnitConversion))
		for name, conversion := range file.UnitConversion {
			unit, err := entities.ParseUnit(name)
			if err != nil {
				return services.PricingConfig{}, err
			}
			cfg.UnitConversion[unit] = conversion
		}
	}

	if file.OfferLimit != "" {
		limit, err := decimal.NewFromString(file.OfferLimit)
		if err != nil {
			return services.PricingConfig{}, fmt.Errorf("invalid offer_limit %q", file.OfferLimit)
		}
		cfg.OfferLimit = limit
	}
	if file.OfferReasonLimit != "" {
		limit, err := decimal.NewFromString(file.OfferReasonLimit)
		if err != nil {
			return services.PricingConfig{}, fmt.Errorf("invalid offer_reason_limit %q", file.OfferReasonLimit)
		}
		cfg.OfferReasonLimit = limit
	}

	if file.NeedsCategoryReason != nil {
		categories, err := parseCategories(file.NeedsCategoryReason)
		if err != nil {
			return services.PricingConfig{}, err
		}
		cfg.NeedsCategoryReason = categories
	}
	if file.AvailableCategories != nil {
		categories, err := parseCategories(file.AvailableCategories)
		if err != nil {
			return services.PricingConfig{}, err
		}
		cfg.AvailableCategories = categories
	}

	if len(file.ShipmentRounding) > 0 {
		cfg.ShipmentRounding = make(map[entities.Unit]int64, len(file.ShipmentRounding))
		for name, step := range file.ShipmentRounding {
			unit, err := entities.ParseUnit(name)
			if err != nil {
				return services.PricingConfig{}, err
			}
			cfg.ShipmentRounding[unit] = step
		}
	}

	if err := cfg.Validate(); err != nil {
		return services.PricingConfig{}, fmt.Errorf("pricing config invalid: %w", err)
	}
	return cfg, nil
}

func parseCategories(names []string) ([]entities.UserCategory, error) {
	categories := make([]entities.UserCategory, 0, len(names))
	for _, name := range names {
		category, err := entities.ParseUserCategory(name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}
