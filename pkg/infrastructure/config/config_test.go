package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lebenswurzel/solawi-bedarf-sub000/pkg/domain/entities"
)

func TestParsePricingConfig_Overrides(t *testing.T) {
	raw := []byte(`
rates:
  CAT100:
    relative: "1.0"
    absolute: 0
  CAT115:
    relative: "1.2"
    absolute: 5
offer_limit: "0.5"
needs_category_reason:
  - CAT100
available_categories:
  - CAT115
  - CAT100
`)

	cfg, err := parsePricingConfig(raw)
	require.NoError(t, err)

	rate, ok := cfg.Rates[entities.Cat115]
	require.True(t, ok)
	assert.True(t, rate.Relative.Equal(decimal.NewFromFloat(1.2)))
	assert.Equal(t, int64(5), rate.Absolute)

	assert.True(t, cfg.OfferLimit.Equal(decimal.NewFromFloat(0.5)))
	// Untouched fields keep their defaults
	assert.True(t, cfg.OfferReasonLimit.Equal(decimal.NewFromFloat(0.9)))
	assert.Equal(t, int64(100000), cfg.UnitConversion[entities.Weight])

	assert.False(t, cfg.CategoryAvailable(entities.Cat130))
	assert.True(t, cfg.CategoryAvailable(entities.Cat115))
	assert.True(t, cfg.CategoryNeedsReason(entities.Cat100))
	assert.False(t, cfg.CategoryNeedsReason(entities.Cat115))
}

func TestParsePricingConfig_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := parsePricingConfig([]byte("{}"))
	require.NoError(t, err)

	assert.True(t, cfg.OfferLimit.Equal(decimal.NewFromFloat(0.6)))
	assert.Len(t, cfg.Rates, 3)
}

func TestParsePricingConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown category", "rates:\n  CAT999:\n    relative: \"1.0\"\n"},
		{"bad relative rate", "rates:\n  CAT100:\n    relative: \"abc\"\n"},
		{"bad offer limit", "offer_limit: \"not-a-number\"\n"},
		{"unknown unit", "unit_conversion:\n  GRAMS: 1000\n"},
		{"negative rate fails validation", "rates:\n  CAT100:\n    relative: \"-1\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePricingConfig([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}
