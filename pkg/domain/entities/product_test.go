package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewProduct_Valid(t *testing.T) {
	product, err := NewProduct(
		1, "Carrots", Weight, 250, 30,
		decimal.NewFromInt(500),
		decimal.NewFromInt(1),
		decimal.NewFromInt(10),
		decimal.NewFromFloat(0.5),
		Selfgrown,
	)
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}

	if !product.Active {
		t.Error("Expected new product to be active")
	}
	if product.Unit != Weight {
		t.Errorf("Expected unit WEIGHT, got %v", product.Unit)
	}
}

func TestNewProduct_MinExceedsMax(t *testing.T) {
	_, err := NewProduct(
		1, "Carrots", Weight, 250, 30,
		decimal.NewFromInt(500),
		decimal.NewFromInt(20),
		decimal.NewFromInt(10),
		decimal.NewFromInt(1),
		Selfgrown,
	)
	if err == nil {
		t.Error("Expected error when quantityMin exceeds quantityMax")
	}
}

func TestNewProduct_NonPositiveStep(t *testing.T) {
	_, err := NewProduct(
		1, "Carrots", Weight, 250, 30,
		decimal.NewFromInt(500),
		decimal.NewFromInt(1),
		decimal.NewFromInt(10),
		decimal.Zero,
		Selfgrown,
	)
	if err == nil {
		t.Error("Expected error for zero quantityStep")
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected Unit
		wantErr  bool
	}{
		{"WEIGHT", Weight, false},
		{"PIECE", Piece, false},
		{"VOLUME", Volume, false},
		{"GRAMS", 0, true},
	}

	for _, tt := range tests {
		unit, err := ParseUnit(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseUnit(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseUnit(%q) failed: %v", tt.input, err)
		}
		if unit != tt.expected {
			t.Errorf("ParseUnit(%q) = %v, expected %v", tt.input, unit, tt.expected)
		}
	}
}
