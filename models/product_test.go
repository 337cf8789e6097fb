package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestComputeFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
		ok       bool
	}{
		{"twenty percent off", 1000, 20, 800, true},
		{"no discount", 500, 0, 500, true},
		{"full discount", 250, 100, 0, true},
		{"rounds to two decimals", 99.99, 33, 66.99, true},
		{"fractional discount", 150, 12.5, 131.25, true},
		{"zero price", 0, 50, 0, true},
		{"nan price", math.NaN(), 10, 0, false},
		{"inf price", math.Inf(1), 10, 0, false},
		{"nan discount", 100, math.NaN(), 0, false},
		{"inf discount", 100, math.Inf(-1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeFinalPrice(tt.price, tt.discount)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestComputeFinalPriceMatchesFormula(t *testing.T) {
	for _, p := range []float64{0, 1, 49.5, 100, 999.99, 12345} {
		for _, d := range []float64{0, 5, 18, 50, 99, 100} {
			got, ok := ComputeFinalPrice(p, d)
			assert.True(t, ok)
			want := math.Round(p*(1-d/100)*100) / 100
			assert.InDelta(t, want, got, 0.001, "p=%v d=%v", p, d)
		}
	}
}

func TestResolveFinalPrice(t *testing.T) {
	t.Run("discount-only patch uses stored price", func(t *testing.T) {
		fp, ok := resolveFinalPrice(bson.M{"discount": 20.0}, 1000, 0)
		assert.True(t, ok)
		assert.InDelta(t, 800, fp, 0.001)
	})

	t.Run("price-only patch uses stored discount", func(t *testing.T) {
		fp, ok := resolveFinalPrice(bson.M{"price": 200.0}, 1000, 25)
		assert.True(t, ok)
		assert.InDelta(t, 150, fp, 0.001)
	})

	t.Run("patching both ignores stored values", func(t *testing.T) {
		fp, ok := resolveFinalPrice(bson.M{"price": 500.0, "discount": 10.0}, 9999, 99)
		assert.True(t, ok)
		assert.InDelta(t, 450, fp, 0.001)
	})

	t.Run("patch without price or discount", func(t *testing.T) {
		_, ok := resolveFinalPrice(bson.M{"name": "Pochampally saree"}, 1000, 20)
		assert.False(t, ok)
	})

	t.Run("non-finite patched price", func(t *testing.T) {
		_, ok := resolveFinalPrice(bson.M{"price": math.Inf(1)}, 1000, 20)
		assert.False(t, ok)
	})
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("sarees"))
	assert.True(t, IsValidCategory("home-decor"))
	assert.False(t, IsValidCategory("electronics"))
	assert.False(t, IsValidCategory(""))
}
