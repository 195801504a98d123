package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		original float64
		discount float64
		want     bool
	}{
		{"real discount", 600, 450, true},
		{"no discount price", 600, 0, false},
		{"discount equals original", 600, 600, false},
		{"discount above original", 600, 700, false},
		{"only discount price", 0, 450, false},
		{"both zero", 0, 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := Item{OriginalPrice: tt.original, DiscountPrice: tt.discount}
			assert.Equal(t, tt.want, item.HasDiscount())
		})
	}
}

func TestDisplayPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		original float64
		discount float64
		want     float64
	}{
		{"active discount wins", 600, 450, 450},
		{"no discount shows original", 600, 0, 600},
		{"bogus discount shows original", 600, 700, 600},
		{"only discount price", 0, 450, 450},
		{"no prices at all", 0, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := Item{OriginalPrice: tt.original, DiscountPrice: tt.discount}
			assert.Equal(t, tt.want, item.DisplayPrice())
		})
	}
}

func TestDiscountPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 25, (&Item{OriginalPrice: 600, DiscountPrice: 450}).DiscountPercent())
	assert.Equal(t, 29, (&Item{OriginalPrice: 450, DiscountPrice: 320}).DiscountPercent())
	assert.Equal(t, 0, (&Item{OriginalPrice: 600, DiscountPrice: 0}).DiscountPercent())
	assert.Equal(t, 0, (&Item{OriginalPrice: 0, DiscountPrice: 450}).DiscountPercent())
}

func TestBySlug(t *testing.T) {
	t.Parallel()

	col, ok := BySlug("productos")
	assert.True(t, ok)
	assert.Equal(t, "precio", col.PriceKey)
	assert.Equal(t, "General", col.CategoryFallback)
	assert.Equal(t, 20, col.ImageSlots)

	col, ok = BySlug("plantas-aromaticas")
	assert.True(t, ok)
	assert.Equal(t, "precio_original", col.PriceKey)
	assert.Equal(t, 0, col.ImageSlots)

	col, ok = BySlug("regala-planta")
	assert.True(t, ok)
	assert.True(t, col.HasTags)
	assert.Equal(t, 4, col.ImageSlots)

	_, ok = BySlug("no-such-collection")
	assert.False(t, ok)
}
