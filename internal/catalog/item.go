// Package catalog turns raw WordPress records into render-ready storefront
// items: it resolves media references, normalizes the loosely typed ACF
// fields and applies the listing filters.
package catalog

// Image is a resolved media reference.
type Image struct {
	URL   string `json:"url"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// Item is the normalized, consistently typed form of a catalog entity,
// independent of which collection it came from.
type Item struct {
	ID               int     `json:"id"`
	Title            string  `json:"titulo"`
	Description      string  `json:"descripcion"`
	Image            string  `json:"imagen"`
	AdditionalImages []Image `json:"imagenesAdicionales"`
	OriginalPrice    float64 `json:"precioOriginal"`
	DiscountPrice    float64 `json:"precioDescuento"`
	Category         string  `json:"categoria"`
	Stock            int     `json:"stock"`
	ShortDescription string  `json:"descripcionCorta"`
	Featured         bool    `json:"destacado"`
	Label            string  `json:"etiqueta,omitempty"`
	Includes         string  `json:"incluye,omitempty"`
}

// HasDiscount reports whether the discount is active: a discounted price
// that is positive and actually below the original one. A "discount" at or
// above the original price is ignored.
func (i *Item) HasDiscount() bool {
	return i.DiscountPrice > 0 && i.DiscountPrice < i.OriginalPrice
}

// DisplayPrice is the single price a card shows: the discounted price when
// the discount is active, otherwise the original price, or the discounted
// one when no original price exists. Zero means "consult price".
func (i *Item) DisplayPrice() float64 {
	if i.HasDiscount() {
		return i.DiscountPrice
	}
	if i.OriginalPrice > 0 {
		return i.OriginalPrice
	}
	return i.DiscountPrice
}

// DiscountPercent is the rounded percentage saved, 0 when no discount is
// active.
func (i *Item) DiscountPercent() int {
	if !i.HasDiscount() {
		return 0
	}
	return int((i.OriginalPrice-i.DiscountPrice)/i.OriginalPrice*100 + 0.5)
}

// Post is a normalized blog entry.
type Post struct {
	ID          int    `json:"id"`
	Title       string `json:"titulo"`
	Excerpt     string `json:"extracto"`
	Image       string `json:"imagen"`
	Date        string `json:"fecha"`
	Category    string `json:"categoria"`
	ReadingTime int    `json:"tiempoLectura"`
}
