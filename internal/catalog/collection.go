package catalog

// Collection describes how one WordPress custom post type maps onto Item.
// The ACF key set varies per entity type; pinning the differences here keeps
// the loader free of per-collection branches.
type Collection struct {
	Slug             string
	FeaturedKey      string
	PriceKey         string
	DiscountKey      string
	CategoryFallback string
	// ImageSlots is how many imagen_adicional_N keys the entity type carries
	ImageSlots int
	// HasTags marks collections with the etiqueta/incluye badge fields
	HasTags bool
}

var (
	Products = Collection{
		Slug:             "productos",
		FeaturedKey:      "producto_destacado",
		PriceKey:         "precio",
		DiscountKey:      "precio_descuento",
		CategoryFallback: "General",
		ImageSlots:       20,
	}

	GiftPlants = Collection{
		Slug:        "regala-planta",
		FeaturedKey: "producto_destacado",
		PriceKey:    "precio",
		DiscountKey: "precio_descuento",
		ImageSlots:  4,
		HasTags:     true,
	}

	AromaticPlants = Collection{
		Slug:        "plantas-aromaticas",
		FeaturedKey: "producto_destacado",
		PriceKey:    "precio_original",
		DiscountKey: "precio_descuento",
	}

	HabitatPlants = Collection{
		Slug:        "plantas-habitar",
		FeaturedKey: "producto_destacado",
		PriceKey:    "precio_original",
		DiscountKey: "precio_descuento",
	}
)

var collections = map[string]Collection{
	Products.Slug:       Products,
	GiftPlants.Slug:     GiftPlants,
	AromaticPlants.Slug: AromaticPlants,
	HabitatPlants.Slug:  HabitatPlants,
}

// BySlug resolves a collection from its URL slug.
func BySlug(slug string) (Collection, bool) {
	col, ok := collections[slug]
	return col, ok
}
