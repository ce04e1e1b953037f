package model

import "strings"

// Category buckets a venue by its raw provider labels.
type Category string

const (
	CategoryAll        Category = "all"
	CategoryCafe       Category = "cafe"
	CategoryRestaurant Category = "restaurant"
	CategoryLounge     Category = "lounge"
	CategoryEvent      Category = "event"
	CategoryHotel      Category = "hotel"
	CategoryShopping   Category = "shopping"
)

// ParseCategory maps a query-string value to a Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToLower(s)) {
	case CategoryAll, CategoryCafe, CategoryRestaurant, CategoryLounge,
		CategoryEvent, CategoryHotel, CategoryShopping:
		return Category(strings.ToLower(s)), true
	}
	return CategoryAll, false
}

// PriceTier is the provider's price bracket for a venue.
type PriceTier string

const (
	PriceAll           PriceTier = "all"
	PriceCheap         PriceTier = "Cheap"
	PriceModerate      PriceTier = "Moderate"
	PriceExpensive     PriceTier = "Expensive"
	PriceVeryExpensive PriceTier = "Very Expensive"
	PriceUnknown       PriceTier = "Unknown"
)

// ParsePriceTier maps a query-string value to a PriceTier.
func ParsePriceTier(s string) (PriceTier, bool) {
	switch strings.ToLower(s) {
	case "all":
		return PriceAll, true
	case "cheap":
		return PriceCheap, true
	case "moderate":
		return PriceModerate, true
	case "expensive":
		return PriceExpensive, true
	case "very expensive", "very_expensive":
		return PriceVeryExpensive, true
	}
	return PriceAll, false
}

// PriceTierFromLevel converts the provider's numeric price level (1-4).
func PriceTierFromLevel(level int) PriceTier {
	switch level {
	case 1:
		return PriceCheap
	case 2:
		return PriceModerate
	case 3:
		return PriceExpensive
	case 4:
		return PriceVeryExpensive
	}
	return PriceUnknown
}
