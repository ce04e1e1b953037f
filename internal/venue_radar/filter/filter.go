package filter

import (
	"strings"

	"venue-radar/internal/venue_radar/model"
)

// allowedExact is the fixed allow-list of category labels that always pass,
// regardless of keyword matching.
var allowedExact = map[string]struct{}{
	"Juice Bar":                   {},
	"Lebanese Restaurant":         {},
	"Event Space":                 {},
	"Gym and Studio":              {},
	"Steakhouse":                  {},
	"Airport Lounge":              {},
	"Coffee Roaster":              {},
	"National Park":               {},
	"Shopping Mall":               {},
	"Restaurant":                  {},
	"Business Center":             {},
	"Bakery":                      {},
	"Pizzeria":                    {},
	"Food Court":                  {},
	"Hookah Bar":                  {},
	"American Restaurant":         {},
	"Tea Room":                    {},
	"French Restaurant":           {},
	"Hiking Trail":                {},
	"Burger Joint":                {},
	"Festival":                    {},
	"Cafe, Coffee, and Tea House": {},
	"Coffee Shop":                 {},
	"Breakfast Spot":              {},
	"Italian Restaurant":          {},
	"City":                        {},
	"Swiss Restaurant":            {},
	"Golf Course":                 {},
	"Plaza":                       {},
	"Shopping Plaza":              {},
	"International Airport":       {},
	"Village":                     {},
	"Café":                        {},
}

var allowedKeywords = []string{
	"plaza", "mall", "cafe", "café", "coffee", "tea",
	"restaurant", "pub", "bar", "club", "lounge",
}

// IsAllowedCategory reports whether a raw category label passes the venue
// filter: an exact allow-list match or a case-insensitive keyword hit.
func IsAllowedCategory(label string) bool {
	if _, ok := allowedExact[label]; ok {
		return true
	}
	lower := strings.ToLower(label)
	for _, kw := range allowedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// buckets are checked in order; a label matching several buckets resolves to
// the first one (e.g. "Lounge Bar" is a lounge, not a restaurant).
var buckets = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryCafe, []string{
		"cafe", "café", "coffee", "tea", "bakery",
	}},
	{model.CategoryRestaurant, []string{
		"restaurant", "food", "pizzeria", "steakhouse",
		"burger", "breakfast", "juice bar", "hookah", "dining",
	}},
	{model.CategoryLounge, []string{
		"lounge", "bar",
	}},
	{model.CategoryShopping, []string{
		"shop", "mall", "plaza", "store", "business center",
	}},
	{model.CategoryHotel, []string{
		"hotel", "resort", "inn", "accommodation",
	}},
	{model.CategoryEvent, []string{
		"event", "festival", "historic", "park", "trail",
		"cemetery", "gym", "studio", "golf", "airport",
		"terminal", "hospital", "neighborhood", "city", "village",
	}},
}

// Classify maps a raw category label to one of the fixed category buckets,
// or CategoryAll when no keyword matches.
func Classify(label string) model.Category {
	lower := strings.ToLower(label)
	for _, b := range buckets {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.category
			}
		}
	}
	return model.CategoryAll
}
