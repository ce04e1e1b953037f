package model

// GeoPoint is a single sampling coordinate of the coverage grid.
type GeoPoint struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Location is the flattened venue address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Venue is the cleaned projection of a provider detail record kept in the
// cache. ID is the provider identifier, Index the cache-local stable ordinal
// assigned at first discovery (1-based, never renumbered).
type Venue struct {
	ID         string    `json:"id"`
	Index      uint64    `json:"idx"`
	Name       string    `json:"name"`
	Rating     float64   `json:"rating"`
	LiveCount  uint32    `json:"live_count"`
	PriceTier  PriceTier `json:"price_tier"`
	Categories []string  `json:"categories"`
	Location   Location  `json:"location"`
	Comments   []string  `json:"comments,omitempty"`
}
