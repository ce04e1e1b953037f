package rank

import (
	"math"
	"sort"

	"venue-radar/internal/venue_radar/filter"
	"venue-radar/internal/venue_radar/model"
)

// Snapshot is the read view of the venue store the engine ranks over.
type Snapshot interface {
	All() []model.Venue
	Get(id string) (model.Venue, bool)
}

// Engine runs the read-time filter/score/sort pipeline over a store snapshot.
type Engine struct {
	store Snapshot
}

func New(store Snapshot) *Engine {
	return &Engine{store: store}
}

// TopVenues returns up to n venues, best first. Venues without any allowed
// category label are dropped, the rest are scored and stable-sorted
// descending (ties keep snapshot order), then optionally narrowed by
// classified category and price tier. loc is reserved for distance-aware
// scoring and currently unused.
func (e *Engine) TopVenues(n int, loc *model.GeoPoint, category model.Category, tier model.PriceTier) []model.Venue {
	_ = loc

	venues := make([]model.Venue, 0)
	for _, v := range e.store.All() {
		for _, label := range v.Categories {
			if filter.IsAllowedCategory(label) {
				venues = append(venues, v)
				break
			}
		}
	}

	sort.SliceStable(venues, func(i, j int) bool {
		return score(venues[i]) > score(venues[j])
	})

	if category != model.CategoryAll {
		kept := venues[:0]
		for _, v := range venues {
			if filter.Classify(primaryLabel(v)) == category {
				kept = append(kept, v)
			}
		}
		venues = kept
	}

	if tier != model.PriceAll {
		kept := venues[:0]
		for _, v := range venues {
			if v.PriceTier == tier {
				kept = append(kept, v)
			}
		}
		venues = kept
	}

	if n < 0 {
		n = 0
	}
	if n < len(venues) {
		venues = venues[:n]
	}
	return venues
}

// VenueRatings returns the free-text review strings retained for a venue,
// or nil when the venue is unknown.
func (e *Engine) VenueRatings(id string) []string {
	v, ok := e.store.Get(id)
	if !ok {
		return nil
	}
	return v.Comments
}

// score floors the rating at 6 before weighting by live visits so a missing
// or low rating cannot zero out an otherwise busy venue.
func score(v model.Venue) float64 {
	return math.Max(v.Rating, 6) / 2 * float64(v.LiveCount)
}

func primaryLabel(v model.Venue) string {
	if len(v.Categories) > 0 {
		return v.Categories[0]
	}
	return ""
}
