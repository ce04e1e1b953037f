package enrich

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"venue-radar/internal/venue_radar/metrics"
	"venue-radar/internal/venue_radar/model"
	"venue-radar/internal/venue_radar/provider"
	"venue-radar/internal/venue_radar/store"
)

// DetailFetcher is the single-venue lookup of the venue provider.
type DetailFetcher interface {
	VenueDetail(ctx context.Context, id string) (provider.Detail, error)
}

// Enricher fetches full detail for venue ids not yet cached, cleans it and
// inserts the result into the store exactly once per id.
type Enricher struct {
	Log      *zap.Logger
	Provider DetailFetcher
	Store    *store.Store
}

func New(log *zap.Logger, p DetailFetcher, s *store.Store) *Enricher {
	return &Enricher{Log: log, Provider: p, Store: s}
}

// Enrich returns the cached venue for id, fetching and inserting it first
// when absent. Rediscovery of a present id is a no-op; a provider failure
// inserts nothing.
func (e *Enricher) Enrich(ctx context.Context, id string) (model.Venue, error) {
	if v, ok := e.Store.Get(id); ok {
		metrics.Enrichments.WithLabelValues("cached").Inc()
		return v, nil
	}

	e.Log.Info("Fetching venue details", zap.String("venue", shortID(id)))
	detail, err := e.Provider.VenueDetail(ctx, id)
	if err != nil {
		metrics.Enrichments.WithLabelValues("error").Inc()
		return model.Venue{}, fmt.Errorf("enrich %s: %w", id, err)
	}

	v := Clean(detail)
	v.ID = id
	v.Index = e.Store.IndexOf(id)
	stored := e.Store.Put(v)

	metrics.Enrichments.WithLabelValues("fetched").Inc()
	metrics.CachedVenues.Set(float64(e.Store.Len()))
	return stored, nil
}

// Clean projects a raw provider detail record onto the stored venue shape:
// nested location flattened, categories reduced to their labels, price level
// mapped to a tier, and review text pulled out of the listed/phrases/tips
// groups so the raw payload does not need to be retained.
func Clean(d provider.Detail) model.Venue {
	categories := make([]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		categories = append(categories, c.Name)
	}

	var comments []string
	for _, g := range d.Listed.Groups {
		for _, item := range g.Items {
			if item.Text == "" && item.Description == "" {
				continue
			}
			comments = append(comments, item.Text+" - "+item.Description)
		}
	}
	for _, p := range d.Phrases {
		if p.Text != "" {
			comments = append(comments, p.Text)
		}
	}
	for _, g := range d.Tips.Groups {
		for _, item := range g.Items {
			if item.Text != "" {
				comments = append(comments, item.Text)
			}
		}
	}

	return model.Venue{
		ID:         d.ID,
		Name:       d.Name,
		Rating:     d.Rating,
		LiveCount:  d.HereNow.Count,
		PriceTier:  model.PriceTierFromLevel(d.Price.Tier),
		Categories: categories,
		Location: model.Location{
			Lat:     d.Location.Lat,
			Lng:     d.Location.Lng,
			Address: strings.Join(d.Location.FormattedAddress, ", "),
		},
		Comments: comments,
	}
}

func shortID(id string) string {
	if len(id) > 5 {
		return id[:5]
	}
	return id
}
