package poller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"venue-radar/internal/venue_radar/metrics"
	"venue-radar/internal/venue_radar/model"
	"venue-radar/internal/venue_radar/provider"
)

// TrendingSearcher is the trending-search half of the venue provider.
type TrendingSearcher interface {
	SearchTrending(ctx context.Context, lat, lng float64) ([]provider.TrendingVenue, error)
}

// Enricher resolves a venue id to its cached (or freshly fetched) record.
type Enricher interface {
	Enrich(ctx context.Context, id string) (model.Venue, error)
}

// Poller samples the provider across the coordinate grid on a fixed interval
// and feeds every discovered venue id through a bounded worker pool into the
// enricher. Sweeps never overlap: the pool drains fully before the next
// interval starts.
type Poller struct {
	Log      *zap.Logger
	Searcher TrendingSearcher
	Enricher Enricher
	Grid     []model.GeoPoint
	Workers  int
	Interval time.Duration
}

// Run sweeps once immediately, then on every interval tick until the context
// is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.Sweep(ctx)

	for {
		timer := time.NewTimer(p.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			p.Sweep(ctx)
		}
	}
}

// Sweep queries every grid point in order, merges the returned venue ids into
// one deduplicated set and drains it through the worker pool. A failed point
// is logged and skipped; it does not abort the sweep.
func (p *Poller) Sweep(ctx context.Context) {
	ids := make(map[string]struct{})
	for _, pt := range p.Grid {
		venues, err := p.Searcher.SearchTrending(ctx, pt.Lat, pt.Lng)
		if err != nil {
			metrics.TrendingErrors.Inc()
			p.Log.Error("Trending search failed",
				zap.Float64("lat", pt.Lat),
				zap.Float64("lng", pt.Lng),
				zap.Error(err),
			)
			continue
		}
		for _, v := range venues {
			ids[v.ID] = struct{}{}
		}
	}

	p.Log.Info("Sweep discovered trending venues", zap.Int("unique", len(ids)))

	workers := p.Workers
	if workers <= 0 {
		workers = 3
	}

	jobs := make(chan string, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				if _, err := p.Enricher.Enrich(ctx, id); err != nil {
					p.Log.Error("Enrichment failed", zap.String("venue", id), zap.Error(err))
				}
			}
		}()
	}
	for id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	metrics.Sweeps.Inc()
	p.Log.Info("Sweep complete")
}
