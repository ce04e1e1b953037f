package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"venue-radar/internal/venue_radar/model"
	"venue-radar/internal/venue_radar/provider"
	"venue-radar/internal/venue_radar/store"
)

type fakeProvider struct {
	mu      sync.Mutex
	details map[string]provider.Detail
	err     error
	calls   int32
}

func (f *fakeProvider) VenueDetail(_ context.Context, id string) (provider.Detail, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return provider.Detail{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.details[id]
	if !ok {
		return provider.Detail{}, errors.New("venue not found")
	}
	return d, nil
}

type nopSlot struct{}

func (nopSlot) Load(context.Context) ([]byte, error) { return nil, nil }
func (nopSlot) Store(context.Context, []byte) error  { return nil }

func detailFromJSON(t *testing.T, raw string) provider.Detail {
	t.Helper()
	var d provider.Detail
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	return d
}

func newEnricher(details map[string]provider.Detail) (*Enricher, *fakeProvider, *store.Store) {
	p := &fakeProvider{details: details}
	s := store.New(zap.NewNop(), nopSlot{}, nopSlot{})
	return New(zap.NewNop(), p, s), p, s
}

func TestEnrichFetchesAndCleans(t *testing.T) {
	raw := `{
		"id": "abc123",
		"name": "Najd Village",
		"rating": 8.4,
		"hereNow": {"count": 17},
		"price": {"tier": 2, "message": "Moderate"},
		"categories": [{"name": "Lebanese Restaurant", "primary": true}, {"name": "Cafe"}],
		"location": {"lat": 24.7, "lng": 46.6, "formattedAddress": ["King Fahd Rd", "Riyadh"]},
		"phrases": [{"text": "amazing kabsa"}],
		"tips": {"groups": [{"items": [{"text": "try the coffee"}]}]},
		"listed": {"groups": [{"items": [{"text": "Best of Riyadh", "description": "local picks"}]}]},
		"photos": {"count": 400},
		"menu": {"url": "ignored"}
	}`
	e, _, _ := newEnricher(map[string]provider.Detail{"abc123": detailFromJSON(t, raw)})

	v, err := e.Enrich(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", v.ID)
	assert.Equal(t, uint64(1), v.Index)
	assert.Equal(t, "Najd Village", v.Name)
	assert.Equal(t, 8.4, v.Rating)
	assert.Equal(t, uint32(17), v.LiveCount)
	assert.Equal(t, model.PriceModerate, v.PriceTier)
	assert.Equal(t, []string{"Lebanese Restaurant", "Cafe"}, v.Categories)
	assert.Equal(t, 24.7, v.Location.Lat)
	assert.Equal(t, "King Fahd Rd, Riyadh", v.Location.Address)
	assert.Equal(t, []string{
		"Best of Riyadh - local picks",
		"amazing kabsa",
		"try the coffee",
	}, v.Comments)
}

func TestEnrichDefaultsMissingFields(t *testing.T) {
	e, _, _ := newEnricher(map[string]provider.Detail{
		"bare": detailFromJSON(t, `{"name": "Mystery Spot"}`),
	})

	v, err := e.Enrich(context.Background(), "bare")
	require.NoError(t, err)
	assert.Equal(t, "Mystery Spot", v.Name)
	assert.Zero(t, v.Rating)
	assert.Zero(t, v.LiveCount)
	assert.Equal(t, model.PriceUnknown, v.PriceTier)
	assert.Empty(t, v.Categories)
	assert.Empty(t, v.Comments)
}

func TestEnrichIsIdempotent(t *testing.T) {
	e, p, s := newEnricher(map[string]provider.Detail{
		"v1": detailFromJSON(t, `{"name": "Once"}`),
	})
	ctx := context.Background()

	first, err := e.Enrich(ctx, "v1")
	require.NoError(t, err)
	second, err := e.Enrich(ctx, "v1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&p.calls))
	// The index table must not grow on re-enrichment.
	assert.Equal(t, uint64(2), s.IndexOf("probe"))
}

func TestEnrichProviderFailureInsertsNothing(t *testing.T) {
	e, p, s := newEnricher(nil)
	p.err = errors.New("provider down")

	_, err := e.Enrich(context.Background(), "broken")
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
	// A failed enrichment still assigns no index.
	assert.Equal(t, uint64(1), s.IndexOf("probe"))
}

func TestConcurrentEnrichSingleInsert(t *testing.T) {
	e, _, s := newEnricher(map[string]provider.Detail{
		"hot": detailFromJSON(t, `{"name": "Contested", "rating": 9}`),
	})
	ctx := context.Background()

	const callers = 16
	results := make([]model.Venue, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := e.Enrich(ctx, "hot")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, results[0], v)
		assert.Equal(t, uint64(1), v.Index)
	}
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, uint64(2), s.IndexOf("next"))
}
