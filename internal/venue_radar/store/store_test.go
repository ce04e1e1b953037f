package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"venue-radar/internal/venue_radar/model"
)

// memSlot records every write so tests can assert on write avoidance.
type memSlot struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

func (s *memSlot) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, nil
}

func (s *memSlot) Store(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.writes++
	return nil
}

func newTestStore() (*Store, *memSlot, *memSlot) {
	venueSlot := &memSlot{}
	indexSlot := &memSlot{}
	return New(zap.NewNop(), venueSlot, indexSlot), venueSlot, indexSlot
}

func TestIndexAssignmentIsStableAndDense(t *testing.T) {
	s, _, _ := newTestStore()

	assert.Equal(t, uint64(1), s.IndexOf("a"))
	assert.Equal(t, uint64(2), s.IndexOf("b"))
	assert.Equal(t, uint64(3), s.IndexOf("c"))

	// Re-asking never reassigns.
	assert.Equal(t, uint64(2), s.IndexOf("b"))
	assert.Equal(t, uint64(1), s.IndexOf("a"))
	assert.Equal(t, uint64(4), s.IndexOf("d"))
}

func TestConcurrentIndexAssignment(t *testing.T) {
	s, _, _ := newTestStore()

	const callers = 32
	results := make([]uint64, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.IndexOf("contested")
		}(i)
	}
	wg.Wait()

	for _, idx := range results {
		assert.Equal(t, uint64(1), idx)
	}
	assert.Equal(t, uint64(2), s.IndexOf("next"))
}

func TestConcurrentDistinctDiscovery(t *testing.T) {
	s, _, _ := newTestStore()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("venue-%d", i)
			idx := s.IndexOf(id)
			s.Put(model.Venue{ID: id, Index: idx})
		}(i)
	}
	wg.Wait()

	// Indices form a dense 1..n bijection.
	seen := make(map[uint64]string, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("venue-%d", i)
		idx := s.IndexOf(id)
		assert.GreaterOrEqual(t, idx, uint64(1))
		assert.LessOrEqual(t, idx, uint64(n))
		_, dup := seen[idx]
		assert.False(t, dup, "index %d assigned twice", idx)
		seen[idx] = id
	}
	assert.Equal(t, n, s.Len())
}

func TestPutIsInsertOnly(t *testing.T) {
	s, _, _ := newTestStore()

	first := s.Put(model.Venue{ID: "v1", Name: "Original"})
	assert.Equal(t, "Original", first.Name)

	second := s.Put(model.Venue{ID: "v1", Name: "Overwrite"})
	assert.Equal(t, "Original", second.Name)

	got, ok := s.Get("v1")
	require.True(t, ok)
	assert.Equal(t, "Original", got.Name)
}

func TestAllReturnsFirstDiscoveryOrder(t *testing.T) {
	s, _, _ := newTestStore()
	for _, id := range []string{"c", "a", "b"} {
		idx := s.IndexOf(id)
		s.Put(model.Venue{ID: id, Index: idx})
	}

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "b", all[2].ID)
}

func TestByIndex(t *testing.T) {
	s, _, _ := newTestStore()
	idx := s.IndexOf("v1")
	s.Put(model.Venue{ID: "v1", Index: idx, Name: "First"})

	v, ok := s.ByIndex(1)
	require.True(t, ok)
	assert.Equal(t, "First", v.Name)

	_, ok = s.ByIndex(0)
	assert.False(t, ok)
	_, ok = s.ByIndex(2)
	assert.False(t, ok)
}

func TestFlushSkipsUnchangedContent(t *testing.T) {
	ctx := context.Background()
	s, venueSlot, indexSlot := newTestStore()

	idx := s.IndexOf("v1")
	s.Put(model.Venue{ID: "v1", Index: idx})

	require.NoError(t, s.Flush(ctx))
	assert.Equal(t, 1, venueSlot.writes)
	assert.Equal(t, 1, indexSlot.writes)

	// Nothing changed: both slots must be skipped.
	require.NoError(t, s.Flush(ctx))
	assert.Equal(t, 1, venueSlot.writes)
	assert.Equal(t, 1, indexSlot.writes)

	// A new venue dirties both tables.
	idx = s.IndexOf("v2")
	s.Put(model.Venue{ID: "v2", Index: idx})
	require.NoError(t, s.Flush(ctx))
	assert.Equal(t, 2, venueSlot.writes)
	assert.Equal(t, 2, indexSlot.writes)
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	venueSlot := NewFSSlot(filepath.Join(dir, VenuesSlotName))
	indexSlot := NewFSSlot(filepath.Join(dir, IndexSlotName))

	s := New(zap.NewNop(), venueSlot, indexSlot)
	for i, id := range []string{"x", "y", "z"} {
		idx := s.IndexOf(id)
		s.Put(model.Venue{
			ID:         id,
			Index:      idx,
			Name:       fmt.Sprintf("Venue %d", i),
			Rating:     7.5,
			LiveCount:  12,
			PriceTier:  model.PriceModerate,
			Categories: []string{"Coffee Shop"},
			Comments:   []string{"great spot"},
		})
	}
	require.NoError(t, s.Flush(ctx))

	reloaded := New(zap.NewNop(), venueSlot, indexSlot)
	reloaded.Load(ctx)

	assert.Equal(t, 3, reloaded.Len())
	assert.Equal(t, s.All(), reloaded.All())
	assert.Equal(t, uint64(2), reloaded.IndexOf("y"))
	assert.Equal(t, uint64(4), reloaded.IndexOf("new-after-reload"))

	v, ok := reloaded.Get("x")
	require.True(t, ok)
	assert.Equal(t, "Venue 0", v.Name)
	assert.Equal(t, model.PriceModerate, v.PriceTier)
	assert.Equal(t, []string{"great spot"}, v.Comments)
}

func TestLoadAfterFlushSkipsFirstWrite(t *testing.T) {
	ctx := context.Background()
	s, venueSlot, indexSlot := newTestStore()
	idx := s.IndexOf("v1")
	s.Put(model.Venue{ID: "v1", Index: idx})
	require.NoError(t, s.Flush(ctx))

	// A restarted store that loads identical content must not rewrite it.
	restarted := New(zap.NewNop(), venueSlot, indexSlot)
	restarted.Load(ctx)
	require.NoError(t, restarted.Flush(ctx))
	assert.Equal(t, 1, venueSlot.writes)
	assert.Equal(t, 1, indexSlot.writes)
}

func TestLoadMissingStateStartsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(zap.NewNop(),
		NewFSSlot(filepath.Join(dir, VenuesSlotName)),
		NewFSSlot(filepath.Join(dir, IndexSlotName)),
	)
	s.Load(ctx)
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
}
