package store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"venue-radar/internal/venue_radar/metrics"
	"venue-radar/internal/venue_radar/model"
)

// Slot names shared by the fs and mongo backends.
const (
	VenuesSlotName = "venues_details.json"
	IndexSlotName  = "venues_ids.json"
)

// Store holds the authoritative venue map plus the append-only id table that
// defines each venue's stable index (position+1). All access is serialized
// through an RWMutex; a venue is either fully absent or fully present to
// readers.
type Store struct {
	log       *zap.Logger
	venueSlot Slot
	indexSlot Slot

	mu      sync.RWMutex
	venues  map[string]model.Venue
	ids     []string
	indexes map[string]uint64

	// Content hashes of the last durably written snapshots. Touched only by
	// Load (before the loops start) and by the single persistence goroutine.
	venueHash string
	indexHash string
}

func New(log *zap.Logger, venueSlot, indexSlot Slot) *Store {
	return &Store{
		log:       log,
		venueSlot: venueSlot,
		indexSlot: indexSlot,
		venues:    make(map[string]model.Venue),
		indexes:   make(map[string]uint64),
	}
}

// Get returns the venue stored for id, if any.
func (s *Store) Get(id string) (model.Venue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	return v, ok
}

// Put inserts a venue. Inserts are first-write-wins: if the id is already
// present the stored venue is kept unchanged. The venue actually held after
// the call is returned, so concurrent discoverers all observe the same value.
func (s *Store) Put(v model.Venue) model.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.venues[v.ID]; ok {
		return existing
	}
	s.venues[v.ID] = v
	return v
}

// IndexOf returns the stable 1-based index for id, assigning the next one if
// the id has never been seen. This is the only operation that grows the id
// table.
func (s *Store) IndexOf(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.indexes[id]; ok {
		return idx
	}
	s.ids = append(s.ids, id)
	idx := uint64(len(s.ids))
	s.indexes[id] = idx
	return idx
}

// ByIndex returns the venue holding the given stable index.
func (s *Store) ByIndex(idx uint64) (model.Venue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 1 || idx > uint64(len(s.ids)) {
		return model.Venue{}, false
	}
	v, ok := s.venues[s.ids[idx-1]]
	return v, ok
}

// All returns a snapshot of all stored venues in first-discovery order.
func (s *Store) All() []model.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Venue, 0, len(s.venues))
	for _, id := range s.ids {
		if v, ok := s.venues[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the number of stored venues.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.venues)
}

// Load restores both tables from durable storage. Missing or unreadable
// state is not fatal: the cache simply starts empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, err := s.venueSlot.Load(ctx); err != nil {
		s.log.Warn("Failed to load venue snapshot, starting empty", zap.Error(err))
	} else if data != nil {
		venues := make(map[string]model.Venue)
		if err := json.Unmarshal(data, &venues); err != nil {
			s.log.Warn("Corrupt venue snapshot, starting empty", zap.Error(err))
		} else {
			s.venues = venues
			s.venueHash = contentHash(data)
		}
	}

	if data, err := s.indexSlot.Load(ctx); err != nil {
		s.log.Warn("Failed to load index snapshot, starting empty", zap.Error(err))
	} else if data != nil {
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			s.log.Warn("Corrupt index snapshot, starting empty", zap.Error(err))
		} else {
			s.ids = ids
			s.indexes = make(map[string]uint64, len(ids))
			for i, id := range ids {
				s.indexes[id] = uint64(i + 1)
			}
			s.indexHash = contentHash(data)
		}
	}

	metrics.CachedVenues.Set(float64(len(s.venues)))
	s.log.Info("Cache loaded",
		zap.Int("venues", len(s.venues)),
		zap.Int("indexed", len(s.ids)),
	)
}

// Flush serializes both tables and writes each slot whose content hash
// changed since the last durable write. A hash-equal table is skipped
// entirely.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	venueData, err := json.Marshal(s.venues)
	if err != nil {
		s.mu.RUnlock()
		return err
	}
	indexData, err := json.Marshal(s.ids)
	if err != nil {
		s.mu.RUnlock()
		return err
	}
	s.mu.RUnlock()

	var firstErr error
	if h := contentHash(venueData); h != s.venueHash {
		if err := s.venueSlot.Store(ctx, venueData); err != nil {
			metrics.PersistErrors.WithLabelValues("venues").Inc()
			firstErr = err
		} else {
			metrics.PersistWrites.WithLabelValues("venues").Inc()
			s.venueHash = h
		}
	} else {
		metrics.PersistSkips.WithLabelValues("venues").Inc()
	}

	if h := contentHash(indexData); h != s.indexHash {
		if err := s.indexSlot.Store(ctx, indexData); err != nil {
			metrics.PersistErrors.WithLabelValues("index").Inc()
			if firstErr == nil {
				firstErr = err
			}
		} else {
			metrics.PersistWrites.WithLabelValues("index").Inc()
			s.indexHash = h
		}
	} else {
		metrics.PersistSkips.WithLabelValues("index").Inc()
	}

	return firstErr
}

// Run flushes the cache on a fixed interval until the context is done. Write
// failures are logged and retried naturally on the next tick.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.log.Error("Cache flush failed", zap.Error(err))
			}
		}
	}
}

func contentHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
