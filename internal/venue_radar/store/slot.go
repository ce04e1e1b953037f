package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// Slot is one named durable storage location holding a serialized table
// snapshot. Load returns (nil, nil) when no prior state exists; Store must
// replace the content atomically so readers never observe a partial write.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Store(ctx context.Context, data []byte) error
}

type fsSlot struct {
	path string
}

// NewFSSlot returns a file-backed slot. Writes go to a temp file in the same
// directory followed by a rename, so the slot is always either the previous
// or the new snapshot.
func NewFSSlot(path string) Slot {
	return &fsSlot{path: path}
}

func (s *fsSlot) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *fsSlot) Store(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
