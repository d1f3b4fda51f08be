package badger

import (
	"context"
	"log/slog"

	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/storage"
)

const (
	// DefaultSource names the checkpoint used when no source is configured.
	DefaultSource = "reddit"

	// DefaultPath is the database directory used for the badger cursor backend.
	DefaultPath = "state"
)

// CursorStore implements storage.CursorStore on top of a CheckpointRepository.
type CursorStore struct {
	repo   storage.CheckpointRepository
	source string
	logger *slog.Logger
}

var _ storage.CursorStore = (*CursorStore)(nil)

// NewCursorStore creates a cursor store that keeps its cursor in the
// checkpoint named source.
func NewCursorStore(repo storage.CheckpointRepository, source string) *CursorStore {
	if source == "" {
		source = DefaultSource
	}
	return &CursorStore{
		repo:   repo,
		source: source,
		logger: slog.Default().With("component", "badger-cursor", "source", source),
	}
}

// Load returns the stored cursor, or the empty cursor when none is stored
// or the stored value cannot be read.
func (s *CursorStore) Load(ctx context.Context) core.Cursor {
	checkpoint, err := s.repo.LoadCheckpoint(ctx, s.source)
	if err != nil {
		s.logger.Debug("ignoring unreadable checkpoint", "err", err)
		return ""
	}
	if checkpoint == nil {
		return ""
	}
	return checkpoint.Cursor
}

// Save replaces the stored cursor.
func (s *CursorStore) Save(ctx context.Context, cursor core.Cursor) error {
	return s.repo.SaveCheckpoint(ctx, &core.Checkpoint{
		Source: s.source,
		Cursor: cursor,
	})
}
