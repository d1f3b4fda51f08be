package storage

import (
	"context"

	"github.com/poiesic/harvest/core"
)

// CursorStore persists the crawl cursor between runs.
// Implementations must be safe to call from a single crawl loop.
type CursorStore interface {
	// Load returns the persisted cursor. It never fails: a missing or
	// unreadable store yields the empty cursor.
	Load(ctx context.Context) core.Cursor

	// Save persists the cursor, replacing the previous value.
	// The empty cursor is persisted as "no cursor".
	Save(ctx context.Context, cursor core.Cursor) error
}

// CheckpointRepository stores named checkpoints.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint keyed by its Source.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a source.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, source string) (*core.Checkpoint, error)
}

// VectorStore is a collection of embedded records addressed by id.
// Implementations must be thread-safe.
type VectorStore interface {
	// Upsert inserts or overwrites every record in the batch in one call.
	// Records with an id already present replace the stored record.
	Upsert(ctx context.Context, batch *core.Batch) error

	// Count returns the number of records in the collection.
	Count(ctx context.Context) (int, error)

	// Query returns up to n records nearest to the embedding, ordered by
	// similarity (highest first). n larger than Count is clamped.
	Query(ctx context.Context, embedding []float32, n int) ([]core.Hit, error)

	// Close releases resources held by the store.
	Close() error
}
