package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/harvest/ai"
	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/storage"
)

// Upserter turns one page of raw items into a single vector store write.
// Items are normalized and embedded in parallel on a worker pool.
type Upserter struct {
	embedder ai.Embedder
	store    storage.VectorStore
	pool     *ants.Pool
	logger   *slog.Logger
}

// UpserterOption configures an Upserter.
type UpserterOption func(*Upserter) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) UpserterOption {
	return func(u *Upserter) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		if u.pool != nil {
			u.pool.Release()
		}
		u.pool = pool
		return nil
	}
}

// WithUpserterLogger sets a custom logger.
// Default is slog.Default().
func WithUpserterLogger(logger *slog.Logger) UpserterOption {
	return func(u *Upserter) error {
		if logger == nil {
			logger = slog.Default()
		}
		u.logger = logger
		return nil
	}
}

// NewUpserter creates an upserter writing to store.
func NewUpserter(embedder ai.Embedder, store storage.VectorStore, opts ...UpserterOption) (*Upserter, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrVectorStoreRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	u := &Upserter{
		embedder: embedder,
		store:    store,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(u); optErr != nil {
			u.Release()
			return nil, optErr
		}
	}

	u.logger = u.logger.With("component", "upserter")
	return u, nil
}

// UpsertBatch normalizes and embeds every item, then writes them to the
// store in one call, in input order. An empty page writes nothing. Any
// item failure aborts the page before the store is touched.
func (u *Upserter) UpsertBatch(ctx context.Context, items []core.RawItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	records := make([]*core.Record, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		submitErr := u.pool.Submit(func() {
			defer wg.Done()
			records[i], errs[i] = u.process(ctx, &items[i])
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return 0, fmt.Errorf("item %d: %w", i, err)
		}
	}

	batch := core.NewBatch(records)
	if err := core.ValidateBatch(batch); err != nil {
		return 0, err
	}
	if err := u.store.Upsert(ctx, batch); err != nil {
		return 0, fmt.Errorf("upserting page: %w", err)
	}

	u.logger.Info("embedded and stored batch", "count", batch.Len())
	return batch.Len(), nil
}

func (u *Upserter) process(ctx context.Context, item *core.RawItem) (*core.Record, error) {
	record, err := core.Normalize(item)
	if err != nil {
		return nil, err
	}

	embedding, err := u.embedder.EmbedText(ctx, record.Text)
	if err != nil {
		return nil, fmt.Errorf("embedding %s: %w", record.ID, err)
	}
	record.Embedding = embedding

	if err := core.ValidateRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Release releases the worker pool. The upserter should not be used after
// calling Release.
func (u *Upserter) Release() {
	if u.pool != nil {
		u.pool.Release()
	}
}
