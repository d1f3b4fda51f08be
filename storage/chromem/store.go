package chromem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/philippgille/chromem-go"
	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/storage"
)

const (
	// DefaultPath is the on-disk database directory.
	DefaultPath = "data"

	// DefaultCollection is the collection records are written to.
	DefaultCollection = "reddit_posts"
)

// errNoEmbedding is returned if chromem ever asks us to embed content; every
// document and query arrives with its vector already computed.
var errNoEmbedding = errors.New("chromem: embeddings must be supplied by the caller")

// VectorStore implements storage.VectorStore on an embedded chromem-go database.
type VectorStore struct {
	db          *chromem.DB
	collection  *chromem.Collection
	name        string
	concurrency int
	closed      atomic.Bool
	logger      *slog.Logger
}

var _ storage.VectorStore = (*VectorStore)(nil)

// Option configures a VectorStore.
type Option func(*options)

type options struct {
	compress    bool
	concurrency int
	logger      *slog.Logger
}

// WithCompress gzips the persisted documents.
func WithCompress(compress bool) Option {
	return func(o *options) {
		o.compress = compress
	}
}

// WithConcurrency sets how many goroutines chromem uses when adding documents.
// Default is runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Open opens (or creates) the database at path and the named collection.
// An empty path opens a non-persistent in-memory database.
func Open(path, collection string, opts ...Option) (*VectorStore, error) {
	o := options{
		concurrency: runtime.NumCPU(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if collection == "" {
		collection = DefaultCollection
	}

	var db *chromem.DB
	if path == "" {
		db = chromem.NewDB()
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", path, err)
		}
		var err error
		db, err = chromem.NewPersistentDB(path, o.compress)
		if err != nil {
			return nil, fmt.Errorf("creating chromem DB: %w", err)
		}
	}

	col, err := db.GetOrCreateCollection(collection, nil, noEmbedding)
	if err != nil {
		return nil, fmt.Errorf("getting/creating collection %s: %w", collection, err)
	}

	logger := o.logger.With("component", "chromem-store", "collection", collection)
	logger.Info("vector store opened", "path", path, "documents", col.Count())

	return &VectorStore{
		db:          db,
		collection:  col,
		name:        collection,
		concurrency: o.concurrency,
		logger:      logger,
	}, nil
}

// OpenMemory opens a non-persistent store for tests.
func OpenMemory(collection string, opts ...Option) (*VectorStore, error) {
	return Open("", collection, opts...)
}

func noEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, errNoEmbedding
}

// Upsert writes every record in the batch. Documents with an existing id
// replace the stored document.
func (s *VectorStore) Upsert(ctx context.Context, batch *core.Batch) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}
	if err := core.ValidateBatch(batch); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrInvalidBatch, err)
	}
	if batch.Len() == 0 {
		return nil
	}

	docs := make([]chromem.Document, batch.Len())
	for i := range batch.IDs {
		docs[i] = chromem.Document{
			ID:        batch.IDs[i],
			Content:   batch.Documents[i],
			Metadata:  stringifyMetadata(batch.Metadatas[i]),
			Embedding: batch.Embeddings[i],
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, s.concurrency); err != nil {
		return fmt.Errorf("adding documents: %w", err)
	}

	s.logger.Debug("upserted documents", "count", len(docs))
	return nil
}

// Count returns the number of documents in the collection.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	if s.closed.Load() {
		return 0, storage.ErrStorageClosed
	}
	return s.collection.Count(), nil
}

// Query returns up to n documents nearest to embedding.
func (s *VectorStore) Query(ctx context.Context, embedding []float32, n int) ([]core.Hit, error) {
	if s.closed.Load() {
		return nil, storage.ErrStorageClosed
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", storage.ErrInvalidQuery, n)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", storage.ErrInvalidQuery)
	}

	// chromem requires nResults <= document count
	count := s.collection.Count()
	if count == 0 {
		return []core.Hit{}, nil
	}
	if n > count {
		n = count
	}

	results, err := s.collection.QueryEmbedding(ctx, embedding, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", s.name, err)
	}

	hits := make([]core.Hit, len(results))
	for i, r := range results {
		hits[i] = core.Hit{
			ID:       r.ID,
			Text:     r.Content,
			Metadata: parseMetadata(r.Metadata),
			Score:    r.Similarity,
		}
	}
	return hits, nil
}

// Close marks the store closed. Persistent databases write through on every
// upsert, so nothing is flushed here.
func (s *VectorStore) Close() error {
	s.closed.Store(true)
	return nil
}
