package qdrant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/storage"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
)

const (
	// DefaultHost is the Qdrant gRPC host.
	DefaultHost = "localhost"

	// DefaultPort is the Qdrant gRPC port.
	DefaultPort = 6334

	// defaultMaxMessageSize bounds gRPC messages; a full page of 768-d
	// vectors with text stays far below it.
	defaultMaxMessageSize = 50 * 1024 * 1024
)

// pointsClient is the subset of *qdrant.Client the store uses.
type pointsClient interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Count(ctx context.Context, request *qdrant.CountPoints) (uint64, error)
	Close() error
}

// Config describes the Qdrant connection and target collection.
type Config struct {
	Host       string
	Port       int
	UseTLS     bool
	APIKey     string
	Collection string
}

// VectorStore implements storage.VectorStore on a Qdrant collection.
// The collection is created on first upsert, sized to the batch's vectors.
type VectorStore struct {
	client     pointsClient
	collection string
	logger     *slog.Logger

	mu      sync.Mutex
	created bool
	closed  atomic.Bool
}

var _ storage.VectorStore = (*VectorStore)(nil)

// Open connects to Qdrant over gRPC.
func Open(cfg Config, logger *slog.Logger) (*VectorStore, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("qdrant: invalid port: %d", cfg.Port)
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		UseTLS: cfg.UseTLS,
		APIKey: cfg.APIKey,
		GrpcOptions: []grpc.DialOption{
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(defaultMaxMessageSize),
				grpc.MaxCallSendMsgSize(defaultMaxMessageSize),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: connecting to %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	return newVectorStore(client, cfg.Collection, logger), nil
}

func newVectorStore(client pointsClient, collection string, logger *slog.Logger) *VectorStore {
	if collection == "" {
		collection = "reddit_posts"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VectorStore{
		client:     client,
		collection: collection,
		logger:     logger.With("component", "qdrant-store", "collection", collection),
	}
}

// ensureCollection creates the collection with the given vector size if it
// does not exist yet.
func (s *VectorStore) ensureCollection(ctx context.Context, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.created {
		return nil
	}

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("checking collection %s: %w", s.collection, err)
	}
	if !exists {
		err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(size),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("creating collection %s: %w", s.collection, err)
		}
		s.logger.Info("created collection", "vector_size", size)
	}

	s.created = true
	return nil
}

// Upsert writes the batch as points keyed by core.PointID and waits for
// the write to be applied.
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

	size := len(batch.Embeddings[0])
	for i, emb := range batch.Embeddings {
		if len(emb) != size {
			return fmt.Errorf("%w: index %d has %d dimensions, want %d",
				storage.ErrDimensionMismatch, i, len(emb), size)
		}
	}

	if err := s.ensureCollection(ctx, size); err != nil {
		return err
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         toPoints(batch),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upserting %d points: %w", batch.Len(), err)
	}

	s.logger.Debug("upserted points", "count", batch.Len())
	return nil
}

// Count returns the exact number of points in the collection.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	if s.closed.Load() {
		return 0, storage.ErrStorageClosed
	}
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return 0, fmt.Errorf("checking collection %s: %w", s.collection, err)
	}
	if !exists {
		return 0, nil
	}
	n, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("counting points: %w", err)
	}
	return int(n), nil
}

// Query returns up to n points nearest to the embedding.
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

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return nil, fmt.Errorf("checking collection %s: %w", s.collection, err)
	}
	if !exists {
		return []core.Hit{}, nil
	}

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(n)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", s.collection, err)
	}

	hits := make([]core.Hit, len(points))
	for i, p := range points {
		hits[i] = toHit(p)
	}
	return hits, nil
}

// Close closes the gRPC connection.
func (s *VectorStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.client.Close()
}
