package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/harvest/ai"
	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/storage"
)

const (
	// DefaultN is the number of results returned when Query.N is unset.
	DefaultN = 5

	// CandidateFactor is how many candidates are fetched per requested
	// result, leaving room for the upvote filter.
	CandidateFactor = 4

	// VerbatimBoost is added to the score of hits containing every query
	// keyword.
	VerbatimBoost = 0.3
)

// Query describes a search request.
type Query struct {
	Text       string
	N          int
	MinUpvotes int64
}

// Result is a ranked search hit. Score includes any verbatim boost;
// Hit.Score is the raw similarity from the store.
type Result struct {
	Hit      core.Hit
	Score    float32
	Verbatim bool
}

// Searcher performs semantic search over stored posts.
type Searcher struct {
	store    storage.VectorStore
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(store storage.VectorStore, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrVectorStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		store:    store,
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns up to q.N posts most similar to q.Text.
func (s *Searcher) Search(ctx context.Context, q Query) ([]*Result, error) {
	return s.SearchWithMonitor(ctx, q, nil)
}

// SearchWithMonitor is Search with callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, q Query, monitor SearchMonitor) ([]*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return nil, ErrEmptyQuery
	}
	if q.N <= 0 {
		q.N = DefaultN
	}

	monitor.Start(q)

	count, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Error("error counting records", "err", err)
		return nil, err
	}
	if count == 0 {
		monitor.Finish(nil)
		return []*Result{}, nil
	}

	embedding, err := s.embedder.EmbedText(ctx, q.Text)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", q.Text, "err", err)
		return nil, err
	}

	candidates := min(q.N*CandidateFactor, count)
	hits, err := s.store.Query(ctx, embedding, candidates)
	if err != nil {
		s.logger.Error("error querying for similar records", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(hits)

	terms := keywords(q.Text)
	results := make([]*Result, 0, len(hits))
	for _, hit := range hits {
		if hit.Metadata.Upvotes < q.MinUpvotes {
			monitor.Filtered(hit)
			continue
		}

		r := &Result{Hit: hit, Score: hit.Score}
		if containsAll(hit.Text, terms) {
			r.Score += VerbatimBoost
			r.Verbatim = true
			monitor.VerbatimHit(hit)
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > q.N {
		results = results[:q.N]
	}
	monitor.Finish(results)

	s.logger.Debug("search complete", "query", q.Text, "candidates", len(hits), "results", len(results))
	return results, nil
}
