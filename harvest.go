// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package harvest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/poiesic/harvest/ai"
	"github.com/poiesic/harvest/ai/fastembed"
	"github.com/poiesic/harvest/ai/mock"
	"github.com/poiesic/harvest/ai/openai"
	"github.com/poiesic/harvest/config"
	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/crawl"
	"github.com/poiesic/harvest/reddit"
	"github.com/poiesic/harvest/search"
	"github.com/poiesic/harvest/storage"
	"github.com/poiesic/harvest/storage/badger"
	"github.com/poiesic/harvest/storage/chromem"
	"github.com/poiesic/harvest/storage/file"
	"github.com/poiesic/harvest/storage/qdrant"
)

// Harvester owns the stores and embedding provider described by a Config
// and builds crawlers and searchers on top of them.
type Harvester struct {
	cfg      *config.Config
	backend  *badger.Backend
	cursors  storage.CursorStore
	store    storage.VectorStore
	provider ai.AIProvider
	progress io.Writer
	logger   *slog.Logger
}

// Stats describes the current state of a harvest.
type Stats struct {
	Collection string
	Records    int
	Cursor     core.Cursor
}

// Option configures a Harvester.
type Option func(*options)

type options struct {
	provider ai.AIProvider
	progress io.Writer
	logger   *slog.Logger
}

// WithProvider uses provider instead of building one from the config.
// The Harvester takes ownership and closes it.
func WithProvider(provider ai.AIProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithProgressWriter sets where crawl progress is written when enabled.
// Default is os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(o *options) {
		o.progress = w
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New opens the cursor store, vector store and embedding provider named by
// cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) (*Harvester, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{progress: os.Stderr, logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	h := &Harvester{cfg: cfg, progress: o.progress, logger: o.logger}

	if err := h.openCursors(); err != nil {
		h.Close()
		return nil, err
	}
	if err := h.openVectorStore(); err != nil {
		h.Close()
		return nil, err
	}

	h.provider = o.provider
	if h.provider == nil {
		provider, err := newProvider(cfg.AI)
		if err != nil {
			h.Close()
			return nil, err
		}
		h.provider = provider
	}

	return h, nil
}

func (h *Harvester) openCursors() error {
	switch h.cfg.Cursor.Backend {
	case config.CursorBadger:
		backend, err := badger.OpenBackend(h.cfg.Cursor.Path, false)
		if err != nil {
			return fmt.Errorf("opening cursor database: %w", err)
		}
		h.backend = backend
		h.cursors = badger.NewCursorStore(badger.NewCheckpointRepository(backend), h.cfg.Cursor.Source)
	default:
		h.cursors = file.NewCursorStore(h.cfg.Cursor.Path, file.WithLogger(h.logger))
	}
	return nil
}

func (h *Harvester) openVectorStore() error {
	vs := h.cfg.VectorStore
	switch vs.Backend {
	case config.VectorQdrant:
		store, err := qdrant.Open(qdrant.Config{
			Host:       vs.Qdrant.Host,
			Port:       vs.Qdrant.Port,
			UseTLS:     vs.Qdrant.UseTLS,
			APIKey:     vs.Qdrant.APIKey,
			Collection: vs.Collection,
		}, h.logger)
		if err != nil {
			return err
		}
		h.store = store
	default:
		store, err := chromem.Open(vs.Chromem.Path, vs.Collection,
			chromem.WithCompress(vs.Chromem.Compress),
			chromem.WithLogger(h.logger))
		if err != nil {
			return err
		}
		h.store = store
	}
	return nil
}

func newProvider(c config.AIConfig) (ai.AIProvider, error) {
	aiConfig := ai.NewConfig(
		ai.WithProvider(c.Provider),
		ai.WithEmbeddingHost(c.Host),
		ai.WithEmbeddingModel(c.Model),
		ai.WithCacheDir(c.CacheDir),
		ai.WithMaxLength(c.MaxLength),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}

	switch aiConfig.Provider {
	case ai.ProviderFastEmbed:
		return fastembed.NewProvider(aiConfig)
	case ai.ProviderMock:
		return mock.NewMockProvider(), nil
	default:
		return openai.NewProvider(aiConfig)
	}
}

// CursorStore returns the configured cursor store.
func (h *Harvester) CursorStore() storage.CursorStore {
	return h.cursors
}

// VectorStore returns the configured vector store.
func (h *Harvester) VectorStore() storage.VectorStore {
	return h.store
}

// NewClient builds a listing client from the reddit settings.
func (h *Harvester) NewClient(opts ...reddit.Option) (*reddit.Client, error) {
	r := h.cfg.Reddit
	base := []reddit.Option{
		reddit.WithEndpoint(r.Endpoint),
		reddit.WithUserAgent(r.UserAgent),
		reddit.WithLimit(r.Limit),
		reddit.WithLogger(h.logger),
	}
	if r.Timeout > 0 {
		base = append(base, reddit.WithTimeout(r.Timeout))
	}
	return reddit.NewClient(append(base, opts...)...)
}

// NewThrottle builds a throttle from the throttle settings.
func (h *Harvester) NewThrottle(opts ...crawl.ThrottleOption) *crawl.Throttle {
	t := h.cfg.Throttle
	base := []crawl.ThrottleOption{
		crawl.WithRequestLimit(t.RequestLimit),
		crawl.WithCooldown(t.Cooldown),
		crawl.WithPageDelay(t.PageDelay),
		crawl.WithThrottleLogger(h.logger),
	}
	return crawl.NewThrottle(append(base, opts...)...)
}

// NewUpserter builds a page upserter on the configured embedder and store.
// Callers must Release it.
func (h *Harvester) NewUpserter() (*crawl.Upserter, error) {
	opts := []crawl.UpserterOption{crawl.WithUpserterLogger(h.logger)}
	if h.cfg.Crawl.PoolSize > 0 {
		opts = append(opts, crawl.WithPoolSize(h.cfg.Crawl.PoolSize))
	}
	return crawl.NewUpserter(h.provider.Embedder(), h.store, opts...)
}

// Crawl runs one crawl with the configured client, throttle and stores.
// Extra options are applied after the configured ones.
func (h *Harvester) Crawl(ctx context.Context, opts ...crawl.Option) (*crawl.Result, error) {
	client, err := h.NewClient()
	if err != nil {
		return nil, err
	}

	upserter, err := h.NewUpserter()
	if err != nil {
		return nil, err
	}
	defer upserter.Release()

	base := []crawl.Option{
		crawl.WithThrottle(h.NewThrottle()),
		crawl.WithLogger(h.logger),
	}
	if h.cfg.Crawl.Progress {
		base = append(base, crawl.WithProgress(h.progress, h.cfg.Crawl.ProgressInterval))
	}

	crawler, err := crawl.NewCrawler(client, h.cursors, upserter, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return crawler.Run(ctx)
}

// NewSearcher returns a searcher over the configured store and embedder.
func (h *Harvester) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithLogger(h.logger)}, opts...)
	return search.NewSearcher(h.store, h.provider.Embedder(), opts...)
}

// Stats reports the record count and saved cursor.
func (h *Harvester) Stats(ctx context.Context) (*Stats, error) {
	count, err := h.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Collection: h.cfg.VectorStore.Collection,
		Records:    count,
		Cursor:     h.cursors.Load(ctx),
	}, nil
}

// Close releases the provider and stores. Every component is closed even if
// an earlier one fails.
func (h *Harvester) Close() error {
	var errs []error

	if h.provider != nil {
		if err := h.provider.Close(); err != nil {
			h.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}
	if h.store != nil {
		if err := h.store.Close(); err != nil {
			h.logger.Error("error closing vector store", "err", err)
			errs = append(errs, err)
		}
	}
	if h.backend != nil {
		if err := h.backend.Close(); err != nil {
			h.logger.Error("error closing cursor database", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
