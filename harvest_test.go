package harvest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/poiesic/harvest/ai/mock"
	"github.com/poiesic/harvest/config"
	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/crawl"
	"github.com/poiesic/harvest/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `{"kind": "Listing", "data": {"after": null, "children": [
  {"kind": "t3", "data": {"name": "t3_a", "title": "Bitcoin halving explained", "selftext": "Supply drops.", "ups": 40}},
  {"kind": "t3", "data": {"name": "t3_b", "title": "Ethereum gas fees", "selftext": "", "ups": 3}}
]}}`

func newListingServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listing))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, endpoint string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Reddit.Endpoint = endpoint
	cfg.Cursor.Path = filepath.Join(t.TempDir(), "secret.json")
	cfg.VectorStore.Chromem.Path = ""
	cfg.AI.Provider = "mock"
	return cfg
}

func TestNew_Defaults(t *testing.T) {
	cfg := config.Default()
	cfg.Cursor.Path = filepath.Join(t.TempDir(), "secret.json")
	cfg.VectorStore.Chromem.Path = filepath.Join(t.TempDir(), "data")

	h, err := New(cfg, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer h.Close()

	assert.NotNil(t, h.CursorStore())
	assert.NotNil(t, h.VectorStore())
	assert.DirExists(t, cfg.VectorStore.Chromem.Path)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cursor.Backend = "redis"

	h, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrUnknownCursorBackend)
	assert.Nil(t, h)
}

func TestNew_BadgerPathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	cfg := testConfig(t, "http://unused")
	cfg.Cursor.Backend = config.CursorBadger
	cfg.Cursor.Path = path

	h, err := New(cfg)
	assert.Error(t, err)
	assert.Nil(t, h)
}

func TestHarvester_CrawlSearchStats(t *testing.T) {
	var calls atomic.Int32
	srv := newListingServer(t, &calls)
	cfg := testConfig(t, srv.URL)

	h, err := New(cfg)
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	res, err := h.Crawl(ctx)
	require.NoError(t, err)
	assert.Equal(t, crawl.NoCursorStop, res.Reason)
	assert.Equal(t, 2, res.Upserted)
	assert.Equal(t, int32(1), calls.Load())

	raw, err := os.ReadFile(cfg.Cursor.Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"nextPost": null`)

	stats, err := h.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reddit_posts", stats.Collection)
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, core.Cursor(""), stats.Cursor)

	searcher, err := h.NewSearcher()
	require.NoError(t, err)
	results, err := searcher.Search(ctx, search.Query{Text: "bitcoin halving", MinUpvotes: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "t3_a", results[0].Hit.ID)
	assert.True(t, results[0].Verbatim)
}

func TestHarvester_CrawlTwiceIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	srv := newListingServer(t, &calls)

	h, err := New(testConfig(t, srv.URL))
	require.NoError(t, err)
	defer h.Close()

	for i := 0; i < 2; i++ {
		_, err := h.Crawl(context.Background())
		require.NoError(t, err)
	}

	stats, err := h.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Records)
}

func TestHarvester_BadgerCursorAndProgress(t *testing.T) {
	var calls atomic.Int32
	srv := newListingServer(t, &calls)

	cfg := testConfig(t, srv.URL)
	cfg.Cursor.Backend = config.CursorBadger
	cfg.Cursor.Path = filepath.Join(t.TempDir(), "state")
	cfg.Crawl.Progress = true
	cfg.Crawl.ProgressInterval = 1

	var progress bytes.Buffer
	h, err := New(cfg, WithProgressWriter(&progress))
	require.NoError(t, err)
	defer h.Close()

	res, err := h.Crawl(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Upserted)
	assert.Contains(t, progress.String(), "Progress: 2 records")

	require.NoError(t, h.CursorStore().Save(context.Background(), "t3_resume"))
	assert.Equal(t, core.Cursor("t3_resume"), h.CursorStore().Load(context.Background()))
}

func TestHarvester_CrawlHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	h, err := New(testConfig(t, srv.URL))
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.CursorStore().Save(context.Background(), "t3_prev"))

	res, err := h.Crawl(context.Background())
	assert.Error(t, err)
	assert.Equal(t, crawl.ErrorStop, res.Reason)
	assert.Equal(t, core.Cursor("t3_prev"), h.CursorStore().Load(context.Background()))
}

func TestHarvester_Close(t *testing.T) {
	provider := mock.NewMockProvider()
	h, err := New(testConfig(t, "http://unused"), WithProvider(provider))
	require.NoError(t, err)

	require.NoError(t, h.Close())
	assert.True(t, provider.(*mock.MockProvider).Closed())
}
