package chromem

import (
	"context"
	"testing"

	"github.com/poiesic/harvest/ai/mock"
	"github.com/poiesic/harvest/core"
	"github.com/poiesic/harvest/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, text string, ups int64) *core.Record {
	return &core.Record{
		ID:   id,
		Text: text,
		Metadata: core.Metadata{
			Title:       text,
			Subreddit:   "crypto",
			Author:      "alice",
			Timestamp:   1700000000.25,
			Upvotes:     ups,
			NumComments: 2,
			Flair:       "NEWS",
		},
		Embedding: mock.Vector(text, 16),
	}
}

func TestUpsertAndCount(t *testing.T) {
	store, err := OpenMemory("")
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	batch := core.NewBatch([]*core.Record{record("t3_a", "alpha", 1), record("t3_b", "beta", 2)})
	require.NoError(t, store.Upsert(ctx, batch))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUpsert_SameIDOverwrites(t *testing.T) {
	store, err := OpenMemory("")
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, core.NewBatch([]*core.Record{record("t3_a", "alpha", 1)})))
	updated := record("t3_a", "alpha", 99)
	require.NoError(t, store.Upsert(ctx, core.NewBatch([]*core.Record{updated})))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	hits, err := store.Query(ctx, updated.Embedding, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, int64(99), hits[0].Metadata.Upvotes)
}

func TestUpsert_EmptyBatch(t *testing.T) {
	store, err := OpenMemory("")
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Upsert(context.Background(), &core.Batch{}))
}

func TestUpsert_MisalignedBatch(t *testing.T) {
	store, err := OpenMemory("")
	require.NoError(t, err)
	defer store.Close()

	batch := core.NewBatch([]*core.Record{record("t3_a", "alpha", 1)})
	batch.Documents = nil

	err = store.Upsert(context.Background(), batch)
	assert.ErrorIs(t, err, storage.ErrInvalidBatch)
	assert.ErrorIs(t, err, core.ErrMisalignedBatch)
}

func TestQuery_RoundTripsMetadata(t *testing.T) {
	store, err := OpenMemory("")
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	a := record("t3_a", "alpha", 7)
	require.NoError(t, store.Upsert(ctx, core.NewBatch([]*core.Record{a, record("t3_b", "beta", 3)})))

	hits, err := store.Query(ctx, a.Embedding, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "t3_a", hits[0].ID)
	assert.Equal(t, "alpha", hits[0].Text)
	assert.Equal(t, a.Metadata, hits[0].Metadata)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-3)
}

func TestQuery_ClampsToCount(t *testing.T) {
	store, err := OpenMemory("")
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	hits, err := store.Query(ctx, mock.Vector("x", 16), 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, store.Upsert(ctx, core.NewBatch([]*core.Record{record("t3_a", "alpha", 1), record("t3_b", "beta", 2)})))

	hits, err = store.Query(ctx, mock.Vector("x", 16), 5)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
}

func TestQuery_InvalidArguments(t *testing.T) {
	store, err := OpenMemory("")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Query(context.Background(), mock.Vector("x", 16), 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)

	_, err = store.Query(context.Background(), nil, 1)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestPersistentStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir, "reddit_posts")
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, core.NewBatch([]*core.Record{record("t3_a", "alpha", 1)})))
	require.NoError(t, store.Close())

	reopened, err := Open(dir, "reddit_posts")
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClosedStore(t *testing.T) {
	store, err := OpenMemory("")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Count(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Upsert(context.Background(), &core.Batch{}), storage.ErrStorageClosed)
}

func TestMetadataConversion(t *testing.T) {
	m := core.Metadata{Title: "t", Timestamp: 1700000000.5, Upvotes: 12, NumComments: 3}
	assert.Equal(t, m, parseMetadata(stringifyMetadata(m.Map())))

	assert.Equal(t, int64(4), parseInt("4.0"))
	assert.Equal(t, int64(0), parseInt("n/a"))
}
