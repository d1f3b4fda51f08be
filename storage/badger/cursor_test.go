package badger

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/harvest/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorStore_EmptyByDefault(t *testing.T) {
	store, backend, err := NewMemoryCursorStore("")
	require.NoError(t, err)
	defer backend.Close()

	assert.True(t, store.Load(context.Background()).IsZero())
}

func TestCursorStore_RoundTrip(t *testing.T) {
	store, backend, err := NewMemoryCursorStore("r/crypto")
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	for _, c := range []core.Cursor{"t3_abc", "t3_def", ""} {
		require.NoError(t, store.Save(ctx, c))
		assert.Equal(t, c, store.Load(ctx))
	}
}

func TestCursorStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	require.NoError(t, NewCursorStore(NewCheckpointRepository(backend), "").Save(ctx, "t3_abc"))
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	assert.Equal(t, core.Cursor("t3_abc"), NewCursorStore(NewCheckpointRepository(backend), "").Load(ctx))
}

func TestCursorStore_CorruptValueLoadsEmpty(t *testing.T) {
	store, backend, err := NewMemoryCursorStore("src")
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeCheckpointKey("src"), []byte{0xff}); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	assert.True(t, store.Load(context.Background()).IsZero())
}

func TestCursorStore_ClosedBackend(t *testing.T) {
	store, backend, err := NewMemoryCursorStore("src")
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	assert.True(t, store.Load(context.Background()).IsZero())
	assert.Error(t, store.Save(context.Background(), "t3_abc"))
}
