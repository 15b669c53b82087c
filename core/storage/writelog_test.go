package storage

import (
	"crypto/sha256"
	"testing"

	kwiltypes "github.com/kwilteam/kwil-db/core/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWriteLogReadThrough(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Set("k1", []byte("stored")))

	wl := NewWriteLog(store)

	v, ok, err := wl.Get("k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("stored"), v)

	require.NoError(t, wl.Set("k1", []byte("overlaid")))
	v, ok, err = wl.Get("k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("overlaid"), v)

	// the store itself is untouched until commit
	v, ok, err = store.Get("k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("stored"), v)

	require.NoError(t, wl.Delete("k1"))
	_, ok, err = wl.Get("k1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWriteLogCommit(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Set("stale", []byte("x")))

	wl := NewWriteLog(store)
	require.NoError(t, wl.Set("fresh", []byte("y")))
	require.NoError(t, wl.Delete("stale"))
	require.NoError(t, wl.Commit())

	_, ok, err := store.Get("stale")
	require.NoError(t, err)
	require.False(t, ok)

	v, ok, err := store.Get("fresh")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("y"), v)
}

func TestBatchRollbackOnError(t *testing.T) {
	wl := NewWriteLog(NewMemStore())
	require.NoError(t, wl.Set("outer", []byte("kept")))

	boom := errors.New("rejected")
	err := wl.WithBatch(func(batch *WriteLog) error {
		require.NoError(t, batch.Set("inner", []byte("dropped")))
		batch.EmitEvent(Event{Type: "dropped_event"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, ok, err := wl.Get("inner")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, wl.EventsByType("dropped_event"))

	v, ok, err := wl.Get("outer")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("kept"), v)
}

func TestBatchMergeOnSuccess(t *testing.T) {
	wl := NewWriteLog(NewMemStore())

	err := wl.WithBatch(func(batch *WriteLog) error {
		require.NoError(t, batch.Set("inner", []byte("merged")))
		batch.EmitEvent(Event{Type: "merged_event"})
		return nil
	})
	require.NoError(t, err)

	v, ok, err := wl.Get("inner")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("merged"), v)
	require.Len(t, wl.EventsByType("merged_event"), 1)
}

func TestBatchSeesParentState(t *testing.T) {
	wl := NewWriteLog(NewMemStore())
	require.NoError(t, wl.Set("parent", []byte("visible")))
	wl.SetTxHash(kwiltypes.Hash(sha256.Sum256([]byte("action"))))

	err := wl.WithBatch(func(batch *WriteLog) error {
		v, ok, err := batch.Get("parent")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, []byte("visible"), v)
		require.Equal(t, wl.TxHash(), batch.TxHash())
		return nil
	})
	require.NoError(t, err)
}

func TestIterateMergesOverlay(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Set("p/a", []byte("1")))
	require.NoError(t, store.Set("p/b", []byte("2")))
	require.NoError(t, store.Set("q/c", []byte("3")))

	wl := NewWriteLog(store)
	require.NoError(t, wl.Set("p/d", []byte("4")))
	require.NoError(t, wl.Delete("p/b"))

	var keys []string
	err := wl.Iterate("p/", func(key string, value []byte) (bool, error) {
		keys = append(keys, key)
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"p/a", "p/d"}, keys)
}
