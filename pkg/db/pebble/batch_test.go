package pebble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaymalaga/Investment-dao/pkg/db"
)

func TestBatch(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store db.KVStore)
	}{
		{
			name: "commit_applies_all_writes",
			fn:   testBatchCommit,
		},
		{
			name: "close_discards_writes",
			fn:   testBatchDiscard,
		},
		{
			name: "writes_after_commit_fail",
			fn:   testBatchDone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewMemKVStore()
			require.NoError(t, err)
			defer store.Close() //nolint:errcheck

			tc.fn(t, store)
		})
	}
}

func testBatchCommit(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()
	defer batch.Close() //nolint:errcheck

	keys := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	for i, key := range keys {
		err := batch.Put(key, []byte{byte(i)})
		require.NoError(t, err)
	}

	// Nothing is visible before commit.
	_, err := store.Get(keys[0])
	assert.ErrorIs(t, err, ErrNotFound)

	err = batch.Commit()
	require.NoError(t, err)

	for i, key := range keys {
		got, err := store.Get(key)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, got)
	}
}

func testBatchDiscard(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()

	err := batch.Put([]byte("a"), []byte("1"))
	require.NoError(t, err)

	err = batch.Close()
	require.NoError(t, err)

	_, err = store.Get([]byte("a"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func testBatchDone(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()
	defer batch.Close() //nolint:errcheck

	err := batch.Put([]byte("a"), []byte("1"))
	require.NoError(t, err)

	err = batch.Commit()
	require.NoError(t, err)

	err = batch.Put([]byte("b"), []byte("2"))
	assert.ErrorIs(t, err, ErrBatchDone)

	err = batch.Commit()
	assert.ErrorIs(t, err, ErrBatchDone)
}
