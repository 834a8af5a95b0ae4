package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fibSource = "fun fib n = case n in 0 => 0 | 1 => 1 | _ => fib (n - 1) + fib (n - 2)"

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	key := Key{Source: fibSource, Entry: "fib", Args: []int64{10}}
	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.Put(ctx, key, Record{Value: 55, Calls: 177, MaxDepth: 10, Created: created}))

	rec, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Record{Value: 55, Calls: 177, MaxDepth: 10, Created: created}, rec)

	// Any difference in source, entry or arguments is a different key.
	for _, other := range []Key{
		{Source: fibSource + " ", Entry: "fib", Args: []int64{10}},
		{Source: fibSource, Entry: "main", Args: []int64{10}},
		{Source: fibSource, Entry: "fib", Args: []int64{11}},
		{Source: fibSource, Entry: "fib", Args: []int64{1, 0}},
	} {
		_, ok, err := s.Get(ctx, other)
		require.NoError(t, err)
		assert.False(t, ok, "%+v", other)
	}
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	key := Key{Source: fibSource, Entry: "fib", Args: []int64{-3}}

	require.NoError(t, s.Put(ctx, key, Record{Value: 1, Calls: 1, MaxDepth: 1}))
	require.NoError(t, s.Put(ctx, key, Record{Value: 2, Calls: 5, MaxDepth: 3}))

	rec, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), rec.Value)
	assert.Equal(t, 5, rec.Calls)
	assert.False(t, rec.Created.IsZero())

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)
	key := Key{Source: fibSource, Entry: "fib", Args: []int64{20}}
	require.NoError(t, s.Put(ctx, key, Record{Value: 6765, Calls: 21891, MaxDepth: 20}))
	require.NoError(t, s.Close())

	s2, err := Open(ctx, path)
	require.NoError(t, err)
	defer s2.Close()
	rec, ok, err := s2.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(6765), rec.Value)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Put(ctx, Key{Source: "a", Entry: "f"}, Record{Created: old}))
	require.NoError(t, s.Put(ctx, Key{Source: "b", Entry: "f"}, Record{Created: recent}))

	n, err := s.Prune(ctx, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, err := s.Get(ctx, Key{Source: "b", Entry: "f"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRejectsForeignSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("PRAGMA user_version = 7")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaVersion))
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Digest(""))
	assert.NotEqual(t, Digest("a"), Digest("b"))
	assert.Equal(t, "", encodeArgs(nil))
	assert.Equal(t, "1,-2,3", encodeArgs([]int64{1, -2, 3}))
}
