// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/lvldb"
)

func TestBucketIsolation(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	a := kv.Bucket("a").NewStore(db)
	b := kv.Bucket("b").NewStore(db)

	require.NoError(t, a.Put([]byte("k"), []byte("va")))
	require.NoError(t, b.Put([]byte("k"), []byte("vb")))

	got, err := a.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), got)

	got, err = b.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("vb"), got)

	require.NoError(t, a.Delete([]byte("k")))
	has, err := a.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)

	has, err = b.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestBucketBatch(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	a := kv.Bucket("a").NewStore(db)
	b := kv.Bucket("b").NewStore(db)

	// one batch, buffered through two bucketed putters
	batch := db.NewBatch()
	require.NoError(t, kv.Bucket("a").NewPutter(batch).Put([]byte("k"), []byte("va")))
	require.NoError(t, kv.Bucket("b").NewPutter(batch).Put([]byte("k"), []byte("vb")))
	assert.Equal(t, 2, batch.Len())

	// nothing lands before Write
	has, err := a.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, batch.Write())

	got, err := a.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("va"), got)

	got, err = b.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("vb"), got)

	// a bucketed store hands out prefixed batches too
	batch = a.NewBatch()
	require.NoError(t, batch.Put([]byte("k2"), []byte("v2")))
	require.NoError(t, batch.Write())

	got, err = a.Get([]byte("k2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	has, err = b.Has([]byte("k2"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBucketIterate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	store := kv.Bucket("p").NewStore(db)
	other := kv.Bucket("q").NewStore(db)

	require.NoError(t, store.Put([]byte{1}, []byte("one")))
	require.NoError(t, store.Put([]byte{2}, []byte("two")))
	require.NoError(t, other.Put([]byte{3}, []byte("three")))

	iter := store.NewIterator(kv.Range{})
	defer iter.Release()

	var keys [][]byte
	for iter.Next() {
		keys = append(keys, append([]byte(nil), iter.Key()...))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, [][]byte{{1}, {2}}, keys)
}
