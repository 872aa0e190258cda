// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	b1 := kv.Bucket("b1-").NewGetPutter(db)
	b2 := kv.Bucket("b2-").NewGetPutter(db)

	require.NoError(t, b1.Put([]byte("key"), []byte("value1")))
	require.NoError(t, b2.Put([]byte("key"), []byte("value2")))

	v1, err := b1.Get([]byte("key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value1"), v1)

	v2, err := b2.Get([]byte("key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value2"), v2)

	// raw keys carry the prefix
	raw, err := db.Get([]byte("b1-key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value1"), raw)

	// delete is scoped to the bucket
	require.NoError(t, b1.Delete([]byte("key")))
	_, err = b1.Get([]byte("key"))
	assert.True(t, b1.IsNotFound(err))
	v2, err = b2.Get([]byte("key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("value2"), v2)
}

func TestBucketIterate(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	bucket := kv.Bucket("p-").NewGetPutter(db)
	require.NoError(t, bucket.Put([]byte("a"), []byte("1")))
	require.NoError(t, bucket.Put([]byte("b"), []byte("2")))
	require.NoError(t, db.Put([]byte("q-c"), []byte("3")))

	it := bucket.NewIterator(kv.Range{})
	defer it.Release()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.NoError(t, it.Error())
	assert.Equal(t, []string{"a", "b"}, keys)
}
