// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket provides logical bucket for kv store.
type Bucket string

// NewGetPutter creates a bucket get-putter from the source get-putter.
// All keys are transparently prefixed with the bucket name.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &bucketGetPutter{string(b), src}
}

type bucketGetPutter struct {
	prefix string
	src    GetPutter
}

func (b *bucketGetPutter) makeKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b.prefix)+len(key)), b.prefix...), key...)
}

func (b *bucketGetPutter) Get(key []byte) ([]byte, error) {
	return b.src.Get(b.makeKey(key))
}

func (b *bucketGetPutter) Has(key []byte) (bool, error) {
	return b.src.Has(b.makeKey(key))
}

func (b *bucketGetPutter) IsNotFound(err error) bool {
	return b.src.IsNotFound(err)
}

func (b *bucketGetPutter) Put(key, value []byte) error {
	return b.src.Put(b.makeKey(key), value)
}

func (b *bucketGetPutter) Delete(key []byte) error {
	return b.src.Delete(b.makeKey(key))
}

func (b *bucketGetPutter) NewBatch() Batch {
	return &bucketBatch{b, b.src.NewBatch()}
}

func (b *bucketGetPutter) NewIterator(r Range) Iterator {
	if len(r.From) > 0 || len(r.To) > 0 {
		return b.src.NewIterator(Range{
			From: b.makeKey(r.From),
			To:   b.makeKey(r.To),
		})
	}
	pr := util.BytesPrefix([]byte(b.prefix))
	return &bucketIterator{
		b.src.NewIterator(Range{From: pr.Start, To: pr.Limit}),
		len(b.prefix),
	}
}

type bucketBatch struct {
	b     *bucketGetPutter
	batch Batch
}

func (bb *bucketBatch) Put(key, value []byte) error {
	return bb.batch.Put(bb.b.makeKey(key), value)
}

func (bb *bucketBatch) Delete(key []byte) error {
	return bb.batch.Delete(bb.b.makeKey(key))
}

func (bb *bucketBatch) NewBatch() Batch { return bb.b.NewBatch() }

func (bb *bucketBatch) Len() int { return bb.batch.Len() }

func (bb *bucketBatch) Write() error { return bb.batch.Write() }

type bucketIterator struct {
	Iterator
	prefixLen int
}

// Key strips the bucket prefix.
func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}
