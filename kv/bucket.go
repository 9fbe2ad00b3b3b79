// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket provides a logical key space within a kv store.
type Bucket string

// NewStore creates a bucketed view over the source store. All keys passed in
// are transparently prefixed with the bucket, and keys produced by iterators
// have the prefix stripped.
func (b Bucket) NewStore(src GetPutter) GetPutter {
	return &bucket{string(b), src}
}

// NewPutter creates a bucketed putter from the source putter. Handing a
// batch in lets multiple buckets buffer into one atomic write.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{string(b), src}
}

type bucket struct {
	prefix string
	src    GetPutter
}

func (b *bucket) key(k []byte) []byte {
	return append(append(make([]byte, 0, len(b.prefix)+len(k)), b.prefix...), k...)
}

func (b *bucket) Get(key []byte) ([]byte, error) { return b.src.Get(b.key(key)) }
func (b *bucket) Has(key []byte) (bool, error)   { return b.src.Has(b.key(key)) }
func (b *bucket) IsNotFound(err error) bool      { return b.src.IsNotFound(err) }
func (b *bucket) Put(key, val []byte) error      { return b.src.Put(b.key(key), val) }
func (b *bucket) Delete(key []byte) error        { return b.src.Delete(b.key(key)) }
func (b *bucket) NewBatch() Batch                { return newBucketBatch(b.prefix, b.src.NewBatch()) }

type bucketPutter struct {
	prefix string
	src    Putter
}

func (b *bucketPutter) key(k []byte) []byte {
	return append(append(make([]byte, 0, len(b.prefix)+len(k)), b.prefix...), k...)
}

func (b *bucketPutter) Put(key, val []byte) error { return b.src.Put(b.key(key), val) }
func (b *bucketPutter) Delete(key []byte) error   { return b.src.Delete(b.key(key)) }
func (b *bucketPutter) NewBatch() Batch           { return newBucketBatch(b.prefix, b.src.NewBatch()) }

type bucketBatch struct {
	bucketPutter
	batch Batch
}

func newBucketBatch(prefix string, src Batch) *bucketBatch {
	return &bucketBatch{bucketPutter{prefix, src}, src}
}

func (b *bucketBatch) Len() int     { return b.batch.Len() }
func (b *bucketBatch) Write() error { return b.batch.Write() }

func (b *bucket) NewIterator(r Range) Iterator {
	r.Start = b.key(r.Start)
	if len(r.Limit) == 0 {
		r.Limit = util.BytesPrefix([]byte(b.prefix)).Limit
	} else {
		r.Limit = b.key(r.Limit)
	}
	return &bucketIterator{b.src.NewIterator(r), len(b.prefix)}
}

type bucketIterator struct {
	Iterator
	prefixLen int
}

// Key strips the bucket prefix.
func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}
