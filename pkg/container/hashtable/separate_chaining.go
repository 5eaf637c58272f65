// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashtable

import (
	"github.com/matrixorigin/containers/pkg/common/moerr"
	"github.com/matrixorigin/containers/pkg/util/list"
)

// SeparateChaining keeps a fixed number of buckets, each a linked chain of
// the entries whose home index is that bucket. It never grows: chains get
// longer as count/buckets rises, and sizing the bucket count is up to the
// caller.
//
// Inserts append to the tail of the chain without a duplicate check, so
// equal keys produce independent entries. Lookups and removes act on the
// first match from the head.
//
// Entries live in list elements and never move, so an insert leaves
// outstanding Refs valid. Any Remove invalidates them.
//
// A SeparateChaining is not safe for concurrent use.
type SeparateChaining[K comparable, V any] struct {
	hasher     Hasher[K]
	indexer    Indexer
	destructor func(K, V)

	buckets []list.List[Entry[K, V]]
	count   int

	generation uint64
	mods       uint64
}

var _ Table[int, int] = new(SeparateChaining[int, int])

func NewSeparateChaining[K comparable, V any](hasher Hasher[K], opts Options[K, V]) (*SeparateChaining[K, V], error) {
	opts.fillDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	h := &SeparateChaining[K, V]{
		hasher:     hasher,
		indexer:    opts.Indexer,
		destructor: opts.Destructor,
		buckets:    make([]list.List[Entry[K, V]], opts.Buckets),
	}
	for i := range h.buckets {
		h.buckets[i].Init()
	}
	return h, nil
}

func (h *SeparateChaining[K, V]) epoch() uint64 {
	return h.generation
}

func (h *SeparateChaining[K, V]) Insert(key K, value V) (Ref[K, V], error) {
	return h.Emplace(key, func() V { return value })
}

func (h *SeparateChaining[K, V]) Emplace(key K, ctor func() V) (Ref[K, V], error) {
	hash := h.hasher.HashCode(key)
	chain := &h.buckets[h.indexer.Index(hash, len(h.buckets))]
	elem := chain.PushBack(Entry[K, V]{
		hash:   hash,
		status: Occupied,
		key:    key,
		value:  ctor(),
	})
	h.count++
	h.mods++
	return newRef(&elem.Value, h), nil
}

func (h *SeparateChaining[K, V]) Get(key K) (Ref[K, V], error) {
	elem := h.find(key)
	if elem == nil {
		return Ref[K, V]{}, moerr.NewKeyNotFoundNoCtx(key)
	}
	return newRef(&elem.Value, h), nil
}

func (h *SeparateChaining[K, V]) Find(key K) (V, bool) {
	elem := h.find(key)
	if elem == nil {
		var zero V
		return zero, false
	}
	return elem.Value.value, true
}

func (h *SeparateChaining[K, V]) Contains(key K) bool {
	return h.find(key) != nil
}

func (h *SeparateChaining[K, V]) Set(key K, value V) error {
	elem := h.find(key)
	if elem == nil {
		return moerr.NewKeyNotFoundNoCtx(key)
	}
	elem.Value.value = value
	return nil
}

// Remove unlinks the first entry for key in chain order.
func (h *SeparateChaining[K, V]) Remove(key K) error {
	hash := h.hasher.HashCode(key)
	chain := &h.buckets[h.indexer.Index(hash, len(h.buckets))]
	elem := chain.Find(func(e *list.Element[Entry[K, V]]) bool {
		return e.Value.matches(hash, key)
	})
	if elem == nil {
		return moerr.NewKeyNotFoundNoCtx(key)
	}
	entry := chain.Remove(elem)
	if h.destructor != nil {
		h.destructor(entry.key, entry.value)
	}
	h.count--
	h.generation++
	h.mods++
	return nil
}

func (h *SeparateChaining[K, V]) Count() int {
	return h.count
}

// Capacity is the bucket count.
func (h *SeparateChaining[K, V]) Capacity() int {
	return len(h.buckets)
}

// BucketLen is the chain length of bucket i.
func (h *SeparateChaining[K, V]) BucketLen(i int) (int, error) {
	if i < 0 || i >= len(h.buckets) {
		return 0, moerr.NewIndexOutOfBoundsNoCtx(i, len(h.buckets))
	}
	return h.buckets[i].Len(), nil
}

func (h *SeparateChaining[K, V]) NewIterator() Iterator[K, V] {
	return &chainIterator[K, V]{table: h, mods: h.mods}
}

func (h *SeparateChaining[K, V]) Range(fn func(*Entry[K, V]) bool) {
	for i := range h.buckets {
		for e, ok := h.buckets[i].Front(); ok && e != nil; e = e.Next() {
			if !fn(&e.Value) {
				return
			}
		}
	}
}

// Destroy runs the destructor on every entry and empties every chain. The
// bucket count is kept, so the table can be reused.
func (h *SeparateChaining[K, V]) Destroy() {
	if h.destructor != nil {
		h.Range(func(e *Entry[K, V]) bool {
			h.destructor(e.key, e.value)
			return true
		})
	}
	for i := range h.buckets {
		h.buckets[i].Clear()
	}
	h.count = 0
	h.generation++
	h.mods++
}

func (h *SeparateChaining[K, V]) find(key K) *list.Element[Entry[K, V]] {
	hash := h.hasher.HashCode(key)
	chain := &h.buckets[h.indexer.Index(hash, len(h.buckets))]
	return chain.Find(func(e *list.Element[Entry[K, V]]) bool {
		return e.Value.matches(hash, key)
	})
}
