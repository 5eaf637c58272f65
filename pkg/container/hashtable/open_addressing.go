// Copyright 2021 - 2022 Matrix Origin
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
	"time"

	"go.uber.org/zap"

	"github.com/matrixorigin/containers/pkg/common/malloc"
	"github.com/matrixorigin/containers/pkg/common/moerr"
	"github.com/matrixorigin/containers/pkg/logutil"
)

// OpenAddressing keeps its entries in a single slot array and resolves
// collisions by linear probing. A probe starts at the home index and
// visits (home+i) mod capacity for i < capacity, stopping at the first
// Empty slot. Removed entries leave Tombstones so that probe sequences
// passing through them stay intact.
//
// Inserts do not check for an existing equal key. The table grows, or
// purges tombstones at the same capacity, once (count+tombstones+1)
// would exceed MaxLoadFactor*capacity.
//
// Inserts never reuse tombstone slots. Under steady remove-then-insert churn
// at a constant count, a full rehash runs about every
// MaxLoadFactor*capacity - count inserts.
//
// An OpenAddressing is not safe for concurrent use.
type OpenAddressing[K comparable, V any] struct {
	hasher     Hasher[K]
	indexer    Indexer
	alloc      malloc.Allocator[Entry[K, V]]
	destructor func(K, V)

	initialCapacity int
	growthFactor    float64
	maxLoadFactor   float64
	maxGrowRetries  int

	slots      []Entry[K, V]
	count      int
	tombstones int

	// generation advances when entries move or die, invalidating Refs.
	generation uint64
	// mods advances on every structural change, invalidating iterators.
	mods uint64
}

var _ Table[int, int] = new(OpenAddressing[int, int])

func NewOpenAddressing[K comparable, V any](hasher Hasher[K], opts Options[K, V]) (*OpenAddressing[K, V], error) {
	opts.fillDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	h := &OpenAddressing[K, V]{
		hasher:          hasher,
		indexer:         opts.Indexer,
		alloc:           opts.Allocator,
		destructor:      opts.Destructor,
		initialCapacity: opts.InitialCapacity,
		growthFactor:    opts.GrowthFactor,
		maxLoadFactor:   opts.MaxLoadFactor,
		maxGrowRetries:  opts.MaxGrowRetries,
	}
	slots, err := h.alloc.Allocate(opts.InitialCapacity)
	if err != nil {
		return nil, err
	}
	h.slots = slots
	return h, nil
}

func (h *OpenAddressing[K, V]) epoch() uint64 {
	return h.generation
}

func (h *OpenAddressing[K, V]) Insert(key K, value V) (Ref[K, V], error) {
	return h.Emplace(key, func() V { return value })
}

// Emplace builds the value with ctor once a slot has been secured, so ctor
// does not run when growth fails.
func (h *OpenAddressing[K, V]) Emplace(key K, ctor func() V) (Ref[K, V], error) {
	hash := h.hasher.HashCode(key)
	if !h.fits(len(h.slots), h.count+h.tombstones+1) {
		if err := h.grow(); err != nil {
			return Ref[K, V]{}, err
		}
	}
	idx := h.probeEmpty(h.slots, hash)
	if idx < 0 {
		return Ref[K, V]{}, moerr.NewInternalErrorNoCtx("no empty slot in a table of capacity %d holding %d entries", len(h.slots), h.count)
	}
	value := ctor()
	e := &h.slots[idx]
	e.hash = hash
	e.status = Occupied
	e.key = key
	e.value = value
	h.count++
	h.mods++
	return newRef(e, h), nil
}

func (h *OpenAddressing[K, V]) Get(key K) (Ref[K, V], error) {
	idx := h.find(key)
	if idx < 0 {
		return Ref[K, V]{}, moerr.NewKeyNotFoundNoCtx(key)
	}
	return newRef(&h.slots[idx], h), nil
}

func (h *OpenAddressing[K, V]) Find(key K) (V, bool) {
	idx := h.find(key)
	if idx < 0 {
		var zero V
		return zero, false
	}
	return h.slots[idx].value, true
}

func (h *OpenAddressing[K, V]) Contains(key K) bool {
	return h.find(key) >= 0
}

func (h *OpenAddressing[K, V]) Set(key K, value V) error {
	idx := h.find(key)
	if idx < 0 {
		return moerr.NewKeyNotFoundNoCtx(key)
	}
	h.slots[idx].value = value
	return nil
}

// Remove destroys the first entry for key on its probe sequence and
// leaves a tombstone in its slot.
func (h *OpenAddressing[K, V]) Remove(key K) error {
	idx := h.find(key)
	if idx < 0 {
		return moerr.NewKeyNotFoundNoCtx(key)
	}
	e := &h.slots[idx]
	if h.destructor != nil {
		h.destructor(e.key, e.value)
	}
	*e = Entry[K, V]{status: Tombstone}
	h.count--
	h.tombstones++
	h.generation++
	h.mods++
	return nil
}

func (h *OpenAddressing[K, V]) Count() int {
	return h.count
}

func (h *OpenAddressing[K, V]) Capacity() int {
	return len(h.slots)
}

func (h *OpenAddressing[K, V]) Tombstones() int {
	return h.tombstones
}

func (h *OpenAddressing[K, V]) NewIterator() Iterator[K, V] {
	return &slotIterator[K, V]{table: h, mods: h.mods}
}

func (h *OpenAddressing[K, V]) Range(fn func(*Entry[K, V]) bool) {
	for i := range h.slots {
		if h.slots[i].status == Occupied && !fn(&h.slots[i]) {
			return
		}
	}
}

// Destroy runs the destructor on every live entry, returns the slot
// buffer to the allocator and leaves an empty table of capacity 0. The
// next insert allocates InitialCapacity slots again.
func (h *OpenAddressing[K, V]) Destroy() {
	if h.destructor != nil {
		h.Range(func(e *Entry[K, V]) bool {
			h.destructor(e.key, e.value)
			return true
		})
	}
	if h.slots != nil {
		h.alloc.Deallocate(h.slots)
	}
	h.slots = nil
	h.count = 0
	h.tombstones = 0
	h.generation++
	h.mods++
}

func (h *OpenAddressing[K, V]) find(key K) int {
	capacity := len(h.slots)
	if capacity == 0 {
		return -1
	}
	hash := h.hasher.HashCode(key)
	home := h.indexer.Index(hash, capacity)
	for i := 0; i < capacity; i++ {
		idx := (home + i) % capacity
		e := &h.slots[idx]
		if e.status == Empty {
			return -1
		}
		if e.matches(hash, key) {
			return idx
		}
	}
	return -1
}

func (h *OpenAddressing[K, V]) probeEmpty(slots []Entry[K, V], hash uint32) int {
	capacity := len(slots)
	if capacity == 0 {
		return -1
	}
	home := h.indexer.Index(hash, capacity)
	for i := 0; i < capacity; i++ {
		idx := (home + i) % capacity
		if slots[idx].status == Empty {
			return idx
		}
	}
	return -1
}

func (h *OpenAddressing[K, V]) fits(capacity, used int) bool {
	return float64(used) <= h.maxLoadFactor*float64(capacity)
}

func (h *OpenAddressing[K, V]) nextCapacity(capacity int) int {
	if capacity == 0 {
		return h.initialCapacity
	}
	next := capacity + int(float64(capacity)*h.growthFactor)
	if next <= capacity {
		next = capacity + 1
	}
	return next
}

// grow makes room for one more entry. When tombstones outnumber live
// entries it first tries to rehash in place. Otherwise it rehashes into
// nextCapacity, doubling the target after each failed attempt, up to
// maxGrowRetries attempts.
func (h *OpenAddressing[K, V]) grow() error {
	start := time.Now()
	capacity := len(h.slots)
	if h.tombstones > h.count && h.fits(capacity, h.count+1) {
		if err := h.rehash(capacity); err != nil {
			return err
		}
		logutil.Debug("hashtable purged tombstones",
			zap.Int("capacity", capacity),
			zap.Int("count", h.count),
			logutil.Elapsed(time.Since(start)),
		)
		return nil
	}

	target := h.nextCapacity(capacity)
	for attempt := 1; attempt <= h.maxGrowRetries; attempt++ {
		err := h.rehash(target)
		if err == nil {
			logutil.Debug("hashtable grew",
				zap.Int("from", capacity),
				zap.Int("to", target),
				zap.Int("count", h.count),
				zap.Int("attempts", attempt),
				logutil.Elapsed(time.Since(start)),
			)
			return nil
		}
		if !moerr.IsMoErrCode(err, moerr.ErrCapacityExceeded) {
			return err
		}
		target *= 2
	}
	logutil.Warn("hashtable growth exhausted",
		zap.Int("capacity", capacity),
		zap.Int("count", h.count),
		zap.Int("attempts", h.maxGrowRetries),
	)
	return moerr.NewGrowthExhaustedNoCtx(h.maxGrowRetries, target/2)
}

// rehash moves every live entry into a fresh buffer of target slots and
// drops the tombstones. On failure the table is left untouched.
func (h *OpenAddressing[K, V]) rehash(target int) error {
	if !h.fits(target, h.count+1) {
		return moerr.NewCapacityExceededNoCtx(target)
	}
	slots, err := h.alloc.Allocate(target)
	if err != nil {
		return err
	}
	for i := range h.slots {
		e := &h.slots[i]
		if e.status != Occupied {
			continue
		}
		idx := h.probeEmpty(slots, e.hash)
		if idx < 0 {
			h.alloc.Deallocate(slots)
			return moerr.NewCapacityExceededNoCtx(target)
		}
		slots[idx] = *e
	}
	old := h.slots
	h.slots = slots
	h.tombstones = 0
	h.generation++
	h.mods++
	if old != nil {
		h.alloc.Deallocate(old)
	}
	return nil
}
