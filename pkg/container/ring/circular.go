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

package ring

import (
	"github.com/matrixorigin/containers/pkg/common/malloc"
	"github.com/matrixorigin/containers/pkg/common/moerr"
)

// Circular is a fixed capacity ring. Once full, every Push overwrites the
// oldest element. Positions passed to At count from the oldest element.
type Circular[T any] struct {
	alloc malloc.Allocator[T]
	data  []T
	// head is the slot of the oldest element.
	head  int
	count int
}

func New[T any](capacity int, alloc malloc.Allocator[T]) (*Circular[T], error) {
	if capacity < 1 {
		return nil, moerr.NewInvalidArgNoCtx("ring capacity", capacity)
	}
	if alloc == nil {
		alloc = malloc.NewGoAllocator[T]()
	}
	data, err := alloc.Allocate(capacity)
	if err != nil {
		return nil, err
	}
	return &Circular[T]{alloc: alloc, data: data}, nil
}

// Push appends t as the newest element. When the ring was full it returns
// the element that got overwritten and true.
func (r *Circular[T]) Push(t T) (evicted T, ok bool) {
	capacity := len(r.data)
	if r.count < capacity {
		r.data[(r.head+r.count)%capacity] = t
		r.count++
		return
	}
	evicted, ok = r.data[r.head], true
	r.data[r.head] = t
	r.head = (r.head + 1) % capacity
	return
}

// Current returns the newest element.
func (r *Circular[T]) Current() (T, error) {
	if r.count == 0 {
		var zero T
		return zero, moerr.NewEmptyContainerNoCtx("ring")
	}
	return r.data[r.slot(r.count-1)], nil
}

// Oldest returns the element the next Push on a full ring overwrites.
func (r *Circular[T]) Oldest() (T, error) {
	if r.count == 0 {
		var zero T
		return zero, moerr.NewEmptyContainerNoCtx("ring")
	}
	return r.data[r.head], nil
}

func (r *Circular[T]) At(i int) (T, error) {
	if i < 0 || i >= r.count {
		var zero T
		return zero, moerr.NewIndexOutOfBoundsNoCtx(i, r.count)
	}
	return r.data[r.slot(i)], nil
}

// Count saturates at Capacity.
func (r *Circular[T]) Count() int {
	return r.count
}

func (r *Circular[T]) Capacity() int {
	return len(r.data)
}

func (r *Circular[T]) Full() bool {
	return r.count == len(r.data)
}

// Range visits the elements oldest first until fn returns false.
func (r *Circular[T]) Range(fn func(i int, t T) bool) {
	for i := 0; i < r.count; i++ {
		if !fn(i, r.data[r.slot(i)]) {
			return
		}
	}
}

// Values copies the elements out, oldest first.
func (r *Circular[T]) Values() []T {
	vs := make([]T, 0, r.count)
	r.Range(func(_ int, t T) bool {
		vs = append(vs, t)
		return true
	})
	return vs
}

// Reset empties the ring and keeps its buffer.
func (r *Circular[T]) Reset() {
	clear(r.data)
	r.head = 0
	r.count = 0
}

// Free returns the buffer. The ring must not be used afterwards.
func (r *Circular[T]) Free() {
	if r.data != nil {
		r.alloc.Deallocate(r.data)
		r.data = nil
	}
	r.head = 0
	r.count = 0
}

func (r *Circular[T]) slot(i int) int {
	return (r.head + i) % len(r.data)
}
