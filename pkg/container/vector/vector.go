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

package vector

import (
	"go.uber.org/zap"

	"github.com/matrixorigin/containers/pkg/common/malloc"
	"github.com/matrixorigin/containers/pkg/common/moerr"
	"github.com/matrixorigin/containers/pkg/config"
	"github.com/matrixorigin/containers/pkg/logutil"
)

const (
	defaultInitialCapacity = 2
	defaultGrowthFactor    = 1.0
)

// Vector is a growable array whose buffers come from a malloc.Allocator.
//
// Slices returned by Slice alias the current buffer. Any operation that
// grows the buffer, and Free, leave them pointing at memory the vector no
// longer owns.
//
// The zero value is an empty vector using the Go allocator and the default
// growth policy. A Vector is not safe for concurrent use.
type Vector[T any] struct {
	alloc malloc.Allocator[T]

	initialCapacity int
	growthFactor    float64

	data   []T
	length int
}

// New returns an empty vector with the default growth policy. Nothing is
// allocated until the first element arrives.
func New[T any](alloc malloc.Allocator[T]) *Vector[T] {
	if alloc == nil {
		alloc = malloc.NewGoAllocator[T]()
	}
	return &Vector[T]{
		alloc:           alloc,
		initialCapacity: defaultInitialCapacity,
		growthFactor:    defaultGrowthFactor,
	}
}

// NewWithParameters is New with the growth policy taken from params.
func NewWithParameters[T any](params config.VectorParameters, alloc malloc.Allocator[T]) (*Vector[T], error) {
	if params.InitialCapacity < 0 {
		return nil, moerr.NewInvalidArgNoCtx("vector initial capacity", params.InitialCapacity)
	}
	if params.GrowthFactor < 0 {
		return nil, moerr.NewInvalidArgNoCtx("vector growth factor", params.GrowthFactor)
	}
	v := New[T](alloc)
	if params.InitialCapacity > 0 {
		v.initialCapacity = params.InitialCapacity
	}
	if params.GrowthFactor > 0 {
		v.growthFactor = params.GrowthFactor
	}
	return v, nil
}

func (v *Vector[T]) Length() int {
	return v.length
}

func (v *Vector[T]) Capacity() int {
	return len(v.data)
}

func (v *Vector[T]) IsEmpty() bool {
	return v.length == 0
}

// Slice returns the live elements. See Vector for how long it stays valid.
func (v *Vector[T]) Slice() []T {
	return v.data[:v.length]
}

func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, moerr.NewIndexOutOfBoundsNoCtx(i, v.length)
	}
	return v.data[i], nil
}

// MustAt is At that panics when i is out of range.
func (v *Vector[T]) MustAt(i int) T {
	t, err := v.At(i)
	if err != nil {
		panic(err)
	}
	return t
}

func (v *Vector[T]) Set(i int, t T) error {
	if i < 0 || i >= v.length {
		return moerr.NewIndexOutOfBoundsNoCtx(i, v.length)
	}
	v.data[i] = t
	return nil
}

func (v *Vector[T]) Front() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, moerr.NewEmptyContainerNoCtx("vector")
	}
	return v.data[0], nil
}

func (v *Vector[T]) Back() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, moerr.NewEmptyContainerNoCtx("vector")
	}
	return v.data[v.length-1], nil
}

func (v *Vector[T]) PushBack(t T) error {
	if v.length == len(v.data) {
		if err := v.extend(v.nextCapacity(), 0); err != nil {
			return err
		}
	}
	v.data[v.length] = t
	v.length++
	return nil
}

// PushFront shifts every element one position right and puts t first.
func (v *Vector[T]) PushFront(t T) error {
	if v.length == len(v.data) {
		// the copy into the new buffer leaves room at the front
		if err := v.extend(v.nextCapacity(), 1); err != nil {
			return err
		}
	} else {
		copy(v.data[1:v.length+1], v.data[:v.length])
	}
	v.data[0] = t
	v.length++
	return nil
}

func (v *Vector[T]) PopBack() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, moerr.NewEmptyContainerNoCtx("vector")
	}
	v.length--
	t := v.data[v.length]
	var zero T
	v.data[v.length] = zero
	return t, nil
}

// SwapAndPopAt removes element i by moving the last element into its
// place. Order is not kept.
func (v *Vector[T]) SwapAndPopAt(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, moerr.NewIndexOutOfBoundsNoCtx(i, v.length)
	}
	t := v.data[i]
	v.data[i] = v.data[v.length-1]
	_, err := v.PopBack()
	return t, err
}

// SwapAndPopFunc is SwapAndPopAt for the first element matching pred.
// It reports whether one was found.
func (v *Vector[T]) SwapAndPopFunc(pred func(T) bool) bool {
	if i := v.index(pred); i >= 0 {
		_, _ = v.SwapAndPopAt(i)
		return true
	}
	return false
}

// EraseAt removes element i and shifts the tail left, keeping order.
func (v *Vector[T]) EraseAt(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, moerr.NewIndexOutOfBoundsNoCtx(i, v.length)
	}
	t := v.data[i]
	copy(v.data[i:], v.data[i+1:v.length])
	v.length--
	var zero T
	v.data[v.length] = zero
	return t, nil
}

// EraseFunc is EraseAt for the first element matching pred.
func (v *Vector[T]) EraseFunc(pred func(T) bool) bool {
	if i := v.index(pred); i >= 0 {
		_, _ = v.EraseAt(i)
		return true
	}
	return false
}

// Shrink keeps only the elements at sels, in that order. sels must be
// ascending.
func (v *Vector[T]) Shrink(sels []int) error {
	for i, sel := range sels {
		if sel < 0 || sel >= v.length {
			return moerr.NewIndexOutOfBoundsNoCtx(sel, v.length)
		}
		if i > 0 && sel <= sels[i-1] {
			return moerr.NewInvalidArgNoCtx("shrink selection", sels)
		}
	}
	for i, sel := range sels {
		v.data[i] = v.data[sel]
	}
	clear(v.data[len(sels):v.length])
	v.length = len(sels)
	return nil
}

// PreExtend makes sure at least n elements fit without another
// allocation.
func (v *Vector[T]) PreExtend(n int) error {
	if n < 0 {
		return moerr.NewInvalidArgNoCtx("vector capacity", n)
	}
	if n <= len(v.data) {
		return nil
	}
	return v.extend(n, 0)
}

// Resize sets the length to n, filling new positions with fill.
func (v *Vector[T]) Resize(n int, fill T) error {
	if n < 0 {
		return moerr.NewInvalidArgNoCtx("vector length", n)
	}
	if n <= v.length {
		clear(v.data[n:v.length])
		v.length = n
		return nil
	}
	if err := v.PreExtend(n); err != nil {
		return err
	}
	for i := v.length; i < n; i++ {
		v.data[i] = fill
	}
	v.length = n
	return nil
}

// Reset drops every element but keeps the buffer.
func (v *Vector[T]) Reset() {
	clear(v.data[:v.length])
	v.length = 0
}

// Free returns the buffer to the allocator. The vector stays usable.
func (v *Vector[T]) Free() {
	if v.data != nil {
		v.alloc.Deallocate(v.data)
	}
	v.data = nil
	v.length = 0
}

// Dup copies the vector into a buffer from the same allocator.
func (v *Vector[T]) Dup() (*Vector[T], error) {
	w := &Vector[T]{
		alloc:           v.alloc,
		initialCapacity: v.initialCapacity,
		growthFactor:    v.growthFactor,
	}
	if v.length == 0 {
		return w, nil
	}
	if err := w.extend(v.length, 0); err != nil {
		return nil, err
	}
	copy(w.data, v.data[:v.length])
	w.length = v.length
	return w, nil
}

// Range calls fn for every element in order until fn returns false.
func (v *Vector[T]) Range(fn func(i int, t T) bool) {
	for i := 0; i < v.length; i++ {
		if !fn(i, v.data[i]) {
			return
		}
	}
}

func (v *Vector[T]) index(pred func(T) bool) int {
	for i := 0; i < v.length; i++ {
		if pred(v.data[i]) {
			return i
		}
	}
	return -1
}

// nextCapacity is capacity + max(1, capacity*growthFactor), or the
// initial capacity for an empty buffer.
func (v *Vector[T]) nextCapacity() int {
	capacity := len(v.data)
	if capacity == 0 {
		if v.initialCapacity == 0 {
			return defaultInitialCapacity
		}
		return v.initialCapacity
	}
	factor := v.growthFactor
	if factor == 0 {
		factor = defaultGrowthFactor
	}
	inc := int(float64(capacity) * factor)
	if inc < 1 {
		inc = 1
	}
	return capacity + inc
}

// extend moves the elements into a new buffer of n slots, starting at
// offset. On failure the vector is unchanged.
func (v *Vector[T]) extend(n int, offset int) error {
	if v.alloc == nil {
		v.alloc = malloc.NewGoAllocator[T]()
	}
	data, err := v.alloc.Allocate(n)
	if err != nil {
		logutil.Debug("vector extend failed",
			zap.Int("from", len(v.data)),
			zap.Int("to", n),
			zap.Error(err),
		)
		return err
	}
	copy(data[offset:], v.data[:v.length])
	if v.data != nil {
		v.alloc.Deallocate(v.data)
	}
	v.data = data
	return nil
}
