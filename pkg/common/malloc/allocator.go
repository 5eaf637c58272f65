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

package malloc

// Allocator hands out typed buffers. Allocate returns n zero-valued
// elements. Deallocate takes back a buffer obtained from the same
// allocator; the caller must not touch it afterwards.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(buf []T)
}

// GoAllocator allocates from the Go heap and never fails.
type GoAllocator[T any] struct{}

var _ Allocator[int] = GoAllocator[int]{}

func NewGoAllocator[T any]() GoAllocator[T] {
	return GoAllocator[T]{}
}

func (GoAllocator[T]) Allocate(n int) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func (GoAllocator[T]) Deallocate(buf []T) {
	// zero the elements so the buffer stops pinning whatever they reference
	clear(buf)
}
