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

// Package sort holds stable insertion sorts for slices and linked lists
// and a two-way merge. They suit the short or nearly sorted inputs the
// containers hand them.
package sort

import (
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/containers/pkg/util/list"
)

func Insertion[T constraints.Ordered](vs []T) {
	InsertionFunc(vs, func(a, b T) bool { return a < b })
}

func InsertionDesc[T constraints.Ordered](vs []T) {
	InsertionFunc(vs, func(a, b T) bool { return a > b })
}

// InsertionFunc sorts vs by less. Equal elements keep their order.
func InsertionFunc[T any](vs []T, less func(a, b T) bool) {
	for i := 1; i < len(vs); i++ {
		key := vs[i]
		j := i - 1
		for ; j >= 0 && less(key, vs[j]); j-- {
			vs[j+1] = vs[j]
		}
		vs[j+1] = key
	}
}

// Sort orders os, a selection of positions into vs, by the values they
// point at. vs is not modified.
func Sort[T constraints.Ordered](desc bool, vs []T, os []int64) {
	if desc {
		InsertionFunc(os, func(a, b int64) bool { return vs[a] > vs[b] })
		return
	}
	InsertionFunc(os, func(a, b int64) bool { return vs[a] < vs[b] })
}

func List[T constraints.Ordered](l *list.List[T]) {
	ListFunc(l, func(a, b T) bool { return a < b })
}

// ListFunc sorts l in place by relinking its elements, so Element
// pointers held by the caller stay valid. Equal values keep their order.
func ListFunc[T any](l *list.List[T], less func(a, b T) bool) {
	first, ok := l.Front()
	if !ok {
		return
	}
	for e := first.Next(); e != nil; {
		next := e.Next()
		p := e.Prev()
		for p != nil && less(e.Value, p.Value) {
			p = p.Prev()
		}
		switch {
		case p == nil:
			l.MoveToFront(e)
		case p != e.Prev():
			l.MoveAfter(e, p)
		}
		e = next
	}
}

func Merge[T constraints.Ordered](a, b []T) []T {
	return MergeFunc(a, b, func(x, y T) bool { return x < y })
}

// MergeFunc merges two slices sorted by less into a new one. On ties the
// element from a comes first.
func MergeFunc[T any](a, b []T, less func(x, y T) bool) []T {
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if less(b[j], a[i]) {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func IsSorted[T constraints.Ordered](vs []T) bool {
	return IsSortedFunc(vs, func(a, b T) bool { return a < b })
}

func IsSortedFunc[T any](vs []T, less func(a, b T) bool) bool {
	for i := 1; i < len(vs); i++ {
		if less(vs[i], vs[i-1]) {
			return false
		}
	}
	return true
}
