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

package list

import (
	"github.com/matrixorigin/containers/pkg/common/moerr"
)

// Element is a node of a List.
type Element[E any] struct {
	// The list is a ring through root: root.next is the head and
	// root.prev the tail.
	next, prev *Element[E]

	// nil once the element is removed.
	list *List[E]

	Value E
}

// Next returns the following element or nil at the tail.
func (e *Element[E]) Next() *Element[E] {
	if p := e.next; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// Prev returns the preceding element or nil at the head.
func (e *Element[E]) Prev() *Element[E] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// List is a doubly linked list. The zero value is an empty list ready to
// use. Elements stay valid until removed; no other operation moves values
// in memory, so &e.Value is a stable address.
type List[E any] struct {
	root Element[E]
	len  int
}

// New returns an initialized list.
func New[E any]() *List[E] {
	return new(List[E]).Init()
}

// Init initializes or resets l without touching its old elements, which
// must not be passed back to l afterwards. Use Clear for that.
func (l *List[E]) Init() *List[E] {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
	return l
}

func (l *List[E]) lazyInit() {
	if l.root.next == nil {
		l.Init()
	}
}

// Clear removes every element. Detached elements keep their values.
func (l *List[E]) Clear() {
	l.lazyInit()
	for e := l.root.next; e != &l.root; {
		next := e.next
		e.next, e.prev, e.list = nil, nil, nil
		e = next
	}
	l.Init()
}

// Len is O(1).
func (l *List[E]) Len() int { return l.len }

// Front returns the head, false if the list is empty.
func (l *List[E]) Front() (*Element[E], bool) {
	if l.len == 0 {
		return nil, false
	}
	return l.root.next, true
}

// Back returns the tail, false if the list is empty.
func (l *List[E]) Back() (*Element[E], bool) {
	if l.len == 0 {
		return nil, false
	}
	return l.root.prev, true
}

// MustFront panics with ErrEmptyContainer on an empty list.
func (l *List[E]) MustFront() *Element[E] {
	if l.len == 0 {
		panic(moerr.NewEmptyContainerNoCtx("list"))
	}
	return l.root.next
}

// MustBack panics with ErrEmptyContainer on an empty list.
func (l *List[E]) MustBack() *Element[E] {
	if l.len == 0 {
		panic(moerr.NewEmptyContainerNoCtx("list"))
	}
	return l.root.prev
}

func (l *List[E]) PushFront(v E) *Element[E] {
	l.lazyInit()
	return l.insert(&Element[E]{Value: v}, &l.root)
}

func (l *List[E]) PushBack(v E) *Element[E] {
	l.lazyInit()
	return l.insert(&Element[E]{Value: v}, l.root.prev)
}

// InsertBefore returns nil and leaves l unchanged when mark is not in l.
func (l *List[E]) InsertBefore(v E, mark *Element[E]) *Element[E] {
	if mark.list != l {
		return nil
	}
	return l.insert(&Element[E]{Value: v}, mark.prev)
}

// InsertAfter returns nil and leaves l unchanged when mark is not in l.
func (l *List[E]) InsertAfter(v E, mark *Element[E]) *Element[E] {
	if mark.list != l {
		return nil
	}
	return l.insert(&Element[E]{Value: v}, mark)
}

// Remove unlinks e if it belongs to l and returns its value either way.
func (l *List[E]) Remove(e *Element[E]) E {
	if e.list == l {
		l.unlink(e)
	}
	return e.Value
}

// PopFront removes the head.
func (l *List[E]) PopFront() (E, error) {
	if l.len == 0 {
		var zero E
		return zero, moerr.NewEmptyContainerNoCtx("list")
	}
	return l.unlink(l.root.next).Value, nil
}

// PopBack removes the tail.
func (l *List[E]) PopBack() (E, error) {
	if l.len == 0 {
		var zero E
		return zero, moerr.NewEmptyContainerNoCtx("list")
	}
	return l.unlink(l.root.prev).Value, nil
}

// Find returns the first element, head to tail, for which match is true.
func (l *List[E]) Find(match func(*Element[E]) bool) *Element[E] {
	if l.len == 0 {
		return nil
	}
	for e := l.root.next; e != &l.root; e = e.next {
		if match(e) {
			return e
		}
	}
	return nil
}

func (l *List[E]) MoveToFront(e *Element[E]) {
	if e.list != l || l.root.next == e {
		return
	}
	l.move(e, &l.root)
}

func (l *List[E]) MoveToBack(e *Element[E]) {
	if e.list != l || l.root.prev == e {
		return
	}
	l.move(e, l.root.prev)
}

// MoveBefore is a no-op when e or mark is not in l, or e == mark.
func (l *List[E]) MoveBefore(e, mark *Element[E]) {
	if e.list != l || e == mark || mark.list != l {
		return
	}
	l.move(e, mark.prev)
}

// MoveAfter is a no-op when e or mark is not in l, or e == mark.
func (l *List[E]) MoveAfter(e, mark *Element[E]) {
	if e.list != l || e == mark || mark.list != l {
		return
	}
	l.move(e, mark)
}

// Iter calls fn on the values from position offset on, head to tail,
// stopping early when fn returns false.
func (l *List[E]) Iter(offset int, fn func(E) bool) {
	if l.len == 0 {
		return
	}
	i := 0
	for e := l.root.next; e != &l.root; e = e.next {
		if i < offset {
			i++
			continue
		}
		if !fn(e.Value) {
			return
		}
	}
}

// IterReverse is Iter from tail to head, without an offset.
func (l *List[E]) IterReverse(fn func(E) bool) {
	if l.len == 0 {
		return
	}
	for e := l.root.prev; e != &l.root; e = e.prev {
		if !fn(e.Value) {
			return
		}
	}
}

// Values copies the values out, head to tail.
func (l *List[E]) Values() []E {
	values := make([]E, 0, l.len)
	l.Iter(0, func(v E) bool {
		values = append(values, v)
		return true
	})
	return values
}

func (l *List[E]) insert(e, at *Element[E]) *Element[E] {
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.len++
	return e
}

func (l *List[E]) unlink(e *Element[E]) *Element[E] {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil
	e.prev = nil
	e.list = nil
	l.len--
	return e
}

func (l *List[E]) move(e, at *Element[E]) {
	if e == at {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev

	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
}
