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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/containers/pkg/common/moerr"
)

func checkList[E any](t *testing.T, l *List[E], values []E) {
	require.Equal(t, len(values), l.Len())
	require.Equal(t, values, l.Values())

	var reversed []E
	l.IterReverse(func(v E) bool {
		reversed = append(reversed, v)
		return true
	})
	for i, v := range reversed {
		assert.Equal(t, values[len(values)-1-i], v)
	}
}

func TestZeroValue(t *testing.T) {
	var l List[int]
	_, ok := l.Front()
	require.False(t, ok)
	l.PushBack(1)
	l.PushFront(0)
	checkList(t, &l, []int{0, 1})
}

func TestPushAndPop(t *testing.T) {
	l := New[int]()
	_, err := l.PopFront()
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrEmptyContainer))
	_, err = l.PopBack()
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrEmptyContainer))

	l.PushBack(2)
	l.PushBack(3)
	l.PushFront(1)
	checkList(t, l, []int{1, 2, 3})

	v, err := l.PopFront()
	require.NoError(t, err)
	require.Equal(t, 1, v)
	v, err = l.PopBack()
	require.NoError(t, err)
	require.Equal(t, 3, v)
	checkList(t, l, []int{2})
}

func TestMustFrontAndBack(t *testing.T) {
	l := New[string]()
	require.Panics(t, func() { l.MustFront() })
	require.Panics(t, func() { l.MustBack() })

	l.PushBack("a")
	l.PushBack("b")
	require.Equal(t, "a", l.MustFront().Value)
	require.Equal(t, "b", l.MustBack().Value)
	require.Nil(t, l.MustFront().Prev())
	require.Nil(t, l.MustBack().Next())
	require.Equal(t, "b", l.MustFront().Next().Value)
}

func TestInsertRelative(t *testing.T) {
	l := New[int]()
	mid := l.PushBack(2)
	l.InsertBefore(1, mid)
	l.InsertAfter(3, mid)
	checkList(t, l, []int{1, 2, 3})

	other := New[int]()
	foreign := other.PushBack(9)
	require.Nil(t, l.InsertAfter(4, foreign))
	require.Nil(t, l.InsertBefore(4, foreign))
	checkList(t, l, []int{1, 2, 3})
}

func TestRemove(t *testing.T) {
	l := New[int]()
	e1 := l.PushBack(1)
	e2 := l.PushBack(2)
	l.PushBack(3)

	require.Equal(t, 2, l.Remove(e2))
	checkList(t, l, []int{1, 3})
	// removing twice is harmless
	require.Equal(t, 2, l.Remove(e2))
	checkList(t, l, []int{1, 3})

	other := New[int]()
	require.Equal(t, 1, other.Remove(e1))
	checkList(t, l, []int{1, 3})
	require.Equal(t, 0, other.Len())
}

func TestFind(t *testing.T) {
	l := New[int]()
	require.Nil(t, l.Find(func(*Element[int]) bool { return true }))
	l.PushBack(5)
	first := l.PushBack(7)
	l.PushBack(7)
	require.Same(t, first, l.Find(func(e *Element[int]) bool { return e.Value == 7 }))
	require.Nil(t, l.Find(func(e *Element[int]) bool { return e.Value == 8 }))
}

func TestMove(t *testing.T) {
	l := New[int]()
	e1 := l.PushBack(1)
	e2 := l.PushBack(2)
	e3 := l.PushBack(3)

	l.MoveToFront(e3)
	checkList(t, l, []int{3, 1, 2})
	l.MoveToBack(e3)
	checkList(t, l, []int{1, 2, 3})
	l.MoveBefore(e3, e1)
	checkList(t, l, []int{3, 1, 2})
	l.MoveAfter(e3, e2)
	checkList(t, l, []int{1, 2, 3})
	l.MoveAfter(e1, e1)
	checkList(t, l, []int{1, 2, 3})
}

func TestIter(t *testing.T) {
	l := New[int]()
	for i := 0; i < 5; i++ {
		l.PushBack(i)
	}
	var got []int
	l.Iter(2, func(v int) bool {
		got = append(got, v)
		return v < 3
	})
	require.Equal(t, []int{2, 3}, got)
}

func TestClear(t *testing.T) {
	l := New[int]()
	e := l.PushBack(1)
	l.PushBack(2)
	l.Clear()
	checkList(t, l, []int{})
	require.Nil(t, e.Next())
	// a detached element is ignored
	require.Equal(t, 1, l.Remove(e))
	require.Equal(t, 0, l.Len())
}
