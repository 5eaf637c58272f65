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

// Iterator walks the live entries of a table, each exactly once.
//
// Next returns moerr.GetOkExpectedEOF() after the last entry. Once the
// table has been structurally modified (insert, remove, growth, destroy)
// Next returns ErrStaleReference. Ask the table for a new iterator to
// start over.
type Iterator[K comparable, V any] interface {
	Next() (*Entry[K, V], error)
}

func staleIterator() error {
	return moerr.NewStaleReferenceNoCtx("iterator outlived a table mutation")
}

// slotIterator skips Empty and Tombstone slots.
type slotIterator[K comparable, V any] struct {
	table *OpenAddressing[K, V]
	pos   int
	mods  uint64
}

func (it *slotIterator[K, V]) Next() (*Entry[K, V], error) {
	if it.mods != it.table.mods {
		return nil, staleIterator()
	}
	slots := it.table.slots
	for it.pos < len(slots) {
		e := &slots[it.pos]
		it.pos++
		if e.status == Occupied {
			return e, nil
		}
	}
	return nil, moerr.GetOkExpectedEOF()
}

// chainIterator walks the buckets in index order, each chain head to tail,
// skipping empty chains.
type chainIterator[K comparable, V any] struct {
	table  *SeparateChaining[K, V]
	bucket int
	elem   *list.Element[Entry[K, V]]
	mods   uint64
}

func (it *chainIterator[K, V]) Next() (*Entry[K, V], error) {
	if it.mods != it.table.mods {
		return nil, staleIterator()
	}
	for it.elem == nil {
		if it.bucket >= len(it.table.buckets) {
			return nil, moerr.GetOkExpectedEOF()
		}
		it.elem, _ = it.table.buckets[it.bucket].Front()
		it.bucket++
	}
	e := it.elem
	it.elem = e.Next()
	return &e.Value, nil
}

// Collect drains it into a slice.
func Collect[K comparable, V any](it Iterator[K, V]) ([]*Entry[K, V], error) {
	var entries []*Entry[K, V]
	for {
		e, err := it.Next()
		if err != nil {
			if moerr.IsMoErrCode(err, moerr.OkExpectedEOF) {
				return entries, nil
			}
			return nil, err
		}
		entries = append(entries, e)
	}
}
