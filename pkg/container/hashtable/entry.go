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
)

// Status is the state of an open-addressing slot.
type Status uint8

const (
	// Empty slots end a probe sequence.
	Empty Status = iota
	// Tombstone slots held an entry that was removed. They keep probe
	// sequences running but do not count as occupied, and are dropped at
	// the next rehash.
	Tombstone
	Occupied
)

func (s Status) String() string {
	switch s {
	case Empty:
		return "empty"
	case Tombstone:
		return "tombstone"
	case Occupied:
		return "occupied"
	default:
		return "unknown"
	}
}

// Entry is a key/value pair stored in a table.
type Entry[K comparable, V any] struct {
	hash   uint32
	status Status
	key    K
	value  V
}

func (e *Entry[K, V]) Key() K {
	return e.key
}

func (e *Entry[K, V]) Value() V {
	return e.value
}

func (e *Entry[K, V]) HashCode() uint32 {
	return e.hash
}

func (e *Entry[K, V]) Status() Status {
	return e.status
}

// SetValue replaces the value in place.
func (e *Entry[K, V]) SetValue(v V) {
	e.value = v
}

func (e *Entry[K, V]) matches(hash uint32, key K) bool {
	return e.status == Occupied && e.hash == hash && e.key == key
}

// epochSource is implemented by tables. The epoch advances whenever
// entries may have moved or been destroyed.
type epochSource interface {
	epoch() uint64
}

// Ref is a handle to an entry returned by Insert, Emplace and Get.
//
// A Ref stays valid until the next structural mutation of its table: an
// insert that grows or rehashes the table, any Remove, or Destroy. After
// that, Valid reports false and Entry returns ErrStaleReference. Inserts
// that do not rehash leave outstanding Refs valid.
type Ref[K comparable, V any] struct {
	entry *Entry[K, V]
	owner epochSource
	epoch uint64
}

func newRef[K comparable, V any](e *Entry[K, V], owner epochSource) Ref[K, V] {
	return Ref[K, V]{entry: e, owner: owner, epoch: owner.epoch()}
}

func (r Ref[K, V]) Valid() bool {
	return r.entry != nil && r.owner.epoch() == r.epoch
}

func (r Ref[K, V]) Entry() (*Entry[K, V], error) {
	if !r.Valid() {
		return nil, moerr.NewStaleReferenceNoCtx("entry reference outlived a table mutation")
	}
	return r.entry, nil
}

// MustEntry is Entry that panics on a stale reference.
func (r Ref[K, V]) MustEntry() *Entry[K, V] {
	e, err := r.Entry()
	if err != nil {
		panic(err)
	}
	return e
}
