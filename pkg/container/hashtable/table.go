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

// Table is the contract shared by both collision strategies.
//
// Insert and Emplace never deduplicate keys. Get, Set and Remove return
// ErrKeyNotFound for an absent key; like every precondition error it is
// not worth retrying. See Ref for how long returned handles stay usable.
type Table[K comparable, V any] interface {
	Insert(key K, value V) (Ref[K, V], error)
	Emplace(key K, ctor func() V) (Ref[K, V], error)
	Get(key K) (Ref[K, V], error)
	Find(key K) (V, bool)
	Contains(key K) bool
	Set(key K, value V) error
	Remove(key K) error
	Count() int
	Capacity() int
	NewIterator() Iterator[K, V]
	Range(fn func(*Entry[K, V]) bool)
	Destroy()
}

// Strategy selects the collision resolution of a Table.
type Strategy int

const (
	OpenAddressingStrategy Strategy = iota
	SeparateChainingStrategy
)

func (s Strategy) String() string {
	switch s {
	case OpenAddressingStrategy:
		return "open-addressing"
	case SeparateChainingStrategy:
		return "separate-chaining"
	default:
		return "unknown"
	}
}

// New builds a table with the given strategy.
func New[K comparable, V any](strategy Strategy, hasher Hasher[K], opts Options[K, V]) (Table[K, V], error) {
	switch strategy {
	case OpenAddressingStrategy:
		t, err := NewOpenAddressing(hasher, opts)
		if err != nil {
			return nil, err
		}
		return t, nil
	case SeparateChainingStrategy:
		t, err := NewSeparateChaining(hasher, opts)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, moerr.NewInvalidArgNoCtx("strategy", int(strategy))
	}
}

// MustGet returns the value for key and panics with ErrKeyNotFound when it
// is absent.
func MustGet[K comparable, V any](t Table[K, V], key K) V {
	v, ok := t.Find(key)
	if !ok {
		panic(moerr.NewKeyNotFoundNoCtx(key))
	}
	return v
}
