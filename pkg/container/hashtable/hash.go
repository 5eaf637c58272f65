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
	"math/bits"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/containers/pkg/common/moerr"
	"github.com/matrixorigin/containers/pkg/config"
)

// Hasher maps a key to its 32-bit hash code. It must be deterministic.
// Every value, zero included, is a legal hash code: slot occupancy is
// tracked by Status, not by the hash.
type Hasher[K any] interface {
	HashCode(key K) uint32
}

// HasherFunc adapts a plain function to Hasher.
type HasherFunc[K any] func(key K) uint32

func (f HasherFunc[K]) HashCode(key K) uint32 {
	return f(key)
}

// IntHasher is the identity hash, folded to 32 bits. Sequential keys land
// in sequential slots under DivisionIndex.
type IntHasher[K constraints.Integer] struct{}

func (IntHasher[K]) HashCode(key K) uint32 {
	return fold(uint64(key))
}

// MixHasher scrambles integer keys with the wyhash mixer so that keys
// sharing low bits spread out.
type MixHasher[K constraints.Integer] struct{}

func (MixHasher[K]) HashCode(key K) uint32 {
	return fold(wyhash64(uint64(key)))
}

type StringHasher struct{}

func (StringHasher) HashCode(key string) uint32 {
	return fold(xxhash.Sum64String(key))
}

type BytesHasher struct{}

func (BytesHasher) HashCode(key []byte) uint32 {
	return fold(xxhash.Sum64(key))
}

func fold(h uint64) uint32 {
	return uint32(h ^ h>>32)
}

const (
	m1 = 0xa0761d6478bd642f
	m2 = 0xe7037ed1a0b428db
	m5 = 0x1d8e4e27c47d124f

	// fixed seed, hash codes must be stable across processes
	seed = 0x2d358dccaa6c78a5
)

func wyhash64(x uint64) uint64 {
	return mix(m5^8, mix(x^m2, x^seed^m1))
}

func mix(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}

// Indexer maps a hash code to a home index in [0, capacity).
// capacity is always positive.
type Indexer interface {
	Index(hash uint32, capacity int) int
}

// DivisionIndex is hash mod capacity.
type DivisionIndex struct{}

func (DivisionIndex) Index(hash uint32, capacity int) int {
	return int(uint64(hash) % uint64(capacity))
}

// MultiplicativeIndex multiplies by the 32-bit golden ratio constant and
// scales the product into range, so that the high bits of the hash decide
// the slot.
type MultiplicativeIndex struct{}

const goldenRatio32 = 0x9e3779b9

func (MultiplicativeIndex) Index(hash uint32, capacity int) int {
	h := hash * goldenRatio32
	return int((uint64(h) * uint64(capacity)) >> 32)
}

// IndexerByName resolves the names accepted by the hashtable.index
// configuration key.
func IndexerByName(name string) (Indexer, error) {
	switch name {
	case "", config.IndexDivision:
		return DivisionIndex{}, nil
	case config.IndexMultiplicative:
		return MultiplicativeIndex{}, nil
	default:
		return nil, moerr.NewInvalidArgNoCtx("index", name)
	}
}
