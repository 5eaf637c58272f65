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
	"github.com/matrixorigin/containers/pkg/common/malloc"
	"github.com/matrixorigin/containers/pkg/common/moerr"
	"github.com/matrixorigin/containers/pkg/config"
)

const (
	defaultInitialCapacity = 16
	defaultGrowthFactor    = 0.75
	defaultMaxLoadFactor   = 1.0
	defaultBuckets         = 64
)

// defaultMaxGrowRetries bounds the rehash loop when Options leave
// MaxGrowRetries unset.
var defaultMaxGrowRetries = 8

// Options configures a table. Zero fields take their defaults.
type Options[K comparable, V any] struct {
	// InitialCapacity is the slot count of a new open-addressing table.
	InitialCapacity int
	// GrowthFactor sets the next capacity to capacity + capacity*GrowthFactor.
	GrowthFactor float64
	// MaxLoadFactor bounds (count+tombstones)/capacity. 1 means grow only
	// when no empty slot is left.
	MaxLoadFactor float64
	// MaxGrowRetries bounds the rehash attempts of a single growth.
	MaxGrowRetries int
	// Buckets is the fixed chain count of a separate-chaining table.
	Buckets int
	Indexer Indexer
	// Allocator supplies open-addressing slot buffers.
	Allocator malloc.Allocator[Entry[K, V]]
	// Destructor runs once for every entry that leaves the table through
	// Remove or Destroy.
	Destructor func(K, V)
}

// OptionsFromConfig builds Options from the hashtable section of cfg.
func OptionsFromConfig[K comparable, V any](cfg *config.Configuration) (Options[K, V], error) {
	indexer, err := IndexerByName(cfg.HashTable.Index)
	if err != nil {
		return Options[K, V]{}, err
	}
	return Options[K, V]{
		InitialCapacity: cfg.HashTable.InitialCapacity,
		GrowthFactor:    cfg.HashTable.GrowthFactor,
		MaxLoadFactor:   cfg.HashTable.MaxLoadFactor,
		MaxGrowRetries:  cfg.HashTable.MaxGrowRetries,
		Buckets:         cfg.HashTable.ChainBuckets,
		Indexer:         indexer,
	}, nil
}

func (o *Options[K, V]) fillDefaults() {
	if o.InitialCapacity == 0 {
		o.InitialCapacity = defaultInitialCapacity
	}
	if o.GrowthFactor == 0 {
		o.GrowthFactor = defaultGrowthFactor
	}
	if o.MaxLoadFactor == 0 {
		o.MaxLoadFactor = defaultMaxLoadFactor
	}
	if o.MaxGrowRetries == 0 {
		o.MaxGrowRetries = defaultMaxGrowRetries
	}
	if o.Buckets == 0 {
		o.Buckets = defaultBuckets
	}
	if o.Indexer == nil {
		o.Indexer = DivisionIndex{}
	}
	if o.Allocator == nil {
		o.Allocator = malloc.NewGoAllocator[Entry[K, V]]()
	}
}

func (o *Options[K, V]) validate() error {
	switch {
	case o.InitialCapacity < 1:
		return moerr.NewInvalidArgNoCtx("initial capacity", o.InitialCapacity)
	case o.GrowthFactor <= 0:
		return moerr.NewInvalidArgNoCtx("growth factor", o.GrowthFactor)
	case o.MaxLoadFactor <= 0 || o.MaxLoadFactor > 1:
		return moerr.NewInvalidArgNoCtx("max load factor", o.MaxLoadFactor)
	case o.MaxGrowRetries < 1:
		return moerr.NewInvalidArgNoCtx("max grow retries", o.MaxGrowRetries)
	case o.Buckets < 1:
		return moerr.NewInvalidArgNoCtx("buckets", o.Buckets)
	}
	return nil
}
