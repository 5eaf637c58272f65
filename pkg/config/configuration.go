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

package config

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/containers/pkg/common/moerr"
	"github.com/matrixorigin/containers/pkg/logutil"
)

const (
	IndexDivision       = "division"
	IndexMultiplicative = "multiplicative"
)

// HashTableParameters of the hash tables
type HashTableParameters struct {
	//default is 16. slots allocated by a new open-addressing table
	InitialCapacity int `toml:"initialCapacity"`

	//default is 0.75. a full table grows to capacity + capacity*growthFactor
	GrowthFactor float64 `toml:"growthFactor"`

	//default is 1.0, grow only when no empty slot is reachable.
	//(count+tombstones)/capacity above this also triggers growth
	MaxLoadFactor float64 `toml:"maxLoadFactor"`

	//default is 8. rehash attempts, each doubling the target capacity
	MaxGrowRetries int `toml:"maxGrowRetries"`

	//default is 64. bucket count of a separate-chaining table
	ChainBuckets int `toml:"chainBuckets"`

	//default is "division". "division" or "multiplicative"
	Index string `toml:"index"`
}

// VectorParameters of the growable array
type VectorParameters struct {
	//default is 2.
	InitialCapacity int `toml:"initialCapacity"`

	//default is 1.0. a full vector grows to capacity + max(1, capacity*growthFactor)
	GrowthFactor float64 `toml:"growthFactor"`
}

// Configuration is the root of the toml document.
type Configuration struct {
	HashTable HashTableParameters `toml:"hashtable"`
	Vector    VectorParameters    `toml:"vector"`
	Log       logutil.LogConfig   `toml:"log"`
}

// Default returns a configuration with every field at its default.
func Default() *Configuration {
	cfg := &Configuration{}
	cfg.SetDefaultValues()
	return cfg
}

// SetDefaultValues fills the zero-valued fields.
func (c *Configuration) SetDefaultValues() {
	if c.HashTable.InitialCapacity == 0 {
		c.HashTable.InitialCapacity = 16
	}
	if c.HashTable.GrowthFactor == 0 {
		c.HashTable.GrowthFactor = 0.75
	}
	if c.HashTable.MaxLoadFactor == 0 {
		c.HashTable.MaxLoadFactor = 1.0
	}
	if c.HashTable.MaxGrowRetries == 0 {
		c.HashTable.MaxGrowRetries = 8
	}
	if c.HashTable.ChainBuckets == 0 {
		c.HashTable.ChainBuckets = 64
	}
	if c.HashTable.Index == "" {
		c.HashTable.Index = IndexDivision
	}
	if c.Vector.InitialCapacity == 0 {
		c.Vector.InitialCapacity = 2
	}
	if c.Vector.GrowthFactor == 0 {
		c.Vector.GrowthFactor = 1.0
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Validate checks every field and returns ErrBadConfig for the first bad one.
func (c *Configuration) Validate() error {
	ht := &c.HashTable
	if ht.InitialCapacity < 1 {
		return moerr.NewBadConfigNoCtx("hashtable.initialCapacity must be positive, got %d", ht.InitialCapacity)
	}
	if ht.GrowthFactor <= 0 {
		return moerr.NewBadConfigNoCtx("hashtable.growthFactor must be positive, got %v", ht.GrowthFactor)
	}
	if ht.MaxLoadFactor <= 0 || ht.MaxLoadFactor > 1 {
		return moerr.NewBadConfigNoCtx("hashtable.maxLoadFactor must be in (0, 1], got %v", ht.MaxLoadFactor)
	}
	if ht.MaxGrowRetries < 1 {
		return moerr.NewBadConfigNoCtx("hashtable.maxGrowRetries must be positive, got %d", ht.MaxGrowRetries)
	}
	if ht.ChainBuckets < 1 {
		return moerr.NewBadConfigNoCtx("hashtable.chainBuckets must be positive, got %d", ht.ChainBuckets)
	}
	switch ht.Index {
	case IndexDivision, IndexMultiplicative:
	default:
		return moerr.NewBadConfigNoCtx("hashtable.index %q is unknown", ht.Index)
	}
	if c.Vector.InitialCapacity < 0 {
		return moerr.NewBadConfigNoCtx("vector.initialCapacity must not be negative, got %d", c.Vector.InitialCapacity)
	}
	if c.Vector.GrowthFactor <= 0 {
		return moerr.NewBadConfigNoCtx("vector.growthFactor must be positive, got %v", c.Vector.GrowthFactor)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return moerr.NewBadConfigNoCtx("log.format %q is unknown", c.Log.Format)
	}
	return nil
}

// LoadFile decodes the toml file at path, fills defaults and validates.
func LoadFile(path string) (*Configuration, error) {
	cfg := &Configuration{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, moerr.NewInvalidInputNoCtx("decode config file %s: %v", path, err)
	}
	return finish(cfg, md)
}

// Parse is LoadFile for an in-memory document.
func Parse(data string) (*Configuration, error) {
	cfg := &Configuration{}
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, moerr.NewInvalidInputNoCtx("decode config: %v", err)
	}
	return finish(cfg, md)
}

func finish(cfg *Configuration, md toml.MetaData) (*Configuration, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, moerr.NewBadConfigNoCtx("unknown keys %s", strings.Join(keys, ", "))
	}
	cfg.SetDefaultValues()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
