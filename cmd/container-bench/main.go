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

// container-bench drives both hash table strategies and the vector with a
// random workload built from a toml configuration, then logs table shape
// and allocator statistics.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/matrixorigin/containers/pkg/common/malloc"
	"github.com/matrixorigin/containers/pkg/common/moerr"
	"github.com/matrixorigin/containers/pkg/config"
	"github.com/matrixorigin/containers/pkg/container/hashtable"
	"github.com/matrixorigin/containers/pkg/container/vector"
	"github.com/matrixorigin/containers/pkg/logutil"
)

var (
	configFlag = flag.String("cfg", "", "toml configuration file, defaults are used when empty")
	opsFlag    = flag.Int("ops", 100000, "operations per table")
	keysFlag   = flag.Int("keys", 10000, "size of the key space")
	seedFlag   = flag.Int64("seed", 0, "workload seed, 0 picks one from the clock")
)

type workload struct {
	ops  int
	keys int
	seed int64
}

type report struct {
	Strategy   hashtable.Strategy
	Count      int
	Capacity   int
	Tombstones int
	Inserts    int
	Removes    int
	Misses     int
	Slots      malloc.Stats
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.LoadFile(*configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "load configuration failed: %v\n", err)
			os.Exit(1)
		}
	}
	logutil.SetupMOLogger(&cfg.Log)

	w := workload{ops: *opsFlag, keys: *keysFlag, seed: *seedFlag}
	if w.seed == 0 {
		w.seed = time.Now().UnixNano()
	}
	if err := run(cfg, w); err != nil {
		logutil.Error("container-bench failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Configuration, w workload) error {
	for _, s := range []hashtable.Strategy{hashtable.OpenAddressingStrategy, hashtable.SeparateChainingStrategy} {
		start := time.Now()
		r, err := runTable(cfg, s, w)
		if err != nil {
			return err
		}
		logutil.Info("table workload done",
			zap.Stringer("strategy", r.Strategy),
			zap.Int("count", r.Count),
			zap.Int("capacity", r.Capacity),
			zap.Int("tombstones", r.Tombstones),
			zap.Int("inserts", r.Inserts),
			zap.Int("removes", r.Removes),
			zap.Int("misses", r.Misses),
			zap.Int64("slot-peak", r.Slots.PeakInuseSize),
			logutil.Elapsed(time.Since(start)))
	}

	start := time.Now()
	stats, length, err := runVector(cfg, w)
	if err != nil {
		return err
	}
	logutil.Info("vector workload done",
		zap.Int("length", length),
		zap.Uint64("allocations", stats.AllocateObjects),
		zap.Int64("peak", stats.PeakInuseSize),
		logutil.Elapsed(time.Since(start)))
	return nil
}

// runTable mixes inserts, lookups and removes over a bounded key space.
// Keys are kept unique so the table mirrors a set.
func runTable(cfg *config.Configuration, s hashtable.Strategy, w workload) (report, error) {
	opts, err := hashtable.OptionsFromConfig[int64, int64](cfg)
	if err != nil {
		return report{}, err
	}
	slots := malloc.NewMetricsAllocator[hashtable.Entry[int64, int64]](malloc.NewGoAllocator[hashtable.Entry[int64, int64]]())
	opts.Allocator = slots
	t, err := hashtable.New[int64, int64](s, hashtable.MixHasher[int64]{}, opts)
	if err != nil {
		return report{}, err
	}
	defer t.Destroy()

	r := report{Strategy: s}
	rnd := rand.New(rand.NewSource(w.seed))
	for i := 0; i < w.ops; i++ {
		k := rnd.Int63n(int64(w.keys))
		switch rnd.Intn(3) {
		case 0:
			if t.Contains(k) {
				continue
			}
			if _, err := t.Insert(k, k*2); err != nil {
				return r, err
			}
			r.Inserts++
		case 1:
			if err := t.Remove(k); err == nil {
				r.Removes++
			} else if !moerr.IsMoErrCode(err, moerr.ErrKeyNotFound) {
				return r, err
			}
		default:
			if v, ok := t.Find(k); !ok {
				r.Misses++
			} else if v != k*2 {
				return r, moerr.NewInternalErrorNoCtx("key %d holds %d", k, v)
			}
		}
	}
	r.Count = t.Count()
	r.Capacity = t.Capacity()
	if oa, ok := t.(*hashtable.OpenAddressing[int64, int64]); ok {
		r.Tombstones = oa.Tombstones()
	}
	r.Slots = slots.Stats()
	return r, nil
}

func runVector(cfg *config.Configuration, w workload) (malloc.Stats, int, error) {
	alloc := malloc.NewMetricsAllocator[int64](malloc.NewGoAllocator[int64]())
	v, err := vector.NewWithParameters[int64](cfg.Vector, alloc)
	if err != nil {
		return malloc.Stats{}, 0, err
	}
	defer v.Free()

	rnd := rand.New(rand.NewSource(w.seed))
	for i := 0; i < w.ops; i++ {
		if rnd.Intn(4) == 0 && !v.IsEmpty() {
			if _, err := v.PopBack(); err != nil {
				return alloc.Stats(), v.Length(), err
			}
			continue
		}
		if err := v.PushBack(rnd.Int63()); err != nil {
			return alloc.Stats(), v.Length(), err
		}
	}
	return alloc.Stats(), v.Length(), nil
}
