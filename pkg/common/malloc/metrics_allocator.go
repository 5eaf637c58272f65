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

package malloc

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Stats is a snapshot of a MetricsAllocator's counters, in elements.
type Stats struct {
	AllocateObjects uint64
	FreeObjects     uint64
	AllocateSize    uint64
	InuseSize       int64
	PeakInuseSize   int64
}

// MetricsAllocator counts what passes through to upstream.
type MetricsAllocator[T any, U Allocator[T]] struct {
	upstream U

	allocateObjects atomic.Uint64
	allocateSize    atomic.Uint64
	_               cpu.CacheLinePad
	freeObjects     atomic.Uint64
	_               cpu.CacheLinePad
	inuseSize       atomic.Int64
	peakInuseSize   atomic.Int64
}

func NewMetricsAllocator[T any, U Allocator[T]](upstream U) *MetricsAllocator[T, U] {
	return &MetricsAllocator[T, U]{
		upstream: upstream,
	}
}

var _ Allocator[int] = new(MetricsAllocator[int, GoAllocator[int]])

func (m *MetricsAllocator[T, U]) Allocate(n int) ([]T, error) {
	buf, err := m.upstream.Allocate(n)
	if err != nil {
		return nil, err
	}
	m.allocateObjects.Add(1)
	m.allocateSize.Add(uint64(n))
	m.updatePeak(m.inuseSize.Add(int64(n)))
	return buf, nil
}

func (m *MetricsAllocator[T, U]) Deallocate(buf []T) {
	m.freeObjects.Add(1)
	m.inuseSize.Add(-int64(len(buf)))
	m.upstream.Deallocate(buf)
}

func (m *MetricsAllocator[T, U]) updatePeak(n int64) {
	for {
		peak := m.peakInuseSize.Load()
		if n <= peak {
			return
		}
		if m.peakInuseSize.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (m *MetricsAllocator[T, U]) Stats() Stats {
	return Stats{
		AllocateObjects: m.allocateObjects.Load(),
		FreeObjects:     m.freeObjects.Load(),
		AllocateSize:    m.allocateSize.Load(),
		InuseSize:       m.inuseSize.Load(),
		PeakInuseSize:   m.peakInuseSize.Load(),
	}
}
