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

package bitmap

import (
	"github.com/matrixorigin/containers/pkg/common/moerr"
)

// Bitmask numbers its bits from the most significant end. Bit 0 is the
// leftmost character of String and the top bit of the Len-bit value
// returned by Uint64.
//
// A fixed Bitmask keeps its width. A dynamic one grows and shrinks at the
// low end with PushBit and PopBit.
type Bitmask struct {
	bm      Bitmap
	dynamic bool
}

// NewBitmask returns a fixed mask of n zero bits.
func NewBitmask(n int) *Bitmask {
	m := &Bitmask{}
	m.bm.InitWithSize(int64(n))
	return m
}

// NewDynamicBitmask returns an empty mask that grows with PushBit.
func NewDynamicBitmask() *Bitmask {
	return &Bitmask{dynamic: true}
}

// FromUint64 returns a fixed n-bit mask holding the low n bits of v. v
// must fit in n bits.
func FromUint64(v uint64, n int) (*Bitmask, error) {
	if n < 0 || n > 64 {
		return nil, moerr.NewInvalidArgNoCtx("bitmask width", n)
	}
	if n < 64 && v>>uint(n) != 0 {
		return nil, moerr.NewInvalidArgNoCtx("bitmask value", v)
	}
	m := NewBitmask(n)
	for i := 0; i < n; i++ {
		if v>>uint(n-1-i)&1 == 1 {
			m.bm.Add(uint64(i))
		}
	}
	return m, nil
}

// Uint64 packs the mask into an integer, bit 0 on top. Len must not
// exceed 64.
func (m *Bitmask) Uint64() (uint64, error) {
	n := m.Len()
	if n > 64 {
		return 0, moerr.NewInvalidStateNoCtx("a %d-bit mask does not fit in 64 bits", n)
	}
	var v uint64
	itr := m.bm.Iterator()
	for itr.HasNext() {
		i := itr.Next()
		v |= 1 << uint(n-1-int(i))
	}
	return v, nil
}

func (m *Bitmask) Len() int {
	return int(m.bm.len)
}

func (m *Bitmask) Dynamic() bool {
	return m.dynamic
}

func (m *Bitmask) PushBit(v bool) error {
	if !m.dynamic {
		return moerr.NewInvalidStateNoCtx("push on a fixed %d-bit mask", m.Len())
	}
	m.bm.PushBit(v)
	return nil
}

func (m *Bitmask) PopBit() (bool, error) {
	if !m.dynamic {
		return false, moerr.NewInvalidStateNoCtx("pop on a fixed %d-bit mask", m.Len())
	}
	return m.bm.PopBit()
}

func (m *Bitmask) Set(i int) error {
	if i < 0 {
		return moerr.NewIndexOutOfBoundsNoCtx(i, m.Len())
	}
	return m.bm.TryAdd(uint64(i))
}

func (m *Bitmask) Unset(i int) error {
	if i < 0 {
		return moerr.NewIndexOutOfBoundsNoCtx(i, m.Len())
	}
	return m.bm.TryRemove(uint64(i))
}

func (m *Bitmask) Test(i int) (bool, error) {
	if i < 0 {
		return false, moerr.NewIndexOutOfBoundsNoCtx(i, m.Len())
	}
	return m.bm.TryContains(uint64(i))
}

func (m *Bitmask) Count() int {
	return m.bm.Count()
}

func (m *Bitmask) And(o *Bitmask) error {
	return m.bm.And(&o.bm)
}

func (m *Bitmask) Or(o *Bitmask) error {
	return m.bm.Or(&o.bm)
}

func (m *Bitmask) Xor(o *Bitmask) error {
	return m.bm.Xor(&o.bm)
}

func (m *Bitmask) Equal(o *Bitmask) bool {
	return m.bm.IsSame(&o.bm)
}

func (m *Bitmask) String() string {
	return m.bm.bitString()
}
