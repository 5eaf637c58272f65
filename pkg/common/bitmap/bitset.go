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
	"github.com/RoaringBitmap/roaring"

	"github.com/matrixorigin/containers/pkg/common/moerr"
)

// Bitset is a Bitmap whose width is fixed at construction.
type Bitset struct {
	bm Bitmap
}

func NewBitset(n int) *Bitset {
	s := &Bitset{}
	s.bm.InitWithSize(int64(n))
	return s
}

func (s *Bitset) Len() int {
	return int(s.bm.len)
}

func (s *Bitset) Set(i int) error {
	if i < 0 {
		return moerr.NewIndexOutOfBoundsNoCtx(i, s.Len())
	}
	return s.bm.TryAdd(uint64(i))
}

func (s *Bitset) Unset(i int) error {
	if i < 0 {
		return moerr.NewIndexOutOfBoundsNoCtx(i, s.Len())
	}
	return s.bm.TryRemove(uint64(i))
}

func (s *Bitset) Test(i int) (bool, error) {
	if i < 0 {
		return false, moerr.NewIndexOutOfBoundsNoCtx(i, s.Len())
	}
	return s.bm.TryContains(uint64(i))
}

// Flip inverts bit i.
func (s *Bitset) Flip(i int) error {
	v, err := s.Test(i)
	if err != nil {
		return err
	}
	if v {
		return s.Unset(i)
	}
	return s.Set(i)
}

func (s *Bitset) FlipAll() {
	s.bm.Negate()
}

func (s *Bitset) SetAll() {
	s.bm.SetAll()
}

func (s *Bitset) UnsetAll() {
	s.bm.UnsetAll()
}

func (s *Bitset) Count() int {
	return s.bm.Count()
}

// All reports whether every bit is set. It is true for a zero width set.
func (s *Bitset) All() bool {
	return s.bm.Count() == s.Len()
}

func (s *Bitset) Any() bool {
	return !s.bm.IsEmpty()
}

func (s *Bitset) None() bool {
	return s.bm.IsEmpty()
}

func (s *Bitset) And(o *Bitset) error {
	return s.bm.And(&o.bm)
}

func (s *Bitset) Or(o *Bitset) error {
	return s.bm.Or(&o.bm)
}

func (s *Bitset) Xor(o *Bitset) error {
	return s.bm.Xor(&o.bm)
}

func (s *Bitset) Equal(o *Bitset) bool {
	return s.bm.IsSame(&o.bm)
}

func (s *Bitset) Clone() *Bitset {
	c := &Bitset{}
	c.bm.InitWith(&s.bm)
	return c
}

func (s *Bitset) Iterator() Iterator {
	return s.bm.Iterator()
}

func (s *Bitset) ToRoaring() (*roaring.Bitmap, error) {
	return s.bm.ToRoaring()
}

// String renders bit 0 first, e.g. "0110".
func (s *Bitset) String() string {
	return s.bm.bitString()
}
