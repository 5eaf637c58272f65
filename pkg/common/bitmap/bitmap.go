// Copyright 2021 Matrix Origin
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
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"github.com/matrixorigin/containers/pkg/common/moerr"
)

//
// Bits past len in the last word are always zero. Every operation that
// shrinks the bitmap or sets whole words clears them again, and Count,
// IsEmpty and the iterator rely on it.
//

// Bitmap is a growable sequence of bits. Bit i lives in word i/64 at
// position i%64, least significant first.
type Bitmap struct {
	len  int64
	data []uint64
}

// Iterator walks the set bits in ascending order.
type Iterator interface {
	HasNext() bool
	PeekNext() uint64
	Next() uint64
}

type BitmapIterator struct {
	i        uint64
	has_next bool
	bm       *Bitmap
}

// New returns a bitmap of n zero bits.
func New(n int) *Bitmap {
	var bm Bitmap
	bm.InitWithSize(int64(n))
	return &bm
}

func (n *Bitmap) InitWith(other *Bitmap) {
	n.len = other.len
	n.data = append([]uint64(nil), other.data...)
}

func (n *Bitmap) InitWithSize(len int64) {
	n.len = len
	n.data = make([]uint64, (len+63)/64)
}

func (n *Bitmap) Clone() *Bitmap {
	if n == nil {
		return nil
	}
	var ret Bitmap
	ret.InitWith(n)
	return &ret
}

func (n *Bitmap) Iterator() Iterator {
	// When initialization, the itr.i is set to the first set position.
	itr := BitmapIterator{i: 0, bm: n}
	if first, has_next := itr.hasNext(0); has_next {
		itr.i = first
		itr.has_next = true
		return &itr
	}
	itr.has_next = false
	return &itr
}

func (itr *BitmapIterator) hasNext(i uint64) (uint64, bool) {
	// skip zero words, then take the lowest set bit of the first
	// non-zero one. Loop over words, not bits.
	nwords := (itr.bm.len + 63) / 64
	current_word := i >> 6
	mask := ^uint64(0) << (i & 0x3F) // ignore bits check before
	var result uint64

	for ; current_word < uint64(nwords); current_word++ {
		word := itr.bm.data[current_word]
		word &= mask

		if word != 0 {
			result = uint64(bits.TrailingZeros64(word)) + current_word*64
			return result, true
		}
		mask = ^uint64(0) // in subsequent words, consider all bits
	}
	return result, false
}

func (itr *BitmapIterator) HasNext() bool {
	return itr.has_next
}

func (itr *BitmapIterator) PeekNext() uint64 {
	if itr.has_next {
		return itr.i
	}
	return 0
}

func (itr *BitmapIterator) Next() uint64 {
	// itr.i already holds a set position: find the one after it and
	// return the current one.
	pos := itr.i
	if next, has_next := itr.hasNext(itr.i + 1); has_next {
		itr.i = next
		itr.has_next = true
		return pos
	}
	itr.has_next = false
	return pos
}

// Reset drops every bit and the buffer.
func (n *Bitmap) Reset() {
	n.len = 0
	n.data = nil
}

// Len returns the number of bits in the Bitmap.
func (n *Bitmap) Len() int64 {
	return n.len
}

// Size return number of bytes in n.data
func (n *Bitmap) Size() int {
	return len(n.data) * 8
}

// Cap is the number of bits that fit before the next allocation.
func (n *Bitmap) Cap() int64 {
	return int64(cap(n.data)) * 64
}

// IsEmpty returns true if no bit in the Bitmap is set, otherwise it will return false.
func (n *Bitmap) IsEmpty() bool {
	for i := 0; i < len(n.data); i++ {
		if n.data[i] != 0 {
			return false
		}
	}
	return true
}

// PushBit appends one bit.
func (n *Bitmap) PushBit(value bool) {
	row := uint64(n.len)
	n.TryExpandWithSize(int(n.len + 1))
	if value {
		n.data[row>>6] |= 1 << (row & 0x3F)
	}
}

// PopBit removes the last bit and returns it.
func (n *Bitmap) PopBit() (bool, error) {
	if n.len == 0 {
		return false, moerr.NewEmptyContainerNoCtx("bitmap")
	}
	row := uint64(n.len - 1)
	v := n.Contains(row)
	n.data[row>>6] &^= 1 << (row & 0x3F)
	n.len--
	n.data = n.data[:(n.len+63)/64]
	return v, nil
}

func (n *Bitmap) checkRow(row uint64) error {
	if row >= uint64(n.len) {
		return moerr.NewIndexOutOfBoundsNoCtx(int(min(row, math.MaxInt)), int(n.len))
	}
	return nil
}

// TryAdd sets bit row, which must be below Len.
func (n *Bitmap) TryAdd(row uint64) error {
	if err := n.checkRow(row); err != nil {
		return err
	}
	n.data[row>>6] |= 1 << (row & 0x3F)
	return nil
}

// Add is TryAdd that panics when row is out of range.
func (n *Bitmap) Add(row uint64) {
	if err := n.TryAdd(row); err != nil {
		panic(err)
	}
}

func (n *Bitmap) AddMany(rows []uint64) {
	for _, row := range rows {
		n.Add(row)
	}
}

// TryRemove clears bit row, which must be below Len.
func (n *Bitmap) TryRemove(row uint64) error {
	if err := n.checkRow(row); err != nil {
		return err
	}
	n.data[row>>6] &^= 1 << (row & 0x3F)
	return nil
}

// Remove clears bit row. Rows past Len are ignored.
func (n *Bitmap) Remove(row uint64) {
	if row >= uint64(n.len) {
		return
	}
	n.data[row>>6] &^= 1 << (row & 0x3F)
}

// Contains returns true if the row is contained in the Bitmap
func (n *Bitmap) Contains(row uint64) bool {
	if row >= uint64(n.len) {
		return false
	}
	idx := row >> 6
	return (n.data[idx] & (1 << (row & 0x3F))) != 0
}

// TryContains is Contains that reports rows past Len as an error.
func (n *Bitmap) TryContains(row uint64) (bool, error) {
	if err := n.checkRow(row); err != nil {
		return false, err
	}
	return n.Contains(row), nil
}

// AddRange sets the bits in [start, end). end must not exceed Len.
func (n *Bitmap) AddRange(start, end uint64) error {
	if start >= end {
		return nil
	}
	if end > uint64(n.len) {
		return moerr.NewIndexOutOfBoundsNoCtx(int(min(end-1, math.MaxInt)), int(n.len))
	}
	i, j := start>>6, (end-1)>>6
	if i == j {
		n.data[i] |= (^uint64(0) << uint(start&0x3F)) & (^uint64(0) >> (uint(-end) & 0x3F))
		return nil
	}
	n.data[i] |= (^uint64(0) << uint(start&0x3F))
	for k := i + 1; k < j; k++ {
		n.data[k] = ^uint64(0)
	}
	n.data[j] |= (^uint64(0) >> (uint(-end) & 0x3F))
	return nil
}

// RemoveRange clears the bits in [start, end), clipped to Len.
func (n *Bitmap) RemoveRange(start, end uint64) {
	if end > uint64(n.len) {
		end = uint64(n.len)
	}
	if start >= end {
		return
	}
	i, j := start>>6, (end-1)>>6
	if i == j {
		n.data[i] &= ^((^uint64(0) << uint(start&0x3F)) & (^uint64(0) >> (uint(-end) & 0x3F)))
		return
	}
	n.data[i] &= ^(^uint64(0) << uint(start&0x3F))
	for k := i + 1; k < j; k++ {
		n.data[k] = 0
	}
	n.data[j] &= ^(^uint64(0) >> (uint(-end) & 0x3F))
}

// SetAll sets every bit below Len.
func (n *Bitmap) SetAll() {
	for i := range n.data {
		n.data[i] = ^uint64(0)
	}
	n.clearTail()
}

// UnsetAll clears every bit and keeps Len.
func (n *Bitmap) UnsetAll() {
	clear(n.data)
}

// IsSame reports whether both bitmaps have the same length and bits.
func (n *Bitmap) IsSame(m *Bitmap) bool {
	if n.len != m.len || len(m.data) != len(n.data) {
		return false
	}
	for i := 0; i < len(n.data); i++ {
		if n.data[i] != m.data[i] {
			return false
		}
	}
	return true
}

func (n *Bitmap) sameLen(m *Bitmap) error {
	if n.len != m.len {
		return moerr.NewInvalidArgNoCtx("bitmap length", fmt.Sprintf("%d, want %d", m.len, n.len))
	}
	return nil
}

// Or sets n to n|m. Both must have the same length.
func (n *Bitmap) Or(m *Bitmap) error {
	if err := n.sameLen(m); err != nil {
		return err
	}
	for i := range n.data {
		n.data[i] |= m.data[i]
	}
	return nil
}

// And sets n to n&m. Both must have the same length.
func (n *Bitmap) And(m *Bitmap) error {
	if err := n.sameLen(m); err != nil {
		return err
	}
	for i := range n.data {
		n.data[i] &= m.data[i]
	}
	return nil
}

// Xor sets n to n^m. Both must have the same length.
func (n *Bitmap) Xor(m *Bitmap) error {
	if err := n.sameLen(m); err != nil {
		return err
	}
	for i := range n.data {
		n.data[i] ^= m.data[i]
	}
	return nil
}

func (n *Bitmap) Negate() {
	nBlock, nTail := int(n.len)/64, int(n.len)%64
	for i := 0; i < nBlock; i++ {
		n.data[i] = ^n.data[i]
	}
	if nTail > 0 {
		mask := (uint64(1) << nTail) - 1
		n.data[nBlock] ^= mask
	}
}

// Resize sets the length to size. New bits take value.
func (n *Bitmap) Resize(size int, value bool) {
	old := n.len
	if int64(size) <= old {
		n.len = int64(size)
		n.data = n.data[:(n.len+63)/64]
		n.clearTail()
		return
	}
	n.TryExpandWithSize(size)
	if value {
		_ = n.AddRange(uint64(old), uint64(size))
	}
}

// Reserve makes room for size bits without changing Len.
func (n *Bitmap) Reserve(size int) {
	newCap := (size + 63) / 64
	if newCap <= cap(n.data) {
		return
	}
	data := make([]uint64, len(n.data), newCap)
	copy(data, n.data)
	n.data = data
}

func (n *Bitmap) TryExpand(m *Bitmap) {
	n.TryExpandWithSize(int(m.len))
}

// TryExpandWithSize grows the bitmap to size bits. It never shrinks.
func (n *Bitmap) TryExpandWithSize(size int) {
	if int(n.len) >= size {
		return
	}
	newCap := (size + 63) / 64
	n.len = int64(size)
	if newCap > cap(n.data) {
		// double so that PushBit runs in amortized constant time
		data := make([]uint64, newCap, max(newCap, 2*cap(n.data)))
		copy(data, n.data)
		n.data = data
		return
	}
	if len(n.data) < newCap {
		old := len(n.data)
		n.data = n.data[:newCap]
		clear(n.data[old:])
	}
}

// Filter returns the bitmap whose bit i is bit sels[i] of n.
func (n *Bitmap) Filter(sels []int64) *Bitmap {
	m := New(len(sels))
	for i, sel := range sels {
		if n.Contains(uint64(sel)) {
			m.Add(uint64(i))
		}
	}
	return m
}

// Count returns the number of set bits.
func (n *Bitmap) Count() int {
	var cnt int
	for _, w := range n.data {
		cnt += bits.OnesCount64(w)
	}
	return cnt
}

func (n *Bitmap) ToArray() []uint64 {
	var rows []uint64
	itr := n.Iterator()
	for itr.HasNext() {
		r := itr.Next()
		rows = append(rows, r)
	}
	return rows
}

func (n *Bitmap) String() string {
	return fmt.Sprintf("%v", n.ToArray())
}

// bitString renders bit 0 first, e.g. "0110".
func (n *Bitmap) bitString() string {
	var sb strings.Builder
	sb.Grow(int(n.len))
	for i := int64(0); i < n.len; i++ {
		if n.Contains(uint64(i)) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (n *Bitmap) clearTail() {
	if tail := n.len % 64; tail > 0 {
		n.data[len(n.data)-1] &= (uint64(1) << tail) - 1
	}
}

// ToRoaring copies the set bits into a roaring bitmap. Positions must
// fit in 32 bits.
func (n *Bitmap) ToRoaring() (*roaring.Bitmap, error) {
	rb := roaring.New()
	itr := n.Iterator()
	for itr.HasNext() {
		r := itr.Next()
		if r > math.MaxUint32 {
			return nil, moerr.NewInvalidArgNoCtx("roaring position", r)
		}
		rb.Add(uint32(r))
	}
	return rb, nil
}

// FromRoaring builds a bitmap of size bits holding the values of rb.
func FromRoaring(rb *roaring.Bitmap, size int) (*Bitmap, error) {
	n := New(size)
	if rb.IsEmpty() {
		return n, nil
	}
	if top := int(rb.Maximum()); top >= size {
		return nil, moerr.NewIndexOutOfBoundsNoCtx(top, size)
	}
	itr := rb.Iterator()
	for itr.HasNext() {
		n.Add(uint64(itr.Next()))
	}
	return n, nil
}

// MarshalBinary writes the length as 8 little-endian bytes followed by
// the portable roaring encoding of the set bits.
func (n *Bitmap) MarshalBinary() ([]byte, error) {
	rb, err := n.ToRoaring()
	if err != nil {
		return nil, err
	}
	body, err := rb.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 8, 8+len(body))
	binary.LittleEndian.PutUint64(buf, uint64(n.len))
	return append(buf, body...), nil
}

func (n *Bitmap) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return moerr.NewInvalidInputNoCtx("bitmap encoding of %d bytes", len(data))
	}
	size := binary.LittleEndian.Uint64(data[:8])
	if size > math.MaxInt32 {
		return moerr.NewInvalidInputNoCtx("bitmap length %d", size)
	}
	rb := roaring.New()
	if err := rb.UnmarshalBinary(data[8:]); err != nil {
		return moerr.NewInvalidInputNoCtx("bitmap body: %v", err)
	}
	m, err := FromRoaring(rb, int(size))
	if err != nil {
		return err
	}
	*n = *m
	return nil
}
