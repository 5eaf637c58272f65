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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/containers/pkg/common/moerr"
)

func TestGoAllocator(t *testing.T) {
	a := NewGoAllocator[int]()
	buf, err := a.Allocate(8)
	require.NoError(t, err)
	require.Equal(t, 8, len(buf))
	buf[3] = 42
	a.Deallocate(buf)
	require.Equal(t, 0, buf[3])

	buf, err = a.Allocate(0)
	require.NoError(t, err)
	require.Nil(t, buf)
}

func TestLimitAllocator(t *testing.T) {
	a := NewLimitAllocator[string](NewGoAllocator[string](), 10)
	first, err := a.Allocate(6)
	require.NoError(t, err)
	require.Equal(t, 6, a.InUse())

	_, err = a.Allocate(5)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOOM))
	require.Equal(t, 6, a.InUse())

	second, err := a.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 10, a.InUse())
	require.Equal(t, 10, a.Limit())

	a.Deallocate(first)
	a.Deallocate(second)
	require.Equal(t, 0, a.InUse())
}

func TestMetricsAllocator(t *testing.T) {
	limit := NewLimitAllocator[byte](NewGoAllocator[byte](), 100)
	m := NewMetricsAllocator[byte](limit)

	a, err := m.Allocate(40)
	require.NoError(t, err)
	b, err := m.Allocate(50)
	require.NoError(t, err)
	_, err = m.Allocate(20)
	require.Error(t, err)
	m.Deallocate(a)
	c, err := m.Allocate(10)
	require.NoError(t, err)

	require.Equal(t, Stats{
		AllocateObjects: 3,
		FreeObjects:     1,
		AllocateSize:    100,
		InuseSize:       60,
		PeakInuseSize:   90,
	}, m.Stats())

	m.Deallocate(b)
	m.Deallocate(c)
	require.Equal(t, int64(0), m.Stats().InuseSize)
	require.Equal(t, 0, limit.InUse())
}
