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
	"go.uber.org/zap"

	"github.com/matrixorigin/containers/pkg/common/moerr"
	"github.com/matrixorigin/containers/pkg/logutil"
)

// LimitAllocator refuses requests that would push the number of live
// elements past limit.
type LimitAllocator[T any, U Allocator[T]] struct {
	upstream U
	limit    int
	inuse    int
}

func NewLimitAllocator[T any, U Allocator[T]](upstream U, limit int) *LimitAllocator[T, U] {
	return &LimitAllocator[T, U]{
		upstream: upstream,
		limit:    limit,
	}
}

var _ Allocator[int] = new(LimitAllocator[int, GoAllocator[int]])

func (l *LimitAllocator[T, U]) Allocate(n int) ([]T, error) {
	if l.inuse+n > l.limit {
		logutil.Warn("allocation refused",
			zap.Int("request", n),
			zap.Int("inuse", l.inuse),
			zap.Int("limit", l.limit),
		)
		return nil, moerr.NewOOMNoCtx()
	}
	buf, err := l.upstream.Allocate(n)
	if err != nil {
		return nil, err
	}
	l.inuse += n
	return buf, nil
}

func (l *LimitAllocator[T, U]) Deallocate(buf []T) {
	l.inuse -= len(buf)
	l.upstream.Deallocate(buf)
}

func (l *LimitAllocator[T, U]) InUse() int {
	return l.inuse
}

func (l *LimitAllocator[T, U]) Limit() int {
	return l.limit
}
