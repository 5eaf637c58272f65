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

package moerr

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	ctx := context.TODO()
	tests := []struct {
		name string
		err  *Error
		code uint16
		msg  string
	}{
		{"internal", NewInternalError(ctx, "bad %s", "thing"), ErrInternal, "internal error: bad thing"},
		{"oom", NewOOM(ctx), ErrOOM, "error: out of memory"},
		{"bounds", NewIndexOutOfBounds(ctx, 5, 3), ErrIndexOutOfBounds, "index 5 out of bounds [0, 3)"},
		{"arg", NewInvalidArg(ctx, "growth-factor", -1), ErrInvalidArg, "invalid argument growth-factor, bad value -1"},
		{"key", NewKeyNotFound(ctx, 42), ErrKeyNotFound, "key 42 not found"},
		{"empty", NewEmptyContainerNoCtx("vector"), ErrEmptyContainer, "vector is empty"},
		{"growth", NewGrowthExhaustedNoCtx(3, 128), ErrGrowthExhausted, "rehash gave up after 3 attempts, last capacity 128"},
		{"config", NewBadConfigNoCtx("x=%d", 1), ErrBadConfig, "invalid configuration: x=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, tt.err.ErrorCode())
			require.Equal(t, tt.msg, tt.err.Error())
			require.Equal(t, tt.msg, tt.err.Display())
			require.True(t, IsMoErrCode(tt.err, tt.code))
			require.False(t, tt.err.Succeeded())
		})
	}
}

func TestIsMoErrCode(t *testing.T) {
	require.True(t, IsMoErrCode(nil, Ok))
	require.False(t, IsMoErrCode(nil, ErrInternal))
	require.False(t, IsMoErrCode(errors.New("plain"), ErrInternal))
	require.True(t, IsMoErrCode(GetOkExpectedEOF(), OkExpectedEOF))
	require.True(t, GetOkExpectedEOF().Succeeded())
	require.Equal(t, GetOkExpectedEOF(), GetOkExpectedEOF())
}

func TestPrecondition(t *testing.T) {
	require.True(t, IsPrecondition(NewKeyNotFoundNoCtx("a")))
	require.True(t, IsPrecondition(NewIndexOutOfBoundsNoCtx(1, 0)))
	require.True(t, IsPrecondition(NewEmptyContainerNoCtx("list")))
	require.True(t, IsPrecondition(NewStaleReferenceNoCtx("iterator")))
	require.False(t, IsPrecondition(NewOOMNoCtx()))
	require.False(t, IsPrecondition(NewGrowthExhaustedNoCtx(1, 1)))
	require.False(t, IsPrecondition(io.EOF))
	require.False(t, IsPrecondition(nil))
}

func TestConvertPanicError(t *testing.T) {
	orig := NewKeyNotFoundNoCtx(7)
	require.Same(t, orig, ConvertPanicError(context.TODO(), orig))

	err := ConvertPanicError(context.TODO(), "boom")
	require.Equal(t, ErrInternal, err.ErrorCode())
	require.Equal(t, "internal error: panic boom", err.Error())
	require.NotEmpty(t, err.Detail())
	require.Contains(t, err.Display(), "internal error: panic boom: ")
}

func TestConvertGoError(t *testing.T) {
	ctx := context.TODO()
	require.Nil(t, ConvertGoError(ctx, nil))

	orig := NewOOM(ctx)
	require.Equal(t, error(orig), ConvertGoError(ctx, orig))
	require.True(t, IsMoErrCode(ConvertGoError(ctx, io.EOF), ErrUnexpectedEOF))
	require.True(t, IsMoErrCode(ConvertGoError(ctx, errors.New("x")), ErrInternal))
}

func TestDowncastError(t *testing.T) {
	orig := NewNYI(context.TODO(), "shrink")
	require.Same(t, orig, DowncastError(orig))
	require.Equal(t, "shrink is not yet implemented", orig.Error())
	require.Equal(t, ErrInternal, DowncastError(errors.New("x")).ErrorCode())
}

func TestUnknownCodePanics(t *testing.T) {
	require.Panics(t, func() {
		_ = newError(context.TODO(), 12345)
	})
}
