// Copyright 2021 - 2022 Matrix Origin
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
	"fmt"
	"io"
	"runtime/debug"
)

const (
	// 0 - 99 is OK.  They do not contain info, and are special handled
	// using a static instance, no alloc.
	Ok              uint16 = 0
	OkStopCurrRecur uint16 = 1
	OkExpectedEOF   uint16 = 2 // Expected End Of File
	OkMax           uint16 = 99

	// Group 1: Internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102
	ErrOOM      uint16 = 20103

	// Group 2: positional access and arguments
	ErrIndexOutOfBounds uint16 = 20201
	ErrInvalidArg       uint16 = 20203

	// Group 3: invalid input
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301

	// Group 4: unexpected state
	ErrInvalidState     uint16 = 20400
	ErrKeyNotFound      uint16 = 20401
	ErrEmptyContainer   uint16 = 20402
	ErrStaleReference   uint16 = 20403
	ErrGrowthExhausted  uint16 = 20404
	ErrUnexpectedEOF    uint16 = 20405
	ErrCapacityExceeded uint16 = 20406

	// ErrEnd, the max value of MOErrorCode
	ErrEnd uint16 = 65535
)

type moErrorMsgItem struct {
	errorMsgOrFormat string
	// precondition marks codes raised when the caller broke a documented
	// precondition. Retrying the same call cannot succeed.
	precondition bool
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	// OK code not in this table.

	// Group 1: Internal errors
	ErrStart:    {"internal error: error code start", false},
	ErrInternal: {"internal error: %s", false},
	ErrNYI:      {"%s is not yet implemented", false},
	ErrOOM:      {"error: out of memory", false},

	// Group 2: positional access and arguments
	ErrIndexOutOfBounds: {"index %d out of bounds [0, %d)", true},
	ErrInvalidArg:       {"invalid argument %s, bad value %s", false},

	// Group 3: invalid input
	ErrBadConfig:    {"invalid configuration: %s", false},
	ErrInvalidInput: {"invalid input: %s", false},

	// Group 4: unexpected state
	ErrInvalidState:     {"invalid state %s", false},
	ErrKeyNotFound:      {"key %v not found", true},
	ErrEmptyContainer:   {"%s is empty", true},
	ErrStaleReference:   {"stale reference: %s", true},
	ErrGrowthExhausted:  {"rehash gave up after %d attempts, last capacity %d", false},
	ErrUnexpectedEOF:    {"unexpected end of file %s", false},
	ErrCapacityExceeded: {"capacity %d exceeded", true},

	// Group End: max value of MOErrorCode
	ErrEnd: {"internal error: end of errcode code", false},
}

func newError(ctx context.Context, code uint16, args ...any) *Error {
	item, has := errorMsgRefer[code]
	if !has {
		panic(NewInternalError(ctx, "not exist MOErrorCode: %d", code))
	}
	msg := item.errorMsgOrFormat
	if len(args) != 0 {
		msg = fmt.Sprintf(item.errorMsgOrFormat, args...)
	}
	return &Error{
		code:    code,
		message: msg,
	}
}

type Error struct {
	code    uint16
	message string
	detail  string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Detail() string {
	return e.detail
}

func (e *Error) Display() string {
	if len(e.detail) == 0 {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.detail)
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) Succeeded() bool {
	return e.code < OkMax
}

// Precondition reports whether the error signals a broken caller
// precondition. Such errors are never retryable.
func (e *Error) Precondition() bool {
	return errorMsgRefer[e.code].precondition
}

func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}

	me, ok := e.(*Error)
	if !ok {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

// IsPrecondition is the error-typed form of (*Error).Precondition.
func IsPrecondition(e error) bool {
	me, ok := e.(*Error)
	return ok && me.Precondition()
}

func DowncastError(e error) *Error {
	if err, ok := e.(*Error); ok {
		return err
	}
	return newError(Context(), ErrInternal, fmt.Sprintf("downcast error failed: %v", e))
}

// ConvertPanicError converts a runtime panic to internal error.
func ConvertPanicError(ctx context.Context, v interface{}) *Error {
	if e, ok := v.(*Error); ok {
		return e
	}
	err := newError(ctx, ErrInternal, fmt.Sprintf("panic %v", v))
	err.detail = string(debug.Stack())
	return err
}

// ConvertGoError converts a go error into mo error.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	// nil is nil
	if err == nil {
		return err
	}

	// already a moerr, return it as is
	if _, ok := err.(*Error); ok {
		return err
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// if io.EOF reaches here, we believe it is not expected.
		return NewUnexpectedEOF(ctx, err.Error())
	}

	return NewInternalError(ctx, "convert go error to mo error %v", err)
}

// Context is the context used by the NoCtx constructors.
func Context() context.Context {
	return context.Background()
}

// Special handling of OK code. These are not errors, they signal
// different success conditions, e.g. an iterator that ran off its end.
// Callers compare with either
//
//	   if err == GetOkExpectedEOF()
//	or if moerr.IsMoErrCode(err, moerr.OkExpectedEOF)
var errOkStopCurrRecur = Error{OkStopCurrRecur, "StopCurrRecur", ""}
var errOkExpectedEOF = Error{OkExpectedEOF, "ExpectedEOF", ""}

func GetOkStopCurrRecur() *Error {
	return &errOkStopCurrRecur
}

func GetOkExpectedEOF() *Error {
	return &errOkExpectedEOF
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInternal, xmsg)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNYI, xmsg)
}

func NewOOM(ctx context.Context) *Error {
	return newError(ctx, ErrOOM)
}

func NewIndexOutOfBounds(ctx context.Context, idx, length int) *Error {
	return newError(ctx, ErrIndexOutOfBounds, idx, length)
}

func NewInvalidArg(ctx context.Context, arg string, val any) *Error {
	return newError(ctx, ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadConfig, xmsg)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidInput, xmsg)
}

func NewInvalidState(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidState, xmsg)
}

func NewKeyNotFound(ctx context.Context, key any) *Error {
	return newError(ctx, ErrKeyNotFound, key)
}

func NewEmptyContainer(ctx context.Context, what string) *Error {
	return newError(ctx, ErrEmptyContainer, what)
}

func NewStaleReference(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrStaleReference, xmsg)
}

func NewGrowthExhausted(ctx context.Context, attempts, capacity int) *Error {
	return newError(ctx, ErrGrowthExhausted, attempts, capacity)
}

func NewUnexpectedEOF(ctx context.Context, f string) *Error {
	return newError(ctx, ErrUnexpectedEOF, f)
}

func NewCapacityExceeded(ctx context.Context, capacity int) *Error {
	return newError(ctx, ErrCapacityExceeded, capacity)
}
