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

import "fmt"

// Containers have no request context to thread through, so they raise
// errors with these.

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	return newError(Context(), ErrInternal, fmt.Sprintf(msg, args...))
}

func NewOOMNoCtx() *Error {
	return newError(Context(), ErrOOM)
}

func NewIndexOutOfBoundsNoCtx(idx, length int) *Error {
	return newError(Context(), ErrIndexOutOfBounds, idx, length)
}

func NewInvalidArgNoCtx(arg string, val any) *Error {
	return newError(Context(), ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewBadConfigNoCtx(msg string, args ...any) *Error {
	return newError(Context(), ErrBadConfig, fmt.Sprintf(msg, args...))
}

func NewInvalidInputNoCtx(msg string, args ...any) *Error {
	return newError(Context(), ErrInvalidInput, fmt.Sprintf(msg, args...))
}

func NewInvalidStateNoCtx(msg string, args ...any) *Error {
	return newError(Context(), ErrInvalidState, fmt.Sprintf(msg, args...))
}

func NewKeyNotFoundNoCtx(key any) *Error {
	return newError(Context(), ErrKeyNotFound, key)
}

func NewEmptyContainerNoCtx(what string) *Error {
	return newError(Context(), ErrEmptyContainer, what)
}

func NewStaleReferenceNoCtx(msg string, args ...any) *Error {
	return newError(Context(), ErrStaleReference, fmt.Sprintf(msg, args...))
}

func NewGrowthExhaustedNoCtx(attempts, capacity int) *Error {
	return newError(Context(), ErrGrowthExhausted, attempts, capacity)
}

func NewCapacityExceededNoCtx(capacity int) *Error {
	return newError(Context(), ErrCapacityExceeded, capacity)
}
