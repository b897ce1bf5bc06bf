// Copyright (C) 2026 The Arrex Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package rawbuf implements the reference-counted contiguous byte
// region that backs every typed list and slice view. A Buffer behaves
// like a Python bytearray with a refcount: while refcount == 1 the
// owning list may grow or shrink it in place; once shared by a second
// view, growth must go through a copy-on-write.
package rawbuf

import (
	"fmt"
	"sync/atomic"

	"github.com/arrexgo/arrex/arrexerr"
	"github.com/arrexgo/arrex/internal/diag"
)

// MinCapacity is the smallest capacity Reserve will ever allocate,
// matching spec.md's growth policy.
const MinCapacity = 16

// Buffer owns a contiguous []byte region. The zero value is not usable;
// construct one with New.
type Buffer struct {
	data []byte
	refs int32
}

// New allocates an empty Buffer with the given byte capacity and a
// refcount of 1.
func New(capacityBytes int) *Buffer {
	if capacityBytes < 0 {
		capacityBytes = 0
	}
	return &Buffer{data: make([]byte, 0, capacityBytes), refs: 1}
}

// FromBytes wraps an existing slice without copying it. The returned
// Buffer's capacity is whatever cap(data) already was; growth beyond
// that triggers a fresh allocation like any other Buffer. Used by
// typedlist.FromBuffer to build a view over externally supplied memory.
func FromBytes(data []byte) *Buffer {
	return &Buffer{data: data, refs: 1}
}

// Len returns the current length in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Cap returns the current capacity in bytes.
func (b *Buffer) Cap() int { return cap(b.data) }

// Refs reports the current refcount. Exposed mainly for tests.
func (b *Buffer) Refs() int32 { return atomic.LoadInt32(&b.refs) }

// Shared reports whether more than one owner currently references this
// buffer.
func (b *Buffer) Shared() bool { return atomic.LoadInt32(&b.refs) > 1 }

// Retain increments the refcount and returns b, so callers can write
// `view.buf = parent.buf.Retain()`.
func (b *Buffer) Retain() *Buffer {
	atomic.AddInt32(&b.refs, 1)
	return b
}

// Release decrements the refcount. It does not free data itself (Go's
// GC does that once nothing points at it); it exists so Shared()
// reports accurately and so copy-on-write tests can observe lifecycle
// transitions.
func (b *Buffer) Release() {
	n := atomic.AddInt32(&b.refs, -1)
	if n < 0 {
		panic("rawbuf: Release called more times than Retain")
	}
}

// Bytes returns a read-only view of the buffer's contents. Callers must
// not change its length (append past cap is fine for reads, but any
// mutation of contents should go through MutBytes).
func (b *Buffer) Bytes() []byte {
	return b.data
}

// MutBytes returns a mutable view of the buffer's contents, failing
// with arrexerr.ErrInvariant if the buffer is currently shared; callers
// must Clone a private copy first in that case.
func (b *Buffer) MutBytes() ([]byte, error) {
	if b.Shared() {
		return nil, fmt.Errorf("%w: buffer is shared (refcount=%d), copy-on-write required", arrexerr.ErrInvariant, b.Refs())
	}
	return b.data, nil
}

// MutSliceUnchecked returns a mutable view into the region
// [off, off+n) without the shared-buffer guard MutBytes enforces. It
// exists for fixed-length in-place writes — typedlist.Set on a slot
// inside a shared view — where spec.md §4.5 documents that no
// copy-on-write occurs even when the buffer is shared. Callers must
// not use the result to change the buffer's length.
func (b *Buffer) MutSliceUnchecked(off, n int) []byte {
	return b.data[off : off+n]
}

// Reserve grows capacity to at least newCapBytes if needed, using the
// amortized growth policy max(new, cap*2, MinCapacity). It fails with
// arrexerr.ErrInvariant if the buffer is shared; the caller is expected
// to Clone first.
func (b *Buffer) Reserve(newCapBytes int) error {
	if newCapBytes <= cap(b.data) {
		return nil
	}
	if b.Shared() {
		return fmt.Errorf("%w: buffer is shared (refcount=%d), copy-on-write required before growth", arrexerr.ErrInvariant, b.Refs())
	}
	target := newCapBytes
	if doubled := cap(b.data) * 2; doubled > target {
		target = doubled
	}
	if target < MinCapacity {
		target = MinCapacity
	}
	nd := make([]byte, len(b.data), target)
	copy(nd, b.data)
	b.data = nd
	return nil
}

// Resize sets the logical length to newLenBytes, growing capacity via
// Reserve if necessary. Shrinking never deallocates; use Compact to
// trim capacity down to the current length.
func (b *Buffer) Resize(newLenBytes int) error {
	if newLenBytes < 0 {
		return fmt.Errorf("%w: negative length %d", arrexerr.ErrIndex, newLenBytes)
	}
	if newLenBytes > cap(b.data) {
		if err := b.Reserve(newLenBytes); err != nil {
			return err
		}
	}
	if b.Shared() && newLenBytes != len(b.data) {
		return fmt.Errorf("%w: buffer is shared (refcount=%d), copy-on-write required before resize", arrexerr.ErrInvariant, b.Refs())
	}
	b.data = b.data[:newLenBytes]
	return nil
}

// Compact trims capacity down to the current length. A no-op (logged
// at verbose diagnostic level) when capacity already equals length.
func (b *Buffer) Compact() {
	if len(b.data) == cap(b.data) {
		diag.Printf("rawbuf: Compact no-op, len==cap==%d", len(b.data))
		return
	}
	nd := make([]byte, len(b.data))
	copy(nd, b.data)
	b.data = nd
}

// Clone returns a new, unshared Buffer holding a private copy of b's
// current contents. Used to implement copy-on-write: a list holding a
// shared Buffer clones it before any in-place mutation.
func (b *Buffer) Clone() *Buffer {
	nd := make([]byte, len(b.data), cap(b.data))
	copy(nd, b.data)
	return &Buffer{data: nd, refs: 1}
}
