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

// Package typedlist implements the resizable, typed, packed-byte array
// container: a codec bound to a raw buffer and an element count, plus
// the non-owning slice-view variant that shares a parent's buffer.
package typedlist

import (
	"fmt"
	"iter"

	"github.com/arrexgo/arrex/arrexerr"
	"github.com/arrexgo/arrex/codec"
	"github.com/arrexgo/arrex/rawbuf"
	"github.com/arrexgo/arrex/registry"
)

// List is a dynamically sized packed array of elements of a single
// dtype. The zero value is not usable; construct one with New,
// FromIterable, FromBuffer or Full.
//
// An owning list (ownsBuffer == true) always keeps its buffer's length
// exactly equal to length*codec.Size() with offset == 0: the buffer IS
// the list's storage, sized with spare capacity for growth. A view
// (ownsBuffer == false) shares a parent's buffer at a byte offset and
// never changes the buffer's length itself.
type List struct {
	codec      codec.Codec
	buf        *rawbuf.Buffer
	length     int
	offset     int
	ownsBuffer bool
	dtypeKey   any
}

// resolveCodec accepts either a codec.Codec directly or a registry key
// (string layout or a type-identity handle), resolving the latter
// against the default registry.
func resolveCodec(dtype any) (codec.Codec, error) {
	if dtype == nil {
		return nil, fmt.Errorf("%w: dtype is nil", arrexerr.ErrUnknownDtype)
	}
	if c, ok := dtype.(codec.Codec); ok {
		return c, nil
	}
	return registry.Default().Declared(dtype)
}

// New returns an empty, owning list bound to dtype.
func New(dtype any) (*List, error) {
	c, err := resolveCodec(dtype)
	if err != nil {
		return nil, err
	}
	return &List{codec: c, buf: rawbuf.New(0), ownsBuffer: true, dtypeKey: dtype}, nil
}

// FromIterable packs every value produced by seq into a fresh owning
// list. If dtype is nil, the codec is inferred from the first value
// seq produces, the way an empty dtype argument to the original
// typedlist() constructor infers from the first list element. An empty
// seq with a nil dtype fails with arrexerr.ErrUnknownDtype, since there
// is nothing to infer from.
//
// As with Extend, a failure partway through leaves the list holding
// whatever elements packed successfully before the failure.
func FromIterable(seq iter.Seq[any], dtype any) (*List, error) {
	var c codec.Codec
	var key any
	if dtype != nil {
		var err error
		c, err = resolveCodec(dtype)
		if err != nil {
			return nil, err
		}
		key = dtype
	}

	l := &List{codec: c, buf: rawbuf.New(0), ownsBuffer: true, dtypeKey: key}
	next, stop := iter.Pull(seq)
	defer stop()
	for {
		v, ok := next()
		if !ok {
			break
		}
		if l.codec == nil {
			if c == nil {
				inferred, err := registry.Default().InferFromSample(v)
				if err != nil {
					return nil, err
				}
				c = inferred
			}
			l.codec = c
			l.dtypeKey = key
		}
		if err := l.Append(v); err != nil {
			return l, err
		}
	}
	if l.codec == nil {
		return nil, fmt.Errorf("%w: cannot infer dtype from an empty iterable", arrexerr.ErrUnknownDtype)
	}
	return l, nil
}

// FromBuffer wraps an externally supplied byte slice as a non-owning
// view. external's length must be a multiple of the dtype's element
// size, or this fails with arrexerr.ErrSize. No copy is made: writes
// through the returned list's Set mutate external directly, per
// spec.md's "from_buffer is always a view" resolution.
func FromBuffer(external []byte, dtype any) (*List, error) {
	c, err := resolveCodec(dtype)
	if err != nil {
		return nil, err
	}
	size := c.Size()
	if len(external)%size != 0 {
		return nil, fmt.Errorf("%w: buffer of %d bytes is not a multiple of element size %d", arrexerr.ErrSize, len(external), size)
	}
	return &List{
		codec:      c,
		buf:        rawbuf.FromBytes(external),
		length:     len(external) / size,
		ownsBuffer: false,
		dtypeKey:   dtype,
	}, nil
}

// CopyFromBuffer is like FromBuffer but always copies external into a
// freshly owned buffer, for callers that explicitly want the "copy"
// half of spec.md §9's view-vs-copy Open Question rather than the
// zero-copy default.
func CopyFromBuffer(external []byte, dtype any) (*List, error) {
	view, err := FromBuffer(external, dtype)
	if err != nil {
		return nil, err
	}
	return view.Clone(), nil
}

// Full returns an owning list of count elements, each a copy of
// value's packed bytes.
func Full(value any, count int, dtype any) (*List, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", arrexerr.ErrIndex, count)
	}
	var c codec.Codec
	var key any
	if dtype != nil {
		var err error
		c, err = resolveCodec(dtype)
		if err != nil {
			return nil, err
		}
		key = dtype
	} else {
		inferred, err := registry.Default().InferFromSample(value)
		if err != nil {
			return nil, err
		}
		c = inferred
	}
	size := c.Size()
	buf := rawbuf.New(count * size)
	if err := buf.Resize(count * size); err != nil {
		return nil, err
	}
	one := make([]byte, size)
	if err := c.Pack(value, one); err != nil {
		return nil, err
	}
	data, _ := buf.MutBytes()
	for i := 0; i < count; i++ {
		copy(data[i*size:(i+1)*size], one)
	}
	return &List{codec: c, buf: buf, length: count, ownsBuffer: true, dtypeKey: key}, nil
}

// Len returns the element count.
func (l *List) Len() int { return l.length }

// Size returns the number of bytes occupied by the list's elements.
func (l *List) Size() int { return l.length * l.codec.Size() }

// ElementSize returns the codec's per-element byte size.
func (l *List) ElementSize() int { return l.codec.Size() }

// Cap returns the element capacity: how many elements could be held
// before the next mutation needs to grow the buffer. Views always
// report their current length, since they cannot grow.
func (l *List) Cap() int {
	if !l.ownsBuffer {
		return l.length
	}
	return (l.buf.Cap() - l.offset) / l.codec.Size()
}

// Dtype returns the key the list was constructed with (a layout string
// or a registered type handle), falling back to the codec's own layout
// string or key when the list was built by inference and carries no
// explicit key of its own.
func (l *List) Dtype() any {
	if l.dtypeKey != nil {
		return l.dtypeKey
	}
	if fmtStr, ok := l.codec.Layout(); ok {
		return fmtStr
	}
	if k := l.codec.Key(); k != nil {
		return k
	}
	return l.codec
}

// Codec returns the codec instance bound to this list (the "ddtype" of
// spec.md §6).
func (l *List) Codec() codec.Codec { return l.codec }

// Owner returns the underlying raw buffer this list reads from, shared
// across every view descended from the same owning list.
func (l *List) Owner() *rawbuf.Buffer { return l.buf }

// OwnsBuffer reports whether this list owns its buffer outright (false
// for slice views).
func (l *List) OwnsBuffer() bool { return l.ownsBuffer }

func (l *List) normalizeIndex(i int) (int, error) {
	idx := i
	if idx < 0 {
		idx += l.length
	}
	if idx < 0 || idx >= l.length {
		return 0, fmt.Errorf("%w: index %d out of range for length %d", arrexerr.ErrIndex, i, l.length)
	}
	return idx, nil
}

// Get returns the element at index i, supporting negative indices that
// count back from the end.
func (l *List) Get(i int) (any, error) {
	idx, err := l.normalizeIndex(i)
	if err != nil {
		return nil, err
	}
	size := l.codec.Size()
	off := l.offset + idx*size
	return l.codec.Unpack(l.buf.Bytes()[off : off+size])
}

// Set packs value into the bytes for slot i. If the list is a
// non-owning view sharing a buffer with other views or its parent, no
// copy-on-write occurs: the shared memory is mutated directly, exactly
// as documented in spec.md §4.5.
func (l *List) Set(i int, v any) error {
	idx, err := l.normalizeIndex(i)
	if err != nil {
		return err
	}
	size := l.codec.Size()
	off := l.offset + idx*size
	dst := l.buf.MutSliceUnchecked(off, size)
	return l.codec.Pack(v, dst)
}

func clipSlice(start, stop, length int) (int, int) {
	if start < 0 {
		start += length
		if start < 0 {
			start = 0
		}
	}
	if stop < 0 {
		stop += length
		if stop < 0 {
			stop = 0
		}
	}
	if start > length {
		start = length
	}
	if stop > length {
		stop = length
	}
	if stop < start {
		stop = start
	}
	return start, stop
}

// Slice returns a view over [start, stop), clipping both bounds
// silently to [0, Len()] and supporting negative indices. The returned
// view shares this list's buffer (Owner() is identical) until either
// side triggers a copy-on-write.
func (l *List) Slice(start, stop int) (*List, error) {
	start, stop = clipSlice(start, stop, l.length)
	size := l.codec.Size()
	return &List{
		codec:      l.codec,
		buf:        l.buf.Retain(),
		length:     stop - start,
		offset:     l.offset + start*size,
		ownsBuffer: false,
		dtypeKey:   l.dtypeKey,
	}, nil
}

// SliceStep is Slice with an explicit step argument, failing with
// arrexerr.ErrNotSupported for any step other than 1, matching
// spec.md §4.5's "step != 1 fails" requirement for callers that expose
// full Python-style slice syntax on top of List.
func (l *List) SliceStep(start, stop, step int) (*List, error) {
	if step != 1 {
		return nil, fmt.Errorf("%w: slice step %d, only 1 is supported", arrexerr.ErrNotSupported, step)
	}
	return l.Slice(start, stop)
}
