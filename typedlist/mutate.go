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

package typedlist

import (
	"fmt"
	"iter"

	"github.com/arrexgo/arrex/arrexerr"
)

// ensureOwned fails immediately for a non-owning view (spec.md: a view
// cannot change its own length), and otherwise clones the backing
// buffer if it is currently shared with another view, so the mutation
// that follows never disturbs sibling views. This is the copy-on-write
// step spec.md §4.4 and §4.6 call for.
func (l *List) ensureOwned() error {
	if !l.ownsBuffer {
		return fmt.Errorf("%w: cannot change the length of a non-owning view", arrexerr.ErrInvariant)
	}
	if l.buf.Shared() {
		old := l.buf
		l.buf = old.Clone()
		old.Release()
	}
	return nil
}

// Append adds value to the end of the list. It is strictly atomic: if
// Pack fails, the list's length is left unchanged.
func (l *List) Append(v any) error {
	size := l.codec.Size()
	packed := make([]byte, size)
	if err := l.codec.Pack(v, packed); err != nil {
		return err
	}
	if err := l.ensureOwned(); err != nil {
		return err
	}
	newLen := l.buf.Len() + size
	if err := l.buf.Reserve(newLen); err != nil {
		return err
	}
	if err := l.buf.Resize(newLen); err != nil {
		return err
	}
	data, _ := l.buf.MutBytes()
	copy(data[newLen-size:newLen], packed)
	l.length++
	return nil
}

// Extend appends every value seq produces. If Append fails partway
// through, the elements appended before the failure are kept and the
// error is returned, per spec.md §7's all-or-nothing-except-extend
// propagation policy.
func (l *List) Extend(seq iter.Seq[any]) error {
	var outerErr error
	seq(func(v any) bool {
		if err := l.Append(v); err != nil {
			outerErr = err
			return false
		}
		return true
	})
	return outerErr
}

// Insert places value at index i, shifting later elements back by one.
// Negative and out-of-range indices clip the same way Slice does.
func (l *List) Insert(i int, v any) error {
	size := l.codec.Size()
	packed := make([]byte, size)
	if err := l.codec.Pack(v, packed); err != nil {
		return err
	}
	if err := l.ensureOwned(); err != nil {
		return err
	}
	idx := i
	if idx < 0 {
		idx += l.length
		if idx < 0 {
			idx = 0
		}
	}
	if idx > l.length {
		idx = l.length
	}
	newLen := l.buf.Len() + size
	if err := l.buf.Reserve(newLen); err != nil {
		return err
	}
	if err := l.buf.Resize(newLen); err != nil {
		return err
	}
	data, _ := l.buf.MutBytes()
	off := idx * size
	copy(data[off+size:newLen], data[off:newLen-size])
	copy(data[off:off+size], packed)
	l.length++
	return nil
}

// Pop removes and returns the element at index i, supporting negative
// indices.
func (l *List) Pop(i int) (any, error) {
	idx, err := l.normalizeIndex(i)
	if err != nil {
		return nil, err
	}
	if err := l.ensureOwned(); err != nil {
		return nil, err
	}
	size := l.codec.Size()
	off := idx * size
	data, _ := l.buf.MutBytes()
	v, err := l.codec.Unpack(data[off : off+size])
	if err != nil {
		return nil, err
	}
	copy(data[off:l.buf.Len()-size], data[off+size:l.buf.Len()])
	if err := l.buf.Resize(l.buf.Len() - size); err != nil {
		return nil, err
	}
	l.length--
	return v, nil
}

// PopLast removes and returns the last element, the Go spelling of the
// original source's pop(i=-1) default argument.
func (l *List) PopLast() (any, error) {
	return l.Pop(-1)
}

// RemoveRange deletes elements [i, j), clipping bounds the same way
// Slice does.
func (l *List) RemoveRange(i, j int) error {
	if err := l.ensureOwned(); err != nil {
		return err
	}
	i, j = clipSlice(i, j, l.length)
	if i == j {
		return nil
	}
	size := l.codec.Size()
	data, _ := l.buf.MutBytes()
	removed := j - i
	copy(data[i*size:l.buf.Len()-removed*size], data[j*size:l.buf.Len()])
	if err := l.buf.Resize(l.buf.Len() - removed*size); err != nil {
		return err
	}
	l.length -= removed
	return nil
}

// SetSlice replaces the elements in [start, stop) with the packed
// bytes of whatever seq produces, growing or shrinking the list as
// needed. start and stop clip the same way Slice does. Every value is
// packed before the buffer is touched, so a Pack failure partway
// through seq leaves the list completely unchanged.
func (l *List) SetSlice(start, stop int, seq iter.Seq[any]) error {
	start, stop = clipSlice(start, stop, l.length)
	size := l.codec.Size()

	var packed []byte
	for v := range seq {
		buf := make([]byte, size)
		if err := l.codec.Pack(v, buf); err != nil {
			return err
		}
		packed = append(packed, buf...)
	}

	if err := l.ensureOwned(); err != nil {
		return err
	}
	before := append([]byte(nil), l.buf.Bytes()[:start*size]...)
	after := append([]byte(nil), l.buf.Bytes()[stop*size:l.buf.Len()]...)
	newLen := len(before) + len(packed) + len(after)

	if err := l.buf.Reserve(newLen); err != nil {
		return err
	}
	if err := l.buf.Resize(newLen); err != nil {
		return err
	}
	data, _ := l.buf.MutBytes()
	copy(data, before)
	copy(data[len(before):], packed)
	copy(data[len(before)+len(packed):], after)

	l.length = start + len(packed)/size + (l.length - stop)
	return nil
}

// Clear removes every element, keeping the buffer's allocated capacity.
func (l *List) Clear() error {
	if err := l.ensureOwned(); err != nil {
		return err
	}
	if err := l.buf.Resize(0); err != nil {
		return err
	}
	l.length = 0
	return nil
}

// Reverse reorders the elements in place. Since it never changes the
// list's length, it follows Set's documented behavior rather than
// Append's: a shared buffer is mutated directly, with no
// copy-on-write, whether or not this list owns it.
func (l *List) Reverse() {
	size := l.codec.Size()
	data := l.buf.MutSliceUnchecked(l.offset, l.length*size)
	tmp := make([]byte, size)
	for a, b := 0, l.length-1; a < b; a, b = a+1, b-1 {
		ao, bo := a*size, b*size
		copy(tmp, data[ao:ao+size])
		copy(data[ao:ao+size], data[bo:bo+size])
		copy(data[bo:bo+size], tmp)
	}
}

// Reserve ensures the buffer can hold at least nElements more elements
// without a further reallocation, on top of whatever it already holds.
// Fails with arrexerr.ErrInvariant for a non-owning view.
func (l *List) Reserve(nElements int) error {
	if err := l.ensureOwned(); err != nil {
		return err
	}
	return l.buf.Reserve((l.length + nElements) * l.codec.Size())
}

// Compact trims the buffer's capacity down to the current length.
func (l *List) Compact() error {
	if err := l.ensureOwned(); err != nil {
		return err
	}
	l.buf.Compact()
	return nil
}
