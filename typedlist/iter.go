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
	"bytes"
	"iter"

	"github.com/dchest/siphash"
)

// equalHashK0, equalHashK1 key the fast-rejection hash Equal computes
// over large element regions before falling back to a byte comparison.
const equalHashK0, equalHashK1 uint64 = 0x61727265785f6571, 0x61727265785f7132

// equalHashThreshold is the element-region size, in bytes, above which
// Equal hashes both sides before comparing them byte for byte. Below
// it the hash is pure overhead.
const equalHashThreshold = 256

// All iterates the list's elements in order. It panics if Unpack fails
// on a slot's bytes, which should never happen for bytes this same
// codec packed: a failure here means the buffer was corrupted out from
// under the list, not a normal runtime condition callers need to
// handle.
func (l *List) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		size := l.codec.Size()
		for i := 0; i < l.length; i++ {
			off := l.offset + i*size
			v, err := l.codec.Unpack(l.buf.Bytes()[off : off+size])
			if err != nil {
				panic("typedlist: Unpack failed decoding an already-packed element: " + err.Error())
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Equal reports whether a and b hold the same number of elements with
// identical packed bytes. It does not require a and b to share a
// codec instance, only a codec of the same element size — two
// differently constructed codecs over the same wire format compare
// equal if their packed output does.
func Equal(a, b *List) bool {
	if a.length != b.length {
		return false
	}
	if a.codec.Size() != b.codec.Size() {
		return false
	}
	n := a.length * a.codec.Size()
	ab := a.buf.Bytes()[a.offset : a.offset+n]
	bb := b.buf.Bytes()[b.offset : b.offset+n]
	if n > equalHashThreshold {
		if siphash.Hash(equalHashK0, equalHashK1, ab) != siphash.Hash(equalHashK0, equalHashK1, bb) {
			return false
		}
	}
	return bytes.Equal(ab, bb)
}

// Clone returns a new owning list holding an independent copy of l's
// elements, regardless of whether l itself owns its buffer.
func (l *List) Clone() *List {
	size := l.codec.Size()
	n := l.length * size
	buf := newOwnedCopy(l.buf.Bytes()[l.offset:l.offset+n], n)
	return &List{codec: l.codec, buf: buf, length: l.length, ownsBuffer: true, dtypeKey: l.dtypeKey}
}
