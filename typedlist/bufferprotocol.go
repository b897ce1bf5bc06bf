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

	"github.com/arrexgo/arrex/arrexerr"
	"github.com/arrexgo/arrex/codec"
	"github.com/arrexgo/arrex/registry"
)

// BufferView is the Go analogue of the array-backed buffer protocol a
// numpy array sees when it wraps a typed list without copying: a raw
// memory region plus enough of a layout description to reinterpret it.
// Format is empty when the list's codec carries no layout string.
type BufferView struct {
	Data     []byte
	ItemSize int
	Format   string
	Len      int
}

// BufferProtocol exposes the list's underlying bytes directly, with no
// copy. Mutating Data mutates the list (and any sibling view sharing
// its buffer) exactly like Set does.
func (l *List) BufferProtocol() BufferView {
	size := l.codec.Size()
	fmtStr, _ := l.codec.Layout()
	return BufferView{
		Data:     l.buf.MutSliceUnchecked(l.offset, l.length*size),
		ItemSize: size,
		Format:   fmtStr,
		Len:      l.length,
	}
}

// Reinterpret returns a new non-owning view over l's exact bytes under
// a different dtype, the same way numpy.ndarray.view() reinterprets a
// buffer without copying. It requires the total byte length to be an
// exact multiple of the new codec's element size; since it shares l's
// buffer, Reinterpret retains l's buffer the same way Slice does.
func Reinterpret(l *List, dtype any, reg *registry.Registry) (*List, error) {
	var c codec.Codec
	if asCodec, ok := dtype.(codec.Codec); ok {
		c = asCodec
	} else {
		var err error
		c, err = reg.Declared(dtype)
		if err != nil {
			return nil, err
		}
	}
	totalBytes := l.length * l.codec.Size()
	newSize := c.Size()
	if totalBytes%newSize != 0 {
		return nil, fmt.Errorf("%w: %d total bytes is not a multiple of new element size %d", arrexerr.ErrSize, totalBytes, newSize)
	}
	return &List{
		codec:      c,
		buf:        l.buf.Retain(),
		length:     totalBytes / newSize,
		offset:     l.offset,
		ownsBuffer: false,
		dtypeKey:   dtype,
	}, nil
}
