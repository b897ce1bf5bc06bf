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
	"github.com/arrexgo/arrex/rawbuf"
)

// sameCodec compares two codecs by identity, the comparison spec.md
// requires for any operation that combines two lists.
func sameCodec(a, b *List) bool {
	return a.codec == b.codec
}

// Concat returns a new owning list holding a's elements followed by
// b's. a and b must share the same codec instance.
func Concat(a, b *List) (*List, error) {
	if !sameCodec(a, b) {
		return nil, fmt.Errorf("%w: concat operands have different dtypes", arrexerr.ErrType)
	}
	size := a.codec.Size()
	total := (a.length + b.length) * size
	buf := rawbuf.New(total)
	if err := buf.Resize(total); err != nil {
		return nil, err
	}
	data, _ := buf.MutBytes()
	copy(data[:a.length*size], a.buf.Bytes()[a.offset:a.offset+a.length*size])
	copy(data[a.length*size:], b.buf.Bytes()[b.offset:b.offset+b.length*size])
	return &List{codec: a.codec, buf: buf, length: a.length + b.length, ownsBuffer: true, dtypeKey: a.dtypeKey}, nil
}

// Repeat returns a new owning list holding n back-to-back copies of a.
// n must be >= 0.
func Repeat(a *List, n int) (*List, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative repeat count %d", arrexerr.ErrIndex, n)
	}
	size := a.codec.Size()
	src := a.buf.Bytes()[a.offset : a.offset+a.length*size]
	total := len(src) * n
	buf := rawbuf.New(total)
	if err := buf.Resize(total); err != nil {
		return nil, err
	}
	data, _ := buf.MutBytes()
	for i := 0; i < n; i++ {
		copy(data[i*len(src):(i+1)*len(src)], src)
	}
	return &List{codec: a.codec, buf: buf, length: a.length * n, ownsBuffer: true, dtypeKey: a.dtypeKey}, nil
}

// ExtendInPlace appends other's elements to l, growing l's buffer (the
// `l += other` operator). other's bytes are snapshotted before l's
// buffer is touched, so this is safe even when other is a slice view
// derived from l itself (e.g. l.ExtendInPlace(viewOfL)).
func (l *List) ExtendInPlace(other *List) error {
	if !sameCodec(l, other) {
		return fmt.Errorf("%w: extend operands have different dtypes", arrexerr.ErrType)
	}
	size := l.codec.Size()
	addBytes := other.length * size
	src := make([]byte, addBytes)
	copy(src, other.buf.Bytes()[other.offset:other.offset+addBytes])

	if err := l.ensureOwned(); err != nil {
		return err
	}
	newLen := l.buf.Len() + addBytes
	if err := l.buf.Reserve(newLen); err != nil {
		return err
	}
	if err := l.buf.Resize(newLen); err != nil {
		return err
	}
	data, _ := l.buf.MutBytes()
	copy(data[newLen-addBytes:newLen], src)
	l.length += other.length
	return nil
}
