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

package codec

import (
	"fmt"

	"github.com/arrexgo/arrex/arrexerr"
)

// FuncCodec is a fully general codec driven by user-supplied pack and
// unpack callables, at the cost of a call into user code on every
// element. Corresponds to arrex.DTypeFunctions in the original source:
// a declared byte size plus a pack/unpack pair, with an optional
// layout string and an optional key for equality reporting.
type FuncCodec struct {
	size   int
	pack   func(v any) ([]byte, error)
	unpack func(b []byte) (any, error)
	fmtStr string
	hasFmt bool
	key    any
}

// NewFuncCodec builds a function codec. layoutOrEmpty may be "" to mark
// the codec as opaque to buffer-protocol consumers (Layout returns
// ok=false). keyOrNil is an optional back-reference used only for
// equality reporting.
func NewFuncCodec(size int, pack func(v any) ([]byte, error), unpack func(b []byte) (any, error), layoutOrEmpty string, keyOrNil any) (*FuncCodec, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be > 0, got %d", arrexerr.ErrSize, size)
	}
	if pack == nil || unpack == nil {
		return nil, fmt.Errorf("%w: pack and unpack must both be provided", arrexerr.ErrType)
	}
	return &FuncCodec{
		size:   size,
		pack:   pack,
		unpack: unpack,
		fmtStr: layoutOrEmpty,
		hasFmt: layoutOrEmpty != "",
		key:    keyOrNil,
	}, nil
}

func (c *FuncCodec) Size() int { return c.size }

func (c *FuncCodec) Layout() (string, bool) {
	return c.fmtStr, c.hasFmt
}

func (c *FuncCodec) Key() any { return c.key }

// Pack calls pack_fn(v) and validates the returned byte count equals
// Size before copying it into dst.
func (c *FuncCodec) Pack(v any, dst []byte) error {
	if len(dst) != c.size {
		return fmt.Errorf("%w: dst has %d bytes, want %d", arrexerr.ErrSize, len(dst), c.size)
	}
	b, err := c.pack(v)
	if err != nil {
		return fmt.Errorf("%w: %v", arrexerr.ErrType, err)
	}
	if len(b) != c.size {
		return fmt.Errorf("%w: pack produced %d bytes, want %d", arrexerr.ErrSize, len(b), c.size)
	}
	copy(dst, b)
	return nil
}

// Unpack calls unpack_fn(b) and returns its result directly.
func (c *FuncCodec) Unpack(src []byte) (any, error) {
	if len(src) != c.size {
		return nil, fmt.Errorf("%w: src has %d bytes, want %d", arrexerr.ErrSize, len(src), c.size)
	}
	return c.unpack(src)
}
