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
	"reflect"
	"unsafe"

	"github.com/arrexgo/arrex/arrexerr"
	"github.com/arrexgo/arrex/layout"
)

// ExtensionCodec is a codec for a Go struct type whose memory layout IS
// the packed record: Pack and Unpack are raw byte copies, with no call
// into user code on the hot path. The caller vouches that elemType's
// fields are exactly the ones described by fmtStr, in order, with no
// pointers and no padding the compiler wouldn't already account for;
// arrex validates only that reflect.Type.Size() matches layout.SizeOf
// and that elemType holds no pointer or reference fields, not the
// field-by-field shape. Violating the precondition is undefined
// behavior, same as casting a mismatched struct pointer in any systems
// language.
//
// ctor, if non-nil, is invoked after Unpack allocates and fills the new
// value, to validate or transform it (e.g. to produce an immutable
// handle type from raw fields). It is never invoked during Pack.
type ExtensionCodec struct {
	elemType reflect.Type
	fmtStr   string
	size     int
	ctor     func(v any) (any, error)
	key      any
}

// NewExtensionCodec builds an extension codec for elemType, a non-nil
// reflect.Type describing a fixed-size, pointer-free Go struct, against
// the given packed layout string. It fails with arrexerr.ErrLayout if
// fmtStr is unparseable, and arrexerr.ErrSize if elemType's size does
// not match the layout's declared size.
func NewExtensionCodec(elemType reflect.Type, fmtStr string, ctor func(v any) (any, error)) (*ExtensionCodec, error) {
	size, err := layout.SizeOf(fmtStr)
	if err != nil {
		return nil, err
	}
	if containsPointer(elemType) {
		return nil, fmt.Errorf("%w: %s contains a pointer or reference field, violating the packed-record precondition", arrexerr.ErrType, elemType)
	}
	if int(elemType.Size()) != size {
		return nil, fmt.Errorf("%w: %s is %d bytes, layout %q is %d bytes", arrexerr.ErrSize, elemType, elemType.Size(), fmtStr, size)
	}
	return &ExtensionCodec{
		elemType: elemType,
		fmtStr:   fmtStr,
		size:     size,
		ctor:     ctor,
		key:      elemType,
	}, nil
}

func containsPointer(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer, reflect.String:
		return true
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if containsPointer(t.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Array:
		return containsPointer(t.Elem())
	default:
		return false
	}
}

func (c *ExtensionCodec) Size() int                     { return c.size }
func (c *ExtensionCodec) Layout() (string, bool)        { return c.fmtStr, true }
func (c *ExtensionCodec) Key() any                      { return c.key }

// Pack copies v's payload bytes verbatim into dst. v must be a value of
// elemType (or a pointer to one); anything else fails with
// arrexerr.ErrType.
func (c *ExtensionCodec) Pack(v any, dst []byte) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != c.elemType {
		return fmt.Errorf("%w: value of type %T is not assignable to %s", arrexerr.ErrType, v, c.elemType)
	}
	if len(dst) != c.size {
		return fmt.Errorf("%w: dst has %d bytes, want %d", arrexerr.ErrSize, len(dst), c.size)
	}
	// The value lives in rv's addressable storage only if rv came from
	// a pointer; reflect.New + Set gives us one unconditionally so the
	// unsafe.Pointer below is always valid.
	boxed := reflect.New(c.elemType).Elem()
	boxed.Set(rv)
	src := unsafe.Slice((*byte)(unsafe.Pointer(boxed.UnsafeAddr())), c.size)
	copy(dst, src)
	return nil
}

// Unpack allocates a new elemType value, copies src into its payload,
// and runs ctor (if set) over the result.
func (c *ExtensionCodec) Unpack(src []byte) (any, error) {
	if len(src) != c.size {
		return nil, fmt.Errorf("%w: src has %d bytes, want %d", arrexerr.ErrSize, len(src), c.size)
	}
	boxed := reflect.New(c.elemType).Elem()
	dst := unsafe.Slice((*byte)(unsafe.Pointer(boxed.UnsafeAddr())), c.size)
	copy(dst, src)
	out := boxed.Interface()
	if c.ctor != nil {
		return c.ctor(out)
	}
	return out, nil
}
