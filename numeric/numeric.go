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

// Package numeric registers the built-in scalar dtypes (the codes
// b B h H i I l L q Q f d e from the layout mini-language) against the
// default registry, both under their layout-string key and under the
// corresponding Go numeric type, so InferFromSample can resolve a bare
// int or float64 the way the original Python implementation's
// arrex/numbers.py registers struct.Struct-backed codecs for every
// primitive width and aliases the Python builtins float and int to 'd'
// and 'l' respectively. This package is deliberately thin: it is the
// "numeric-primitive dtype pack" spec.md §1 places out of scope as
// something to reimplement in depth, kept here only as the expected
// instantiation of the codec interface.
package numeric

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/arrexgo/arrex/arrexerr"
	"github.com/arrexgo/arrex/codec"
	"github.com/arrexgo/arrex/registry"
)

func init() {
	Register(registry.Default())
}

// Register declares every built-in numeric dtype against r, plus a
// reflect.Type alias for each Go numeric type; int aliases 'l' and
// float64 aliases 'd', the Go counterparts of the original source's
// int and float builtins.
func Register(r *registry.Registry) {
	mustDeclare(r, "b", int8Codec())
	mustDeclare(r, "B", uint8Codec())
	mustDeclare(r, "h", int16Codec())
	mustDeclare(r, "H", uint16Codec())
	mustDeclare(r, "i", int32Codec())
	mustDeclare(r, "I", uint32Codec())
	mustDeclare(r, "l", int64Codec())
	mustDeclare(r, "L", uint64Codec())
	mustDeclare(r, "q", int64Codec())
	mustDeclare(r, "Q", uint64Codec())
	mustDeclare(r, "f", float32Codec())
	mustDeclare(r, "d", float64Codec())
	mustDeclare(r, "e", float16Codec())

	mustDeclare(r, reflect.TypeOf(int8(0)), "b")
	mustDeclare(r, reflect.TypeOf(uint8(0)), "B")
	mustDeclare(r, reflect.TypeOf(int16(0)), "h")
	mustDeclare(r, reflect.TypeOf(uint16(0)), "H")
	mustDeclare(r, reflect.TypeOf(int32(0)), "i")
	mustDeclare(r, reflect.TypeOf(uint32(0)), "I")
	mustDeclare(r, reflect.TypeOf(int64(0)), "l")
	mustDeclare(r, reflect.TypeOf(uint64(0)), "L")
	mustDeclare(r, reflect.TypeOf(int(0)), "l")
	mustDeclare(r, reflect.TypeOf(float32(0)), "f")
	mustDeclare(r, reflect.TypeOf(float64(0)), "d")
}

func mustDeclare(r *registry.Registry, key, value any) {
	if err := r.Declare(key, value); err != nil {
		panic(fmt.Sprintf("numeric: unexpected failure declaring %v: %v", key, err))
	}
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: %T is not a number", arrexerr.ErrType, v)
	}
}

func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		i, err := asInt64(v)
		if err != nil {
			return 0, err
		}
		return float64(i), nil
	}
}

func int8Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(1,
		func(v any) ([]byte, error) {
			n, err := asInt64(v)
			return []byte{byte(int8(n))}, err
		},
		func(b []byte) (any, error) { return int(int8(b[0])), nil },
		"b", reflect.TypeOf(int8(0)))
	return c
}

func uint8Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(1,
		func(v any) ([]byte, error) {
			n, err := asInt64(v)
			return []byte{byte(uint8(n))}, err
		},
		func(b []byte) (any, error) { return int(b[0]), nil },
		"B", reflect.TypeOf(uint8(0)))
	return c
}

func int16Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(2,
		func(v any) ([]byte, error) {
			n, err := asInt64(v)
			b := make([]byte, 2)
			binary.LittleEndian.PutUint16(b, uint16(int16(n)))
			return b, err
		},
		func(b []byte) (any, error) { return int(int16(binary.LittleEndian.Uint16(b))), nil },
		"h", reflect.TypeOf(int16(0)))
	return c
}

func uint16Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(2,
		func(v any) ([]byte, error) {
			n, err := asInt64(v)
			b := make([]byte, 2)
			binary.LittleEndian.PutUint16(b, uint16(n))
			return b, err
		},
		func(b []byte) (any, error) { return int(binary.LittleEndian.Uint16(b)), nil },
		"H", reflect.TypeOf(uint16(0)))
	return c
}

func int32Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(4,
		func(v any) ([]byte, error) {
			n, err := asInt64(v)
			b := make([]byte, 4)
			binary.LittleEndian.PutUint32(b, uint32(int32(n)))
			return b, err
		},
		func(b []byte) (any, error) { return int(int32(binary.LittleEndian.Uint32(b))), nil },
		"i", reflect.TypeOf(int32(0)))
	return c
}

func uint32Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(4,
		func(v any) ([]byte, error) {
			n, err := asInt64(v)
			b := make([]byte, 4)
			binary.LittleEndian.PutUint32(b, uint32(n))
			return b, err
		},
		func(b []byte) (any, error) { return int(binary.LittleEndian.Uint32(b)), nil },
		"I", reflect.TypeOf(uint32(0)))
	return c
}

func int64Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(8,
		func(v any) ([]byte, error) {
			n, err := asInt64(v)
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, uint64(n))
			return b, err
		},
		func(b []byte) (any, error) { return int(int64(binary.LittleEndian.Uint64(b))), nil },
		"l", reflect.TypeOf(int64(0)))
	return c
}

func uint64Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(8,
		func(v any) ([]byte, error) {
			n, err := asInt64(v)
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, uint64(n))
			return b, err
		},
		func(b []byte) (any, error) { return binary.LittleEndian.Uint64(b), nil },
		"L", reflect.TypeOf(uint64(0)))
	return c
}

func float32Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(4,
		func(v any) ([]byte, error) {
			f, err := asFloat64(v)
			b := make([]byte, 4)
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f)))
			return b, err
		},
		func(b []byte) (any, error) { return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil },
		"f", reflect.TypeOf(float32(0)))
	return c
}

func float64Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(8,
		func(v any) ([]byte, error) {
			f, err := asFloat64(v)
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, math.Float64bits(f))
			return b, err
		},
		func(b []byte) (any, error) { return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil },
		"d", reflect.TypeOf(float64(0)))
	return c
}

func float16Codec() codec.Codec {
	c, _ := codec.NewFuncCodec(2,
		func(v any) ([]byte, error) {
			f, err := asFloat64(v)
			b := make([]byte, 2)
			binary.LittleEndian.PutUint16(b, float32To16(float32(f)))
			return b, err
		},
		func(b []byte) (any, error) { return float64(float16To32(binary.LittleEndian.Uint16(b))), nil },
		"e", nil)
	return c
}

// float32To16 and float16To32 implement IEEE-754 binary16 conversion.
// There is no third-party half-precision library in the example pack,
// so this is a small, self-contained bit manipulation rather than a
// standard-library substitute for a library concern: no library in the
// examined corpus offers float16 conversion.
func float32To16(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xff) - 127 + 15
	mant := bits & 0x7fffff
	switch {
	case exp <= 0:
		return sign
	case exp >= 0x1f:
		return sign | 0x7c00
	default:
		return sign | uint16(exp)<<10 | uint16(mant>>13)
	}
}

func float16To32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h&0x7c00) >> 10
	mant := uint32(h & 0x3ff)
	switch exp {
	case 0:
		return math.Float32frombits(sign)
	case 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mant<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
	}
}
