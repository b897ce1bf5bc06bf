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
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/arrexgo/arrex/arrexerr"
)

type vec4 struct {
	X, Y, Z, W float64
}

func TestExtensionCodecRoundTrip(t *testing.T) {
	c, err := NewExtensionCodec(reflect.TypeOf(vec4{}), "dddd", nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Size() != 32 {
		t.Fatalf("Size() = %d, want 32", c.Size())
	}
	v := vec4{-2, -3, -4, -5}
	got, err := RoundTrip(c, v)
	if err != nil {
		t.Fatal(err)
	}
	if got.(vec4) != v {
		t.Fatalf("round trip: got %+v, want %+v", got, v)
	}
}

func TestExtensionCodecCtor(t *testing.T) {
	calls := 0
	c, err := NewExtensionCodec(reflect.TypeOf(vec4{}), "dddd", func(v any) (any, error) {
		calls++
		return v, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, c.Size())
	if err := c.Pack(vec4{1, 2, 3, 4}, buf); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatalf("ctor must not run on Pack, ran %d times", calls)
	}
	if _, err := c.Unpack(buf); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("ctor must run exactly once on Unpack, ran %d times", calls)
	}
}

func TestExtensionCodecSizeMismatch(t *testing.T) {
	_, err := NewExtensionCodec(reflect.TypeOf(vec4{}), "ddd", nil)
	if !errors.Is(err, arrexerr.ErrSize) {
		t.Fatalf("want ErrSize, got %v", err)
	}
}

func TestExtensionCodecRejectsPointerFields(t *testing.T) {
	type hasPtr struct {
		X *int
	}
	_, err := NewExtensionCodec(reflect.TypeOf(hasPtr{}), "q", nil)
	if !errors.Is(err, arrexerr.ErrType) {
		t.Fatalf("want ErrType, got %v", err)
	}
}

func TestFuncCodecRoundTrip(t *testing.T) {
	c, err := NewFuncCodec(8,
		func(v any) ([]byte, error) {
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, math.Float64bits(v.(float64)))
			return b, nil
		},
		func(b []byte) (any, error) {
			return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
		},
		"d", nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := RoundTrip(c, 1.25)
	if err != nil {
		t.Fatal(err)
	}
	if got.(float64) != 1.25 {
		t.Fatalf("got %v, want 1.25", got)
	}
	fmtStr, ok := c.Layout()
	if !ok || fmtStr != "d" {
		t.Fatalf("Layout() = %q, %v", fmtStr, ok)
	}
}

func TestFuncCodecPackSizeMismatch(t *testing.T) {
	c, err := NewFuncCodec(4,
		func(v any) ([]byte, error) { return []byte{1, 2, 3}, nil },
		func(b []byte) (any, error) { return b, nil },
		"", nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 4)
	err = c.Pack(nil, buf)
	if !errors.Is(err, arrexerr.ErrSize) {
		t.Fatalf("want ErrSize, got %v", err)
	}
}

func TestFuncCodecOpaqueLayout(t *testing.T) {
	c, err := NewFuncCodec(4,
		func(v any) ([]byte, error) { return []byte{0, 0, 0, 0}, nil },
		func(b []byte) (any, error) { return b, nil },
		"", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Layout(); ok {
		t.Fatal("expected opaque codec to report ok=false")
	}
}
