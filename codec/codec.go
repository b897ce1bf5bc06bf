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

// Package codec defines the dtype descriptor contract used by the
// registry and typed list packages, plus two concrete implementations:
// an extension codec for Go types whose memory layout already is the
// packed record, and a function codec driven by user-supplied pack and
// unpack callables.
package codec

// Codec is an immutable dtype descriptor. Implementations are compared
// by identity (pointer equality), per spec: two codecs built from the
// same parameters are still distinct codecs unless the caller keeps and
// reuses the same value.
type Codec interface {
	// Size is the byte size of one packed element. Always > 0.
	Size() int

	// Layout returns the packed-layout string for this codec, if it
	// has one. ok is false for opaque function codecs constructed
	// without a layout string; such codecs can still be used by a
	// typed list but are invisible to buffer-protocol consumers that
	// want a layout description.
	Layout() (fmtStr string, ok bool)

	// Pack encodes v into dst, which is guaranteed by the caller to
	// have length == Size(). Pack must not retain dst.
	Pack(v any, dst []byte) error

	// Unpack decodes a freshly materialized value from src, which is
	// guaranteed by the caller to have length == Size(). Unpack must
	// not retain src.
	Unpack(src []byte) (any, error)

	// Key is an optional back-reference to the element type the codec
	// was declared for, used only for equality reporting (e.g. in
	// error messages). Nil if the codec has none.
	Key() any
}

// RoundTrip packs v and unpacks the result, returning the unpacked
// value. It is a convenience used by tests to check the round-trip law
// C.Unpack(C.Pack(v)) == v.
func RoundTrip(c Codec, v any) (any, error) {
	buf := make([]byte, c.Size())
	if err := c.Pack(v, buf); err != nil {
		return nil, err
	}
	return c.Unpack(buf)
}
