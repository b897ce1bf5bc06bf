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

import "github.com/google/uuid"

// TypeHandle is an opaque dtype key standing in for "host-language
// element-type identity" (spec.md §3's dtype key case (a)) when the
// element type itself has no natural Go identity to register under —
// e.g. a FuncCodec built around a closure rather than a named struct
// type. Two handles are equal iff minted from the same call to
// NewTypeHandle; comparing two independently-minted handles, even for
// conceptually "the same" dtype, is always false, matching spec.md's
// requirement that dtype keys compare by identity, not by structure.
type TypeHandle struct {
	id uuid.UUID
}

// NewTypeHandle mints a fresh, globally unique dtype key.
func NewTypeHandle() TypeHandle {
	return TypeHandle{id: uuid.New()}
}

// String returns the handle's UUID text form, useful for diagnostics
// and for the registry's hashing of non-string keys.
func (h TypeHandle) String() string {
	return h.id.String()
}

// Bytes returns the handle's 16-byte UUID representation.
func (h TypeHandle) Bytes() []byte {
	b := h.id // uuid.UUID is a [16]byte array
	return b[:]
}
