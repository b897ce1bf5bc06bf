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

// Package arrexerr defines the sentinel error kinds shared by every
// arrex package. Callers should compare with errors.Is against the
// sentinels here; wrapped messages carry the offending key, index or
// size for diagnostics.
package arrexerr

import "errors"

var (
	// ErrUnknownDtype is returned when a registry key has no declared
	// codec, or inference over a sample value failed to find one.
	ErrUnknownDtype = errors.New("arrex: unknown dtype")

	// ErrLayout is returned for an invalid or unparseable layout string.
	ErrLayout = errors.New("arrex: invalid layout")

	// ErrType is returned when a value is incompatible with a codec's
	// Pack, or when two list operands carry different codecs.
	ErrType = errors.New("arrex: type mismatch")

	// ErrSize is returned when Pack produces the wrong byte count, or
	// FromBuffer is given a buffer whose length isn't a multiple of
	// the element size.
	ErrSize = errors.New("arrex: size mismatch")

	// ErrIndex is returned for an out-of-range index or slice bound.
	ErrIndex = errors.New("arrex: index out of range")

	// ErrInvariant is returned when a mutation would change the length
	// of a non-owning view.
	ErrInvariant = errors.New("arrex: invariant violation")

	// ErrNotSupported is returned for operations the spec explicitly
	// excludes, such as a non-unit slice step.
	ErrNotSupported = errors.New("arrex: not supported")

	// ErrAllocation is returned when growing a buffer fails.
	ErrAllocation = errors.New("arrex: allocation failed")

	// ErrDuplicate is returned by Registry.DeclareUnique when the key
	// is already present.
	ErrDuplicate = errors.New("arrex: duplicate dtype key")
)
