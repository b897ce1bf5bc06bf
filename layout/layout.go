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

// Package layout parses the compact packed-record format strings used
// throughout arrex to describe the byte size of a dtype, following the
// same single-letter-code convention as the host language's struct
// mini-language (lowercase = signed integer, uppercase = unsigned,
// f/d/e = float, x = padding byte).
package layout

import (
	"fmt"

	"github.com/arrexgo/arrex/arrexerr"
)

// widths maps each accepted code to its byte width. Alignment is never
// inferred: callers that need word alignment append 'x' padding
// explicitly, matching arrex/glm.py's align() helper in the original
// source this package is modeled on.
// 'l'/'L' follow the host struct mini-language's native sizing, which
// on a 64-bit machine is 8 bytes (matching generate_numbers.py's int64_t
// binding in original_source/, not the 4-byte "standard" size some
// other struct implementations use); 'q'/'Q' name the same 8-byte width
// explicitly for callers that want it independent of word size.
var widths = map[byte]int{
	'b': 1, 'B': 1,
	'h': 2, 'H': 2,
	'i': 4, 'I': 4,
	'l': 8, 'L': 8,
	'q': 8, 'Q': 8,
	'e': 2,
	'f': 4,
	'd': 8,
	'x': 1,
}

// IsValid reports whether fmtStr is non-empty and every code in it is
// recognized.
func IsValid(fmtStr string) bool {
	if fmtStr == "" {
		return false
	}
	for i := 0; i < len(fmtStr); i++ {
		if _, ok := widths[fmtStr[i]]; !ok {
			return false
		}
	}
	return true
}

// SizeOf returns the total byte size of one record packed according to
// fmtStr, or a wrapped arrexerr.ErrLayout if fmtStr contains an unknown
// code or is empty.
func SizeOf(fmtStr string) (int, error) {
	if fmtStr == "" {
		return 0, fmt.Errorf("%w: empty layout", arrexerr.ErrLayout)
	}
	size := 0
	for i := 0; i < len(fmtStr); i++ {
		w, ok := widths[fmtStr[i]]
		if !ok {
			return 0, fmt.Errorf("%w: unknown code %q in %q", arrexerr.ErrLayout, fmtStr[i], fmtStr)
		}
		size += w
	}
	return size, nil
}

// Widths returns the per-code byte width for each code in fmtStr, in
// order, for consumers that want more than a flat byte count. The
// typed list's BufferProtocol does not call it; it reports only the
// layout string and the item size.
func Widths(fmtStr string) ([]int, error) {
	out := make([]int, len(fmtStr))
	for i := 0; i < len(fmtStr); i++ {
		w, ok := widths[fmtStr[i]]
		if !ok {
			return nil, fmt.Errorf("%w: unknown code %q in %q", arrexerr.ErrLayout, fmtStr[i], fmtStr)
		}
		out[i] = w
	}
	return out, nil
}

// Canonical returns fmtStr unchanged if valid; layout strings are
// compared byte-for-byte as spec'd, so there is no canonicalization
// beyond validation (e.g. no folding of equivalent codes).
func Canonical(fmtStr string) (string, error) {
	if !IsValid(fmtStr) {
		return "", fmt.Errorf("%w: %q", arrexerr.ErrLayout, fmtStr)
	}
	return fmtStr, nil
}
