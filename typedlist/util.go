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

import "github.com/arrexgo/arrex/rawbuf"

// newOwnedCopy returns a freshly allocated, unshared Buffer of length n
// holding a copy of src. It panics only if n doesn't fit src, which
// would be a caller bug, not a runtime condition.
func newOwnedCopy(src []byte, n int) *rawbuf.Buffer {
	buf := rawbuf.New(n)
	if err := buf.Resize(n); err != nil {
		panic("typedlist: Resize of a freshly allocated buffer failed: " + err.Error())
	}
	data, _ := buf.MutBytes()
	copy(data, src)
	return buf
}
