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
	"encoding/binary"
	"fmt"

	"github.com/arrexgo/arrex/arrexerr"
	"github.com/arrexgo/arrex/registry"
)

// Serialize encodes the list as [uint32 key length][key][packed
// elements], little-endian, so a receiving process can look the key
// back up in its own registry. It requires the list's Dtype() to be a
// string layout key: a reflect.Type or codec.TypeHandle key is only
// ever meaningful within the process that declared it, so Serialize
// rejects them with arrexerr.ErrNotSupported rather than produce bytes
// nothing could ever deserialize.
func (l *List) Serialize() ([]byte, error) {
	key, ok := l.Dtype().(string)
	if !ok {
		return nil, fmt.Errorf("%w: Serialize requires a string dtype key, got %T", arrexerr.ErrNotSupported, l.Dtype())
	}
	size := l.codec.Size()
	payload := l.buf.Bytes()[l.offset : l.offset+l.length*size]

	out := make([]byte, 4+len(key)+len(payload))
	binary.LittleEndian.PutUint32(out[:4], uint32(len(key)))
	copy(out[4:4+len(key)], key)
	copy(out[4+len(key):], payload)
	return out, nil
}

// Deserialize reverses Serialize, resolving the embedded key against
// reg (typically registry.Default()).
func Deserialize(data []byte, reg *registry.Registry) (*List, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: serialized list header truncated", arrexerr.ErrSize)
	}
	klen := binary.LittleEndian.Uint32(data[:4])
	if uint64(len(data)) < 4+uint64(klen) {
		return nil, fmt.Errorf("%w: serialized list key truncated", arrexerr.ErrSize)
	}
	key := string(data[4 : 4+klen])
	payload := data[4+klen:]

	c, err := reg.Declared(key)
	if err != nil {
		return nil, err
	}
	size := c.Size()
	if len(payload)%size != 0 {
		return nil, fmt.Errorf("%w: payload of %d bytes is not a multiple of element size %d", arrexerr.ErrSize, len(payload), size)
	}
	buf := newOwnedCopy(payload, len(payload))
	return &List{codec: c, buf: buf, length: len(payload) / size, ownsBuffer: true, dtypeKey: key}, nil
}
