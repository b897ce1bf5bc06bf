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

// Package registry implements the process-wide dtype key -> codec
// table. Writes (Declare, DeclareUnique) are serialized under a mutex;
// reads (Declared, InferFromSample) hit a copy-on-write snapshot map so
// a stable registry never blocks lookups on writers, mirroring how the
// donor codebase's ion.Symtab separates its mutable insert path from a
// read-mostly interned-string table.
package registry

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dchest/siphash"
	"golang.org/x/exp/maps"

	"github.com/arrexgo/arrex/arrexerr"
	"github.com/arrexgo/arrex/codec"
	"github.com/arrexgo/arrex/internal/diag"
)

// maxAliasDepth bounds alias-chain resolution, per spec.md §3.
const maxAliasDepth = 8

const shardCount = 8

// hashK0 and hashK1 form the siphash key; fixed and unexported since the registry has
// no need for an attacker-resistant random seed (it is not processing
// untrusted network input, unlike the donor's vm/interphash.go use of
// the same library).
const hashK0, hashK1 uint64 = 0x61727265785f6b30, 0x61727265785f6b31

// entry is either a codec or an alias to another key.
type entry struct {
	codec   codec.Codec
	alias   any
	isAlias bool
}

type shard struct {
	mu   sync.Mutex
	snap atomic.Pointer[map[any]entry]
}

// Registry is a dtype key -> codec table. The zero value is not usable;
// construct one with New. Most callers should use Default(), the
// process-wide singleton.
type Registry struct {
	shards [shardCount]shard
}

var defaultRegistry = New()

// Default returns the process-wide registry singleton.
func Default() *Registry { return defaultRegistry }

// New constructs a standalone registry, useful in tests that want
// isolation from the process-wide singleton.
func New() *Registry {
	r := &Registry{}
	for i := range r.shards {
		m := make(map[any]entry)
		r.shards[i].snap.Store(&m)
	}
	return r
}

func keyBytes(key any) []byte {
	switch k := key.(type) {
	case string:
		return []byte(k)
	case reflect.Type:
		return []byte(k.PkgPath() + "." + k.String())
	case codec.TypeHandle:
		return k.Bytes()
	case fmt.Stringer:
		return []byte(k.String())
	default:
		return []byte(fmt.Sprintf("%#v", key))
	}
}

func (r *Registry) shardFor(key any) *shard {
	h := siphash.Hash(hashK0, hashK1, keyBytes(key))
	return &r.shards[h%shardCount]
}

// Declare registers codec-or-key under key, replacing any existing
// entry atomically. value is either a codec.Codec, in which case key
// now resolves directly to it, or another key, in which case key
// becomes an alias resolved transitively at lookup time.
func (r *Registry) Declare(key any, value any) error {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	var e entry
	switch v := value.(type) {
	case codec.Codec:
		e = entry{codec: v}
	default:
		e = entry{alias: value, isAlias: true}
	}

	cur := *s.snap.Load()
	if _, ok := cur[key]; ok {
		diag.Printf("registry: replacing existing entry for %v", key)
	}
	next := maps.Clone(cur)
	next[key] = e
	s.snap.Store(&next)
	return nil
}

// DeclareUnique registers codec under key, failing with
// arrexerr.ErrDuplicate if key is already present.
func (r *Registry) DeclareUnique(key any, c codec.Codec) error {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.snap.Load()
	if _, ok := cur[key]; ok {
		return fmt.Errorf("%w: %v", arrexerr.ErrDuplicate, key)
	}
	next := maps.Clone(cur)
	next[key] = entry{codec: c}
	s.snap.Store(&next)
	return nil
}

// Declared resolves key to a codec, following alias chains up to
// maxAliasDepth hops, and fails with arrexerr.ErrUnknownDtype on miss or
// on a chain that is too deep (a cycle).
func (r *Registry) Declared(key any) (codec.Codec, error) {
	cur := key
	for depth := 0; depth <= maxAliasDepth; depth++ {
		s := r.shardFor(cur)
		snap := *s.snap.Load()
		e, ok := snap[cur]
		if !ok {
			return nil, fmt.Errorf("%w: %v", arrexerr.ErrUnknownDtype, key)
		}
		if !e.isAlias {
			return e.codec, nil
		}
		cur = e.alias
	}
	return nil, fmt.Errorf("%w: alias chain from %v exceeds depth %d", arrexerr.ErrUnknownDtype, key, maxAliasDepth)
}

// InferFromSample resolves the sample's dynamic type identity (its
// reflect.Type) as a registry key. That is the only lookup it makes:
// entries declared under other keys are not scanned. It fails with
// arrexerr.ErrUnknownDtype if the type has no declared dtype.
func (r *Registry) InferFromSample(sample any) (codec.Codec, error) {
	if sample == nil {
		return nil, fmt.Errorf("%w: cannot infer dtype from nil sample", arrexerr.ErrUnknownDtype)
	}
	t := reflect.TypeOf(sample)
	if c, err := r.Declared(t); err == nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: no dtype declared for sample of type %s", arrexerr.ErrUnknownDtype, t)
}
