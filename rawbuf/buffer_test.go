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

package rawbuf

import (
	"errors"
	"testing"

	"github.com/arrexgo/arrex/arrexerr"
)

func TestGrowthPolicy(t *testing.T) {
	b := New(0)
	if err := b.Reserve(1); err != nil {
		t.Fatal(err)
	}
	if b.Cap() != MinCapacity {
		t.Fatalf("Cap() = %d, want %d (MinCapacity floor)", b.Cap(), MinCapacity)
	}
	if err := b.Reserve(17); err != nil {
		t.Fatal(err)
	}
	if b.Cap() != MinCapacity*2 {
		t.Fatalf("Cap() = %d, want %d (doubling)", b.Cap(), MinCapacity*2)
	}
	if err := b.Reserve(1000); err != nil {
		t.Fatal(err)
	}
	if b.Cap() != 1000 {
		t.Fatalf("Cap() = %d, want 1000 (explicit request dominates)", b.Cap())
	}
}

func TestResizeDoesNotShrinkCapacity(t *testing.T) {
	b := New(0)
	if err := b.Resize(100); err != nil {
		t.Fatal(err)
	}
	cp := b.Cap()
	if err := b.Resize(4); err != nil {
		t.Fatal(err)
	}
	if b.Cap() != cp {
		t.Fatalf("Resize down changed capacity: %d -> %d", cp, b.Cap())
	}
	b.Compact()
	if b.Cap() != 4 {
		t.Fatalf("Compact() left Cap() = %d, want 4", b.Cap())
	}
}

func TestSharedBufferRejectsMutation(t *testing.T) {
	b := New(16)
	b.Resize(16)
	b.Retain() // refcount now 2
	if _, err := b.MutBytes(); !errors.Is(err, arrexerr.ErrInvariant) {
		t.Fatalf("want ErrInvariant on shared MutBytes, got %v", err)
	}
	if err := b.Reserve(1000); !errors.Is(err, arrexerr.ErrInvariant) {
		t.Fatalf("want ErrInvariant on shared Reserve, got %v", err)
	}
	b.Release()
	if b.Shared() {
		t.Fatal("buffer should be unshared after Release")
	}
	if _, err := b.MutBytes(); err != nil {
		t.Fatalf("unshared MutBytes should succeed: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(8)
	b.Resize(8)
	mb, _ := b.MutBytes()
	mb[0] = 0xFF
	c := b.Clone()
	mb2, _ := c.MutBytes()
	mb2[0] = 0x00
	if b.Bytes()[0] != 0xFF {
		t.Fatal("mutating the clone affected the original")
	}
}
