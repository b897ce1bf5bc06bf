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
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/arrexgo/arrex/arrexerr"
	"github.com/arrexgo/arrex/codec"
)

func ints(l *List) []int {
	var out []int
	for v := range l.All() {
		out = append(out, v.(int))
	}
	return out
}

func TestAppendGrowsLength(t *testing.T) {
	l, _ := New("l")
	for i := 0; i < 5; i++ {
		if err := l.Append(i); err != nil {
			t.Fatal(err)
		}
	}
	if got := ints(l); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("got %v", got)
	}
}

func TestAppendDoesNotDisturbSiblingView(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	view, _ := l.Slice(0, 3)
	if err := l.Append(4); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", l.Len())
	}
	if view.Len() != 3 {
		t.Fatalf("sibling view's Len() changed to %d, want 3", view.Len())
	}
	if got := ints(view); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("sibling view contents changed: %v", got)
	}
}

func TestExtendStopsOnErrorKeepingPriorElements(t *testing.T) {
	l, _ := New("l")
	seq := func(yield func(any) bool) {
		if !yield(1) {
			return
		}
		if !yield(2) {
			return
		}
		if !yield("not a number") {
			return
		}
		yield(3)
	}
	err := l.Extend(seq)
	if !errors.Is(err, arrexerr.ErrType) {
		t.Fatalf("want ErrType, got %v", err)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("got %v, want [1 2] kept from before the failure", got)
	}
}

func TestInsertAtMiddle(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 4}), "l")
	if err := l.Insert(2, 3); err != nil {
		t.Fatal(err)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Fatalf("got %v", got)
	}
}

func TestInsertClipsOutOfRangeIndex(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2}), "l")
	if err := l.Insert(100, 3); err != nil {
		t.Fatal(err)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want append at the end", got)
	}
}

func TestPopReturnsAndRemoves(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	v, err := l.Pop(1)
	if err != nil {
		t.Fatal(err)
	}
	if v.(int) != 2 {
		t.Fatalf("Pop(1) = %v, want 2", v)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestPopLastDefaultsToLastElement(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	v, err := l.PopLast()
	if err != nil {
		t.Fatal(err)
	}
	if v.(int) != 3 {
		t.Fatalf("PopLast() = %v, want 3", v)
	}
}

func TestRemoveRange(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3, 4, 5}), "l")
	if err := l.RemoveRange(1, 3); err != nil {
		t.Fatal(err)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 4, 5}) {
		t.Fatalf("got %v", got)
	}
}

func TestClear(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	cap0 := l.Cap()
	if err := l.Clear(); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", l.Len())
	}
	if l.Cap() != cap0 {
		t.Fatalf("Cap() = %d, want unchanged %d", l.Cap(), cap0)
	}
}

func TestReverse(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3, 4}), "l")
	l.Reverse()
	if got := ints(l); !slices.Equal(got, []int{4, 3, 2, 1}) {
		t.Fatalf("got %v", got)
	}
}

func TestReverseOfSharedViewMutatesParent(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3, 4}), "l")
	view, _ := l.Slice(1, 3)
	view.Reverse()
	if got := ints(l); !slices.Equal(got, []int{1, 3, 2, 4}) {
		t.Fatalf("got %v, want reversing a view to mutate its parent in place", got)
	}
}

func TestReserveIncreasesCapacity(t *testing.T) {
	l, _ := New("l")
	if err := l.Reserve(100); err != nil {
		t.Fatal(err)
	}
	if l.Cap() < 100 {
		t.Fatalf("Cap() = %d, want >= 100", l.Cap())
	}
}

func TestReserveIsRelativeToCurrentLength(t *testing.T) {
	opaque, err := codec.NewExtensionCodec(reflect.TypeOf(vec3{}), "ddd", nil)
	if err != nil {
		t.Fatal(err)
	}
	l, err := New(opaque)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Append(vec3{-2, -3, -4}); err != nil {
		t.Fatal(err)
	}
	if l.Cap() != 1 {
		t.Fatalf("Cap() after one Append = %d, want 1", l.Cap())
	}
	if err := l.Reserve(1); err != nil {
		t.Fatal(err)
	}
	if l.Cap() < 2 {
		t.Fatalf("Cap() after Reserve(1) = %d, want >= 2 (room for 1 more on top of the existing element)", l.Cap())
	}
}

func TestReserveFailsOnView(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	view, _ := l.Slice(0, 3)
	if err := view.Reserve(10); !errors.Is(err, arrexerr.ErrInvariant) {
		t.Fatalf("want ErrInvariant, got %v", err)
	}
}

func TestCompactShrinksCapacityToLength(t *testing.T) {
	l, _ := New("l")
	l.Reserve(100)
	for i := 0; i < 5; i++ {
		l.Append(i)
	}
	if err := l.Compact(); err != nil {
		t.Fatal(err)
	}
	if l.Cap() != 5 {
		t.Fatalf("Cap() = %d, want 5", l.Cap())
	}
}

func TestInsertOnSharedBufferCopiesOnWrite(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	view, _ := l.Slice(0, 3)
	oldOwner := l.Owner()
	if err := l.Insert(1, 99); err != nil {
		t.Fatal(err)
	}
	if l.Owner() == oldOwner {
		t.Fatal("Insert on a shared buffer should have copied into a fresh buffer")
	}
	if got := ints(view); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("sibling view changed after copy-on-write: %v", got)
	}
}

func TestSetSliceSameLength(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3, 4, 5}), "l")
	if err := l.SetSlice(1, 3, slices.Values([]any{20, 30})); err != nil {
		t.Fatal(err)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 20, 30, 4, 5}) {
		t.Fatalf("got %v", got)
	}
}

func TestSetSliceGrows(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	if err := l.SetSlice(1, 2, slices.Values([]any{10, 20, 30})); err != nil {
		t.Fatal(err)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 10, 20, 30, 3}) {
		t.Fatalf("got %v", got)
	}
}

func TestSetSliceShrinks(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3, 4, 5}), "l")
	if err := l.SetSlice(1, 4, slices.Values([]any{99})); err != nil {
		t.Fatal(err)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 99, 5}) {
		t.Fatalf("got %v", got)
	}
}

func TestSetSliceFailsOnView(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	view, _ := l.Slice(0, 3)
	if err := view.SetSlice(0, 1, slices.Values([]any{9})); !errors.Is(err, arrexerr.ErrInvariant) {
		t.Fatalf("want ErrInvariant, got %v", err)
	}
}

func TestSetSliceStopsOnPackErrorLeavingListUnchanged(t *testing.T) {
	l, _ := FromIterable(slices.Values([]any{1, 2, 3}), "l")
	err := l.SetSlice(0, 2, slices.Values([]any{10, "nope"}))
	if !errors.Is(err, arrexerr.ErrType) {
		t.Fatalf("want ErrType, got %v", err)
	}
	if got := ints(l); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("got %v, want list unchanged after a mid-pack failure", got)
	}
}
