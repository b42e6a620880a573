package world

import (
	"errors"
	"testing"
)

type testEntity struct {
	pos  PositionIndex
	name string
}

func TestPool_AddGet(t *testing.T) {
	p := NewPool[testEntity](0)
	a := p.Add(testEntity{pos: Pos(1, 1), name: "a"})
	b := p.Add(testEntity{pos: Pos(2, 2), name: "b"})

	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	if a == b {
		t.Fatal("Add returned the same handle twice")
	}
	got, err := p.Get(b)
	if err != nil {
		t.Fatalf("Get(b) error = %v", err)
	}
	if got.name != "b" {
		t.Errorf("Get(b).name = %q, want b", got.name)
	}
	got.name = "bb"
	if p.MustGet(b).name != "bb" {
		t.Error("Get did not return a pointer into the pool")
	}
}

func TestPool_GrowsPastCapacity(t *testing.T) {
	p := NewPool[int](2)
	var hs []Handle
	for i := 0; i < 100; i++ {
		hs = append(hs, p.Add(i))
	}
	for i, h := range hs {
		if v := *p.MustGet(h); v != i {
			t.Fatalf("value for handle %d = %d, want %d", i, v, i)
		}
	}
}

// Three entities, remove the first: the last one moves into dense slot 0 and
// its handle keeps resolving.
func TestPool_RemoveSwapsLastIntoHole(t *testing.T) {
	p := NewPool[testEntity](3)
	h0 := p.Add(testEntity{pos: Pos(1, 1), name: "e0"})
	h1 := p.Add(testEntity{pos: Pos(2, 2), name: "e1"})
	h2 := p.Add(testEntity{pos: Pos(3, 3), name: "e2"})

	moved, err := p.Remove(h0)
	if err != nil {
		t.Fatalf("Remove(h0) error = %v", err)
	}
	if moved != h2 {
		t.Errorf("Remove(h0) moved = %v, want %v", moved, h2)
	}
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}
	if got := p.At(0); got.name != "e2" || got.pos != Pos(3, 3) {
		t.Errorf("At(0) = %+v, want former e2 at (3,3)", *got)
	}
	if p.HandleAt(0) != h2 {
		t.Errorf("HandleAt(0) = %v, want %v", p.HandleAt(0), h2)
	}
	if got := p.MustGet(h2); got.name != "e2" {
		t.Errorf("Get(h2) = %+v after swap, want e2", *got)
	}
	if got := p.MustGet(h1); got.name != "e1" {
		t.Errorf("Get(h1) = %+v, want e1", *got)
	}
	if _, err := p.Get(h0); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Get(removed) error = %v, want ErrInvalidHandle", err)
	}
}

func TestPool_RemoveLastMovesNothing(t *testing.T) {
	p := NewPool[int](2)
	p.Add(1)
	h := p.Add(2)
	moved, err := p.Remove(h)
	if err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if moved != NoHandle {
		t.Errorf("moved = %v, want NoHandle", moved)
	}
}

func TestPool_InvalidRemoveIsNoOp(t *testing.T) {
	p := NewPool[int](2)
	h := p.Add(1)
	p.Add(2)
	if _, err := p.Remove(h); err != nil {
		t.Fatal(err)
	}

	for _, bad := range []Handle{NoHandle, h, {slot: 99}} {
		if _, err := p.Remove(bad); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Remove(%v) error = %v, want ErrInvalidHandle", bad, err)
		}
	}
	if p.Len() != 1 {
		t.Errorf("Len after invalid removes = %d, want 1", p.Len())
	}
}

func TestPool_StaleHandleAfterSlotReuse(t *testing.T) {
	p := NewPool[int](1)
	old := p.Add(1)
	if _, err := p.Remove(old); err != nil {
		t.Fatal(err)
	}
	fresh := p.Add(2)
	if fresh == old {
		t.Fatal("reused slot returned identical handle")
	}
	if p.Contains(old) {
		t.Error("Contains(stale) = true, want false")
	}
	if v := *p.MustGet(fresh); v != 2 {
		t.Errorf("Get(fresh) = %d, want 2", v)
	}
}

func TestPool_ClearInvalidatesHandles(t *testing.T) {
	p := NewPool[int](2)
	a := p.Add(1)
	b := p.Add(2)
	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", p.Len())
	}
	if p.Contains(a) || p.Contains(b) {
		t.Error("handles still live after Clear")
	}
	c := p.Add(3)
	if *p.MustGet(c) != 3 {
		t.Error("Add after Clear broken")
	}
}

func TestPool_MustGetPanics(t *testing.T) {
	p := NewPool[int](0)
	defer func() {
		if recover() == nil {
			t.Error("MustGet(NoHandle) did not panic")
		}
	}()
	p.MustGet(NoHandle)
}
