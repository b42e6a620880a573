package movement

import (
	"errors"
	"testing"

	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
)

func TestBoard_PlaceRejectsOccupiedAndOutOfBounds(t *testing.T) {
	b := NewBoard(4, 4)
	if _, err := b.Place(world.Pos(1, 1), entities.KindWall); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Place(world.Pos(1, 1), entities.KindPushBox); !errors.Is(err, ErrOccupied) {
		t.Errorf("Place on occupied error = %v, want ErrOccupied", err)
	}
	if _, err := b.Place(world.Pos(4, 0), entities.KindPushBox); !errors.Is(err, world.ErrInvalidIndex) {
		t.Errorf("Place out of bounds error = %v, want ErrInvalidIndex", err)
	}
	if _, err := b.Place(world.Pos(0, 0), entities.KindNone); err == nil {
		t.Error("Place(KindNone) error = nil")
	}
}

// Removing the first of three boxes keeps the grid pointing at the right boxes
// without any re-pointing by the caller.
func TestBoard_RemoveKeepsGridInSync(t *testing.T) {
	b := NewBoard(5, 5)
	positions := []world.PositionIndex{world.Pos(0, 0), world.Pos(1, 1), world.Pos(2, 2)}
	var hs []world.Handle
	for _, p := range positions {
		h, err := b.Place(p, entities.KindPushBox)
		if err != nil {
			t.Fatal(err)
		}
		hs = append(hs, h)
	}

	removed, err := b.Remove(positions[0])
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Pos != positions[0] {
		t.Errorf("removed box at %v, want %v", removed.Pos, positions[0])
	}
	if b.Boxes.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Boxes.Len())
	}
	if got := b.Boxes.At(0).Pos; got != positions[2] {
		t.Errorf("dense slot 0 holds box at %v, want former last at %v", got, positions[2])
	}
	if got := b.Grid.EntityAt(positions[2]); got != hs[2] {
		t.Errorf("EntityAt(%v) = %v, want %v", positions[2], got, hs[2])
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	if _, err := b.Remove(positions[0]); !errors.Is(err, world.ErrInvalidHandle) {
		t.Errorf("Remove(empty cell) error = %v, want ErrInvalidHandle", err)
	}
}

func TestBoard_ValidateDetectsDesync(t *testing.T) {
	b := NewBoard(5, 5)
	h, err := b.Place(world.Pos(2, 2), entities.KindPushBox)
	if err != nil {
		t.Fatal(err)
	}
	b.Boxes.MustGet(h).Pos = world.Pos(3, 3)
	if err := b.Validate(); !errors.Is(err, ErrDesync) {
		t.Errorf("Validate error = %v, want ErrDesync", err)
	}
}

func TestBoard_ValidateDetectsStrayCell(t *testing.T) {
	b := NewBoard(5, 5)
	h, err := b.Place(world.Pos(2, 2), entities.KindPushBox)
	if err != nil {
		t.Fatal(err)
	}
	b.Grid.MarkEntityInCell(world.Pos(4, 4), h)
	if err := b.Validate(); !errors.Is(err, ErrDesync) {
		t.Errorf("Validate error = %v, want ErrDesync", err)
	}
}
