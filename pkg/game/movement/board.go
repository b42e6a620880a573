// Package movement resolves what a cube step does to the boxes around it.
package movement

import (
	"errors"
	"fmt"

	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
)

var (
	// ErrDesync means the grid and the box pool disagree about where a box is
	ErrDesync = errors.New("grid and box pool out of sync")
	// ErrOccupied is returned when placing a box on a non-empty cell
	ErrOccupied = errors.New("cell already occupied")
)

// Board bundles the occupancy grid and the box pool of one level.
// The grid is the index, the pool owns the boxes.
type Board struct {
	Grid  *world.Grid
	Boxes *entities.Pool
}

// NewBoard creates an empty board of the given size
func NewBoard(width, height int) Board {
	return Board{
		Grid:  world.NewGrid(width, height),
		Boxes: entities.NewPool(16),
	}
}

// Place adds a box of kind at p and records it in the grid
func (b Board) Place(p world.PositionIndex, kind entities.Kind) (world.Handle, error) {
	if !kind.IsValid() {
		return world.NoHandle, fmt.Errorf("place %v at %v: invalid kind", kind, p)
	}
	if !b.Grid.InBounds(p) {
		return world.NoHandle, fmt.Errorf("place %v: %w: %v", kind, world.ErrInvalidIndex, p)
	}
	if !b.Grid.IsEmptyCell(p) {
		return world.NoHandle, fmt.Errorf("place %v at %v: %w", kind, p, ErrOccupied)
	}
	h := b.Boxes.Add(entities.NewBox(p, kind))
	b.Grid.MarkEntityInCell(p, h)
	return h, nil
}

// Remove deletes the box at p and clears its cell
func (b Board) Remove(p world.PositionIndex) (entities.Box, error) {
	if !b.Grid.InBounds(p) {
		return entities.Box{}, fmt.Errorf("remove: %w: %v", world.ErrInvalidIndex, p)
	}
	h := b.Grid.EntityAt(p)
	box, err := b.Boxes.Get(h)
	if err != nil {
		return entities.Box{}, fmt.Errorf("remove at %v: %w", p, err)
	}
	removed := *box
	if _, err := b.Boxes.Remove(h); err != nil {
		return entities.Box{}, fmt.Errorf("remove at %v: %w", p, err)
	}
	b.Grid.MarkEmptyCell(p)
	return removed, nil
}

// BoxAt returns the box occupying p, if any. Out-of-bounds positions hold nothing.
func (b Board) BoxAt(p world.PositionIndex) (world.Handle, *entities.Box, bool) {
	if !b.Grid.InBounds(p) {
		return world.NoHandle, nil, false
	}
	h := b.Grid.EntityAt(p)
	if h == world.NoHandle {
		return world.NoHandle, nil, false
	}
	return h, b.Boxes.MustGet(h), true
}

// Clone returns an independent copy of the board
func (b Board) Clone() Board {
	return Board{Grid: b.Grid.Clone(), Boxes: b.Boxes.Clone()}
}

// Equal reports whether both boards hold the same occupancy and boxes
func (b Board) Equal(o Board) bool {
	if !b.Grid.Equal(o.Grid) || b.Boxes.Len() != o.Boxes.Len() {
		return false
	}
	equal := true
	b.Boxes.Each(func(h world.Handle, box *entities.Box) {
		other, err := o.Boxes.Get(h)
		if err != nil || *other != *box {
			equal = false
		}
	})
	return equal
}

// Validate checks that every box is recorded in the grid at its position and
// every occupied cell points at a live box standing on it.
func (b Board) Validate() error {
	if msg := b.Grid.Validate(); msg != "" {
		return errors.New(msg)
	}

	var err error
	b.Boxes.Each(func(h world.Handle, box *entities.Box) {
		if err != nil {
			return
		}
		if !b.Grid.InBounds(box.Pos) {
			err = fmt.Errorf("%w: box %v outside grid at %v", ErrDesync, h, box.Pos)
			return
		}
		if got := b.Grid.EntityAt(box.Pos); got != h {
			err = fmt.Errorf("%w: cell %v holds %v, box %v claims it", ErrDesync, box.Pos, got, h)
		}
	})
	if err != nil {
		return err
	}

	occupied := 0
	b.Grid.ForEachCell(func(p world.PositionIndex, c world.Cell) {
		if err != nil || c.IsEmpty() {
			return
		}
		occupied++
		box, getErr := b.Boxes.Get(c.Entity)
		if getErr != nil {
			err = fmt.Errorf("%w: cell %v: %v", ErrDesync, p, getErr)
			return
		}
		if box.Pos != p {
			err = fmt.Errorf("%w: cell %v holds box at %v", ErrDesync, p, box.Pos)
		}
	})
	if err != nil {
		return err
	}
	if occupied != b.Boxes.Len() {
		return fmt.Errorf("%w: %d occupied cells for %d boxes", ErrDesync, occupied, b.Boxes.Len())
	}
	return nil
}
