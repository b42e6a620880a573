package world

import (
	"errors"
	"fmt"
)

// ErrInvalidIndex marks an access outside the grid. Grid operations panic with an
// error wrapping it: callers are expected to bounds-check before every access.
var ErrInvalidIndex = errors.New("grid index out of bounds")

// Grid is the occupancy map of a level with encapsulated cell storage
type Grid struct {
	cells  []Cell
	width  int
	height int
}

// NewGrid creates a new empty grid with the given dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Build(width, height)
	return g
}

// Build initializes the grid with the given dimensions, discarding any occupancy
func (g *Grid) Build(width, height int) {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.width = width
	g.height = height
	g.cells = make([]Cell, width*height)
}

// Width returns the number of cells along X
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of cells along Z
func (g *Grid) Height() int {
	return g.height
}

// InBounds checks if a position is within grid bounds
func (g *Grid) InBounds(p PositionIndex) bool {
	return p.X >= 0 && p.X < g.width && p.Z >= 0 && p.Z < g.height
}

// InPlayable checks if a position is inside the playable area, which is the grid
// inset by margin cells on every side. A margin of 0 is the whole grid.
func (g *Grid) InPlayable(p PositionIndex, margin int) bool {
	return p.X >= margin && p.X < g.width-margin && p.Z >= margin && p.Z < g.height-margin
}

func (g *Grid) index(p PositionIndex) int {
	if !g.InBounds(p) {
		panic(fmt.Errorf("%w: %v in %dx%d grid", ErrInvalidIndex, p, g.width, g.height))
	}
	return p.Z*g.width + p.X
}

// Cell returns a copy of the cell at p
func (g *Grid) Cell(p PositionIndex) Cell {
	return g.cells[g.index(p)]
}

// IsEmptyCell returns true if no entity occupies p
func (g *Grid) IsEmptyCell(p PositionIndex) bool {
	return g.cells[g.index(p)].IsEmpty()
}

// EntityAt returns the handle occupying p, or NoHandle if the cell is empty
func (g *Grid) EntityAt(p PositionIndex) Handle {
	return g.cells[g.index(p)].Entity
}

// MarkEmptyCell clears the cell at p
func (g *Grid) MarkEmptyCell(p PositionIndex) {
	g.cells[g.index(p)] = Cell{}
}

// MarkEntityInCell records h as the occupant of p
func (g *Grid) MarkEntityInCell(p PositionIndex, h Handle) {
	g.cells[g.index(p)] = Cell{Entity: h}
}

// OccupiedCount returns the number of non-empty cells
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(p PositionIndex, cell Cell)) {
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			fn(PositionIndex{X: x, Z: z}, g.cells[z*g.width+x])
		}
	}
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and occupancy
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if g.width <= 0 || g.height <= 0 {
		return "Grid has invalid dimensions"
	}

	if len(g.cells) != g.width*g.height {
		return "Grid cell storage does not match its dimensions"
	}

	return ""
}
