// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

// Cell represents a single slot of the occupancy grid.
// It is either empty or references exactly one pool entry.
type Cell struct {
	Entity Handle
}

// IsEmpty returns true if no entity occupies the cell
func (c Cell) IsEmpty() bool {
	return c.Entity == NoHandle
}
