package world

import "fmt"

// PositionIndex is an integer grid coordinate. X runs along the grid width and
// Z along its height, matching the ground plane of the 3D scene.
type PositionIndex struct {
	X int
	Z int
}

// Pos is shorthand for building a PositionIndex
func Pos(x, z int) PositionIndex {
	return PositionIndex{X: x, Z: z}
}

// Add returns p + o
func (p PositionIndex) Add(o PositionIndex) PositionIndex {
	return PositionIndex{X: p.X + o.X, Z: p.Z + o.Z}
}

// Sub returns p - o
func (p PositionIndex) Sub(o PositionIndex) PositionIndex {
	return PositionIndex{X: p.X - o.X, Z: p.Z - o.Z}
}

// Scale returns p stepped n times, used to walk n cells in a direction
func (p PositionIndex) Scale(n int) PositionIndex {
	return PositionIndex{X: p.X * n, Z: p.Z * n}
}

// IsZero returns true for the (0,0) step
func (p PositionIndex) IsZero() bool {
	return p.X == 0 && p.Z == 0
}

func (p PositionIndex) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Z)
}
