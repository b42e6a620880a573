// Package entities defines the objects that occupy the puzzle grid.
package entities

import "rollcube/pkg/engine/world"

// Kind is the type of a grid entity and decides how the cube may interact with it
type Kind int

const (
	// KindNone marks "no box"; it is never stored in a pool
	KindNone Kind = iota
	KindWall
	KindObstacle
	KindPushBox
	KindPullBox
	KindPushPullBox
)

// AllKinds returns every storable kind
func AllKinds() []Kind {
	return []Kind{KindWall, KindObstacle, KindPushBox, KindPullBox, KindPushPullBox}
}

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindWall:
		return "Wall"
	case KindObstacle:
		return "Obstacle"
	case KindPushBox:
		return "PushBox"
	case KindPullBox:
		return "PullBox"
	case KindPushPullBox:
		return "PushPullBox"
	default:
		return "Unknown"
	}
}

// IsValid returns true for kinds that may be stored in a pool
func (k Kind) IsValid() bool {
	return k >= KindWall && k <= KindPushPullBox
}

// Pushable returns true if the cube can push this kind
func (k Kind) Pushable() bool {
	return k == KindPushBox || k == KindPushPullBox
}

// Pullable returns true if the cube can pull this kind
func (k Kind) Pullable() bool {
	return k == KindPullBox || k == KindPushPullBox
}

// Static returns true for kinds that never move
func (k Kind) Static() bool {
	return k == KindWall || k == KindObstacle
}

// Box is a positioned grid entity.
// Hidden marks a box that is in flight: the cube draws it at an interpolated
// position instead of its grid cell.
type Box struct {
	Pos    world.PositionIndex
	Kind   Kind
	Hidden bool
}

// NewBox creates a visible box of the given kind
func NewBox(pos world.PositionIndex, kind Kind) Box {
	return Box{Pos: pos, Kind: kind}
}

// Pool is the entity store for one loaded level
type Pool = world.Pool[Box]

// NewPool creates an empty box pool
func NewPool(capacity int) *Pool {
	return world.NewPool[Box](capacity)
}
