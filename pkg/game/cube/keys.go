package cube

import "rollcube/pkg/engine/world"

// Key is a camera-relative movement key
type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyBack
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "Forward"
	case KeyBack:
		return "Back"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	default:
		return "None"
	}
}

// moveTable maps (facing, key) to the world direction of the step
var moveTable = map[world.Direction]map[Key]world.Direction{
	world.North: {
		KeyForward: world.North,
		KeyBack:    world.South,
		KeyLeft:    world.West,
		KeyRight:   world.East,
	},
	world.East: {
		KeyForward: world.East,
		KeyBack:    world.West,
		KeyLeft:    world.North,
		KeyRight:   world.South,
	},
	world.South: {
		KeyForward: world.South,
		KeyBack:    world.North,
		KeyLeft:    world.East,
		KeyRight:   world.West,
	},
	world.West: {
		KeyForward: world.West,
		KeyBack:    world.East,
		KeyLeft:    world.South,
		KeyRight:   world.North,
	},
}

// StepFor resolves a key pressed while facing to a world direction.
// It returns false for KeyNone or an invalid facing.
func StepFor(facing world.Direction, key Key) (world.Direction, bool) {
	d, ok := moveTable[facing][key]
	return d, ok
}
