package world

// Direction represents a cardinal direction on the ground plane
type Direction int

// Direction constants, clockwise when seen from above
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Clockwise returns the direction a quarter turn clockwise from d
func (d Direction) Clockwise() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 1) % 4
}

// CounterClockwise returns the direction a quarter turn counter-clockwise from d
func (d Direction) CounterClockwise() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 3) % 4
}

// Step returns the unit grid step for this direction.
// North is -Z, East is +X.
func (d Direction) Step() PositionIndex {
	switch d {
	case North:
		return PositionIndex{X: 0, Z: -1}
	case East:
		return PositionIndex{X: 1, Z: 0}
	case South:
		return PositionIndex{X: 0, Z: 1}
	case West:
		return PositionIndex{X: -1, Z: 0}
	default:
		return PositionIndex{}
	}
}

// DirectionOf returns the direction whose Step equals step, or false for non-cardinal steps
func DirectionOf(step PositionIndex) (Direction, bool) {
	for _, d := range AllDirections() {
		if d.Step() == step {
			return d, true
		}
	}
	return North, false
}
