// Package cube implements the player cube: key handling, the action state
// machine and the per-frame roll and slide animation.
package cube

import "rollcube/pkg/game/audio"

// State is the cube's current action
type State int

const (
	Quiet    State = iota // idle, accepts input
	Moving                // plain roll
	Pushing               // sliding while shoving a chain of boxes
	Pulling               // sliding while dragging one box
	FailPush              // push refused because of a box behind; accepts input
)

func (s State) String() string {
	switch s {
	case Quiet:
		return "Quiet"
	case Moving:
		return "Moving"
	case Pushing:
		return "Pushing"
	case Pulling:
		return "Pulling"
	case FailPush:
		return "FailPush"
	default:
		return "Unknown"
	}
}

// Animating reports whether the state runs an animation that must finish
// before the next key is resolved
func (s State) Animating() bool {
	return s == Moving || s == Pushing || s == Pulling
}

// CueForState returns the sound that accompanies entering s
func CueForState(s State) audio.Cue {
	switch s {
	case Quiet:
		return audio.CueCollision
	case Moving:
		return audio.CueRoll
	case Pushing:
		return audio.CuePush
	case Pulling:
		return audio.CuePull
	case FailPush:
		return audio.CuePushFail
	default:
		return audio.CueNone
	}
}
