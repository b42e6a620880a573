package movement

import (
	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
)

// ScanOutcome is the result of looking along the push direction.
// A blocked scan carries no chain.
type ScanOutcome struct {
	Blocked bool
	Chain   []world.Handle // pushed boxes, nearest first
}

// Clear reports an unobstructed step with nothing to push
func (o ScanOutcome) Clear() bool {
	return !o.Blocked && len(o.Chain) == 0
}

// ScanPush walks from start along step. Pushable boxes extend the chain; the
// first empty cell ends it. Anything else, including running out of the
// playable area before an empty cell is found, blocks the whole push.
func ScanPush(b Board, start, step world.PositionIndex, margin int) ScanOutcome {
	var chain []world.Handle
	for p := start; ; p = p.Add(step) {
		if !b.Grid.InPlayable(p, margin) {
			return ScanOutcome{Blocked: true}
		}
		h := b.Grid.EntityAt(p)
		if h == world.NoHandle {
			return ScanOutcome{Chain: chain}
		}
		if !b.Boxes.MustGet(h).Kind.Pushable() {
			return ScanOutcome{Blocked: true}
		}
		chain = append(chain, h)
	}
}

// PullCandidate returns the box two cells behind from if it is pullable and the
// cell between it and the cube is empty for it to land on.
func PullCandidate(b Board, from, step world.PositionIndex) (world.Handle, entities.Kind, bool) {
	back := step.Scale(-1)
	if _, _, occupied := b.BoxAt(from.Add(back)); occupied {
		return world.NoHandle, entities.KindNone, false
	}
	h, box, ok := b.BoxAt(from.Add(back.Scale(2)))
	if !ok || !box.Kind.Pullable() {
		return world.NoHandle, entities.KindNone, false
	}
	return h, box.Kind, true
}
