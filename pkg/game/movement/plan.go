package movement

import (
	"fmt"

	"rollcube/pkg/engine/world"
)

// Begin marks the boxes the plan moves as in flight. Plans that do not move
// boxes leave the board untouched.
func (p Plan) Begin(b Board) {
	for _, h := range p.movedBoxes() {
		b.Boxes.MustGet(h).Hidden = true
	}
}

// Abort makes in-flight boxes visible again at their old cells
func (p Plan) Abort(b Board) {
	for _, h := range p.movedBoxes() {
		if box, err := b.Boxes.Get(h); err == nil {
			box.Hidden = false
		}
	}
}

// Commit moves every box of the plan one step and shows it again.
// Pushed boxes move farthest first so each lands on a cell already vacated.
func (p Plan) Commit(b Board) error {
	boxes := p.movedBoxes()
	for i := len(boxes) - 1; i >= 0; i-- {
		if err := shiftBox(b, boxes[i], p.Step); err != nil {
			return fmt.Errorf("commit %v: %w", p.Outcome, err)
		}
	}
	return nil
}

func (p Plan) movedBoxes() []world.Handle {
	switch p.Outcome {
	case Push:
		return p.Chain
	case Pull:
		return []world.Handle{p.Pulled}
	default:
		return nil
	}
}

func shiftBox(b Board, h world.Handle, step world.PositionIndex) error {
	box, err := b.Boxes.Get(h)
	if err != nil {
		return err
	}
	from := box.Pos
	to := from.Add(step)

	if !b.Grid.InBounds(to) {
		return fmt.Errorf("%w: box %v would leave the grid at %v", ErrDesync, h, to)
	}
	if got := b.Grid.EntityAt(from); got != h {
		return fmt.Errorf("%w: box %v not recorded at %v", ErrDesync, h, from)
	}
	if !b.Grid.IsEmptyCell(to) {
		return fmt.Errorf("%w: box %v target %v occupied", ErrDesync, h, to)
	}

	b.Grid.MarkEmptyCell(from)
	b.Grid.MarkEntityInCell(to, h)
	box.Pos = to
	box.Hidden = false
	return nil
}
