package movement

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"rollcube/pkg/engine/logger"
	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
)

// Outcome is what a requested step resolves to
type Outcome int

const (
	// Blocked: out of bounds or an obstruction in the push direction. Nothing changes.
	Blocked Outcome = iota
	// Move: a plain roll into an empty cell
	Move
	// Push: the cube moves and shoves a chain of boxes one cell ahead
	Push
	// Pull: the cube moves and drags the box two cells behind it one cell along
	Pull
	// FailPush: a push was possible but a pullable box behind the cube conflicts with it
	FailPush
)

func (o Outcome) String() string {
	switch o {
	case Blocked:
		return "Blocked"
	case Move:
		return "Move"
	case Push:
		return "Push"
	case Pull:
		return "Pull"
	case FailPush:
		return "FailPush"
	default:
		return "Unknown"
	}
}

// Plan is the full set of changes a step will make, computed before anything
// is touched. Only Push and Pull plans ever mutate the board.
type Plan struct {
	Outcome Outcome
	From    world.PositionIndex
	To      world.PositionIndex // equals From unless the cube actually moves
	Step    world.PositionIndex

	Chain      []world.Handle // Push: boxes to shove, nearest first
	MovingKind entities.Kind  // Push: kind of the nearest pushed box

	Pulled     world.Handle // Pull: the dragged box; FailPush: the conflicting box
	PulledKind entities.Kind
}

// Moves reports whether the cube changes cell
func (p Plan) Moves() bool {
	return p.Outcome == Move || p.Outcome == Push || p.Outcome == Pull
}

// Resolver decides step outcomes against a Board
type Resolver struct {
	// Margin insets the playable area from the grid edge
	Margin int
	Log    logrus.FieldLogger
}

// NewResolver creates a resolver logging through the shared logger
func NewResolver(margin int) *Resolver {
	return &Resolver{Margin: margin, Log: logger.Log}
}

func (r *Resolver) log() logrus.FieldLogger {
	if r.Log == nil {
		return logger.Log
	}
	return r.Log
}

// Resolve computes the plan for a cube at from taking one cardinal step.
// It does not modify the board.
func (r *Resolver) Resolve(b Board, from, step world.PositionIndex) Plan {
	if _, ok := world.DirectionOf(step); !ok {
		panic(fmt.Sprintf("movement: non-cardinal step %v", step))
	}

	plan := Plan{Outcome: Blocked, From: from, To: from, Step: step}
	target := from.Add(step)

	moveLogger := r.log().WithFields(logrus.Fields{
		"component": "movement",
		"from":      from.String(),
		"step":      step.String(),
	})

	if !b.Grid.InPlayable(target, r.Margin) {
		moveLogger.WithField("reason", "bounds").Debug("Step blocked")
		return plan
	}

	scan := ScanPush(b, target, step, r.Margin)
	if scan.Blocked {
		moveLogger.WithField("reason", "obstacle").Debug("Step blocked")
		return plan
	}

	pulled, pulledKind, canPull := PullCandidate(b, from, step)

	switch {
	case scan.Clear() && canPull:
		plan.Outcome = Pull
		plan.To = target
		plan.Pulled = pulled
		plan.PulledKind = pulledKind
	case scan.Clear():
		plan.Outcome = Move
		plan.To = target
	case len(scan.Chain) > 0 && canPull:
		plan.Outcome = FailPush
		plan.Pulled = pulled
		plan.PulledKind = pulledKind
	case len(scan.Chain) > 0:
		plan.Outcome = Push
		plan.To = target
		plan.Chain = scan.Chain
		plan.MovingKind = b.Boxes.MustGet(scan.Chain[0]).Kind
	default:
		panic(fmt.Sprintf("movement: unreachable outcome for scan %+v", scan))
	}

	moveLogger.WithFields(logrus.Fields{
		"outcome": plan.Outcome.String(),
		"chain":   len(plan.Chain),
	}).Debug("Step resolved")

	return plan
}
