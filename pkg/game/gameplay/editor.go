package gameplay

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"rollcube/pkg/engine/logger"
	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/cube"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/i18n"
	"rollcube/pkg/game/state"
)

var (
	// ErrBusy is returned when editing while the cube is mid-action
	ErrBusy = errors.New("cube is moving")
	// ErrOnCube is returned when editing the cube's own cell
	ErrOnCube = errors.New("cell holds the cube")
)

// AddBox places a box of kind at p
func AddBox(g *state.Game, p world.PositionIndex, kind entities.Kind) error {
	if err := checkEditable(g, p); err != nil {
		return err
	}
	h, err := g.Board.Place(p, kind)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"pos":    p.String(),
		"kind":   kind.String(),
		"handle": h.String(),
	}).Debug("Box added")
	return nil
}

// RemoveBox deletes the box at p. The pool moves its last box into the freed
// dense slot; handles in the grid stay valid so no cell needs re-pointing.
func RemoveBox(g *state.Game, p world.PositionIndex) (entities.Box, error) {
	if err := checkEditable(g, p); err != nil {
		return entities.Box{}, err
	}
	box, err := g.Board.Remove(p)
	if err != nil {
		return entities.Box{}, err
	}
	logger.Log.WithFields(logrus.Fields{
		"pos":  p.String(),
		"kind": box.Kind.String(),
	}).Debug("Box removed")
	return box, nil
}

func checkEditable(g *state.Game, p world.PositionIndex) error {
	if g.Cube.State.Animating() {
		return ErrBusy
	}
	if p == g.Cube.Pos {
		return ErrOnCube
	}
	return nil
}

// EditTarget returns the cell in front of the cube
func EditTarget(g *state.Game) world.PositionIndex {
	dir, _ := cube.StepFor(g.Cube.Facing, cube.KeyForward)
	return g.Cube.Pos.Add(dir.Step())
}

// PlaceInFront adds a box of the current edit kind in front of the cube
func PlaceInFront(g *state.Game) {
	p := EditTarget(g)
	if err := AddBox(g, p, g.EditKind); err != nil {
		reportEditError(g, err)
		return
	}
	logMessage(g, i18n.T("EDIT_PLACED", g.EditKind, p))
}

// RemoveInFront removes the box in front of the cube
func RemoveInFront(g *state.Game) {
	p := EditTarget(g)
	box, err := RemoveBox(g, p)
	if err != nil {
		reportEditError(g, err)
		return
	}
	logMessage(g, i18n.T("EDIT_REMOVED", box.Kind, p))
}

// CycleEditKind selects the next kind the editor places
func CycleEditKind(g *state.Game) {
	kinds := entities.AllKinds()
	for i, k := range kinds {
		if k == g.EditKind {
			g.EditKind = kinds[(i+1)%len(kinds)]
			return
		}
	}
	g.EditKind = kinds[0]
}

func reportEditError(g *state.Game, err error) {
	switch {
	case errors.Is(err, ErrBusy):
		logMessage(g, i18n.T("EDIT_BUSY"))
	case errors.Is(err, ErrOnCube):
		logMessage(g, i18n.T("EDIT_ON_CUBE"))
	default:
		logMessage(g, i18n.T("EDIT_FAILED", fmt.Sprint(err)))
	}
}
