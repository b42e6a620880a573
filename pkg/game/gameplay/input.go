package gameplay

import (
	"github.com/sirupsen/logrus"

	engineinput "rollcube/pkg/engine/input"
	"rollcube/pkg/engine/logger"
	"rollcube/pkg/game/cube"
	"rollcube/pkg/game/devtools"
	"rollcube/pkg/game/i18n"
	"rollcube/pkg/game/state"
)

// movementKeys maps movement actions to camera-relative cube keys
var movementKeys = map[engineinput.Action]cube.Key{
	engineinput.ActionMoveForward: cube.KeyForward,
	engineinput.ActionMoveBack:    cube.KeyBack,
	engineinput.ActionMoveLeft:    cube.KeyLeft,
	engineinput.ActionMoveRight:   cube.KeyRight,
}

// ProcessIntent handles a high-level input intent from the tiered input system.
func ProcessIntent(g *state.Game, intent engineinput.Intent) {
	if g.Cube == nil {
		return
	}

	if key, ok := movementKeys[intent.Action]; ok {
		if intent.Fast && g.Cube.State.Animating() {
			// a held fast key repeats by itself when the move ends
			g.Cube.Hold(key, true)
			return
		}
		g.Cube.CheckMovement(g.Board, key)
		return
	}

	switch intent.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionCameraLeft:
		g.Cube.RotateCamera(-1)
		logMessage(g, i18n.T("FACING", i18n.T(g.Cube.Facing.String())))

	case engineinput.ActionCameraRight:
		g.Cube.RotateCamera(1)
		logMessage(g, i18n.T("FACING", i18n.T(g.Cube.Facing.String())))

	case engineinput.ActionResetLevel:
		ResetLevel(g)

	case engineinput.ActionNextLevel:
		NextLevel(g)

	case engineinput.ActionPrevLevel:
		PrevLevel(g)

	case engineinput.ActionEditPlace:
		PlaceInFront(g)

	case engineinput.ActionEditRemove:
		RemoveInFront(g)

	case engineinput.ActionEditCycle:
		CycleEditKind(g)

	case engineinput.ActionDebugMapDump:
		path, err := devtools.DumpMapToFile(g)
		if err != nil {
			logMessage(g, i18n.T("MAP_DUMP_FAILED", err))
		} else {
			logMessage(g, i18n.T("MAP_DUMPED", path))
		}

	case engineinput.ActionQuit:
		g.Quit = true

	default:
		logger.Log.WithFields(logrus.Fields{
			"action": engineinput.ActionName(intent.Action),
		}).Debug("Intent not handled by gameplay")
	}
}

// SetHeld records which movement action is held down, for fast repeat.
// Any non-movement action releases the hold.
func SetHeld(g *state.Game, intent engineinput.Intent) {
	if g.Cube == nil {
		return
	}
	key, ok := movementKeys[intent.Action]
	if !ok {
		g.Cube.Hold(cube.KeyNone, false)
		return
	}
	g.Cube.Hold(key, intent.Fast)
}
