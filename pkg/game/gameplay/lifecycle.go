// Package gameplay provides core game logic: level lifecycle, input intents
// and the per-frame tick.
package gameplay

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"rollcube/pkg/engine/logger"
	"rollcube/pkg/game/audio"
	"rollcube/pkg/game/config"
	"rollcube/pkg/game/cube"
	"rollcube/pkg/game/i18n"
	"rollcube/pkg/game/levels"
	"rollcube/pkg/game/state"
)

// BuildGame creates a new game over pack and loads the level at levelIndex
func BuildGame(pack levels.Pack, levelIndex int, cfg *config.Config, sounds audio.Player) (*state.Game, error) {
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("level pack %q has no levels", pack.Name)
	}
	g := state.NewGame(pack, cfg, sounds)
	if err := LoadLevel(g, levelIndex); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadLevel builds a fresh board for level index and puts the cube on its start.
// On error the current level stays loaded.
func LoadLevel(g *state.Game, index int) error {
	if index < 0 || index >= len(g.Pack.Levels) {
		return fmt.Errorf("level %d out of range 1..%d", index+1, len(g.Pack.Levels))
	}

	lvl := g.Pack.Levels[index]
	board, start, err := lvl.Build(g.Resolver.Margin)
	if err != nil {
		return err
	}

	g.Board = board
	g.Level = index
	g.ResetCounters()

	if g.Cube == nil {
		g.Cube = cube.New(start, g.Resolver, g.Sounds, cubeSettings(g.Config))
		g.Cube.OnActionEnd = func(s cube.State) { countAction(g, s) }
	} else {
		g.Cube.Reset(start)
	}

	logger.Log.WithFields(logrus.Fields{
		"level": index + 1,
		"name":  lvl.Name,
		"boxes": board.Boxes.Len(),
	}).Info("Level loaded")

	g.ClearMessages()
	logMessage(g, i18n.T("LEVEL_LOADED", index+1, len(g.Pack.Levels), lvl.Name))
	return nil
}

func cubeSettings(cfg *config.Config) cube.Settings {
	return cube.Settings{
		AnimationSpeed:      cfg.AnimationSpeed,
		FastRepeatSpeedStep: cfg.FastRepeatSpeedStep,
		MaxAnimationSpeed:   cfg.MaxAnimationSpeed,
	}
}

// ResetLevel rebuilds the current level from its layout
func ResetLevel(g *state.Game) {
	if err := LoadLevel(g, g.Level); err != nil {
		logMessage(g, i18n.T("LEVEL_LOAD_FAILED", err))
		return
	}
	logMessage(g, i18n.T("LEVEL_RESET"))
}

// NextLevel loads the following level, wrapping to the first
func NextLevel(g *state.Game) {
	switchLevel(g, (g.Level+1)%len(g.Pack.Levels))
}

// PrevLevel loads the preceding level, wrapping to the last
func PrevLevel(g *state.Game) {
	n := len(g.Pack.Levels)
	switchLevel(g, (g.Level+n-1)%n)
}

func switchLevel(g *state.Game, index int) {
	if err := LoadLevel(g, index); err != nil {
		logger.Log.WithError(err).Warn("Level switch failed")
		logMessage(g, i18n.T("LEVEL_LOAD_FAILED", err))
	}
}

// logMessage adds a message to the game's message log
func logMessage(g *state.Game, msg string) {
	g.AddMessage(msg)
}
