package gameplay

import (
	"rollcube/pkg/game/cube"
	"rollcube/pkg/game/state"
)

// Tick advances the cube's animation by delta seconds
func Tick(g *state.Game, delta float64) {
	if g.Cube == nil {
		return
	}
	g.Cube.Update(g.Board, delta)
}

// countAction updates the session counters for a finished action
func countAction(g *state.Game, s cube.State) {
	g.Moves++
	switch s {
	case cube.Pushing:
		g.Pushes++
	case cube.Pulling:
		g.Pulls++
	}
}
