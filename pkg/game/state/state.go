// Package state holds the state of one play session.
package state

import (
	"rollcube/pkg/game/audio"
	"rollcube/pkg/game/config"
	"rollcube/pkg/game/cube"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/levels"
	"rollcube/pkg/game/movement"
)

// Game bundles the loaded level, the cube and the session counters
type Game struct {
	Board    movement.Board
	Cube     *cube.Cube
	Resolver *movement.Resolver

	Pack  levels.Pack
	Level int // index into Pack.Levels

	Messages []string

	Moves  int
	Pushes int
	Pulls  int

	EditKind entities.Kind

	Config *config.Config
	Sounds audio.Player

	Quit bool
}

// NewGame creates a game over pack with no level loaded yet
func NewGame(pack levels.Pack, cfg *config.Config, sounds audio.Player) *Game {
	if cfg == nil {
		cfg = config.Default()
	}
	if sounds == nil {
		sounds = audio.NopPlayer{}
	}
	return &Game{
		Pack:     pack,
		Messages: make([]string, 0),
		EditKind: entities.KindPushBox,
		Config:   cfg,
		Sounds:   sounds,
		Resolver: movement.NewResolver(cfg.BoundaryMargin),
	}
}

// CurrentLevel returns the layout being played
func (g *Game) CurrentLevel() levels.Level {
	return g.Pack.Levels[g.Level]
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// ResetCounters zeroes the per-level move counters
func (g *Game) ResetCounters() {
	g.Moves = 0
	g.Pushes = 0
	g.Pulls = 0
}
