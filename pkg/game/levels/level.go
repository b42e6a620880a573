// Package levels loads puzzle layouts and builds playable boards from them.
package levels

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"rollcube/pkg/engine/logger"
	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/movement"
)

var (
	ErrNoPlayer        = errors.New("level has no player start")
	ErrDuplicatePlayer = errors.New("level has more than one player start")
	ErrUnknownSymbol   = errors.New("unknown map symbol")
	ErrOverlap         = errors.New("two entities share a cell")
	ErrEmpty           = errors.New("level has no cells")
)

// Spawn is an entity placed when a level is built
type Spawn struct {
	Pos  world.PositionIndex
	Kind entities.Kind
}

// Level is a decoded layout: grid size, player start and the boxes to place
type Level struct {
	Name   string
	Width  int
	Height int
	Start  world.PositionIndex
	Spawns []Spawn
}

// Build creates a fresh board for the level. margin is the playable-area inset
// the player start must respect.
func (l Level) Build(margin int) (movement.Board, world.PositionIndex, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return movement.Board{}, world.PositionIndex{}, fmt.Errorf("level %q: %w", l.Name, ErrEmpty)
	}

	board := movement.NewBoard(l.Width, l.Height)
	if !board.Grid.InPlayable(l.Start, margin) {
		return movement.Board{}, world.PositionIndex{}, fmt.Errorf("level %q: player start %v outside playable area (margin %d)", l.Name, l.Start, margin)
	}

	seen := mapset.New[world.PositionIndex]()
	seen.Put(l.Start)
	for _, s := range l.Spawns {
		if seen.Has(s.Pos) {
			return movement.Board{}, world.PositionIndex{}, fmt.Errorf("level %q: %w at %v", l.Name, ErrOverlap, s.Pos)
		}
		seen.Put(s.Pos)
		if _, err := board.Place(s.Pos, s.Kind); err != nil {
			return movement.Board{}, world.PositionIndex{}, fmt.Errorf("level %q: %w", l.Name, err)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"level":  l.Name,
		"width":  l.Width,
		"height": l.Height,
		"boxes":  board.Boxes.Len(),
	}).Debug("Level built")

	return board, l.Start, nil
}

// Count returns how many spawns of kind the level has
func (l Level) Count(kind entities.Kind) int {
	n := 0
	for _, s := range l.Spawns {
		if s.Kind == kind {
			n++
		}
	}
	return n
}
