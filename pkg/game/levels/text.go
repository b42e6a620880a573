package levels

import (
	"fmt"
	"strings"

	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/movement"
)

// Map symbols of the text format
const (
	SymbolFloor       = '.'
	SymbolWall        = '#'
	SymbolObstacle    = '%'
	SymbolPushBox     = 'b'
	SymbolPullBox     = 'p'
	SymbolPushPullBox = 'x'
	SymbolPlayer      = '@'
)

var symbolKinds = map[rune]entities.Kind{
	SymbolWall:        entities.KindWall,
	SymbolObstacle:    entities.KindObstacle,
	SymbolPushBox:     entities.KindPushBox,
	SymbolPullBox:     entities.KindPullBox,
	SymbolPushPullBox: entities.KindPushPullBox,
}

// Symbol returns the text symbol of kind
func Symbol(kind entities.Kind) rune {
	for r, k := range symbolKinds {
		if k == kind {
			return r
		}
	}
	return SymbolFloor
}

// ParseText decodes a level from text rows. Row i is z = i and column j is x = j.
// Short rows are padded with floor.
func ParseText(name string, rows []string) (Level, error) {
	lvl := Level{Name: name, Height: len(rows)}
	found := false

	for z, row := range rows {
		x := 0
		for _, r := range row {
			p := world.Pos(x, z)
			switch r {
			case SymbolFloor, ' ':
			case SymbolPlayer:
				if found {
					return Level{}, fmt.Errorf("level %q at %v: %w", name, p, ErrDuplicatePlayer)
				}
				lvl.Start = p
				found = true
			default:
				kind, ok := symbolKinds[r]
				if !ok {
					return Level{}, fmt.Errorf("level %q at %v: %w %q", name, p, ErrUnknownSymbol, r)
				}
				lvl.Spawns = append(lvl.Spawns, Spawn{Pos: p, Kind: kind})
			}
			x++
		}
		lvl.Width = max(lvl.Width, x)
	}

	if lvl.Width == 0 {
		return Level{}, fmt.Errorf("level %q: %w", name, ErrEmpty)
	}
	if !found {
		return Level{}, fmt.Errorf("level %q: %w", name, ErrNoPlayer)
	}
	return lvl, nil
}

// FormatRows renders a board and player position back into text rows
func FormatRows(b movement.Board, player world.PositionIndex) []string {
	rows := make([]string, b.Grid.Height())
	var sb strings.Builder
	for z := range rows {
		sb.Reset()
		for x := 0; x < b.Grid.Width(); x++ {
			p := world.Pos(x, z)
			if p == player {
				sb.WriteRune(SymbolPlayer)
				continue
			}
			if _, box, ok := b.BoxAt(p); ok {
				sb.WriteRune(Symbol(box.Kind))
				continue
			}
			sb.WriteRune(SymbolFloor)
		}
		rows[z] = sb.String()
	}
	return rows
}
