// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/levels"
	"rollcube/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// Section headers of the dump
const (
	MapHeader      = "--- Map ---"
	EntitiesHeader = "--- Entities (dense order) ---"
)

// DumpMap writes a debug dump of the current level: metadata, legend, the
// map in level-pack text format and the box pool in dense order.
func DumpMap(g *state.Game, w io.Writer) error {
	if g.Board.Grid == nil || g.Cube == nil {
		return fmt.Errorf("no level loaded")
	}
	if len(g.Pack.Levels) == 0 {
		return fmt.Errorf("no level pack")
	}
	lvl := g.CurrentLevel()
	c := g.Cube

	// --- Metadata ---
	fmt.Fprintln(w, "=== MAP DUMP DEBUG (level layout, cube, boxes) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "pack: %q\n", g.Pack.Name)
	fmt.Fprintf(w, "level: %d\n", g.Level+1)
	fmt.Fprintf(w, "level_name: %q\n", lvl.Name)
	fmt.Fprintf(w, "grid_width: %d\n", g.Board.Grid.Width())
	fmt.Fprintf(w, "grid_height: %d\n", g.Board.Grid.Height())
	fmt.Fprintf(w, "coordinate_system: x,z (0-based, x=column, z=row)\n")
	fmt.Fprintf(w, "boundary_margin: %d\n", g.Resolver.Margin)
	fmt.Fprintf(w, "cube_cell: %d,%d\n", c.Pos.X, c.Pos.Z)
	fmt.Fprintf(w, "cube_facing: %s\n", c.Facing)
	fmt.Fprintf(w, "cube_state: %s\n", c.State)
	fmt.Fprintf(w, "push_boxes_count: %d\n", c.PushBoxesCount)
	fmt.Fprintf(w, "start_cell: %d,%d\n", lvl.Start.X, lvl.Start.Z)
	fmt.Fprintf(w, "moves: %d pushes: %d pulls: %d\n", g.Moves, g.Pushes, g.Pulls)
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintf(w, "%c = floor  %c = wall  %c = obstacle  %c = push box  %c = pull box  %c = push-pull box  %c = cube\n",
		levels.SymbolFloor, levels.SymbolWall, levels.SymbolObstacle,
		levels.SymbolPushBox, levels.SymbolPullBox, levels.SymbolPushPullBox, levels.SymbolPlayer)
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, MapHeader)
	for _, row := range levels.FormatRows(g.Board, c.Pos) {
		fmt.Fprintln(w, row)
	}
	fmt.Fprintln(w, "")

	// --- Entities ---
	fmt.Fprintln(w, EntitiesHeader)
	counts := make(map[entities.Kind]int)
	for i := 0; i < g.Board.Boxes.Len(); i++ {
		box := g.Board.Boxes.At(i)
		counts[box.Kind]++
		fmt.Fprintf(w, "  index: %d handle: %s kind: %s x: %d z: %d hidden: %v\n",
			i, g.Board.Boxes.HandleAt(i), box.Kind, box.Pos.X, box.Pos.Z, box.Hidden)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Totals ---")
	for _, k := range entities.AllKinds() {
		fmt.Fprintf(w, "%s: %d\n", k, counts[k])
	}

	if err := g.Board.Validate(); err != nil {
		fmt.Fprintf(w, "\nconsistency: %v\n", err)
	} else {
		fmt.Fprintln(w, "\nconsistency: ok")
	}
	return nil
}

// DumpMapToFile writes DumpMap output to map.txt in the working directory
// and returns its absolute path.
func DumpMapToFile(g *state.Game) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpMap(g, f); err != nil {
		return "", err
	}
	return absPath, nil
}

// ExtractMapRows returns the map rows of a dump produced by DumpMap
func ExtractMapRows(dump []string) []string {
	var rows []string
	in := false
	for _, line := range dump {
		switch {
		case line == MapHeader:
			in = true
		case in && line == "":
			return rows
		case in:
			rows = append(rows, line)
		}
	}
	return rows
}
