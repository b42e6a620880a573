// Package tui draws the puzzle in a colour terminal and reads raw key presses.
package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"

	"rollcube/pkg/engine/input"
	"rollcube/pkg/engine/logger"
	"rollcube/pkg/engine/terminal"
	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/cube"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/gameplay"
	"rollcube/pkg/game/i18n"
	"rollcube/pkg/game/renderer"
	"rollcube/pkg/game/state"
)

// Icon constants
const (
	IconFloor       = "·"
	IconWall        = "▒"
	IconObstacle    = "▓"
	IconPushBox     = "■"
	IconPullBox     = "□"
	IconPushPullBox = "▣"
	IconVoid        = " "
)

// cubeIcons point the way the camera faces
var cubeIcons = map[world.Direction]string{
	world.North: "▲",
	world.East:  "▶",
	world.South: "▼",
	world.West:  "◀",
}

var kindIcons = map[entities.Kind]string{
	entities.KindWall:        IconWall,
	entities.KindObstacle:    IconObstacle,
	entities.KindPushBox:     IconPushBox,
	entities.KindPullBox:     IconPullBox,
	entities.KindPushPullBox: IconPushPullBox,
}

// ErrNotInteractive is returned by Run when stdin or stdout is not a terminal
var ErrNotInteractive = errors.New("tui needs an interactive terminal")

const (
	framesPerSecond = 30

	// holdTimeout outlasts the usual terminal auto-repeat delay
	holdTimeout = 600 * time.Millisecond
)

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	in     io.Reader
	out    io.Writer
	styles map[renderer.Style]color.Style
}

// New creates a new TUI renderer writing to stdout
func New() *TUIRenderer {
	return &TUIRenderer{in: os.Stdin, out: os.Stdout}
}

// Init initializes the TUI renderer colours
func (t *TUIRenderer) Init() error {
	t.styles = map[renderer.Style]color.Style{
		renderer.StyleFloor:       {color.FgGray},
		renderer.StyleWall:        {color.FgGray, color.OpBold},
		renderer.StyleObstacle:    {color.FgRed},
		renderer.StylePushBox:     {color.FgYellow, color.OpBold},
		renderer.StylePullBox:     {color.FgCyan, color.OpBold},
		renderer.StylePushPullBox: {color.FgMagenta, color.OpBold},
		renderer.StyleCube:        {color.FgGreen, color.BgBlack, color.OpBold},
		renderer.StyleCubePush:    {color.FgYellow, color.BgBlack, color.OpBold},
		renderer.StyleCubePull:    {color.FgCyan, color.BgBlack, color.OpBold},
		renderer.StyleCubeFail:    {color.FgRed, color.BgBlack, color.OpBold},
		renderer.StyleSubtle:      {color.FgGray, color.OpBold},
		renderer.StyleStatus:      {color.FgMagenta},
	}
	return nil
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.Style) string {
	s, ok := t.styles[style]
	if !ok {
		return text
	}
	return s.Sprint(text)
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	scene := renderer.BuildScene(g)

	var sb strings.Builder
	terminal.Clear(&sb)
	t.writeFrame(&sb, scene)
	fmt.Fprint(t.out, sb.String())
}

// writeFrame lays the scene out as lines. Lines end in \r\n because the
// terminal stays in raw mode between key presses.
func (t *TUIRenderer) writeFrame(sb *strings.Builder, scene renderer.Scene) {
	width, _ := terminal.GetSize()
	indent := strings.Repeat(" ", max(0, (width-scene.Width)/2))

	line := func(s string) {
		sb.WriteString(s)
		sb.WriteString("\r\n")
	}

	line(t.StyleText(scene.Title, renderer.StyleStatus))
	line("")

	for _, row := range t.mapRows(scene) {
		line(indent + row)
	}

	line("")
	line(scene.Status)
	line(t.StyleText(scene.Brush, renderer.StyleSubtle))
	line(t.StyleText(i18n.T("HELP"), renderer.StyleSubtle))
	line("")
	for _, msg := range scene.Messages {
		line("- " + msg)
	}
}

// mapRows draws the grid. Boxes in flight are snapped to the nearest cell.
func (t *TUIRenderer) mapRows(scene renderer.Scene) []string {
	cells := make([][]string, scene.Height)
	for z := range cells {
		cells[z] = make([]string, scene.Width)
		for x := range cells[z] {
			cells[z][x] = t.StyleText(IconFloor, renderer.StyleFloor)
		}
	}

	put := func(p world.PositionIndex, s string) {
		if p.Z >= 0 && p.Z < scene.Height && p.X >= 0 && p.X < scene.Width {
			cells[p.Z][p.X] = s
		}
	}

	for _, sp := range scene.Boxes {
		icon, ok := kindIcons[sp.Kind]
		if !ok {
			icon = IconVoid
		}
		put(sp.NearestCell(), t.StyleText(icon, sp.Style))
	}
	if icon, ok := cubeIcons[scene.Cube.Facing]; ok && scene.Width > 0 {
		put(scene.Cube.NearestCell(), t.StyleText(icon, scene.Cube.Style))
	}

	rows := make([]string, len(cells))
	for z, row := range cells {
		rows[z] = strings.Join(row, "")
	}
	return rows
}

// readKeys forwards raw key presses from r until reading fails
func readKeys(r io.Reader, keys chan<- input.RawInput, errs chan<- error) {
	for {
		raw, err := input.ReadKey(r)
		if err != nil {
			errs <- err
			return
		}
		keys <- raw
	}
}

// Run drives the game from the keyboard until the player quits
func (t *TUIRenderer) Run(g *state.Game) error {
	if !terminal.IsInteractive() {
		return ErrNotInteractive
	}

	restore, err := terminal.MakeRaw()
	if err != nil {
		return err
	}
	defer restore()

	terminal.HideCursor(t.out)
	defer terminal.ShowCursor(t.out)

	keys := make(chan input.RawInput, 16)
	errs := make(chan error, 1)
	go readKeys(t.in, keys, errs)

	var lastFast time.Time

	ticker := time.NewTicker(time.Second / framesPerSecond)
	defer ticker.Stop()
	last := time.Now()

	t.RenderFrame(g)
	for !g.Quit {
		select {
		case raw := <-keys:
			intent := input.MapToIntent(input.NewDebouncedInput(raw))
			if intent.Fast {
				lastFast = time.Now()
			}
			gameplay.SetHeld(g, intent)
			gameplay.ProcessIntent(g, intent)
			t.RenderFrame(g)

		case err := <-errs:
			return fmt.Errorf("read key: %w", err)

		case now := <-ticker.C:
			delta := now.Sub(last).Seconds()
			last = now

			// terminals report no key releases, so a fast hold lapses once
			// auto-repeat stops arriving
			if !lastFast.IsZero() && now.Sub(lastFast) > holdTimeout {
				lastFast = time.Time{}
				gameplay.SetHeld(g, input.Intent{})
			}

			if g.Cube != nil && g.Cube.State != cube.Quiet {
				gameplay.Tick(g, delta)
				t.RenderFrame(g)
			}
		}
	}

	logger.Log.Info("Quit requested")
	return nil
}
