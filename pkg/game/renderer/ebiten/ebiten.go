package ebiten

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"rollcube/pkg/engine/logger"
	"rollcube/pkg/game/config"
	"rollcube/pkg/game/i18n"
	"rollcube/pkg/game/renderer"
	"rollcube/pkg/game/state"
)

// New creates a new Ebiten renderer using cfg for tile size and key repeat
func New(cfg *config.Config) *EbitenRenderer {
	if cfg == nil {
		cfg = config.Default()
	}
	tile := cfg.TileSize
	if tile < minTileSize || tile > maxTileSize {
		tile = defaultTileSize
	}
	return &EbitenRenderer{
		windowWidth:    windowWidth,
		windowHeight:   windowHeight,
		tileSize:       tile,
		cfg:            cfg,
		keyRepeatState: make(map[string]keyRepeatInfo),
	}
}

// Init loads fonts and configures the window
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return err
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(i18n.T("TITLE"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSecond)
	return nil
}

// RenderFrame captures a snapshot of g for the next Draw
func (e *EbitenRenderer) RenderFrame(g *state.Game) {
	e.sceneMutex.Lock()
	defer e.sceneMutex.Unlock()

	if g == nil || g.Cube == nil {
		e.sceneValid = false
		return
	}
	e.scene = renderer.BuildScene(g)
	e.sceneValid = true
}

// Run starts the Ebiten game loop and returns when the window closes or the
// player quits
func (e *EbitenRenderer) Run(g *state.Game) error {
	e.game = g
	e.RenderFrame(g)

	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("run ebiten: %w", err)
	}
	logger.Log.Info("Window closed")
	return nil
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
		e.invalidateFontCache()
	}
	return outsideWidth, outsideHeight
}
