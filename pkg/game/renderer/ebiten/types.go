package ebiten

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	engineinput "rollcube/pkg/engine/input"
	"rollcube/pkg/game/config"
	"rollcube/pkg/game/renderer"
	"rollcube/pkg/game/state"
)

// keyRepeatInfo tracks the repeat state for a key or button
type keyRepeatInfo struct {
	firstPressed int64 // Timestamp when first pressed (milliseconds)
	lastRepeat   int64 // Timestamp when last repeat event was sent (milliseconds)
}

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	// Window dimensions
	windowWidth  int
	windowHeight int

	// Tile size for rendering (adjustable with +/-)
	tileSize int

	// Font sources for text rendering
	monoFontSource *text.GoTextFaceSource
	sansFontSource *text.GoTextFaceSource

	// Cached font faces (recreated when tile size changes)
	cachedUIFontSize float64
	cachedSansFace   *text.GoTextFace
	cachedMonoFace   *text.GoTextFace

	cfg *config.Config

	// Current game state (set by Run)
	game *state.Game

	// Scene captured by RenderFrame for Draw
	scene      renderer.Scene
	sceneValid bool
	sceneMutex sync.RWMutex

	// Key repeat state per key code
	keyRepeatState      map[string]keyRepeatInfo
	keyRepeatStateMutex sync.Mutex

	// Intents gathered this tick, applied in order
	pending []engineinput.Intent

	windowOpenedLogged bool
}
