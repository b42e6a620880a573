package renderer

import (
	"rollcube/pkg/game/cube"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/state"
)

// Style is the palette slot a scene element is drawn with
type Style int

const (
	StyleNormal Style = iota
	StyleFloor
	StyleWall
	StyleObstacle
	StylePushBox
	StylePullBox
	StylePushPullBox
	StyleCube
	StyleCubePush
	StyleCubePull
	StyleCubeFail
	StyleSubtle
	StyleStatus
)

// StyleForKind returns the style boxes of kind k are drawn with
func StyleForKind(k entities.Kind) Style {
	switch k {
	case entities.KindWall:
		return StyleWall
	case entities.KindObstacle:
		return StyleObstacle
	case entities.KindPushBox:
		return StylePushBox
	case entities.KindPullBox:
		return StylePullBox
	case entities.KindPushPullBox:
		return StylePushPullBox
	default:
		return StyleNormal
	}
}

// StyleForCube tints the cube by what it is doing
func StyleForCube(s cube.State) Style {
	switch s {
	case cube.Pushing:
		return StyleCubePush
	case cube.Pulling:
		return StyleCubePull
	case cube.FailPush:
		return StyleCubeFail
	default:
		return StyleCube
	}
}

// Renderer defines the interface for game rendering backends
type Renderer interface {
	// Init prepares colours, windows and input devices
	Init() error

	// RenderFrame draws one frame of g
	RenderFrame(g *state.Game)

	// Run drives input, animation and drawing until the player quits
	Run(g *state.Game) error
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}
