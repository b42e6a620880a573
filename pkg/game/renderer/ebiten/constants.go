// Package ebiten draws the puzzle top-down in a window with Ebiten.
package ebiten

import (
	"image/color"

	"rollcube/pkg/game/renderer"
)

// Color palette
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorGridLine      = color.RGBA{40, 40, 60, 255}    // Faint cell borders
	colorText          = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle        = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorAction        = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorPanel         = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorCubeEdge      = color.RGBA{10, 10, 20, 255}
	colorFacing        = color.RGBA{255, 255, 255, 200}
)

// styleColors maps scene styles to fill colours
var styleColors = map[renderer.Style]color.RGBA{
	renderer.StyleFloor:       {60, 60, 80, 255},
	renderer.StyleWall:        {180, 180, 200, 255}, // Light gray-blue
	renderer.StyleObstacle:    {255, 80, 80, 255},   // Bright red
	renderer.StylePushBox:     {255, 200, 100, 255}, // Orange
	renderer.StylePullBox:     {100, 150, 255, 255}, // Bright blue
	renderer.StylePushPullBox: {220, 170, 255, 255}, // Bright purple
	renderer.StyleCube:        {0, 220, 0, 255},     // Bright green
	renderer.StyleCubePush:    {255, 220, 100, 255},
	renderer.StyleCubePull:    {120, 200, 255, 255},
	renderer.StyleCubeFail:    {255, 100, 100, 255},
	renderer.StyleSubtle:      {120, 130, 180, 255},
	renderer.StyleStatus:      {180, 150, 250, 255},
}

// Tile size constraints
const (
	minTileSize     = 12
	maxTileSize     = 144
	tileSizeStep    = 4
	defaultTileSize = 32
	baseFontSize    = 16.0 // Base font size at default tile size
)

// ticksPerSecond is the fixed Ebiten update rate; one tick advances the
// animation by 1/ticksPerSecond seconds
const ticksPerSecond = 60

const (
	windowWidth  = 960
	windowHeight = 720
	mapMargin    = 20
)
