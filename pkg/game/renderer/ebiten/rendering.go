package ebiten

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/i18n"
	"rollcube/pkg/game/renderer"
)

// whiteSubImage is the source texture for filled polygons
var whiteSubImage *ebiten.Image

func initWhiteImage() {
	if whiteSubImage != nil {
		return
	}
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// face is one side of the unit cube in its own frame
type face struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}

var cubeFaces = []face{
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-.5, .5, -.5}, {.5, .5, -.5}, {.5, .5, .5}, {-.5, .5, .5}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-.5, -.5, -.5}, {-.5, -.5, .5}, {.5, -.5, .5}, {.5, -.5, -.5}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{.5, -.5, -.5}, {.5, -.5, .5}, {.5, .5, .5}, {.5, .5, -.5}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-.5, -.5, -.5}, {-.5, .5, -.5}, {-.5, .5, .5}, {-.5, -.5, .5}}},
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-.5, -.5, .5}, {-.5, .5, .5}, {.5, .5, .5}, {.5, -.5, .5}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-.5, -.5, -.5}, {.5, -.5, -.5}, {.5, .5, -.5}, {-.5, .5, -.5}}},
}

// projectedFace is a cube face seen from above, in grid units
type projectedFace struct {
	corners [4]mgl32.Vec2 // x, z
	light   float32       // upward component of the face normal, 0..1
}

// visibleFaces projects the faces of a cube at center with rotation rot that
// point upwards. Faces of a convex body seen head-on never overlap, so they
// can be drawn in any order.
func visibleFaces(center mgl32.Vec3, rot mgl32.Quat) []projectedFace {
	out := make([]projectedFace, 0, 3)
	for _, f := range cubeFaces {
		up := rot.Rotate(f.normal).Y()
		if up <= 0.01 {
			continue
		}
		var pf projectedFace
		pf.light = up
		for i, c := range f.corners {
			p := center.Add(rot.Rotate(c))
			pf.corners[i] = mgl32.Vec2{p.X(), p.Z()}
		}
		out = append(out, pf)
	}
	return out
}

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	e.sceneMutex.RLock()
	scene, valid := e.scene, e.sceneValid
	e.sceneMutex.RUnlock()

	if !valid || e.sansFontSource == nil {
		return
	}
	initWhiteImage()

	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	headerHeight := int(e.getUIFontSize()) + 20

	mapAreaWidth := scene.Width * e.tileSize
	mapAreaHeight := scene.Height * e.tileSize
	mapX := (screenWidth - mapAreaWidth) / 2
	mapY := headerHeight + mapMargin

	e.drawColoredText(screen, scene.Title, mapMargin, 10, colorAction)

	vector.DrawFilledRect(screen, float32(mapX-mapMargin), float32(mapY-mapMargin),
		float32(mapAreaWidth+mapMargin*2), float32(mapAreaHeight+mapMargin*2),
		colorMapBackground, false)
	e.drawGrid(screen, scene, mapX, mapY)

	for _, sp := range scene.Boxes {
		e.drawBox(screen, sp, mapX, mapY)
	}
	e.drawCube(screen, scene.Cube, mapX, mapY)

	e.drawStatus(screen, scene, screenWidth, screenHeight)

	if e.cfg.LogLevel == "debug" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), screenWidth-140, 4)
	}
}

// drawGrid outlines every cell of the board
func (e *EbitenRenderer) drawGrid(screen *ebiten.Image, scene renderer.Scene, mapX, mapY int) {
	ts := float32(e.tileSize)
	for x := 0; x <= scene.Width; x++ {
		fx := float32(mapX) + float32(x)*ts
		vector.StrokeLine(screen, fx, float32(mapY), fx, float32(mapY)+float32(scene.Height)*ts, 1, colorGridLine, false)
	}
	for z := 0; z <= scene.Height; z++ {
		fz := float32(mapY) + float32(z)*ts
		vector.StrokeLine(screen, float32(mapX), fz, float32(mapX)+float32(scene.Width)*ts, fz, 1, colorGridLine, false)
	}
}

// toScreen converts a grid-unit point to screen pixels
func (e *EbitenRenderer) toScreen(p mgl32.Vec2, mapX, mapY int) (float32, float32) {
	ts := float32(e.tileSize)
	return float32(mapX) + p.X()*ts, float32(mapY) + p.Y()*ts
}

// drawBox draws one box, offset by its slide while in flight
func (e *EbitenRenderer) drawBox(screen *ebiten.Image, sp renderer.Sprite, mapX, mapY int) {
	c := sp.Center()
	x, y := e.toScreen(mgl32.Vec2{c.X() - 0.5, c.Z() - 0.5}, mapX, mapY)
	ts := float32(e.tileSize)
	col := styleColors[sp.Style]

	switch sp.Kind {
	case entities.KindWall:
		vector.DrawFilledRect(screen, x, y, ts, ts, col, false)
	case entities.KindObstacle:
		inset := ts * 0.15
		vector.DrawFilledRect(screen, x+inset, y+inset, ts-2*inset, ts-2*inset, col, false)
		vector.StrokeLine(screen, x+inset, y+inset, x+ts-inset, y+ts-inset, 2, colorMapBackground, true)
		vector.StrokeLine(screen, x+ts-inset, y+inset, x+inset, y+ts-inset, 2, colorMapBackground, true)
	case entities.KindPullBox:
		inset := ts * 0.1
		vector.StrokeRect(screen, x+inset, y+inset, ts-2*inset, ts-2*inset, ts*0.12, col, true)
	default:
		inset := ts * 0.1
		vector.DrawFilledRect(screen, x+inset, y+inset, ts-2*inset, ts-2*inset, col, true)
		if sp.Kind == entities.KindPushPullBox {
			vector.StrokeRect(screen, x+ts*0.3, y+ts*0.3, ts*0.4, ts*0.4, 2, colorMapBackground, true)
		}
	}
}

// drawCube draws the upward faces of the cube, shaded by slope, and a tick
// pointing the way the camera faces
func (e *EbitenRenderer) drawCube(screen *ebiten.Image, c renderer.CubeSprite, mapX, mapY int) {
	base := styleColors[c.Style]
	for _, f := range visibleFaces(c.Center, c.Rotation) {
		var path vector.Path
		for i, p := range f.corners {
			x, y := e.toScreen(p, mapX, mapY)
			if i == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}
		path.Close()
		e.fillPath(screen, &path, shade(base, 0.45+0.55*f.light))

		for i := range f.corners {
			x0, y0 := e.toScreen(f.corners[i], mapX, mapY)
			x1, y1 := e.toScreen(f.corners[(i+1)%4], mapX, mapY)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, colorCubeEdge, true)
		}
	}

	step := c.Facing.Step()
	cx, cy := e.toScreen(mgl32.Vec2{c.Center.X(), c.Center.Z()}, mapX, mapY)
	ts := float32(e.tileSize)
	vector.StrokeLine(screen, cx, cy, cx+float32(step.X)*ts*0.35, cy+float32(step.Z)*ts*0.35, 3, colorFacing, true)
}

// fillPath fills path with a solid colour
func (e *EbitenRenderer) fillPath(screen *ebiten.Image, path *vector.Path, col color.RGBA) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(col.R) / 255
		vs[i].ColorG = float32(col.G) / 255
		vs[i].ColorB = float32(col.B) / 255
		vs[i].ColorA = float32(col.A) / 255
	}
	screen.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// shade scales the colour channels of c by k
func shade(c color.RGBA, k float32) color.RGBA {
	scale := func(v uint8) uint8 {
		f := float32(v) * k
		if f > 255 {
			f = 255
		}
		return uint8(f)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

// drawStatus draws the counters, brush, help line and recent messages in a
// panel along the bottom edge
func (e *EbitenRenderer) drawStatus(screen *ebiten.Image, scene renderer.Scene, screenWidth, screenHeight int) {
	lineHeight := int(e.getUIFontSize()) + 6
	lines := 3 + len(scene.Messages)
	panelHeight := lines*lineHeight + 16
	y := screenHeight - panelHeight

	vector.DrawFilledRect(screen, 0, float32(y), float32(screenWidth), float32(panelHeight), colorPanel, false)

	y += 8
	e.drawMonoText(screen, scene.Status, mapMargin, y, colorText)
	y += lineHeight
	e.drawColoredText(screen, scene.Brush, mapMargin, y, colorSubtle)
	y += lineHeight
	e.drawColoredText(screen, i18n.T("HELP"), mapMargin, y, colorSubtle)
	y += lineHeight
	for _, msg := range scene.Messages {
		e.drawColoredText(screen, msg, mapMargin, y, colorText)
		y += lineHeight
	}
}

// drawColoredText draws UI text with the sans-serif face
func (e *EbitenRenderer) drawColoredText(screen *ebiten.Image, str string, x, y int, col color.Color) {
	e.drawTextWithFace(screen, str, x, y, col, e.getSansFontFace())
}

// drawMonoText draws text with the monospace face so counters keep their width
func (e *EbitenRenderer) drawMonoText(screen *ebiten.Image, str string, x, y int, col color.Color) {
	e.drawTextWithFace(screen, str, x, y, col, e.getMonoFontFace())
}

func (e *EbitenRenderer) drawTextWithFace(screen *ebiten.Image, str string, x, y int, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}
