package levels

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register decoder
	"io"

	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
)

// Pixel colours of the image format. Any other colour is floor.
var (
	ColorWall        = color.RGBA{0, 0, 0, 255}
	ColorObstacle    = color.RGBA{128, 128, 128, 255}
	ColorPushBox     = color.RGBA{255, 0, 0, 255}
	ColorPullBox     = color.RGBA{0, 0, 255, 255}
	ColorPushPullBox = color.RGBA{255, 0, 255, 255}
	ColorPlayer      = color.RGBA{0, 255, 0, 255}
)

var colorKinds = map[color.RGBA]entities.Kind{
	ColorWall:        entities.KindWall,
	ColorObstacle:    entities.KindObstacle,
	ColorPushBox:     entities.KindPushBox,
	ColorPullBox:     entities.KindPullBox,
	ColorPushPullBox: entities.KindPushPullBox,
}

// DecodeImage decodes a level from a pixel map, one pixel per cell
func DecodeImage(name string, r io.Reader) (Level, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Level{}, fmt.Errorf("level %q: decode image: %w", name, err)
	}

	bounds := img.Bounds()
	lvl := Level{Name: name, Width: bounds.Dx(), Height: bounds.Dy()}
	if lvl.Width == 0 || lvl.Height == 0 {
		return Level{}, fmt.Errorf("level %q: %w", name, ErrEmpty)
	}

	found := false
	for z := 0; z < lvl.Height; z++ {
		for x := 0; x < lvl.Width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+z)).(color.RGBA)
			p := world.Pos(x, z)
			if c == ColorPlayer {
				if found {
					return Level{}, fmt.Errorf("level %q at %v: %w", name, p, ErrDuplicatePlayer)
				}
				lvl.Start = p
				found = true
				continue
			}
			if kind, ok := colorKinds[c]; ok {
				lvl.Spawns = append(lvl.Spawns, Spawn{Pos: p, Kind: kind})
			}
		}
	}

	if !found {
		return Level{}, fmt.Errorf("level %q: %w", name, ErrNoPlayer)
	}
	return lvl, nil
}
