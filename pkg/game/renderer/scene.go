package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zyedidia/generic/mapset"

	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/cube"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/i18n"
	"rollcube/pkg/game/movement"
	"rollcube/pkg/game/state"
)

// Sprite is one box as it should appear this frame
type Sprite struct {
	Handle   world.Handle
	Kind     entities.Kind
	Cell     world.PositionIndex
	Offset   mgl32.Vec3 // world-space displacement from Cell while in flight
	InFlight bool
	Style    Style
}

// Center returns the sprite's world-space centre
func (s Sprite) Center() mgl32.Vec3 {
	return cube.CellCenter(s.Cell).Add(s.Offset)
}

// NearestCell is the grid cell closest to where the sprite is drawn
func (s Sprite) NearestCell() world.PositionIndex {
	return nearestCell(s.Center())
}

// CubeSprite is the cube as it should appear this frame
type CubeSprite struct {
	Center   mgl32.Vec3
	Rotation mgl32.Quat
	Facing   world.Direction
	State    cube.State
	Moving   entities.Kind // kind being pushed or pulled, KindNone otherwise
	Style    Style
}

// NearestCell is the grid cell closest to where the cube is drawn
func (c CubeSprite) NearestCell() world.PositionIndex {
	return nearestCell(c.Center)
}

// Scene is a renderer-neutral snapshot of a game frame
type Scene struct {
	Width, Height int

	Boxes []Sprite
	Cube  CubeSprite

	Title    string
	Status   string
	Brush    string
	Messages []string
}

func nearestCell(center mgl32.Vec3) world.PositionIndex {
	return world.PositionIndex{
		X: int(math.Floor(float64(center.X()))),
		Z: int(math.Floor(float64(center.Z()))),
	}
}

// inFlight returns the handles the cube's current action is carrying
func inFlight(c *cube.Cube) mapset.Set[world.Handle] {
	set := mapset.New[world.Handle]()
	p := c.Plan()
	switch {
	case c.State == cube.Pushing && p.Outcome == movement.Push:
		for _, h := range p.Chain {
			set.Put(h)
		}
	case c.State == cube.Pulling && p.Outcome == movement.Pull:
		set.Put(p.Pulled)
	}
	return set
}

// BuildScene snapshots g for drawing. Boxes hidden by the current action are
// drawn as proxies that slide along with the cube.
func BuildScene(g *state.Game) Scene {
	s := Scene{
		Brush:    i18n.T("BRUSH", g.EditKind),
		Messages: append([]string(nil), g.Messages...),
	}
	// nothing to draw until a level is loaded
	if g.Cube == nil || g.Board.Grid == nil || g.Board.Boxes == nil {
		return s
	}
	if len(g.Pack.Levels) > 0 {
		s.Title = i18n.T("LEVEL_LOADED", g.Level+1, len(g.Pack.Levels), g.CurrentLevel().Name)
	}
	s.Width = g.Board.Grid.Width()
	s.Height = g.Board.Grid.Height()
	s.Boxes = make([]Sprite, 0, g.Board.Boxes.Len())

	carried := inFlight(g.Cube)
	slide := g.Cube.SlideOffset()

	g.Board.Boxes.Each(func(h world.Handle, b *entities.Box) {
		sp := Sprite{Handle: h, Kind: b.Kind, Cell: b.Pos, Style: StyleForKind(b.Kind)}
		if b.Hidden {
			if !carried.Has(h) {
				return
			}
			sp.InFlight = true
			sp.Offset = slide
		}
		s.Boxes = append(s.Boxes, sp)
	})

	c := g.Cube
	moving := entities.KindNone
	switch c.State {
	case cube.Pushing:
		moving = c.MovingBox
	case cube.Pulling:
		moving = c.PullingBox
	}
	s.Cube = CubeSprite{
		Center:   c.Center(),
		Rotation: c.Rotation(),
		Facing:   c.Facing,
		State:    c.State,
		Moving:   moving,
		Style:    StyleForCube(c.State),
	}

	s.Status = i18n.T("STATUS", g.Moves, g.Pushes, g.Pulls) + "  " +
		i18n.T("FACING", i18n.T(c.Facing.String())) + "  " +
		i18n.T(c.State.String())
	return s
}
