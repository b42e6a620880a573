// Package generator builds sandbox levels procedurally: rooms carved out of
// solid wall by binary space partitioning, joined by corridors, with boxes
// scattered inside the rooms.
package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"rollcube/pkg/engine/logger"
	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/levels"
)

// ErrTooSmall is returned when the requested area cannot hold a single room
var ErrTooSmall = errors.New("area too small for a room")

// Options control the size and contents of generated levels
type Options struct {
	Width, Height int
	MinNodeSize   int // smallest BSP partition side
	BoxesPerRoom  int
	Seed          int64
}

// DefaultOptions returns the stock generator settings
func DefaultOptions() Options {
	return Options{Width: 20, Height: 12, MinNodeSize: 7, BoxesPerRoom: 2}
}

// Constants for BSP generation
const (
	minRoomSize = 3 // Minimum side of a room
	roomPadding = 1 // Wall between room and node edge
)

// boxKinds are the kinds scattered into rooms, weighted by repetition
var boxKinds = []entities.Kind{
	entities.KindPushBox, entities.KindPushBox,
	entities.KindPullBox, entities.KindPullBox,
	entities.KindPushPullBox,
	entities.KindObstacle,
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, z, width, height int
	left, right         *bspNode
	room                *bspRoom
}

// bspRoom represents a room within a BSP leaf node
type bspRoom struct {
	x, z, width, height int
}

func (r *bspRoom) center() world.PositionIndex {
	return world.Pos(r.x+r.width/2, r.z+r.height/2)
}

// BSPGenerator generates levels using Binary Space Partitioning
type BSPGenerator struct {
	opts  Options
	rng   *rand.Rand
	floor [][]bool // [z][x], true once carved
}

// New creates a generator for opts
func New(opts Options) *BSPGenerator {
	return &BSPGenerator{opts: opts, rng: rand.New(rand.NewSource(opts.Seed))}
}

// Generate creates one level. The same options and seed always give the
// same level.
func (g *BSPGenerator) Generate(name string) (levels.Level, error) {
	w, h := g.opts.Width, g.opts.Height
	minSize := max(g.opts.MinNodeSize, minRoomSize+roomPadding)
	if w-2 < minRoomSize+roomPadding || h-2 < minRoomSize+roomPadding {
		return levels.Level{}, fmt.Errorf("%w: %dx%d", ErrTooSmall, w, h)
	}

	g.floor = make([][]bool, h)
	for z := range g.floor {
		g.floor[z] = make([]bool, w)
	}

	// Leave a 1 cell border for perimeter walls
	root := &bspNode{x: 1, z: 1, width: w - 2, height: h - 2}
	g.splitBSP(root, minSize)
	g.createRooms(root)
	rooms := collectRooms(root)
	for _, r := range rooms {
		g.carveRoom(r)
	}
	g.connectRooms(root)

	start := rooms[g.rng.Intn(len(rooms))].center()
	lvl := levels.Level{Name: name, Width: w, Height: h, Start: start}

	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			if !g.floor[z][x] {
				lvl.Spawns = append(lvl.Spawns, levels.Spawn{Pos: world.Pos(x, z), Kind: entities.KindWall})
			}
		}
	}
	lvl.Spawns = append(lvl.Spawns, g.scatterBoxes(rooms, start)...)

	logger.Log.WithFields(logrus.Fields{
		"name":  name,
		"size":  fmt.Sprintf("%dx%d", w, h),
		"rooms": len(rooms),
		"seed":  g.opts.Seed,
	}).Debug("Level generated")
	return lvl, nil
}

// splitBSP recursively splits a BSP node
func (g *BSPGenerator) splitBSP(node *bspNode, minSize int) {
	canSplitX := node.width >= minSize*2
	canSplitZ := node.height >= minSize*2

	var splitZ bool
	switch {
	case canSplitX && canSplitZ:
		if node.width == node.height {
			splitZ = g.rng.Intn(2) == 0
		} else {
			splitZ = node.height > node.width
		}
	case canSplitX:
		splitZ = false
	case canSplitZ:
		splitZ = true
	default:
		return // Too small to split
	}

	if splitZ {
		at := minSize + g.rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, z: node.z, width: node.width, height: at}
		node.right = &bspNode{x: node.x, z: node.z + at, width: node.width, height: node.height - at}
	} else {
		at := minSize + g.rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, z: node.z, width: at, height: node.height}
		node.right = &bspNode{x: node.x + at, z: node.z, width: node.width - at, height: node.height}
	}

	g.splitBSP(node.left, minSize)
	g.splitBSP(node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func (g *BSPGenerator) createRooms(node *bspNode) {
	if node.left != nil {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	roomWidth := minRoomSize + g.rng.Intn(node.width-minRoomSize-roomPadding+1)
	roomHeight := minRoomSize + g.rng.Intn(node.height-minRoomSize-roomPadding+1)

	node.room = &bspRoom{
		x:      node.x + g.rng.Intn(node.width-roomWidth),
		z:      node.z + g.rng.Intn(node.height-roomHeight),
		width:  roomWidth,
		height: roomHeight,
	}
}

// carveRoom marks room cells as floor
func (g *BSPGenerator) carveRoom(r *bspRoom) {
	for z := r.z; z < r.z+r.height; z++ {
		for x := r.x; x < r.x+r.width; x++ {
			g.floor[z][x] = true
		}
	}
}

// connectRooms joins sibling subtrees with L-shaped corridors
func (g *BSPGenerator) connectRooms(node *bspNode) {
	if node.left == nil {
		return
	}

	a := g.getRoom(node.left).center()
	b := g.getRoom(node.right).center()
	if g.rng.Intn(2) == 0 {
		g.carveX(a.Z, a.X, b.X)
		g.carveZ(b.X, a.Z, b.Z)
	} else {
		g.carveZ(a.X, a.Z, b.Z)
		g.carveX(b.Z, a.X, b.X)
	}

	g.connectRooms(node.left)
	g.connectRooms(node.right)
}

// carveX carves a corridor along row z
func (g *BSPGenerator) carveX(z, x0, x1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		g.floor[z][x] = true
	}
}

// carveZ carves a corridor along column x
func (g *BSPGenerator) carveZ(x, z0, z1 int) {
	if z0 > z1 {
		z0, z1 = z1, z0
	}
	for z := z0; z <= z1; z++ {
		g.floor[z][x] = true
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func (g *BSPGenerator) getRoom(node *bspNode) *bspRoom {
	if node.room != nil {
		return node.room
	}
	if g.rng.Intn(2) == 0 {
		return g.getRoom(node.left)
	}
	return g.getRoom(node.right)
}

// collectRooms collects all rooms from the BSP tree
func collectRooms(node *bspNode) []*bspRoom {
	if node.room != nil {
		return []*bspRoom{node.room}
	}
	return append(collectRooms(node.left), collectRooms(node.right)...)
}

// enclosed reports whether all four neighbours of p are floor, so a box there
// never seals a corridor mouth
func (g *BSPGenerator) enclosed(p world.PositionIndex) bool {
	for _, d := range world.AllDirections() {
		n := p.Add(d.Step())
		if n.Z < 0 || n.Z >= len(g.floor) || n.X < 0 || n.X >= len(g.floor[n.Z]) || !g.floor[n.Z][n.X] {
			return false
		}
	}
	return true
}

// scatterBoxes drops up to BoxesPerRoom boxes on enclosed cells of each room,
// keeping the start cell and its neighbours clear
func (g *BSPGenerator) scatterBoxes(rooms []*bspRoom, start world.PositionIndex) []levels.Spawn {
	used := mapset.New[world.PositionIndex]()
	used.Put(start)
	for _, d := range world.AllDirections() {
		used.Put(start.Add(d.Step()))
	}

	var spawns []levels.Spawn
	for _, r := range rooms {
		var candidates []world.PositionIndex
		for z := r.z; z < r.z+r.height; z++ {
			for x := r.x; x < r.x+r.width; x++ {
				p := world.Pos(x, z)
				if !used.Has(p) && g.enclosed(p) {
					candidates = append(candidates, p)
				}
			}
		}
		g.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})

		for _, p := range candidates[:min(g.opts.BoxesPerRoom, len(candidates))] {
			used.Put(p)
			spawns = append(spawns, levels.Spawn{Pos: p, Kind: boxKinds[g.rng.Intn(len(boxKinds))]})
		}
	}
	return spawns
}

// GeneratePack generates count levels that grow with their index, the way
// later levels get larger.
func GeneratePack(count int, opts Options) (levels.Pack, error) {
	pack := levels.Pack{Name: fmt.Sprintf("generated-%d", opts.Seed)}
	for i := 0; i < count; i++ {
		o := opts
		o.Width = min(opts.Width+i*4, 60)
		o.Height = min(opts.Height+i*2, 40)
		o.Seed = opts.Seed + int64(i)

		lvl, err := New(o).Generate(fmt.Sprintf("Generated %d", i+1))
		if err != nil {
			return levels.Pack{}, err
		}
		pack.Levels = append(pack.Levels, lvl)
	}
	return pack, nil
}
