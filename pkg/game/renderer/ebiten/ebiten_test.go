package ebiten

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollcube/pkg/game/config"
)

func TestVisibleFaces_Resting(t *testing.T) {
	faces := visibleFaces(mgl32.Vec3{2.5, 0.5, 1.5}, mgl32.QuatIdent())
	require.Len(t, faces, 1, "only the top face shows at rest")
	assert.InDelta(t, 1, faces[0].light, 1e-5)

	minX, maxX := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, c := range faces[0].corners {
		minX = min(minX, c.X())
		maxX = max(maxX, c.X())
	}
	assert.InDelta(t, 2, minX, 1e-5)
	assert.InDelta(t, 3, maxX, 1e-5)
}

func TestVisibleFaces_MidRoll(t *testing.T) {
	// tipped a quarter of the way over the x axis: top and one side show
	rot := mgl32.QuatRotate(math.Pi/8, mgl32.Vec3{1, 0, 0})
	faces := visibleFaces(mgl32.Vec3{0.5, 0.6, 0.5}, rot)
	require.Len(t, faces, 2)
	for _, f := range faces {
		assert.Greater(t, f.light, float32(0))
		assert.LessOrEqual(t, f.light, float32(1.0001))
	}
}

func TestRepeatAt(t *testing.T) {
	cfg := config.Default()
	cfg.KeyRepeatInitialMs = 300
	cfg.KeyRepeatIntervalMs = 100
	e := New(cfg)

	assert.True(t, e.repeatAt(true, "up", 1000), "first press fires")
	assert.False(t, e.repeatAt(true, "up", 1200), "inside the initial delay")
	assert.True(t, e.repeatAt(true, "up", 1300), "first repeat")
	assert.False(t, e.repeatAt(true, "up", 1350))
	assert.True(t, e.repeatAt(true, "up", 1400))

	assert.False(t, e.repeatAt(false, "up", 1450), "release")
	assert.True(t, e.repeatAt(true, "up", 1460), "press again fires at once")
}

func TestNew_ClampsTileSize(t *testing.T) {
	cfg := config.Default()
	cfg.TileSize = 4
	assert.Equal(t, defaultTileSize, New(cfg).tileSize)

	cfg.TileSize = 48
	assert.Equal(t, 48, New(cfg).tileSize)
}

func TestShade(t *testing.T) {
	c := shade(styleColors[0xFF], 1) // unknown style is the zero colour
	assert.Equal(t, uint8(0), c.R)

	got := shade(colorAction, 2)
	assert.Equal(t, uint8(255), got.R)
	assert.Equal(t, colorAction.A, got.A)
}

func TestRepeats_FollowsBindings(t *testing.T) {
	assert.True(t, repeats("w"))
	assert.True(t, repeats("arrow_left"))
	assert.False(t, repeats("r"))
	assert.False(t, repeats("i"), "unbound keys do not repeat")
}

func TestKeyboard_CodesUnique(t *testing.T) {
	seen := make(map[string]bool, len(keyboard))
	for _, k := range keyboard {
		assert.False(t, seen[k.code], "duplicate code %q", k.code)
		seen[k.code] = true
	}
}
