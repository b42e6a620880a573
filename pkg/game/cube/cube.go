package cube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"rollcube/pkg/engine/logger"
	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/audio"
	"rollcube/pkg/game/entities"
	"rollcube/pkg/game/movement"
)

// Settings tune the animation pace
type Settings struct {
	AnimationSpeed      float64 // progress per second
	FastRepeatSpeedStep float64 // speed added per chained fast-repeat move
	MaxAnimationSpeed   float64
}

// DefaultSettings returns the stock animation pace
func DefaultSettings() Settings {
	return Settings{AnimationSpeed: 4, FastRepeatSpeedStep: 0.5, MaxAnimationSpeed: 10}
}

// Cube is the player-controlled cube. It is not part of the box pool; it only
// references boxes through the plan of its current action.
type Cube struct {
	Pos          world.PositionIndex // grid cell, already advanced while an action animates
	Position     mgl32.Vec3          // world-space centre at the start of the action
	NextPosition mgl32.Vec3          // world-space centre at the end of the action
	Facing       world.Direction     // camera facing
	MoveStep     world.PositionIndex

	State          State
	PushBoxesCount int
	PullingBox     entities.Kind
	MovingBox      entities.Kind

	AnimationProgress float64
	AnimationSpeed    float64
	Pitch             float64

	// Roll geometry for the current move and the resting orientation so far
	Pivot       mgl32.Vec3
	Axis        mgl32.Vec3
	Orientation mgl32.Quat

	eased    float64
	plan     movement.Plan
	resolver *movement.Resolver
	sounds   audio.Player
	settings Settings

	// OnActionEnd, when set, is called with the finished state after each
	// animated action has been committed
	OnActionEnd func(State)

	hasQueuedKey bool
	queuedKey    Key
	heldKey      Key
	fastRepeat   bool
	repeatCount  int
	failFrames   int

	log logrus.FieldLogger
}

// New places a quiet cube at start, facing north
func New(start world.PositionIndex, resolver *movement.Resolver, sounds audio.Player, settings Settings) *Cube {
	if sounds == nil {
		sounds = audio.NopPlayer{}
	}
	c := &Cube{
		resolver: resolver,
		sounds:   sounds,
		settings: settings,
		log:      logger.Log.WithField("component", "cube"),
	}
	c.Reset(start)
	return c
}

// Reset puts the cube back on start with no action, queue or orientation
func (c *Cube) Reset(start world.PositionIndex) {
	c.Pos = start
	c.Position = CellCenter(start)
	c.NextPosition = c.Position
	c.Facing = world.North
	c.MoveStep = world.PositionIndex{}
	c.State = Quiet
	c.PushBoxesCount = 0
	c.PullingBox = entities.KindNone
	c.MovingBox = entities.KindNone
	c.AnimationProgress = 0
	c.AnimationSpeed = c.settings.AnimationSpeed
	c.Pitch = 1
	c.Orientation = mgl32.QuatIdent()
	c.eased = 0
	c.plan = movement.Plan{}
	c.hasQueuedKey = false
	c.queuedKey = KeyNone
	c.heldKey = KeyNone
	c.fastRepeat = false
	c.repeatCount = 0
}

// CellCenter returns the world-space centre of a unit cube resting on p
func CellCenter(p world.PositionIndex) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X) + 0.5, 0.5, float32(p.Z) + 0.5}
}

// RotateCamera turns the facing a quarter turn: positive is clockwise
func (c *Cube) RotateCamera(turns int) {
	for ; turns > 0; turns-- {
		c.Facing = c.Facing.Clockwise()
	}
	for ; turns < 0; turns++ {
		c.Facing = c.Facing.CounterClockwise()
	}
}

// Hold tells the cube which movement key is held down. With fast set the held
// key repeats as soon as each move ends, speeding up with every repeat.
func (c *Cube) Hold(key Key, fast bool) {
	c.heldKey = key
	c.fastRepeat = fast && key != KeyNone
}

// QueuedKey returns the key waiting for the current animation, if any
func (c *Cube) QueuedKey() (Key, bool) {
	return c.queuedKey, c.hasQueuedKey
}

// Plan returns the plan of the action in progress
func (c *Cube) Plan() movement.Plan {
	return c.plan
}

// CheckMovement handles a movement key. While an animation runs the key is
// queued, replacing any earlier queued key. Otherwise it is resolved at once
// and the resulting state is returned.
func (c *Cube) CheckMovement(b movement.Board, key Key) State {
	if c.State.Animating() {
		c.hasQueuedKey = true
		c.queuedKey = key
		return c.State
	}
	c.repeatCount = 0
	c.AnimationSpeed = c.settings.AnimationSpeed
	c.Pitch = 1
	return c.resolve(b, key)
}

func (c *Cube) resolve(b movement.Board, key Key) State {
	dir, ok := StepFor(c.Facing, key)
	if !ok {
		return c.State
	}

	step := dir.Step()
	c.MoveStep = step
	c.Pivot, c.Axis = rollGeometry(c.Pos, step)

	plan := c.resolver.Resolve(b, c.Pos, step)
	c.plan = plan
	c.AnimationProgress = 0
	c.eased = 0
	c.PushBoxesCount = 0
	c.PullingBox = entities.KindNone
	c.MovingBox = entities.KindNone

	switch plan.Outcome {
	case movement.Blocked:
		c.State = Quiet
	case movement.FailPush:
		c.State = FailPush
		c.failFrames = 1
	case movement.Move:
		c.State = Moving
	case movement.Push:
		c.State = Pushing
		c.PushBoxesCount = len(plan.Chain)
		c.MovingBox = plan.MovingKind
	case movement.Pull:
		c.State = Pulling
		c.PullingBox = plan.PulledKind
	default:
		panic(fmt.Sprintf("cube: unreachable outcome %v", plan.Outcome))
	}

	c.Pos = plan.To
	c.NextPosition = CellCenter(plan.To)
	plan.Begin(b)

	c.log.WithFields(logrus.Fields{
		"key":   key.String(),
		"state": c.State.String(),
		"pos":   c.Pos.String(),
	}).Debug("Key resolved")

	// the roll sounds when it lands
	if c.State != Moving {
		c.sounds.Play(CueForState(c.State), c.Pitch)
	}
	return c.State
}

// rollGeometry returns the bottom edge a cube on p rolls over when stepping,
// and the axis that tips it forward about that edge
func rollGeometry(p, step world.PositionIndex) (pivot, axis mgl32.Vec3) {
	dx, dz := float32(step.X), float32(step.Z)
	pivot = CellCenter(p).Add(mgl32.Vec3{dx * 0.5, -0.5, dz * 0.5})
	axis = mgl32.Vec3{dz, 0, -dx}
	return pivot, axis
}

// Update advances the running animation by delta seconds and commits the
// action once it completes.
// A FailPush is shown for one frame and then settles back to Quiet.
func (c *Cube) Update(b movement.Board, delta float64) {
	if c.State == FailPush {
		if c.failFrames > 0 {
			c.failFrames--
			return
		}
		c.State = Quiet
		return
	}
	if !c.State.Animating() {
		return
	}

	c.AnimationProgress += delta * c.AnimationSpeed
	if c.AnimationProgress >= 1 {
		c.moveEnded(b)
		return
	}
	c.eased = smoothstep(c.AnimationProgress)
}

func smoothstep(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

func (c *Cube) moveEnded(b movement.Board) {
	c.Position = c.NextPosition
	c.AnimationProgress = 0
	c.eased = 0

	switch c.State {
	case Moving:
		c.Orientation = rollQuat(c.Axis, 1).Mul(c.Orientation).Normalize()
		c.sounds.Play(audio.CueRoll, c.Pitch)
	case Pushing, Pulling:
		if err := c.plan.Commit(b); err != nil {
			panic(fmt.Errorf("cube: commit %v at %v: %w", c.State, c.Pos, err))
		}
	}

	if c.OnActionEnd != nil {
		c.OnActionEnd(c.State)
	}

	c.State = Quiet
	c.PushBoxesCount = 0
	c.PullingBox = entities.KindNone
	c.MovingBox = entities.KindNone
	c.plan = movement.Plan{}

	if c.hasQueuedKey {
		key := c.queuedKey
		c.hasQueuedKey = false
		c.queuedKey = KeyNone
		c.resetRepeat()
		c.resolve(b, key)
		return
	}
	if c.fastRepeat && c.heldKey != KeyNone {
		c.repeatCount++
		c.AnimationSpeed = math.Min(
			c.settings.AnimationSpeed+c.settings.FastRepeatSpeedStep*float64(c.repeatCount),
			c.settings.MaxAnimationSpeed,
		)
		c.Pitch = c.AnimationSpeed / c.settings.AnimationSpeed
		c.resolve(b, c.heldKey)
		return
	}
	c.resetRepeat()
}

func (c *Cube) resetRepeat() {
	c.repeatCount = 0
	c.AnimationSpeed = c.settings.AnimationSpeed
	c.Pitch = 1
}

func rollQuat(axis mgl32.Vec3, amount float64) mgl32.Quat {
	return mgl32.QuatRotate(float32(amount*math.Pi/2), axis)
}

// Center returns the cube's world-space centre for the current frame
func (c *Cube) Center() mgl32.Vec3 {
	switch c.State {
	case Moving:
		q := rollQuat(c.Axis, c.eased)
		return q.Rotate(c.Position.Sub(c.Pivot)).Add(c.Pivot)
	case Pushing, Pulling:
		return c.Position.Add(c.SlideOffset())
	default:
		return c.Position
	}
}

// Rotation returns the cube's orientation for the current frame
func (c *Cube) Rotation() mgl32.Quat {
	if c.State == Moving {
		return rollQuat(c.Axis, c.eased).Mul(c.Orientation)
	}
	return c.Orientation
}

// SlideOffset is how far boxes in flight have moved from their cells this frame
func (c *Cube) SlideOffset() mgl32.Vec3 {
	if c.State != Pushing && c.State != Pulling {
		return mgl32.Vec3{}
	}
	return c.NextPosition.Sub(c.Position).Mul(float32(c.eased))
}
