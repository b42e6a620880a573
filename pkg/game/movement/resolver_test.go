package movement

import (
	"testing"

	"github.com/sirupsen/logrus"

	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
)

var east = world.Pos(1, 0)

// newTestBoard creates a 10x10 board with the given boxes placed
func newTestBoard(t *testing.T, boxes map[world.PositionIndex]entities.Kind) (Board, map[world.PositionIndex]world.Handle) {
	t.Helper()
	b := NewBoard(10, 10)
	handles := make(map[world.PositionIndex]world.Handle, len(boxes))
	for p, k := range boxes {
		h, err := b.Place(p, k)
		if err != nil {
			t.Fatalf("Place(%v, %v): %v", p, k, err)
		}
		handles[p] = h
	}
	return b, handles
}

func quietResolver(margin int) *Resolver {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return &Resolver{Margin: margin, Log: l}
}

func TestResolve_PlainMove(t *testing.T) {
	b, _ := newTestBoard(t, nil)
	before := b.Clone()

	plan := quietResolver(0).Resolve(b, world.Pos(5, 5), east)
	if plan.Outcome != Move {
		t.Fatalf("Outcome = %v, want Move", plan.Outcome)
	}
	if plan.To != world.Pos(6, 5) {
		t.Errorf("To = %v, want (6,5)", plan.To)
	}
	if !b.Equal(before) {
		t.Error("Resolve mutated the board")
	}
}

func TestResolve_SinglePush(t *testing.T) {
	b, hs := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(6, 5): entities.KindPushBox,
	})

	plan := quietResolver(0).Resolve(b, world.Pos(5, 5), east)
	if plan.Outcome != Push {
		t.Fatalf("Outcome = %v, want Push", plan.Outcome)
	}
	if len(plan.Chain) != 1 || plan.Chain[0] != hs[world.Pos(6, 5)] {
		t.Errorf("Chain = %v, want [box at (6,5)]", plan.Chain)
	}
	if plan.MovingKind != entities.KindPushBox {
		t.Errorf("MovingKind = %v, want PushBox", plan.MovingKind)
	}
	if plan.To != world.Pos(6, 5) {
		t.Errorf("To = %v, want (6,5)", plan.To)
	}
}

func TestResolve_PushIntoObstacleIsBlocked(t *testing.T) {
	b, _ := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(6, 5): entities.KindPushBox,
		world.Pos(7, 5): entities.KindObstacle,
	})
	before := b.Clone()

	plan := quietResolver(0).Resolve(b, world.Pos(5, 5), east)
	if plan.Outcome != Blocked {
		t.Fatalf("Outcome = %v, want Blocked", plan.Outcome)
	}
	if len(plan.Chain) != 0 {
		t.Errorf("Chain = %v, want empty", plan.Chain)
	}
	if plan.To != plan.From {
		t.Errorf("To = %v, want From %v", plan.To, plan.From)
	}
	plan.Begin(b)
	if !b.Equal(before) {
		t.Error("blocked plan changed the board")
	}
}

func TestResolve_BlockingKinds(t *testing.T) {
	for _, k := range []entities.Kind{entities.KindWall, entities.KindObstacle, entities.KindPullBox} {
		t.Run(k.String(), func(t *testing.T) {
			b, _ := newTestBoard(t, map[world.PositionIndex]entities.Kind{world.Pos(6, 5): k})
			if got := quietResolver(0).Resolve(b, world.Pos(5, 5), east).Outcome; got != Blocked {
				t.Errorf("step into %v = %v, want Blocked", k, got)
			}
		})
	}
}

func TestResolve_Pull(t *testing.T) {
	b, hs := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(3, 5): entities.KindPullBox,
	})

	plan := quietResolver(0).Resolve(b, world.Pos(5, 5), east)
	if plan.Outcome != Pull {
		t.Fatalf("Outcome = %v, want Pull", plan.Outcome)
	}
	if plan.Pulled != hs[world.Pos(3, 5)] || plan.PulledKind != entities.KindPullBox {
		t.Errorf("Pulled = %v (%v), want box at (3,5)", plan.Pulled, plan.PulledKind)
	}
}

func TestResolve_PushOnlyBoxBehindIsNotPulled(t *testing.T) {
	b, _ := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(3, 5): entities.KindPushBox,
	})
	if got := quietResolver(0).Resolve(b, world.Pos(5, 5), east).Outcome; got != Move {
		t.Errorf("Outcome = %v, want Move", got)
	}
}

func TestResolve_AdjacentBoxBehindIsNotPulled(t *testing.T) {
	b, _ := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(4, 5): entities.KindPullBox,
	})
	if got := quietResolver(0).Resolve(b, world.Pos(5, 5), east).Outcome; got != Move {
		t.Errorf("Outcome = %v, want Move", got)
	}
}

func TestResolve_PullLandsBesideCube(t *testing.T) {
	b, hs := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(3, 5): entities.KindPullBox,
	})

	plan := quietResolver(0).Resolve(b, world.Pos(5, 5), east)
	if plan.Outcome != Pull || plan.To != world.Pos(6, 5) {
		t.Fatalf("plan = %v to %v, want Pull to (6,5)", plan.Outcome, plan.To)
	}
	plan.Begin(b)
	if err := plan.Commit(b); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := b.Grid.EntityAt(world.Pos(4, 5)); got != hs[world.Pos(3, 5)] {
		t.Errorf("cell (4,5) = %v, want pulled box", got)
	}
	if !b.Grid.IsEmptyCell(world.Pos(3, 5)) {
		t.Error("cell (3,5) not vacated")
	}
}

func TestResolve_PullWithBlockedLandingMoves(t *testing.T) {
	b, _ := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(3, 5): entities.KindPullBox,
		world.Pos(4, 5): entities.KindObstacle,
	})
	if got := quietResolver(0).Resolve(b, world.Pos(5, 5), east).Outcome; got != Move {
		t.Errorf("Outcome = %v, want Move", got)
	}
}

func TestResolve_PushWithPullConflictFails(t *testing.T) {
	b, hs := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(6, 5): entities.KindPushBox,
		world.Pos(3, 5): entities.KindPullBox,
	})
	before := b.Clone()

	plan := quietResolver(0).Resolve(b, world.Pos(5, 5), east)
	if plan.Outcome != FailPush {
		t.Fatalf("Outcome = %v, want FailPush", plan.Outcome)
	}
	if plan.To != world.Pos(5, 5) {
		t.Errorf("To = %v, want (5,5)", plan.To)
	}
	if len(plan.Chain) != 0 {
		t.Errorf("Chain = %v, want empty", plan.Chain)
	}
	if plan.Pulled != hs[world.Pos(3, 5)] {
		t.Errorf("Pulled = %v, want conflicting box", plan.Pulled)
	}
	plan.Begin(b)
	if err := plan.Commit(b); err != nil {
		t.Fatalf("Commit(FailPush) error = %v", err)
	}
	if !b.Equal(before) {
		t.Error("FailPush plan changed the board")
	}
}

func TestResolve_ChainPush(t *testing.T) {
	b, hs := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(6, 5): entities.KindPushBox,
		world.Pos(7, 5): entities.KindPushPullBox,
		world.Pos(8, 5): entities.KindPushBox,
	})

	plan := quietResolver(0).Resolve(b, world.Pos(5, 5), east)
	if plan.Outcome != Push {
		t.Fatalf("Outcome = %v, want Push", plan.Outcome)
	}
	want := []world.Handle{hs[world.Pos(6, 5)], hs[world.Pos(7, 5)], hs[world.Pos(8, 5)]}
	if len(plan.Chain) != len(want) {
		t.Fatalf("Chain length = %d, want %d", len(plan.Chain), len(want))
	}
	for i := range want {
		if plan.Chain[i] != want[i] {
			t.Errorf("Chain[%d] = %v, want %v", i, plan.Chain[i], want[i])
		}
	}
}

// A chain that reaches the last column has nowhere to go.
func TestResolve_ChainToBoundaryIsBlocked(t *testing.T) {
	b, _ := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(7, 5): entities.KindPushBox,
		world.Pos(8, 5): entities.KindPushBox,
		world.Pos(9, 5): entities.KindPushBox,
	})
	if got := quietResolver(0).Resolve(b, world.Pos(6, 5), east).Outcome; got != Blocked {
		t.Errorf("Outcome = %v, want Blocked", got)
	}
}

func TestResolve_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		margin int
		from   world.PositionIndex
		want   Outcome
	}{
		{"flush edge", 0, world.Pos(9, 5), Blocked},
		{"flush inner", 0, world.Pos(8, 5), Move},
		{"inset edge", 1, world.Pos(8, 5), Blocked},
		{"inset inner", 1, world.Pos(7, 5), Move},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBoard(t, nil)
			if got := quietResolver(tt.margin).Resolve(b, tt.from, east).Outcome; got != tt.want {
				t.Errorf("Resolve(%v) margin %d = %v, want %v", tt.from, tt.margin, got, tt.want)
			}
		})
	}
}

func TestResolve_NonCardinalStepPanics(t *testing.T) {
	b, _ := newTestBoard(t, nil)
	defer func() {
		if recover() == nil {
			t.Error("Resolve with diagonal step did not panic")
		}
	}()
	quietResolver(0).Resolve(b, world.Pos(5, 5), world.Pos(1, 1))
}
