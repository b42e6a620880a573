package movement

import (
	"testing"

	"rollcube/pkg/engine/world"
	"rollcube/pkg/game/entities"
)

func TestScanPush(t *testing.T) {
	tests := []struct {
		name      string
		boxes     map[world.PositionIndex]entities.Kind
		wantBlock bool
		wantChain int
	}{
		{"empty", nil, false, 0},
		{"one box", map[world.PositionIndex]entities.Kind{world.Pos(6, 5): entities.KindPushBox}, false, 1},
		{"mixed pushables", map[world.PositionIndex]entities.Kind{
			world.Pos(6, 5): entities.KindPushPullBox,
			world.Pos(7, 5): entities.KindPushBox,
		}, false, 2},
		{"wall after box", map[world.PositionIndex]entities.Kind{
			world.Pos(6, 5): entities.KindPushBox,
			world.Pos(7, 5): entities.KindWall,
		}, true, 0},
		{"pull-only box", map[world.PositionIndex]entities.Kind{world.Pos(6, 5): entities.KindPullBox}, true, 0},
		{"gap ends the chain", map[world.PositionIndex]entities.Kind{
			world.Pos(6, 5): entities.KindPushBox,
			world.Pos(8, 5): entities.KindObstacle,
		}, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBoard(t, tt.boxes)
			got := ScanPush(b, world.Pos(6, 5), east, 0)
			if got.Blocked != tt.wantBlock {
				t.Errorf("Blocked = %v, want %v", got.Blocked, tt.wantBlock)
			}
			if len(got.Chain) != tt.wantChain {
				t.Errorf("len(Chain) = %d, want %d", len(got.Chain), tt.wantChain)
			}
		})
	}
}

func TestPullCandidate(t *testing.T) {
	b, hs := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(3, 5): entities.KindPullBox,
		world.Pos(5, 3): entities.KindPushBox,
	})

	h, kind, ok := PullCandidate(b, world.Pos(5, 5), east)
	if !ok || h != hs[world.Pos(3, 5)] || kind != entities.KindPullBox {
		t.Errorf("PullCandidate east = (%v, %v, %v), want pull box at (3,5)", h, kind, ok)
	}

	south := world.Pos(0, 1)
	if _, _, ok := PullCandidate(b, world.Pos(5, 5), south); ok {
		t.Error("push-only box reported as pull candidate")
	}

	if _, _, ok := PullCandidate(b, world.Pos(1, 0), east); ok {
		t.Error("out-of-bounds cell reported as pull candidate")
	}
}

func TestPullCandidate_LandingCellOccupied(t *testing.T) {
	b, _ := newTestBoard(t, map[world.PositionIndex]entities.Kind{
		world.Pos(3, 5): entities.KindPullBox,
		world.Pos(4, 5): entities.KindWall,
	})
	if _, _, ok := PullCandidate(b, world.Pos(5, 5), east); ok {
		t.Error("pull candidate reported with its landing cell occupied")
	}
}
