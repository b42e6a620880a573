package devtools_test

import (
	"bytes"
	"strings"
	"testing"

	"rollcube/pkg/engine/logger"
	"rollcube/pkg/game/config"
	"rollcube/pkg/game/devtools"
	"rollcube/pkg/game/gameplay"
	"rollcube/pkg/game/levels"
	"rollcube/pkg/game/state"
)

func TestDumpMap_RoundTripsThroughParseText(t *testing.T) {
	logger.Discard()
	rows := []string{
		"#....",
		".b@p.",
		"..%x.",
	}
	lvl, err := levels.ParseText("dump", rows)
	if err != nil {
		t.Fatal(err)
	}
	g, err := gameplay.BuildGame(levels.Pack{Name: "p", Levels: []levels.Level{lvl}}, 0, config.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := devtools.DumpMap(g, &buf); err != nil {
		t.Fatalf("DumpMap: %v", err)
	}
	out := buf.String()

	got := devtools.ExtractMapRows(strings.Split(out, "\n"))
	if strings.Join(got, "|") != strings.Join(rows, "|") {
		t.Errorf("map rows = %q, want %q", got, rows)
	}

	reparsed, err := levels.ParseText("again", got)
	if err != nil {
		t.Fatalf("ParseText(dump): %v", err)
	}
	if reparsed.Start != lvl.Start || len(reparsed.Spawns) != len(lvl.Spawns) {
		t.Errorf("reparsed level differs: start %v spawns %d", reparsed.Start, len(reparsed.Spawns))
	}

	for _, want := range []string{"cube_state: Quiet", "PushPullBox: 1", "consistency: ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}
}

func TestDumpMap_NoLevel(t *testing.T) {
	g := state.NewGame(levels.Pack{}, nil, nil)
	if err := devtools.DumpMap(g, &bytes.Buffer{}); err == nil {
		t.Error("DumpMap without level error = nil")
	}
}
