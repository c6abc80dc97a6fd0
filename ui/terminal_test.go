package ui

import (
	"context"
	"snake-arcade/game"
	"snake-arcade/game/types"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type staticSource struct{ snap game.Snapshot }

func (s *staticSource) Snapshot() game.Snapshot { return s.snap }

func newSimTerminal(t *testing.T, src Source, session *Session) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("simulation screen init failed: %v", err)
	}
	sim.SetSize(80, 24)
	t.Cleanup(sim.Fini)
	return &Terminal{source: src, session: session, screen: sim}, sim
}

func screenText(sim tcell.SimulationScreen) string {
	w, h := sim.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mainc, _, _, _ := sim.GetContent(x, y)
			if mainc == 0 {
				mainc = ' '
			}
			b.WriteRune(mainc)
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func TestTerminalDrawsBoardAndModal(t *testing.T) {
	src := &staticSource{snap: game.Snapshot{
		RoundID: "r1",
		Grid:    types.Grid{Rows: 6, Cols: 8},
		Snake:   []types.Point{{Row: 3, Col: 4}, {Row: 3, Col: 3}, {Row: 3, Col: 2}},
		Food:    types.Point{Row: 1, Col: 1},
		HasFood: true,
		State:   game.Running,
		Score:   2,
		Elapsed: 65,
	}}
	term, sim := newSimTerminal(t, src, NewSession(&fakeController{}, game.Easy, true))

	term.draw(src.Snapshot())
	text := screenText(sim)
	if !strings.Contains(text, "Time: 01:05") {
		t.Errorf("Expected HUD timer, got:\n%s", text)
	}
	if !strings.Contains(text, "██") || !strings.Contains(text, "●●") {
		t.Errorf("Expected head and food on the board, got:\n%s", text)
	}

	src.snap.State = game.Over
	src.snap.Cause = game.CauseWallCollision
	term.draw(src.Snapshot())
	text = screenText(sim)
	if !strings.Contains(text, "You hit the wall!") {
		t.Errorf("Expected death message, got:\n%s", text)
	}
}

func TestTerminalTooSmall(t *testing.T) {
	src := &staticSource{snap: game.Snapshot{Grid: types.Grid{Rows: 40, Cols: 60}}}
	term, sim := newSimTerminal(t, src, NewSession(&fakeController{}, game.Easy, true))
	term.draw(src.Snapshot())
	if !strings.Contains(screenText(sim), "Terminal too small") {
		t.Error("Expected size warning")
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	ctrl := &fakeController{}
	src := &staticSource{snap: game.Snapshot{RoundID: "r1", State: game.Running}}
	term, _ := newSimTerminal(t, src, NewSession(ctrl, game.Easy, true))
	ctx := context.Background()

	term.handleEvent(ctx, tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	term.handleEvent(ctx, tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if len(ctrl.directions) != 2 || ctrl.directions[0] != types.Right || ctrl.directions[1] != types.Down {
		t.Errorf("Unexpected directions %v", ctrl.directions)
	}
	if term.handleEvent(ctx, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("Expected Ctrl-C to quit")
	}
}
