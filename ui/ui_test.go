package ui

import (
	"context"
	"errors"
	"snake-arcade/game"
	"snake-arcade/game/types"
	"testing"
)

type fakeController struct {
	directions []types.Direction
	restarts   int
	configured []game.Difficulty
	err        error
}

func (f *fakeController) QueueDirection(d types.Direction) { f.directions = append(f.directions, d) }
func (f *fakeController) Restart() { f.restarts++ }
func (f *fakeController) Configure(_ context.Context, d game.Difficulty) error {
	f.configured = append(f.configured, d)
	return f.err
}

func TestGameOverTitle(t *testing.T) {
	tests := []struct {
		score, best int
		want        string
	}{
		{0, 0, TitleTryAgain},
		{5, 5, TitleNewHighScore},
		{5, 9, TitleTryAgain},
		{15, 20, TitleNiceRun},
		{20, 20, TitleNewHighScore},
		{14, 30, TitleTryAgain},
	}
	for _, tt := range tests {
		if got := GameOverTitle(tt.score, tt.best); got != tt.want {
			t.Errorf("GameOverTitle(%d, %d): expected %q, got %q", tt.score, tt.best, tt.want, got)
		}
	}
}

func TestDeathMessage(t *testing.T) {
	if DeathMessage(game.CauseWallCollision) != "You hit the wall!" {
		t.Errorf("Unexpected wall message %q", DeathMessage(game.CauseWallCollision))
	}
	if DeathMessage(game.CauseSelfCollision) != "You bit yourself!" {
		t.Errorf("Unexpected self message %q", DeathMessage(game.CauseSelfCollision))
	}
	if DeathMessage(game.CauseNone) != "" {
		t.Error("Expected no message without a cause")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := map[int]string{0: "00:00", 7: "00:07", 61: "01:01", 600: "10:00", 6000: "100:00", -3: "00:00"}
	for in, want := range tests {
		if got := FormatElapsed(in); got != want {
			t.Errorf("FormatElapsed(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestDirectionForRune(t *testing.T) {
	tests := map[rune]types.Direction{
		'w': types.Up, 'W': types.Up, 'd': types.Right, 'S': types.Down, 'a': types.Left, 'x': types.None,
	}
	for r, want := range tests {
		if got := DirectionForRune(r); got != want {
			t.Errorf("DirectionForRune(%q): expected %v, got %v", r, want, got)
		}
	}
}

func TestSessionSelectScreen(t *testing.T) {
	ctrl := &fakeController{}
	s := NewSession(ctrl, game.Medium, false)
	ctx := context.Background()

	if s.Screen() != ScreenSelect || s.Selected() != 1 {
		t.Fatalf("Expected select screen on medium, got %v/%d", s.Screen(), s.Selected())
	}
	s.Press(ctx, game.Snapshot{}, Input{Key: KeyDown})
	s.Press(ctx, game.Snapshot{}, Input{Key: KeyDown}) // wraps
	if s.Selected() != 0 {
		t.Errorf("Expected wrap to 0, got %d", s.Selected())
	}

	ctrl.err = errors.New("grid too small")
	s.Press(ctx, game.Snapshot{}, Input{Rune: '3'})
	if s.Screen() != ScreenSelect || s.Notice() == "" {
		t.Error("Expected to stay on select screen with a notice after a failed configure")
	}

	ctrl.err = nil
	s.Press(ctx, game.Snapshot{}, Input{Key: KeyEnter})
	if s.Screen() != ScreenPlay || s.Notice() != "" {
		t.Error("Expected play screen after configure")
	}
	if len(ctrl.configured) != 2 || ctrl.configured[1] != game.Hard {
		t.Errorf("Unexpected configure calls %v", ctrl.configured)
	}

	if !NewSession(ctrl, game.Easy, true).Press(ctx, game.Snapshot{}, Input{Key: KeyUp}) {
		t.Error("Expected direction key to keep running")
	}
	if NewSession(ctrl, game.Easy, false).Press(ctx, game.Snapshot{}, Input{Key: KeyEscape}) {
		t.Error("Expected escape on select screen to quit")
	}
}

func TestSessionPlayScreen(t *testing.T) {
	ctrl := &fakeController{}
	s := NewSession(ctrl, game.Easy, true)
	ctx := context.Background()
	running := game.Snapshot{RoundID: "a", State: game.Running}

	s.Press(ctx, running, Input{Key: KeyLeft})
	s.Press(ctx, running, Input{Rune: 'W'})
	if len(ctrl.directions) != 2 || ctrl.directions[0] != types.Left || ctrl.directions[1] != types.Up {
		t.Errorf("Unexpected directions %v", ctrl.directions)
	}

	// Enter does nothing while running
	s.Press(ctx, running, Input{Key: KeyEnter})
	if ctrl.restarts != 0 {
		t.Error("Expected no restart while running")
	}

	over := game.Snapshot{RoundID: "a", State: game.Over}
	if !s.ModalVisible(over) {
		t.Fatal("Expected modal after game over")
	}
	s.Press(ctx, over, Input{Key: KeyEscape})
	if s.ModalVisible(over) {
		t.Error("Expected modal to be dismissed")
	}
	if !s.ModalVisible(game.Snapshot{RoundID: "b", State: game.Over}) {
		t.Error("Expected modal for the next round")
	}

	s.Press(ctx, over, Input{Rune: 'r'})
	if ctrl.restarts != 1 {
		t.Errorf("Expected 1 restart, got %d", ctrl.restarts)
	}

	s.Press(ctx, over, Input{Rune: 'm'})
	if s.Screen() != ScreenSelect {
		t.Error("Expected menu key to open the select screen")
	}
}

func TestMenuKeyEndsRunningRound(t *testing.T) {
	ctrl := &fakeController{}
	ctx := context.Background()

	s := NewSession(ctrl, game.Easy, true)
	s.Press(ctx, game.Snapshot{RoundID: "a", State: game.Running}, Input{Rune: 'm'})
	if s.Screen() != ScreenSelect {
		t.Fatal("Expected menu key to open the select screen")
	}
	if ctrl.restarts != 1 {
		t.Errorf("Expected the running round to be restarted, got %d restarts", ctrl.restarts)
	}

	s = NewSession(ctrl, game.Easy, true)
	s.Press(ctx, game.Snapshot{RoundID: "b", State: game.Idle}, Input{Rune: 'M'})
	if ctrl.restarts != 1 {
		t.Errorf("Expected no restart for an idle round, got %d restarts", ctrl.restarts)
	}
}
