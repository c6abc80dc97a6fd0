package ui

import (
	"context"
	"snake-arcade/game"
	"snake-arcade/game/types"
)

// Controller is the part of the game loop a frontend drives
type Controller interface {
	QueueDirection(d types.Direction)
	Restart()
	Configure(ctx context.Context, d game.Difficulty) error
}

// Source supplies what to draw
type Source interface {
	Snapshot() game.Snapshot
}

type Screen int

const (
	ScreenSelect Screen = iota // difficulty selection
	ScreenPlay
)

// Key is a frontend-neutral key
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyRight
	KeyDown
	KeyLeft
	KeyEnter
	KeyEscape
)

// Input is one key press. Rune is set for printable keys.
type Input struct {
	Key  Key
	Rune rune
}

func (k Key) direction() types.Direction {
	switch k {
	case KeyUp:
		return types.Up
	case KeyRight:
		return types.Right
	case KeyDown:
		return types.Down
	case KeyLeft:
		return types.Left
	}
	return types.None
}

// Session holds the screen a frontend is on and turns key presses into
// loop commands. It is not safe for concurrent use; frontends call it from
// their draw thread.
type Session struct {
	ctrl      Controller
	screen    Screen
	selected  int
	dismissed string // round whose game-over modal was closed
	notice    string
}

// NewSession starts on the selection screen unless skipMenu is set
func NewSession(ctrl Controller, current game.Difficulty, skipMenu bool) *Session {
	s := &Session{ctrl: ctrl}
	for i, d := range game.Difficulties {
		if d == current {
			s.selected = i
		}
	}
	if skipMenu {
		s.screen = ScreenPlay
	}
	return s
}

func (s *Session) Screen() Screen { return s.screen }

// Selected is the highlighted row of the selection screen
func (s *Session) Selected() int { return s.selected }

// Notice is the last configuration error shown on the selection screen
func (s *Session) Notice() string { return s.notice }

// ModalVisible reports whether the game-over modal should be drawn
func (s *Session) ModalVisible(snap game.Snapshot) bool {
	return s.screen == ScreenPlay && snap.State == game.Over && snap.RoundID != s.dismissed
}

// Press handles one key. It returns false when the frontend should quit.
func (s *Session) Press(ctx context.Context, snap game.Snapshot, in Input) bool {
	if s.screen == ScreenSelect {
		return s.pressSelect(ctx, in)
	}
	return s.pressPlay(snap, in)
}

func (s *Session) pressSelect(ctx context.Context, in Input) bool {
	switch in.Key {
	case KeyEscape:
		return false
	case KeyUp:
		s.selected = (s.selected + len(game.Difficulties) - 1) % len(game.Difficulties)
		return true
	case KeyDown:
		s.selected = (s.selected + 1) % len(game.Difficulties)
		return true
	case KeyEnter:
		s.choose(ctx, game.Difficulties[s.selected])
		return true
	}
	if in.Rune == 'q' || in.Rune == 'Q' {
		return false
	}
	if d, ok := DifficultyForRune(in.Rune); ok {
		for i, candidate := range game.Difficulties {
			if candidate == d {
				s.selected = i
			}
		}
		s.choose(ctx, d)
	}
	return true
}

func (s *Session) choose(ctx context.Context, d game.Difficulty) {
	if err := s.ctrl.Configure(ctx, d); err != nil {
		s.notice = err.Error()
		return
	}
	s.notice = ""
	s.screen = ScreenPlay
}

func (s *Session) pressPlay(snap game.Snapshot, in Input) bool {
	modal := s.ModalVisible(snap)

	if d := in.Key.direction(); d != types.None {
		s.ctrl.QueueDirection(d)
		return true
	}
	if d := DirectionForRune(in.Rune); d != types.None {
		s.ctrl.QueueDirection(d)
		return true
	}

	switch in.Key {
	case KeyEnter:
		if modal {
			s.ctrl.Restart()
		}
		return true
	case KeyEscape:
		if modal {
			s.dismissed = snap.RoundID
			return true
		}
		return false
	}

	switch in.Rune {
	case 'r', 'R':
		s.ctrl.Restart()
	case 'c', 'C':
		if modal {
			s.dismissed = snap.RoundID
		}
	case 'm', 'M':
		// A running round would keep ticking behind the menu
		if snap.State == game.Running {
			s.ctrl.Restart()
		}
		s.screen = ScreenSelect
	case 'q', 'Q':
		return false
	}
	return true
}
