package ui

import (
	"context"
	"fmt"
	"snake-arcade/game"
	"snake-arcade/game/types"
	"time"

	"github.com/gdamore/tcell/v2"
)

const frameInterval = 33 * time.Millisecond

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSelect  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Terminal is the tcell frontend. Each board cell is two columns wide so the
// board keeps roughly square proportions.
type Terminal struct {
	source  Source
	session *Session
	screen  tcell.Screen
}

func NewTerminal(source Source, session *Session) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("could not create terminal screen: %w", err)
	}
	return &Terminal{source: source, session: session, screen: screen}, nil
}

// Run draws until the player quits or ctx is done
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("could not initialize terminal: %w", err)
	}
	defer t.screen.Fini()
	t.screen.HideCursor()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !t.handleEvent(ctx, ev) {
				return nil
			}
		case <-ticker.C:
			t.draw(t.source.Snapshot())
		}
	}
}

func (t *Terminal) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		in, ok := keyInput(ev)
		if !ok {
			return true
		}
		return t.session.Press(ctx, t.source.Snapshot(), in)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func keyInput(ev *tcell.EventKey) (Input, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return Input{Key: KeyUp}, true
	case tcell.KeyRight:
		return Input{Key: KeyRight}, true
	case tcell.KeyDown:
		return Input{Key: KeyDown}, true
	case tcell.KeyLeft:
		return Input{Key: KeyLeft}, true
	case tcell.KeyEnter:
		return Input{Key: KeyEnter}, true
	case tcell.KeyEscape:
		return Input{Key: KeyEscape}, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return Input{Key: KeyEnter}, true
		}
		return Input{Rune: ev.Rune()}, true
	}
	return Input{}, false
}

func (t *Terminal) draw(s game.Snapshot) {
	t.screen.Clear()
	if t.session.Screen() == ScreenSelect {
		t.drawSelect()
	} else {
		t.drawBoard(s)
		if t.session.ModalVisible(s) {
			t.drawGameOver(s)
		}
	}
	t.screen.Show()
}

func (t *Terminal) drawSelect() {
	w, h := t.screen.Size()
	y := h/3 - 2
	t.centered(y, "SNAKE", styleTitle, w)
	t.centered(y+2, "Choose difficulty", styleDim, w)
	for i, item := range DifficultyMenu() {
		style := styleDefault
		if i == t.session.Selected() {
			style = styleSelect
		}
		t.centered(y+4+i, " "+item+" ", style, w)
	}
	if notice := t.session.Notice(); notice != "" {
		t.centered(y+8, notice, styleFood, w)
	}
	t.centered(h-2, "Up/Down + Enter or 1-3, q to quit", styleDim, w)
}

func (t *Terminal) drawBoard(s game.Snapshot) {
	w, h := t.screen.Size()
	t.text(0, 0, HUD(s)+"   "+s.Difficulty.String(), styleDefault)

	boardW := s.Grid.Cols*2 + 2
	boardH := s.Grid.Rows + 2
	if boardW > w || boardH+1 > h {
		t.text(0, 2, fmt.Sprintf("Terminal too small: need %dx%d", boardW, boardH+1), styleFood)
		return
	}
	ox, oy := (w-boardW)/2, 1

	for x := 0; x < boardW; x++ {
		t.screen.SetContent(ox+x, oy, '─', nil, styleBorder)
		t.screen.SetContent(ox+x, oy+boardH-1, '─', nil, styleBorder)
	}
	for y := 0; y < boardH; y++ {
		t.screen.SetContent(ox, oy+y, '│', nil, styleBorder)
		t.screen.SetContent(ox+boardW-1, oy+y, '│', nil, styleBorder)
	}
	t.screen.SetContent(ox, oy, '┌', nil, styleBorder)
	t.screen.SetContent(ox+boardW-1, oy, '┐', nil, styleBorder)
	t.screen.SetContent(ox, oy+boardH-1, '└', nil, styleBorder)
	t.screen.SetContent(ox+boardW-1, oy+boardH-1, '┘', nil, styleBorder)

	cell := func(p types.Point, r rune, style tcell.Style) {
		x, y := ox+1+p.Col*2, oy+1+p.Row
		t.screen.SetContent(x, y, r, nil, style)
		t.screen.SetContent(x+1, y, r, nil, style)
	}

	if s.HasFood {
		cell(s.Food, '●', styleFood)
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			cell(s.Snake[i], '█', styleHead)
		} else {
			cell(s.Snake[i], '▓', styleBody)
		}
	}

	if s.State == game.Idle {
		t.centered(oy+boardH, "Arrow keys or WASD to start", styleDim, w)
	}
}

func (t *Terminal) drawGameOver(s game.Snapshot) {
	w, h := t.screen.Size()
	lines := []struct {
		text  string
		style tcell.Style
	}{
		{GameOverTitle(s.Score, s.BestScore), styleTitle},
		{DeathMessage(s.Cause), styleDefault},
		{fmt.Sprintf("Score: %d   Best: %d", s.Score, s.BestScore), styleDefault},
		{"Time " + FormatElapsed(s.Elapsed), styleDim},
		{"", styleDefault},
		{"Enter/r restart  Esc close  m menu", styleDim},
	}

	boxW, boxH := 40, len(lines)+2
	x0, y0 := (w-boxW)/2, (h-boxH)/2
	for y := 0; y < boxH; y++ {
		for x := 0; x < boxW; x++ {
			t.screen.SetContent(x0+x, y0+y, ' ', nil, styleSelect)
		}
	}
	for i, line := range lines {
		t.centered(y0+1+i, line.text, line.style.Reverse(true), w)
	}
}

func (t *Terminal) centered(y int, s string, style tcell.Style, width int) {
	t.text((width-len([]rune(s)))/2, y, s, style)
}

func (t *Terminal) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
