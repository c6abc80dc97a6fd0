package ui

import (
	"context"
	"fmt"
	"snake-arcade/game"
	"snake-arcade/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudHeight     = 40 // Bar above the board
	borderPadding = 10
)

var (
	boardColor = rl.Color{R: 24, G: 28, B: 36, A: 255}
	lineColor  = rl.Color{R: 40, G: 46, B: 58, A: 255}
	headColor  = rl.Color{R: 120, G: 230, B: 120, A: 255}
	bodyColor  = rl.Color{R: 60, G: 170, B: 80, A: 255}
	foodColor  = rl.Color{R: 230, G: 70, B: 70, A: 255}
)

// Renderer is the raylib window frontend
type Renderer struct {
	source  Source
	session *Session

	cellSize     int32
	screenWidth  int32
	screenHeight int32
	offsetX      int32
	offsetY      int32
}

func NewRenderer(source Source, session *Session) *Renderer {
	return &Renderer{source: source, session: session}
}

// Run opens the window and draws until it is closed, the player quits or
// ctx is done. It must be called from the main goroutine.
func (r *Renderer) Run(ctx context.Context, width, height int) error {
	rl.InitWindow(int32(width), int32(height+hudHeight), "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetExitKey(0) // Escape closes the modal instead
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !r.pollInput(ctx) {
			return nil
		}
		r.Draw(r.source.Snapshot())
	}
	return nil
}

// pollInput drains this frame's key presses into the session
func (r *Renderer) pollInput(ctx context.Context) bool {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		var k Key
		switch key {
		case rl.KeyUp:
			k = KeyUp
		case rl.KeyRight:
			k = KeyRight
		case rl.KeyDown:
			k = KeyDown
		case rl.KeyLeft:
			k = KeyLeft
		case rl.KeyEnter, rl.KeyKpEnter, rl.KeySpace:
			k = KeyEnter
		case rl.KeyEscape:
			k = KeyEscape
		default:
			continue
		}
		if !r.session.Press(ctx, r.source.Snapshot(), Input{Key: k}) {
			return false
		}
	}
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		if ch == ' ' {
			continue // handled as Enter
		}
		if !r.session.Press(ctx, r.source.Snapshot(), Input{Rune: rune(ch)}) {
			return false
		}
	}
	return true
}

func (r *Renderer) updateDimensions(grid types.Grid) {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	availableWidth := r.screenWidth - borderPadding*2
	availableHeight := r.screenHeight - hudHeight - borderPadding*2
	if grid.Cols == 0 || grid.Rows == 0 {
		r.cellSize = 0
		return
	}
	r.cellSize = min(availableWidth/int32(grid.Cols), availableHeight/int32(grid.Rows))

	// Center the board below the HUD
	r.offsetX = (r.screenWidth - r.cellSize*int32(grid.Cols)) / 2
	r.offsetY = hudHeight + (r.screenHeight-hudHeight-r.cellSize*int32(grid.Rows))/2
}

func (r *Renderer) Draw(s game.Snapshot) {
	r.updateDimensions(s.Grid)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if r.session.Screen() == ScreenSelect {
		r.drawSelect()
	} else {
		r.drawBoard(s)
		r.drawHUD(s)
		if r.session.ModalVisible(s) {
			r.drawGameOver(s)
		} else if s.State == game.Idle {
			r.drawCentered("Press an arrow key or WASD to start", r.screenHeight/2, 20, rl.LightGray)
		}
	}

	rl.EndDrawing()
}

func (r *Renderer) drawSelect() {
	y := r.screenHeight/3 - 40
	r.drawCentered("SNAKE", y, 48, headColor)
	y += 80
	r.drawCentered("Choose difficulty", y, 20, rl.LightGray)
	y += 40
	for i, item := range DifficultyMenu() {
		color := rl.Gray
		if i == r.session.Selected() {
			color = rl.White
			item = "> " + item + " <"
		}
		r.drawCentered(item, y, 24, color)
		y += 34
	}
	if notice := r.session.Notice(); notice != "" {
		r.drawCentered(notice, y+20, 16, foodColor)
	}
}

func (r *Renderer) drawBoard(s game.Snapshot) {
	width := r.cellSize * int32(s.Grid.Cols)
	height := r.cellSize * int32(s.Grid.Rows)
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, width+2, height+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, width, height, boardColor)

	for row := 0; row < s.Grid.Rows; row++ {
		for col := 0; col < s.Grid.Cols; col++ {
			x, y := r.cellOrigin(types.Point{Row: row, Col: col})
			rl.DrawRectangleLines(x, y, r.cellSize, r.cellSize, lineColor)
		}
	}

	if s.HasFood {
		x, y := r.cellOrigin(s.Food)
		rl.DrawCircle(x+r.cellSize/2, y+r.cellSize/2, float32(r.cellSize)*0.35, foodColor)
	}

	// Tail first so the head is drawn on top
	for i := len(s.Snake) - 1; i >= 0; i-- {
		x, y := r.cellOrigin(s.Snake[i])
		color := bodyColor
		if i == 0 {
			color = headColor
		}
		rl.DrawRectangle(x+1, y+1, r.cellSize-2, r.cellSize-2, color)
	}
	if len(s.Snake) > 0 {
		r.drawHeading(s.Snake[0], s.Direction)
	}
}

// drawHeading marks the head with a triangle pointing where it moves
func (r *Renderer) drawHeading(head types.Point, d types.Direction) {
	headX, headY := r.cellOrigin(head)
	half := r.cellSize / 2
	v := func(x, y int32) rl.Vector2 { return rl.Vector2{X: float32(x), Y: float32(y)} }

	switch d {
	case types.Right:
		rl.DrawTriangle(v(headX+r.cellSize, headY+half), v(headX+half, headY), v(headX+half, headY+r.cellSize), rl.Yellow)
	case types.Left:
		rl.DrawTriangle(v(headX, headY+half), v(headX+half, headY+r.cellSize), v(headX+half, headY), rl.Yellow)
	case types.Down:
		rl.DrawTriangle(v(headX+half, headY+r.cellSize), v(headX+r.cellSize, headY+half), v(headX, headY+half), rl.Yellow)
	case types.Up:
		rl.DrawTriangle(v(headX+half, headY), v(headX, headY+half), v(headX+r.cellSize, headY+half), rl.Yellow)
	}
}

func (r *Renderer) drawHUD(s game.Snapshot) {
	rl.DrawRectangle(0, 0, r.screenWidth, hudHeight, rl.DarkGray)
	rl.DrawText(HUD(s), borderPadding, 10, 20, rl.White)

	label := s.Difficulty.String()
	rl.DrawText(label, r.screenWidth-rl.MeasureText(label, 20)-borderPadding, 10, 20, rl.LightGray)
}

func (r *Renderer) drawGameOver(s game.Snapshot) {
	rl.DrawRectangle(0, 0, r.screenWidth, r.screenHeight, rl.Fade(rl.Black, 0.6))

	w, h := int32(420), int32(240)
	x, y := (r.screenWidth-w)/2, (r.screenHeight-h)/2
	rl.DrawRectangle(x, y, w, h, rl.DarkGray)
	rl.DrawRectangleLines(x, y, w, h, rl.LightGray)

	r.drawCentered(GameOverTitle(s.Score, s.BestScore), y+20, 28, rl.Gold)
	r.drawCentered(DeathMessage(s.Cause), y+62, 20, rl.White)
	r.drawCentered(fmt.Sprintf("Score: %d   Best: %d", s.Score, s.BestScore), y+100, 20, rl.White)
	r.drawCentered("Time "+FormatElapsed(s.Elapsed), y+130, 20, rl.LightGray)
	r.drawCentered("Enter/R restart   Esc close   M menu", y+h-36, 16, rl.LightGray)
}

func (r *Renderer) drawCentered(text string, y, fontSize int32, color rl.Color) {
	x := (r.screenWidth - rl.MeasureText(text, fontSize)) / 2
	rl.DrawText(text, x, y, fontSize, color)
}

func (r *Renderer) cellOrigin(p types.Point) (int32, int32) {
	return r.offsetX + int32(p.Col)*r.cellSize, r.offsetY + int32(p.Row)*r.cellSize
}
